package component

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/shmup/ecs"
)

// Audio holds one player per clip. Systems request playback by flipping
// Play[i]; AudioSystem clears the flag.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// Request flags the named clip for playback and reports whether it exists.
func (a *Audio) Request(name string) bool {
	if a == nil {
		return false
	}
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

var AudioComponent = ecs.NewComponent[Audio]()
