package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

type AudioSystem struct {
	muted  bool
	logger *log.Logger
}

func NewAudioSystem(muted bool, logger *log.Logger) *AudioSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &AudioSystem{muted: muted, logger: logger}
}

// clip is the part of *audio.Player the system drives.
type clip interface {
	SetVolume(volume float64)
	Rewind() error
	IsPlaying() bool
	Play()
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Players))

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false

			player := audioComp.Players[i]
			if player == nil || a.muted {
				continue
			}
			a.play(player, audioComp.Volume[i], clipName(audioComp, i))
		}

		for i := 0; i < min(count, len(audioComp.Stop)); i++ {
			if !audioComp.Stop[i] {
				continue
			}
			if player := audioComp.Players[i]; player != nil && player.IsPlaying() {
				player.Pause()
			}
			audioComp.Stop[i] = false
		}
	})
}

func (a *AudioSystem) play(c clip, volume float64, name string) {
	c.SetVolume(volume)
	if err := c.Rewind(); err != nil {
		a.logger.Warn("audio: rewind failed", "clip", name, "err", err)
		return
	}
	if !c.IsPlaying() {
		c.Play()
	}
}

func clipName(a *component.Audio, i int) string {
	if i < len(a.Names) {
		return a.Names[i]
	}
	return ""
}

// playSfx requests a clip on the shared sound-effect entity.
func playSfx(w *ecs.World, name string) {
	e, ok := ecs.First(w, component.SfxTagComponent.Kind())
	if !ok {
		return
	}
	if a, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
		a.Request(name)
	}
}
