package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/gameplay"
)

// HUDSystem draws score, shield and weapon state in the top corners.
type HUDSystem struct {
	catalog *gameplay.WeaponCatalog
	best    func() int
}

func NewHUDSystem(catalog *gameplay.WeaponCatalog, best func() int) *HUDSystem {
	return &HUDSystem{catalog: catalog, best: best}
}

func (s *HUDSystem) SetCatalog(c *gameplay.WeaponCatalog) {
	if s != nil {
		s.catalog = c
	}
}

func (s *HUDSystem) Update(w *ecs.World) {}

func (s *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if s == nil || w == nil || screen == nil {
		return
	}
	lines := HUDLines(w, s.catalog)
	if s.best != nil {
		lines = append(lines, fmt.Sprintf("BEST %d", s.best()))
	}
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, 8+float64(i)*16)
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, line, labelFace, op)
	}
}

// HUDLines renders the status text for the current world.
func HUDLines(w *ecs.World, catalog *gameplay.WeaponCatalog) []string {
	var lines []string
	if e, ok := ecs.First(w, component.ScoreComponent.Kind()); ok {
		score, _ := ecs.Get(w, e, component.ScoreComponent.Kind())
		lines = append(lines, fmt.Sprintf("SCORE %d", score.Points))
	}
	if e, ok := ecs.First(w, component.HeroComponent.Kind()); ok {
		hero, _ := ecs.Get(w, e, component.HeroComponent.Kind())
		if ship := hero.Ship; ship != nil {
			def := catalog.Get(ship.PrimaryWeapon())
			lines = append(lines,
				fmt.Sprintf("SHIELD %d", max(ship.ShieldLevel(), 0)),
				fmt.Sprintf("WEAPON %s x%d", def.Type, ship.ArmedSlots()),
			)
		}
	}
	return lines
}
