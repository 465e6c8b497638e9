package gameplay

import (
	"image/color"
	"sort"

	"golang.org/x/image/colornames"
)

// WeaponCatalog answers type -> definition lookups. Unknown types resolve to
// the none definition.
type WeaponCatalog struct {
	defs map[WeaponType]WeaponDefinition
}

func NewWeaponCatalog(defs ...WeaponDefinition) *WeaponCatalog {
	c := &WeaponCatalog{defs: make(map[WeaponType]WeaponDefinition, len(defs)+1)}
	c.defs[WeaponNone] = noneDefinition()
	for _, def := range defs {
		c.defs[def.Type] = withDefaults(def)
	}
	return c
}

// DefaultWeaponCatalog mirrors weapons.yaml and is used when no prefab can be
// loaded.
func DefaultWeaponCatalog() *WeaponCatalog {
	return NewWeaponCatalog(
		WeaponDefinition{Type: WeaponBlaster, Letter: "B", Color: colornames.White, PowerUpColor: colornames.Deepskyblue, DamageOnHit: 1, DelayBetweenShots: 0.2, Velocity: 500},
		WeaponDefinition{Type: WeaponSpread, Letter: "S", Color: colornames.Yellow, PowerUpColor: colornames.Gold, DamageOnHit: 1, DelayBetweenShots: 0.4, Velocity: 450},
		WeaponDefinition{Type: WeaponPhaser, Letter: "P", Color: colornames.Violet, PowerUpColor: colornames.Mediumpurple, DamageOnHit: 2, DelayBetweenShots: 0.3, Velocity: 400},
		WeaponDefinition{Type: WeaponMissile, Letter: "M", Color: colornames.Orangered, PowerUpColor: colornames.Orange, DamageOnHit: 10, DelayBetweenShots: 1, Velocity: 250},
		WeaponDefinition{Type: WeaponLaser, Letter: "L", Color: colornames.Red, PowerUpColor: colornames.Crimson, DamageOnHit: 0.5, DelayBetweenShots: 0.05, Velocity: 900},
		WeaponDefinition{Type: WeaponShield, Letter: "O", Color: colornames.White, PowerUpColor: colornames.Limegreen},
	)
}

// Get returns the definition for t.
func (c *WeaponCatalog) Get(t WeaponType) WeaponDefinition {
	if c == nil {
		return noneDefinition()
	}
	if def, ok := c.defs[t]; ok {
		return def
	}
	return c.defs[WeaponNone]
}

// Types lists the defined types in declaration order.
func (c *WeaponCatalog) Types() []WeaponType {
	if c == nil {
		return nil
	}
	out := make([]WeaponType, 0, len(c.defs))
	for t := range c.defs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func noneDefinition() WeaponDefinition {
	return WeaponDefinition{
		Type:            WeaponNone,
		Letter:          "?",
		Color:           color.White,
		PowerUpColor:    color.White,
		ProjectileColor: color.White,
	}
}

func withDefaults(def WeaponDefinition) WeaponDefinition {
	if def.Letter == "" {
		def.Letter = "?"
	}
	if def.Color == nil {
		def.Color = color.White
	}
	if def.PowerUpColor == nil {
		def.PowerUpColor = def.Color
	}
	if def.ProjectileColor == nil {
		def.ProjectileColor = def.Color
	}
	return def
}
