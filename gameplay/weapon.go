package gameplay

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownWeaponType = errors.New("gameplay: unknown weapon type")

// WeaponType tags both weapon slots and power-ups. WeaponShield is only ever
// carried by power-ups.
type WeaponType int

const (
	WeaponNone WeaponType = iota
	WeaponBlaster
	WeaponSpread
	WeaponPhaser
	WeaponMissile
	WeaponLaser
	WeaponShield
)

var weaponTypeNames = [...]string{
	WeaponNone:    "none",
	WeaponBlaster: "blaster",
	WeaponSpread:  "spread",
	WeaponPhaser:  "phaser",
	WeaponMissile: "missile",
	WeaponLaser:   "laser",
	WeaponShield:  "shield",
}

func (t WeaponType) String() string {
	if t < 0 || int(t) >= len(weaponTypeNames) {
		return fmt.Sprintf("weapon(%d)", int(t))
	}
	return weaponTypeNames[t]
}

// ParseWeaponType maps a name such as "spread" to its WeaponType.
func ParseWeaponType(s string) (WeaponType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weaponTypeNames {
		if n == name {
			return WeaponType(i), nil
		}
	}
	return WeaponNone, fmt.Errorf("%w: %q", ErrUnknownWeaponType, s)
}

func (t *WeaponType) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("weapon type must be a string")
	}
	parsed, err := ParseWeaponType(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t WeaponType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// WeaponDefinition is the read-only description of a weapon type.
type WeaponDefinition struct {
	Type              WeaponType
	Letter            string
	Color             color.Color
	PowerUpColor      color.Color
	ProjectileColor   color.Color
	DamageOnHit       float64
	DelayBetweenShots float64
	Velocity          float64
}

// Weapon is one weapon mount on the hero.
type Weapon struct {
	Type         WeaponType
	NextShotTime float64
}

// SetType re-arms the slot. A freshly armed slot may fire immediately.
func (w *Weapon) SetType(t WeaponType) {
	if w == nil {
		return
	}
	w.Type = t
	w.NextShotTime = 0
}

// Empty reports whether the slot holds no weapon.
func (w *Weapon) Empty() bool {
	return w == nil || w.Type == WeaponNone
}

// TryFire consumes a shot if the slot is armed and its delay has elapsed.
func (w *Weapon) TryFire(now, delay float64) bool {
	if w.Empty() || now < w.NextShotTime {
		return false
	}
	w.NextShotTime = now + delay
	return true
}
