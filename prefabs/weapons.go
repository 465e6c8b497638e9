package prefabs

import (
	"fmt"
	"image/color"

	"github.com/milk9111/shmup/gameplay"
	"gopkg.in/yaml.v3"
)

type WeaponSpec struct {
	Type              gameplay.WeaponType `yaml:"type"`
	Letter            string              `yaml:"letter"`
	Color             *YAMLColor          `yaml:"color"`
	PowerUpColor      *YAMLColor          `yaml:"power_up_color"`
	ProjectileColor   *YAMLColor          `yaml:"projectile_color"`
	DamageOnHit       float64             `yaml:"damage_on_hit"`
	DelayBetweenShots float64             `yaml:"delay_between_shots"`
	Velocity          float64             `yaml:"velocity"`
}

type WeaponsSpec struct {
	Weapons []WeaponSpec `yaml:"weapons"`
}

// LoadWeaponCatalog reads a weapons prefab into a catalog.
func LoadWeaponCatalog(filename string) (*gameplay.WeaponCatalog, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	catalog, err := DecodeWeaponCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: decode %s: %w", filename, err)
	}
	return catalog, nil
}

func DecodeWeaponCatalog(data []byte) (*gameplay.WeaponCatalog, error) {
	var spec WeaponsSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	seen := make(map[gameplay.WeaponType]bool, len(spec.Weapons))
	defs := make([]gameplay.WeaponDefinition, 0, len(spec.Weapons))
	for _, w := range spec.Weapons {
		if seen[w.Type] {
			return nil, fmt.Errorf("duplicate weapon %s", w.Type)
		}
		seen[w.Type] = true
		defs = append(defs, gameplay.WeaponDefinition{
			Type:              w.Type,
			Letter:            w.Letter,
			Color:             optionalColor(w.Color),
			PowerUpColor:      optionalColor(w.PowerUpColor),
			ProjectileColor:   optionalColor(w.ProjectileColor),
			DamageOnHit:       w.DamageOnHit,
			DelayBetweenShots: w.DelayBetweenShots,
			Velocity:          w.Velocity,
		})
	}
	return gameplay.NewWeaponCatalog(defs...), nil
}

func optionalColor(c *YAMLColor) color.Color {
	if c == nil {
		return nil
	}
	return c.Color
}
