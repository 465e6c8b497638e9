package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is game.yaml: play area, pacing and drop tables.
type GameSpec struct {
	Title            string             `yaml:"title"`
	Width            int                `yaml:"width"`
	Height           int                `yaml:"height"`
	TPS              int                `yaml:"tps"`
	SpawnSeconds     float64            `yaml:"spawn_seconds"`
	FirstSpawn       float64            `yaml:"first_spawn"`
	EnemyPrefabs     []string           `yaml:"enemy_prefabs"`
	PowerUpFrequency []WeaponWeightSpec `yaml:"power_up_frequency"`
	RestartDelay     float64            `yaml:"restart_delay"`
	Hero             string             `yaml:"hero"`
	PowerUp          string             `yaml:"power_up"`
	Projectile       string             `yaml:"projectile"`
	Sfx              string             `yaml:"sfx"`
	Flash            string             `yaml:"flash"`
	Weapons          string             `yaml:"weapons"`
	Background       *YAMLColor         `yaml:"background"`
}

type WeaponWeightSpec struct {
	Type   string `yaml:"type"`
	Weight int    `yaml:"weight"`
}

func LoadGameSpec() (GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return spec, err
	}
	spec.applyDefaults()
	return spec, nil
}

func (g *GameSpec) applyDefaults() {
	if g.Title == "" {
		g.Title = "shmup"
	}
	if g.Width <= 0 {
		g.Width = 600
	}
	if g.Height <= 0 {
		g.Height = 800
	}
	if g.TPS <= 0 {
		g.TPS = 60
	}
	if g.SpawnSeconds <= 0 {
		g.SpawnSeconds = 2
	}
	if g.RestartDelay <= 0 {
		g.RestartDelay = 2
	}
	if g.Hero == "" {
		g.Hero = "hero.yaml"
	}
	if g.PowerUp == "" {
		g.PowerUp = "power_up.yaml"
	}
	if g.Projectile == "" {
		g.Projectile = "projectile.yaml"
	}
	if g.Sfx == "" {
		g.Sfx = "sfx.yaml"
	}
	if g.Weapons == "" {
		g.Weapons = "weapons.yaml"
	}
	if g.Flash == "" {
		g.Flash = "flash.yaml"
	}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ColorOr returns the wrapped colour, or fallback when unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

// ParseColor reads #RRGGBB or #RRGGBBAA.
func ParseColor(v string) (color.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
