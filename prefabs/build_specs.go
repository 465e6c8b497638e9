package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab: a named bag of component specs plus child
// prefabs attached through a Parent link.
type EntityBuildSpec struct {
	Name       string            `yaml:"name"`
	Components map[string]any    `yaml:"components"`
	Children   []EntityChildSpec `yaml:"children"`
}

type EntityChildSpec struct {
	Name       string         `yaml:"name"`
	OffsetX    float64        `yaml:"offset_x"`
	OffsetY    float64        `yaml:"offset_y"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type VelocityComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SpriteComponentSpec describes a procedurally drawn shape: ship, triangle,
// circle, diamond or rect.
type SpriteComponentSpec struct {
	Shape  string     `yaml:"shape"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

type LabelComponentSpec struct {
	Text    string     `yaml:"text"`
	Color   *YAMLColor `yaml:"color"`
	OffsetX float64    `yaml:"offset_x"`
	OffsetY float64    `yaml:"offset_y"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type PhysicsBodyComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Driven bool    `yaml:"driven"`
}

type CollisionLayerComponentSpec struct {
	Category []string `yaml:"category"`
	Mask     []string `yaml:"mask"`
}

type BoundsCheckComponentSpec struct {
	Radius       float64 `yaml:"radius"`
	KeepOnScreen bool    `yaml:"keep_on_screen"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips []AudioClipSpec `yaml:"clips"`
}

type TTLComponentSpec struct {
	Frames int `yaml:"frames"`
}

type HeroComponentSpec struct {
	Speed           float64   `yaml:"speed"`
	RollMultiplier  float64   `yaml:"roll_mult"`
	PitchMultiplier float64   `yaml:"pitch_mult"`
	Slots           int       `yaml:"slots"`
	BaseWeapon      string    `yaml:"base_weapon"`
	ShieldLevel     *int      `yaml:"shield_level"`
	Mounts          []float64 `yaml:"mounts"`
}

type PowerUpComponentSpec struct {
	RotMinMax   [2]float64 `yaml:"rot_min_max"`
	DriftMinMax [2]float64 `yaml:"drift_min_max"`
	UnitScale   float64    `yaml:"unit_scale"`
	LifeTime    float64    `yaml:"life_time"`
	FadeTime    float64    `yaml:"fade_time"`
}

type EnemyComponentSpec struct {
	Speed             float64 `yaml:"speed"`
	Health            float64 `yaml:"health"`
	Score             int     `yaml:"score"`
	Script            string  `yaml:"script"`
	PowerUpDropChance float64 `yaml:"power_up_drop_chance"`
}
