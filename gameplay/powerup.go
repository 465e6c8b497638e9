package gameplay

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

type PowerUpConfig struct {
	RotMin    float64
	RotMax    float64
	DriftMin  float64
	DriftMax  float64
	UnitScale float64
	LifeTime  float64
	FadeTime  float64
}

func DefaultPowerUpConfig() PowerUpConfig {
	return PowerUpConfig{
		RotMin:    15,
		RotMax:    90,
		DriftMin:  0.25,
		DriftMax:  2,
		UnitScale: 25,
		LifeTime:  10,
		FadeTime:  4,
	}
}

// PowerUp is a drifting, spinning pickup that fades out after its lifetime.
type PowerUp struct {
	Drift        Vec2
	Rotation     Vec3
	RotPerSecond Vec3
	Spin         Vec3
	BirthTime    float64

	CubeColor   color.Color
	CubeAlpha   float64
	Letter      string
	LetterColor color.Color
	LetterAlpha float64

	// OnDestroy runs once when the power-up expires, leaves the screen or is
	// absorbed.
	OnDestroy func(pu *PowerUp)

	cfg       PowerUpConfig
	kind      WeaponType
	catalog   *WeaponCatalog
	destroyed bool
	logger    *log.Logger
}

func NewPowerUp(cfg PowerUpConfig, catalog *WeaponCatalog, logger *log.Logger) *PowerUp {
	if cfg.UnitScale <= 0 {
		cfg.UnitScale = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &PowerUp{
		CubeColor:   color.White,
		CubeAlpha:   1,
		Letter:      "?",
		LetterColor: color.White,
		LetterAlpha: 1,
		cfg:         cfg,
		catalog:     catalog,
		logger:      logger,
	}
}

// Initialize randomizes drift and spin, stamps the birth time and applies t.
func (p *PowerUp) Initialize(rng *rand.Rand, t WeaponType, now float64) {
	if p == nil {
		return
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	p.Drift = flatDirection(rng)
	speed := uniform(rng, p.cfg.DriftMin, p.cfg.DriftMax) * p.cfg.UnitScale
	p.Drift.X *= speed
	p.Drift.Y *= speed

	p.Rotation = Vec3{}
	p.RotPerSecond = Vec3{
		X: uniform(rng, p.cfg.RotMin, p.cfg.RotMax),
		Y: uniform(rng, p.cfg.RotMin, p.cfg.RotMax),
		Z: uniform(rng, p.cfg.RotMin, p.cfg.RotMax),
	}
	p.BirthTime = now
	p.SetType(t)
}

// flatDirection samples a direction on the unit sphere, drops z and
// renormalizes.
func flatDirection(rng *rand.Rand) Vec2 {
	for {
		x, y, z := rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()
		n := math.Sqrt(x*x + y*y + z*z)
		if n == 0 {
			continue
		}
		v := Vec2{X: x / n, Y: y / n}
		if l := v.Len(); l > 1e-6 {
			return Vec2{X: v.X / l, Y: v.Y / l}
		}
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// OnFrame advances spin and fade at absolute time now. It returns false once
// the power-up has been destroyed.
func (p *PowerUp) OnFrame(now float64, onScreen bool) bool {
	if p == nil || p.destroyed {
		return false
	}
	p.Spin = p.RotPerSecond.Scale(now)

	u := p.FadeFraction(now)
	if u >= 1 {
		p.destroy()
		return false
	}
	if u > 0 {
		p.CubeAlpha = 1 - u
		p.LetterAlpha = 1 - u*0.5
	}
	if !onScreen {
		p.destroy()
		return false
	}
	return true
}

// FadeFraction is (now - (birth+life)) / fade. Values at or below zero mean
// fully opaque.
func (p *PowerUp) FadeFraction(now float64) float64 {
	if p == nil {
		return 0
	}
	end := p.BirthTime + p.cfg.LifeTime
	if p.cfg.FadeTime <= 0 {
		if now >= end {
			return 1
		}
		return 0
	}
	return (now - end) / p.cfg.FadeTime
}

// SetType restyles the power-up from the catalog. Calling it twice with the
// same type has the same effect as calling it once.
func (p *PowerUp) SetType(t WeaponType) {
	if p == nil {
		return
	}
	def := p.catalog.Get(t)
	p.CubeColor = def.PowerUpColor
	p.Letter = def.Letter
	p.LetterColor = def.Color
	p.kind = t
	p.logger.Debug("power-up type set", "type", t)
}

// SetCatalog swaps the definition source and restyles the current type.
func (p *PowerUp) SetCatalog(c *WeaponCatalog) {
	if p == nil {
		return
	}
	p.catalog = c
	p.SetType(p.kind)
}

func (p *PowerUp) Type() WeaponType {
	if p == nil {
		return WeaponNone
	}
	return p.kind
}

func (p *PowerUp) Config() PowerUpConfig {
	if p == nil {
		return PowerUpConfig{}
	}
	return p.cfg
}

// OnAbsorbed destroys the power-up.
func (p *PowerUp) OnAbsorbed() {
	p.destroy()
}

func (p *PowerUp) Destroyed() bool {
	return p != nil && p.destroyed
}

func (p *PowerUp) destroy() {
	if p == nil || p.destroyed {
		return
	}
	p.destroyed = true
	if p.OnDestroy != nil {
		p.OnDestroy(p)
	}
}
