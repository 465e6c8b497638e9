package gameplay

import (
	"errors"

	"github.com/charmbracelet/log"
)

// MaxShieldLevel caps the stored shield level.
const MaxShieldLevel = 4

// ErrHeroExists is returned when a second hero tries to register.
var ErrHeroExists = errors.New("gameplay: a hero is already registered")

// EntityRef is an opaque id for the root of a colliding entity tree.
type EntityRef uint64

// ContactKind classifies the root entity of a contact.
type ContactKind int

const (
	ContactUnknown ContactKind = iota
	ContactEnemy
	ContactPowerUp
)

// Contact describes what touched the hero's shield.
type Contact struct {
	Root    EntityRef
	Name    string
	Kind    ContactKind
	PowerUp *PowerUp
}

// CollisionOutcome tells the caller what OnCollision did.
type CollisionOutcome int

const (
	CollisionRepeated CollisionOutcome = iota
	CollisionIgnored
	CollisionEnemy
	CollisionPowerUp
)

// Orientation is the ship's snap rotation in degrees.
type Orientation struct {
	Pitch float64
	Roll  float64
}

// HeroConfig holds the tunables a hero is built from.
type HeroConfig struct {
	Speed           float64
	RollMultiplier  float64
	PitchMultiplier float64
	Slots           int
	BaseWeapon      WeaponType
	ShieldLevel     int
}

func DefaultHeroConfig() HeroConfig {
	return HeroConfig{
		Speed:           300,
		RollMultiplier:  -45,
		PitchMultiplier: 30,
		Slots:           5,
		BaseWeapon:      WeaponBlaster,
		ShieldLevel:     1,
	}
}

// FireHandle identifies one fire subscription.
type FireHandle int

type fireSubscriber struct {
	handle FireHandle
	fn     func()
}

// Hero is the player ship's gameplay state. It knows nothing about ECS or
// rendering; systems feed it input and contacts and act on the results.
type Hero struct {
	Position    Vec2
	Orientation Orientation
	Weapons     []Weapon

	// OnDeath runs once, the first time the shield is set below zero.
	OnDeath func(h *Hero)

	cfg         HeroConfig
	shield      int
	dead        bool
	lastTrigger EntityRef
	hasTrigger  bool
	subscribers []fireSubscriber
	nextHandle  FireHandle
	registry    *HeroRegistry
	logger      *log.Logger
}

func NewHero(cfg HeroConfig, logger *log.Logger) *Hero {
	if cfg.Slots <= 0 {
		cfg.Slots = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Hero{
		Weapons: make([]Weapon, cfg.Slots),
		cfg:     cfg,
		shield:  cfg.ShieldLevel,
		logger:  logger,
	}
}

// Initialize registers the hero and arms the base weapon. A failed
// registration is logged and returned, but the hero is still armed so the
// caller can keep running.
func (h *Hero) Initialize(reg *HeroRegistry) error {
	if h == nil {
		return nil
	}
	var err error
	if reg != nil {
		if err = reg.Register(h); err != nil {
			h.logger.Error("hero initialize: second hero", "err", err)
		} else {
			h.registry = reg
		}
	}
	h.ClearWeapons()
	h.Weapons[0].SetType(h.cfg.BaseWeapon)
	return err
}

func (h *Hero) Config() HeroConfig {
	if h == nil {
		return HeroConfig{}
	}
	return h.cfg
}

// OnFrame applies one frame of input and reports whether a fire event was
// broadcast. Vertical is positive upwards.
func (h *Hero) OnFrame(dt, horizontal, vertical, fire float64) bool {
	if h == nil || h.dead {
		return false
	}
	h.Position.X += horizontal * h.cfg.Speed * dt
	h.Position.Y += vertical * h.cfg.Speed * dt
	h.Orientation = Orientation{
		Pitch: vertical * h.cfg.PitchMultiplier,
		Roll:  horizontal * h.cfg.RollMultiplier,
	}
	if fire == 1 && len(h.subscribers) > 0 {
		h.Fire()
		return true
	}
	return false
}

// Fire runs every subscriber synchronously in registration order.
func (h *Hero) Fire() {
	if h == nil {
		return
	}
	subs := append([]fireSubscriber(nil), h.subscribers...)
	for _, s := range subs {
		s.fn()
	}
}

// Subscribe adds fn to the fire subscribers and returns its handle.
func (h *Hero) Subscribe(fn func()) FireHandle {
	if h == nil || fn == nil {
		return 0
	}
	h.nextHandle++
	h.subscribers = append(h.subscribers, fireSubscriber{handle: h.nextHandle, fn: fn})
	return h.nextHandle
}

// Unsubscribe removes the subscriber with the given handle.
func (h *Hero) Unsubscribe(handle FireHandle) bool {
	if h == nil {
		return false
	}
	for i, s := range h.subscribers {
		if s.handle == handle {
			h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
			return true
		}
	}
	return false
}

func (h *Hero) SubscriberCount() int {
	if h == nil {
		return 0
	}
	return len(h.subscribers)
}

// OnCollision handles a shield contact. Repeats from the last root are
// dropped until a different root touches the hero. An enemy outcome means
// the caller must destroy that enemy.
func (h *Hero) OnCollision(c Contact) CollisionOutcome {
	if h == nil || h.dead {
		return CollisionIgnored
	}
	if h.hasTrigger && h.lastTrigger == c.Root {
		return CollisionRepeated
	}
	h.lastTrigger = c.Root
	h.hasTrigger = true

	switch {
	case c.Kind == ContactEnemy:
		h.SetShieldLevel(h.shield - 1)
		return CollisionEnemy
	case c.Kind == ContactPowerUp && c.PowerUp != nil:
		h.AbsorbPowerUp(c.PowerUp)
		return CollisionPowerUp
	default:
		h.logger.Warn("shield hit by unknown entity", "name", c.Name, "root", c.Root)
		return CollisionIgnored
	}
}

// AbsorbPowerUp applies a power-up and always consumes it.
func (h *Hero) AbsorbPowerUp(pu *PowerUp) {
	if h == nil || pu == nil {
		return
	}
	t := pu.Type()
	h.logger.Debug("absorbed power-up", "type", t)

	switch t {
	case WeaponShield:
		h.SetShieldLevel(h.shield + 1)
	case WeaponBlaster, WeaponSpread:
		if h.Weapons[0].Type != t {
			h.ClearWeapons()
			h.Weapons[0].SetType(t)
			h.logger.Debug("switched weapon", "type", t)
		} else if slot := h.EmptyWeaponSlot(); slot != nil {
			slot.SetType(t)
			h.logger.Debug("added gun", "type", t)
		}
	}
	pu.OnAbsorbed()
}

func (h *Hero) ShieldLevel() int {
	if h == nil {
		return 0
	}
	return h.shield
}

// SetShieldLevel stores min(level, MaxShieldLevel). A negative request kills
// the hero; the clamp does not affect that check.
func (h *Hero) SetShieldLevel(level int) {
	if h == nil {
		return
	}
	h.shield = min(level, MaxShieldLevel)
	if level < 0 && !h.dead {
		h.dead = true
		if h.registry != nil {
			h.registry.Release(h)
			h.registry = nil
		}
		if h.OnDeath != nil {
			h.OnDeath(h)
		}
	}
}

func (h *Hero) Dead() bool {
	return h != nil && h.dead
}

func (h *Hero) ClearWeapons() {
	if h == nil {
		return
	}
	for i := range h.Weapons {
		h.Weapons[i].SetType(WeaponNone)
	}
}

// EmptyWeaponSlot returns the first unarmed slot, or nil.
func (h *Hero) EmptyWeaponSlot() *Weapon {
	if h == nil {
		return nil
	}
	for i := range h.Weapons {
		if h.Weapons[i].Type == WeaponNone {
			return &h.Weapons[i]
		}
	}
	return nil
}

func (h *Hero) PrimaryWeapon() WeaponType {
	if h == nil || len(h.Weapons) == 0 {
		return WeaponNone
	}
	return h.Weapons[0].Type
}

func (h *Hero) ArmedSlots() int {
	if h == nil {
		return 0
	}
	n := 0
	for _, w := range h.Weapons {
		if !w.Empty() {
			n++
		}
	}
	return n
}

// HeroRegistry owns the single active hero.
type HeroRegistry struct {
	active *Hero
}

func NewHeroRegistry() *HeroRegistry {
	return &HeroRegistry{}
}

// Register makes h the active hero. The first registration wins.
func (r *HeroRegistry) Register(h *Hero) error {
	if r == nil || h == nil {
		return nil
	}
	if r.active != nil && r.active != h {
		return ErrHeroExists
	}
	r.active = h
	return nil
}

func (r *HeroRegistry) Active() *Hero {
	if r == nil {
		return nil
	}
	return r.active
}

// Release clears the active hero if it is h.
func (r *HeroRegistry) Release(h *Hero) {
	if r == nil || r.active != h {
		return
	}
	r.active = nil
}
