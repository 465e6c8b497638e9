package gameplay

import (
	"errors"
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseWeaponType(t *testing.T) {
	cases := []struct {
		in      string
		want    WeaponType
		wantErr bool
	}{
		{"blaster", WeaponBlaster, false},
		{" Spread ", WeaponSpread, false},
		{"shield", WeaponShield, false},
		{"none", WeaponNone, false},
		{"railgun", WeaponNone, true},
	}
	for _, c := range cases {
		got, err := ParseWeaponType(c.in)
		if (err != nil) != c.wantErr {
			t.Fatalf("%q: err = %v", c.in, err)
		}
		if c.wantErr && !errors.Is(err, ErrUnknownWeaponType) {
			t.Fatalf("%q: expected ErrUnknownWeaponType, got %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWeaponTypeYAML(t *testing.T) {
	var doc struct {
		Types []WeaponType `yaml:"types"`
	}
	if err := yaml.Unmarshal([]byte("types: [laser, missile]\n"), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Types) != 2 || doc.Types[0] != WeaponLaser || doc.Types[1] != WeaponMissile {
		t.Fatalf("types = %v", doc.Types)
	}
	if err := yaml.Unmarshal([]byte("types: [plasma]\n"), &doc); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestCatalogUnknownFallsBackToNone(t *testing.T) {
	c := NewWeaponCatalog(WeaponDefinition{Type: WeaponBlaster, Letter: "B"})
	def := c.Get(WeaponMissile)
	if def.Type != WeaponNone || def.Letter != "?" || def.Color != color.White {
		t.Fatalf("fallback = %+v", def)
	}
	var nilCatalog *WeaponCatalog
	if nilCatalog.Get(WeaponBlaster).Letter != "?" {
		t.Fatalf("nil catalog should return none definition")
	}
}

func TestCatalogFillsColourDefaults(t *testing.T) {
	c := NewWeaponCatalog(WeaponDefinition{Type: WeaponPhaser, Color: color.RGBA{R: 1, A: 255}})
	def := c.Get(WeaponPhaser)
	if def.PowerUpColor != def.Color || def.ProjectileColor != def.Color {
		t.Fatalf("colour defaults not applied: %+v", def)
	}
	if def.Letter != "?" {
		t.Fatalf("letter default = %q", def.Letter)
	}
	types := c.Types()
	if len(types) != 2 || types[0] != WeaponNone || types[1] != WeaponPhaser {
		t.Fatalf("types = %v", types)
	}
}
