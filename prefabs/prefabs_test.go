package prefabs

import (
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/shmup/gameplay"
	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff8000", want: color.NRGBA{R: 255, G: 128, A: 255}},
		{in: "00ff0080", want: color.NRGBA{G: 255, A: 128}},
		{in: " #0a0b0c ", want: color.NRGBA{R: 10, G: 11, B: 12, A: 255}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestYAMLColorOr(t *testing.T) {
	var spec struct {
		Set   *YAMLColor `yaml:"set"`
		Unset *YAMLColor `yaml:"unset"`
	}
	if err := yaml.Unmarshal([]byte(`set: "#102030"`), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := spec.Set.ColorOr(color.White); got != (color.NRGBA{R: 16, G: 32, B: 48, A: 255}) {
		t.Fatalf("set = %v", got)
	}
	if got := spec.Unset.ColorOr(color.White); got != color.White {
		t.Fatalf("unset = %v", got)
	}
	if err := yaml.Unmarshal([]byte("set: [1, 2]"), &spec); err == nil {
		t.Fatal("expected error for non-scalar color")
	}
}

func TestEmbeddedPrefabsDecode(t *testing.T) {
	names, err := fs.Glob(PrefabsFS, "*.yaml")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	for _, name := range names {
		if name == "game.yaml" || name == "weapons.yaml" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Name == "" || len(spec.Components) == 0 {
				t.Fatalf("spec = %+v", spec)
			}
		})
	}
}

func TestEmbeddedScriptsPresent(t *testing.T) {
	for _, name := range []string{"weave.tengo", "scripts/dive.tengo", "prefabs/scripts/weave.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Errorf("LoadScript(%q): %v", name, err)
		}
	}
}

func TestLoadGameSpec(t *testing.T) {
	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Width != 600 || spec.Height != 800 || spec.TPS != 60 {
		t.Fatalf("play area = %dx%d @%d", spec.Width, spec.Height, spec.TPS)
	}
	if len(spec.EnemyPrefabs) == 0 || len(spec.PowerUpFrequency) == 0 {
		t.Fatalf("tables missing: %+v", spec)
	}
	if spec.Flash != "flash.yaml" {
		t.Fatalf("flash = %q", spec.Flash)
	}
}

func TestGameSpecDefaults(t *testing.T) {
	var spec GameSpec
	spec.applyDefaults()
	if spec.Title != "shmup" || spec.Hero != "hero.yaml" || spec.Weapons != "weapons.yaml" || spec.RestartDelay <= 0 {
		t.Fatalf("defaults = %+v", spec)
	}
}

func TestLoadWeaponCatalog(t *testing.T) {
	catalog, err := LoadWeaponCatalog("weapons.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	blaster := catalog.Get(gameplay.WeaponBlaster)
	if blaster.Letter != "B" || blaster.Velocity != 600 || blaster.DelayBetweenShots != 0.2 {
		t.Fatalf("blaster = %+v", blaster)
	}
	if got := catalog.Get(gameplay.WeaponSpread).PowerUpColor; got != (color.NRGBA{R: 255, G: 215, A: 255}) {
		t.Fatalf("spread power-up color = %v", got)
	}
}

func TestDecodeWeaponCatalogRejects(t *testing.T) {
	tests := map[string]string{
		"duplicate":    "weapons:\n  - type: blaster\n  - type: blaster\n",
		"unknown type": "weapons:\n  - type: railgun\n",
		"bad color":    "weapons:\n  - type: blaster\n    color: red\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeWeaponCatalog([]byte(src)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := map[string]string{
		"prefabs/hero.yaml":                 "hero.yaml",
		"/tmp/game/prefabs/scripts/a.tengo": "scripts/a.tengo",
		"enemy_0.yaml":                      "enemy_0.yaml",
	}
	for in, want := range tests {
		if got := Name(in); got != want {
			t.Errorf("Name(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	old := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = old })

	if err := os.WriteFile(filepath.Join(dir, "flash.yaml"), []byte("name: custom\ncomponents: {ttl: {frames: 3}}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadEntityBuildSpec("flash.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "custom" {
		t.Fatalf("name = %q, want disk copy", spec.Name)
	}
	if _, ok := ModTime("flash.yaml"); !ok {
		t.Fatal("ModTime should find the disk copy")
	}
	if _, ok := ModTime("hero.yaml"); ok {
		t.Fatal("ModTime should miss embedded-only files")
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hero.yaml"), []byte("name: hero\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		for _, name := range w.Drain() {
			if name == "notes.txt" {
				t.Fatal("non-prefab file reported")
			}
			if name == "hero.yaml" {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("no event for hero.yaml")
}
