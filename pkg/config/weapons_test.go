package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gonewx/survivors/pkg/types"
)

func TestParseWeapons(t *testing.T) {
	t.Run("解析有效武器配置", func(t *testing.T) {
		data := []byte(`
weapons:
  - id: bolt
    base_damage: 10
    cooldown: 1.0
    behavior:
      variant: shot
      speed: 300
    levels:
      - { damage: 5 }
      - { cooldown: -0.1 }
  - id: field
    base_damage: 3
    cooldown: 4
    damage_mode: tick
    tick_interval: 0.5
    use_owner_stats: false
    effects:
      - { kind: root, duration: 1 }
    behavior:
      variant: zone
      zone_radius: 50
`)
		cfg, err := ParseWeapons(data)
		if err != nil {
			t.Fatalf("ParseWeapons failed: %v", err)
		}

		bolt, ok := cfg.Get("bolt")
		if !ok {
			t.Fatal("bolt not found")
		}
		if bolt.Behavior.VariantKind != types.AttackShot {
			t.Errorf("expected shot variant, got %v", bolt.Behavior.VariantKind)
		}
		if bolt.Mode != types.DamageDespawn {
			t.Errorf("default damage mode should be despawn, got %v", bolt.Mode)
		}
		if !bolt.UsesOwnerStats() {
			t.Error("weapons use owner stats by default")
		}
		// 默认值
		if bolt.MaxLevel != 3 {
			t.Errorf("max level should default to len(levels)+1 = 3, got %d", bolt.MaxLevel)
		}
		if bolt.Behavior.Count != 1 || bolt.Behavior.Radius != 8 {
			t.Errorf("behavior defaults not applied: %+v", bolt.Behavior)
		}

		d, ok := bolt.LevelDeltaFor(2)
		if !ok || d.Damage != 5 {
			t.Errorf("level 2 delta should add 5 damage, got %+v", d)
		}
		if _, ok := bolt.LevelDeltaFor(4); ok {
			t.Error("no delta beyond configured levels")
		}

		field, _ := cfg.Get("field")
		if field.Mode != types.DamageTick || field.UsesOwnerStats() {
			t.Errorf("field should be tick mode without owner stats: %+v", field)
		}
		if len(field.Effects) != 1 || field.Effects[0].EffectKind != types.EffectRoot {
			t.Errorf("root effect not parsed: %+v", field.Effects)
		}

		ids := cfg.IDs()
		if len(ids) != 2 || ids[0] != "bolt" || ids[1] != "field" {
			t.Errorf("IDs should be sorted, got %v", ids)
		}
	})

	t.Run("拒绝无效配置", func(t *testing.T) {
		cases := map[string]string{
			"empty":            `weapons: []`,
			"unknown variant":  "weapons:\n  - { id: a, cooldown: 1, behavior: { variant: laser } }\n",
			"zero cooldown":    "weapons:\n  - { id: a, cooldown: 0, behavior: { variant: shot, speed: 1 } }\n",
			"tick no interval": "weapons:\n  - { id: a, cooldown: 1, damage_mode: tick, behavior: { variant: zone, zone_radius: 5 } }\n",
			"tick shot":        "weapons:\n  - { id: a, cooldown: 1, damage_mode: tick, tick_interval: 0.5, behavior: { variant: shot, speed: 1 } }\n",
			"tick falling":     "weapons:\n  - { id: a, cooldown: 1, damage_mode: tick, tick_interval: 0.5, behavior: { variant: falling, speed: 1 } }\n",
			"chain no hops":    "weapons:\n  - { id: a, cooldown: 1, behavior: { variant: chain, range: 10 } }\n",
			"bad effect":       "weapons:\n  - { id: a, cooldown: 1, effects: [ { kind: poison } ], behavior: { variant: shot, speed: 1 } }\n",
			"duplicate id":     "weapons:\n  - { id: a, cooldown: 1, behavior: { variant: shot, speed: 1 } }\n  - { id: a, cooldown: 1, behavior: { variant: shot, speed: 1 } }\n",
		}
		for name, data := range cases {
			if _, err := ParseWeapons([]byte(data)); err == nil {
				t.Errorf("%s: expected validation error", name)
			}
		}
	})
}

func TestLoadWeaponsFromDisk(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "weapons.yaml")
	content := "weapons:\n  - { id: bolt, cooldown: 1, behavior: { variant: shot, speed: 100 } }\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadWeapons(path)
	if err != nil {
		t.Fatalf("LoadWeapons failed: %v", err)
	}
	if _, ok := cfg.Get("bolt"); !ok {
		t.Error("bolt should be loaded")
	}

	if _, err := LoadWeapons(filepath.Join(tempDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestShippedWeaponPatternsAreVisible(t *testing.T) {
	cfg, err := LoadWeapons(filepath.Join("..", "..", "data", "weapons.yaml"))
	if err != nil {
		t.Fatalf("LoadWeapons failed: %v", err)
	}
	for _, id := range cfg.IDs() {
		w, _ := cfg.Get(id)
		b := w.Behavior
		if b.PatternKind == types.PatternStraight {
			continue
		}
		// 侧向速度以像素/秒计，过小则轨迹与直线无异
		if b.PatternAmplitude < 0.1*b.Speed {
			t.Errorf("%s: pattern_amplitude %.2f px/s is negligible against speed %.0f", id, b.PatternAmplitude, b.Speed)
		}
	}
}
