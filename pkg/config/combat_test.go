package config

import (
	"testing"

	"github.com/gonewx/survivors/pkg/types"
)

func TestParseCombat(t *testing.T) {
	t.Run("缺省字段使用默认值", func(t *testing.T) {
		cfg, err := ParseCombat([]byte(`
knockback:
  decay: 0.5
experience:
  level_up_growth: { attack: 2 }
player:
  base_stats: { move_speed: 200 }
`))
		if err != nil {
			t.Fatalf("ParseCombat failed: %v", err)
		}
		if cfg.Knockback.Decay != 0.5 {
			t.Errorf("decay = %v, want 0.5", cfg.Knockback.Decay)
		}
		if cfg.Knockback.SnapThreshold != 1 {
			t.Errorf("snap threshold should keep default, got %v", cfg.Knockback.SnapThreshold)
		}
		if cfg.Separation.Radius != 40 {
			t.Errorf("separation radius should default to 40, got %v", cfg.Separation.Radius)
		}
		if cfg.Experience.Growth.Get(types.StatAttack) != 2 {
			t.Errorf("growth attack = %v, want 2", cfg.Experience.Growth.Get(types.StatAttack))
		}
		if cfg.Player.Base.Get(types.StatMoveSpeed) != 200 {
			t.Errorf("move speed = %v, want 200", cfg.Player.Base.Get(types.StatMoveSpeed))
		}
		// 未覆盖的基础属性保持默认
		if cfg.Player.Base.Get(types.StatCritDamage) != 1.5 {
			t.Errorf("crit damage should default to 1.5, got %v", cfg.Player.Base.Get(types.StatCritDamage))
		}
	})

	t.Run("拒绝无效参数", func(t *testing.T) {
		cases := []string{
			"knockback: { decay: 1.2 }",
			"experience: { base: 0 }",
			"experience: { level_up_growth: { luck: 1 } }",
			"fixed_step: -1",
		}
		for _, data := range cases {
			if _, err := ParseCombat([]byte(data)); err == nil {
				t.Errorf("expected error for %q", data)
			}
		}
	})
}

// TestShippedDataFiles 校验随程序嵌入的配置文件
func TestShippedDataFiles(t *testing.T) {
	if _, err := LoadWeapons("../../data/weapons.yaml"); err != nil {
		t.Errorf("weapons.yaml: %v", err)
	}
	if _, err := LoadItems("../../data/items.yaml"); err != nil {
		t.Errorf("items.yaml: %v", err)
	}
	if _, err := LoadWavePlan("../../data/waves.yaml"); err != nil {
		t.Errorf("waves.yaml: %v", err)
	}
	if _, err := LoadEnemies("../../data/enemies.yaml"); err != nil {
		t.Errorf("enemies.yaml: %v", err)
	}
	if _, err := LoadCombat("../../data/combat.yaml"); err != nil {
		t.Errorf("combat.yaml: %v", err)
	}
}
