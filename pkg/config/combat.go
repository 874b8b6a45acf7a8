package config

import (
	"fmt"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/types"
	"gopkg.in/yaml.v3"
)

// SeparationConfig 敌人群聚分离参数
type SeparationConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
}

// KnockbackConfig 击退衰减参数
type KnockbackConfig struct {
	// Decay 每 tick 乘以的衰减系数
	Decay float64 `yaml:"decay"`
	// SnapThreshold 速度模长低于该值时直接归零
	SnapThreshold float64 `yaml:"snap_threshold"`
	// SuppressThreshold 速度模长超过该值时压制追击
	SuppressThreshold float64 `yaml:"suppress_threshold"`
}

// ContactConfig 敌人接触伤害参数
type ContactConfig struct {
	Cooldown float64 `yaml:"cooldown"`
}

// ExperienceConfig 经验与升级参数
type ExperienceConfig struct {
	Base       float64 `yaml:"base"`
	Exponent   float64 `yaml:"exponent"`
	OfferCount int     `yaml:"offer_count"`
	// LevelUpGrowth 每次升级累加到 UpgradeStats 的平坦加成
	LevelUpGrowth map[string]float64 `yaml:"level_up_growth"`

	Growth components.StatVector `yaml:"-"`
}

// PlayerConfig 玩家初始配置
type PlayerConfig struct {
	Radius         float64            `yaml:"radius"`
	StartingWeapon string             `yaml:"starting_weapon"`
	BaseStats      map[string]float64 `yaml:"base_stats"`

	Base components.StatVector `yaml:"-"`
}

// CombatConfig 战斗调参
type CombatConfig struct {
	FixedStep  float64          `yaml:"fixed_step"`
	Separation SeparationConfig `yaml:"separation"`
	Knockback  KnockbackConfig  `yaml:"knockback"`
	Contact    ContactConfig    `yaml:"contact"`
	Experience ExperienceConfig `yaml:"experience"`
	Player     PlayerConfig     `yaml:"player"`
}

// DefaultCombatConfig 默认战斗参数
func DefaultCombatConfig() *CombatConfig {
	cfg := &CombatConfig{
		FixedStep: 1.0 / 60.0,
		Separation: SeparationConfig{
			Radius:   40,
			Strength: 1.5,
		},
		Knockback: KnockbackConfig{
			Decay:             0.85,
			SnapThreshold:     1,
			SuppressThreshold: 5,
		},
		Contact: ContactConfig{
			Cooldown: 0.5,
		},
		Experience: ExperienceConfig{
			Base:       100,
			Exponent:   2,
			OfferCount: 3,
		},
		Player: PlayerConfig{
			Radius:         14,
			StartingWeapon: "magic_bolt",
		},
	}
	cfg.Player.Base = components.DefaultBaseStats()
	return cfg
}

// LoadCombat 从 YAML 文件加载战斗参数，缺省字段使用默认值
func LoadCombat(path string) (*CombatConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read combat config file %s: %w", path, err)
	}
	cfg, err := ParseCombat(data)
	if err != nil {
		return nil, fmt.Errorf("invalid combat config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseCombat 解析并校验战斗参数
func ParseCombat(data []byte) (*CombatConfig, error) {
	cfg := DefaultCombatConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse combat YAML: %w", err)
	}
	if err := validateCombat(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateCombat(cfg *CombatConfig) error {
	if cfg.FixedStep <= 0 {
		return fmt.Errorf("fixed_step must be positive, got %v", cfg.FixedStep)
	}
	if cfg.Separation.Radius <= 0 {
		return fmt.Errorf("separation radius must be positive, got %v", cfg.Separation.Radius)
	}
	if cfg.Knockback.Decay <= 0 || cfg.Knockback.Decay >= 1 {
		return fmt.Errorf("knockback decay must be in (0, 1), got %v", cfg.Knockback.Decay)
	}
	if cfg.Knockback.SnapThreshold <= 0 {
		return fmt.Errorf("knockback snap_threshold must be positive, got %v", cfg.Knockback.SnapThreshold)
	}
	if cfg.Experience.Base <= 0 {
		return fmt.Errorf("experience base must be positive, got %v", cfg.Experience.Base)
	}
	if cfg.Experience.OfferCount < 1 {
		return fmt.Errorf("experience offer_count must be at least 1, got %d", cfg.Experience.OfferCount)
	}

	cfg.Experience.Growth = components.StatVector{}
	for name, v := range cfg.Experience.LevelUpGrowth {
		k, ok := types.StatKindFromString(name)
		if !ok {
			return fmt.Errorf("level_up_growth: unknown stat %q", name)
		}
		cfg.Experience.Growth.Set(k, v)
	}

	cfg.Player.Base = components.DefaultBaseStats()
	for name, v := range cfg.Player.BaseStats {
		k, ok := types.StatKindFromString(name)
		if !ok {
			return fmt.Errorf("player base_stats: unknown stat %q", name)
		}
		cfg.Player.Base.Set(k, v)
	}
	return nil
}
