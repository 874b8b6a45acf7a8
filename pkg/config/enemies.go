package config

import (
	"fmt"

	"github.com/gonewx/survivors/pkg/types"
	"gopkg.in/yaml.v3"
)

// EnemyStats 单个敌人类型的属性配置
type EnemyStats struct {
	Health        float64 `yaml:"health"`
	Speed         float64 `yaml:"speed"`
	ContactDamage float64 `yaml:"contact_damage"`
	XPValue       float64 `yaml:"xp_value"`
	Radius        float64 `yaml:"radius"`
	Sprite        string  `yaml:"sprite"`
}

// EnemiesConfig 敌人属性配置文件结构
type EnemiesConfig struct {
	Enemies map[string]EnemyStats `yaml:"enemies"`

	byType map[types.EnemyType]EnemyStats
}

// LoadEnemies 从 YAML 文件加载敌人属性配置
func LoadEnemies(path string) (*EnemiesConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy stats file %s: %w", path, err)
	}
	cfg, err := ParseEnemies(data)
	if err != nil {
		return nil, fmt.Errorf("invalid enemy stats in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseEnemies 解析并校验敌人属性配置
func ParseEnemies(data []byte) (*EnemiesConfig, error) {
	var cfg EnemiesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse enemy stats YAML: %w", err)
	}
	if err := validateEnemies(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateEnemies(cfg *EnemiesConfig) error {
	if len(cfg.Enemies) == 0 {
		return fmt.Errorf("at least one enemy type is required")
	}

	cfg.byType = make(map[types.EnemyType]EnemyStats, len(cfg.Enemies))
	for name, stats := range cfg.Enemies {
		et := types.EnemyTypeFromString(name)
		if et == types.EnemyNone {
			return fmt.Errorf("unknown enemy type %q", name)
		}
		if stats.Health <= 0 {
			return fmt.Errorf("enemy %s: health must be positive, got %v", name, stats.Health)
		}
		if stats.Speed < 0 || stats.ContactDamage < 0 || stats.XPValue < 0 {
			return fmt.Errorf("enemy %s: speed, contact_damage and xp_value cannot be negative", name)
		}
		if stats.Radius <= 0 {
			stats.Radius = 12
		}
		cfg.byType[et] = stats
	}
	return nil
}

// Stats 获取指定敌人类型的属性
func (c *EnemiesConfig) Stats(et types.EnemyType) (EnemyStats, bool) {
	if c == nil {
		return EnemyStats{}, false
	}
	s, ok := c.byType[et]
	return s, ok
}
