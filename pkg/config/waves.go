package config

import (
	"fmt"

	"github.com/gonewx/survivors/pkg/types"
	"gopkg.in/yaml.v3"
)

// WaveStats 单个波次记录
type WaveStats struct {
	EnemyPool       map[string]float64 `yaml:"enemy_pool"`
	MaxEnemies      int                `yaml:"max_enemies"`
	SpawnFrequency  float64            `yaml:"spawn_frequency"` // 每秒生成次数
	Duration        float64            `yaml:"duration"`        // 秒
	PowerLevel      float64            `yaml:"power_level"`
	SpriteOverrides map[string]string  `yaml:"sprite_overrides"`

	Pool    map[types.EnemyType]float64 `yaml:"-"`
	Sprites map[types.EnemyType]string  `yaml:"-"`
}

// WavePlan 波次计划：按顺序消费的波次队列及全局生成参数
type WavePlan struct {
	SpawnRadius   float64 `yaml:"spawn_radius"`
	DespawnBuffer float64 `yaml:"despawn_buffer"`
	// PowerScaling 敌人生命/接触伤害倍率 = 1 + PowerScaling × (power - 1)
	PowerScaling float64     `yaml:"power_scaling"`
	Waves        []WaveStats `yaml:"waves"`
}

// LoadWavePlan 从 YAML 文件加载波次计划
func LoadWavePlan(path string) (*WavePlan, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wave plan file %s: %w", path, err)
	}
	plan, err := ParseWavePlan(data)
	if err != nil {
		return nil, fmt.Errorf("invalid wave plan in %s: %w", path, err)
	}
	return plan, nil
}

// ParseWavePlan 解析并校验波次计划
func ParseWavePlan(data []byte) (*WavePlan, error) {
	plan := WavePlan{
		SpawnRadius:   600,
		DespawnBuffer: 200,
		PowerScaling:  0.5,
	}
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse wave plan YAML: %w", err)
	}
	if err := validateWavePlan(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func validateWavePlan(plan *WavePlan) error {
	if len(plan.Waves) == 0 {
		return fmt.Errorf("at least one wave is required")
	}
	if plan.SpawnRadius <= 0 {
		return fmt.Errorf("spawn_radius must be positive, got %v", plan.SpawnRadius)
	}
	if plan.DespawnBuffer < 0 {
		return fmt.Errorf("despawn_buffer cannot be negative, got %v", plan.DespawnBuffer)
	}

	for i := range plan.Waves {
		w := &plan.Waves[i]
		if len(w.EnemyPool) == 0 {
			return fmt.Errorf("wave %d: enemy_pool cannot be empty", i)
		}
		if w.MaxEnemies < 1 {
			return fmt.Errorf("wave %d: max_enemies must be at least 1, got %d", i, w.MaxEnemies)
		}
		if w.SpawnFrequency <= 0 {
			return fmt.Errorf("wave %d: spawn_frequency must be positive, got %v", i, w.SpawnFrequency)
		}
		if w.Duration <= 0 {
			return fmt.Errorf("wave %d: duration must be positive, got %v", i, w.Duration)
		}
		if w.PowerLevel == 0 {
			w.PowerLevel = 1
		}

		w.Pool = make(map[types.EnemyType]float64, len(w.EnemyPool))
		for name, weight := range w.EnemyPool {
			et := types.EnemyTypeFromString(name)
			if et == types.EnemyNone {
				return fmt.Errorf("wave %d: unknown enemy type %q", i, name)
			}
			if weight < 0 {
				return fmt.Errorf("wave %d: weight for %s cannot be negative", i, name)
			}
			w.Pool[et] = weight
		}

		w.Sprites = make(map[types.EnemyType]string, len(w.SpriteOverrides))
		for name, path := range w.SpriteOverrides {
			et := types.EnemyTypeFromString(name)
			if et == types.EnemyNone {
				return fmt.Errorf("wave %d: unknown enemy type %q in sprite_overrides", i, name)
			}
			w.Sprites[et] = path
		}
	}
	return nil
}
