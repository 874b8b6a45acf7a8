package components

import "github.com/gonewx/survivors/pkg/types"

// WaveComponent 单例波次实体，保存当前激活波次的数据
type WaveComponent struct {
	Index int
	// Pool 敌人类型 → 目标权重（相对值，无需归一）
	Pool       map[types.EnemyType]float64
	MaxEnemies int

	SpawnTimer    TimerComponent // 重复，间隔 = 1 / spawn_frequency
	DurationTimer TimerComponent // 单次，波次时长

	PowerLevel      float64
	SpriteOverrides map[types.EnemyType]string

	// Finished 波次计划已耗尽，停止生成
	Finished bool
}
