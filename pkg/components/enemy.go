package components

import "github.com/gonewx/survivors/pkg/types"

// EnemyComponent 敌人的静态属性
type EnemyComponent struct {
	Type          types.EnemyType
	Speed         float64
	ContactDamage float64
	XPValue       float64
	Radius        float64
}

// KnockbackComponent 击退速度，每 tick 乘以衰减系数，低于阈值时归零
type KnockbackComponent struct {
	VX float64
	VY float64
}

// RootedComponent 定身状态，计时结束后移除并恢复着色
type RootedComponent struct {
	Timer TimerComponent
}

// BleedComponent 流血（持续伤害），不叠加、不刷新
type BleedComponent struct {
	Timer         TimerComponent // 总持续时间
	Tick          TimerComponent // 伤害间隔（重复）
	DamagePerTick float64
	DamageType    string
}

// MeleeCooldownComponent 敌人对玩家接触伤害的冷却
type MeleeCooldownComponent struct {
	Interval  float64
	Remaining float64
}

// PendingDespawnComponent 敌人已死亡，等待一个 tick 后移除
// 期间死亡触发的副作用（如生成经验宝石）仍可读取其最终位置
type PendingDespawnComponent struct {
	MarkedTick uint64
}
