package components

import (
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
)

// ProjectileComponent 投射物/效果实例
// 总是作为其武器的子实体存在，Weapon 为显式反向引用
type ProjectileComponent struct {
	Weapon ecs.EntityID
	Owner  ecs.EntityID

	// MaxHits 为 0 表示不限命中次数
	MaxHits int
	Hits    int
	// HitTargets 已命中过的目标（despawn 模式下每个目标只结算一次）
	HitTargets map[ecs.EntityID]bool
}

// TickDamageComponent 持续伤害型投射物的按目标计时器
// Cooldowns[target] > 0 时该目标暂不可再次受伤
type TickDamageComponent struct {
	Interval  float64
	Cooldowns map[ecs.EntityID]float64
}

// OrbitComponent 环绕中心实体运动
type OrbitComponent struct {
	Center       ecs.EntityID
	Phase        float64
	AngularSpeed float64
	Radius       float64
}

// HomingComponent 追踪投射物状态
type HomingComponent struct {
	Target   ecs.EntityID
	Speed    float64
	TurnRate float64

	Pattern   types.MovePattern
	Amplitude float64
	Frequency float64

	// 基础追踪方向（单位向量），运动模式叠加在其上
	DirX, DirY float64
	Elapsed    float64
	// 锯齿模式下当前侧向偏移符号，以及距离下次翻转的时间
	ZigzagSign  float64
	ZigzagTimer float64
	SpiralAngle float64
}

// FallingComponent 从目标上方下落的投射物
type FallingComponent struct {
	TargetY float64
}
