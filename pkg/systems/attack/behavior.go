// Package attack 实现武器的攻击行为变体
//
// 每把武器在生成时选定一种 Behavior，存放在 BehaviorComponent 中；
// AttackSystem 收到 AttackTriggered 事件后直接调用该行为的 Fire，
// 不在每个 tick 按组件类型重新分派。
//
// 所有行为都读取拥有者当前位置和存活敌人集合；
// 没有拥有者或没有合适目标时静默地不生成任何投射物。
package attack

import (
	"math/rand/v2"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/types"
)

// Context 行为执行所需的共享服务
type Context struct {
	EntityManager *ecs.EntityManager
	Bus           *event.Bus
	Rand          *rand.Rand
}

// Behavior 攻击行为策略
type Behavior interface {
	Variant() types.AttackVariant
	// Fire 执行一次攻击，返回生成的投射物/效果数量（连锁为命中跳数）
	Fire(ctx *Context, weapon ecs.EntityID) int
}

// BehaviorComponent 武器实体上的攻击行为（每把武器恰好一个）
type BehaviorComponent struct {
	Behavior Behavior
}

// New 根据变体创建行为；未知变体返回 nil
func New(v types.AttackVariant) Behavior {
	switch v {
	case types.AttackShot:
		return &Shot{}
	case types.AttackNova:
		return &Nova{}
	case types.AttackOrbiters:
		return &Orbiters{}
	case types.AttackChain:
		return &Chain{}
	case types.AttackHoming:
		return &Homing{}
	case types.AttackFalling:
		return &Falling{}
	case types.AttackMeleeCone:
		return &MeleeCone{}
	case types.AttackZone:
		return &Zone{}
	}
	return nil
}

// fireInfo 一次攻击所需的武器与拥有者数据
type fireInfo struct {
	weapon  ecs.EntityID
	owner   ecs.EntityID
	comp    *components.WeaponComponent
	params  *components.AttackParamsComponent
	hit     *components.HitSpecComponent
	x, y    float64
	stats   components.StatVector
	facingX float64
	facingY float64
}

// resolve 收集攻击数据；武器或拥有者缺失时返回 false
func resolve(ctx *Context, weapon ecs.EntityID) (*fireInfo, bool) {
	em := ctx.EntityManager
	if !em.IsAlive(weapon) {
		return nil, false
	}
	comp, ok := ecs.GetComponent[*components.WeaponComponent](em, weapon)
	if !ok {
		return nil, false
	}
	params, ok := ecs.GetComponent[*components.AttackParamsComponent](em, weapon)
	if !ok {
		return nil, false
	}
	hit, ok := ecs.GetComponent[*components.HitSpecComponent](em, weapon)
	if !ok {
		return nil, false
	}
	if !em.IsAlive(comp.Owner) {
		return nil, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, comp.Owner)
	if !ok {
		return nil, false
	}

	info := &fireInfo{
		weapon:  weapon,
		owner:   comp.Owner,
		comp:    comp,
		params:  params,
		hit:     hit,
		x:       pos.X,
		y:       pos.Y,
		facingX: 1,
	}

	// 拥有者没有派生属性时使用默认值
	if derived, ok := ecs.GetComponent[*components.DerivedStatsComponent](em, comp.Owner); ok {
		info.stats = derived.Stats
	} else {
		info.stats = components.DefaultBaseStats()
	}
	if facing, ok := ecs.GetComponent[*components.FacingComponent](em, comp.Owner); ok {
		if facing.X != 0 || facing.Y != 0 {
			info.facingX, info.facingY = facing.X, facing.Y
		}
	}
	return info, true
}

// count 基础数量加上拥有者的 ProjectileCount
func (f *fireInfo) count() int {
	n := f.params.Count + int(f.stats.Get(types.StatProjectileCount))
	if n < 1 {
		n = 1
	}
	return n
}

// area 范围倍率 = 武器自身倍率 × 拥有者 Area
func (f *fireInfo) area() float64 {
	scale := f.params.AreaScale
	if scale <= 0 {
		scale = 1
	}
	return scale * f.stats.Get(types.StatArea)
}

// lifetime 持续时间受拥有者 Duration 属性缩放
func (f *fireInfo) lifetime() float64 {
	return f.params.Lifetime * f.stats.Get(types.StatDuration)
}
