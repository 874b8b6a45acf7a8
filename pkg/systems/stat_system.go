package systems

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/types"
)

// statClamp 单个属性的取值范围
type statClamp struct {
	min, max float64
}

// statClamps 每个属性固定的上下限
var statClamps = [types.StatCount]statClamp{
	types.StatAttack:          {0, inf},
	types.StatCritChance:      {0, 1},
	types.StatCritDamage:      {1, inf},
	types.StatAttackSpeed:     {0.05, inf},
	types.StatMoveSpeed:       {0, inf},
	types.StatMaxHealth:       {1, inf},
	types.StatArmor:           {0, 0.99},
	types.StatRecovery:        {0, inf},
	types.StatProjectileCount: {0, inf},
	types.StatDuration:        {0.1, inf},
	types.StatArea:            {0.1, inf},
	types.StatCooldown:        {0.1, inf},
	types.StatPickupRange:     {0, inf},
	types.StatKnockback:       {0, inf},
	types.StatGrowth:          {0, inf},
	types.StatReserved:        {-inf, inf},
}

// ClampStats 对属性向量应用固定的上下限
func ClampStats(v components.StatVector) components.StatVector {
	for i := range v {
		c := statClamps[i]
		if v[i] < c.min {
			v[i] = c.min
		}
		if v[i] > c.max {
			v[i] = c.max
		}
	}
	return v
}

// StatSystem 派生属性的唯一写入者
//
// 派生属性 = clamp((Base + Upgrades + Σitem.Add) × Πitem.Mul)
// 由 StatsDirty 事件驱动同步重算，不做逐帧轮询。
type StatSystem struct {
	entityManager *ecs.EntityManager
}

// NewStatSystem 创建属性系统并订阅 StatsDirty
func NewStatSystem(em *ecs.EntityManager, bus *event.Bus) *StatSystem {
	s := &StatSystem{entityManager: em}
	if bus != nil {
		bus.Subscribe(event.TypeStatsDirty, s.onStatsDirty)
	}
	return s
}

func (s *StatSystem) onStatsDirty(ev event.Event) []event.Event {
	s.Recalculate(ev.(event.StatsDirty).Owner)
	return nil
}

// Recalculate 重算 owner 的派生属性；缺失的层视为单位元
func (s *StatSystem) Recalculate(owner ecs.EntityID) {
	em := s.entityManager
	if !em.Exists(owner) {
		return
	}

	var add components.StatVector
	if base, ok := ecs.GetComponent[*components.BaseStatsComponent](em, owner); ok {
		add = base.Stats
	}
	if up, ok := ecs.GetComponent[*components.UpgradeStatsComponent](em, owner); ok {
		for i := range add {
			add[i] += up.Stats[i]
		}
	}

	mul := components.IdentityMul()
	for _, item := range s.inventory(owner) {
		mods, ok := ecs.GetComponent[*components.ItemModifiersComponent](em, item)
		if !ok {
			continue
		}
		for i := range add {
			add[i] += mods.Add[i]
			mul[i] *= mods.Mul[i]
		}
	}

	var derived components.StatVector
	for i := range derived {
		derived[i] = add[i] * mul[i]
	}
	derived = ClampStats(derived)

	comp, ok := ecs.GetComponent[*components.DerivedStatsComponent](em, owner)
	if !ok {
		comp = &components.DerivedStatsComponent{}
		em.AddComponent(owner, comp)
	}
	comp.Stats = derived

	// 最大生命变化时同步生命上限
	if health, ok := ecs.GetComponent[*components.HealthComponent](em, owner); ok {
		health.Max = derived.Get(types.StatMaxHealth)
		if health.Current > health.Max {
			health.Current = health.Max
		}
	}
}

// inventory 返回 owner 装备的所有装备实体
func (s *StatSystem) inventory(owner ecs.EntityID) []ecs.EntityID {
	var items []ecs.EntityID
	for _, child := range s.entityManager.Children(owner) {
		if ecs.HasComponent[*components.ItemComponent](s.entityManager, child) {
			items = append(items, child)
		}
	}
	return items
}

// Snapshot 返回 owner 派生属性的只读副本（供 UI 使用）
func (s *StatSystem) Snapshot(owner ecs.EntityID) (components.StatVector, bool) {
	comp, ok := ecs.GetComponent[*components.DerivedStatsComponent](s.entityManager, owner)
	if !ok {
		return components.StatVector{}, false
	}
	return comp.Stats, true
}
