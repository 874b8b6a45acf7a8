package systems

import (
	"math/rand/v2"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/systems/attack"
	"github.com/gonewx/survivors/pkg/types"
	"github.com/gonewx/survivors/pkg/utils"
)

// HitSystem 命中结算管线
//
//	Collision ──(伤害模式过滤)──▶ Hit ──▶ 伤害 / 暴击 / 击退 / 溅射 / 状态效果
//
// despawn 模式：每个投射物对每个目标最多结算一次，命中次数耗尽后投射物销毁；
// tick 模式：每个 (投射物, 目标) 对按间隔结算。
// 连锁闪电等无投射物攻击直接发布 Hit（Source 为 0）。
type HitSystem struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
	rng           *rand.Rand
	clock         *Clock
}

// NewHitSystem 创建命中系统并订阅 Collision 和 Hit
func NewHitSystem(em *ecs.EntityManager, bus *event.Bus, rng *rand.Rand, clock *Clock) *HitSystem {
	s := &HitSystem{
		entityManager: em,
		bus:           bus,
		rng:           rng,
		clock:         clock,
	}
	bus.Subscribe(event.TypeCollision, s.onCollision)
	bus.Subscribe(event.TypeHit, s.onHit)
	return s
}

// Update 推进 tick 模式的按目标冷却
func (s *HitSystem) Update(dt float64) {
	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith1[*components.TickDamageComponent](em) {
		tick, _ := ecs.GetComponent[*components.TickDamageComponent](em, id)
		for target, remaining := range tick.Cooldowns {
			remaining -= dt
			if remaining <= 1e-9 || !em.Exists(target) {
				delete(tick.Cooldowns, target)
				continue
			}
			tick.Cooldowns[target] = remaining
		}
	}
}

func (s *HitSystem) onCollision(ev event.Event) []event.Event {
	e := ev.(event.Collision)
	em := s.entityManager

	// 投射物已在本 tick 内销毁（命中次数耗尽）时不再结算
	if !em.IsAlive(e.Source) {
		return nil
	}
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](em, e.Source)
	if !ok {
		return nil
	}
	hit, ok := ecs.GetComponent[*components.HitSpecComponent](em, proj.Weapon)
	if !ok || !em.IsAlive(proj.Weapon) {
		return nil
	}
	if !attack.IsTargetable(em, e.Target) {
		return nil
	}

	switch hit.Mode {
	case types.DamageTick:
		tick, ok := ecs.GetComponent[*components.TickDamageComponent](em, e.Source)
		if !ok {
			tick = &components.TickDamageComponent{Interval: hit.TickInterval, Cooldowns: make(map[ecs.EntityID]float64)}
			em.AddComponent(e.Source, tick)
		}
		if tick.Cooldowns[e.Target] > 0 {
			return nil
		}
		interval := tick.Interval
		if interval <= 0 {
			interval = hit.TickInterval
		}
		if interval > 0 {
			tick.Cooldowns[e.Target] = interval
		}
	default:
		if proj.HitTargets == nil {
			proj.HitTargets = make(map[ecs.EntityID]bool)
		}
		if proj.HitTargets[e.Target] {
			return nil
		}
		proj.HitTargets[e.Target] = true
		proj.Hits++
		if proj.MaxHits > 0 && proj.Hits >= proj.MaxHits {
			em.DestroyEntity(e.Source)
		}
	}

	return []event.Event{event.Hit{
		Weapon: proj.Weapon,
		Source: e.Source,
		Target: e.Target,
		X:      e.X,
		Y:      e.Y,
	}}
}

func (s *HitSystem) onHit(ev event.Event) []event.Event {
	e := ev.(event.Hit)
	em := s.entityManager

	weapon, ok := ecs.GetComponent[*components.WeaponComponent](em, e.Weapon)
	if !ok {
		return nil
	}
	hit, ok := ecs.GetComponent[*components.HitSpecComponent](em, e.Weapon)
	if !ok {
		return nil
	}
	if !attack.IsTargetable(em, e.Target) {
		return nil
	}

	stats := components.DefaultBaseStats()
	if derived, ok := ecs.GetComponent[*components.DerivedStatsComponent](em, weapon.Owner); ok {
		stats = derived.Stats
	}

	amount, crit := s.roll(hit, stats)
	lethal := applyDamage(em, s.bus, s.clock, damage{
		target:     e.Target,
		amount:     amount,
		x:          e.X,
		y:          e.Y,
		isCrit:     crit,
		damageType: hit.DamageType,
	})
	s.bus.Publish(event.Impact{X: e.X, Y: e.Y, Visual: hit.ImpactVisual, Sound: hit.ImpactSound})

	if !lethal {
		s.knockback(e, weapon, hit, stats)
		s.applyEffects(e.Target, hit)
	}

	// 溅射：同样的伤害作用于半径内其他存活敌人，不再触发溅射
	if hit.AoERadius > 0 {
		radius := hit.AoERadius * stats.Get(types.StatArea)
		for _, other := range attack.EnemiesWithin(em, e.X, e.Y, radius) {
			if other == e.Target {
				continue
			}
			pos, _ := ecs.GetComponent[*components.PositionComponent](em, other)
			applyDamage(em, s.bus, s.clock, damage{
				target:     other,
				amount:     amount,
				x:          pos.X,
				y:          pos.Y,
				isCrit:     crit,
				damageType: hit.DamageType,
			})
		}
	}
	return nil
}

// roll 计算最终伤害
//
//	final = Attack + base × (CritDamage 若暴击，否则 1)
//
// 不使用拥有者属性的武器直接造成基础伤害且不会暴击
func (s *HitSystem) roll(hit *components.HitSpecComponent, stats components.StatVector) (float64, bool) {
	if !hit.UseOwnerStats {
		return hit.BaseDamage, false
	}
	crit := false
	if chance := stats.Get(types.StatCritChance); chance > 0 && s.rng != nil {
		crit = s.rng.Float64() < chance
	}
	mult := 1.0
	if crit {
		mult = stats.Get(types.StatCritDamage)
	}
	return stats.Get(types.StatAttack) + hit.BaseDamage*mult, crit
}

// knockback 沿 来源→目标 方向施加击退冲量
// 来源为投射物位置；无投射物的直接命中以拥有者位置为来源
func (s *HitSystem) knockback(e event.Hit, weapon *components.WeaponComponent, hit *components.HitSpecComponent, stats components.StatVector) {
	em := s.entityManager
	strength := hit.Knockback * stats.Get(types.StatKnockback)
	if strength <= 0 {
		return
	}
	kb, ok := ecs.GetComponent[*components.KnockbackComponent](em, e.Target)
	if !ok {
		return
	}
	tpos, ok := ecs.GetComponent[*components.PositionComponent](em, e.Target)
	if !ok {
		return
	}

	var src *components.PositionComponent
	if e.Source != 0 {
		src, _ = ecs.GetComponent[*components.PositionComponent](em, e.Source)
	}
	if src == nil {
		src, ok = ecs.GetComponent[*components.PositionComponent](em, weapon.Owner)
		if !ok {
			return
		}
	}

	dx, dy := utils.Normalize(tpos.X-src.X, tpos.Y-src.Y)
	kb.VX += dx * strength
	kb.VY += dy * strength
}

// applyEffects 给主目标附加状态效果；已存在的同类效果不刷新
func (s *HitSystem) applyEffects(target ecs.EntityID, hit *components.HitSpecComponent) {
	em := s.entityManager
	for _, eff := range hit.Effects {
		switch eff.Kind {
		case types.EffectBleed:
			if ecs.HasComponent[*components.BleedComponent](em, target) {
				continue
			}
			em.AddComponent(target, &components.BleedComponent{
				Timer:         components.TimerComponent{TargetTime: eff.Duration},
				Tick:          components.TimerComponent{TargetTime: eff.Interval, Repeating: true},
				DamagePerTick: eff.Damage,
				DamageType:    hit.DamageType,
			})
		case types.EffectRoot:
			if ecs.HasComponent[*components.RootedComponent](em, target) {
				continue
			}
			em.AddComponent(target, &components.RootedComponent{
				Timer: components.TimerComponent{TargetTime: eff.Duration},
			})
			if tint, ok := ecs.GetComponent[*components.TintComponent](em, target); ok {
				*tint = components.RootedTint()
			}
		}
	}
}
