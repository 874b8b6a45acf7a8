package entities

import (
	"fmt"
	"log"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/systems/attack"
)

// MinWeaponCooldown 升级后冷却的下限（秒）
const MinWeaponCooldown = 0.05

// NewWeapon 根据武器规格创建武器实例，作为 owner 的子实体
//
// 攻击行为在此时选定并存入 attack.BehaviorComponent，之后不再改变。
func NewWeapon(em *ecs.EntityManager, spec *config.WeaponSpec, owner ecs.EntityID) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if spec == nil {
		return 0, fmt.Errorf("weapon spec cannot be nil")
	}
	if !em.IsAlive(owner) {
		return 0, fmt.Errorf("weapon owner %d does not exist", owner)
	}
	behavior := attack.New(spec.Behavior.VariantKind)
	if behavior == nil {
		return 0, fmt.Errorf("weapon %s: no behavior for variant %q", spec.ID, spec.Behavior.Variant)
	}

	id := em.CreateChild(owner)

	em.AddComponent(id, &components.WeaponComponent{
		Kind:     spec.ID,
		Name:     spec.Name,
		Level:    1,
		MaxLevel: spec.MaxLevel,
		Owner:    owner,
		Variant:  spec.Behavior.VariantKind,
	})
	em.AddComponent(id, &components.CooldownComponent{
		BaseDuration: spec.Cooldown,
		Duration:     spec.Cooldown,
	})

	effects := make([]components.EffectSpec, 0, len(spec.Effects))
	for _, e := range spec.Effects {
		effects = append(effects, components.EffectSpec{
			Kind:     e.EffectKind,
			Duration: e.Duration,
			Interval: e.Interval,
			Damage:   e.Damage,
		})
	}
	em.AddComponent(id, &components.HitSpecComponent{
		BaseDamage:    spec.BaseDamage,
		DamageType:    spec.DamageType,
		UseOwnerStats: spec.UsesOwnerStats(),
		Knockback:     spec.Knockback,
		AoERadius:     spec.AoERadius,
		Mode:          spec.Mode,
		TickInterval:  spec.TickInterval,
		Effects:       effects,
		ImpactVisual:  spec.ImpactVisual,
		ImpactSound:   spec.ImpactSound,
	})

	b := spec.Behavior
	em.AddComponent(id, &components.AttackParamsComponent{
		Speed:            b.Speed,
		Count:            b.Count,
		Lifetime:         b.Lifetime,
		ProjectileRadius: b.Radius,
		MaxHits:          b.MaxHits,
		Random:           b.Random,
		AreaScale:        1,
		OrbitRadius:      b.OrbitRadius,
		AngularSpeed:     b.AngularSpeed,
		Range:            b.Range,
		MaxHops:          b.MaxHops,
		SpawnHeight:      b.SpawnHeight,
		ConeAngle:        b.ConeAngleRadians(),
		ZoneRadius:       b.ZoneRadius,
		ZoneOnEnemy:      b.ZoneTarget == "nearest_enemy",
		TurnRate:         b.TurnRate,
		Jitter:           b.Jitter,
		Pattern:          b.PatternKind,
		PatternAmplitude: b.PatternAmplitude,
		PatternFrequency: b.PatternFrequency,
		Visual:           spec.Visual,
	})
	em.AddComponent(id, &attack.BehaviorComponent{Behavior: behavior})

	log.Printf("[WeaponFactory] Spawned weapon %s (entity %d) for owner %d, behavior=%s",
		spec.ID, id, owner, behavior.Variant())
	return id, nil
}

// ApplyWeaponLevel 将一级升级增量应用到现有武器实例
func ApplyWeaponLevel(em *ecs.EntityManager, weapon ecs.EntityID, delta config.LevelDelta) {
	if hit, ok := ecs.GetComponent[*components.HitSpecComponent](em, weapon); ok {
		hit.BaseDamage += delta.Damage
	}
	if cd, ok := ecs.GetComponent[*components.CooldownComponent](em, weapon); ok {
		cd.BaseDuration += delta.Cooldown
		if cd.BaseDuration < MinWeaponCooldown {
			cd.BaseDuration = MinWeaponCooldown
		}
	}
	if params, ok := ecs.GetComponent[*components.AttackParamsComponent](em, weapon); ok {
		params.Count += delta.Count
		params.AreaScale += delta.Area
		params.Lifetime += delta.Duration
		params.MaxHops += delta.Hops
	}
}
