package systems

import (
	"log"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
)

// damage 一次伤害结算
type damage struct {
	target     ecs.EntityID
	amount     float64
	x, y       float64
	isCrit     bool
	damageType string
}

// applyDamage 扣除敌人生命并发布 DamageDealt；致命时标记待移除并发布唯一一次 EnemyDied
// 返回本次伤害是否致命
func applyDamage(em *ecs.EntityManager, bus *event.Bus, clock *Clock, d damage) bool {
	if ecs.HasComponent[*components.PendingDespawnComponent](em, d.target) {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](em, d.target)
	if !ok || health.Current <= 0 {
		return false
	}

	health.Current -= d.amount
	bus.Publish(event.DamageDealt{
		Target:     d.target,
		Amount:     d.amount,
		X:          d.x,
		Y:          d.y,
		IsCrit:     d.isCrit,
		DamageType: d.damageType,
	})
	if health.Current > 0 {
		return false
	}

	var tick uint64
	if clock != nil {
		tick = clock.Tick
	}
	em.AddComponent(d.target, &components.PendingDespawnComponent{MarkedTick: tick})

	died := event.EnemyDied{Enemy: d.target, X: d.x, Y: d.y}
	if enemy, ok := ecs.GetComponent[*components.EnemyComponent](em, d.target); ok {
		died.EnemyType = enemy.Type
		died.XPValue = enemy.XPValue
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, d.target); ok {
		died.X, died.Y = pos.X, pos.Y
	}
	bus.Publish(died)
	log.Printf("[Damage] %s (entity %d) died at (%.1f, %.1f)", died.EnemyType, d.target, died.X, died.Y)
	return true
}
