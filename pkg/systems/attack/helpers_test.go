package attack

import (
	"math/rand/v2"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/types"
)

func newTestContext() *Context {
	return &Context{
		EntityManager: ecs.NewEntityManager(),
		Bus:           event.NewBus(),
		Rand:          rand.New(rand.NewPCG(1, 2)),
	}
}

func addOwner(em *ecs.EntityManager, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.DerivedStatsComponent{Stats: components.DefaultBaseStats()})
	em.AddComponent(id, &components.FacingComponent{X: 1, Y: 0})
	em.AddComponent(id, &components.PlayerComponent{Radius: 14})
	return id
}

func addWeapon(em *ecs.EntityManager, owner ecs.EntityID, variant types.AttackVariant, params components.AttackParamsComponent) ecs.EntityID {
	id := em.CreateChild(owner)
	em.AddComponent(id, &components.WeaponComponent{Kind: variant.String(), Level: 1, MaxLevel: 1, Owner: owner, Variant: variant})
	if params.AreaScale == 0 {
		params.AreaScale = 1
	}
	em.AddComponent(id, &params)
	em.AddComponent(id, &components.HitSpecComponent{BaseDamage: 10, UseOwnerStats: true})
	em.AddComponent(id, &BehaviorComponent{Behavior: New(variant)})
	return id
}

func addEnemy(em *ecs.EntityManager, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.EnemyComponent{Type: types.EnemyWalker, Radius: 12})
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.HealthComponent{Current: 20, Max: 20})
	return id
}

func projectilesOf(em *ecs.EntityManager, weapon ecs.EntityID) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range em.Children(weapon) {
		if ecs.HasComponent[*components.ProjectileComponent](em, id) {
			out = append(out, id)
		}
	}
	return out
}
