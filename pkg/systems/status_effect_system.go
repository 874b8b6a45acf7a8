package systems

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
)

// StatusEffectSystem 流血和定身的计时
type StatusEffectSystem struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
	clock         *Clock
}

// NewStatusEffectSystem 创建状态效果系统
func NewStatusEffectSystem(em *ecs.EntityManager, bus *event.Bus, clock *Clock) *StatusEffectSystem {
	return &StatusEffectSystem{
		entityManager: em,
		bus:           bus,
		clock:         clock,
	}
}

// Update 推进所有状态效果
func (s *StatusEffectSystem) Update(dt float64) {
	s.updateBleed(dt)
	s.updateRoot(dt)
}

func (s *StatusEffectSystem) updateBleed(dt float64) {
	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith1[*components.BleedComponent](em) {
		if !em.IsAlive(id) || ecs.HasComponent[*components.PendingDespawnComponent](em, id) {
			continue
		}
		bleed, _ := ecs.GetComponent[*components.BleedComponent](em, id)

		if bleed.Tick.Tick(dt) && bleed.DamagePerTick > 0 {
			x, y := 0.0, 0.0
			if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
				x, y = pos.X, pos.Y
			}
			if applyDamage(em, s.bus, s.clock, damage{
				target:     id,
				amount:     bleed.DamagePerTick,
				x:          x,
				y:          y,
				damageType: bleed.DamageType,
			}) {
				continue
			}
		}
		if bleed.Timer.Tick(dt) {
			ecs.RemoveComponent[*components.BleedComponent](em, id)
		}
	}
}

func (s *StatusEffectSystem) updateRoot(dt float64) {
	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith1[*components.RootedComponent](em) {
		if !em.IsAlive(id) {
			continue
		}
		root, _ := ecs.GetComponent[*components.RootedComponent](em, id)
		if !root.Timer.Tick(dt) {
			continue
		}
		ecs.RemoveComponent[*components.RootedComponent](em, id)
		if tint, ok := ecs.GetComponent[*components.TintComponent](em, id); ok {
			*tint = components.NormalTint()
		}
	}
}
