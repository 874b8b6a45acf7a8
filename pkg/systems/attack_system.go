package systems

import (
	"log"

	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/systems/attack"
)

// AttackSystem 将 AttackTriggered 分派给武器的攻击行为
type AttackSystem struct {
	ctx *attack.Context
}

// NewAttackSystem 创建攻击分派系统
func NewAttackSystem(ctx *attack.Context) *AttackSystem {
	s := &AttackSystem{ctx: ctx}
	ctx.Bus.Subscribe(event.TypeAttackTriggered, s.onAttackTriggered)
	return s
}

func (s *AttackSystem) onAttackTriggered(ev event.Event) []event.Event {
	weapon := ev.(event.AttackTriggered).Weapon
	bc, ok := ecs.GetComponent[*attack.BehaviorComponent](s.ctx.EntityManager, weapon)
	if !ok || bc.Behavior == nil {
		return nil
	}
	n := bc.Behavior.Fire(s.ctx, weapon)
	log.Printf("[AttackSystem] Weapon %d fired %s (%d spawned)", weapon, bc.Behavior.Variant(), n)
	return nil
}
