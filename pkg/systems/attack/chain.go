package attack

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/types"
)

// Chain 连锁闪电：从拥有者出发逐跳命中最近的未访问敌人
// 不生成投射物，每一跳直接发布 Hit（Source 为 0）和 ChainHop 表现事件
type Chain struct{}

func (b *Chain) Variant() types.AttackVariant { return types.AttackChain }

func (b *Chain) Fire(ctx *Context, weapon ecs.EntityID) int {
	f, ok := resolve(ctx, weapon)
	if !ok {
		return 0
	}

	targets := ChainTargets(ctx.EntityManager, f.x, f.y, f.params.Range, f.params.MaxHops)
	fromX, fromY := f.x, f.y
	for i, target := range targets {
		pos, _ := ecs.GetComponent[*components.PositionComponent](ctx.EntityManager, target)
		ctx.Bus.Publish(event.ChainHop{
			Weapon: weapon,
			Target: target,
			FromX:  fromX,
			FromY:  fromY,
			ToX:    pos.X,
			ToY:    pos.Y,
			Hop:    i + 1,
		})
		ctx.Bus.Publish(event.Hit{
			Weapon: weapon,
			Target: target,
			X:      pos.X,
			Y:      pos.Y,
		})
		fromX, fromY = pos.X, pos.Y
	}
	return len(targets)
}
