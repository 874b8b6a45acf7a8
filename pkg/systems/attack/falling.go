package attack

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
)

// Falling 在最近敌人正上方 SpawnHeight 处生成投射物，竖直下落
// 接触即结算（可带范围溅射）并消失；未命中则落到目标高度后消失
type Falling struct{}

func (b *Falling) Variant() types.AttackVariant { return types.AttackFalling }

func (b *Falling) Fire(ctx *Context, weapon ecs.EntityID) int {
	f, ok := resolve(ctx, weapon)
	if !ok {
		return 0
	}
	target, ok := NearestEnemy(ctx.EntityManager, f.x, f.y, 0, nil)
	if !ok {
		return 0
	}
	tpos, _ := ecs.GetComponent[*components.PositionComponent](ctx.EntityManager, target)

	// Y 轴向下，"上方" 为 Y 减小
	id := spawnProjectile(ctx, f, projectileOptions{
		x:        tpos.X,
		y:        tpos.Y - f.params.SpawnHeight,
		vx:       0,
		vy:       f.params.Speed,
		maxHits:  1,
		lifetime: f.lifetime(),
		collider: circle(f.params.ProjectileRadius * f.area()),
	})
	ctx.EntityManager.AddComponent(id, &components.FallingComponent{TargetY: tpos.Y})
	return 1
}
