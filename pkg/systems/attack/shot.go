package attack

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
	"github.com/gonewx/survivors/pkg/utils"
)

// Shot 向距离拥有者最近的敌人发射一枚投射物
type Shot struct{}

func (b *Shot) Variant() types.AttackVariant { return types.AttackShot }

func (b *Shot) Fire(ctx *Context, weapon ecs.EntityID) int {
	f, ok := resolve(ctx, weapon)
	if !ok {
		return 0
	}
	target, ok := NearestEnemy(ctx.EntityManager, f.x, f.y, 0, nil)
	if !ok {
		return 0
	}
	tpos, _ := ecs.GetComponent[*components.PositionComponent](ctx.EntityManager, target)

	dx, dy := utils.Normalize(tpos.X-f.x, tpos.Y-f.y)
	if dx == 0 && dy == 0 {
		dx = f.facingX
		dy = f.facingY
	}
	spawnProjectile(ctx, f, projectileOptions{
		x:        f.x,
		y:        f.y,
		vx:       dx * f.params.Speed,
		vy:       dy * f.params.Speed,
		maxHits:  singleHit(f),
		lifetime: f.lifetime(),
		collider: circle(f.params.ProjectileRadius * f.area()),
	})
	return 1
}
