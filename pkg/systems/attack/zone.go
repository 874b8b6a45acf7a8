package attack

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
)

// Zone 生成持续存在的圆形区域
// 中心为施放时的拥有者位置或最近敌人位置；区域不随拥有者移动
type Zone struct{}

func (b *Zone) Variant() types.AttackVariant { return types.AttackZone }

func (b *Zone) Fire(ctx *Context, weapon ecs.EntityID) int {
	f, ok := resolve(ctx, weapon)
	if !ok {
		return 0
	}

	cx, cy := f.x, f.y
	if f.params.ZoneOnEnemy {
		target, ok := NearestEnemy(ctx.EntityManager, f.x, f.y, 0, nil)
		if !ok {
			return 0
		}
		tpos, _ := ecs.GetComponent[*components.PositionComponent](ctx.EntityManager, target)
		cx, cy = tpos.X, tpos.Y
	}

	spawnProjectile(ctx, f, projectileOptions{
		x:        cx,
		y:        cy,
		maxHits:  0,
		lifetime: f.lifetime(),
		collider: circle(f.params.ZoneRadius * f.area()),
	})
	return 1
}
