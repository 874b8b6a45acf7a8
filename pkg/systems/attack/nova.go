package attack

import (
	"math"

	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
	"github.com/gonewx/survivors/pkg/utils"
)

// Nova 同时向四周发射 N 枚投射物
// 方向在整圆上按 2π/N 均分，或（Random 时）每枚独立随机
type Nova struct{}

func (b *Nova) Variant() types.AttackVariant { return types.AttackNova }

func (b *Nova) Fire(ctx *Context, weapon ecs.EntityID) int {
	f, ok := resolve(ctx, weapon)
	if !ok {
		return 0
	}

	n := f.count()
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		angle := step * float64(i)
		if f.params.Random && ctx.Rand != nil {
			angle = ctx.Rand.Float64() * 2 * math.Pi
		}
		dx, dy := utils.FromAngle(angle)
		spawnProjectile(ctx, f, projectileOptions{
			x:        f.x,
			y:        f.y,
			vx:       dx * f.params.Speed,
			vy:       dy * f.params.Speed,
			maxHits:  singleHit(f),
			lifetime: f.lifetime(),
			collider: circle(f.params.ProjectileRadius * f.area()),
		})
	}
	return n
}
