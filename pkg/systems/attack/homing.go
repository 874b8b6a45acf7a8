package attack

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
	"github.com/gonewx/survivors/pkg/utils"
)

// Homing 生成 N 枚追踪投射物
//
// 目标按距离排序后轮流分配给各投射物，初始方向带随机抖动；
// 之后每 tick 的转向、重新索敌和运动模式由 ProjectileMotionSystem 负责。
type Homing struct{}

func (b *Homing) Variant() types.AttackVariant { return types.AttackHoming }

func (b *Homing) Fire(ctx *Context, weapon ecs.EntityID) int {
	f, ok := resolve(ctx, weapon)
	if !ok {
		return 0
	}
	em := ctx.EntityManager

	targets := EnemiesByDistance(em, f.x, f.y)
	if len(targets) == 0 {
		return 0
	}

	maxHits := f.params.MaxHits
	if maxHits <= 0 {
		maxHits = 1
	}

	n := f.count()
	for i := 0; i < n; i++ {
		target := targets[i%len(targets)]
		tpos, _ := ecs.GetComponent[*components.PositionComponent](em, target)

		dx, dy := utils.Normalize(tpos.X-f.x, tpos.Y-f.y)
		if dx == 0 && dy == 0 {
			dx, dy = f.facingX, f.facingY
		}
		if len(targets) > 1 && f.params.Jitter > 0 && ctx.Rand != nil {
			dx, dy = utils.Rotate(dx, dy, (ctx.Rand.Float64()*2-1)*f.params.Jitter)
		}

		id := spawnProjectile(ctx, f, projectileOptions{
			x:        f.x,
			y:        f.y,
			vx:       dx * f.params.Speed,
			vy:       dy * f.params.Speed,
			maxHits:  maxHits,
			lifetime: f.lifetime(),
			collider: circle(f.params.ProjectileRadius * f.area()),
		})

		freq := f.params.PatternFrequency
		zigzagPeriod := 0.0
		if freq > 0 {
			zigzagPeriod = 1 / freq
		}
		em.AddComponent(id, &components.HomingComponent{
			Target:      target,
			Speed:       f.params.Speed,
			TurnRate:    f.params.TurnRate,
			Pattern:     f.params.Pattern,
			Amplitude:   f.params.PatternAmplitude,
			Frequency:   freq,
			DirX:        dx,
			DirY:        dy,
			ZigzagSign:  1,
			ZigzagTimer: zigzagPeriod,
		})
	}
	return n
}
