package attack

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
)

// projectileOptions 生成单个投射物/效果实体的参数
type projectileOptions struct {
	x, y     float64
	vx, vy   float64
	maxHits  int
	lifetime float64
	collider components.ColliderComponent
}

// spawnProjectile 创建投射物实体，作为武器的子实体
//
// 投射物在本 tick 生成，移动从下一个 tick 开始（MovementSystem 跳过本 tick 新建的实体）。
func spawnProjectile(ctx *Context, f *fireInfo, opts projectileOptions) ecs.EntityID {
	em := ctx.EntityManager
	id := em.CreateChild(f.weapon)

	em.AddComponent(id, &components.PositionComponent{X: opts.x, Y: opts.y})
	if opts.vx != 0 || opts.vy != 0 {
		em.AddComponent(id, &components.VelocityComponent{VX: opts.vx, VY: opts.vy})
	}
	em.AddComponent(id, &components.ProjectileComponent{
		Weapon:     f.weapon,
		Owner:      f.owner,
		MaxHits:    opts.maxHits,
		HitTargets: make(map[ecs.EntityID]bool),
	})

	collider := opts.collider
	collider.Layer = components.LayerProjectile
	em.AddComponent(id, &collider)

	if opts.lifetime > 0 {
		em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: opts.lifetime})
	}
	if f.hit.Mode == types.DamageTick {
		em.AddComponent(id, &components.TickDamageComponent{
			Interval:  f.hit.TickInterval,
			Cooldowns: make(map[ecs.EntityID]float64),
		})
	}
	if f.params.Visual != "" {
		em.AddComponent(id, &components.SpriteComponent{Path: f.params.Visual})
	}
	return id
}

// circle 圆形碰撞体
func circle(r float64) components.ColliderComponent {
	return components.ColliderComponent{Shape: components.ColliderCircle, Radius: r}
}

// singleHit despawn 模式下单发投射物首次接触即消失；tick 模式不限命中次数
func singleHit(f *fireInfo) int {
	if f.hit.Mode == types.DamageTick {
		return 0
	}
	return 1
}
