package attack

import (
	"math"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
)

// Orbiters 生成 N 个环绕拥有者旋转的投射物
// 每个物理 tick：phase += ω·dt，position = center + (cos, sin)(phase) × radius
type Orbiters struct{}

func (b *Orbiters) Variant() types.AttackVariant { return types.AttackOrbiters }

func (b *Orbiters) Fire(ctx *Context, weapon ecs.EntityID) int {
	f, ok := resolve(ctx, weapon)
	if !ok {
		return 0
	}

	n := f.count()
	radius := f.params.OrbitRadius * f.area()
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		phase := step * float64(i)
		id := spawnProjectile(ctx, f, projectileOptions{
			x:        f.x + math.Cos(phase)*radius,
			y:        f.y + math.Sin(phase)*radius,
			maxHits:  0,
			lifetime: f.lifetime(),
			collider: circle(f.params.ProjectileRadius * f.area()),
		})
		ctx.EntityManager.AddComponent(id, &components.OrbitComponent{
			Center:       f.owner,
			Phase:        phase,
			AngularSpeed: f.params.AngularSpeed,
			Radius:       radius,
		})
	}
	return n
}
