package attack

import (
	"math"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
	"github.com/gonewx/survivors/pkg/utils"
)

// coneArcSegments 扇形弧线的分段数（顶点数 = 分段数 + 2）
const coneArcSegments = 4

// MeleeCone 在拥有者朝向前方生成短暂存在的扇形感应区
// 顶点在拥有者位置，两条边位于朝向 ±半张角，长度为武器射程
type MeleeCone struct{}

func (b *MeleeCone) Variant() types.AttackVariant { return types.AttackMeleeCone }

func (b *MeleeCone) Fire(ctx *Context, weapon ecs.EntityID) int {
	f, ok := resolve(ctx, weapon)
	if !ok {
		return 0
	}

	length := f.params.Range * f.area()
	points := ConeHull(f.facingX, f.facingY, f.params.ConeAngle, length)

	spawnProjectile(ctx, f, projectileOptions{
		x:        f.x,
		y:        f.y,
		maxHits:  0,
		lifetime: f.lifetime(),
		collider: components.ColliderComponent{
			Shape:  components.ColliderPolygon,
			Radius: length,
			Points: points,
		},
	})
	return 1
}

// ConeHull 构造扇形的凸包顶点（相对顶点坐标，x0, y0, x1, y1, ...）
// 张角小于 π 时结果为凸多边形
func ConeHull(facingX, facingY, angle, length float64) []float64 {
	fx, fy := utils.Normalize(facingX, facingY)
	if fx == 0 && fy == 0 {
		fx = 1
	}
	base := math.Atan2(fy, fx)
	half := angle / 2

	points := make([]float64, 0, (coneArcSegments+2)*2)
	points = append(points, 0, 0)
	for i := 0; i <= coneArcSegments; i++ {
		a := base - half + angle*float64(i)/coneArcSegments
		dx, dy := utils.FromAngle(a)
		points = append(points, dx*length, dy*length)
	}
	return points
}
