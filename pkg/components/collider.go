package components

// ColliderShape 碰撞体形状
type ColliderShape int

const (
	ColliderCircle ColliderShape = iota
	// ColliderPolygon 凸多边形，Points 为相对实体位置的顶点 (x0, y0, x1, y1, ...)
	ColliderPolygon
)

// ColliderLayer 碰撞分组
type ColliderLayer int

const (
	LayerProjectile ColliderLayer = iota
	LayerEnemy
	LayerPlayer
)

// ColliderComponent 定义实体参与碰撞检测的几何形状
type ColliderComponent struct {
	Shape  ColliderShape
	Layer  ColliderLayer
	Radius float64
	Points []float64
}
