package systems

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/systems/attack"
)

const (
	// collisionSpaceSize 碰撞空间边长（像素），以玩家为中心
	collisionSpaceSize = 8192
	// collisionCellSize 空间划分网格大小
	collisionCellSize = 64
)

var (
	tagEnemy      = resolv.NewTag("enemy")
	tagProjectile = resolv.NewTag("projectile")
)

// trackedShape 实体在碰撞空间中的形状
type trackedShape struct {
	shape   resolv.IShape
	inSpace bool
}

// CollisionSystem 投射物与敌人的重叠检测
//
// 每个带碰撞体的实体持有一个 resolv 形状，每 tick 同步位置；
// 空间以玩家为中心平移，超出空间范围的形状暂时移出。
// 只报告原始重叠（Collision 事件），伤害模式由 HitSystem 处理。
type CollisionSystem struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
	space         *resolv.Space
	shapes        map[ecs.EntityID]*trackedShape
	owners        map[resolv.IShape]ecs.EntityID
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(em *ecs.EntityManager, bus *event.Bus) *CollisionSystem {
	return &CollisionSystem{
		entityManager: em,
		bus:           bus,
		space:         resolv.NewSpace(collisionSpaceSize, collisionSpaceSize, collisionCellSize, collisionCellSize),
		shapes:        make(map[ecs.EntityID]*trackedShape),
		owners:        make(map[resolv.IShape]ecs.EntityID),
	}
}

// Update 同步形状并发布本 tick 的所有重叠
func (s *CollisionSystem) Update() {
	em := s.entityManager
	ox, oy := 0.0, 0.0
	if player, ok := FindPlayer(em); ok {
		ppos, _ := ecs.GetComponent[*components.PositionComponent](em, player)
		ox, oy = ppos.X, ppos.Y
	}

	enemies := attack.LiveEnemies(em)
	projectiles := s.liveProjectiles()

	seen := make(map[ecs.EntityID]bool, len(enemies)+len(projectiles))
	for _, id := range enemies {
		seen[id] = true
		s.sync(id, tagEnemy, ox, oy)
	}
	for _, id := range projectiles {
		seen[id] = true
		s.sync(id, tagProjectile, ox, oy)
	}
	s.prune(seen)

	for _, id := range projectiles {
		tracked := s.shapes[id]
		if tracked == nil || !tracked.inSpace {
			continue
		}
		s.test(id, tracked.shape)
	}
}

// liveProjectiles 存活且武器仍然存在的投射物（按 ID 升序）
func (s *CollisionSystem) liveProjectiles() []ecs.EntityID {
	em := s.entityManager
	ids := ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.ColliderComponent, *components.PositionComponent](em)
	out := ids[:0]
	for _, id := range ids {
		if !em.IsAlive(id) {
			continue
		}
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		if !em.IsAlive(proj.Weapon) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// sync 确保实体拥有形状并更新其空间坐标
func (s *CollisionSystem) sync(id ecs.EntityID, tag resolv.Tags, ox, oy float64) {
	em := s.entityManager
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

	tracked, ok := s.shapes[id]
	if !ok {
		shape := s.newShape(id, pos)
		if shape == nil {
			return
		}
		shape.Tags().Set(tag)
		tracked = &trackedShape{shape: shape}
		s.shapes[id] = tracked
		s.owners[shape] = id
	}

	half := float64(collisionSpaceSize) / 2
	x, y := pos.X-ox+half, pos.Y-oy+half
	inBounds := x >= 0 && y >= 0 && x < collisionSpaceSize && y < collisionSpaceSize

	tracked.shape.SetPosition(x, y)
	switch {
	case inBounds && !tracked.inSpace:
		s.space.Add(tracked.shape)
		tracked.inSpace = true
	case !inBounds && tracked.inSpace:
		s.space.Remove(tracked.shape)
		tracked.inSpace = false
	}
}

// newShape 根据碰撞体组件创建形状
func (s *CollisionSystem) newShape(id ecs.EntityID, pos *components.PositionComponent) resolv.IShape {
	collider, ok := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)
	if !ok {
		// 没有碰撞体的敌人按配置半径处理
		enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		if !ok {
			return nil
		}
		return resolv.NewCircle(pos.X, pos.Y, enemy.Radius)
	}
	if collider.Shape == components.ColliderPolygon && len(collider.Points) >= 6 {
		return resolv.NewConvexPolygon(pos.X, pos.Y, collider.Points)
	}
	return resolv.NewCircle(pos.X, pos.Y, collider.Radius)
}

// prune 移除已不再参与碰撞的实体形状
func (s *CollisionSystem) prune(seen map[ecs.EntityID]bool) {
	for id, tracked := range s.shapes {
		if seen[id] {
			continue
		}
		if tracked.inSpace {
			s.space.Remove(tracked.shape)
		}
		delete(s.owners, tracked.shape)
		delete(s.shapes, id)
	}
}

// test 检测单个投射物与敌人的重叠，按目标 ID 升序发布
//
// resolv 只负责宽相位（网格候选），窄相位自行判定，
// 以覆盖完全包含与圆心重合的情况。
func (s *CollisionSystem) test(source ecs.EntityID, shape resolv.IShape) {
	var targets []ecs.EntityID
	shape.SelectTouchingCells(0).FilterShapes().ByTags(tagEnemy).ForEach(func(other resolv.IShape) bool {
		id, ok := s.owners[other]
		if !ok || id == source {
			return true
		}
		if Overlaps(shape, other) {
			targets = append(targets, id)
		}
		return true
	})
	if len(targets) == 0 {
		return
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

	for i, target := range targets {
		if i > 0 && targets[i-1] == target {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, target)
		if !ok {
			continue
		}
		s.bus.Publish(event.Collision{
			Source: source,
			Target: target,
			X:      pos.X,
			Y:      pos.Y,
		})
	}
}

// Overlaps 两个形状是否重叠（含接触与完全包含）
func Overlaps(a, b resolv.IShape) bool {
	switch sa := a.(type) {
	case *resolv.Circle:
		switch sb := b.(type) {
		case *resolv.Circle:
			return circlesOverlap(sa.Position(), sa.Radius(), sb.Position(), sb.Radius())
		case *resolv.ConvexPolygon:
			return polygonCircleOverlap(sb.Transformed(), sa.Position(), sa.Radius())
		}
	case *resolv.ConvexPolygon:
		switch sb := b.(type) {
		case *resolv.Circle:
			return polygonCircleOverlap(sa.Transformed(), sb.Position(), sb.Radius())
		case *resolv.ConvexPolygon:
			return a.IsIntersecting(b) || polygonContains(sa.Transformed(), sb.Position()) || polygonContains(sb.Transformed(), sa.Position())
		}
	}
	return a.IsIntersecting(b)
}

func circlesOverlap(a resolv.Vector, ra float64, b resolv.Vector, rb float64) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	r := ra + rb
	return dx*dx+dy*dy <= r*r
}

// polygonCircleOverlap 圆心在多边形内，或任一边到圆心的距离不超过半径
func polygonCircleOverlap(verts []resolv.Vector, c resolv.Vector, r float64) bool {
	if len(verts) < 3 {
		return false
	}
	if polygonContains(verts, c) {
		return true
	}
	for i := range verts {
		a, b := verts[i], verts[(i+1)%len(verts)]
		if segmentDistSq(a, b, c) <= r*r {
			return true
		}
	}
	return false
}

// polygonContains 点是否在凸多边形内（含边界），与顶点绕向无关
func polygonContains(verts []resolv.Vector, p resolv.Vector) bool {
	if len(verts) < 3 {
		return false
	}
	sign := 0
	for i := range verts {
		a, b := verts[i], verts[(i+1)%len(verts)]
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}

func segmentDistSq(a, b, p resolv.Vector) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	t := 0.0
	if l := abx*abx + aby*aby; l > 0 {
		t = (apx*abx + apy*aby) / l
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	dx, dy := apx-abx*t, apy-aby*t
	return dx*dx + dy*dy
}

// Tracked 当前持有形状的实体数量
func (s *CollisionSystem) Tracked() int {
	return len(s.shapes)
}
