package systems

import (
	"math"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/systems/attack"
	"github.com/gonewx/survivors/pkg/types"
	"github.com/gonewx/survivors/pkg/utils"
)

// ProjectileMotionSystem 非直线投射物的运动：环绕、追踪、下落
//
// 环绕体直接写位置；追踪体写速度，由 MovementSystem 积分；
// 下落体到达目标高度后销毁。
type ProjectileMotionSystem struct {
	entityManager *ecs.EntityManager
}

// NewProjectileMotionSystem 创建投射物运动系统
func NewProjectileMotionSystem(em *ecs.EntityManager) *ProjectileMotionSystem {
	return &ProjectileMotionSystem{entityManager: em}
}

// Update 更新所有特殊运动的投射物
func (s *ProjectileMotionSystem) Update(dt float64) {
	s.updateOrbiters(dt)
	s.updateHoming(dt)
	s.updateFalling()
}

func (s *ProjectileMotionSystem) updateOrbiters(dt float64) {
	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith2[*components.OrbitComponent, *components.PositionComponent](em) {
		if !em.IsAlive(id) || em.IsNew(id) {
			continue
		}
		orbit, _ := ecs.GetComponent[*components.OrbitComponent](em, id)
		center, ok := ecs.GetComponent[*components.PositionComponent](em, orbit.Center)
		if !ok || !em.IsAlive(orbit.Center) {
			// 中心消失后原地等待过期
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		orbit.Phase = math.Mod(orbit.Phase+orbit.AngularSpeed*dt, 2*math.Pi)
		pos.X = center.X + math.Cos(orbit.Phase)*orbit.Radius
		pos.Y = center.Y + math.Sin(orbit.Phase)*orbit.Radius
	}
}

func (s *ProjectileMotionSystem) updateHoming(dt float64) {
	em := s.entityManager
	ids := ecs.GetEntitiesWith3[*components.HomingComponent, *components.PositionComponent, *components.VelocityComponent](em)
	for _, id := range ids {
		if !em.IsAlive(id) || em.IsNew(id) {
			continue
		}
		h, _ := ecs.GetComponent[*components.HomingComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)

		// 目标失效时重新锁定最近的敌人；没有敌人则保持当前方向
		if !attack.IsTargetable(em, h.Target) {
			if next, ok := attack.NearestEnemy(em, pos.X, pos.Y, 0, nil); ok {
				h.Target = next
			} else {
				h.Target = 0
			}
		}

		if h.Target != 0 {
			tpos, _ := ecs.GetComponent[*components.PositionComponent](em, h.Target)
			wantX, wantY := utils.Normalize(tpos.X-pos.X, tpos.Y-pos.Y)
			if wantX != 0 || wantY != 0 {
				blend := 1.0
				if h.TurnRate > 0 {
					blend = math.Min(1, h.TurnRate*dt)
				}
				dx := utils.Lerp(h.DirX, wantX, blend)
				dy := utils.Lerp(h.DirY, wantY, blend)
				if nx, ny := utils.Normalize(dx, dy); nx != 0 || ny != 0 {
					h.DirX, h.DirY = nx, ny
				}
			}
		}

		h.Elapsed += dt
		ox, oy := patternOffset(h, dt)
		vel.VX = h.DirX*h.Speed + ox
		vel.VY = h.DirY*h.Speed + oy
	}
}

// patternOffset 运动模式叠加在基础方向上的侧向速度
func patternOffset(h *components.HomingComponent, dt float64) (float64, float64) {
	px, py := utils.Perp(h.DirX, h.DirY)
	switch h.Pattern {
	case types.PatternZigzag:
		if h.Frequency > 0 {
			h.ZigzagTimer -= dt
			for h.ZigzagTimer <= 0 {
				h.ZigzagSign = -h.ZigzagSign
				h.ZigzagTimer += 1 / h.Frequency
			}
		}
		return px * h.Amplitude * h.ZigzagSign, py * h.Amplitude * h.ZigzagSign
	case types.PatternWave:
		k := math.Sin(2*math.Pi*h.Frequency*h.Elapsed) * h.Amplitude
		return px * k, py * k
	case types.PatternSpiral:
		h.SpiralAngle += 2 * math.Pi * h.Frequency * dt
		rx, ry := utils.Rotate(h.DirX, h.DirY, h.SpiralAngle)
		return rx * h.Amplitude, ry * h.Amplitude
	}
	return 0, 0
}

func (s *ProjectileMotionSystem) updateFalling() {
	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith2[*components.FallingComponent, *components.PositionComponent](em) {
		if !em.IsAlive(id) {
			continue
		}
		falling, _ := ecs.GetComponent[*components.FallingComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if pos.Y >= falling.TargetY {
			em.DestroyEntity(id)
		}
	}
}
