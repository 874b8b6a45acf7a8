package systems

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
)

// MovementSystem 将速度积分到位置
//
// 敌人的位移由 EnemyAISystem 负责（追击 + 击退），这里跳过；
// 本 tick 新建的实体也跳过，投射物从生成后的下一个 tick 开始移动。
type MovementSystem struct {
	entityManager *ecs.EntityManager
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager) *MovementSystem {
	return &MovementSystem{entityManager: em}
}

// Update 积分所有带速度的实体
func (s *MovementSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](s.entityManager)
	for _, id := range ids {
		if !s.entityManager.IsAlive(id) || s.entityManager.IsNew(id) {
			continue
		}
		if ecs.HasComponent[*components.EnemyComponent](s.entityManager, id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		pos.X += vel.VX * dt
		pos.Y += vel.VY * dt
	}
}
