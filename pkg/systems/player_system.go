package systems

import (
	"math"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
	"github.com/gonewx/survivors/pkg/utils"
)

// PlayerSystem 玩家移动、朝向和生命恢复
type PlayerSystem struct {
	entityManager *ecs.EntityManager
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(em *ecs.EntityManager) *PlayerSystem {
	return &PlayerSystem{entityManager: em}
}

// FindPlayer 返回唯一的玩家实体；不存在时返回 false
func FindPlayer(em *ecs.EntityManager) (ecs.EntityID, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](em) {
		if em.IsAlive(id) {
			return id, true
		}
	}
	return 0, false
}

// SetMoveInput 设置移动输入，长度超过 1 时归一化
func (s *PlayerSystem) SetMoveInput(x, y float64) {
	id, ok := FindPlayer(s.entityManager)
	if !ok {
		return
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	if utils.Length(x, y) > 1 {
		x, y = utils.Normalize(x, y)
	}
	player.MoveX, player.MoveY = x, y
}

// Update 没有玩家时静默跳过
func (s *PlayerSystem) Update(dt float64) {
	em := s.entityManager
	id, ok := FindPlayer(em)
	if !ok {
		return
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

	stats := components.DefaultBaseStats()
	if derived, ok := ecs.GetComponent[*components.DerivedStatsComponent](em, id); ok {
		stats = derived.Stats
	}

	health, hasHealth := ecs.GetComponent[*components.HealthComponent](em, id)
	if hasHealth && health.Current <= 0 {
		return
	}

	if player.MoveX != 0 || player.MoveY != 0 {
		speed := stats.Get(types.StatMoveSpeed)
		pos.X += player.MoveX * speed * dt
		pos.Y += player.MoveY * speed * dt
		if facing, ok := ecs.GetComponent[*components.FacingComponent](em, id); ok {
			facing.X, facing.Y = utils.Normalize(player.MoveX, player.MoveY)
		}
	}

	// 生命恢复按整点结算
	if hasHealth {
		player.RegenAccumulator += stats.Get(types.StatRecovery) * dt
		if player.RegenAccumulator >= 1 {
			whole := math.Floor(player.RegenAccumulator)
			player.RegenAccumulator -= whole
			health.Current = math.Min(health.Max, health.Current+whole)
		}
	}
}
