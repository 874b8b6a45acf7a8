package entities

import (
	"fmt"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
)

// PlayerSprite 玩家精灵路径
const PlayerSprite = "player/hero.png"

// NewPlayer 创建玩家实体
//
// 派生属性先用基础属性填充，调用方随后应发布 StatsDirty 让 StatSystem 重算。
func NewPlayer(em *ecs.EntityManager, x, y float64, cfg *config.CombatConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("combat config cannot be nil")
	}

	id := em.CreateEntity()
	base := cfg.Player.Base

	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.FacingComponent{X: 1, Y: 0})
	em.AddComponent(id, &components.PlayerComponent{Radius: cfg.Player.Radius})
	em.AddComponent(id, &components.BaseStatsComponent{Stats: base})
	em.AddComponent(id, &components.UpgradeStatsComponent{})
	em.AddComponent(id, &components.DerivedStatsComponent{Stats: base})
	em.AddComponent(id, &components.HealthComponent{
		Current: base.Get(types.StatMaxHealth),
		Max:     base.Get(types.StatMaxHealth),
	})
	em.AddComponent(id, &components.ExperienceComponent{
		Level:    1,
		Base:     cfg.Experience.Base,
		Exponent: cfg.Experience.Exponent,
	})
	em.AddComponent(id, &components.ColliderComponent{
		Shape:  components.ColliderCircle,
		Layer:  components.LayerPlayer,
		Radius: cfg.Player.Radius,
	})
	em.AddComponent(id, &components.SpriteComponent{Path: PlayerSprite})

	return id, nil
}
