package entities

import (
	"fmt"
	"log"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
)

// SpawnRequest 波次导演发出的生成请求
type SpawnRequest struct {
	Type       types.EnemyType
	X, Y       float64
	SpritePath string // 为空时使用敌人配置中的默认精灵
	// Power 生成时所在波次的强度等级，0 表示沿用已广播的等级
	Power float64
}

// EnemyFactory 默认的敌人生成器
//
// 监听强度等级变化，新生成的敌人生命值与接触伤害按
// 1 + powerScaling × (power - 1) 缩放。
type EnemyFactory struct {
	em            *ecs.EntityManager
	stats         *config.EnemiesConfig
	powerScaling  float64
	meleeCooldown float64
	power         map[types.EnemyType]float64
}

// NewEnemyFactory 创建敌人生成器
func NewEnemyFactory(em *ecs.EntityManager, stats *config.EnemiesConfig, powerScaling, meleeCooldown float64) *EnemyFactory {
	return &EnemyFactory{
		em:            em,
		stats:         stats,
		powerScaling:  powerScaling,
		meleeCooldown: meleeCooldown,
		power:         make(map[types.EnemyType]float64),
	}
}

// SetPowerLevel 更新某类型敌人的强度等级
func (f *EnemyFactory) SetPowerLevel(t types.EnemyType, power float64) {
	f.power[t] = power
}

// PowerMultiplier 返回某类型敌人当前的强度倍率
func (f *EnemyFactory) PowerMultiplier(t types.EnemyType) float64 {
	power, ok := f.power[t]
	if !ok {
		power = 1
	}
	m := 1 + f.powerScaling*(power-1)
	if m < 0.1 {
		m = 0.1
	}
	return m
}

// SpawnEnemy 按请求创建敌人实体
func (f *EnemyFactory) SpawnEnemy(req SpawnRequest) (ecs.EntityID, error) {
	if f.em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	stats, ok := f.stats.Stats(req.Type)
	if !ok {
		return 0, fmt.Errorf("no stats for enemy type %s", req.Type)
	}

	if req.Power > 0 {
		f.SetPowerLevel(req.Type, req.Power)
	}
	mult := f.PowerMultiplier(req.Type)
	id := f.em.CreateEntity()

	f.em.AddComponent(id, &components.PositionComponent{X: req.X, Y: req.Y})
	f.em.AddComponent(id, &components.EnemyComponent{
		Type:          req.Type,
		Speed:         stats.Speed,
		ContactDamage: stats.ContactDamage * mult,
		XPValue:       stats.XPValue,
		Radius:        stats.Radius,
	})
	f.em.AddComponent(id, &components.HealthComponent{
		Current: stats.Health * mult,
		Max:     stats.Health * mult,
	})
	f.em.AddComponent(id, &components.KnockbackComponent{})
	f.em.AddComponent(id, &components.MeleeCooldownComponent{Interval: f.meleeCooldown})
	f.em.AddComponent(id, &components.ColliderComponent{
		Shape:  components.ColliderCircle,
		Layer:  components.LayerEnemy,
		Radius: stats.Radius,
	})

	sprite := req.SpritePath
	if sprite == "" {
		sprite = stats.Sprite
	}
	f.em.AddComponent(id, &components.SpriteComponent{Path: sprite})
	tint := components.NormalTint()
	f.em.AddComponent(id, &tint)

	log.Printf("[EnemyFactory] Spawned %s (entity %d) at (%.1f, %.1f), power x%.2f", req.Type, id, req.X, req.Y, mult)
	return id, nil
}
