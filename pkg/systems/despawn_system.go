package systems

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/entities"
	"github.com/gonewx/survivors/pkg/event"
)

// DespawnSystem 敌人死亡后的处理
//
// EnemyDied 时在敌人最终位置生成经验宝石；
// 待移除的敌人在标记后的下一个 tick 才真正销毁。
type DespawnSystem struct {
	entityManager *ecs.EntityManager
	clock         *Clock
}

// NewDespawnSystem 创建移除系统并订阅 EnemyDied
func NewDespawnSystem(em *ecs.EntityManager, bus *event.Bus, clock *Clock) *DespawnSystem {
	s := &DespawnSystem{
		entityManager: em,
		clock:         clock,
	}
	bus.Subscribe(event.TypeEnemyDied, s.onEnemyDied)
	return s
}

func (s *DespawnSystem) onEnemyDied(ev event.Event) []event.Event {
	e := ev.(event.EnemyDied)
	if e.XPValue > 0 {
		entities.NewXPGem(s.entityManager, e.X, e.Y, e.XPValue)
	}
	return nil
}

// Update 销毁在更早 tick 中标记的实体，返回销毁数量
func (s *DespawnSystem) Update() int {
	removed := 0
	for _, id := range ecs.GetEntitiesWith1[*components.PendingDespawnComponent](s.entityManager) {
		pending, _ := ecs.GetComponent[*components.PendingDespawnComponent](s.entityManager, id)
		if pending.MarkedTick < s.clock.Tick {
			s.entityManager.DestroyEntity(id)
			removed++
		}
	}
	return removed
}
