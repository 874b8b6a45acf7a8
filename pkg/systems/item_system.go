package systems

import (
	"log"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/entities"
	"github.com/gonewx/survivors/pkg/event"
)

// ItemSystem 装备获取与升级
// 装备等级变化时从注册表重算该装备的修正，并通知 StatSystem 重算拥有者属性
type ItemSystem struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
	registry      *config.ItemRegistry
}

// NewItemSystem 创建装备系统并订阅 ItemLevelChanged
func NewItemSystem(em *ecs.EntityManager, bus *event.Bus, registry *config.ItemRegistry) *ItemSystem {
	s := &ItemSystem{
		entityManager: em,
		bus:           bus,
		registry:      registry,
	}
	bus.Subscribe(event.TypeItemLevelChanged, s.onItemLevelChanged)
	return s
}

// Find 返回 owner 已装备的指定装备
func (s *ItemSystem) Find(owner ecs.EntityID, itemID string) (ecs.EntityID, bool) {
	for _, child := range s.entityManager.Children(owner) {
		item, ok := ecs.GetComponent[*components.ItemComponent](s.entityManager, child)
		if ok && item.ID == itemID {
			return child, true
		}
	}
	return 0, false
}

// Level 返回 owner 持有的装备等级，未持有返回 0
func (s *ItemSystem) Level(owner ecs.EntityID, itemID string) int {
	id, ok := s.Find(owner, itemID)
	if !ok {
		return 0
	}
	item, _ := ecs.GetComponent[*components.ItemComponent](s.entityManager, id)
	return item.Level
}

// CanAdvance 装备未持有或未满级
func (s *ItemSystem) CanAdvance(owner ecs.EntityID, itemID string) bool {
	max := s.registry.MaxLevel(itemID)
	return max > 0 && s.Level(owner, itemID) < max
}

// Equip 获取装备：未持有则以 1 级装备，已持有则升一级（不超过最大等级）
// 返回装备实体和是否发生了变化
func (s *ItemSystem) Equip(owner ecs.EntityID, itemID string) (ecs.EntityID, bool) {
	if !s.entityManager.IsAlive(owner) {
		return 0, false
	}

	if id, ok := s.Find(owner, itemID); ok {
		item, _ := ecs.GetComponent[*components.ItemComponent](s.entityManager, id)
		max := s.registry.MaxLevel(itemID)
		if max > 0 && item.Level >= max {
			return id, false
		}
		item.Level++
		s.bus.Publish(event.ItemLevelChanged{Owner: owner, Item: id, ID: itemID, Level: item.Level})
		log.Printf("[ItemSystem] %s upgraded to level %d (owner %d)", itemID, item.Level, owner)
		return id, true
	}

	id := entities.NewItem(s.entityManager, s.registry, owner, itemID, 1)
	s.bus.Publish(event.ItemLevelChanged{Owner: owner, Item: id, ID: itemID, Level: 1})
	log.Printf("[ItemSystem] Equipped %s (entity %d) on owner %d", itemID, id, owner)
	return id, true
}

// onItemLevelChanged 从注册表重算装备修正，然后标记拥有者属性需要重算
func (s *ItemSystem) onItemLevelChanged(ev event.Event) []event.Event {
	e := ev.(event.ItemLevelChanged)
	item, ok := ecs.GetComponent[*components.ItemComponent](s.entityManager, e.Item)
	if !ok {
		return nil
	}
	add, mul := s.registry.Modifiers(item.ID, item.Level)

	mods, ok := ecs.GetComponent[*components.ItemModifiersComponent](s.entityManager, e.Item)
	if !ok {
		mods = &components.ItemModifiersComponent{}
		s.entityManager.AddComponent(e.Item, mods)
	}
	mods.Add = add
	mods.Mul = mul

	return []event.Event{event.StatsDirty{Owner: item.Owner}}
}
