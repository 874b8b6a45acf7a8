package entities

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
)

// XPGemSprite 经验宝石精灵路径
const XPGemSprite = "pickups/xp_gem.png"

// NewXPGem 在 (x, y) 生成经验宝石
func NewXPGem(em *ecs.EntityManager, x, y, value float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.XPGemComponent{Value: value})
	em.AddComponent(id, &components.SpriteComponent{Path: XPGemSprite})
	return id
}

// NewItem 创建装备实体并挂到 owner 之下（EquippedTo 关系）
func NewItem(em *ecs.EntityManager, registry *config.ItemRegistry, owner ecs.EntityID, itemID string, level int) ecs.EntityID {
	id := em.CreateChild(owner)
	em.AddComponent(id, &components.ItemComponent{ID: itemID, Level: level, Owner: owner})

	add, mul := registry.Modifiers(itemID, level)
	em.AddComponent(id, &components.ItemModifiersComponent{Add: add, Mul: mul})
	return id
}
