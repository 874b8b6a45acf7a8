package components

import "github.com/gonewx/survivors/pkg/ecs"

// ItemComponent 装备实体：字符串 ID + 等级
// 装备实体是拥有者的子实体（EquippedTo 关系），Owner 为显式反向引用
type ItemComponent struct {
	ID    string
	Level int
	Owner ecs.EntityID
}
