package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// EntityManager 管理所有实体和组件
//
// 除组件存储外，还维护：
//   - 父子索引（武器 → 其投射物，玩家 → 其武器/装备），销毁父实体时级联销毁子实体
//   - 本 tick 新建实体的水位线，供移动类系统跳过刚生成的实体
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
	// 待删除集合，用于去重和 IsAlive 判断
	pendingDestroy map[EntityID]bool

	// 父子关系
	parents  map[EntityID]EntityID
	children map[EntityID][]EntityID

	// 当前 tick 开始时的 nextID，ID >= 该值的实体是本 tick 新建的；0 表示尚未开始任何 tick
	tickWatermark uint64
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
		pendingDestroy:    make(map[EntityID]bool),
		parents:           make(map[EntityID]EntityID),
		children:          make(map[EntityID][]EntityID),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// CreateChild 创建新实体并挂到 parent 之下
func (em *EntityManager) CreateChild(parent EntityID) EntityID {
	id := em.CreateEntity()
	em.SetParent(id, parent)
	return id
}

// BeginTick 记录本 tick 的新实体水位线
func (em *EntityManager) BeginTick() {
	em.tickWatermark = em.nextID
}

// IsNew 判断实体是否在本 tick 内创建
func (em *EntityManager) IsNew(id EntityID) bool {
	return em.tickWatermark > 0 && uint64(id) >= em.tickWatermark
}

// Exists 判断实体是否仍在存储中（包括已标记待删除的实体）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// IsAlive 判断实体存在且未被标记删除
func (em *EntityManager) IsAlive(id EntityID) bool {
	if id == 0 {
		return false
	}
	if _, ok := em.components[id]; !ok {
		return false
	}
	return !em.pendingDestroy[id]
}

// DestroyEntity 标记实体待删除(不立即删除)
// 子实体会在 RemoveMarkedEntities 时一并删除
func (em *EntityManager) DestroyEntity(id EntityID) {
	if em.pendingDestroy[id] {
		return
	}
	if _, ok := em.components[id]; !ok {
		return
	}
	em.pendingDestroy[id] = true
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// SetParent 建立父子关系；child 已有父实体时先解除旧关系
func (em *EntityManager) SetParent(child, parent EntityID) {
	if child == parent || child == 0 {
		return
	}
	if old, ok := em.parents[child]; ok {
		em.detach(child, old)
	}
	if parent == 0 {
		return
	}
	em.parents[child] = parent
	em.children[parent] = append(em.children[parent], child)
}

// Parent 返回实体的父实体
func (em *EntityManager) Parent(child EntityID) (EntityID, bool) {
	p, ok := em.parents[child]
	return p, ok
}

// Children 返回实体的子实体列表（副本）
func (em *EntityManager) Children(parent EntityID) []EntityID {
	list := em.children[parent]
	out := make([]EntityID, len(list))
	copy(out, list)
	return out
}

func (em *EntityManager) detach(child, parent EntityID) {
	list := em.children[parent]
	for i, c := range list {
		if c == child {
			em.children[parent] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(em.children[parent]) == 0 {
		delete(em.children, parent)
	}
	delete(em.parents, child)
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
//
// 级联删除：被删除实体的所有后代一并删除，并从父实体的子列表中摘除，
// 保证不会留下悬空的父子引用。
func (em *EntityManager) RemoveMarkedEntities() {
	for i := 0; i < len(em.entitiesToDestroy); i++ {
		id := em.entitiesToDestroy[i]
		// 子实体追加到待删除列表尾部，同一轮内处理
		for _, child := range em.children[id] {
			if !em.pendingDestroy[child] {
				em.pendingDestroy[child] = true
				em.entitiesToDestroy = append(em.entitiesToDestroy, child)
			}
		}
	}

	for _, id := range em.entitiesToDestroy {
		if parent, ok := em.parents[id]; ok {
			em.detach(id, parent)
		}
		delete(em.children, id)
		delete(em.components, id)
		delete(em.pendingDestroy, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// EntityCount 返回当前存储中的实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表，按ID升序（保证每个 tick 的遍历顺序确定）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
