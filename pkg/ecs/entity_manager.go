// Package ecs 实现一个最小的实体-组件存储
//
// 组件按具体类型（通常是指针类型）索引，每个实体每种类型最多一个组件。
// 系统通过 GetEntitiesWith 系列函数查询实体，结果按实体创建顺序返回。
package ecs

import "reflect"

// EntityID 是实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

type componentSet map[reflect.Type]any

// EntityManager 管理所有实体和组件
//
// 销毁是延迟的：DestroyEntity 只做标记，直到 RemoveMarkedEntities 才真正删除，
// 这样系统可以在遍历实体的同时安全地销毁实体。
type EntityManager struct {
	nextID EntityID
	// order 存活实体，按创建顺序
	order      []EntityID
	components map[EntityID]componentSet
	marked     map[EntityID]struct{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]componentSet),
		marked:     make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回唯一 ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.components[id] = make(componentSet)
	em.order = append(em.order, id)
	return id
}

// DestroyEntity 标记实体待删除，重复标记无副作用
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.components[id]; ok {
		em.marked[id] = struct{}{}
	}
}

// IsAlive 实体存在且未被标记删除
func (em *EntityManager) IsAlive(id EntityID) bool {
	if _, ok := em.components[id]; !ok {
		return false
	}
	_, dying := em.marked[id]
	return !dying
}

// AddComponent 为实体添加组件，同类型的旧组件会被替换
// 对不存在的实体调用时忽略
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if set, ok := em.components[id]; ok {
		set[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	delete(em.components[id], componentType)
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comp, ok := em.components[id][componentType]
	return comp, ok
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.components[id][componentType]
	return ok
}

// RemoveMarkedEntities 删除所有被标记的实体
// 每帧系统更新结束后调用一次
func (em *EntityManager) RemoveMarkedEntities() {
	if len(em.marked) == 0 {
		return
	}

	alive := em.order[:0]
	for _, id := range em.order {
		if _, dying := em.marked[id]; dying {
			delete(em.components, id)
			continue
		}
		alive = append(alive, id)
	}
	em.order = alive
	clear(em.marked)
}

// EntityCount 返回当前未被删除的实体数量（包括已标记但尚未清理的实体）
func (em *EntityManager) EntityCount() int {
	return len(em.order)
}

// GetEntitiesWith 查询拥有全部指定组件类型的实体，按创建顺序返回
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	var result []EntityID

next:
	for _, id := range em.order {
		set := em.components[id]
		for _, ct := range componentTypes {
			if _, ok := set[ct]; !ok {
				continue next
			}
		}
		result = append(result, id)
	}

	return result
}

// typeOf 返回泛型参数 T 的 reflect.Type
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent 泛型版本的组件查询，避免调用方手写类型断言
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 泛型版本的组件存在性检查
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// RemoveComponent 泛型版本的组件移除
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有组件 T1 的实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1]())
}

// GetEntitiesWith2 查询同时拥有组件 T1、T2 的实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 查询同时拥有组件 T1、T2、T3 的实体
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}
