package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
}

func TestGenericComponentAccess(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 100, Y: 200})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("Velocity component should not be found")
	}

	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("HasComponent should report position")
	}

	RemoveComponent[*testPositionComponent](em, id)
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Position should be removed")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在，但已不再存活
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should still exist before cleanup")
	}
	if em.IsAlive(id) {
		t.Error("Entity marked for destroy should not be alive")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}

	// 重复删除不会出错
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()
}

func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0)
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			em.AddComponent(id, &testVelocityComponent{})
			ids = append(ids, id)
		}
	}

	result := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(result) != len(ids) {
		t.Fatalf("Expected %d entities, got %d", len(ids), len(result))
	}
	for i := range result {
		if result[i] != ids[i] {
			t.Fatalf("Query result must be sorted by ID: index %d got %d want %d", i, result[i], ids[i])
		}
	}

	all := GetEntitiesWith1[*testPositionComponent](em)
	if len(all) != 50 {
		t.Errorf("Expected 50 entities with Position component, got %d", len(all))
	}
}

func TestCascadingDestroy(t *testing.T) {
	t.Run("销毁父实体会级联销毁所有后代", func(t *testing.T) {
		em := NewEntityManager()
		owner := em.CreateEntity()
		weapon := em.CreateChild(owner)
		p1 := em.CreateChild(weapon)
		p2 := em.CreateChild(weapon)
		other := em.CreateEntity()

		em.DestroyEntity(weapon)
		em.RemoveMarkedEntities()

		for _, id := range []EntityID{weapon, p1, p2} {
			if em.Exists(id) {
				t.Errorf("entity %d should be destroyed with its parent", id)
			}
		}
		if !em.IsAlive(owner) || !em.IsAlive(other) {
			t.Error("unrelated entities must survive")
		}
		if len(em.Children(owner)) != 0 {
			t.Errorf("owner should have no dangling children, got %v", em.Children(owner))
		}
	})

	t.Run("销毁子实体会从父实体索引中摘除", func(t *testing.T) {
		em := NewEntityManager()
		weapon := em.CreateEntity()
		p1 := em.CreateChild(weapon)
		p2 := em.CreateChild(weapon)

		em.DestroyEntity(p1)
		em.RemoveMarkedEntities()

		children := em.Children(weapon)
		if len(children) != 1 || children[0] != p2 {
			t.Errorf("expected only p2 to remain, got %v", children)
		}
		if _, ok := em.Parent(p1); ok {
			t.Error("destroyed child must not keep a parent link")
		}
	})

	t.Run("重新挂接父实体", func(t *testing.T) {
		em := NewEntityManager()
		a := em.CreateEntity()
		b := em.CreateEntity()
		c := em.CreateChild(a)

		em.SetParent(c, b)
		if len(em.Children(a)) != 0 {
			t.Error("old parent should lose the child")
		}
		if p, _ := em.Parent(c); p != b {
			t.Errorf("expected parent %d, got %d", b, p)
		}
	})
}

func TestIsNewWatermark(t *testing.T) {
	em := NewEntityManager()
	old := em.CreateEntity()

	em.BeginTick()
	fresh := em.CreateEntity()

	if em.IsNew(old) {
		t.Error("entity created before BeginTick should not be new")
	}
	if !em.IsNew(fresh) {
		t.Error("entity created after BeginTick should be new")
	}

	em.BeginTick()
	if em.IsNew(fresh) {
		t.Error("entity should stop being new on the next tick")
	}
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 1000; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{})
		if i%3 == 0 {
			em.AddComponent(id, &testVelocityComponent{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	}
}
