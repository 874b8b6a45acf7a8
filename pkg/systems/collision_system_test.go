package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/systems/attack"
	"github.com/gonewx/survivors/pkg/types"
)

func TestCollisionCircleOverlap(t *testing.T) {
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	collisions := NewCollisionSystem(em, bus)
	player := newTestPlayer(t, em, 0, 0)
	got := record[event.Collision](bus, event.TypeCollision)

	weapon := newTestWeapon(em, player, components.HitSpecComponent{BaseDamage: 1})
	b := newTestEnemy(em, 36, 0, 10)
	a := newTestEnemy(em, 26, 0, 10)
	miss := newTestEnemy(em, 100, 0, 10)
	em.AddComponent(a, &components.ColliderComponent{Shape: components.ColliderCircle, Layer: components.LayerEnemy, Radius: 12})
	em.AddComponent(b, &components.ColliderComponent{Shape: components.ColliderCircle, Layer: components.LayerEnemy, Radius: 12})
	em.AddComponent(miss, &components.ColliderComponent{Shape: components.ColliderCircle, Layer: components.LayerEnemy, Radius: 12})
	proj := newTestProjectile(em, weapon, player, 30, 0, 6, 0)

	collisions.Update()
	bus.Process()

	require.Len(t, got.events, 2)
	assert.Equal(t, proj, got.events[0].Source)
	assert.Equal(t, b, got.events[0].Target, "targets are reported in ID order")
	assert.Equal(t, a, got.events[1].Target)
	assert.Equal(t, 36.0, got.events[0].X)
	for _, ev := range got.events {
		assert.NotEqual(t, ev.Source, ev.Target, "the projectile never reports itself as the target")
	}
}

func TestSingleHitProjectileDamagesAndDespawns(t *testing.T) {
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	collisions := NewCollisionSystem(em, bus)
	NewHitSystem(em, bus, testRand(), &Clock{Tick: 1})
	player := newTestPlayer(t, em, 0, 0)
	dealt := record[event.DamageDealt](bus, event.TypeDamageDealt)

	weapon := newTestWeapon(em, player, components.HitSpecComponent{BaseDamage: 25})
	walker := newTestEnemy(em, 40, 0, 100)
	meteor := newTestProjectile(em, weapon, player, 40, -5, 12, 1)

	collisions.Update()
	bus.Process()

	require.Len(t, dealt.events, 1)
	assert.Equal(t, walker, dealt.events[0].Target)
	assert.False(t, em.IsAlive(meteor), "single-hit projectile is gone after its first contact")

	em.RemoveMarkedEntities()
	collisions.Update()
	bus.Process()
	assert.Len(t, dealt.events, 1)
}

func TestCollisionContainment(t *testing.T) {
	tests := []struct {
		name        string
		ex, ey      float64
		projRadius  float64
		wantOverlap bool
	}{
		{"圆心重合", 0, 0, 6, true},
		{"敌人完全位于区域内", 20, 0, 50, true},
		{"投射物完全位于敌人内", 3, 0, 2, true},
		{"恰好相切", 18, 0, 6, true},
		{"分离", 19, 0, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			bus := event.NewBus()
			collisions := NewCollisionSystem(em, bus)
			player := newTestPlayer(t, em, 0, 0)
			got := record[event.Collision](bus, event.TypeCollision)

			weapon := newTestWeapon(em, player, components.HitSpecComponent{BaseDamage: 1})
			enemy := newTestEnemy(em, tt.ex, tt.ey, 10)
			proj := newTestProjectile(em, weapon, player, 0, 0, tt.projRadius, 0)

			collisions.Update()
			bus.Process()

			if !tt.wantOverlap {
				assert.Empty(t, got.events)
				return
			}
			require.Len(t, got.events, 1)
			assert.Equal(t, proj, got.events[0].Source)
			assert.Equal(t, enemy, got.events[0].Target)
		})
	}
}

func TestCollisionConePolygon(t *testing.T) {
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	collisions := NewCollisionSystem(em, bus)
	player := newTestPlayer(t, em, 0, 0)
	got := record[event.Collision](bus, event.TypeCollision)

	weapon := newTestWeapon(em, player, components.HitSpecComponent{BaseDamage: 1})
	front := newTestEnemy(em, 40, 0, 10)
	behind := newTestEnemy(em, -40, 0, 10)

	cone := em.CreateChild(weapon)
	em.AddComponent(cone, &components.PositionComponent{X: 0, Y: 0})
	em.AddComponent(cone, &components.ProjectileComponent{Weapon: weapon, Owner: player, HitTargets: map[ecs.EntityID]bool{}})
	em.AddComponent(cone, &components.ColliderComponent{
		Shape:  components.ColliderPolygon,
		Layer:  components.LayerProjectile,
		Radius: 60,
		Points: attack.ConeHull(1, 0, math.Pi/2, 60),
	})

	collisions.Update()
	bus.Process()

	require.Len(t, got.events, 1)
	assert.Equal(t, front, got.events[0].Target)
	assert.NotEqual(t, behind, got.events[0].Target)

	// 只擦到扇形边缘的敌人同样算作重叠
	edge := newTestEnemy(em, 30, 40, 10)
	collisions.Update()
	bus.Process()
	require.Len(t, got.events, 3)
	assert.Equal(t, edge, got.events[2].Target)
}

func TestZoneTickDamageThroughCollision(t *testing.T) {
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	clock := &Clock{Tick: 1}
	collisions := NewCollisionSystem(em, bus)
	hits := NewHitSystem(em, bus, testRand(), clock)
	player := newTestPlayer(t, em, 0, 0)
	dealt := record[event.DamageDealt](bus, event.TypeDamageDealt)

	weapon := newTestWeapon(em, player, components.HitSpecComponent{
		BaseDamage: 4, Mode: types.DamageTick, TickInterval: 0.5,
	})
	centre := newTestEnemy(em, 0, 0, 100)
	inside := newTestEnemy(em, 20, 0, 100)
	outside := newTestEnemy(em, 100, 0, 100)
	newTestProjectile(em, weapon, player, 0, 0, 50, 0)

	// 1 秒内持续重叠：每个目标在第 0 和第 30 tick 各结算一次
	for tick := 0; tick < 60; tick++ {
		hits.Update(testStep)
		collisions.Update()
		bus.Process()
		clock.Tick++
	}

	perTarget := make(map[ecs.EntityID]int)
	for _, d := range dealt.events {
		perTarget[d.Target]++
	}
	assert.Equal(t, 2, perTarget[centre])
	assert.Equal(t, 2, perTarget[inside])
	assert.Zero(t, perTarget[outside])

	health, _ := ecs.GetComponent[*components.HealthComponent](em, inside)
	assert.Equal(t, 92.0, health.Current)
}

func TestOrbiterSweepHitsEachEnemyOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	clock := &Clock{Tick: 1}
	motion := NewProjectileMotionSystem(em)
	collisions := NewCollisionSystem(em, bus)
	NewHitSystem(em, bus, testRand(), clock)
	player := newTestPlayer(t, em, 0, 0)
	dealt := record[event.DamageDealt](bus, event.TypeDamageDealt)

	weapon := newTestWeapon(em, player, components.HitSpecComponent{BaseDamage: 5})
	top := newTestEnemy(em, 0, 40, 100)
	left := newTestEnemy(em, -40, 0, 100)
	bottom := newTestEnemy(em, 0, -40, 100)
	far := newTestEnemy(em, 100, 0, 100)

	orb := newTestProjectile(em, weapon, player, 40, 0, 8, 0)
	em.AddComponent(orb, &components.OrbitComponent{Center: player, Phase: 0, AngularSpeed: math.Pi, Radius: 40})

	// 2 秒转一整圈，依次扫过三个敌人
	for tick := 0; tick < 120; tick++ {
		motion.Update(testStep)
		collisions.Update()
		bus.Process()
		clock.Tick++
	}

	require.Len(t, dealt.events, 3)
	assert.Equal(t, top, dealt.events[0].Target)
	assert.Equal(t, left, dealt.events[1].Target)
	assert.Equal(t, bottom, dealt.events[2].Target)
	for _, d := range dealt.events {
		assert.NotEqual(t, far, d.Target)
		assert.Equal(t, 5.0, d.Amount)
	}
	assert.True(t, em.IsAlive(orb), "orbiters have unlimited hits")
}

func TestCollisionFollowsMovementAndPrunes(t *testing.T) {
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	collisions := NewCollisionSystem(em, bus)
	player := newTestPlayer(t, em, 0, 0)
	got := record[event.Collision](bus, event.TypeCollision)

	weapon := newTestWeapon(em, player, components.HitSpecComponent{BaseDamage: 1})
	enemy := newTestEnemy(em, 200, 0, 10)
	proj := newTestProjectile(em, weapon, player, 0, 0, 6, 0)

	collisions.Update()
	bus.Process()
	assert.Empty(t, got.events)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, proj)
	pos.X = 195
	collisions.Update()
	bus.Process()
	require.Len(t, got.events, 1)
	assert.Equal(t, enemy, got.events[0].Target)

	// 敌人死亡（待移除）后不再参与碰撞，形状被回收
	em.AddComponent(enemy, &components.PendingDespawnComponent{})
	collisions.Update()
	bus.Process()
	assert.Len(t, got.events, 1)
	assert.Equal(t, 1, collisions.Tracked())

	// 超出碰撞空间范围的实体不报告重叠
	far := newTestEnemy(em, 10000, 0, 10)
	pos.X = 10000
	collisions.Update()
	bus.Process()
	assert.Len(t, got.events, 1)
	assert.True(t, em.IsAlive(far))
}
