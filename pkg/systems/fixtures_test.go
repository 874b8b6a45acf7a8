package systems

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/entities"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/types"
)

const testStep = 1.0 / 60.0

const testWeaponsYAML = `
weapons:
  - id: bolt
    name: Bolt
    base_damage: 10
    cooldown: 1.0
    knockback: 100
    behavior: { variant: shot, speed: 300, radius: 6 }
    levels:
      - { damage: 5 }
      - { cooldown: -0.5 }
  - id: aura
    name: Aura
    base_damage: 4
    cooldown: 2.0
    damage_mode: tick
    tick_interval: 0.5
    behavior: { variant: zone, zone_radius: 50, lifetime: 4 }
`

const testItemsYAML = `
items:
  whetstone:
    name: Whetstone
    max_level: 3
    modifiers:
      - { stat: attack, rule: linear_add, base: 0, per_level: 3 }
      - { stat: attack, rule: exp_mul, base: 1.1, per_level: 1 }
  armor_plate:
    name: Armor Plate
    max_level: 2
    modifiers:
      - { stat: armor, rule: linear_add, base: 0, per_level: 0.6 }
`

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func testWeapons(t *testing.T) *config.WeaponsConfig {
	t.Helper()
	cfg, err := config.ParseWeapons([]byte(testWeaponsYAML))
	require.NoError(t, err)
	return cfg
}

func testItems(t *testing.T) *config.ItemRegistry {
	t.Helper()
	reg, err := config.ParseItems([]byte(testItemsYAML))
	require.NoError(t, err)
	return reg
}

// testCombat 无暴击的战斗参数，结果可精确断言
func testCombat() *config.CombatConfig {
	cfg := config.DefaultCombatConfig()
	cfg.Player.Base.Set(types.StatCritChance, 0)
	return cfg
}

func newTestPlayer(t *testing.T, em *ecs.EntityManager, x, y float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewPlayer(em, x, y, testCombat())
	require.NoError(t, err)
	return id
}

// newTestEnemy 静止的步行者
func newTestEnemy(em *ecs.EntityManager, x, y, hp float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.EnemyComponent{Type: types.EnemyWalker, XPValue: 10, Radius: 12})
	em.AddComponent(id, &components.HealthComponent{Current: hp, Max: hp})
	em.AddComponent(id, &components.KnockbackComponent{})
	tint := components.NormalTint()
	em.AddComponent(id, &tint)
	return id
}

// newTestWeapon 直接挂一把最简武器（不经过配置）
func newTestWeapon(em *ecs.EntityManager, owner ecs.EntityID, hit components.HitSpecComponent) ecs.EntityID {
	id := em.CreateChild(owner)
	em.AddComponent(id, &components.WeaponComponent{Kind: "test", Level: 1, MaxLevel: 1, Owner: owner, Variant: types.AttackShot})
	em.AddComponent(id, &hit)
	return id
}

// newTestProjectile 在 (x, y) 放置一个圆形投射物
func newTestProjectile(em *ecs.EntityManager, weapon, owner ecs.EntityID, x, y, radius float64, maxHits int) ecs.EntityID {
	id := em.CreateChild(weapon)
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.ProjectileComponent{
		Weapon:     weapon,
		Owner:      owner,
		MaxHits:    maxHits,
		HitTargets: make(map[ecs.EntityID]bool),
	})
	em.AddComponent(id, &components.ColliderComponent{Shape: components.ColliderCircle, Layer: components.LayerProjectile, Radius: radius})
	return id
}

// recorder 记录总线上的某类事件
type recorder[T event.Event] struct {
	events []T
}

func record[T event.Event](bus *event.Bus, t event.Type) *recorder[T] {
	r := &recorder[T]{}
	bus.Subscribe(t, func(ev event.Event) []event.Event {
		r.events = append(r.events, ev.(T))
		return nil
	})
	return r
}
