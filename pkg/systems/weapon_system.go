package systems

import (
	"log"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/entities"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/types"
)

// WeaponSystem 武器生命周期：拾取、升级、冷却
//
// WeaponPickup 是武器所有权的唯一写入口：
// 拥有者未持有该种武器时生成新实例，否则发布 WeaponUpgraded。
type WeaponSystem struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
	weapons       *config.WeaponsConfig
}

// NewWeaponSystem 创建武器系统并订阅拾取/升级事件
func NewWeaponSystem(em *ecs.EntityManager, bus *event.Bus, weapons *config.WeaponsConfig) *WeaponSystem {
	s := &WeaponSystem{
		entityManager: em,
		bus:           bus,
		weapons:       weapons,
	}
	bus.Subscribe(event.TypeWeaponPickup, s.onWeaponPickup)
	bus.Subscribe(event.TypeWeaponUpgraded, s.onWeaponUpgraded)
	return s
}

// Find 返回 owner 持有的指定种类武器
func (s *WeaponSystem) Find(owner ecs.EntityID, kind string) (ecs.EntityID, bool) {
	for _, child := range s.entityManager.Children(owner) {
		w, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, child)
		if ok && w.Kind == kind {
			return child, true
		}
	}
	return 0, false
}

// CanAdvance 该种武器可以新获取或继续升级
func (s *WeaponSystem) CanAdvance(owner ecs.EntityID, kind string) bool {
	spec, ok := s.weapons.Get(kind)
	if !ok {
		return false
	}
	id, owned := s.Find(owner, kind)
	if !owned {
		return true
	}
	w, _ := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
	return w.Level < spec.MaxLevel
}

func (s *WeaponSystem) onWeaponPickup(ev event.Event) []event.Event {
	e := ev.(event.WeaponPickup)
	if !s.entityManager.IsAlive(e.Owner) {
		return nil
	}
	spec, ok := s.weapons.Get(e.Kind)
	if !ok {
		log.Printf("[WeaponSystem] Unknown weapon kind %q, pickup ignored", e.Kind)
		return nil
	}

	if id, owned := s.Find(e.Owner, e.Kind); owned {
		w, _ := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
		if w.Level >= w.MaxLevel {
			log.Printf("[WeaponSystem] %s already at max level %d", e.Kind, w.MaxLevel)
			return nil
		}
		return []event.Event{event.WeaponUpgraded{
			Owner:  e.Owner,
			Weapon: id,
			Kind:   e.Kind,
			Level:  w.Level + 1,
		}}
	}

	if _, err := entities.NewWeapon(s.entityManager, spec, e.Owner); err != nil {
		log.Printf("[WeaponSystem] Failed to spawn weapon %s: %v", e.Kind, err)
	}
	return nil
}

func (s *WeaponSystem) onWeaponUpgraded(ev event.Event) []event.Event {
	e := ev.(event.WeaponUpgraded)
	w, ok := ecs.GetComponent[*components.WeaponComponent](s.entityManager, e.Weapon)
	if !ok || w.Level >= w.MaxLevel {
		return nil
	}
	spec, ok := s.weapons.Get(w.Kind)
	if !ok {
		return nil
	}

	w.Level++
	if delta, ok := spec.LevelDeltaFor(w.Level); ok {
		entities.ApplyWeaponLevel(s.entityManager, e.Weapon, delta)
	}
	log.Printf("[WeaponSystem] %s upgraded to level %d", w.Kind, w.Level)
	return nil
}

// Update 推进所有武器的冷却，冷却完成时发布 AttackTriggered
//
// 实际冷却 = 基础冷却 × 拥有者 Cooldown 属性；计时按 dt × AttackSpeed 推进。
// 每 tick 每把武器最多触发一次攻击。
func (s *WeaponSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith2[*components.WeaponComponent, *components.CooldownComponent](s.entityManager)
	for _, id := range ids {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		w, _ := ecs.GetComponent[*components.WeaponComponent](s.entityManager, id)
		cd, _ := ecs.GetComponent[*components.CooldownComponent](s.entityManager, id)
		if !s.entityManager.IsAlive(w.Owner) {
			continue
		}

		cooldownScale, attackSpeed := 1.0, 1.0
		if derived, ok := ecs.GetComponent[*components.DerivedStatsComponent](s.entityManager, w.Owner); ok {
			cooldownScale = derived.Stats.Get(types.StatCooldown)
			attackSpeed = derived.Stats.Get(types.StatAttackSpeed)
		}

		cd.Duration = cd.BaseDuration * cooldownScale
		if cd.Duration < entities.MinWeaponCooldown {
			cd.Duration = entities.MinWeaponCooldown
		}
		cd.Elapsed += dt * attackSpeed

		if cd.Elapsed+1e-9 >= cd.Duration {
			cd.Elapsed -= cd.Duration
			if cd.Elapsed < 0 {
				cd.Elapsed = 0
			}
			s.bus.Publish(event.AttackTriggered{Weapon: id})
		}
	}
}
