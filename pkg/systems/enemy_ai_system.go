package systems

import (
	"log"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/types"
	"github.com/gonewx/survivors/pkg/utils"
)

// EnemyAISystem 敌人追击、群聚分离、击退和接触伤害
//
// 移动意图 = normalize(指向玩家 + 分离力)；
// 击退速度超过压制阈值或处于定身时，本 tick 不产生移动意图。
// 位移 = (意图速度 + 击退速度) × dt，随后击退速度按系数衰减。
type EnemyAISystem struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
	cfg           *config.CombatConfig
}

// NewEnemyAISystem 创建敌人 AI 系统
func NewEnemyAISystem(em *ecs.EntityManager, bus *event.Bus, cfg *config.CombatConfig) *EnemyAISystem {
	return &EnemyAISystem{
		entityManager: em,
		bus:           bus,
		cfg:           cfg,
	}
}

// DecayKnockback 击退速度乘以衰减系数，模长低于 snap 时归零
func DecayKnockback(kb *components.KnockbackComponent, decay, snap float64) {
	kb.VX *= decay
	kb.VY *= decay
	if utils.Length(kb.VX, kb.VY) < snap {
		kb.VX, kb.VY = 0, 0
	}
}

// neighbour 分离力计算用的位置快照
type neighbour struct {
	id   ecs.EntityID
	x, y float64
}

// Update 更新所有敌人
func (s *EnemyAISystem) Update(dt float64) {
	em := s.entityManager
	ids := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](em)

	playerID, hasPlayer := FindPlayer(em)
	var px, py, playerRadius float64
	if hasPlayer {
		ppos, _ := ecs.GetComponent[*components.PositionComponent](em, playerID)
		px, py = ppos.X, ppos.Y
		if pc, ok := ecs.GetComponent[*components.PlayerComponent](em, playerID); ok {
			playerRadius = pc.Radius
		}
	}

	// 分离力基于本 tick 开始时的位置，结果与遍历顺序无关
	snapshot := make([]neighbour, 0, len(ids)+1)
	for _, id := range ids {
		if !s.active(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snapshot = append(snapshot, neighbour{id: id, x: pos.X, y: pos.Y})
	}
	if hasPlayer {
		snapshot = append(snapshot, neighbour{id: playerID, x: px, y: py})
	}

	for _, id := range ids {
		if !s.active(id) || em.IsNew(id) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		kb, hasKB := ecs.GetComponent[*components.KnockbackComponent](em, id)

		var kbx, kby float64
		if hasKB {
			kbx, kby = kb.VX, kb.VY
		}

		suppressed := ecs.HasComponent[*components.RootedComponent](em, id) ||
			utils.Length(kbx, kby) > s.cfg.Knockback.SuppressThreshold

		var vx, vy float64
		if hasPlayer && !suppressed {
			tx, ty := utils.Normalize(px-pos.X, py-pos.Y)
			sx, sy := s.separation(id, pos.X, pos.Y, snapshot)
			dx, dy := utils.Normalize(tx+sx, ty+sy)
			vx, vy = dx*enemy.Speed, dy*enemy.Speed
		}

		pos.X += (vx + kbx) * dt
		pos.Y += (vy + kby) * dt

		if hasKB {
			DecayKnockback(kb, s.cfg.Knockback.Decay, s.cfg.Knockback.SnapThreshold)
		}

		if hasPlayer {
			s.contact(id, enemy, pos, playerID, px, py, playerRadius, dt)
		}
	}
}

// active 敌人存活且未处于待移除状态
func (s *EnemyAISystem) active(id ecs.EntityID) bool {
	if !s.entityManager.IsAlive(id) {
		return false
	}
	return !ecs.HasComponent[*components.PendingDespawnComponent](s.entityManager, id)
}

// separation 对半径内每个邻居累加 (R - d) / R × strength 的斥力
func (s *EnemyAISystem) separation(self ecs.EntityID, x, y float64, others []neighbour) (float64, float64) {
	radius := s.cfg.Separation.Radius
	if radius <= 0 {
		return 0, 0
	}
	var fx, fy float64
	for _, n := range others {
		if n.id == self {
			continue
		}
		d := utils.Distance(x, y, n.x, n.y)
		if d >= radius || d == 0 {
			continue
		}
		ax, ay := utils.Normalize(x-n.x, y-n.y)
		k := (radius - d) / radius * s.cfg.Separation.Strength
		fx += ax * k
		fy += ay * k
	}
	return fx, fy
}

// contact 接触伤害，受近战冷却限制并按护甲减免
func (s *EnemyAISystem) contact(id ecs.EntityID, enemy *components.EnemyComponent, pos *components.PositionComponent,
	player ecs.EntityID, px, py, playerRadius, dt float64) {
	em := s.entityManager
	cd, ok := ecs.GetComponent[*components.MeleeCooldownComponent](em, id)
	if !ok {
		return
	}
	if cd.Remaining > 0 {
		cd.Remaining -= dt
	}
	if cd.Remaining > 0 || enemy.ContactDamage <= 0 {
		return
	}
	if utils.Distance(pos.X, pos.Y, px, py) > enemy.Radius+playerRadius {
		return
	}

	health, ok := ecs.GetComponent[*components.HealthComponent](em, player)
	if !ok || health.Current <= 0 {
		return
	}
	armor := 0.0
	if derived, ok := ecs.GetComponent[*components.DerivedStatsComponent](em, player); ok {
		armor = derived.Stats.Get(types.StatArmor)
	}
	dmg := enemy.ContactDamage * (1 - armor)
	health.Current -= dmg
	cd.Remaining = cd.Interval

	s.bus.Publish(event.PlayerDamaged{
		Player:    player,
		Source:    id,
		Amount:    dmg,
		Remaining: health.Current,
	})
	if health.Current <= 0 {
		log.Printf("[EnemyAISystem] Player %d killed by %s (entity %d)", player, enemy.Type, id)
		s.bus.Publish(event.PlayerDied{Player: player})
	}
}
