package systems

import (
	"log"
	"math"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/types"
	"github.com/gonewx/survivors/pkg/utils"
)

// ExperienceSystem 经验宝石拾取与升级
type ExperienceSystem struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
}

// NewExperienceSystem 创建经验系统
func NewExperienceSystem(em *ecs.EntityManager, bus *event.Bus) *ExperienceSystem {
	return &ExperienceSystem{
		entityManager: em,
		bus:           bus,
	}
}

// Threshold 从 level 升到 level+1 所需经验 = base × level^exponent
func Threshold(exp *components.ExperienceComponent) float64 {
	return exp.Base * math.Pow(float64(exp.Level), exp.Exponent)
}

// Update 拾取玩家拾取范围内的所有宝石
func (s *ExperienceSystem) Update() {
	em := s.entityManager
	player, ok := FindPlayer(em)
	if !ok {
		return
	}
	ppos, _ := ecs.GetComponent[*components.PositionComponent](em, player)

	stats := components.DefaultBaseStats()
	if derived, ok := ecs.GetComponent[*components.DerivedStatsComponent](em, player); ok {
		stats = derived.Stats
	}
	rangeSq := stats.Get(types.StatPickupRange) * stats.Get(types.StatPickupRange)

	for _, id := range ecs.GetEntitiesWith2[*components.XPGemComponent, *components.PositionComponent](em) {
		if !em.IsAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if utils.DistanceSq(ppos.X, ppos.Y, pos.X, pos.Y) > rangeSq {
			continue
		}
		gem, _ := ecs.GetComponent[*components.XPGemComponent](em, id)
		s.AddExperience(player, gem.Value*stats.Get(types.StatGrowth))
		em.DestroyEntity(id)
	}
}

// AddExperience 增加经验；每跨越一次阈值升一级并发布一次 LevelUp，溢出经验保留
// 返回本次升级次数
func (s *ExperienceSystem) AddExperience(player ecs.EntityID, amount float64) int {
	exp, ok := ecs.GetComponent[*components.ExperienceComponent](s.entityManager, player)
	if !ok || amount <= 0 {
		return 0
	}
	exp.XP += amount

	levels := 0
	for {
		need := Threshold(exp)
		if need <= 0 || exp.XP < need {
			break
		}
		exp.XP -= need
		exp.Level++
		levels++
		s.bus.Publish(event.LevelUp{Player: player, Level: exp.Level})
		log.Printf("[ExperienceSystem] Player %d reached level %d", player, exp.Level)
	}
	return levels
}
