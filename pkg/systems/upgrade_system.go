package systems

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/event"
)

// ErrNoPendingOffer 当前没有待选择的升级
var ErrNoPendingOffer = errors.New("no pending upgrade offer")

// OfferKind 升级选项类别
type OfferKind int

const (
	OfferWeapon OfferKind = iota
	OfferItem
)

func (k OfferKind) String() string {
	if k == OfferItem {
		return "item"
	}
	return "weapon"
}

// Offer 单个升级选项
type Offer struct {
	Kind OfferKind
	ID   string
	// Level 选择后达到的等级（新获取为 1）
	Level int
}

// IsNew 是否为新获取
func (o Offer) IsNew() bool {
	return o.Level == 1
}

// UpgradeSystem 升级奖励
//
// 每次 LevelUp 把配置的成长值累加到 UpgradeStats，并排队一次三选一。
// 选项在轮到时才生成，保证连续升级时不会给出已满级的选项。
type UpgradeSystem struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
	weapons       *WeaponSystem
	weaponSpecs   *config.WeaponsConfig
	items         *ItemSystem
	registry      *config.ItemRegistry
	rng           *rand.Rand
	growth        components.StatVector
	offerCount    int

	player  ecs.EntityID
	queued  int
	current []Offer
}

// NewUpgradeSystem 创建升级系统并订阅 LevelUp
func NewUpgradeSystem(em *ecs.EntityManager, bus *event.Bus, weapons *WeaponSystem, weaponSpecs *config.WeaponsConfig,
	items *ItemSystem, registry *config.ItemRegistry, rng *rand.Rand, exp config.ExperienceConfig) *UpgradeSystem {
	count := exp.OfferCount
	if count <= 0 {
		count = 3
	}
	s := &UpgradeSystem{
		entityManager: em,
		bus:           bus,
		weapons:       weapons,
		weaponSpecs:   weaponSpecs,
		items:         items,
		registry:      registry,
		rng:           rng,
		growth:        exp.Growth,
		offerCount:    count,
	}
	bus.Subscribe(event.TypeLevelUp, s.onLevelUp)
	return s
}

func (s *UpgradeSystem) onLevelUp(ev event.Event) []event.Event {
	e := ev.(event.LevelUp)
	s.player = e.Player
	s.queued++

	up, ok := ecs.GetComponent[*components.UpgradeStatsComponent](s.entityManager, e.Player)
	if !ok {
		up = &components.UpgradeStatsComponent{}
		s.entityManager.AddComponent(e.Player, up)
	}
	for i := range up.Stats {
		up.Stats[i] += s.growth[i]
	}
	return []event.Event{event.StatsDirty{Owner: e.Player}}
}

// Pending 尚未选择的升级次数
func (s *UpgradeSystem) Pending() int {
	s.prepare()
	return s.queued
}

// Current 返回当前待选择的选项
func (s *UpgradeSystem) Current() ([]Offer, bool) {
	s.prepare()
	if s.queued == 0 {
		return nil, false
	}
	out := make([]Offer, len(s.current))
	copy(out, s.current)
	return out, true
}

// prepare 为队首的升级生成选项；没有任何可选项时直接消耗该次升级
func (s *UpgradeSystem) prepare() {
	for s.queued > 0 && s.current == nil {
		offers := s.candidates()
		if len(offers) == 0 {
			log.Printf("[UpgradeSystem] Nothing left to offer, skipping level-up reward")
			s.queued--
			continue
		}
		s.current = offers
	}
}

// candidates 收集所有可获取/可升级的武器与装备，洗牌后取前 offerCount 个
func (s *UpgradeSystem) candidates() []Offer {
	if !s.entityManager.IsAlive(s.player) {
		return nil
	}
	var all []Offer
	if s.weaponSpecs != nil {
		for _, id := range s.weaponSpecs.IDs() {
			if !s.weapons.CanAdvance(s.player, id) {
				continue
			}
			level := 1
			if w, ok := s.weapons.Find(s.player, id); ok {
				comp, _ := ecs.GetComponent[*components.WeaponComponent](s.entityManager, w)
				level = comp.Level + 1
			}
			all = append(all, Offer{Kind: OfferWeapon, ID: id, Level: level})
		}
	}
	for _, id := range s.registry.IDs() {
		if !s.items.CanAdvance(s.player, id) {
			continue
		}
		all = append(all, Offer{Kind: OfferItem, ID: id, Level: s.items.Level(s.player, id) + 1})
	}

	if s.rng != nil {
		s.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	}
	if len(all) > s.offerCount {
		all = all[:s.offerCount]
	}
	return all
}

// Choose 应用当前选项中的第 i 个
func (s *UpgradeSystem) Choose(i int) (Offer, error) {
	s.prepare()
	if s.queued == 0 {
		return Offer{}, ErrNoPendingOffer
	}
	if i < 0 || i >= len(s.current) {
		return Offer{}, fmt.Errorf("upgrade choice %d out of range [0, %d)", i, len(s.current))
	}
	offer := s.current[i]
	s.current = nil
	s.queued--

	switch offer.Kind {
	case OfferWeapon:
		s.bus.Publish(event.WeaponPickup{Owner: s.player, Kind: offer.ID})
	case OfferItem:
		s.items.Equip(s.player, offer.ID)
	}
	log.Printf("[UpgradeSystem] Chose %s %s (level %d)", offer.Kind, offer.ID, offer.Level)
	return offer, nil
}
