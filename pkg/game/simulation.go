// Package game 组装战斗模拟：系统注册、固定步长、tick 顺序与运行阶段
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/looplab/fsm"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/entities"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/systems"
	"github.com/gonewx/survivors/pkg/systems/attack"
	"github.com/gonewx/survivors/pkg/types"
)

// 运行阶段
const (
	PhasePlaying         = "playing"
	PhaseChoosingUpgrade = "choosing_upgrade"
	PhaseGameOver        = "game_over"
)

const (
	transitionLevelUp       = "level_up"
	transitionUpgradeChosen = "upgrade_chosen"
	transitionPlayerDied    = "player_died"
)

// maxFrameTime 单帧最多追赶的模拟时间，防止卡顿后连续执行过多 tick
const maxFrameTime = 0.25

// ErrNotChoosing 当前不在选择升级阶段
var ErrNotChoosing = errors.New("simulation is not waiting for an upgrade choice")

// Simulation 确定性的固定步长战斗模拟
//
// 所有系统共享同一个 EntityManager、事件总线和随机数源。
// 外部命令（拾取武器、装备道具）进入队列，在下一个 tick 开始时执行。
type Simulation struct {
	em    *ecs.EntityManager
	bus   *event.Bus
	clock *systems.Clock
	rng   *rand.Rand
	phase *fsm.FSM

	step        float64
	accumulator float64

	player   ecs.EntityID
	factory  *entities.EnemyFactory
	commands []func()

	stats       *systems.StatSystem
	items       *systems.ItemSystem
	weapons     *systems.WeaponSystem
	attacks     *systems.AttackSystem
	players     *systems.PlayerSystem
	status      *systems.StatusEffectSystem
	waves       *systems.WaveDirector
	projectiles *systems.ProjectileMotionSystem
	movement    *systems.MovementSystem
	enemyAI     *systems.EnemyAISystem
	collision   *systems.CollisionSystem
	hits        *systems.HitSystem
	experience  *systems.ExperienceSystem
	upgrades    *systems.UpgradeSystem
	lifetime    *systems.LifetimeSystem
	despawn     *systems.DespawnSystem
}

// NewSimulation 创建模拟并生成玩家与初始武器
func NewSimulation(cfg *Config) (*Simulation, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	s := &Simulation{
		em:    ecs.NewEntityManager(),
		bus:   event.NewBus(),
		clock: &systems.Clock{},
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		step:  cfg.Combat.FixedStep,
	}
	if s.step <= 0 {
		s.step = 1.0 / 60.0
	}
	s.phase = newPhaseFSM()

	// 订阅顺序即处理顺序
	s.stats = systems.NewStatSystem(s.em, s.bus)
	s.items = systems.NewItemSystem(s.em, s.bus, cfg.Items)
	s.weapons = systems.NewWeaponSystem(s.em, s.bus, cfg.Weapons)
	s.attacks = systems.NewAttackSystem(&attack.Context{EntityManager: s.em, Bus: s.bus, Rand: s.rng})
	s.hits = systems.NewHitSystem(s.em, s.bus, s.rng, s.clock)
	s.despawn = systems.NewDespawnSystem(s.em, s.bus, s.clock)
	s.upgrades = systems.NewUpgradeSystem(s.em, s.bus, s.weapons, cfg.Weapons, s.items, cfg.Items, s.rng, cfg.Combat.Experience)
	s.players = systems.NewPlayerSystem(s.em)
	s.status = systems.NewStatusEffectSystem(s.em, s.bus, s.clock)
	s.projectiles = systems.NewProjectileMotionSystem(s.em)
	s.movement = systems.NewMovementSystem(s.em)
	s.enemyAI = systems.NewEnemyAISystem(s.em, s.bus, cfg.Combat)
	s.collision = systems.NewCollisionSystem(s.em, s.bus)
	s.experience = systems.NewExperienceSystem(s.em, s.bus)
	s.lifetime = systems.NewLifetimeSystem(s.em)

	if cfg.Enemies != nil {
		powerScaling := 0.0
		if cfg.Waves != nil {
			powerScaling = cfg.Waves.PowerScaling
		}
		s.factory = entities.NewEnemyFactory(s.em, cfg.Enemies, powerScaling, cfg.Combat.Contact.Cooldown)
		s.bus.Subscribe(event.TypePowerLevelChanged, func(ev event.Event) []event.Event {
			e := ev.(event.PowerLevelChanged)
			s.factory.SetPowerLevel(e.EnemyType, e.Power)
			return nil
		})
	}
	if cfg.Waves != nil {
		s.waves = systems.NewWaveDirector(s.em, s.bus, cfg.Waves, s.factory, s.rng)
	}

	s.bus.Subscribe(event.TypeLevelUp, s.onLevelUp)
	s.bus.Subscribe(event.TypePlayerDied, s.onPlayerDied)

	player, err := entities.NewPlayer(s.em, 0, 0, cfg.Combat)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	s.player = player
	s.bus.Publish(event.StatsDirty{Owner: player})
	if id := cfg.startingWeapon(); id != "" {
		s.bus.Publish(event.WeaponPickup{Owner: player, Kind: id})
	}
	s.bus.Process()

	log.Printf("[Simulation] created: seed=%d step=%.4f weapon=%q waves=%v", cfg.Seed, s.step, cfg.startingWeapon(), cfg.Waves != nil)
	return s, nil
}

func newPhaseFSM() *fsm.FSM {
	return fsm.NewFSM(
		PhasePlaying,
		fsm.Events{
			{Name: transitionLevelUp, Src: []string{PhasePlaying}, Dst: PhaseChoosingUpgrade},
			{Name: transitionUpgradeChosen, Src: []string{PhaseChoosingUpgrade}, Dst: PhasePlaying},
			{Name: transitionPlayerDied, Src: []string{PhasePlaying, PhaseChoosingUpgrade}, Dst: PhaseGameOver},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Printf("[Simulation] phase %s -> %s", e.Src, e.Dst)
			},
		},
	)
}

func (s *Simulation) onLevelUp(ev event.Event) []event.Event {
	if s.upgrades.Pending() > 0 && s.phase.Is(PhasePlaying) {
		if err := s.phase.Event(context.Background(), transitionLevelUp); err != nil {
			log.Printf("[Simulation] level_up transition failed: %v", err)
		}
	}
	return nil
}

func (s *Simulation) onPlayerDied(ev event.Event) []event.Event {
	if s.phase.Is(PhaseGameOver) {
		return nil
	}
	if err := s.phase.Event(context.Background(), transitionPlayerDied); err != nil {
		log.Printf("[Simulation] player_died transition failed: %v", err)
	}
	return nil
}

// Phase 当前运行阶段
func (s *Simulation) Phase() string {
	return s.phase.Current()
}

// Step 固定步长（秒）
func (s *Simulation) Step() float64 {
	return s.step
}

// Player 玩家实体
func (s *Simulation) Player() ecs.EntityID {
	return s.player
}

// EntityManager 只读访问用；在 tick 之外修改实体会破坏确定性
func (s *Simulation) EntityManager() *ecs.EntityManager {
	return s.em
}

// Subscribe 供表现层观察模拟事件
func (s *Simulation) Subscribe(t event.Type, h event.Handler) {
	s.bus.Subscribe(t, h)
}

// Advance 累积帧时间并执行整数个固定 tick，返回执行的 tick 数
// 非 playing 阶段不累积时间
func (s *Simulation) Advance(frameDt float64) int {
	if !s.phase.Is(PhasePlaying) {
		s.accumulator = 0
		return 0
	}
	s.accumulator += frameDt
	if s.accumulator > maxFrameTime {
		s.accumulator = maxFrameTime
	}

	ticks := 0
	for s.accumulator+1e-9 >= s.step && s.phase.Is(PhasePlaying) {
		s.accumulator -= s.step
		s.Tick()
		ticks++
	}
	if s.accumulator < 0 {
		s.accumulator = 0
	}
	return ticks
}

// Tick 执行一个固定步长；非 playing 阶段为空操作
func (s *Simulation) Tick() {
	if !s.phase.Is(PhasePlaying) {
		return
	}
	dt := s.step

	s.em.BeginTick()
	s.clock.Tick++
	s.clock.Time += dt
	s.drainCommands()
	s.bus.Process()

	s.players.Update(dt)
	s.status.Update(dt)
	if s.waves != nil {
		s.waves.Update(dt)
	}
	s.bus.Process()

	s.weapons.Update(dt)
	s.bus.Process()

	s.projectiles.Update(dt)
	s.movement.Update(dt)
	s.enemyAI.Update(dt)

	s.hits.Update(dt)
	s.collision.Update()
	s.bus.Process()

	s.experience.Update()
	s.bus.Process()

	s.lifetime.Update(dt)
	s.despawn.Update()
	s.em.RemoveMarkedEntities()
}

func (s *Simulation) drainCommands() {
	cmds := s.commands
	s.commands = nil
	for _, cmd := range cmds {
		cmd()
	}
}

// SetMoveInput 设置玩家移动方向，立即生效
func (s *Simulation) SetMoveInput(x, y float64) {
	s.players.SetMoveInput(x, y)
}

// PickupWeapon 拾取武器（已拥有时升级），在下一个 tick 执行
func (s *Simulation) PickupWeapon(kind string) {
	s.commands = append(s.commands, func() {
		s.bus.Publish(event.WeaponPickup{Owner: s.player, Kind: kind})
	})
}

// EquipItem 装备道具（已拥有时升级），在下一个 tick 执行
func (s *Simulation) EquipItem(id string) {
	s.commands = append(s.commands, func() {
		if _, ok := s.items.Equip(s.player, id); !ok {
			log.Printf("[Simulation] equip %q ignored", id)
		}
	})
}

// Offers 当前待选择的升级选项
func (s *Simulation) Offers() []systems.Offer {
	offers, ok := s.upgrades.Current()
	if !ok {
		return nil
	}
	return offers
}

// ChooseUpgrade 选择第 i 个升级选项；全部选完后回到 playing
func (s *Simulation) ChooseUpgrade(i int) (systems.Offer, error) {
	if !s.phase.Is(PhaseChoosingUpgrade) {
		return systems.Offer{}, ErrNotChoosing
	}
	offer, err := s.upgrades.Choose(i)
	if err != nil {
		return systems.Offer{}, fmt.Errorf("failed to choose upgrade %d: %w", i, err)
	}
	s.bus.Process()

	if s.upgrades.Pending() == 0 {
		if err := s.phase.Event(context.Background(), transitionUpgradeChosen); err != nil {
			log.Printf("[Simulation] upgrade_chosen transition failed: %v", err)
		}
	}
	return offer, nil
}

// SpawnEnemyAt 在指定位置生成敌人（调试与测试用）
func (s *Simulation) SpawnEnemyAt(t types.EnemyType, x, y float64) (ecs.EntityID, error) {
	if s.factory == nil {
		return 0, fmt.Errorf("no enemy stats configured")
	}
	return s.factory.SpawnEnemy(entities.SpawnRequest{Type: t, X: x, Y: y})
}

// Stats 玩家当前派生属性
func (s *Simulation) Stats() (components.StatVector, bool) {
	return s.stats.Snapshot(s.player)
}
