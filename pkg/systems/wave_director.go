package systems

import (
	"log"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/entities"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/systems/attack"
	"github.com/gonewx/survivors/pkg/types"
	"github.com/gonewx/survivors/pkg/utils"
)

// EnemySpawner 接收波次导演的生成请求，负责挂载视觉资源与碰撞体
type EnemySpawner interface {
	SpawnEnemy(req entities.SpawnRequest) (ecs.EntityID, error)
}

// ChooseEnemyType 决定下一个生成的敌人类型
//
// 范围内没有敌人时选权重最高的类型；
// 否则选 (目标权重 - 在场占比) 最大的类型，向目标构成贪心收敛。
// 并列时取枚举值较小者；池为空返回 EnemyNone。
func ChooseEnemyType(pool map[types.EnemyType]float64, counts map[types.EnemyType]int) types.EnemyType {
	if len(pool) == 0 {
		return types.EnemyNone
	}
	candidates := make([]types.EnemyType, 0, len(pool))
	for t := range pool {
		candidates = append(candidates, t)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	total := 0
	for _, n := range counts {
		total += n
	}

	best := types.EnemyNone
	bestScore := math.Inf(-1)
	for _, t := range candidates {
		score := pool[t]
		if total > 0 {
			score -= float64(counts[t]) / float64(total)
		}
		if score > bestScore {
			best, bestScore = t, score
		}
	}
	return best
}

// WaveDirector 波次导演
//
// 波次计划按顺序消费；当前波次保存在单例波次实体的 WaveComponent 上。
// 每个生成间隔在玩家周围的圆环上生成一个敌人（受在场上限约束），
// 波次时长耗尽后切换到下一波并广播强度等级变化。
type WaveDirector struct {
	entityManager *ecs.EntityManager
	bus           *event.Bus
	plan          *config.WavePlan
	spawner       EnemySpawner
	rng           *rand.Rand
}

// NewWaveDirector 创建波次导演
func NewWaveDirector(em *ecs.EntityManager, bus *event.Bus, plan *config.WavePlan, spawner EnemySpawner, rng *rand.Rand) *WaveDirector {
	return &WaveDirector{
		entityManager: em,
		bus:           bus,
		plan:          plan,
		spawner:       spawner,
		rng:           rng,
	}
}

// Wave 返回当前波次组件
func (d *WaveDirector) Wave() (*components.WaveComponent, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.WaveComponent](d.entityManager) {
		if d.entityManager.IsAlive(id) {
			wave, _ := ecs.GetComponent[*components.WaveComponent](d.entityManager, id)
			return wave, true
		}
	}
	return nil, false
}

// Update 没有玩家或波次计划为空时静默跳过
func (d *WaveDirector) Update(dt float64) {
	if d.plan == nil || len(d.plan.Waves) == 0 {
		return
	}
	player, ok := FindPlayer(d.entityManager)
	if !ok {
		return
	}
	ppos, _ := ecs.GetComponent[*components.PositionComponent](d.entityManager, player)

	wave, ok := d.Wave()
	if !ok {
		wave = d.bootstrap()
	}

	inRange := d.cleanup(ppos.X, ppos.Y)

	if wave.Finished {
		return
	}
	if wave.DurationTimer.Tick(dt) {
		d.advance(wave)
		if wave.Finished {
			return
		}
	}

	if !wave.SpawnTimer.Tick(dt) {
		return
	}
	if len(inRange) >= wave.MaxEnemies {
		return
	}
	d.spawn(wave, inRange, ppos.X, ppos.Y)
}

// bootstrap 创建单例波次实体并载入第一波
func (d *WaveDirector) bootstrap() *components.WaveComponent {
	id := d.entityManager.CreateEntity()
	wave := &components.WaveComponent{}
	d.entityManager.AddComponent(id, wave)
	d.load(wave, 0)
	log.Printf("[WaveDirector] Wave plan started with %d waves", len(d.plan.Waves))
	return wave
}

// load 载入第 index 波并广播各类型的强度等级
func (d *WaveDirector) load(wave *components.WaveComponent, index int) {
	stats := d.plan.Waves[index]
	interval := 0.0
	if stats.SpawnFrequency > 0 {
		interval = 1 / stats.SpawnFrequency
	}
	*wave = components.WaveComponent{
		Index:           index,
		Pool:            stats.Pool,
		MaxEnemies:      stats.MaxEnemies,
		SpawnTimer:      components.TimerComponent{TargetTime: interval, Repeating: true},
		DurationTimer:   components.TimerComponent{TargetTime: stats.Duration},
		PowerLevel:      stats.PowerLevel,
		SpriteOverrides: stats.Sprites,
	}

	pooled := make([]types.EnemyType, 0, len(stats.Pool))
	for t := range stats.Pool {
		pooled = append(pooled, t)
	}
	sort.Slice(pooled, func(i, j int) bool { return pooled[i] < pooled[j] })
	for _, t := range pooled {
		d.bus.Publish(event.PowerLevelChanged{EnemyType: t, Power: stats.PowerLevel})
	}
}

// advance 切换到下一波；计划耗尽时停止生成
func (d *WaveDirector) advance(wave *components.WaveComponent) {
	next := wave.Index + 1
	if next >= len(d.plan.Waves) {
		wave.Finished = true
		d.bus.Publish(event.WaveAdvanced{Index: wave.Index, Finished: true})
		log.Printf("[WaveDirector] Wave plan exhausted after wave %d", wave.Index+1)
		return
	}
	d.load(wave, next)
	d.bus.Publish(event.WaveAdvanced{Index: next})
	log.Printf("[WaveDirector] Advanced to wave %d (power %.2f, cap %d)", next+1, wave.PowerLevel, wave.MaxEnemies)
}

// cleanup 移除超出 生成半径+缓冲 的敌人（不触发死亡事件），返回范围内的存活敌人
func (d *WaveDirector) cleanup(px, py float64) []ecs.EntityID {
	em := d.entityManager
	limit := d.plan.SpawnRadius + d.plan.DespawnBuffer
	var inRange []ecs.EntityID
	for _, id := range attack.LiveEnemies(em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if utils.Distance(px, py, pos.X, pos.Y) > limit {
			em.DestroyEntity(id)
			continue
		}
		inRange = append(inRange, id)
	}
	return inRange
}

// spawn 按当前在场构成选择类型，在玩家周围的圆环上生成
func (d *WaveDirector) spawn(wave *components.WaveComponent, inRange []ecs.EntityID, px, py float64) {
	counts := make(map[types.EnemyType]int)
	for _, id := range inRange {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](d.entityManager, id)
		counts[enemy.Type]++
	}
	t := ChooseEnemyType(wave.Pool, counts)
	if t == types.EnemyNone || d.spawner == nil {
		return
	}

	angle := 0.0
	if d.rng != nil {
		angle = d.rng.Float64() * 2 * math.Pi
	}
	dx, dy := utils.FromAngle(angle)
	req := entities.SpawnRequest{
		Type:       t,
		X:          px + dx*d.plan.SpawnRadius,
		Y:          py + dy*d.plan.SpawnRadius,
		SpritePath: wave.SpriteOverrides[t],
		Power:      wave.PowerLevel,
	}
	if _, err := d.spawner.SpawnEnemy(req); err != nil {
		log.Printf("[WaveDirector] Spawn %s failed: %v", t, err)
	}
}
