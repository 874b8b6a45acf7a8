package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/config"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/entities"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/types"
	"github.com/gonewx/survivors/pkg/utils"
)

func TestChooseEnemyType(t *testing.T) {
	tests := []struct {
		name   string
		pool   map[types.EnemyType]float64
		counts map[types.EnemyType]int
		want   types.EnemyType
	}{
		{
			name:   "空池",
			pool:   nil,
			counts: nil,
			want:   types.EnemyNone,
		},
		{
			name:   "没有在场敌人时选权重最高的类型",
			pool:   map[types.EnemyType]float64{types.EnemyWalker: 0.3, types.EnemyTank: 0.7},
			counts: map[types.EnemyType]int{},
			want:   types.EnemyTank,
		},
		{
			name:   "向目标构成贪心收敛",
			pool:   map[types.EnemyType]float64{types.EnemyWalker: 0.8, types.EnemySprinter: 0.2},
			counts: map[types.EnemyType]int{types.EnemyWalker: 2, types.EnemySprinter: 8},
			want:   types.EnemyWalker,
		},
		{
			name:   "超出目标占比的类型不会被选中",
			pool:   map[types.EnemyType]float64{types.EnemyWalker: 0.5, types.EnemySprinter: 0.5},
			counts: map[types.EnemyType]int{types.EnemyWalker: 9, types.EnemySprinter: 1},
			want:   types.EnemySprinter,
		},
		{
			name:   "并列取枚举值较小者",
			pool:   map[types.EnemyType]float64{types.EnemyTank: 0.5, types.EnemyJumper: 0.5},
			counts: map[types.EnemyType]int{},
			want:   types.EnemyJumper,
		},
		{
			name:   "池外类型计入总数",
			pool:   map[types.EnemyType]float64{types.EnemyWalker: 1},
			counts: map[types.EnemyType]int{types.EnemyTank: 4},
			want:   types.EnemyWalker,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseEnemyType(tt.pool, tt.counts))
		})
	}
}

// fakeSpawner 记录生成请求，并按请求创建最简敌人
type fakeSpawner struct {
	em       *ecs.EntityManager
	requests []entities.SpawnRequest
}

func (f *fakeSpawner) SpawnEnemy(req entities.SpawnRequest) (ecs.EntityID, error) {
	f.requests = append(f.requests, req)
	id := newTestEnemy(f.em, req.X, req.Y, 10)
	comp, _ := ecs.GetComponent[*components.EnemyComponent](f.em, id)
	comp.Type = req.Type
	return id, nil
}

func testPlan() *config.WavePlan {
	return &config.WavePlan{
		SpawnRadius:   300,
		DespawnBuffer: 100,
		PowerScaling:  0.5,
		Waves: []config.WaveStats{
			{
				Pool:           map[types.EnemyType]float64{types.EnemyWalker: 0.5, types.EnemySprinter: 0.5},
				MaxEnemies:     3,
				SpawnFrequency: 2,
				Duration:       5,
				PowerLevel:     1,
				Sprites:        map[types.EnemyType]string{types.EnemySprinter: "enemies/sprinter_red.png"},
			},
			{
				Pool:           map[types.EnemyType]float64{types.EnemyTank: 1},
				MaxEnemies:     10,
				SpawnFrequency: 1,
				Duration:       2,
				PowerLevel:     3,
			},
		},
	}
}

func TestWaveDirectorSpawnsOnRingUpToCap(t *testing.T) {
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	spawner := &fakeSpawner{em: em}
	director := NewWaveDirector(em, bus, testPlan(), spawner, testRand())
	newTestPlayer(t, em, 100, 100)

	// 2 次/秒，3 秒内应触发 6 次，但上限为 3
	for i := 0; i < 180; i++ {
		director.Update(testStep)
		bus.Process()
	}
	require.Len(t, spawner.requests, 3)

	byType := make(map[types.EnemyType]int)
	for _, req := range spawner.requests {
		assert.InDelta(t, 300, utils.Distance(100, 100, req.X, req.Y), 1e-6, "spawned on the ring")
		byType[req.Type]++
		if req.Type == types.EnemySprinter {
			assert.Equal(t, "enemies/sprinter_red.png", req.SpritePath)
		} else {
			assert.Empty(t, req.SpritePath)
		}
	}
	assert.Equal(t, 2, byType[types.EnemyWalker], "walker first (tie on an empty field), then rebalance")
	assert.Equal(t, 1, byType[types.EnemySprinter])
}

func TestWaveDirectorAdvancesAndFinishes(t *testing.T) {
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	spawner := &fakeSpawner{em: em}
	director := NewWaveDirector(em, bus, testPlan(), spawner, testRand())
	newTestPlayer(t, em, 0, 0)

	advanced := record[event.WaveAdvanced](bus, event.TypeWaveAdvanced)
	power := record[event.PowerLevelChanged](bus, event.TypePowerLevelChanged)

	director.Update(testStep)
	bus.Process()
	require.Len(t, power.events, 2, "bootstrap broadcasts power for each pooled type")

	for i := 0; i < 60*5; i++ {
		director.Update(testStep)
		bus.Process()
	}
	wave, ok := director.Wave()
	require.True(t, ok)
	assert.Equal(t, 1, wave.Index)
	require.Len(t, advanced.events, 1)
	assert.Equal(t, 1, advanced.events[0].Index)
	last := power.events[len(power.events)-1]
	assert.Equal(t, types.EnemyTank, last.EnemyType)
	assert.Equal(t, 3.0, last.Power)

	for i := 0; i < 60*3; i++ {
		director.Update(testStep)
		bus.Process()
	}
	assert.True(t, wave.Finished)
	require.Len(t, advanced.events, 2)
	assert.True(t, advanced.events[1].Finished)

	spawned := len(spawner.requests)
	for i := 0; i < 120; i++ {
		director.Update(testStep)
	}
	assert.Equal(t, spawned, len(spawner.requests), "no spawns after the plan is exhausted")
}

func TestWaveDirectorAdvanceTickSpawnsWithNewPower(t *testing.T) {
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	stats, err := config.ParseEnemies([]byte(`
enemies:
  walker: { health: 20, speed: 50, contact_damage: 4, xp_value: 10 }
`))
	require.NoError(t, err)
	factory := entities.NewEnemyFactory(em, stats, 0.5, 0.5)
	bus.Subscribe(event.TypePowerLevelChanged, func(ev event.Event) []event.Event {
		e := ev.(event.PowerLevelChanged)
		factory.SetPowerLevel(e.EnemyType, e.Power)
		return nil
	})
	walkers := map[types.EnemyType]float64{types.EnemyWalker: 1}
	plan := &config.WavePlan{
		SpawnRadius:   300,
		DespawnBuffer: 100,
		Waves: []config.WaveStats{
			{Pool: walkers, MaxEnemies: 1000, SpawnFrequency: 60, Duration: 0.5, PowerLevel: 1},
			{Pool: walkers, MaxEnemies: 1000, SpawnFrequency: 60, Duration: 10, PowerLevel: 3},
		},
	}
	director := NewWaveDirector(em, bus, plan, factory, testRand())
	newTestPlayer(t, em, 0, 0)

	// 每个新敌人的生命值都必须对应其生成时所在的波次，包括切换波次的那一 tick
	var last ecs.EntityID
	for i := 0; i < 60; i++ {
		director.Update(testStep)
		wave, ok := director.Wave()
		require.True(t, ok)
		for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](em) {
			if id <= last {
				continue
			}
			last = id
			health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
			want := 20 * (1 + 0.5*(wave.PowerLevel-1))
			assert.Equalf(t, want, health.Max, "enemy %d spawned during wave %d", id, wave.Index+1)
		}
		bus.Process()
	}
	wave, _ := director.Wave()
	assert.Equal(t, 1, wave.Index)
}

func TestWaveDirectorRemovesFarEnemies(t *testing.T) {
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	director := NewWaveDirector(em, bus, testPlan(), &fakeSpawner{em: em}, testRand())
	newTestPlayer(t, em, 0, 0)
	died := record[event.EnemyDied](bus, event.TypeEnemyDied)

	near := newTestEnemy(em, 350, 0, 10)
	far := newTestEnemy(em, 450, 0, 10)

	director.Update(testStep)
	bus.Process()
	assert.True(t, em.IsAlive(near))
	assert.False(t, em.IsAlive(far))
	assert.Empty(t, died.events, "out-of-range removal is not a death")
}

func TestWaveDirectorWithoutPlayerIsNoop(t *testing.T) {
	em := ecs.NewEntityManager()
	bus := event.NewBus()
	spawner := &fakeSpawner{em: em}
	director := NewWaveDirector(em, bus, testPlan(), spawner, testRand())

	for i := 0; i < 120; i++ {
		director.Update(testStep)
	}
	assert.Empty(t, spawner.requests)
	_, ok := director.Wave()
	assert.False(t, ok)
}

func TestEnemyFactoryPowerScaling(t *testing.T) {
	em := ecs.NewEntityManager()
	stats, err := config.ParseEnemies([]byte(`
enemies:
  walker: { health: 20, speed: 50, contact_damage: 4, xp_value: 10 }
`))
	require.NoError(t, err)

	factory := entities.NewEnemyFactory(em, stats, 0.5, 0.5)
	factory.SetPowerLevel(types.EnemyWalker, 3)

	id, err := factory.SpawnEnemy(entities.SpawnRequest{Type: types.EnemyWalker, X: 1, Y: 2})
	require.NoError(t, err)
	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
	assert.Equal(t, 40.0, health.Max, "1 + 0.5 × (3 - 1) = 2")
	assert.Equal(t, 8.0, enemy.ContactDamage)

	// 请求携带的波次强度优先于之前广播的等级
	id, err = factory.SpawnEnemy(entities.SpawnRequest{Type: types.EnemyWalker, Power: 5})
	require.NoError(t, err)
	health, _ = ecs.GetComponent[*components.HealthComponent](em, id)
	assert.Equal(t, 60.0, health.Max, "1 + 0.5 × (5 - 1) = 3")

	_, err = factory.SpawnEnemy(entities.SpawnRequest{Type: types.EnemyTank})
	assert.Error(t, err, "no stats configured for tanks")
}
