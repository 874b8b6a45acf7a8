package game

import (
	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/systems"
	"github.com/gonewx/survivors/pkg/types"
)

// PlayerView 玩家状态
type PlayerView struct {
	X, Y             float64
	FacingX, FacingY float64
	Radius           float64
	Health           float64
	MaxHealth        float64
	XP               float64
	NextLevelXP      float64
	Level            int
	PickupRange      float64
}

// EnemyView 敌人绘制数据
type EnemyView struct {
	ID     ecs.EntityID
	Type   types.EnemyType
	X, Y   float64
	Radius float64
	Tint   components.TintComponent
	// Dying 已死亡、等待下一 tick 移除
	Dying bool
}

// ShapeView 投射物/效果绘制数据；Points 非空时为相对位置的凸多边形
type ShapeView struct {
	ID     ecs.EntityID
	X, Y   float64
	Radius float64
	Points []float64
}

// GemView 经验宝石
type GemView struct {
	X, Y  float64
	Value float64
}

// WeaponView 武器状态；Charge 为冷却进度 [0, 1]
type WeaponView struct {
	Kind     string
	Name     string
	Level    int
	MaxLevel int
	Charge   float64
}

// ItemView 装备状态
type ItemView struct {
	ID    string
	Level int
}

// Snapshot 一个 tick 结束时的只读视图
type Snapshot struct {
	Tick  uint64
	Time  float64
	Phase string

	Wave         int
	WaveFinished bool

	Player      PlayerView
	Stats       components.StatVector
	Enemies     []EnemyView
	Projectiles []ShapeView
	Gems        []GemView
	Weapons     []WeaponView
	Items       []ItemView
	Offers      []systems.Offer
}

// Snapshot 复制当前状态，返回值不引用内部数据
func (s *Simulation) Snapshot() Snapshot {
	em := s.em
	snap := Snapshot{
		Tick:  s.clock.Tick,
		Time:  s.clock.Time,
		Phase: s.Phase(),
	}

	if s.waves != nil {
		if wave, ok := s.waves.Wave(); ok {
			snap.Wave = wave.Index
			snap.WaveFinished = wave.Finished
		}
	}

	snap.Player = s.playerView()
	if stats, ok := s.Stats(); ok {
		snap.Stats = stats
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](em) {
		if !em.IsAlive(id) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		view := EnemyView{
			ID:     id,
			Type:   enemy.Type,
			X:      pos.X,
			Y:      pos.Y,
			Radius: enemy.Radius,
			Tint:   components.NormalTint(),
			Dying:  ecs.HasComponent[*components.PendingDespawnComponent](em, id),
		}
		if tint, ok := ecs.GetComponent[*components.TintComponent](em, id); ok {
			view.Tint = *tint
		}
		snap.Enemies = append(snap.Enemies, view)
	}

	for _, id := range ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.ColliderComponent](em) {
		if !em.IsAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.ColliderComponent](em, id)
		view := ShapeView{ID: id, X: pos.X, Y: pos.Y, Radius: col.Radius}
		if col.Shape == components.ColliderPolygon {
			view.Points = append([]float64(nil), col.Points...)
		}
		snap.Projectiles = append(snap.Projectiles, view)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.XPGemComponent, *components.PositionComponent](em) {
		if !em.IsAlive(id) {
			continue
		}
		gem, _ := ecs.GetComponent[*components.XPGemComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Gems = append(snap.Gems, GemView{X: pos.X, Y: pos.Y, Value: gem.Value})
	}

	for _, child := range em.Children(s.player) {
		if !em.IsAlive(child) {
			continue
		}
		if w, ok := ecs.GetComponent[*components.WeaponComponent](em, child); ok {
			view := WeaponView{Kind: w.Kind, Name: w.Name, Level: w.Level, MaxLevel: w.MaxLevel}
			if cd, ok := ecs.GetComponent[*components.CooldownComponent](em, child); ok && cd.Duration > 0 {
				view.Charge = min(1, cd.Elapsed/cd.Duration)
			}
			snap.Weapons = append(snap.Weapons, view)
		}
		if item, ok := ecs.GetComponent[*components.ItemComponent](em, child); ok {
			snap.Items = append(snap.Items, ItemView{ID: item.ID, Level: item.Level})
		}
	}

	if s.phase.Is(PhaseChoosingUpgrade) {
		snap.Offers = append([]systems.Offer(nil), s.Offers()...)
	}
	return snap
}

func (s *Simulation) playerView() PlayerView {
	em := s.em
	var v PlayerView
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, s.player); ok {
		v.X, v.Y = pos.X, pos.Y
	}
	if facing, ok := ecs.GetComponent[*components.FacingComponent](em, s.player); ok {
		v.FacingX, v.FacingY = facing.X, facing.Y
	}
	if p, ok := ecs.GetComponent[*components.PlayerComponent](em, s.player); ok {
		v.Radius = p.Radius
	}
	if h, ok := ecs.GetComponent[*components.HealthComponent](em, s.player); ok {
		v.Health, v.MaxHealth = h.Current, h.Max
	}
	if exp, ok := ecs.GetComponent[*components.ExperienceComponent](em, s.player); ok {
		v.XP = exp.XP
		v.Level = exp.Level
		v.NextLevelXP = systems.Threshold(exp)
	}
	if stats, ok := s.Stats(); ok {
		v.PickupRange = stats.Get(types.StatPickupRange)
	}
	return v
}
