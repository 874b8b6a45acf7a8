package event

import (
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
)

// Type 事件类型
type Type int

const (
	TypeAttackTriggered Type = iota
	TypeCollision
	TypeHit
	TypeDamageDealt
	TypeImpact
	TypeChainHop
	TypeEnemyDied
	TypeStatsDirty
	TypeItemLevelChanged
	TypeWeaponPickup
	TypeWeaponUpgraded
	TypeLevelUp
	TypeWaveAdvanced
	TypePowerLevelChanged
	TypePlayerDamaged
	TypePlayerDied
)

var typeNames = map[Type]string{
	TypeAttackTriggered:   "AttackTriggered",
	TypeCollision:         "Collision",
	TypeHit:               "Hit",
	TypeDamageDealt:       "DamageDealt",
	TypeImpact:            "Impact",
	TypeChainHop:          "ChainHop",
	TypeEnemyDied:         "EnemyDied",
	TypeStatsDirty:        "StatsDirty",
	TypeItemLevelChanged:  "ItemLevelChanged",
	TypeWeaponPickup:      "WeaponPickup",
	TypeWeaponUpgraded:    "WeaponUpgraded",
	TypeLevelUp:           "LevelUp",
	TypeWaveAdvanced:      "WaveAdvanced",
	TypePowerLevelChanged: "PowerLevelChanged",
	TypePlayerDamaged:     "PlayerDamaged",
	TypePlayerDied:        "PlayerDied",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "Unknown"
}

// Event 所有事件实现的接口
type Event interface {
	Type() Type
}

// AttackTriggered 武器冷却完成，需要执行一次攻击
type AttackTriggered struct {
	Weapon ecs.EntityID
}

// Collision 投射物/效果与敌人的原始重叠
type Collision struct {
	Source ecs.EntityID
	Target ecs.EntityID
	X, Y   float64
}

// Hit 规范化后的命中（已通过伤害模式过滤）
type Hit struct {
	Weapon ecs.EntityID
	// Source 为 0 表示无投射物的直接命中（如连锁闪电）
	Source ecs.EntityID
	Target ecs.EntityID
	X, Y   float64
}

// DamageDealt 伤害数字，供表现层使用
type DamageDealt struct {
	Target     ecs.EntityID
	Amount     float64
	X, Y       float64
	IsCrit     bool
	DamageType string
}

// Impact 命中特效/音效触发
type Impact struct {
	X, Y   float64
	Visual string
	Sound  string
}

// ChainHop 连锁攻击的一跳
type ChainHop struct {
	Weapon       ecs.EntityID
	Target       ecs.EntityID
	FromX, FromY float64
	ToX, ToY     float64
	Hop          int
}

// EnemyDied 敌人死亡（每个敌人恰好一次）
type EnemyDied struct {
	Enemy     ecs.EntityID
	EnemyType types.EnemyType
	X, Y      float64
	XPValue   float64
}

// StatsDirty 拥有者的属性输入发生变化，需要重算派生属性
type StatsDirty struct {
	Owner ecs.EntityID
}

// ItemLevelChanged 装备等级变化
type ItemLevelChanged struct {
	Owner ecs.EntityID
	Item  ecs.EntityID
	ID    string
	Level int
}

// WeaponPickup 拾取武器命令（武器所有权的唯一写入口）
type WeaponPickup struct {
	Owner ecs.EntityID
	Kind  string
}

// WeaponUpgraded 已拥有的武器升级
type WeaponUpgraded struct {
	Owner  ecs.EntityID
	Weapon ecs.EntityID
	Kind   string
	Level  int
}

// LevelUp 玩家升级（每次跨越阈值一次）
type LevelUp struct {
	Player ecs.EntityID
	Level  int
}

// WaveAdvanced 进入下一波（Finished 表示波次计划已耗尽）
type WaveAdvanced struct {
	Index    int
	Finished bool
}

// PowerLevelChanged 某敌人类型的强度等级变化
type PowerLevelChanged struct {
	EnemyType types.EnemyType
	Power     float64
}

// PlayerDamaged 玩家受到接触伤害
type PlayerDamaged struct {
	Player    ecs.EntityID
	Source    ecs.EntityID
	Amount    float64
	Remaining float64
}

// PlayerDied 玩家生命值归零
type PlayerDied struct {
	Player ecs.EntityID
}

func (AttackTriggered) Type() Type   { return TypeAttackTriggered }
func (Collision) Type() Type         { return TypeCollision }
func (Hit) Type() Type               { return TypeHit }
func (DamageDealt) Type() Type       { return TypeDamageDealt }
func (Impact) Type() Type            { return TypeImpact }
func (ChainHop) Type() Type          { return TypeChainHop }
func (EnemyDied) Type() Type         { return TypeEnemyDied }
func (StatsDirty) Type() Type        { return TypeStatsDirty }
func (ItemLevelChanged) Type() Type  { return TypeItemLevelChanged }
func (WeaponPickup) Type() Type      { return TypeWeaponPickup }
func (WeaponUpgraded) Type() Type    { return TypeWeaponUpgraded }
func (LevelUp) Type() Type           { return TypeLevelUp }
func (WaveAdvanced) Type() Type      { return TypeWaveAdvanced }
func (PowerLevelChanged) Type() Type { return TypePowerLevelChanged }
func (PlayerDamaged) Type() Type     { return TypePlayerDamaged }
func (PlayerDied) Type() Type        { return TypePlayerDied }
