package components

import (
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/types"
)

// WeaponComponent 武器实例
// 每个拥有者每种武器只有一个实例；再次拾取同种武器只会升级
type WeaponComponent struct {
	Kind     string
	Name     string
	Level    int
	MaxLevel int
	Owner    ecs.EntityID
	Variant  types.AttackVariant
}

// CooldownComponent 武器的重复冷却计时器
//
// Elapsed 按 dt × AttackSpeed 推进；
// 实际冷却时长 Duration = BaseDuration × 拥有者 Cooldown 属性，每 tick 重新计算。
type CooldownComponent struct {
	BaseDuration float64
	Duration     float64
	Elapsed      float64
}

// EffectSpec 命中附加效果的参数
type EffectSpec struct {
	Kind     types.EffectKind
	Duration float64
	Interval float64 // 仅 Bleed
	Damage   float64 // 仅 Bleed，每跳伤害
}

// HitSpecComponent 武器的命中规格
type HitSpecComponent struct {
	BaseDamage    float64
	DamageType    string
	UseOwnerStats bool
	Knockback     float64
	AoERadius     float64
	Mode          types.DamageMode
	TickInterval  float64
	Effects       []EffectSpec

	ImpactVisual string
	ImpactSound  string
}

// AttackParamsComponent 攻击行为参数（随武器升级被修改）
type AttackParamsComponent struct {
	Speed            float64
	Count            int
	Lifetime         float64
	ProjectileRadius float64
	MaxHits          int
	Random           bool

	// AreaScale 武器自身的范围倍率，与拥有者 Area 属性相乘
	AreaScale float64

	OrbitRadius  float64
	AngularSpeed float64

	Range   float64
	MaxHops int

	SpawnHeight float64
	ConeAngle   float64 // 弧度

	ZoneRadius  float64
	ZoneOnEnemy bool

	TurnRate         float64
	Jitter           float64
	Pattern          types.MovePattern
	PatternAmplitude float64
	PatternFrequency float64

	Visual string
}
