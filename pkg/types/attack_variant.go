package types

// AttackVariant 武器攻击行为变体（每把武器只有一种）
type AttackVariant int

const (
	AttackNone AttackVariant = iota
	AttackShot
	AttackNova
	AttackOrbiters
	AttackChain
	AttackHoming
	AttackFalling
	AttackMeleeCone
	AttackZone
)

var attackVariantStringMap = map[AttackVariant]string{
	AttackShot:      "shot",
	AttackNova:      "nova",
	AttackOrbiters:  "orbiters",
	AttackChain:     "chain",
	AttackHoming:    "homing",
	AttackFalling:   "falling",
	AttackMeleeCone: "melee_cone",
	AttackZone:      "zone",
}

var stringToAttackVariantMap map[string]AttackVariant

// EffectKind 命中附加的状态效果
type EffectKind int

const (
	EffectNone EffectKind = iota
	// EffectBleed 持续伤害
	EffectBleed
	// EffectRoot 定身
	EffectRoot
)

var effectKindStringMap = map[EffectKind]string{
	EffectBleed: "bleed",
	EffectRoot:  "root",
}

var stringToEffectKindMap map[string]EffectKind

// DamageMode 伤害结算模式
type DamageMode int

const (
	// DamageDespawn 单次结算，首次有效接触后投射物消失（或命中次数耗尽）
	DamageDespawn DamageMode = iota
	// DamageTick 对持续重叠的目标按固定间隔结算
	DamageTick
)

var damageModeStringMap = map[DamageMode]string{
	DamageDespawn: "despawn",
	DamageTick:    "tick",
}

var stringToDamageModeMap map[string]DamageMode

// MovePattern 追踪投射物的运动修饰
type MovePattern int

const (
	PatternStraight MovePattern = iota
	PatternZigzag
	PatternWave
	PatternSpiral
)

var movePatternStringMap = map[MovePattern]string{
	PatternStraight: "straight",
	PatternZigzag:   "zigzag",
	PatternWave:     "wave",
	PatternSpiral:   "spiral",
}

var stringToMovePatternMap map[string]MovePattern

func init() {
	stringToAttackVariantMap = make(map[string]AttackVariant, len(attackVariantStringMap))
	for v, s := range attackVariantStringMap {
		stringToAttackVariantMap[s] = v
	}
	stringToEffectKindMap = make(map[string]EffectKind, len(effectKindStringMap))
	for v, s := range effectKindStringMap {
		stringToEffectKindMap[s] = v
	}
	stringToDamageModeMap = make(map[string]DamageMode, len(damageModeStringMap))
	for v, s := range damageModeStringMap {
		stringToDamageModeMap[s] = v
	}
	stringToMovePatternMap = make(map[string]MovePattern, len(movePatternStringMap))
	for v, s := range movePatternStringMap {
		stringToMovePatternMap[s] = v
	}
}

func (v AttackVariant) String() string {
	if s, ok := attackVariantStringMap[v]; ok {
		return s
	}
	return "none"
}

// AttackVariantFromString 未知字符串返回 AttackNone
func AttackVariantFromString(s string) AttackVariant {
	return stringToAttackVariantMap[s]
}

func (e EffectKind) String() string {
	if s, ok := effectKindStringMap[e]; ok {
		return s
	}
	return "none"
}

// EffectKindFromString 未知字符串返回 EffectNone
func EffectKindFromString(s string) EffectKind {
	return stringToEffectKindMap[s]
}

func (m DamageMode) String() string {
	if s, ok := damageModeStringMap[m]; ok {
		return s
	}
	return "despawn"
}

// DamageModeFromString 解析伤害模式；空字符串视为 despawn
func DamageModeFromString(s string) (DamageMode, bool) {
	if s == "" {
		return DamageDespawn, true
	}
	m, ok := stringToDamageModeMap[s]
	return m, ok
}

func (p MovePattern) String() string {
	if s, ok := movePatternStringMap[p]; ok {
		return s
	}
	return "straight"
}

// MovePatternFromString 解析运动模式；空字符串视为 straight
func MovePatternFromString(s string) (MovePattern, bool) {
	if s == "" {
		return PatternStraight, true
	}
	p, ok := stringToMovePatternMap[s]
	return p, ok
}
