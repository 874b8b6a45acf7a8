package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/gonewx/survivors/pkg/types"
	"gopkg.in/yaml.v3"
)

// BehaviorSpec 攻击行为变体及其参数
type BehaviorSpec struct {
	Variant  string  `yaml:"variant"`
	Speed    float64 `yaml:"speed"`
	Count    int     `yaml:"count"`
	Lifetime float64 `yaml:"lifetime"`
	Radius   float64 `yaml:"radius"` // 投射物碰撞半径
	MaxHits  int     `yaml:"max_hits"`
	Random   bool    `yaml:"random"` // nova：随机方向

	OrbitRadius  float64 `yaml:"orbit_radius"`
	AngularSpeed float64 `yaml:"angular_speed"` // 弧度/秒

	Range   float64 `yaml:"range"`
	MaxHops int     `yaml:"max_hops"`

	SpawnHeight float64 `yaml:"spawn_height"`
	ConeAngle   float64 `yaml:"cone_angle"` // 角度

	ZoneRadius float64 `yaml:"zone_radius"`
	ZoneTarget string  `yaml:"zone_target"` // player | nearest_enemy

	TurnRate         float64 `yaml:"turn_rate"` // 每秒方向混合系数
	Jitter           float64 `yaml:"jitter"`    // 初始方向随机偏转（弧度）
	Pattern          string  `yaml:"pattern"`
	PatternAmplitude float64 `yaml:"pattern_amplitude"` // 侧向速度（像素/秒）
	PatternFrequency float64 `yaml:"pattern_frequency"`

	// 解析后的值
	VariantKind types.AttackVariant `yaml:"-"`
	PatternKind types.MovePattern   `yaml:"-"`
}

// EffectConfig 命中附加效果
type EffectConfig struct {
	Kind     string  `yaml:"kind"`
	Duration float64 `yaml:"duration"`
	Interval float64 `yaml:"interval"`
	Damage   float64 `yaml:"damage"`

	EffectKind types.EffectKind `yaml:"-"`
}

// LevelDelta 升到下一级时对武器实例的增量
type LevelDelta struct {
	Damage   float64 `yaml:"damage"`
	Cooldown float64 `yaml:"cooldown"`
	Count    int     `yaml:"count"`
	Area     float64 `yaml:"area"`
	Duration float64 `yaml:"duration"`
	Hops     int     `yaml:"hops"`
}

// WeaponSpec 单个武器的声明式规格
type WeaponSpec struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	BaseDamage    float64        `yaml:"base_damage"`
	DamageType    string         `yaml:"damage_type"`
	Cooldown      float64        `yaml:"cooldown"`
	Knockback     float64        `yaml:"knockback"`
	AoERadius     float64        `yaml:"aoe_radius"`
	DamageMode    string         `yaml:"damage_mode"`
	TickInterval  float64        `yaml:"tick_interval"`
	UseOwnerStats *bool          `yaml:"use_owner_stats"`
	MaxLevel      int            `yaml:"max_level"`
	Behavior      BehaviorSpec   `yaml:"behavior"`
	Effects       []EffectConfig `yaml:"effects"`
	Visual        string         `yaml:"visual"`
	Sound         string         `yaml:"sound"`
	ImpactVisual  string         `yaml:"impact_visual"`
	ImpactSound   string         `yaml:"impact_sound"`
	// Levels[i] 为从 i+1 级升到 i+2 级的增量
	Levels []LevelDelta `yaml:"levels"`

	Mode types.DamageMode `yaml:"-"`
}

// UsesOwnerStats 伤害是否受拥有者 Attack/暴击影响（默认是）
func (w *WeaponSpec) UsesOwnerStats() bool {
	return w.UseOwnerStats == nil || *w.UseOwnerStats
}

// LevelDeltaFor 返回升到 level 级时使用的增量（level 从 2 开始有效）
func (w *WeaponSpec) LevelDeltaFor(level int) (LevelDelta, bool) {
	idx := level - 2
	if idx < 0 || idx >= len(w.Levels) {
		return LevelDelta{}, false
	}
	return w.Levels[idx], true
}

// WeaponsConfig 武器配置文件结构
type WeaponsConfig struct {
	Weapons []WeaponSpec `yaml:"weapons"`

	byID map[string]*WeaponSpec
}

// LoadWeapons 从 YAML 文件加载武器配置
func LoadWeapons(path string) (*WeaponsConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weapons file %s: %w", path, err)
	}
	cfg, err := ParseWeapons(data)
	if err != nil {
		return nil, fmt.Errorf("invalid weapons config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseWeapons 解析并校验武器配置
func ParseWeapons(data []byte) (*WeaponsConfig, error) {
	var cfg WeaponsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse weapons YAML: %w", err)
	}
	if err := validateWeapons(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateWeapons 校验武器配置，并填充解析后的枚举值和默认值
func validateWeapons(cfg *WeaponsConfig) error {
	if len(cfg.Weapons) == 0 {
		return fmt.Errorf("at least one weapon is required")
	}

	cfg.byID = make(map[string]*WeaponSpec, len(cfg.Weapons))
	for i := range cfg.Weapons {
		w := &cfg.Weapons[i]
		if w.ID == "" {
			return fmt.Errorf("weapon #%d: id is required", i)
		}
		if _, dup := cfg.byID[w.ID]; dup {
			return fmt.Errorf("weapon %s: duplicate id", w.ID)
		}
		if w.Cooldown <= 0 {
			return fmt.Errorf("weapon %s: cooldown must be positive, got %v", w.ID, w.Cooldown)
		}
		if w.BaseDamage < 0 {
			return fmt.Errorf("weapon %s: base_damage cannot be negative, got %v", w.ID, w.BaseDamage)
		}
		if w.AoERadius < 0 || w.Knockback < 0 {
			return fmt.Errorf("weapon %s: aoe_radius and knockback cannot be negative", w.ID)
		}

		mode, ok := types.DamageModeFromString(w.DamageMode)
		if !ok {
			return fmt.Errorf("weapon %s: unknown damage_mode %q", w.ID, w.DamageMode)
		}
		w.Mode = mode
		if mode == types.DamageTick && w.TickInterval <= 0 {
			return fmt.Errorf("weapon %s: tick damage requires positive tick_interval", w.ID)
		}

		b := &w.Behavior
		b.VariantKind = types.AttackVariantFromString(b.Variant)
		if b.VariantKind == types.AttackNone {
			return fmt.Errorf("weapon %s: unknown behavior variant %q", w.ID, b.Variant)
		}
		pattern, ok := types.MovePatternFromString(b.Pattern)
		if !ok {
			return fmt.Errorf("weapon %s: unknown movement pattern %q", w.ID, b.Pattern)
		}
		b.PatternKind = pattern
		if err := validateBehavior(w.ID, b); err != nil {
			return err
		}
		// 单体弹道在首次接触时消失，不能按间隔重复结算
		if mode == types.DamageTick && (b.VariantKind == types.AttackShot || b.VariantKind == types.AttackFalling) {
			return fmt.Errorf("weapon %s: %s does not support tick damage", w.ID, b.Variant)
		}

		for j := range w.Effects {
			e := &w.Effects[j]
			e.EffectKind = types.EffectKindFromString(e.Kind)
			switch e.EffectKind {
			case types.EffectBleed:
				if e.Duration <= 0 || e.Interval <= 0 {
					return fmt.Errorf("weapon %s: bleed requires positive duration and interval", w.ID)
				}
			case types.EffectRoot:
				if e.Duration <= 0 {
					return fmt.Errorf("weapon %s: root requires positive duration", w.ID)
				}
			default:
				return fmt.Errorf("weapon %s: unknown effect %q", w.ID, e.Kind)
			}
		}

		if w.MaxLevel == 0 {
			w.MaxLevel = len(w.Levels) + 1
		}
		if w.MaxLevel < 1 {
			return fmt.Errorf("weapon %s: max_level must be at least 1", w.ID)
		}

		cfg.byID[w.ID] = w
	}
	return nil
}

func validateBehavior(id string, b *BehaviorSpec) error {
	if b.Count < 0 || b.MaxHits < 0 || b.MaxHops < 0 {
		return fmt.Errorf("weapon %s: count, max_hits and max_hops cannot be negative", id)
	}
	if b.Radius == 0 {
		b.Radius = 8
	}

	switch b.VariantKind {
	case types.AttackShot, types.AttackNova, types.AttackHoming, types.AttackFalling:
		if b.Speed <= 0 {
			return fmt.Errorf("weapon %s: %s requires positive speed", id, b.Variant)
		}
	case types.AttackOrbiters:
		if b.OrbitRadius <= 0 {
			return fmt.Errorf("weapon %s: orbiters require positive orbit_radius", id)
		}
	case types.AttackChain:
		if b.Range <= 0 || b.MaxHops <= 0 {
			return fmt.Errorf("weapon %s: chain requires positive range and max_hops", id)
		}
	case types.AttackMeleeCone:
		if b.Range <= 0 || b.ConeAngle <= 0 || b.ConeAngle >= 180 {
			return fmt.Errorf("weapon %s: melee_cone requires positive range and cone_angle in (0, 180)", id)
		}
	case types.AttackZone:
		if b.ZoneRadius <= 0 {
			return fmt.Errorf("weapon %s: zone requires positive zone_radius", id)
		}
		if b.ZoneTarget != "" && b.ZoneTarget != "player" && b.ZoneTarget != "nearest_enemy" {
			return fmt.Errorf("weapon %s: unknown zone_target %q", id, b.ZoneTarget)
		}
	}

	if b.Count == 0 {
		b.Count = 1
	}
	if b.Lifetime == 0 {
		b.Lifetime = 3
	}
	return nil
}

// ConeAngleRadians 扇形张角（弧度）
func (b *BehaviorSpec) ConeAngleRadians() float64 {
	return b.ConeAngle * math.Pi / 180
}

// Get 按 ID 查找武器规格
func (c *WeaponsConfig) Get(id string) (*WeaponSpec, bool) {
	w, ok := c.byID[id]
	return w, ok
}

// IDs 返回按字母序排列的武器 ID
func (c *WeaponsConfig) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
