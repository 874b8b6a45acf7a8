package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/types"
	"gopkg.in/yaml.v3"
)

// RuleKind 装备修正规则
type RuleKind int

const (
	// RuleLinearAdd value = base + per_level × level，计入加法项
	RuleLinearAdd RuleKind = iota
	// RuleExpMul value = base × per_level^level，计入乘法项
	RuleExpMul
)

// ModifierRule 单条 (属性, 规则) 配置
type ModifierRule struct {
	Stat     string  `yaml:"stat"`
	Rule     string  `yaml:"rule"`
	Base     float64 `yaml:"base"`
	PerLevel float64 `yaml:"per_level"`

	StatKind types.StatKind `yaml:"-"`
	Kind     RuleKind       `yaml:"-"`
}

// ValueAt 规则在指定等级的取值（纯函数）
func (r ModifierRule) ValueAt(level int) float64 {
	switch r.Kind {
	case RuleExpMul:
		return r.Base * math.Pow(r.PerLevel, float64(level))
	default:
		return r.Base + r.PerLevel*float64(level)
	}
}

// DeltaBetween 两个等级之间的取值差，恒等于 ValueAt(to) - ValueAt(from)
func (r ModifierRule) DeltaBetween(from, to int) float64 {
	return r.ValueAt(to) - r.ValueAt(from)
}

// ItemSpec 单件装备的规格
type ItemSpec struct {
	Name      string         `yaml:"name"`
	MaxLevel  int            `yaml:"max_level"`
	Modifiers []ModifierRule `yaml:"modifiers"`
}

// ItemsConfig 装备配置文件结构
type ItemsConfig struct {
	Items map[string]ItemSpec `yaml:"items"`
}

// LoadItems 从 YAML 文件加载装备配置
func LoadItems(path string) (*ItemRegistry, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file %s: %w", path, err)
	}
	reg, err := ParseItems(data)
	if err != nil {
		return nil, fmt.Errorf("invalid items config in %s: %w", path, err)
	}
	return reg, nil
}

// ParseItems 解析并校验装备配置，返回注册表
func ParseItems(data []byte) (*ItemRegistry, error) {
	var cfg ItemsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse items YAML: %w", err)
	}
	if err := validateItems(&cfg); err != nil {
		return nil, err
	}
	return NewItemRegistry(cfg.Items), nil
}

func validateItems(cfg *ItemsConfig) error {
	for id, item := range cfg.Items {
		if item.MaxLevel < 1 {
			return fmt.Errorf("item %s: max_level must be at least 1, got %d", id, item.MaxLevel)
		}
		for i := range item.Modifiers {
			m := &item.Modifiers[i]
			kind, ok := types.StatKindFromString(m.Stat)
			if !ok {
				return fmt.Errorf("item %s: unknown stat %q", id, m.Stat)
			}
			m.StatKind = kind
			switch m.Rule {
			case "linear_add":
				m.Kind = RuleLinearAdd
			case "exp_mul":
				m.Kind = RuleExpMul
				if m.Base <= 0 || m.PerLevel <= 0 {
					return fmt.Errorf("item %s: exp_mul on %s requires positive base and per_level", id, m.Stat)
				}
			default:
				return fmt.Errorf("item %s: unknown rule %q", id, m.Rule)
			}
		}
	}
	return nil
}

// ItemRegistry 装备 ID → 规则列表的注册表
// 作为显式服务对象传入 ItemSystem，不使用全局状态
type ItemRegistry struct {
	items map[string]ItemSpec
}

// NewItemRegistry 创建注册表（规则须已解析）
func NewItemRegistry(items map[string]ItemSpec) *ItemRegistry {
	if items == nil {
		items = make(map[string]ItemSpec)
	}
	return &ItemRegistry{items: items}
}

// Lookup 返回装备规格
func (r *ItemRegistry) Lookup(id string) (ItemSpec, bool) {
	if r == nil {
		return ItemSpec{}, false
	}
	spec, ok := r.items[id]
	return spec, ok
}

// Rules 返回装备的有序规则列表；未知 ID 返回 nil
func (r *ItemRegistry) Rules(id string) []ModifierRule {
	spec, ok := r.Lookup(id)
	if !ok {
		return nil
	}
	return spec.Modifiers
}

// MaxLevel 返回装备最大等级；未知 ID 返回 0
func (r *ItemRegistry) MaxLevel(id string) int {
	spec, ok := r.Lookup(id)
	if !ok {
		return 0
	}
	return spec.MaxLevel
}

// Modifiers 计算装备在指定等级的修正
// 未知 ID 返回单位元（add 全 0，mul 全 1）
func (r *ItemRegistry) Modifiers(id string, level int) (add, mul components.StatVector) {
	mul = components.IdentityMul()
	for _, rule := range r.Rules(id) {
		v := rule.ValueAt(level)
		switch rule.Kind {
		case RuleExpMul:
			mul[rule.StatKind] *= v
		default:
			add[rule.StatKind] += v
		}
	}
	return add, mul
}

// IDs 返回按字母序排列的装备 ID
func (r *ItemRegistry) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
