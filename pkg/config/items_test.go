package config

import (
	"math"
	"testing"

	"github.com/gonewx/survivors/pkg/types"
)

func TestModifierRule(t *testing.T) {
	t.Run("暴击书 LinearAdd{0, 0.02}", func(t *testing.T) {
		rule := ModifierRule{Kind: RuleLinearAdd, Base: 0, PerLevel: 0.02}

		if got := rule.DeltaBetween(0, 1); got != 0.02 {
			t.Errorf("DeltaBetween(0,1) = %v, want 0.02", got)
		}
		if got := rule.ValueAt(5); math.Abs(got-0.10) > 1e-12 {
			t.Errorf("ValueAt(5) = %v, want 0.10", got)
		}
	})

	t.Run("ExpMul 按等级指数增长", func(t *testing.T) {
		rule := ModifierRule{Kind: RuleExpMul, Base: 1, PerLevel: 1.1}
		if rule.ValueAt(0) != 1 {
			t.Errorf("ValueAt(0) should be base, got %v", rule.ValueAt(0))
		}
		if got := rule.ValueAt(2); math.Abs(got-1.21) > 1e-12 {
			t.Errorf("ValueAt(2) = %v, want 1.21", got)
		}
	})

	t.Run("DeltaBetween 恒等于 ValueAt 之差", func(t *testing.T) {
		rules := []ModifierRule{
			{Kind: RuleLinearAdd, Base: 3, PerLevel: 0.7},
			{Kind: RuleExpMul, Base: 2, PerLevel: 0.9},
		}
		for _, r := range rules {
			for from := 0; from <= 6; from++ {
				for to := 0; to <= 6; to++ {
					if r.DeltaBetween(from, to) != r.ValueAt(to)-r.ValueAt(from) {
						t.Fatalf("delta mismatch for %+v %d→%d", r, from, to)
					}
				}
			}
		}
	})
}

func TestItemRegistry(t *testing.T) {
	reg, err := ParseItems([]byte(`
items:
  crit_tome:
    max_level: 5
    modifiers:
      - { stat: crit_chance, rule: linear_add, base: 0, per_level: 0.02 }
  power:
    max_level: 3
    modifiers:
      - { stat: attack, rule: linear_add, base: 0, per_level: 3 }
      - { stat: attack, rule: exp_mul, base: 1, per_level: 1.1 }
`))
	if err != nil {
		t.Fatalf("ParseItems failed: %v", err)
	}

	t.Run("已知装备返回修正", func(t *testing.T) {
		add, mul := reg.Modifiers("power", 1)
		if add.Get(types.StatAttack) != 3 {
			t.Errorf("add attack = %v, want 3", add.Get(types.StatAttack))
		}
		if math.Abs(mul.Get(types.StatAttack)-1.1) > 1e-12 {
			t.Errorf("mul attack = %v, want 1.1", mul.Get(types.StatAttack))
		}
		if mul.Get(types.StatArmor) != 1 {
			t.Error("untouched stats must keep multiplicative identity")
		}
		if reg.MaxLevel("power") != 3 {
			t.Errorf("max level = %d, want 3", reg.MaxLevel("power"))
		}
	})

	t.Run("未知装备返回单位元", func(t *testing.T) {
		add, mul := reg.Modifiers("unknown", 4)
		for k := types.StatKind(0); k < types.StatCount; k++ {
			if add.Get(k) != 0 || mul.Get(k) != 1 {
				t.Fatalf("unknown item should be identity, stat %v add=%v mul=%v", k, add.Get(k), mul.Get(k))
			}
		}
		if reg.Rules("unknown") != nil {
			t.Error("unknown item has no rules")
		}
	})

	t.Run("拒绝未知属性和规则", func(t *testing.T) {
		if _, err := ParseItems([]byte("items:\n  x: { max_level: 1, modifiers: [ { stat: luck, rule: linear_add } ] }\n")); err == nil {
			t.Error("expected error for unknown stat")
		}
		if _, err := ParseItems([]byte("items:\n  x: { max_level: 1, modifiers: [ { stat: attack, rule: cubic } ] }\n")); err == nil {
			t.Error("expected error for unknown rule")
		}
	})
}
