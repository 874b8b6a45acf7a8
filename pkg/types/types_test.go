package types

import "testing"

func TestEnemyTypeRoundTrip(t *testing.T) {
	for _, et := range AllEnemyTypes {
		if got := EnemyTypeFromString(et.String()); got != et {
			t.Errorf("EnemyTypeFromString(%q) = %v, want %v", et.String(), got, et)
		}
	}

	t.Run("未知类型返回哨兵值", func(t *testing.T) {
		if got := EnemyTypeFromString("dragon"); got != EnemyNone {
			t.Errorf("expected EnemyNone, got %v", got)
		}
		if EnemyNone.String() != "none" {
			t.Errorf("EnemyNone should print as none, got %q", EnemyNone.String())
		}
	})
}

func TestStatKindNames(t *testing.T) {
	if StatCount != 16 {
		t.Fatalf("stat vector must have 16 slots, got %d", StatCount)
	}

	seen := make(map[string]bool)
	for k := StatKind(0); k < StatCount; k++ {
		name := k.String()
		if seen[name] {
			t.Errorf("duplicate stat name %q", name)
		}
		seen[name] = true

		back, ok := StatKindFromString(name)
		if !ok || back != k {
			t.Errorf("StatKindFromString(%q) = %v,%v want %v", name, back, ok, k)
		}
	}

	if _, ok := StatKindFromString("luck"); ok {
		t.Error("unknown stat name should not resolve")
	}
}

func TestVariantParsing(t *testing.T) {
	tests := []struct {
		in   string
		want AttackVariant
	}{
		{"shot", AttackShot},
		{"nova", AttackNova},
		{"orbiters", AttackOrbiters},
		{"chain", AttackChain},
		{"homing", AttackHoming},
		{"falling", AttackFalling},
		{"melee_cone", AttackMeleeCone},
		{"zone", AttackZone},
		{"laser", AttackNone},
	}
	for _, tt := range tests {
		if got := AttackVariantFromString(tt.in); got != tt.want {
			t.Errorf("AttackVariantFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if m, ok := DamageModeFromString(""); !ok || m != DamageDespawn {
		t.Error("empty damage mode should default to despawn")
	}
	if _, ok := DamageModeFromString("sometimes"); ok {
		t.Error("unknown damage mode should be rejected")
	}
	if p, ok := MovePatternFromString("spiral"); !ok || p != PatternSpiral {
		t.Error("spiral pattern should parse")
	}
	if EffectKindFromString("bleed") != EffectBleed || EffectKindFromString("poison") != EffectNone {
		t.Error("effect kind parsing mismatch")
	}
}
