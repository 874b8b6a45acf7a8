package components

import (
	"testing"

	"github.com/gonewx/survivors/pkg/types"
)

func TestTimerTick(t *testing.T) {
	t.Run("单次计时器停在完成状态", func(t *testing.T) {
		timer := TimerComponent{TargetTime: 1}
		if timer.Tick(0.5) {
			t.Error("should not fire before target")
		}
		if !timer.Tick(0.5) {
			t.Error("should fire at target")
		}
		if !timer.Done() || timer.Remaining() != 0 {
			t.Errorf("one-shot timer should be done, remaining %v", timer.Remaining())
		}
	})

	t.Run("重复计时器保留溢出时间", func(t *testing.T) {
		timer := TimerComponent{TargetTime: 0.5, Repeating: true}
		fired := 0
		for i := 0; i < 10; i++ {
			if timer.Tick(0.25) {
				fired++
			}
		}
		if fired != 5 {
			t.Errorf("fired %d times, want 5", fired)
		}
		if timer.CurrentTime != 0 {
			t.Errorf("current time = %v, want 0", timer.CurrentTime)
		}
	})

	t.Run("零目标时间永不触发", func(t *testing.T) {
		timer := TimerComponent{}
		if timer.Tick(1) {
			t.Error("timer without target must not fire")
		}
	})
}

func TestStatVector(t *testing.T) {
	var v StatVector
	v.Set(types.StatArmor, 0.5)
	v.Add(types.StatArmor, 0.25)
	if v.Get(types.StatArmor) != 0.75 {
		t.Errorf("armor = %v, want 0.75", v.Get(types.StatArmor))
	}

	// 越界下标被忽略
	v.Set(types.StatCount, 1)
	v.Add(-1, 1)
	if v.Get(types.StatCount) != 0 {
		t.Error("out of range stat should read as 0")
	}

	mul := IdentityMul()
	for k := types.StatKind(0); k < types.StatCount; k++ {
		if mul.Get(k) != 1 {
			t.Fatalf("identity multiplier for %s = %v", k, mul.Get(k))
		}
	}

	base := DefaultBaseStats()
	if base.Get(types.StatCooldown) != 1 || base.Get(types.StatMaxHealth) != 100 {
		t.Errorf("unexpected defaults: cooldown %v, max health %v", base.Get(types.StatCooldown), base.Get(types.StatMaxHealth))
	}
}
