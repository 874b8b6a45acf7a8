package components

// TimerComponent 通用计时器
// 作为值嵌入到需要倒计时的组件中（生成间隔、波次时长、状态效果时长）
type TimerComponent struct {
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	Repeating   bool
}

// Tick 推进计时器；到达目标时间时返回 true
// 重复计时器会扣除目标时间继续计时，单次计时器停在完成状态
func (t *TimerComponent) Tick(dt float64) bool {
	t.CurrentTime += dt
	if t.TargetTime <= 0 || t.CurrentTime+1e-9 < t.TargetTime {
		return false
	}
	if t.Repeating {
		t.CurrentTime -= t.TargetTime
		if t.CurrentTime < 0 {
			t.CurrentTime = 0
		}
	}
	return true
}

// Done 单次计时器是否已完成
func (t *TimerComponent) Done() bool {
	return t.CurrentTime+1e-9 >= t.TargetTime
}

// Remaining 剩余时间
func (t *TimerComponent) Remaining() float64 {
	r := t.TargetTime - t.CurrentTime
	if r < 0 {
		return 0
	}
	return r
}
