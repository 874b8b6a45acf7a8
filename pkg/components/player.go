package components

// PlayerComponent 玩家标记及输入状态
type PlayerComponent struct {
	// MoveX/MoveY 外部输入给出的移动方向，长度不超过 1
	MoveX, MoveY float64
	Radius       float64
	// RegenAccumulator 生命恢复的小数累积
	RegenAccumulator float64
}

// ExperienceComponent 经验与等级
// 升级阈值 = Base × Level^Exponent
type ExperienceComponent struct {
	XP       float64
	Level    int
	Base     float64
	Exponent float64
}

// XPGemComponent 经验宝石
type XPGemComponent struct {
	Value float64
}
