package components

// PositionComponent 存储实体在世界坐标系中的位置（像素，Y 轴向下）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 存储实体的速度向量（像素/秒）
// 由 MovementSystem 积分到 PositionComponent
type VelocityComponent struct {
	VX float64
	VY float64
}

// FacingComponent 玩家朝向（单位向量），用于近战扇形攻击定向
type FacingComponent struct {
	X float64
	Y float64
}
