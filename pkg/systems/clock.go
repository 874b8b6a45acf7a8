package systems

// Clock 固定步长模拟时钟，由 Simulation 在每个 tick 开始时推进
type Clock struct {
	Tick uint64
	Time float64
}
