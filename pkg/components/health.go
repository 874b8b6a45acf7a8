package components

// HealthComponent 存储实体的生命值信息
// 用于玩家和敌人
type HealthComponent struct {
	Current float64
	Max     float64
}
