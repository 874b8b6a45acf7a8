package components

// SpriteComponent 不透明的精灵资源路径，由表现层解析
type SpriteComponent struct {
	Path string
}

// TintComponent 渲染着色（定身时变色，效果结束后恢复）
type TintComponent struct {
	R, G, B, A float64
}

// NormalTint 默认无着色
func NormalTint() TintComponent {
	return TintComponent{R: 1, G: 1, B: 1, A: 1}
}

// RootedTint 定身着色
func RootedTint() TintComponent {
	return TintComponent{R: 0.55, G: 0.75, B: 1, A: 1}
}
