package utils

import "math"

// 二维向量工具函数
// 组件中的坐标都是裸 float64 对，这里直接对 (x, y) 操作，避免引入额外的向量类型

// Length 向量长度
func Length(x, y float64) float64 {
	return math.Hypot(x, y)
}

// Normalize 单位化；零向量返回 (0, 0)
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l < 1e-12 {
		return 0, 0
	}
	return x / l, y / l
}

// Distance 两点距离
func Distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// DistanceSq 两点距离的平方
func DistanceSq(ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	return dx*dx + dy*dy
}

// Rotate 将向量旋转 angle 弧度
func Rotate(x, y, angle float64) (float64, float64) {
	s, c := math.Sincos(angle)
	return x*c - y*s, x*s + y*c
}

// Perp 逆时针垂直向量
func Perp(x, y float64) (float64, float64) {
	return -y, x
}

// FromAngle 角度对应的单位向量
func FromAngle(angle float64) (float64, float64) {
	s, c := math.Sincos(angle)
	return c, s
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EaseOutCubic 三次方缓出，开始快结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}
