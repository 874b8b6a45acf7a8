package components

import "github.com/gonewx/survivors/pkg/types"

// StatVector 按 types.StatKind 索引的定长属性向量
type StatVector [types.StatCount]float64

// Get 返回指定属性值
func (v StatVector) Get(k types.StatKind) float64 {
	if k < 0 || k >= types.StatCount {
		return 0
	}
	return v[k]
}

// Set 设置指定属性值
func (v *StatVector) Set(k types.StatKind, value float64) {
	if k < 0 || k >= types.StatCount {
		return
	}
	v[k] = value
}

// Add 在指定属性上累加
func (v *StatVector) Add(k types.StatKind, delta float64) {
	if k < 0 || k >= types.StatCount {
		return
	}
	v[k] += delta
}

// IdentityMul 返回乘法单位元（全部为 1）
func IdentityMul() StatVector {
	var v StatVector
	for i := range v {
		v[i] = 1
	}
	return v
}

// DefaultBaseStats 玩家基础属性默认值
func DefaultBaseStats() StatVector {
	var v StatVector
	v.Set(types.StatAttack, 0)
	v.Set(types.StatCritChance, 0.05)
	v.Set(types.StatCritDamage, 1.5)
	v.Set(types.StatAttackSpeed, 1)
	v.Set(types.StatMoveSpeed, 120)
	v.Set(types.StatMaxHealth, 100)
	v.Set(types.StatArmor, 0)
	v.Set(types.StatRecovery, 0)
	v.Set(types.StatProjectileCount, 0)
	v.Set(types.StatDuration, 1)
	v.Set(types.StatArea, 1)
	v.Set(types.StatCooldown, 1)
	v.Set(types.StatPickupRange, 50)
	v.Set(types.StatKnockback, 1)
	v.Set(types.StatGrowth, 1)
	return v
}

// BaseStatsComponent 固定的基础属性层
type BaseStatsComponent struct {
	Stats StatVector
}

// UpgradeStatsComponent 升级累积的平坦加成层
type UpgradeStatsComponent struct {
	Stats StatVector
}

// ItemModifiersComponent 单件装备的修正（挂在装备实体上）
// Add 为加法项（单位元 0），Mul 为乘法项（单位元 1）
type ItemModifiersComponent struct {
	Add StatVector
	Mul StatVector
}

// DerivedStatsComponent 最终属性，只由 StatSystem.Recalculate 写入
type DerivedStatsComponent struct {
	Stats StatVector
}
