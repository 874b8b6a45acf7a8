package types

// StatKind 属性种类，作为属性向量的下标
type StatKind int

const (
	StatAttack StatKind = iota
	StatCritChance
	StatCritDamage
	StatAttackSpeed
	StatMoveSpeed
	StatMaxHealth
	StatArmor
	StatRecovery
	StatProjectileCount
	StatDuration
	StatArea
	StatCooldown
	StatPickupRange
	StatKnockback
	// StatGrowth 经验获取倍率
	StatGrowth
	// StatReserved 保留槽位
	StatReserved

	// StatCount 属性向量长度
	StatCount
)

var statKindNames = [StatCount]string{
	StatAttack:          "attack",
	StatCritChance:      "crit_chance",
	StatCritDamage:      "crit_damage",
	StatAttackSpeed:     "attack_speed",
	StatMoveSpeed:       "move_speed",
	StatMaxHealth:       "max_health",
	StatArmor:           "armor",
	StatRecovery:        "recovery",
	StatProjectileCount: "projectile_count",
	StatDuration:        "duration",
	StatArea:            "area",
	StatCooldown:        "cooldown",
	StatPickupRange:     "pickup_range",
	StatKnockback:       "knockback",
	StatGrowth:          "growth",
	StatReserved:        "reserved",
}

// String 返回属性的配置名
func (s StatKind) String() string {
	if s < 0 || s >= StatCount {
		return "unknown"
	}
	return statKindNames[s]
}

// StatKindFromString 解析配置名；第二个返回值表示是否识别
func StatKindFromString(name string) (StatKind, bool) {
	for i, n := range statKindNames {
		if n == name {
			return StatKind(i), true
		}
	}
	return 0, false
}
