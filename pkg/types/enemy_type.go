// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// EnemyType 定义敌人的类型（封闭集合）
type EnemyType int

const (
	// EnemyNone 哨兵值：无类型 / 未知类型
	EnemyNone EnemyType = iota
	// EnemyWalker 普通步行者
	EnemyWalker
	// EnemyShooter 远程射手（当前仅按追击处理）
	EnemyShooter
	// EnemySprinter 冲刺者：高速低血
	EnemySprinter
	// EnemyJumper 跳跃者
	EnemyJumper
	// EnemyTank 重装：低速高血
	EnemyTank
)

// AllEnemyTypes 按枚举顺序列出所有有效敌人类型（不含 EnemyNone）
var AllEnemyTypes = []EnemyType{
	EnemyWalker,
	EnemyShooter,
	EnemySprinter,
	EnemyJumper,
	EnemyTank,
}

// enemyTypeStringMap 敌人类型到配置字符串的映射
var enemyTypeStringMap = map[EnemyType]string{
	EnemyWalker:   "walker",
	EnemyShooter:  "shooter",
	EnemySprinter: "sprinter",
	EnemyJumper:   "jumper",
	EnemyTank:     "tank",
}

// stringToEnemyTypeMap 配置字符串到敌人类型的反向映射
var stringToEnemyTypeMap map[string]EnemyType

func init() {
	stringToEnemyTypeMap = make(map[string]EnemyType, len(enemyTypeStringMap))
	for et, s := range enemyTypeStringMap {
		stringToEnemyTypeMap[s] = et
	}
}

// String 返回敌人类型的配置字符串表示
func (e EnemyType) String() string {
	if s, ok := enemyTypeStringMap[e]; ok {
		return s
	}
	return "none"
}

// EnemyTypeFromString 将配置字符串转换为 EnemyType，未知字符串返回 EnemyNone
func EnemyTypeFromString(s string) EnemyType {
	if et, ok := stringToEnemyTypeMap[s]; ok {
		return et
	}
	return EnemyNone
}
