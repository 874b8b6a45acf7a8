package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gonewx/survivors/pkg/embedded"
)

// 默认配置文件路径（位于嵌入的 data/ 目录）
const (
	DefaultWeaponsPath = "data/weapons.yaml"
	DefaultItemsPath   = "data/items.yaml"
	DefaultWavesPath   = "data/waves.yaml"
	DefaultEnemiesPath = "data/enemies.yaml"
	DefaultCombatPath  = "data/combat.yaml"
)

// readConfigFile 读取配置文件
// "data/" 前缀的路径优先从嵌入文件系统读取，其余路径（如测试临时目录）从磁盘读取
func readConfigFile(path string) ([]byte, error) {
	p := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if strings.HasPrefix(p, "data/") && embedded.IsInitialized() {
		return embedded.ReadFile(p)
	}
	return os.ReadFile(path)
}
