package game

import (
	"fmt"

	"github.com/gonewx/survivors/pkg/config"
)

// Config 模拟所需的全部声明式数据
type Config struct {
	Weapons *config.WeaponsConfig
	Items   *config.ItemRegistry
	// Waves 为 nil 时不生成敌人（测试和沙盒模式）
	Waves   *config.WavePlan
	Enemies *config.EnemiesConfig
	Combat  *config.CombatConfig

	Seed uint64
	// StartingWeapon 覆盖战斗配置中的初始武器；"-" 表示不带武器
	StartingWeapon string
}

// LoadConfig 从默认路径加载全部配置
func LoadConfig() (*Config, error) {
	weapons, err := config.LoadWeapons(config.DefaultWeaponsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load weapons: %w", err)
	}
	items, err := config.LoadItems(config.DefaultItemsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	waves, err := config.LoadWavePlan(config.DefaultWavesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load waves: %w", err)
	}
	enemies, err := config.LoadEnemies(config.DefaultEnemiesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load enemies: %w", err)
	}
	combat, err := config.LoadCombat(config.DefaultCombatPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load combat: %w", err)
	}

	return &Config{
		Weapons: weapons,
		Items:   items,
		Waves:   waves,
		Enemies: enemies,
		Combat:  combat,
		Seed:    1,
	}, nil
}

func (c *Config) startingWeapon() string {
	switch c.StartingWeapon {
	case "-":
		return ""
	case "":
		return c.Combat.Player.StartingWeapon
	}
	return c.StartingWeapon
}

func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if c.Weapons == nil {
		return fmt.Errorf("weapons config cannot be nil")
	}
	if c.Combat == nil {
		return fmt.Errorf("combat config cannot be nil")
	}
	if c.Waves != nil && c.Enemies == nil {
		return fmt.Errorf("wave plan requires enemy stats")
	}
	if id := c.startingWeapon(); id != "" {
		if _, ok := c.Weapons.Get(id); !ok {
			return fmt.Errorf("unknown starting weapon %q", id)
		}
	}
	return nil
}
