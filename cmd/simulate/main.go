// simulate 无窗口运行战斗模拟，输出每波统计
//
// 用法（在仓库根目录执行）：
//
//	go run ./cmd/simulate -seed 7 -seconds 120 -weapon whip
//
// 升级时按 -pick 指定的序号自动选择；玩家按圆周移动以躲避敌人。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/gonewx/survivors/pkg/embedded"
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/game"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	seed    = flag.Uint64("seed", 1, "随机种子")
	seconds = flag.Float64("seconds", 60, "模拟时长（秒）")
	weapon  = flag.String("weapon", "", "初始武器 ID")
	pick    = flag.Int("pick", 0, "升级时自动选择的序号")
	dataDir = flag.String("data", ".", "包含 data/ 目录的路径")
)

// runStats 一局的统计
type runStats struct {
	kills     int
	damage    float64
	crits     int
	levelUps  int
	waves     int
	playerHit float64
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS(*dataDir))

	cfg, err := game.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	cfg.Seed = *seed
	cfg.StartingWeapon = *weapon

	sim, err := game.NewSimulation(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "模拟初始化失败: %v\n", err)
		os.Exit(1)
	}

	var stats runStats
	sim.Subscribe(event.TypeEnemyDied, func(ev event.Event) []event.Event {
		stats.kills++
		return nil
	})
	sim.Subscribe(event.TypeDamageDealt, func(ev event.Event) []event.Event {
		d := ev.(event.DamageDealt)
		stats.damage += d.Amount
		if d.IsCrit {
			stats.crits++
		}
		return nil
	})
	sim.Subscribe(event.TypeLevelUp, func(ev event.Event) []event.Event {
		stats.levelUps++
		return nil
	})
	sim.Subscribe(event.TypePlayerDamaged, func(ev event.Event) []event.Event {
		stats.playerHit += ev.(event.PlayerDamaged).Amount
		return nil
	})
	sim.Subscribe(event.TypeWaveAdvanced, func(ev event.Event) []event.Event {
		w := ev.(event.WaveAdvanced)
		stats.waves++
		snap := sim.Snapshot()
		fmt.Printf("[%s] wave %d%s  level %d  kills %d  enemies %d\n",
			clock(snap.Time), w.Index+1, finished(w.Finished), snap.Player.Level, stats.kills, len(snap.Enemies))
		return nil
	})

	ticks := int(*seconds / sim.Step())
loop:
	for i := 0; i < ticks; i++ {
		switch sim.Phase() {
		case game.PhaseGameOver:
			break loop
		case game.PhaseChoosingUpgrade:
			offers := sim.Offers()
			choice := *pick
			if choice >= len(offers) {
				choice = 0
			}
			if offer, err := sim.ChooseUpgrade(choice); err == nil {
				fmt.Printf("  level up: %s %s -> Lv%d\n", offer.Kind, offer.ID, offer.Level)
			}
		}

		// 绕原点做大圆运动
		t := float64(i) * sim.Step()
		sim.SetMoveInput(-math.Sin(t/4), math.Cos(t/4))
		sim.Tick()
	}

	snap := sim.Snapshot()
	fmt.Println("---")
	fmt.Printf("phase:     %s\n", snap.Phase)
	fmt.Printf("time:      %s\n", clock(snap.Time))
	fmt.Printf("level:     %d (%.0f/%.0f xp, %d level-ups)\n", snap.Player.Level, snap.Player.XP, snap.Player.NextLevelXP, stats.levelUps)
	fmt.Printf("health:    %.0f/%.0f (took %.0f)\n", snap.Player.Health, snap.Player.MaxHealth, stats.playerHit)
	fmt.Printf("waves:     %d advanced\n", stats.waves)
	fmt.Printf("kills:     %d\n", stats.kills)
	fmt.Printf("damage:    %.0f (%d crits)\n", stats.damage, stats.crits)
	for _, w := range snap.Weapons {
		fmt.Printf("weapon:    %s Lv%d\n", w.Kind, w.Level)
	}
	for _, it := range snap.Items {
		fmt.Printf("item:      %s Lv%d\n", it.ID, it.Level)
	}
}

func clock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func finished(done bool) string {
	if done {
		return " (plan finished)"
	}
	return ""
}
