package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/survivors/pkg/app"
	"github.com/gonewx/survivors/pkg/embedded"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	seed    = flag.Uint64("seed", 1, "随机种子（相同种子与输入得到相同对局）")
	tps     = flag.Int("tps", 60, "每秒模拟 tick 数")
	weapon  = flag.String("weapon", "", "初始武器 ID，为空时使用 combat.yaml 配置，- 表示不带武器")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源，必须在任何配置加载之前
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:        *verbose,
		Seed:           *seed,
		TPS:            *tps,
		StartingWeapon: *weapon,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Survivors")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
