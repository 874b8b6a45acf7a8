// Package app 提供游戏应用的核心包装器
//
// 该包把 Simulation 接到 Ebitengine 的主循环上：
// 每个 Update 把键盘输入转换成命令并推进固定步长模拟，Draw 只读取快照绘制。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/game"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 960
	ScreenHeight = 540
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 随机种子，相同种子与输入得到相同的对局
	Seed uint64
	// TPS 每秒更新次数，0 表示使用 Ebitengine 默认值
	TPS int
	// StartingWeapon 覆盖初始武器，为空时使用 combat.yaml 的配置
	StartingWeapon string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg     Config
	sim     *game.Simulation
	effects *effects
	snap    game.Snapshot
	paused  bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	a := &App{cfg: cfg}
	if err := a.start(); err != nil {
		return nil, err
	}
	return a, nil
}

// start 开始一局新的模拟
func (a *App) start() error {
	simCfg, err := game.LoadConfig()
	if err != nil {
		return fmt.Errorf("配置加载失败: %w", err)
	}
	simCfg.Seed = a.cfg.Seed
	simCfg.StartingWeapon = a.cfg.StartingWeapon

	sim, err := game.NewSimulation(simCfg)
	if err != nil {
		return fmt.Errorf("模拟初始化失败: %w", err)
	}

	fx := newEffects()
	sim.Subscribe(event.TypeDamageDealt, fx.onDamage)
	sim.Subscribe(event.TypeChainHop, fx.onChainHop)
	sim.Subscribe(event.TypeWaveAdvanced, fx.onWaveAdvanced)
	sim.Subscribe(event.TypeLevelUp, fx.onLevelUp)

	a.sim = sim
	a.effects = fx
	a.paused = false
	a.snap = sim.Snapshot()
	log.Printf("[App] New run started (seed=%d)", a.cfg.Seed)
	return nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	input := GetInputState()

	if input.ToggleFullscreen {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	switch a.sim.Phase() {
	case game.PhaseGameOver:
		if input.Restart {
			if err := a.start(); err != nil {
				return err
			}
		}
	case game.PhaseChoosingUpgrade:
		if input.Choice >= 0 {
			if offer, err := a.sim.ChooseUpgrade(input.Choice); err != nil {
				log.Printf("[App] Choice %d rejected: %v", input.Choice+1, err)
			} else {
				log.Printf("[App] Chose %s %s", offer.Kind, offer.ID)
			}
		}
	default:
		if input.Pause {
			a.paused = !a.paused
		}
	}

	frameDt := 1.0 / float64(ebiten.TPS())
	if !a.paused {
		a.sim.SetMoveInput(input.MoveX, input.MoveY)
		a.sim.Advance(frameDt)
		a.effects.Update(frameDt)
	}
	a.snap = a.sim.Snapshot()
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 28, B: 36, A: 255})

	cam := newCamera(a.snap.Player.X, a.snap.Player.Y)
	drawGrid(screen, cam)
	drawGems(screen, cam, a.snap.Gems)
	drawProjectiles(screen, cam, a.snap.Projectiles)
	drawEnemies(screen, cam, a.snap.Enemies)
	drawPlayer(screen, cam, a.snap.Player)
	drawChains(screen, cam, a.effects.chains)
	drawDamageNumbers(screen, cam, a.effects.numbers)

	drawHUD(screen, a.snap, a.effects.Banner())
	switch {
	case a.snap.Phase == game.PhaseChoosingUpgrade:
		drawOffers(screen, a.snap)
	case a.snap.Phase == game.PhaseGameOver:
		drawGameOver(screen, a.snap)
	case a.paused:
		drawCentered(screen, "PAUSED  (P to resume)", ScreenHeight/2)
	}
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.cfg.Verbose
}
