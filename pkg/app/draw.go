package app

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/game"
	"github.com/gonewx/survivors/pkg/types"
)

const (
	gridSpacing = 64.0
	// debugCharWidth DebugPrint 等宽字符宽度
	debugCharWidth = 6
)

var (
	gridColor       = color.RGBA{R: 36, G: 42, B: 54, A: 255}
	playerColor     = color.RGBA{R: 90, G: 200, B: 250, A: 255}
	pickupRingColor = color.RGBA{R: 90, G: 200, B: 250, A: 40}
	projectileColor = color.RGBA{R: 255, G: 230, B: 120, A: 200}
	gemColor        = color.RGBA{R: 120, G: 255, B: 160, A: 255}
	chainColor      = color.RGBA{R: 200, G: 220, B: 255, A: 255}
	hpBackColor     = color.RGBA{R: 60, G: 20, B: 20, A: 255}
	hpColor         = color.RGBA{R: 220, G: 60, B: 60, A: 255}
	xpColor         = color.RGBA{R: 90, G: 160, B: 255, A: 255}
	overlayColor    = color.RGBA{A: 170}
)

// enemyColors 按敌人类型区分的基础颜色
var enemyColors = map[types.EnemyType]color.RGBA{
	types.EnemyWalker:   {R: 200, G: 80, B: 80, A: 255},
	types.EnemyShooter:  {R: 200, G: 140, B: 60, A: 255},
	types.EnemySprinter: {R: 230, G: 200, B: 70, A: 255},
	types.EnemyJumper:   {R: 170, G: 90, B: 210, A: 255},
	types.EnemyTank:     {R: 120, G: 120, B: 140, A: 255},
}

// camera 以玩家为中心的世界 → 屏幕变换
type camera struct {
	offsetX, offsetY float64
}

func newCamera(px, py float64) camera {
	return camera{offsetX: ScreenWidth/2 - px, offsetY: ScreenHeight/2 - py}
}

func (c camera) toScreen(x, y float64) (float32, float32) {
	return float32(x + c.offsetX), float32(y + c.offsetY)
}

func tinted(base color.RGBA, tint components.TintComponent) color.RGBA {
	scale := func(v uint8, f float64) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)*f)))
	}
	return color.RGBA{R: scale(base.R, tint.R), G: scale(base.G, tint.G), B: scale(base.B, tint.B), A: scale(base.A, tint.A)}
}

func drawGrid(screen *ebiten.Image, cam camera) {
	startX := math.Mod(cam.offsetX, gridSpacing)
	for x := startX; x < ScreenWidth; x += gridSpacing {
		vector.StrokeLine(screen, float32(x), 0, float32(x), ScreenHeight, 1, gridColor, false)
	}
	startY := math.Mod(cam.offsetY, gridSpacing)
	for y := startY; y < ScreenHeight; y += gridSpacing {
		vector.StrokeLine(screen, 0, float32(y), ScreenWidth, float32(y), 1, gridColor, false)
	}
}

func drawGems(screen *ebiten.Image, cam camera, gems []game.GemView) {
	for _, g := range gems {
		x, y := cam.toScreen(g.X, g.Y)
		vector.DrawFilledRect(screen, x-3, y-3, 6, 6, gemColor, false)
	}
}

func drawProjectiles(screen *ebiten.Image, cam camera, shapes []game.ShapeView) {
	for _, s := range shapes {
		x, y := cam.toScreen(s.X, s.Y)
		if len(s.Points) >= 6 {
			n := len(s.Points) / 2
			for i := 0; i < n; i++ {
				j := (i + 1) % n
				vector.StrokeLine(screen,
					x+float32(s.Points[2*i]), y+float32(s.Points[2*i+1]),
					x+float32(s.Points[2*j]), y+float32(s.Points[2*j+1]),
					2, projectileColor, true)
			}
			continue
		}
		// 大半径的是区域效果，只画轮廓
		if s.Radius > 24 {
			vector.StrokeCircle(screen, x, y, float32(s.Radius), 2, projectileColor, true)
			continue
		}
		vector.DrawFilledCircle(screen, x, y, float32(s.Radius), projectileColor, true)
	}
}

func drawEnemies(screen *ebiten.Image, cam camera, enemies []game.EnemyView) {
	for _, e := range enemies {
		if e.Dying {
			continue
		}
		base, ok := enemyColors[e.Type]
		if !ok {
			base = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		x, y := cam.toScreen(e.X, e.Y)
		vector.DrawFilledCircle(screen, x, y, float32(e.Radius), tinted(base, e.Tint), true)
	}
}

func drawPlayer(screen *ebiten.Image, cam camera, p game.PlayerView) {
	x, y := cam.toScreen(p.X, p.Y)
	if p.PickupRange > 0 {
		vector.StrokeCircle(screen, x, y, float32(p.PickupRange), 1, pickupRingColor, true)
	}
	vector.DrawFilledCircle(screen, x, y, float32(p.Radius), playerColor, true)
	vector.StrokeLine(screen, x, y, x+float32(p.FacingX*p.Radius*1.6), y+float32(p.FacingY*p.Radius*1.6), 2, playerColor, true)
}

func drawChains(screen *ebiten.Image, cam camera, chains []chainFlash) {
	for _, c := range chains {
		x0, y0 := cam.toScreen(c.FromX, c.FromY)
		x1, y1 := cam.toScreen(c.ToX, c.ToY)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, chainColor, true)
	}
}

func drawDamageNumbers(screen *ebiten.Image, cam camera, numbers []damageNumber) {
	for _, n := range numbers {
		x, y := cam.toScreen(n.X, n.Y-n.Offset())
		text := fmt.Sprintf("%.0f", n.Amount)
		if n.Crit {
			text += "!"
		}
		ebitenutil.DebugPrintAt(screen, text, int(x)-len(text)*debugCharWidth/2, int(y))
	}
}

func drawBar(screen *ebiten.Image, x, y, w, h float32, ratio float64, fg color.Color) {
	vector.DrawFilledRect(screen, x, y, w, h, hpBackColor, false)
	ratio = math.Max(0, math.Min(1, ratio))
	vector.DrawFilledRect(screen, x, y, w*float32(ratio), h, fg, false)
}

func drawHUD(screen *ebiten.Image, snap game.Snapshot, banner string) {
	p := snap.Player
	hpRatio := 0.0
	if p.MaxHealth > 0 {
		hpRatio = p.Health / p.MaxHealth
	}
	xpRatio := 0.0
	if p.NextLevelXP > 0 {
		xpRatio = p.XP / p.NextLevelXP
	}
	drawBar(screen, 10, 10, 200, 10, hpRatio, hpColor)
	drawBar(screen, 10, 24, 200, 6, xpRatio, xpColor)

	wave := fmt.Sprintf("Wave %d", snap.Wave+1)
	if snap.WaveFinished {
		wave = "All waves cleared"
	}
	lines := []string{
		fmt.Sprintf("HP %.0f/%.0f  Lv %d  XP %.0f/%.0f", p.Health, p.MaxHealth, p.Level, p.XP, p.NextLevelXP),
		fmt.Sprintf("%s  Time %s  Enemies %d", wave, formatTime(snap.Time), len(snap.Enemies)),
	}
	for _, w := range snap.Weapons {
		lines = append(lines, fmt.Sprintf("%-14s Lv%d/%d [%s]", w.Name, w.Level, w.MaxLevel, chargeBar(w.Charge)))
	}
	for _, it := range snap.Items {
		lines = append(lines, fmt.Sprintf("%-14s Lv%d", it.ID, it.Level))
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 10, 34)

	ebitenutil.DebugPrintAt(screen, "WASD move  P pause  F11 fullscreen", 10, ScreenHeight-20)
	if banner != "" {
		drawCentered(screen, banner, 60)
	}
}

func drawOffers(screen *ebiten.Image, snap game.Snapshot) {
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, overlayColor, false)
	drawCentered(screen, "LEVEL UP! Choose an upgrade:", ScreenHeight/2-60)
	for i, o := range snap.Offers {
		label := fmt.Sprintf("[%d] %s %s", i+1, o.Kind, o.ID)
		if o.IsNew() {
			label += " (new)"
		} else {
			label += fmt.Sprintf(" -> Lv%d", o.Level)
		}
		drawCentered(screen, label, ScreenHeight/2-20+i*24)
	}
}

func drawGameOver(screen *ebiten.Image, snap game.Snapshot) {
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, overlayColor, false)
	drawCentered(screen, "GAME OVER", ScreenHeight/2-20)
	drawCentered(screen, fmt.Sprintf("Survived %s, reached level %d", formatTime(snap.Time), snap.Player.Level), ScreenHeight/2)
	drawCentered(screen, "Press R to restart", ScreenHeight/2+20)
}

func drawCentered(screen *ebiten.Image, text string, y int) {
	ebitenutil.DebugPrintAt(screen, text, (ScreenWidth-len(text)*debugCharWidth)/2, y)
}

func chargeBar(charge float64) string {
	const width = 10
	filled := int(math.Round(math.Max(0, math.Min(1, charge)) * width))
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

func formatTime(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func waveBanner(index int) string {
	return fmt.Sprintf("WAVE %d", index+1)
}

func levelBanner(level int) string {
	return fmt.Sprintf("LEVEL %d", level)
}
