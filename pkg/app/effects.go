package app

import (
	"github.com/gonewx/survivors/pkg/event"
	"github.com/gonewx/survivors/pkg/utils"
)

const (
	damageNumberDuration = 0.8
	damageNumberRise     = 28.0
	chainFlashDuration   = 0.15
	bannerDuration       = 2.5
)

// damageNumber 世界坐标中上浮的伤害数字
type damageNumber struct {
	X, Y   float64
	Amount float64
	Crit   bool
	Age    float64
}

// Offset 上浮距离（EaseOutCubic）
func (d damageNumber) Offset() float64 {
	return utils.EaseOutCubic(utils.Clamp(d.Age/damageNumberDuration, 0, 1)) * damageNumberRise
}

// chainFlash 连锁闪电的一段折线
type chainFlash struct {
	FromX, FromY float64
	ToX, ToY     float64
	Age          float64
}

// effects 纯表现层的短暂效果，由模拟事件驱动
type effects struct {
	numbers []damageNumber
	chains  []chainFlash

	banner    string
	bannerAge float64
}

func newEffects() *effects {
	return &effects{bannerAge: bannerDuration}
}

func (e *effects) onDamage(ev event.Event) []event.Event {
	d := ev.(event.DamageDealt)
	e.numbers = append(e.numbers, damageNumber{X: d.X, Y: d.Y, Amount: d.Amount, Crit: d.IsCrit})
	return nil
}

func (e *effects) onChainHop(ev event.Event) []event.Event {
	c := ev.(event.ChainHop)
	e.chains = append(e.chains, chainFlash{FromX: c.FromX, FromY: c.FromY, ToX: c.ToX, ToY: c.ToY})
	return nil
}

func (e *effects) onWaveAdvanced(ev event.Event) []event.Event {
	w := ev.(event.WaveAdvanced)
	if w.Finished {
		e.showBanner("FINAL WAVE CLEARED - SURVIVE!")
	} else {
		e.showBanner(waveBanner(w.Index))
	}
	return nil
}

func (e *effects) onLevelUp(ev event.Event) []event.Event {
	l := ev.(event.LevelUp)
	e.showBanner(levelBanner(l.Level))
	return nil
}

func (e *effects) showBanner(text string) {
	e.banner = text
	e.bannerAge = 0
}

// Update 推进效果年龄并移除过期项
func (e *effects) Update(dt float64) {
	kept := e.numbers[:0]
	for _, n := range e.numbers {
		n.Age += dt
		if n.Age < damageNumberDuration {
			kept = append(kept, n)
		}
	}
	e.numbers = kept

	chains := e.chains[:0]
	for _, c := range e.chains {
		c.Age += dt
		if c.Age < chainFlashDuration {
			chains = append(chains, c)
		}
	}
	e.chains = chains

	if e.bannerAge < bannerDuration {
		e.bannerAge += dt
	}
}

// Banner 当前显示的横幅文字；没有时返回空字符串
func (e *effects) Banner() string {
	if e.bannerAge >= bannerDuration {
		return ""
	}
	return e.banner
}
