package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/render"
	"github.com/decker502/monmon/pkg/utils"
)

// 战斗界面配色（FRLG 风格）
var (
	battleGrassColor   = color.RGBA{0x88, 0xCC, 0x88, 0xFF}
	battleSkyColor     = color.RGBA{0xC8, 0xE8, 0xC0, 0xFF}
	textBoxColor       = color.RGBA{0xF8, 0xF8, 0xF8, 0xFF}
	textBoxBorderColor = color.RGBA{0x48, 0x48, 0x48, 0xFF}
	textBoxInnerColor  = color.RGBA{0xA8, 0xA8, 0xA8, 0xFF}
	textColor          = color.RGBA{0x38, 0x38, 0x38, 0xFF}
	infoBoxColor       = color.RGBA{0xF8, 0xE8, 0xC8, 0xFF}
	hpLabelColor       = color.RGBA{0xF8, 0xA8, 0x00, 0xFF}
	hpHighColor        = color.RGBA{0x48, 0xB0, 0x48, 0xFF}
	hpMidColor         = color.RGBA{0xE8, 0xC8, 0x38, 0xFF}
	hpLowColor         = color.RGBA{0xE0, 0x38, 0x38, 0xFF}
)

// 布局常量（逻辑像素）
const (
	textBoxHeight   = 50.0
	textBoxMargin   = 5.0
	textBoxFontSize = 10.0
	textLineHeight  = 14.0

	infoBoxWidth    = 100.0
	infoBoxHeight   = 35.0
	infoNameSize    = 9.0
	hpBarWidth      = 65.0
	hpBarHeight     = 8.0
	hpLabelFontSize = 8.0

	spriteMarginX   = 20.0
	attackerBottomY = 60.0 // 攻击方精灵底边距屏幕底部的距离
	defenderTopY    = 50.0

	// flashOverlayMinAlpha 闪白低于此值时不再绘制
	flashOverlayMinAlpha = 0.01
)

// BattleRenderSystem 绘制战斗演出画面
//
// 画面内容由 BattleSessionComponent 的阶段决定：
//   - idle: 提示文本
//   - show_attacker / attack_text / attack_effect: 攻击方背面精灵 + 我方信息框
//   - show_defender / hit_effect / damage_text: 防守方正面精灵（带抖动）+ 敌方血条
//   - done: 双方精灵 + 结果提示
//
// 粒子和闪白覆盖层绘制在最上层。
type BattleRenderSystem struct {
	renderer    *RenderSystem
	rng         utils.RandomSource
	background  *ebiten.Image
	spriteScale float64
}

// NewBattleRenderSystem 创建战斗渲染系统
//
// 参数：
//   - renderer: 用于绘制粒子的渲染系统（与战斗共用实体管理器）
//   - rng: 抖动偏移的随机数来源
//   - background: 战斗背景图，nil 时使用渐变色
//   - spriteScale: 精灵放大倍数
func NewBattleRenderSystem(renderer *RenderSystem, rng utils.RandomSource, background *ebiten.Image, spriteScale float64) *BattleRenderSystem {
	return &BattleRenderSystem{
		renderer:    renderer,
		rng:         rng,
		background:  background,
		spriteScale: spriteScale,
	}
}

// Draw 绘制一帧战斗画面
func (s *BattleRenderSystem) Draw(canvas render.Canvas, session *components.BattleSessionComponent) {
	w := float64(canvas.Width())
	h := float64(canvas.Height())

	s.drawBackground(canvas, w, h)

	switch session.Phase {
	case components.BattlePhaseIdle:
		s.drawTextBox(canvas, w, h, "BATTLE MODE", "Press A to attack, B to exit")

	case components.BattlePhaseShowAttacker, components.BattlePhaseAttackText, components.BattlePhaseAttackEffect:
		s.drawPlayerInfoBox(canvas, w, h, session)
		s.drawAttacker(canvas, h, session)
		if session.Phase != components.BattlePhaseShowAttacker {
			s.drawTextBox(canvas, w, h,
				fmt.Sprintf("%s used", session.Attacker.Name),
				fmt.Sprintf("%s!", session.MoveName))
		}

	case components.BattlePhaseShowDefender, components.BattlePhaseHitEffect, components.BattlePhaseDamageText:
		s.drawEnemyInfoBox(canvas, session, session.HPPercent())
		shakeX := utils.RandSpread(s.rng, session.Shake)
		shakeY := utils.RandSpread(s.rng, session.Shake)
		s.drawDefender(canvas, w, session, shakeX, shakeY)
		if session.Phase == components.BattlePhaseDamageText {
			s.drawTextBox(canvas, w, h,
				"It's super effective!",
				fmt.Sprintf("%s took %d damage!", session.Defender.Name, session.Damage))
		}

	case components.BattlePhaseDone:
		s.drawEnemyInfoBox(canvas, session, session.HPPercent())
		s.drawPlayerInfoBox(canvas, w, h, session)
		s.drawDefender(canvas, w, session, 0, 0)
		s.drawAttacker(canvas, h, session)
		s.drawTextBox(canvas, w, h, "What will you do?", "A = Attack again, B = Exit")
	}

	s.renderer.DrawParticles(canvas)

	if session.Flash > flashOverlayMinAlpha {
		a := session.Flash
		if a > 1 {
			a = 1
		}
		canvas.FillRect(0, 0, w, h, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: uint8(a * 255)})
	}
}

// drawBackground 背景图按屏幕宽度缩放放在上方，下方用草地色填充；
// 没有背景图时绘制竖直渐变
func (s *BattleRenderSystem) drawBackground(canvas render.Canvas, w, h float64) {
	if s.background != nil {
		bw := float64(s.background.Bounds().Dx())
		bh := float64(s.background.Bounds().Dy())
		scale := w / bw
		scaledH := bh * scale

		canvas.DrawImage(s.background, 0, 0, scale)
		canvas.FillRect(0, scaledH, w, h-scaledH, battleGrassColor)
		return
	}

	const band = 4.0
	for y := 0.0; y < h; y += band {
		t := y / h
		canvas.FillRect(0, y, w, band, lerpColor(battleSkyColor, battleGrassColor, t))
	}
}

// drawTextBox 屏幕底部的双边框文本框
func (s *BattleRenderSystem) drawTextBox(canvas render.Canvas, w, h float64, lines ...string) {
	boxY := h - textBoxHeight - textBoxMargin

	canvas.FillRect(textBoxMargin, boxY, w-2*textBoxMargin, textBoxHeight, textBoxColor)
	canvas.StrokeRect(textBoxMargin, boxY, w-2*textBoxMargin, textBoxHeight, 2, textBoxBorderColor)
	canvas.StrokeRect(textBoxMargin+3, boxY+3, w-2*textBoxMargin-6, textBoxHeight-6, 1, textBoxInnerColor)

	for i, line := range lines {
		canvas.DrawText(line, 15, boxY+9+float64(i)*textLineHeight, textBoxFontSize, textColor, render.AlignLeft)
	}
}

// drawHPBar 血条，剩余比例 > 50% 绿色，> 25% 黄色，否则红色
func (s *BattleRenderSystem) drawHPBar(canvas render.Canvas, x, y, percent float64) {
	canvas.FillRect(x, y, hpBarWidth, hpBarHeight, textBoxBorderColor)
	canvas.FillRect(x+1, y+1, hpBarWidth-2, hpBarHeight-2, textBoxColor)
	canvas.FillRect(x+2, y+2, (hpBarWidth-4)*percent, hpBarHeight-4, HPColor(percent))
	canvas.DrawText("HP", x-2, y, hpLabelFontSize, hpLabelColor, render.AlignRight)
}

// HPColor 返回血量比例对应的血条颜色
func HPColor(percent float64) color.RGBA {
	switch {
	case percent > 0.5:
		return hpHighColor
	case percent > 0.25:
		return hpMidColor
	}
	return hpLowColor
}

// drawPlayerInfoBox 我方信息框（右下）
func (s *BattleRenderSystem) drawPlayerInfoBox(canvas render.Canvas, w, h float64, session *components.BattleSessionComponent) {
	x := w - infoBoxWidth - textBoxMargin
	y := h - 70
	s.drawInfoBox(canvas, x, y, session.Attacker.Name, 1)
}

// drawEnemyInfoBox 敌方信息框（左上）
func (s *BattleRenderSystem) drawEnemyInfoBox(canvas render.Canvas, session *components.BattleSessionComponent, percent float64) {
	s.drawInfoBox(canvas, textBoxMargin, 10, session.Defender.Name, percent)
}

func (s *BattleRenderSystem) drawInfoBox(canvas render.Canvas, x, y float64, name string, percent float64) {
	canvas.FillRect(x, y, infoBoxWidth, infoBoxHeight, infoBoxColor)
	canvas.StrokeRect(x, y, infoBoxWidth, infoBoxHeight, 2, textBoxBorderColor)
	canvas.DrawText(name, x+5, y+4, infoNameSize, textColor, render.AlignLeft)
	s.drawHPBar(canvas, x+25, y+18, percent)
}

// drawAttacker 攻击方背面精灵（左下）
func (s *BattleRenderSystem) drawAttacker(canvas render.Canvas, h float64, session *components.BattleSessionComponent) {
	sprite := session.Attacker.Sprite
	if sprite == nil {
		return
	}
	sh := float64(sprite.Bounds().Dy()) * s.spriteScale
	canvas.DrawImage(sprite, spriteMarginX, h-sh-attackerBottomY, s.spriteScale)
}

// drawDefender 防守方正面精灵（右上），受击时叠加抖动偏移
func (s *BattleRenderSystem) drawDefender(canvas render.Canvas, w float64, session *components.BattleSessionComponent, shakeX, shakeY float64) {
	sprite := session.Defender.Sprite
	if sprite == nil {
		return
	}
	sw := float64(sprite.Bounds().Dx()) * s.spriteScale
	canvas.DrawImage(sprite, w-sw-spriteMarginX+shakeX, defenderTopY+shakeY, s.spriteScale)
}

// lerpColor 在 RGB 空间按 t 混合两种颜色
func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	r, g, bl := ca.BlendRgb(cb, t).RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 0xFF}
}
