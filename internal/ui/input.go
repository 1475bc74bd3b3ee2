// File ui/input.go
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"
)

// handleKeys 全局快捷键：H 提示，N/R 新局，1/2 回答换边
func (gs *GameScreen) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		gs.showHint = !gs.showHint
		pace.wake()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) ||
		(gs.state.GameOver && (inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter))) {
		gs.newGame()
		pace.wake()
		return
	}

	h := gs.currentHuman()
	if h == nil || !gs.state.CanSwap() {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1), inpututil.IsKeyJustPressed(ebiten.KeyY):
		h.AnswerSwap(true)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		h.AnswerSwap(false)
	}
}

// handleMouse 左键点击空格落子；换边提问时点击视为拒绝换边
func (gs *GameScreen) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	pace.wake()
	mx, my := ebiten.CursorPosition()
	pos, ok := gs.layout.CellAt(float64(mx), float64(my))
	if !ok {
		return
	}
	h := gs.currentHuman()
	if gs.state.CanSwap() {
		h.AnswerSwap(false)
	}
	if !h.Submit(pos) {
		log.Debug().Str("pos", pos.String()).Msg("click-dropped")
	}
}
