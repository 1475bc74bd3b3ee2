// File /ui/screen.go
package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"hex_go/internal/config"
	"hex_go/internal/game"
	"hex_go/internal/player"
	"hex_go/internal/ui/geom"
)

// Mode 对局模式
type Mode string

const (
	ModePvE Mode = "pve" // 人机
	ModePvP Mode = "pvp" // 人人
	ModeEvE Mode = "eve" // 机机，演示用
)

var ErrBadMode = errors.New("unknown mode")

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModePvE, ModePvP, ModeEvE:
		return m, nil
	}
	return "", fmt.Errorf("%w %q", ErrBadMode, s)
}

const (
	boardMargin = 48
	statusBarH  = 32
	// 电脑落子前至少等这么久，避免瞬间落子看不清
	aiMinThink = 300 * time.Millisecond
)

// turnResult 后台回合的结果；gen 用来丢弃过期结果
type turnResult struct {
	gen  int
	swap bool
	pos  game.Position
	err  error
}

// GameScreen 实现 ebiten.Game 接口，管理游戏主循环和渲染
type GameScreen struct {
	cfg      *config.Config
	mode     Mode
	human    game.CellState // pve 模式下人类执的颜色
	engine   *game.Engine
	state    *game.GameState
	seats    [2]player.Player
	humans   [2]*player.HumanPlayer // nil 表示该座位是电脑
	fontFace font.Face

	width, height int
	layout        geom.Layout
	offscreen     *ebiten.Image
	boardBaked    *ebiten.Image // 预渲染好的棋盘底图（格子+边框）
	boardBakedOK  bool

	showHint  bool
	hint      []game.Position
	hintCost  int
	hintStale bool

	gen         int
	turnRunning bool
	turnStarted time.Time
	turnCh      chan turnResult    // 后台回合结果（容量1）
	turnCancel  context.CancelFunc // 取消后台回合
	pending     *turnResult        // 已算出但尚未应用（等 aiMinThink）

	message string
}

// NewGameScreen builds the window state from cfg.
func NewGameScreen(cfg *config.Config) (*GameScreen, error) {
	mode, err := ParseMode(cfg.GetString(config.ConfigUIMode))
	if err != nil {
		return nil, err
	}
	human, err := game.ParsePlayer(cfg.GetString(config.ConfigUIHumanSeat))
	if err != nil {
		return nil, err
	}
	w, h := cfg.GetInt(config.ConfigUIWidth), cfg.GetInt(config.ConfigUIHeight)
	if w < 200 || h < 200 {
		return nil, fmt.Errorf("%w: window %dx%d", config.ErrInvalidConfig, w, h)
	}
	gs := &GameScreen{
		cfg:      cfg,
		mode:     mode,
		human:    human,
		engine:   cfg.NewEngine(),
		fontFace: basicfont.Face7x13,
		width:    w,
		height:   h,
		turnCh:   make(chan turnResult, 1),
	}
	gs.offscreen = ebiten.NewImage(w, h)
	gs.newGame()
	return gs, nil
}

// newGame 取消后台回合并重新开局；棋盘大小可能随配置变化
func (gs *GameScreen) newGame() {
	gs.cancelTurn()
	rows, cols := gs.cfg.BoardSize()
	gs.state = game.NewGameState(rows, cols)
	gs.state.SwapRule = gs.cfg.GetBool(config.ConfigGameSwapRule)

	for k := range gs.seats {
		colour := game.Player1 + game.CellState(k)
		human := gs.mode == ModePvP || (gs.mode == ModePvE && colour == gs.human)
		if human {
			h := player.NewHumanPlayer(colour.String())
			gs.humans[k], gs.seats[k] = h, h
		} else {
			gs.humans[k], gs.seats[k] = nil, player.NewAIPlayer(gs.engine)
		}
	}

	if gs.layout.Rows != rows || gs.layout.Cols != cols {
		gs.layout = geom.Fit(rows, cols, float64(gs.width), float64(gs.height-statusBarH), boardMargin)
		gs.layout.OriginY += statusBarH
		gs.boardBakedOK = false
	}
	gs.hintStale = true
	gs.message = ""
	log.Info().
		Str("mode", string(gs.mode)).
		Int("rows", rows).
		Int("cols", cols).
		Bool("swap", gs.state.SwapRule).
		Msg("new-game")
}

func (gs *GameScreen) seatIndex() int { return int(gs.state.CurrentPlayer - game.Player1) }

// currentHuman 当前轮到的人类玩家；电脑回合返回 nil
func (gs *GameScreen) currentHuman() *player.HumanPlayer {
	if gs.state.GameOver {
		return nil
	}
	return gs.humans[gs.seatIndex()]
}

// startTurn 在后台让当前座位思考（或等待人类输入），结果写回 turnCh
func (gs *GameScreen) startTurn() {
	gs.gen++
	ctx, cancel := context.WithCancel(context.Background())
	gs.turnCancel = cancel
	gs.turnRunning = true
	gs.turnStarted = time.Now()

	st := gs.state.Clone()
	seat := gs.seats[gs.seatIndex()]
	go func(st *game.GameState, p player.Player, gen int, out chan<- turnResult) {
		res := turnResult{gen: gen}
		if st.CanSwap() && p.ClaimSwap(ctx, st.Clone()) {
			res.swap = true
		} else {
			res.pos, res.err = p.ChooseTile(ctx, st)
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		select {
		case out <- res:
		default:
		}
	}(st, seat, gs.gen, gs.turnCh)
}

func (gs *GameScreen) cancelTurn() {
	if gs.turnCancel != nil {
		gs.turnCancel()
		gs.turnCancel = nil
	}
	gs.turnRunning = false
	gs.pending = nil
	select {
	case <-gs.turnCh:
	default:
	}
}

// applyTurn 把后台结果落到真实棋盘上
func (gs *GameScreen) applyTurn(r turnResult) {
	mover := gs.state.CurrentPlayer
	switch {
	case r.err != nil:
		log.Error().Err(r.err).Str("player", mover.String()).Msg("turn-failed")
		gs.message = r.err.Error()
		return
	case r.swap:
		if err := gs.state.Swap(); err != nil {
			log.Error().Err(err).Msg("swap-failed")
			return
		}
		gs.message = fmt.Sprintf("%s swapped", mover)
	default:
		if err := gs.state.MakeMove(r.pos); err != nil {
			log.Error().Err(err).Msg("move-failed")
			gs.message = err.Error()
			return
		}
		gs.message = fmt.Sprintf("%s played %s", mover, r.pos)
	}
	gs.hintStale = true
	log.Debug().Str("player", mover.String()).Bool("swap", r.swap).Str("pos", r.pos.String()).Msg("turn")
	if gs.state.GameOver {
		log.Info().Str("winner", gs.state.Winner.String()).Int("moves", len(gs.state.History)).Msg("game-over")
	}
}

// Update 更新游戏状态
func (gs *GameScreen) Update() error {
	now := time.Now()
	gs.handleKeys()

	if gs.state.GameOver {
		if gs.turnRunning {
			gs.cancelTurn()
		}
		pace.idle()
		return nil
	}

	if !gs.turnRunning {
		gs.startTurn()
	}

	select {
	case r := <-gs.turnCh:
		if r.gen == gs.gen {
			gs.pending = &r
		}
	default:
	}

	if r := gs.pending; r != nil {
		// 电脑落子至少停顿 aiMinThink，人类立即生效
		if gs.currentHuman() == nil && now.Sub(gs.turnStarted) < aiMinThink {
			pace.wake()
			return nil
		}
		gs.pending = nil
		gs.turnRunning = false
		gs.turnCancel()
		gs.turnCancel = nil
		gs.applyTurn(*r)
		return nil
	}

	if gs.currentHuman() != nil {
		pace.idle()
		gs.handleMouse()
	} else {
		pace.wake()
	}
	return nil
}

// Draw 每帧渲染：先画到 offscreen，再缩放到窗口
func (gs *GameScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	gs.offscreen.Fill(colBackground)

	if !gs.boardBakedOK {
		gs.boardBaked = bakeBoard(gs.layout, gs.width, gs.height)
		gs.boardBakedOK = true
	}
	gs.offscreen.DrawImage(gs.boardBaked, nil)

	if gs.showHint {
		gs.refreshHint()
		drawHint(gs.offscreen, gs.layout, gs.hint)
	}
	drawStones(gs.offscreen, gs.layout, gs.state)
	gs.drawStatus(gs.offscreen)

	// 把 offscreen 缩放、居中到 screen
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := math.Min(float64(w)/float64(gs.width), float64(h)/float64(gs.height))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(w)-float64(gs.width)*scale)/2, (float64(h)-float64(gs.height)*scale)/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(gs.offscreen, op)
}

// refreshHint 只在局面变化后重算最短路径（gonum 建图，比 ShortestCompletionDistance 慢）
func (gs *GameScreen) refreshHint() {
	if !gs.hintStale {
		return
	}
	gs.hintStale = false
	gs.hint, gs.hintCost = nil, game.Unreachable
	if gs.state.GameOver {
		return
	}
	gs.hint, gs.hintCost = game.ShortestPath(gs.state.Board, gs.state.CurrentPlayer)
}

func (gs *GameScreen) drawStatus(dst *ebiten.Image) {
	var line string
	st := gs.state
	switch {
	case st.GameOver:
		line = fmt.Sprintf("%s wins after %d moves. Press R to play again.", st.Winner, len(st.History))
	case gs.currentHuman() != nil && st.CanSwap():
		line = fmt.Sprintf("%s: swap? 1 = yes, 2 = no", st.CurrentPlayer)
	case gs.currentHuman() != nil:
		line = fmt.Sprintf("%s to move", st.CurrentPlayer)
	default:
		dots := strings.Repeat(".", 1+int(time.Since(gs.turnStarted)/(400*time.Millisecond))%3)
		line = fmt.Sprintf("%s is thinking%s", st.CurrentPlayer, dots)
	}
	text.Draw(dst, line, gs.fontFace, 16, 22, colText)

	right := "H: hint  N: new game"
	if gs.showHint && !st.GameOver {
		if gs.hintCost == game.Unreachable {
			right = "no path left"
		} else {
			right = fmt.Sprintf("needs %d more", gs.hintCost)
		}
	}
	if gs.message != "" && !st.GameOver {
		right = gs.message + "   " + right
	}
	b := text.BoundString(gs.fontFace, right)
	text.Draw(dst, right, gs.fontFace, gs.width-16-b.Dx(), 22, colTextDim)

	if st.GameOver {
		drawBanner(dst, gs.fontFace, gs.width, gs.height, fmt.Sprintf("%s wins!", st.Winner), stoneColour(st.Winner))
	}
}

// Layout 定义逻辑画布尺寸
func (gs *GameScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gs.width, gs.height
}
