package game

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrGameOver       = errors.New("game is over")
	ErrSwapNotAllowed = errors.New("swap not allowed")
)

// GameState 一局游戏的状态：棋盘、当前玩家、回合数和胜负
type GameState struct {
	Board         *Board    // 棋盘
	CurrentPlayer CellState // 当前玩家 (Player1 或 Player2)
	Turn          int       // 从 1 开始；第 2 回合可以换边
	SwapRule      bool      // 是否启用换边规则
	Swapped       bool      // 本局已经用过换边规则
	GameOver      bool
	Winner        CellState
	History       []Move
}

// NewGameState 创建 rows×cols 的空棋盘，Player1 先走
func NewGameState(rows, cols int) *GameState {
	return &GameState{
		Board:         NewBoard(rows, cols),
		CurrentPlayer: Player1,
		Turn:          1,
	}
}

// NewGameStateFrom wraps an existing position. The turn counter continues
// from the number of stones, so the swap rule only applies to a board with
// exactly one stone on it.
func NewGameStateFrom(b *Board) *GameState {
	p1, p2 := b.CountPieces(Player1), b.CountPieces(Player2)
	gs := &GameState{Board: b, CurrentPlayer: Player1, Turn: 1 + p1 + p2}
	if p1 > p2 {
		gs.CurrentPlayer = Player2
	}
	if w := Winner(b); w != Empty {
		gs.GameOver, gs.Winner = true, w
	}
	return gs
}

// MakeMove places a stone for the current player and passes the turn.
func (gs *GameState) MakeMove(pos Position) error {
	if gs.GameOver {
		return ErrGameOver
	}
	mover := gs.CurrentPlayer
	if !gs.Board.Set(pos, mover) {
		return fmt.Errorf("%w: %v by %v", ErrIllegalMove, pos, mover)
	}
	gs.Turn++
	gs.History = append(gs.History, Move{Pos: pos, Player: mover})

	// 只有刚落子的一方可能形成连接
	if HasConnection(gs.Board, mover) {
		gs.GameOver, gs.Winner = true, mover
		return nil
	}
	gs.CurrentPlayer = Opponent(mover)
	return nil
}

// CanSwap reports whether the player to move may claim the swap.
func (gs *GameState) CanSwap() bool {
	return gs.SwapRule && !gs.Swapped && !gs.GameOver && gs.Turn == 2
}

// Swap mirrors the board (colours exchanged, board transposed) and hands the
// move back to Player1. Seats keep their colours: the opening stone now
// belongs to the claimant, reflected onto its own axis.
func (gs *GameState) Swap() error {
	if !gs.CanSwap() {
		return ErrSwapNotAllowed
	}
	gs.Board.MirrorSwap()
	gs.CurrentPlayer = Opponent(gs.CurrentPlayer)
	gs.Swapped = true
	for k := range gs.History {
		h := &gs.History[k]
		h.Pos = Position{Row: h.Pos.Col, Col: h.Pos.Row}
		h.Player = Opponent(h.Player)
	}
	return nil
}

// Reset 重新开一局，保留棋盘尺寸和换边规则
func (gs *GameState) Reset() {
	*gs = GameState{
		Board:         NewBoard(gs.Board.rows, gs.Board.cols),
		CurrentPlayer: Player1,
		Turn:          1,
		SwapRule:      gs.SwapRule,
	}
}

func (gs *GameState) Clone() *GameState {
	ng := *gs
	ng.Board = gs.Board.Clone()
	ng.History = append([]Move(nil), gs.History...)
	return &ng
}
