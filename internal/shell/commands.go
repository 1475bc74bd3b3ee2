package shell

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"hex_go/internal/arena"
	"hex_go/internal/game"
	"hex_go/internal/player"
	"hex_go/internal/puzzle"
)

//go:embed helptext/usage.txt
var usageText string

type handler func(sc *ShellController, cmd *shellcmd) error

var commands map[string]handler

func init() {
	commands = map[string]handler{
		"new":      (*ShellController).newGame,
		"play":     (*ShellController).play,
		"ai":       (*ShellController).aiMove,
		"hint":     (*ShellController).hint,
		"swap":     (*ShellController).swap,
		"show":     (*ShellController).show,
		"s":        (*ShellController).show,
		"eval":     (*ShellController).eval,
		"path":     (*ShellController).path,
		"depth":    (*ShellController).depth,
		"load":     (*ShellController).load,
		"autoplay": (*ShellController).autoplay,
		"help":     (*ShellController).help,
		"quit":     func(*ShellController, *shellcmd) error { return errQuit },
		"exit":     func(*ShellController, *shellcmd) error { return errQuit },
	}
}

func (sc *ShellController) help(cmd *shellcmd) error {
	if len(cmd.args) == 0 {
		sc.showMessage(usageText)
		return nil
	}
	names := lo.Keys(commands)
	sort.Strings(names)
	for _, line := range strings.Split(usageText, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), cmd.args[0]) {
			sc.showMessage(line)
			return nil
		}
	}
	return fmt.Errorf("no help for %q; commands: %s", cmd.args[0], strings.Join(names, " "))
}

func (sc *ShellController) newGame(cmd *shellcmd) error {
	rows, cols := sc.state.Board.Rows(), sc.state.Board.Cols()
	if len(cmd.args) >= 1 {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("bad size %q", cmd.args[0])
		}
		rows, cols = n, n
	}
	if len(cmd.args) >= 2 {
		n, err := strconv.Atoi(cmd.args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("bad size %q", cmd.args[1])
		}
		cols = n
	}
	swapRule := sc.state.SwapRule
	if v, ok := cmd.options["swap"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		swapRule = b
	}
	sc.state = game.NewGameState(rows, cols)
	sc.state.SwapRule = swapRule
	sc.puzzle = nil
	sc.showMessage(sc.render(sc.state.Board, nil))
	return nil
}

func (sc *ShellController) play(cmd *shellcmd) error {
	if len(cmd.args) != 1 {
		return errors.New("usage: play <cell>, e.g. play c4")
	}
	pos, err := game.ParsePosition(cmd.args[0])
	if err != nil {
		return err
	}
	if err := sc.state.MakeMove(pos); err != nil {
		return err
	}
	if sc.puzzle != nil && len(sc.state.History) == 1 {
		if sc.puzzle.IsSolution(pos) {
			sc.showMessage("Correct!")
		} else if len(sc.puzzle.Level.Solution) > 0 {
			sc.showMessage("Not the expected move.")
		}
	}
	if sc.puzzle != nil && !sc.state.GameOver {
		// puzzles are answered by the engine
		return sc.aiMove(&shellcmd{cmd: "ai", options: map[string]string{}})
	}
	sc.showPosition()
	return nil
}

func (sc *ShellController) searchLimits(cmd *shellcmd) (game.Limits, error) {
	l := sc.engine.Options().Limits
	for name, val := range cmd.options {
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return l, fmt.Errorf("bad -%s %q", name, val)
		}
		switch name {
		case "depth":
			l = l.SetDepth(n)
		case "movetime":
			l = l.SetMovetime(time.Duration(n) * time.Millisecond)
		case "nodes":
			l = l.SetNodes(uint64(n))
		default:
			return l, fmt.Errorf("unknown option -%s", name)
		}
	}
	return l, nil
}

func (sc *ShellController) think(cmd *shellcmd) (game.Result, error) {
	if sc.state.GameOver {
		return game.Result{}, game.ErrGameOver
	}
	l, err := sc.searchLimits(cmd)
	if err != nil {
		return game.Result{}, err
	}
	res := sc.engine.SearchWithLimits(context.Background(), sc.state.Board, sc.state.CurrentPlayer, l)
	if !res.OK {
		return res, player.ErrNoMove
	}
	return res, nil
}

func (sc *ShellController) describe(res game.Result) string {
	return fmt.Sprintf("%v plays %v  score %d  depth %d  nodes %d  %v  stop %v  cache %.0f%%",
		sc.state.CurrentPlayer, res.Move, res.Score, res.Depth, res.Nodes,
		res.Elapsed.Round(time.Millisecond), res.Stop, 100*res.Cache.HitRate())
}

func (sc *ShellController) hint(cmd *shellcmd) error {
	res, err := sc.think(cmd)
	if err != nil {
		return err
	}
	sc.showMessage(sc.describe(res))
	return nil
}

func (sc *ShellController) aiMove(cmd *shellcmd) error {
	res, err := sc.think(cmd)
	if err != nil {
		return err
	}
	sc.showMessage(sc.describe(res))
	if err := sc.state.MakeMove(res.Move); err != nil {
		return err
	}
	sc.showPosition()
	return nil
}

func (sc *ShellController) swap(*shellcmd) error {
	if err := sc.state.Swap(); err != nil {
		return err
	}
	sc.showPosition()
	return nil
}

func (sc *ShellController) show(*shellcmd) error {
	sc.showPosition()
	return nil
}

func (sc *ShellController) showPosition() {
	sc.showMessage(sc.render(sc.state.Board, nil))
	switch {
	case sc.state.GameOver:
		sc.showMessage(fmt.Sprintf("%v wins after %d moves.", sc.state.Winner, len(sc.state.History)))
	case sc.state.CanSwap():
		sc.showMessage(fmt.Sprintf("%v to move (swap available).", sc.state.CurrentPlayer))
	default:
		sc.showMessage(fmt.Sprintf("%v to move.", sc.state.CurrentPlayer))
	}
}

func (sc *ShellController) eval(*shellcmd) error {
	bd := sc.engine.Explain(sc.state.Board)
	sc.showMessage(fmt.Sprintf(
		"winner %v\ndistance  p1 %d  p2 %d\nlargest   p1 %d  p2 %d\njitter %d\ntotal %d (player1 view), %d for %v",
		bd.Winner, bd.DistP1, bd.DistP2, bd.GroupP1, bd.GroupP2, bd.Jitter, bd.Total,
		sc.engine.Evaluate(sc.state.Board, sc.state.CurrentPlayer), sc.state.CurrentPlayer))
	return nil
}

func (sc *ShellController) path(cmd *shellcmd) error {
	p := sc.state.CurrentPlayer
	if len(cmd.args) > 0 {
		var err error
		if p, err = game.ParsePlayer(cmd.args[0]); err != nil {
			return err
		}
	}
	cells, d := game.ShortestPath(sc.state.Board, p)
	if d == game.Unreachable {
		sc.showMessage(fmt.Sprintf("%v cannot connect any more.", p))
		return nil
	}
	sc.showMessage(sc.render(sc.state.Board, cells))
	sc.showMessage(fmt.Sprintf("%v needs %d more stones: %s", p, d,
		strings.Join(lo.Map(cells, func(c game.Position, _ int) string { return c.String() }), " ")))
	return nil
}

func (sc *ShellController) depth(cmd *shellcmd) error {
	if len(cmd.args) != 1 {
		sc.showMessage(fmt.Sprintf("limits %v", sc.engine.Options().Limits))
		return nil
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("bad depth %q", cmd.args[0])
	}
	sc.engine.SetLimits(sc.engine.Options().Limits.SetDepth(n))
	sc.showMessage(fmt.Sprintf("limits %v", sc.engine.Options().Limits))
	return nil
}

func (sc *ShellController) load(cmd *shellcmd) error {
	if len(cmd.args) != 2 {
		return errors.New("usage: load <file> <level> [-size n]")
	}
	set, err := puzzle.Load(cmd.args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(cmd.args[1])
	if err != nil {
		return fmt.Errorf("bad level %q", cmd.args[1])
	}
	lvl, err := set.Level(n)
	if err != nil {
		return err
	}
	size := sc.state.Board.Rows()
	if v, ok := cmd.options["size"]; ok {
		if size, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("bad size %q", v)
		}
	}
	e, err := puzzle.Embed(lvl, size)
	if err != nil {
		return err
	}
	sc.puzzle = e
	sc.state = e.State()
	if lvl.Comment != "" {
		sc.showMessage(lvl.Comment)
	}
	sc.showMessage(fmt.Sprintf("level %d (%s), you play %v", lvl.Number, lvl.ID(), game.Player1))
	sc.showPosition()
	return nil
}

func (sc *ShellController) autoplay(*shellcmd) error {
	ai := player.NewAIPlayer(sc.engine)
	start := len(sc.state.History)
	err := arena.PlayGame(context.Background(), sc.state, [2]player.Player{ai, ai})
	moves := lo.Map(sc.state.History[start:], func(m game.Move, _ int) string { return m.Pos.String() })
	sc.showMessage(strings.Join(moves, " "))
	sc.showPosition()
	return err
}
