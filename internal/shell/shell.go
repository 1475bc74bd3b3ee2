// Package shell is an interactive terminal front end for playing and
// analysing hex positions.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"

	"hex_go/internal/config"
	"hex_go/internal/game"
	"hex_go/internal/puzzle"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("quit")
)

type ShellController struct {
	l    *readline.Instance
	out  io.Writer
	term *termenv.Output

	cfg    *config.Config
	engine *game.Engine
	state  *game.GameState
	puzzle *puzzle.Embedded
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(cfg *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[34mhex>\033[0m ",
		HistoryFile:     os.TempDir() + "/hexshell.history",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc := newController(cfg, l.Stdout(), termenv.NewOutput(l.Stdout()))
	sc.l = l
	return sc, nil
}

func newController(cfg *config.Config, out io.Writer, term *termenv.Output) *ShellController {
	rows, cols := cfg.BoardSize()
	sc := &ShellController{out: out, term: term, cfg: cfg, engine: cfg.NewEngine()}
	sc.state = game.NewGameState(rows, cols)
	sc.state.SwapRule = cfg.GetBool(config.ConfigGameSwapRule)
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into command, positional arguments and
// "-name value" options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: map[string]string{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			if i+1 >= len(fields) {
				return nil, errWrongOptionSyntax
			}
			cmd.options[f[1:]] = fields[i+1]
			i++
			continue
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

// Execute runs one command line and reports whether the shell should exit.
func (sc *ShellController) Execute(line string) (quit bool) {
	cmd, err := extractFields(strings.TrimSpace(line))
	if errors.Is(err, errNoData) {
		return false
	}
	if err != nil {
		sc.showError(err)
		return false
	}
	err = sc.dispatch(cmd)
	switch {
	case errors.Is(err, errQuit):
		return true
	case err != nil:
		sc.showError(err)
	}
	return false
}

func (sc *ShellController) dispatch(cmd *shellcmd) error {
	handler, ok := commands[cmd.cmd]
	if !ok {
		return fmt.Errorf("unknown command %q, try help", cmd.cmd)
	}
	return handler(sc, cmd)
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	sc.showMessage(sc.render(sc.state.Board, nil))
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		if sc.Execute(line) {
			sig <- syscall.SIGINT
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
