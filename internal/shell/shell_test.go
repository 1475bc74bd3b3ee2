package shell

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"hex_go/internal/config"
	"hex_go/internal/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func testController(t *testing.T, args ...string) (*ShellController, *bytes.Buffer) {
	t.Helper()
	cfg := config.New()
	if err := cfg.Load(args); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	return newController(cfg, &buf, termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))), &buf
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"play c4", &shellcmd{"play", []string{"c4"}, map[string]string{}}, nil},
		{"ai -depth 4 -movetime 500",
			&shellcmd{"ai", nil, map[string]string{"depth": "4", "movetime": "500"}},
			nil},
		{`load "my puzzles.yaml" 3 -size 9`,
			&shellcmd{"load", []string{"my puzzles.yaml", "3"}, map[string]string{"size": "9"}},
			nil},
		{"ai -depth", nil, errWrongOptionSyntax},
	}
	for _, tc := range cases {
		cmd, err := extractFields(tc.line)
		is.Equal(cmd, tc.expCmd)
		is.Equal(err, tc.expErr)
	}
}

func TestPlayAgainstEngine(t *testing.T) {
	is := is.New(t)
	sc, buf := testController(t, "-rows", "4", "-cols", "4", "-depth", "2")
	is.True(!sc.Execute("play b2"))
	is.True(!sc.Execute("ai"))
	is.Equal(len(sc.state.History), 2)
	is.Equal(sc.state.Board.Get(game.Position{Row: 1, Col: 1}), game.Player1)
	is.True(strings.Contains(buf.String(), "player2 plays"))
	is.True(strings.Contains(buf.String(), "player1 to move."))
}

func TestErrorsAreReported(t *testing.T) {
	is := is.New(t)
	sc, buf := testController(t, "-rows", "3", "-cols", "3")
	sc.Execute("play b2")
	sc.Execute("play b2")
	is.True(strings.Contains(buf.String(), "Error: illegal move"))
	sc.Execute("frobnicate")
	is.True(strings.Contains(buf.String(), `unknown command "frobnicate"`))
	sc.Execute("swap")
	is.True(strings.Contains(buf.String(), "swap not allowed"))
	is.Equal(len(sc.state.History), 1)
}

func TestSwapCommand(t *testing.T) {
	is := is.New(t)
	sc, _ := testController(t, "-rows", "5", "-cols", "5", "-swap")
	sc.Execute("play c1")
	is.True(sc.state.CanSwap())
	sc.Execute("swap")
	is.True(sc.state.Swapped)
	is.Equal(sc.state.CurrentPlayer, game.Player1)
	is.Equal(sc.state.Board.Get(game.Position{Row: 2, Col: 0}), game.Player2)
}

func TestPathCommand(t *testing.T) {
	is := is.New(t)
	sc, buf := testController(t, "-rows", "3", "-cols", "3")
	sc.Execute("play b2")
	buf.Reset()
	sc.Execute("path 1")
	is.True(strings.Contains(buf.String(), "player1 needs 2 more stones"))
	is.True(strings.Contains(buf.String(), "*"))
}

func TestNewAndRender(t *testing.T) {
	is := is.New(t)
	sc, buf := testController(t)
	buf.Reset()
	sc.Execute("new 3 4")
	is.Equal(sc.state.Board.Rows(), 3)
	is.Equal(sc.state.Board.Cols(), 4)
	lines := strings.Split(buf.String(), "\n")
	is.Equal(strings.TrimSpace(lines[0]), "a b c d")
	is.Equal(strings.TrimSpace(lines[1]), "1 . . . . |")
	is.True(strings.HasPrefix(lines[2], "   2 "))
}

func TestPuzzleSession(t *testing.T) {
	is := is.New(t)
	sc, buf := testController(t, "-depth", "1")
	sc.Execute("load ../puzzle/testdata/puzzles.yaml 1 -size 5")
	is.True(sc.puzzle != nil)
	is.Equal(sc.state.Board.Rows(), 5)
	sc.Execute("play b4")
	is.True(strings.Contains(buf.String(), "Correct!"))
	is.True(sc.state.GameOver)
	is.Equal(sc.state.Winner, game.Player1)
}

func TestAutoplay(t *testing.T) {
	is := is.New(t)
	sc, _ := testController(t, "-rows", "3", "-cols", "3", "-depth", "2")
	sc.Execute("autoplay")
	is.True(sc.state.GameOver)
	is.True(sc.state.Winner.IsPlayer())
}

func TestQuit(t *testing.T) {
	is := is.New(t)
	sc, _ := testController(t)
	is.True(sc.Execute("quit"))
	is.True(!sc.Execute("   "))
}
