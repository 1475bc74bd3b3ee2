package game

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"lukechampine.com/frand"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func testRNG(seed byte) *frand.RNG {
	key := make([]byte, 32)
	key[0] = seed
	return frand.NewCustom(key, 1024, 12)
}

// RandomBoards 随机交替落子生成局面；遇到有人连通就停下
func RandomBoards(n, rows, cols int, seed byte) []*Board {
	rng := testRNG(seed)
	out := make([]*Board, n)
	for k := range out {
		st := NewGameState(rows, cols)
		moves := rng.Intn(rows*cols + 1)
		for j := 0; j < moves && !st.GameOver; j++ {
			empties := EmptyCells(st.Board)
			_ = st.MakeMove(empties[rng.Intn(len(empties))])
		}
		out[k] = st.Board.Clone()
	}
	return out
}

// randomFullBoard fills every cell, alternating colours in random order.
func randomFullBoard(rows, cols int, rng *frand.RNG) *Board {
	b := NewBoard(rows, cols)
	order := rng.Perm(rows * cols)
	for k, i := range order {
		b.Cells[i] = Player1
		if k%2 == 1 {
			b.Cells[i] = Player2
		}
	}
	return b
}

func mustParse(t *testing.T, text string) *Board {
	t.Helper()
	b, err := ParseBoard(text)
	if err != nil {
		t.Fatalf("parse board: %v", err)
	}
	return b
}
