package game

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"
)

func TestDistanceEmptyBoard(t *testing.T) {
	is := is.New(t)
	b := NewBoard(4, 6)
	is.Equal(ShortestCompletionDistance(b, Player1), 4)
	is.Equal(ShortestCompletionDistance(b, Player2), 6)
}

func TestDistanceCountsOwnStonesFree(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, `
		. . . .
		 . 1 . .
		  . 1 . .
		   . . . .`)
	is.Equal(ShortestCompletionDistance(b, Player1), 2)
	// every column must be crossed; the two stones only get in the way
	is.Equal(ShortestCompletionDistance(b, Player2), 4)
}

func TestDistanceBlocked(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, `
		. . .
		 2 2 2
		  . . .`)
	is.Equal(ShortestCompletionDistance(b, Player1), Unreachable)
	is.Equal(ShortestCompletionDistance(b, Player2), 0)
	p, d := ShortestPath(b, Player1)
	is.Equal(d, Unreachable)
	is.True(p == nil)
}

func TestDistanceZeroIffWon(t *testing.T) {
	is := is.New(t)
	for _, b := range RandomBoards(300, 5, 5, 21) {
		for _, p := range []CellState{Player1, Player2} {
			d := ShortestCompletionDistance(b, p)
			is.Equal(d == 0, HasConnection(b, p))
		}
	}
}

func TestDistanceMonotoneInOwnStones(t *testing.T) {
	is := is.New(t)
	rng := testRNG(5)
	for _, b := range RandomBoards(100, 5, 6, 22) {
		for _, p := range []CellState{Player1, Player2} {
			prev := ShortestCompletionDistance(b, p)
			c := b.Clone()
			for c.EmptyCount() > 0 {
				empties := GenerateMoves(c)
				c.Cells[empties[rng.Intn(len(empties))]] = p
				d := ShortestCompletionDistance(c, p)
				is.True(d <= prev)
				prev = d
			}
		}
	}
}

func TestGraphPathAgrees(t *testing.T) {
	for _, b := range RandomBoards(200, 5, 4, 23) {
		for _, p := range []CellState{Player1, Player2} {
			want := ShortestCompletionDistance(b, p)
			path, got := ShortestPath(b, p)
			require.Equal(t, want, got, "board:\n%v", b)
			if want == Unreachable {
				continue
			}
			require.NotEmpty(t, path)
			require.True(t, b.onStartEdge(p, b.Index(path[0])))
			require.True(t, b.onEndEdge(p, b.Index(path[len(path)-1])))
			empties := 0
			for k, pos := range path {
				require.NotEqual(t, Opponent(p), b.Get(pos))
				if b.Get(pos) == Empty {
					empties++
				}
				if k > 0 {
					require.Contains(t, b.Neighbors(path[k-1]), pos)
				}
			}
			require.Equal(t, got, empties)
		}
	}
}
