package game

import (
	"testing"

	"github.com/matryer/is"
)

func TestEvaluateAntisymmetric(t *testing.T) {
	is := is.New(t)
	for _, w := range []Weights{DefaultWeights(), {Path: 3, Group: 2, Jitter: 5}} {
		z := NewZobrist(5, 5, 1)
		ev := NewEvaluator(z, NewEvalCache(0), w, 77)
		for _, b := range RandomBoards(200, 5, 5, 31) {
			p1 := ev.Evaluate(b, Player1)
			p2 := ev.Evaluate(b, Player2)
			is.Equal(p1, -p2)
			// second call is served by the cache and must agree
			is.Equal(ev.Evaluate(b, Player2), p2)
		}
	}
}

func TestEvaluateWins(t *testing.T) {
	is := is.New(t)
	ev := NewEvaluator(NewZobrist(3, 3, 0), NewEvalCache(0), DefaultWeights(), 0)
	b := mustParse(t, `
		. . .
		 2 2 2
		  1 . .`)
	is.Equal(ev.Evaluate(b, Player2), WinScore)
	is.Equal(ev.Evaluate(b, Player1), -WinScore)
}

func TestEvaluatePrefersShorterPath(t *testing.T) {
	is := is.New(t)
	ev := NewEvaluator(NewZobrist(5, 5, 0), nil, DefaultWeights(), 0)
	b := NewBoard(5, 5)
	is.Equal(ev.Evaluate(b, Player1), 0)

	b.Set(Position{2, 2}, Player1)
	is.True(ev.Evaluate(b, Player1) > 0)

	bd := ev.Explain(b, 0)
	is.Equal(bd.DistP1, 4)
	is.Equal(bd.DistP2, 5)
	is.Equal(bd.GroupP1, 1)
	is.Equal(bd.Total, 10*(5-4)+1)
}

func TestEvaluateCachesByFingerprint(t *testing.T) {
	is := is.New(t)
	c := NewEvalCache(0)
	ev := NewEvaluator(NewZobrist(4, 4, 0), c, DefaultWeights(), 0)
	b := NewBoard(4, 4)
	b.Set(Position{1, 1}, Player2)
	_ = ev.Evaluate(b, Player1)
	_ = ev.Evaluate(b, Player2)
	st := c.Stats()
	is.Equal(st.Misses, uint64(1))
	is.Equal(st.Hits, uint64(1))
	is.Equal(st.Size, 1)
}

func TestEvaluateWrongSizeBypassesCache(t *testing.T) {
	is := is.New(t)
	c := NewEvalCache(0)
	ev := NewEvaluator(NewZobrist(4, 4, 0), c, DefaultWeights(), 0)
	is.Equal(ev.Evaluate(NewBoard(3, 3), Player1), 0)
	is.Equal(c.Len(), 0)
}

func TestJitterBounded(t *testing.T) {
	is := is.New(t)
	w := Weights{Jitter: 3}
	ev := NewEvaluator(NewZobrist(4, 4, 0), nil, w, 5)
	seen := map[int]bool{}
	for _, b := range RandomBoards(200, 4, 4, 41) {
		if Winner(b) != Empty {
			continue
		}
		v := ev.Evaluate(b, Player1)
		is.True(v >= -3 && v <= 3)
		seen[v] = true
	}
	is.True(len(seen) > 1)
}
