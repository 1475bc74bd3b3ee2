package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestIncrementalMatchesFull(t *testing.T) {
	is := is.New(t)
	z := NewZobrist(5, 5, 42)
	rng := testRNG(9)
	for n := 0; n < 50; n++ {
		b := NewBoard(5, 5)
		fp, err := z.Fingerprint(b)
		is.NoErr(err)
		is.Equal(fp, uint64(0))

		p := Player1
		for _, i := range rng.Perm(25)[:rng.Intn(26)] {
			pos := b.PositionOf(i)
			b.Set(pos, p)
			fp = z.Update(fp, pos, p)
			full, err := z.Fingerprint(b)
			is.NoErr(err)
			is.Equal(fp, full)
			p = Opponent(p)
		}
	}
}

func TestFingerprintOrderIndependent(t *testing.T) {
	is := is.New(t)
	z := NewZobrist(4, 4, 7)
	a, b := NewBoard(4, 4), NewBoard(4, 4)

	a.Set(Position{0, 0}, Player1)
	a.Set(Position{2, 3}, Player2)
	a.Set(Position{1, 1}, Player1)

	b.Set(Position{1, 1}, Player1)
	b.Set(Position{0, 0}, Player1)
	b.Set(Position{2, 3}, Player2)

	fa, _ := z.Fingerprint(a)
	fb, _ := z.Fingerprint(b)
	is.Equal(fa, fb)

	// same stones, other colours
	c := a.Clone()
	c.Cells[0], c.Cells[b.Index(Position{2, 3})] = Player2, Player1
	fc, _ := z.Fingerprint(c)
	is.True(fc != fa)
}

func TestUpdateIsInvolution(t *testing.T) {
	is := is.New(t)
	z := NewZobrist(3, 3, 1)
	fp := uint64(0xdeadbeef)
	pos := Position{2, 1}
	is.Equal(z.Update(z.Update(fp, pos, Player2), pos, Player2), fp)
	is.Equal(z.Update(fp, pos, Empty), fp)
}

func TestSeededKeysReproducible(t *testing.T) {
	is := is.New(t)
	a, b, c := NewZobrist(6, 6, 99), NewZobrist(6, 6, 99), NewZobrist(6, 6, 100)
	is.Equal(a.keys, b.keys)
	is.True(a.keys[0] != c.keys[0])
	for i := range a.keys {
		is.True(a.keys[i][0] != 0 && a.keys[i][1] != 0)
	}
	is.Equal(SeedFromString("hex"), SeedFromString("hex"))
}

func TestFingerprintDimensionMismatch(t *testing.T) {
	is := is.New(t)
	z := NewZobrist(3, 3, 0)
	_, err := z.Fingerprint(NewBoard(4, 4))
	is.True(errors.Is(err, ErrDimensionMismatch))
}
