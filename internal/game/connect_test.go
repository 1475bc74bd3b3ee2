package game

import (
	"testing"

	"github.com/matryer/is"
)

func TestWinnerTopRowOnly(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, `
		1 1 1
		 . . .
		  . . .`)
	is.Equal(Winner(b), Empty)

	b.Set(Position{1, 0}, Player1)
	is.Equal(Winner(b), Empty)
	b.Set(Position{2, 0}, Player1)
	is.Equal(Winner(b), Player1)
	is.Equal(IsGameOver(b), Player1)
}

func TestWinnerAntiDiagonal(t *testing.T) {
	is := is.New(t)
	// (0,2) -> (1,1) -> (2,0) are mutually adjacent along the (+1,-1) direction
	b := mustParse(t, `
		. . 1
		 . 1 .
		  1 . .`)
	is.Equal(Winner(b), Player1)

	// main diagonal is not connected
	b = mustParse(t, `
		1 . .
		 . 1 .
		  . . 1`)
	is.Equal(Winner(b), Empty)
}

func TestWinnerPlayer2(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, `
		. . . .
		 2 2 . .
		  1 . 2 2
		   1 1 . .`)
	is.Equal(Winner(b), Empty)
	b.Set(Position{1, 2}, Player2)
	is.Equal(Winner(b), Player2)
	is.True(!HasConnection(b, Player1))
}

func TestWinnerFullBoards(t *testing.T) {
	is := is.New(t)
	rng := testRNG(3)
	for n := 0; n < 300; n++ {
		rows, cols := 2+rng.Intn(6), 2+rng.Intn(6)
		b := randomFullBoard(rows, cols, rng)
		p1, p2 := HasConnection(b, Player1), HasConnection(b, Player2)
		// a full Hex board always has exactly one winner
		is.True(p1 != p2)
	}
}

func TestWinnerMutuallyExclusive(t *testing.T) {
	is := is.New(t)
	for _, b := range RandomBoards(300, 5, 5, 11) {
		is.True(!(HasConnection(b, Player1) && HasConnection(b, Player2)))
	}
}

func TestGroups(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, `
		1 1 . 1
		 . . . 1
		  2 . . .`)
	is.Equal(len(Groups(b, Player1)), 2)
	is.Equal(LargestGroup(b, Player1), 2)
	is.Equal(LargestGroup(b, Player2), 1)
	is.Equal(len(Groups(b, Player2)), 1)
}
