package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hex_go/internal/game"
)

func TestFitCentresBoard(t *testing.T) {
	for _, dim := range [][2]int{{1, 1}, {3, 4}, {11, 11}, {7, 13}} {
		l := Fit(dim[0], dim[1], 800, 600, 20)
		x0, y0 := l.Center(game.Position{})
		x1, y1 := l.Center(game.Position{Row: dim[0] - 1, Col: dim[1] - 1})
		assert.InDelta(t, 400, (x0+x1)/2, 1e-9, "%v", dim)
		assert.InDelta(t, 300, (y0+y1)/2, 1e-9, "%v", dim)

		// every corner stays inside the margin
		for r := 0; r < dim[0]; r++ {
			for c := 0; c < dim[1]; c++ {
				for _, pt := range l.Corners(game.Position{Row: r, Col: c}) {
					assert.GreaterOrEqual(t, pt[0], 20-1e-9)
					assert.LessOrEqual(t, pt[0], 780+1e-9)
					assert.GreaterOrEqual(t, pt[1], 20-1e-9)
					assert.LessOrEqual(t, pt[1], 580+1e-9)
				}
			}
		}
	}
}

func TestCellAt(t *testing.T) {
	l := Fit(5, 6, 1200, 800, 40)
	for r := 0; r < 5; r++ {
		for c := 0; c < 6; c++ {
			p := game.Position{Row: r, Col: c}
			x, y := l.Center(p)
			got, ok := l.CellAt(x, y)
			require.True(t, ok)
			require.Equal(t, p, got)

			got, ok = l.CellAt(x+0.8*l.InnerRadius(), y-0.3*l.InnerRadius())
			require.True(t, ok)
			require.Equal(t, p, got)
		}
	}

	// corners are outside the inscribed circle
	corner := l.Corners(game.Position{Row: 2, Col: 2})[2]
	_, ok := l.CellAt(corner[0], corner[1])
	assert.False(t, ok)

	_, ok = l.CellAt(0, 0)
	assert.False(t, ok)
	_, ok = l.CellAt(1200, 800)
	assert.False(t, ok)
}

func TestBorderOwners(t *testing.T) {
	l := Fit(3, 4, 800, 600, 10)
	sides := l.Border()
	var p1, p2 int
	for _, s := range sides {
		switch s.Owner {
		case game.Player1:
			p1++
		case game.Player2:
			p2++
		}
	}
	assert.Equal(t, 4*4, p1)
	assert.Equal(t, 4*3-2, p2)
}
