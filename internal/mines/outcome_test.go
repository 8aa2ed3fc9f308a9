package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckWinIgnoresFlagCorrectness(t *testing.T) {
	b := newTestBoard(t, 3, 1, Point{2, 0})

	assert.False(t, CheckWin(b))

	b.Open(Point{0, 0})
	b.Open(Point{1, 0})
	assert.True(t, CheckWin(b), "hidden mine")

	b.SetMark(Point{2, 0})
	assert.True(t, CheckWin(b), "marked mine")
	assert.False(t, CheckLose(b))
}

func TestCheckWinRequiresEverySafeTile(t *testing.T) {
	b := newTestBoard(t, 3, 1, Point{2, 0})
	b.Open(Point{0, 0})
	b.SetMark(Point{1, 0})

	assert.False(t, CheckWin(b), "flagged safe tile is not revealed")
}

func TestWinAndLoseAreExclusive(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	params := GameParams{Width: 6, Height: 5, MineCount: 6}

	for range 200 {
		b, err := Generate(params, NoPoint, r)
		require.NoError(t, err)
		first := true
		for !CheckWin(b) && !CheckLose(b) {
			p := Point{r.IntN(params.Width), r.IntN(params.Height)}
			if r.IntN(5) == 0 {
				b.SetMark(p)
				continue
			}
			res, err := Reveal(b, p, first, r)
			require.NoError(t, err)
			b = res.Board
			if len(res.Opened) > 0 {
				first = false
			}
			assert.False(t, CheckWin(b) && CheckLose(b))
		}

		if CheckWin(b) {
			WinSweep(b)
			assert.True(t, CheckWin(b), "win must survive the sweep")
			assert.Equal(t, 0, b.Count(Hidden))
			assert.Equal(t, 0, b.Count(Mine))
		} else {
			LossSweep(b)
			assert.True(t, CheckLose(b))
			assert.False(t, CheckWin(b))
			assert.Equal(t, 0, b.Count(Hidden))
		}
	}
}

func TestLossSweep(t *testing.T) {
	b := newTestBoard(t, 3, 3, Point{0, 0}, Point{2, 2})
	b.SetMark(Point{0, 0})
	b.SetMark(Point{1, 0})
	b.Open(Point{2, 2})

	LossSweep(b)

	flagged, _ := b.TileAt(Point{0, 0})
	assert.Equal(t, Marked, flagged.Status, "correct flag stays")

	wrong, _ := b.TileAt(Point{1, 0})
	assert.Equal(t, MarkedWrong, wrong.Status)
	assert.Equal(t, 1, wrong.Adjacent)

	center, _ := b.TileAt(Point{1, 1})
	assert.Equal(t, Number, center.Status)
	assert.Equal(t, 2, center.Adjacent)

	assert.Equal(t, 1, b.Count(Mine))
	assert.Equal(t, 6, b.Count(Number))
	assert.Equal(t, 0, b.Count(Hidden))
}

func TestWinSweep(t *testing.T) {
	b := newTestBoard(t, 2, 2, Point{0, 0}, Point{1, 1})
	b.SetMark(Point{1, 1})
	b.Open(Point{1, 0})
	b.Open(Point{0, 1})
	require.True(t, CheckWin(b))

	WinSweep(b)

	for _, p := range b.Mines() {
		tile, _ := b.TileAt(p)
		assert.Equal(t, Marked, tile.Status)
	}
	assert.Equal(t, 2, b.Count(Number))
}
