package mines

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
)

func newTestBoard(t *testing.T, width, height int, mines ...Point) *Board {
	t.Helper()
	set := mapset.New[Point]()
	for _, p := range mines {
		set.Put(p)
	}
	b, err := NewBoard(GameParams{width, height, len(mines)}, set)
	require.NoError(t, err)
	return b
}

func positions(tiles []*Tile) []Point {
	res := make([]Point, 0, len(tiles))
	for _, t := range tiles {
		res = append(res, t.Pos)
	}
	return res
}

func TestNewBoard(t *testing.T) {
	b := newTestBoard(t, 4, 3, Point{0, 0}, Point{3, 2})

	assert.Equal(t, GameParams{4, 3, 2}, b.GameParams)
	assert.Equal(t, []Point{{0, 0}, {3, 2}}, b.Mines())
	assert.Equal(t, 12, b.Count(Hidden))

	i := 0
	for tile := range b.All() {
		assert.Equal(t, Point{i % 4, i / 4}, tile.Pos)
		i++
	}
	assert.Equal(t, 12, i)
}

func TestNewBoardRejects(t *testing.T) {
	set := mapset.New[Point]()
	set.Put(Point{0, 0})

	_, err := NewBoard(GameParams{1, 1, 1}, set)
	var ce *ConfigurationError
	assert.True(t, errors.As(err, &ce))

	_, err = NewBoard(GameParams{3, 3, 2}, set)
	assert.Error(t, err)

	outside := mapset.New[Point]()
	outside.Put(Point{3, 0})
	_, err = NewBoard(GameParams{3, 3, 1}, outside)
	assert.Error(t, err)
}

func TestBoardIdentity(t *testing.T) {
	a := newTestBoard(t, 2, 2)
	b := newTestBoard(t, 2, 2)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTileAt(t *testing.T) {
	b := newTestBoard(t, 3, 2, Point{2, 1})

	tile, ok := b.TileAt(Point{2, 1})
	require.True(t, ok)
	assert.True(t, tile.Mine)
	assert.Equal(t, Point{2, 1}, tile.Pos)

	for _, p := range []Point{{3, 0}, {0, 2}, {-1, 0}, {0, -1}, NoPoint} {
		tile, ok := b.TileAt(p)
		assert.False(t, ok, "point %s", p)
		assert.Nil(t, tile)
	}
}

func TestNeighbors(t *testing.T) {
	b := newTestBoard(t, 3, 3)

	assert.Equal(t,
		[]Point{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
		positions(b.Neighbors(Point{1, 1})),
	)
	assert.Equal(t,
		[]Point{{0, 1}, {1, 0}, {1, 1}},
		positions(b.Neighbors(Point{0, 0})),
	)
	assert.Equal(t,
		[]Point{{1, 1}, {1, 2}, {2, 1}},
		positions(b.Neighbors(Point{2, 2})),
	)
	assert.Len(t, b.Neighbors(Point{1, 0}), 5)
	assert.Empty(t, newTestBoard(t, 1, 1).Neighbors(Point{0, 0}))
}

func TestAdjacentMineCount(t *testing.T) {
	b := newTestBoard(t, 3, 3, Point{0, 0}, Point{2, 0}, Point{1, 2})

	assert.Equal(t, 3, b.AdjacentMineCount(Point{1, 1}))
	assert.Equal(t, 0, b.AdjacentMineCount(Point{0, 0}))
	assert.Equal(t, 1, b.AdjacentMineCount(Point{0, 2}))
	assert.Equal(t, 2, b.AdjacentMineCount(Point{1, 0}))
}

func TestSetMark(t *testing.T) {
	b := newTestBoard(t, 2, 2, Point{1, 1})
	p := Point{1, 1}
	tile, _ := b.TileAt(p)

	assert.True(t, b.SetMark(p))
	assert.Equal(t, Marked, tile.Status)

	assert.True(t, b.SetMark(p))
	assert.Equal(t, Hidden, tile.Status)

	assert.False(t, b.SetMark(Point{5, 5}))

	open, _ := b.TileAt(Point{0, 0})
	open.Status = Number
	assert.False(t, b.SetMark(Point{0, 0}))
	assert.Equal(t, Number, open.Status)
}

func TestTileStatusText(t *testing.T) {
	for _, s := range []TileStatus{Hidden, Number, Marked, Mine, MarkedWrong} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var parsed TileStatus
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, s, parsed)
	}
	assert.Equal(t, "marked-wrong", MarkedWrong.String())
	assert.Error(t, new(TileStatus).UnmarshalText([]byte("flag")))
}

func TestBoardString(t *testing.T) {
	b := newTestBoard(t, 3, 2, Point{2, 1})
	b.SetMark(Point{2, 1})
	b.Open(Point{0, 0})

	assert.Equal(t, ". 1 # \n. 1 F \n", b.String())
}
