package session

import (
	"math/rand/v2"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"github.com/iandyone/minesweeper-rss/internal/mines"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	os.Exit(m.Run())
}

// fakeClock advances one second on every reading.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func newTestSession(t *testing.T, width, height int, at ...mines.Point) *Session {
	t.Helper()
	set := mapset.New[mines.Point]()
	for _, p := range at {
		set.Put(p)
	}
	b, err := mines.NewBoard(mines.GameParams{Width: width, Height: height, MineCount: len(at)}, set)
	require.NoError(t, err)
	clock := newClock()
	return &Session{
		ID:         uuid.New(),
		Complexity: mines.ComplexityOf(b.GameParams),
		CreatedAt:  clock.t,
		board:      b,
		rnd:        rand.New(rand.NewPCG(1, 2)),
		now:        clock.Now,
	}
}

func TestNew(t *testing.T) {
	params, _ := mines.Easy.Params()
	s, err := New(params, rand.New(rand.NewPCG(1, 2)), nil)
	require.NoError(t, err)

	assert.Equal(t, mines.Easy, s.Complexity)
	assert.Equal(t, params, s.Params())
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, params.Cells(), s.Board().Count(mines.Hidden))
	assert.False(t, s.Finished())
	assert.False(t, s.FirstMoveDone())
	assert.Zero(t, s.Elapsed())
	assert.Equal(t, 10, s.MinesLeft())

	_, err = New(mines.GameParams{Width: 2, Height: 2, MineCount: 4}, rand.New(rand.NewPCG(1, 2)), nil)
	var cfgErr *mines.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestSessionWin(t *testing.T) {
	s := newTestSession(t, 5, 1, mines.Point{X: 2, Y: 0})

	res, err := s.Open(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, mines.Continue, res.Outcome)
	assert.Equal(t, []mines.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, res.Opened)
	assert.Equal(t, 1, s.Moves())
	assert.True(t, s.FirstMoveDone())

	// reopening an open tile is not a move
	_, err = s.Open(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Moves())

	ok, err := s.Mark(mines.Point{X: 4, Y: 0})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, s.MinesLeft())
	assert.Equal(t, 1, s.FlagCount())

	// marked tiles ignore clicks
	_, err = s.Open(mines.Point{X: 4, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Moves())

	_, err = s.Mark(mines.Point{X: 4, Y: 0})
	require.NoError(t, err)

	res, err = s.Open(mines.Point{X: 4, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, []mines.Point{{X: 4, Y: 0}, {X: 3, Y: 0}}, res.Opened)

	assert.True(t, s.Won())
	assert.False(t, s.Lost())
	assert.True(t, s.Finished())
	assert.Equal(t, 2, s.Moves())

	tile, _ := s.Board().TileAt(mines.Point{X: 2, Y: 0})
	assert.Equal(t, mines.Marked, tile.Status)

	r, ok := s.Record()
	require.True(t, ok)
	assert.Equal(t, s.ID, r.SessionID)
	assert.Equal(t, mines.Custom, r.Complexity)
	assert.Equal(t, 2, r.Moves)
	assert.Equal(t, s.EndedAt(), r.FinishedAt)
	assert.Equal(t, s.EndedAt().Sub(s.StartedAt()), r.Elapsed)
	assert.Positive(t, r.Elapsed)

	// elapsed time is frozen once the game is over
	assert.Equal(t, r.Elapsed, s.Elapsed())
	assert.Equal(t, r.Elapsed, s.Elapsed())

	_, err = s.Open(mines.Point{X: 1, Y: 0})
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.Mark(mines.Point{X: 1, Y: 0})
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestSessionLoss(t *testing.T) {
	s := newTestSession(t, 5, 1, mines.Point{X: 2, Y: 0})

	_, err := s.Mark(mines.Point{X: 3, Y: 0})
	require.NoError(t, err)
	_, err = s.Open(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)

	res, err := s.Open(mines.Point{X: 2, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, mines.Exploded, res.Outcome)
	assert.True(t, s.Lost())
	assert.False(t, s.Won())

	statuses := []mines.TileStatus{}
	for tile := range s.Board().All() {
		statuses = append(statuses, tile.Status)
	}
	assert.Equal(t, []mines.TileStatus{
		mines.Number, mines.Number, mines.Mine, mines.MarkedWrong, mines.Number,
	}, statuses)

	_, ok := s.Record()
	assert.False(t, ok)

	_, err = s.Open(mines.Point{X: 4, Y: 0})
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestSessionFirstMoveSwapsBoard(t *testing.T) {
	s := newTestSession(t, 4, 4, mines.Point{X: 0, Y: 0}, mines.Point{X: 3, Y: 3})
	stale := s.Board().ID

	res, err := s.Open(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, mines.FirstMoveMineAvoided, res.Outcome)
	assert.Same(t, res.Board, s.Board())
	assert.NotEqual(t, stale, s.Board().ID)
	assert.False(t, s.Lost())
	assert.True(t, s.FirstMoveDone())
	assert.Equal(t, 1, s.Moves())

	tile, _ := s.Board().TileAt(mines.Point{X: 0, Y: 0})
	assert.False(t, tile.Mine)
	assert.Equal(t, mines.Number, tile.Status)

	assert.ErrorIs(t, s.CheckBoard(stale), ErrStaleBoard)
	assert.NoError(t, s.CheckBoard(s.Board().ID))
}

func TestSessionSecondMoveCanLose(t *testing.T) {
	s := newTestSession(t, 3, 3, mines.Point{X: 2, Y: 2})

	res, err := s.Open(mines.Point{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, mines.Continue, res.Outcome)

	res, err = s.Open(mines.Point{X: 2, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, mines.Exploded, res.Outcome)
	assert.True(t, s.Lost())
}

func TestSessionMarkBeforeFirstMove(t *testing.T) {
	s := newTestSession(t, 3, 3, mines.Point{X: 2, Y: 2})

	ok, err := s.Mark(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)
	assert.True(t, ok)

	// a click on a flag is ignored and does not use up the first move
	res, err := s.Open(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Empty(t, res.Opened)
	assert.False(t, s.FirstMoveDone())
	assert.Equal(t, 0, s.Moves())
}

func TestSessionOutOfBounds(t *testing.T) {
	s := newTestSession(t, 3, 3, mines.Point{X: 2, Y: 2})

	for _, p := range []mines.Point{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}} {
		_, err := s.Open(p)
		assert.ErrorIs(t, err, ErrOutOfBounds, p)
		_, err = s.Mark(p)
		assert.ErrorIs(t, err, ErrOutOfBounds, p)
	}
	assert.Equal(t, 0, s.Moves())
	assert.True(t, s.StartedAt().IsZero())
}

func TestSessionElapsedRuns(t *testing.T) {
	s := newTestSession(t, 3, 3, mines.Point{X: 2, Y: 2})

	_, err := s.Open(mines.Point{X: 1, Y: 1})
	require.NoError(t, err)
	require.False(t, s.Finished())

	first := s.Elapsed()
	second := s.Elapsed()
	assert.Greater(t, second, first)
}
