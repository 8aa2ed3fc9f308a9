package session

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iandyone/minesweeper-rss/internal/mines"
	"github.com/iandyone/minesweeper-rss/internal/scores"
)

var Log = logrus.New()

var (
	ErrGameOver    = errors.New("game is over")
	ErrStaleBoard  = errors.New("board has been replaced")
	ErrOutOfBounds = errors.New("point is out of bounds")
)

type Clock func() time.Time

// Session is one game from creation to a win or a loss. It is not safe for
// concurrent use; the [Hub] hands it to one caller at a time.
type Session struct {
	ID         uuid.UUID
	Complexity mines.Complexity
	CreatedAt  time.Time

	board         *mines.Board
	rnd           *rand.Rand
	now           Clock
	moves         int
	firstMoveDone bool
	won, lost     bool
	startedAt     time.Time
	endedAt       time.Time
}

func New(params mines.GameParams, rnd *rand.Rand, now Clock) (*Session, error) {
	board, err := mines.Generate(params, mines.NoPoint, rnd)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	s := &Session{
		ID:         uuid.New(),
		Complexity: mines.ComplexityOf(params),
		CreatedAt:  now(),
		board:      board,
		rnd:        rnd,
		now:        now,
	}
	return s, nil
}

func (s *Session) Board() *mines.Board { return s.board }

func (s *Session) Params() mines.GameParams { return s.board.GameParams }

// CheckBoard returns [ErrStaleBoard] if id is not the board currently in play.
func (s *Session) CheckBoard(id uuid.UUID) error {
	if id != s.board.ID {
		return ErrStaleBoard
	}
	return nil
}

// Open reveals p. Clicking a hidden tile counts as a move; the clock starts
// with the first click.
func (s *Session) Open(p mines.Point) (mines.RevealResult, error) {
	if s.Finished() {
		return mines.RevealResult{Board: s.board}, ErrGameOver
	}
	tile, ok := s.board.TileAt(p)
	if !ok {
		return mines.RevealResult{Board: s.board}, ErrOutOfBounds
	}

	if s.startedAt.IsZero() {
		s.startedAt = s.now()
	}
	if tile.Status == mines.Hidden {
		s.moves++
	}

	res, err := mines.Reveal(s.board, p, !s.firstMoveDone, s.rnd)
	if err != nil {
		return res, err
	}
	s.board = res.Board
	if len(res.Opened) > 0 {
		s.firstMoveDone = true
	}
	s.settle()
	return res, nil
}

// Mark toggles the flag at p.
func (s *Session) Mark(p mines.Point) (bool, error) {
	if s.Finished() {
		return false, ErrGameOver
	}
	if !s.board.PointInBounds(p) {
		return false, ErrOutOfBounds
	}
	return s.board.SetMark(p), nil
}

func (s *Session) settle() {
	switch {
	case mines.CheckWin(s.board):
		mines.WinSweep(s.board)
		s.won = true
	case mines.CheckLose(s.board):
		mines.LossSweep(s.board)
		s.lost = true
	default:
		return
	}
	s.endedAt = s.now()
}

func (s *Session) Finished() bool { return s.won || s.lost }

func (s *Session) Won() bool { return s.won }

func (s *Session) Lost() bool { return s.lost }

func (s *Session) FirstMoveDone() bool { return s.firstMoveDone }

func (s *Session) Moves() int { return s.moves }

func (s *Session) StartedAt() time.Time { return s.startedAt }

func (s *Session) EndedAt() time.Time { return s.endedAt }

// Elapsed is the time since the first click, frozen once the game ends.
func (s *Session) Elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	end := s.endedAt
	if end.IsZero() {
		end = s.now()
	}
	return end.Sub(s.startedAt)
}

func (s *Session) FlagCount() int {
	return s.board.Count(mines.Marked)
}

// MinesLeft is the mine count minus the flags placed, and may go negative.
func (s *Session) MinesLeft() int {
	return s.board.MineCount - s.FlagCount()
}

// Record returns the score entry for a won game.
func (s *Session) Record() (scores.Record, bool) {
	if !s.won {
		return scores.Record{}, false
	}
	r := scores.Record{
		SessionID:  s.ID,
		Complexity: s.Complexity,
		Elapsed:    s.Elapsed(),
		Moves:      s.moves,
		FinishedAt: s.endedAt,
	}
	return r, true
}
