package handlers

import (
	"errors"
	"net/url"

	"github.com/google/uuid"

	"github.com/iandyone/minesweeper-rss/internal/mines"
	"github.com/iandyone/minesweeper-rss/internal/session"
)

var errMissingParams = errors.New("either complexity or width, height and mine_count are required")

type NewGameDTO struct {
	Complexity string `schema:"complexity"`
	Width      *int   `schema:"width"`
	Height     *int   `schema:"height"`
	MineCount  *int   `schema:"mine_count"`
}

func ParseNewGameDTO(src url.Values) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Params resolves a preset name or explicit dimensions. Explicit dimensions
// win over "custom".
func (d NewGameDTO) Params() (mines.GameParams, error) {
	if d.Width != nil && d.Height != nil && d.MineCount != nil {
		p := mines.GameParams{Width: *d.Width, Height: *d.Height, MineCount: *d.MineCount}
		return p, p.Validate()
	}
	if d.Complexity == "" {
		return mines.GameParams{}, errMissingParams
	}
	c, err := mines.ParseComplexity(d.Complexity)
	if err != nil {
		return mines.GameParams{}, err
	}
	p, ok := c.Params()
	if !ok {
		return mines.GameParams{}, errMissingParams
	}
	return p, nil
}

type PointDTO struct {
	X     int    `schema:"x,required"`
	Y     int    `schema:"y,required"`
	Board string `schema:"board"`
}

func ParsePointDTO(src url.Values) (PointDTO, error) {
	var dto PointDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (d PointDTO) Point() mines.Point {
	return mines.Point{X: d.X, Y: d.Y}
}

// BoardID is the board the client believes it is playing, or uuid.Nil when
// the client did not say.
func (d PointDTO) BoardID() (uuid.UUID, error) {
	if d.Board == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(d.Board)
}

// HasPoint reports whether src carries a click position.
func HasPoint(src url.Values) bool {
	return src.Has("x") || src.Has("y")
}

type TileDTO struct {
	Status   mines.TileStatus `json:"status"`
	Adjacent int              `json:"adjacent,omitempty"`
}

type GameSessionDTO struct {
	SessionID  uuid.UUID        `json:"session_id"`
	BoardID    uuid.UUID        `json:"board_id"`
	Complexity mines.Complexity `json:"complexity"`
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	MineCount  int              `json:"mine_count"`
	MinesLeft  int              `json:"mines_left"`
	Moves      int              `json:"moves"`
	Elapsed    int64            `json:"elapsed"`
	Won        bool             `json:"won"`
	Lost       bool             `json:"lost"`
	Outcome    string           `json:"outcome,omitempty"`
	Tiles      [][]TileDTO      `json:"tiles"`
	StartedAt  *int64           `json:"started_at,omitempty"`
	EndedAt    *int64           `json:"ended_at,omitempty"`
}

// NewGameSessionDTO renders what a player may see: hidden tiles never carry
// mine information.
func NewGameSessionDTO(s *session.Session) *GameSessionDTO {
	b := s.Board()
	tiles := make([][]TileDTO, b.Height)
	for y := range tiles {
		tiles[y] = make([]TileDTO, b.Width)
	}
	for t := range b.All() {
		dto := TileDTO{Status: t.Status}
		if t.Status == mines.Number || t.Status == mines.MarkedWrong {
			dto.Adjacent = t.Adjacent
		}
		tiles[t.Pos.Y][t.Pos.X] = dto
	}

	dto := &GameSessionDTO{
		SessionID:  s.ID,
		BoardID:    b.ID,
		Complexity: s.Complexity,
		Width:      b.Width,
		Height:     b.Height,
		MineCount:  b.MineCount,
		MinesLeft:  s.MinesLeft(),
		Moves:      s.Moves(),
		Elapsed:    int64(s.Elapsed().Seconds()),
		Won:        s.Won(),
		Lost:       s.Lost(),
		Tiles:      tiles,
	}
	if t := s.StartedAt(); !t.IsZero() {
		ms := t.UnixMilli()
		dto.StartedAt = &ms
	}
	if t := s.EndedAt(); !t.IsZero() {
		ms := t.UnixMilli()
		dto.EndedAt = &ms
	}
	return dto
}
