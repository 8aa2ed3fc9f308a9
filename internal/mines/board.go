package mines

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// Board is a rectangular grid of tiles stored row-major. Every board gets a
// fresh ID, so a caller holding a board that has since been replaced can
// tell by comparing IDs.
type Board struct {
	GameParams
	ID    uuid.UUID
	tiles []Tile
}

func NewBoard(p GameParams, mines mapset.Set[Point]) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if mines.Size() != p.MineCount {
		return nil, fmt.Errorf("expected %d mines, got %d", p.MineCount, mines.Size())
	}
	var outside []Point
	mines.Each(func(pt Point) {
		if !p.PointInBounds(pt) {
			outside = append(outside, pt)
		}
	})
	if len(outside) > 0 {
		return nil, fmt.Errorf("mines out of bounds: %v", outside)
	}

	tiles := make([]Tile, p.Cells())
	for y := range p.Height {
		for x := range p.Width {
			pt := Point{x, y}
			tiles[y*p.Width+x] = Tile{Pos: pt, Mine: mines.Has(pt)}
		}
	}
	b := &Board{
		GameParams: p,
		ID:         uuid.New(),
		tiles:      tiles,
	}
	return b, nil
}

// TileAt returns false for points outside the board.
func (b *Board) TileAt(p Point) (*Tile, bool) {
	if !b.PointInBounds(p) {
		return nil, false
	}
	return &b.tiles[p.Y*b.Width+p.X], true
}

// Neighbors returns the up to eight tiles around p, always in the same order.
func (b *Board) Neighbors(p Point) []*Tile {
	res := make([]*Tile, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		if t, ok := b.TileAt(p.Add(d.X, d.Y)); ok {
			res = append(res, t)
		}
	}
	return res
}

func (b *Board) AdjacentMineCount(p Point) int {
	c := 0
	for _, t := range b.Neighbors(p) {
		if t.Mine {
			c++
		}
	}
	return c
}

// All yields every tile row by row.
func (b *Board) All() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for i := range b.tiles {
			if !yield(&b.tiles[i]) {
				return
			}
		}
	}
}

func (b *Board) Mines() []Point {
	res := make([]Point, 0, b.MineCount)
	for t := range b.All() {
		if t.Mine {
			res = append(res, t.Pos)
		}
	}
	return res
}

func (b *Board) Count(status TileStatus) int {
	c := 0
	for t := range b.All() {
		if t.Status == status {
			c++
		}
	}
	return c
}

// SetMark toggles the flag on a hidden or marked tile. Revealed tiles and
// points off the board are left alone.
func (b *Board) SetMark(p Point) bool {
	t, ok := b.TileAt(p)
	if !ok {
		return false
	}
	return t.Mark() || t.Unmark()
}
