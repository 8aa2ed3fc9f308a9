package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

type Outcome int

const (
	Continue Outcome = iota
	FirstMoveMineAvoided
	Exploded
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case FirstMoveMineAvoided:
		return "first-move-mine-avoided"
	case Exploded:
		return "exploded"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

type RevealResult struct {
	Outcome Outcome
	// Board is the board the caller must keep playing on. It is a new board
	// when Outcome is FirstMoveMineAvoided.
	Board  *Board
	Opened []Point
}

// Reveal opens the tile at p. On the first move of a game a mine under p is
// never allowed to go off: the board is thrown away and a new one is
// generated with p kept free, then opened at p.
func Reveal(b *Board, p Point, firstMove bool, r *rand.Rand) (RevealResult, error) {
	t, ok := b.TileAt(p)
	if !ok || t.Status != Hidden {
		return RevealResult{Outcome: Continue, Board: b}, nil
	}

	if firstMove && t.Mine {
		fresh, err := Generate(b.GameParams, p, r)
		if err != nil {
			return RevealResult{Outcome: Continue, Board: b},
				fmt.Errorf("unable to regenerate board: %w", err)
		}
		Log.WithFields(logrus.Fields{
			"board":       b.ID,
			"replacement": fresh.ID,
			"point":       p,
		}).Debug("first move hit a mine, board regenerated")

		opened, _ := fresh.Open(p)
		return RevealResult{
			Outcome: FirstMoveMineAvoided,
			Board:   fresh,
			Opened:  opened,
		}, nil
	}

	opened, exploded := b.Open(p)
	if exploded {
		return RevealResult{Outcome: Exploded, Board: b, Opened: opened}, nil
	}
	return RevealResult{Outcome: Continue, Board: b, Opened: opened}, nil
}

// Open reveals p and floods outward through tiles with no adjacent mines.
// Tiles that are not hidden are never entered, so each tile is opened at most
// once and marked tiles stop the flood.
func (b *Board) Open(p Point) (opened []Point, exploded bool) {
	start, ok := b.TileAt(p)
	if !ok || start.Status != Hidden {
		return nil, false
	}

	if start.Mine {
		start.Status = Mine
		return []Point{p}, true
	}

	var todo deque.Deque[*Tile]
	open := func(t *Tile) {
		t.Status = Number
		t.Adjacent = b.AdjacentMineCount(t.Pos)
		opened = append(opened, t.Pos)
		todo.PushBack(t)
	}

	open(start)
	for todo.Len() > 0 {
		t := todo.PopFront()
		if t.Adjacent > 0 {
			continue
		}
		for _, n := range b.Neighbors(t.Pos) {
			if n.Status == Hidden && !n.Mine {
				open(n)
			}
		}
	}
	return opened, false
}
