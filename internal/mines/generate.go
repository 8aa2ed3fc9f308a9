package mines

import (
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"
)

// PlaceMines picks p.MineCount distinct cells uniformly at random, never
// choosing excluded. Pass [NoPoint] to allow every cell.
func PlaceMines(p GameParams, excluded Point, r *rand.Rand) (mapset.Set[Point], error) {
	if err := p.Validate(); err != nil {
		return mapset.Set[Point]{}, err
	}

	mines := mapset.New[Point]()
	for mines.Size() < p.MineCount {
		pt := Point{r.IntN(p.Width), r.IntN(p.Height)}
		if pt == excluded || mines.Has(pt) {
			continue
		}
		mines.Put(pt)
	}
	return mines, nil
}

// Generate builds a fresh hidden board with mines placed by [PlaceMines].
func Generate(p GameParams, excluded Point, r *rand.Rand) (*Board, error) {
	mines, err := PlaceMines(p, excluded, r)
	if err != nil {
		return nil, err
	}
	return NewBoard(p, mines)
}
