package mines

import (
	"fmt"
	"math"
	"strings"
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Cells() int {
	return p.Width * p.Height
}

// Validate returns a [*ConfigurationError] unless the params describe a board
// with positive dimensions and at least one safe cell.
func (p GameParams) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return &ConfigurationError{p, "width and height must be positive"}
	case p.Width > math.MaxInt/p.Height:
		return &ConfigurationError{p, "board has too many cells"}
	case p.MineCount < 0:
		return &ConfigurationError{p, "mine count must not be negative"}
	case p.MineCount >= p.Cells():
		return &ConfigurationError{p, "mine count must be less than the number of cells"}
	}
	return nil
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func (p GameParams) PointInBounds(pt Point) bool {
	return 0 <= pt.X && pt.X < p.Width && 0 <= pt.Y && pt.Y < p.Height
}

type Complexity string

const (
	Easy   Complexity = "easy"
	Medium Complexity = "medium"
	Hard   Complexity = "hard"
	Custom Complexity = "custom"
)

var presets = map[Complexity]GameParams{
	Easy:   {Width: 10, Height: 10, MineCount: 10},
	Medium: {Width: 15, Height: 15, MineCount: 40},
	Hard:   {Width: 25, Height: 25, MineCount: 99},
}

// Complexities lists the presets in the order the menu cycles through them.
func Complexities() []Complexity {
	return []Complexity{Easy, Medium, Hard}
}

func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Easy, Medium, Hard, Custom:
		return c, nil
	}
	return "", fmt.Errorf("unknown complexity %q", s)
}

// Params returns the preset board for c. Custom has none.
func (c Complexity) Params() (GameParams, bool) {
	p, ok := presets[c]
	return p, ok
}

// Next is the preset that follows c in the menu; hard wraps to easy.
func (c Complexity) Next() Complexity {
	switch c {
	case Easy:
		return Medium
	case Medium:
		return Hard
	default:
		return Easy
	}
}

// ComplexityOf names the preset matching p, or Custom.
func ComplexityOf(p GameParams) Complexity {
	for _, c := range Complexities() {
		if presets[c] == p {
			return c
		}
	}
	return Custom
}
