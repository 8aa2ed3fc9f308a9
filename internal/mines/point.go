package mines

import "fmt"

type Point struct {
	X, Y int
}

// NoPoint is passed to [PlaceMines] when no cell has to be kept free.
var NoPoint = Point{-1, -1}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// offsets of the eight neighbours as (dx, dy), in the order they are visited
var neighborOffsets = [8]Point{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}
