// Package world provides the hex grid, terrain, and map generation.
// Uses offset coordinates (x = column, y = row) with odd columns raised half a row.
// Origin (0, 0) is the lower left tile; x grows to the right and y grows up.
package world

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDirection is returned for a Direction outside Up..LeftUp.
	ErrInvalidDirection = errors.New("invalid hex direction")
	// ErrOutOfBounds is returned when a coordinate falls off the board.
	ErrOutOfBounds      = errors.New("coordinate out of bounds")
)

// Coord is a tile position in offset coordinates.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is one of the six hex directions.
type Direction uint8

const (
	Up Direction = iota
	UpRight
	DownRight
	Down
	DownLeft
	LeftUp
)

// Directions lists all six directions in clockwise order starting at Up.
var Directions = [6]Direction{Up, UpRight, DownRight, Down, DownLeft, LeftUp}

// Valid reports whether d names one of the six directions.
func (d Direction) Valid() bool {
	return d <= LeftUp
}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case UpRight:
		return "UpRight"
	case DownRight:
		return "DownRight"
	case Down:
		return "Down"
	case DownLeft:
		return "DownLeft"
	case LeftUp:
		return "LeftUp"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Bounds is the rectangular extent of a board. It carries no tile data,
// so geometry queries can be answered without touching a Map.
type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains returns true if c lies on the board.
func (b Bounds) Contains(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < b.Width && c.Y < b.Height
}

// Neighbor returns the tile adjacent to c in direction dir.
// Unless ignoreBorders is set, a neighbor that would fall off the board
// (or any step from an off-board tile) yields c itself.
func (b Bounds) Neighbor(c Coord, dir Direction, ignoreBorders bool) (Coord, error) {
	even := abs(c.X%2) == 0

	var n Coord
	switch dir {
	case Up:
		n = Coord{c.X, c.Y + 1}
	case Down:
		n = Coord{c.X, c.Y - 1}
	case UpRight:
		if even {
			n = Coord{c.X + 1, c.Y}
		} else {
			n = Coord{c.X + 1, c.Y + 1}
		}
	case DownRight:
		if even {
			n = Coord{c.X + 1, c.Y - 1}
		} else {
			n = Coord{c.X + 1, c.Y}
		}
	case DownLeft:
		if even {
			n = Coord{c.X - 1, c.Y - 1}
		} else {
			n = Coord{c.X - 1, c.Y}
		}
	case LeftUp:
		if even {
			n = Coord{c.X - 1, c.Y}
		} else {
			n = Coord{c.X - 1, c.Y + 1}
		}
	default:
		return c, fmt.Errorf("neighbor of %v: %w: %d", c, ErrInvalidDirection, uint8(dir))
	}

	if !ignoreBorders && (!b.Contains(n) || !b.Contains(c)) {
		return c, nil
	}
	return n, nil
}

// step is Neighbor for directions already known to be valid.
func (b Bounds) step(c Coord, dir Direction) Coord {
	n, _ := b.Neighbor(c, dir, false)
	return n
}

// Neighbors returns the in-bounds tiles adjacent to c.
func (b Bounds) Neighbors(c Coord) []Coord {
	result := make([]Coord, 0, 6)
	for _, dir := range Directions {
		n := b.step(c, dir)
		if n != c {
			result = append(result, n)
		}
	}
	return result
}

// Move is a request to move the unit stack at From to To.
type Move struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
}

// String returns "(x,y)->(x,y)".
func (m Move) String() string {
	return m.From.String() + "->" + m.To.String()
}

// cube converts an offset coordinate to cube coordinates, taking the
// row as the first cube axis.
func cube(c Coord) (x, y, z int) {
	x = c.Y
	z = c.X - (c.Y-abs(c.Y%2))/2
	y = -x - z
	return x, y, z
}

// Distance returns the hex distance between the endpoints of m, ignoring
// terrain and board edges.
func Distance(m Move) int {
	x1, y1, z1 := cube(m.From)
	x2, y2, z2 := cube(m.To)
	return (abs(x1-x2) + abs(y1-y2) + abs(z1-z2)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
