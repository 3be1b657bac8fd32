package world

import (
	"errors"
	"testing"
)

func TestNeighborOppositeRoundTrip(t *testing.T) {
	b := Bounds{Width: 8, Height: 8}
	for _, c := range []Coord{{3, 3}, {4, 3}, {2, 5}, {5, 2}} {
		for _, d := range Directions {
			n, err := b.Neighbor(c, d, false)
			if err != nil {
				t.Fatalf("Neighbor(%v, %v): %v", c, d, err)
			}
			if n == c {
				t.Fatalf("Neighbor(%v, %v) stayed put on an interior tile", c, d)
			}
			back, _ := b.Neighbor(n, d.Opposite(), false)
			if back != c {
				t.Errorf("%v -%v-> %v -%v-> %v, want back at %v", c, d, n, d.Opposite(), back, c)
			}
		}
	}
}

func TestNeighborColumnParity(t *testing.T) {
	b := Bounds{Width: 8, Height: 8}
	tests := []struct {
		from Coord
		dir  Direction
		want Coord
	}{
		{Coord{2, 2}, Up, Coord{2, 3}},
		{Coord{2, 2}, Down, Coord{2, 1}},
		{Coord{2, 2}, UpRight, Coord{3, 2}},
		{Coord{2, 2}, DownRight, Coord{3, 1}},
		{Coord{2, 2}, DownLeft, Coord{1, 1}},
		{Coord{2, 2}, LeftUp, Coord{1, 2}},
		{Coord{3, 2}, UpRight, Coord{4, 3}},
		{Coord{3, 2}, DownRight, Coord{4, 2}},
		{Coord{3, 2}, DownLeft, Coord{2, 2}},
		{Coord{3, 2}, LeftUp, Coord{2, 3}},
	}
	for _, tt := range tests {
		got, err := b.Neighbor(tt.from, tt.dir, false)
		if err != nil {
			t.Fatalf("Neighbor(%v, %v): %v", tt.from, tt.dir, err)
		}
		if got != tt.want {
			t.Errorf("Neighbor(%v, %v) = %v, want %v", tt.from, tt.dir, got, tt.want)
		}
	}
}

func TestNeighborBorders(t *testing.T) {
	b := Bounds{Width: 4, Height: 4}
	origin := Coord{0, 0}

	got, err := b.Neighbor(origin, Down, false)
	if err != nil || got != origin {
		t.Errorf("clamped Neighbor = %v, %v; want %v, nil", got, err, origin)
	}

	got, err = b.Neighbor(origin, Down, true)
	if err != nil || got != (Coord{0, -1}) {
		t.Errorf("unclamped Neighbor = %v, %v; want (0,-1), nil", got, err)
	}

	if n := b.Neighbors(origin); len(n) != 2 {
		t.Errorf("corner has %d neighbors, want 2: %v", len(n), n)
	}
	if n := b.Neighbors(Coord{1, 1}); len(n) != 6 {
		t.Errorf("interior tile has %d neighbors, want 6", len(n))
	}
}

func TestNeighborInvalidDirection(t *testing.T) {
	b := Bounds{Width: 4, Height: 4}
	_, err := b.Neighbor(Coord{1, 1}, Direction(6), false)
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("err = %v, want ErrInvalidDirection", err)
	}
	if Direction(6).Valid() {
		t.Error("Direction(6) reported valid")
	}
}

func TestOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		Up:        Down,
		UpRight:   DownLeft,
		DownRight: LeftUp,
	}
	for d, want := range pairs {
		if d.Opposite() != want || want.Opposite() != d {
			t.Errorf("Opposite(%v) = %v, want %v", d, d.Opposite(), want)
		}
	}
}

func TestDistance(t *testing.T) {
	a, b := Coord{3, 4}, Coord{6, 1}
	if d := Distance(Move{a, a}); d != 0 {
		t.Errorf("distance to self = %d", d)
	}
	if Distance(Move{a, b}) != Distance(Move{b, a}) {
		t.Errorf("distance not symmetric: %d vs %d", Distance(Move{a, b}), Distance(Move{b, a}))
	}
	if d := Distance(Move{Coord{2, 2}, Coord{2, 3}}); d != 1 {
		t.Errorf("vertical step distance = %d, want 1", d)
	}
	if d := Distance(Move{Coord{2, 2}, Coord{2, 5}}); d != 3 {
		t.Errorf("three rows apart distance = %d, want 3", d)
	}
}
