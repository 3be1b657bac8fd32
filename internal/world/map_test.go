package world

import (
	"errors"
	"testing"
)

func TestMapSetGet(t *testing.T) {
	m := NewMap(4, 3)
	tile := Tile{Terrain: TerrainCity, Owner: OwnedBy(2)}
	if err := m.Set(Coord{3, 2}, tile); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := m.Get(Coord{3, 2})
	if !ok || got != tile {
		t.Errorf("Get = %+v, %v; want %+v", got, ok, tile)
	}
	if _, ok := m.Get(Coord{4, 0}); ok {
		t.Error("Get off the board reported ok")
	}
	if err := m.Set(Coord{-1, 0}, tile); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Set off the board: err = %v, want ErrOutOfBounds", err)
	}
}

func TestMapUpdate(t *testing.T) {
	m := NewMap(4, 3)
	if err := m.Update(Coord{2, 1}, func(t *Tile) {
		t.Terrain = TerrainHarbor
		t.Owner = OwnedBy(1)
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := m.Get(Coord{2, 1})
	if got.Terrain != TerrainHarbor || !got.Owner.Is(1) {
		t.Errorf("updated tile = %+v", got)
	}

	called := false
	err := m.Update(Coord{0, 3}, func(*Tile) { called = true })
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Update off the board: err = %v, want ErrOutOfBounds", err)
	}
	if called {
		t.Error("Update ran fn for an off-board coordinate")
	}
}

func TestMapUpdateAll(t *testing.T) {
	m := NewMap(3, 2)
	var order []Coord
	m.UpdateAll(func(c Coord, t *Tile) {
		order = append(order, c)
		if c.X == 1 {
			t.Terrain = TerrainWater
		}
	})
	if len(order) != 6 || order[0] != (Coord{0, 0}) || order[5] != (Coord{2, 1}) {
		t.Errorf("visit order = %v", order)
	}
	if n := TerrainCounts(m)[TerrainWater]; n != 2 {
		t.Errorf("%d water tiles, want 2", n)
	}
}

func TestMapCloneIsIndependent(t *testing.T) {
	m := NewMap(3, 3)
	m.Set(Coord{1, 1}, Tile{Terrain: TerrainCapital, Owner: OwnedBy(0), Unit: Present(Unit{Count: 5, Morale: 40})})

	c := m.Clone()
	if !c.Equal(m) {
		t.Fatal("clone differs from original")
	}

	c.Set(Coord{1, 1}, Tile{Terrain: TerrainWater})
	orig, _ := m.Get(Coord{1, 1})
	if orig.Terrain != TerrainCapital || orig.Unit.Count() != 5 {
		t.Errorf("modifying the clone changed the original: %+v", orig)
	}
}

func TestMapBinaryRoundTrip(t *testing.T) {
	m := NewMap(5, 4)
	m.Set(Coord{0, 0}, Tile{Terrain: TerrainCapital, Owner: OwnedBy(0), Unit: Present(Unit{Count: 12, Morale: 99, Faction: 0})})
	m.Set(Coord{4, 3}, Tile{Terrain: TerrainHarbor, Owner: OwnedBy(3), Unit: Present(Unit{Count: 1, Morale: 7, Moved: true, Faction: 3})})
	m.Set(Coord{2, 1}, Tile{Terrain: TerrainWater})

	data, err := m.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(data) != 4+5*4*tileRecordSize {
		t.Fatalf("encoded %d bytes", len(data))
	}

	var got Map
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if !got.Equal(m) {
		t.Error("decoded board differs from original")
	}

	if err := got.UnmarshalBinary(data[:len(data)-1]); !errors.Is(err, errCorruptMap) {
		t.Errorf("truncated data: err = %v, want errCorruptMap", err)
	}
}

func TestRender(t *testing.T) {
	m := NewMap(3, 2)
	m.Set(Coord{0, 0}, Tile{Terrain: TerrainCapital})
	m.Set(Coord{1, 0}, Tile{Terrain: TerrainCity})
	m.Set(Coord{1, 1}, Tile{Terrain: TerrainWater})
	m.Set(Coord{2, 1}, Tile{Terrain: TerrainHarbor})

	want := "L H\nCcL\n"
	if got := Render(m); got != want {
		t.Errorf("Render =\n%q\nwant\n%q", got, want)
	}
}

func TestTerrainCounts(t *testing.T) {
	m := NewMap(3, 3)
	m.Set(Coord{0, 0}, Tile{Terrain: TerrainWater})
	m.Set(Coord{1, 0}, Tile{Terrain: TerrainWater})
	counts := TerrainCounts(m)
	if counts[TerrainWater] != 2 || counts[TerrainLand] != 7 {
		t.Errorf("counts = %v", counts)
	}
}

func TestUnitSlotClamps(t *testing.T) {
	s := Present(Unit{Count: 150, Morale: -3})
	u, ok := s.Get()
	if !ok {
		t.Fatal("Present slot reports empty")
	}
	if u.Count != MaxUnitsPerTile || u.Morale != 0 {
		t.Errorf("unit = %+v, want count %d morale 0", u, MaxUnitsPerTile)
	}
	if !(Tile{Unit: s}).AtCapacity() {
		t.Error("full tile not at capacity")
	}
	if NoUnit().Occupied() || NoUnit().Count() != 0 {
		t.Error("empty slot reports a unit")
	}
}

func TestOwner(t *testing.T) {
	var zero Owner
	if zero.IsClaimed() || zero != Unclaimed() {
		t.Error("zero Owner is not Unclaimed")
	}
	o := OwnedBy(0)
	if id, ok := o.Faction(); !ok || id != 0 {
		t.Errorf("OwnedBy(0).Faction() = %d, %v", id, ok)
	}
	if !o.Is(0) || o.Is(1) || Unclaimed().Is(0) {
		t.Error("Owner.Is mismatch")
	}
}
