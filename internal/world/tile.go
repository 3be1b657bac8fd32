package world

import "fmt"

// Game parameters.
const (
	MaxUnitsPerTile = 99
	MaxMorale       = 99
	MovesPerTurn    = 5
	UnitSpeed       = 2
)

// Terrain types for hex tiles.
type Terrain uint8

const (
	TerrainLand Terrain = iota
	TerrainWater
	TerrainCity
	TerrainHarbor
	TerrainCapital

	numTerrains = 5
)

// Terrains lists every terrain type in table order.
var Terrains = [numTerrains]Terrain{TerrainLand, TerrainWater, TerrainCity, TerrainHarbor, TerrainCapital}

// String returns a human-readable name for a terrain type.
func (t Terrain) String() string {
	switch t {
	case TerrainLand:
		return "Land"
	case TerrainWater:
		return "Water"
	case TerrainCity:
		return "City"
	case TerrainHarbor:
		return "Harbor"
	case TerrainCapital:
		return "Capital"
	default:
		return fmt.Sprintf("Terrain(%d)", uint8(t))
	}
}

// FactionID identifies a playable faction, 0..N-1.
type FactionID int

// Owner is either Unclaimed or a playable faction. The zero value is Unclaimed.
type Owner struct {
	id      FactionID
	claimed bool
}

// Unclaimed returns the owner of tiles no faction holds.
func Unclaimed() Owner { return Owner{} }

// OwnedBy returns the owner for faction id.
func OwnedBy(id FactionID) Owner { return Owner{id: id, claimed: true} }

// Faction returns the owning faction and whether the tile is claimed at all.
func (o Owner) Faction() (FactionID, bool) {
	return o.id, o.claimed
}

// IsClaimed returns true if a faction holds the tile.
func (o Owner) IsClaimed() bool { return o.claimed }

// Is returns true if the owner is exactly faction id.
func (o Owner) Is(id FactionID) bool { return o.claimed && o.id == id }

func (o Owner) String() string {
	if !o.claimed {
		return "unclaimed"
	}
	return fmt.Sprintf("faction %d", o.id)
}

// Unit is a stack of soldiers belonging to one faction.
type Unit struct {
	Count   int       `json:"count"`
	Morale  int       `json:"morale"`
	Moved   bool      `json:"moved"`
	Faction FactionID `json:"faction"`
}

// UnitSlot holds at most one unit stack. The zero value is empty.
type UnitSlot struct {
	unit    Unit
	present bool
}

// NoUnit returns an empty slot.
func NoUnit() UnitSlot { return UnitSlot{} }

// Present returns a slot holding u, with count and morale clamped to their limits.
func Present(u Unit) UnitSlot {
	u.Count = clampInt(u.Count, 0, MaxUnitsPerTile)
	u.Morale = clampInt(u.Morale, 0, MaxMorale)
	return UnitSlot{unit: u, present: true}
}

// Get returns the unit and whether one is present.
func (s UnitSlot) Get() (Unit, bool) {
	return s.unit, s.present
}

// Occupied returns true if a unit stack is on the tile.
func (s UnitSlot) Occupied() bool { return s.present }

// Count returns the stack size, 0 for an empty slot.
func (s UnitSlot) Count() int {
	if !s.present {
		return 0
	}
	return s.unit.Count
}

// Tile is a single hex on the board. Tiles are values; copying one copies everything.
type Tile struct {
	Terrain Terrain  `json:"terrain"`
	Owner   Owner    `json:"-"`
	Unit    UnitSlot `json:"-"`
}

// AtCapacity returns true if no more units can enter the tile.
func (t Tile) AtCapacity() bool {
	return t.Unit.Count() >= MaxUnitsPerTile
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
