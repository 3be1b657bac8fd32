package world

import "math"

// Impassable marks a terrain pair that can never be crossed.
const Impassable = math.MaxInt

// movesRequired[from][to] is the cost of entering a "to" tile from a "from" tile.
// Order: Land, Water, City, Harbor, Capital.
var movesRequired = [numTerrains][numTerrains]int{
	{1, 2, 1, 1, 1},
	{1, 1, 1, 1, 1},
	{1, 2, 1, 1, 1},
	{1, 2, 1, 1, 1},
	{1, 2, 1, 1, 1},
}

// turnEndingInterface[from][to] is true when crossing from "from" into "to"
// ends the unit's movement for the turn.
var turnEndingInterface = [numTerrains][numTerrains]bool{
	{false, false, true, true, true},
	{true, false, true, true, true},
	{false, false, true, true, true},
	{false, false, true, true, true},
	{false, false, true, true, true},
}

// MovesRequired returns how many moves it takes to enter a "to" tile from
// an adjacent "from" tile, or Impassable.
func MovesRequired(from, to Terrain) int {
	if from >= numTerrains || to >= numTerrains {
		return Impassable
	}
	return movesRequired[from][to]
}

// IsInterfaceTurnEnding reports whether crossing from "from" into "to" ends the turn.
func IsInterfaceTurnEnding(from, to Terrain) bool {
	if from >= numTerrains || to >= numTerrains {
		return true
	}
	return turnEndingInterface[from][to]
}
