package world

import "testing"

func TestMovesRequired(t *testing.T) {
	for _, from := range Terrains {
		for _, to := range Terrains {
			want := 1
			if to == TerrainWater && from != TerrainWater {
				want = 2
			}
			if got := MovesRequired(from, to); got != want {
				t.Errorf("MovesRequired(%v, %v) = %d, want %d", from, to, got, want)
			}
		}
	}
	if MovesRequired(Terrain(9), TerrainLand) != Impassable {
		t.Error("unknown terrain is passable")
	}
}

func TestIsInterfaceTurnEnding(t *testing.T) {
	for _, from := range Terrains {
		for _, to := range []Terrain{TerrainCity, TerrainHarbor, TerrainCapital} {
			if !IsInterfaceTurnEnding(from, to) {
				t.Errorf("entering %v from %v does not end the turn", to, from)
			}
		}
	}
	if !IsInterfaceTurnEnding(TerrainWater, TerrainLand) {
		t.Error("landing from water does not end the turn")
	}
	for _, pair := range [][2]Terrain{
		{TerrainLand, TerrainLand},
		{TerrainLand, TerrainWater},
		{TerrainWater, TerrainWater},
		{TerrainCapital, TerrainLand},
	} {
		if IsInterfaceTurnEnding(pair[0], pair[1]) {
			t.Errorf("%v -> %v ends the turn", pair[0], pair[1])
		}
	}
}
