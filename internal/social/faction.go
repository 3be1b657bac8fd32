// Package social holds the factions competing for the board.
package social

import (
	"fmt"

	"github.com/talgya/hexwar/internal/world"
)

// Faction is a player, human or scripted. Factions are plain values so a
// session copy never shares them with the original.
type Faction struct {
	ID   world.FactionID `json:"id"`
	Name string          `json:"name"`
}

func (f Faction) String() string {
	return fmt.Sprintf("%s (%d)", f.Name, f.ID)
}

var factionNames = [world.MaxFactions]string{
	"Azure Crown",
	"Crimson Banner",
	"Golden Host",
	"Verdant League",
}

// SeedFactions creates factions 0..n-1 in capital order.
func SeedFactions(n int) []Faction {
	factions := make([]Faction, n)
	for i := range factions {
		name := fmt.Sprintf("Faction %d", i)
		if i < len(factionNames) {
			name = factionNames[i]
		}
		factions[i] = Faction{ID: world.FactionID(i), Name: name}
	}
	return factions
}
