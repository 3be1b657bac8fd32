package world

import "github.com/Travis-Britz/structures/stack"

// TerritorySummary describes the land a faction holds.
type TerritorySummary struct {
	Faction   FactionID
	Capital   *Coord  // nil if the faction holds no capital
	Connected []Coord // Owned tiles reachable from the capital through owned tiles, capital included
	Cutoff    []Coord // Owned tiles with no owned path back to the capital
}

// Owned returns the total number of tiles the faction holds.
func (s TerritorySummary) Owned() int {
	return len(s.Connected) + len(s.Cutoff)
}

// Territory walks the faction's holdings outward from its capital.
// With no capital, every owned tile counts as cut off.
func Territory(m *Map, faction FactionID) TerritorySummary {
	summary := TerritorySummary{Faction: faction}

	var owned []Coord
	m.Each(func(c Coord, t Tile) {
		if !t.Owner.Is(faction) {
			return
		}
		owned = append(owned, c)
		if t.Terrain == TerrainCapital && summary.Capital == nil {
			capital := c
			summary.Capital = &capital
		}
	})

	connected := make(map[Coord]bool, len(owned))
	if summary.Capital != nil {
		frontier := &stack.Stack[Coord]{}
		connected[*summary.Capital] = true
		for current, more := *summary.Capital, true; more; current, more = frontier.Pop() {
			for _, next := range m.Neighbors(current) {
				if connected[next] {
					continue
				}
				if t, _ := m.Get(next); t.Owner.Is(faction) {
					connected[next] = true
					frontier.Push(next)
				}
			}
		}
	}

	for _, c := range owned {
		if connected[c] {
			summary.Connected = append(summary.Connected, c)
		} else {
			summary.Cutoff = append(summary.Cutoff, c)
		}
	}
	return summary
}
