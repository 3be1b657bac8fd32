package world

// EdgeKind classifies the boundary on one side of an owned tile.
type EdgeKind uint8

const (
	EdgeOuter     EdgeKind = iota // Board edge
	EdgeUnclaimed                 // Neighbor belongs to nobody
	EdgeForeign                   // Neighbor belongs to another faction
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeOuter:
		return "outer"
	case EdgeUnclaimed:
		return "unclaimed"
	case EdgeForeign:
		return "foreign"
	default:
		return "unknown"
	}
}

// BorderEdge is one side of an owned tile that separates it from something else.
// Renderers draw Outer and Unclaimed edges in the owner's colour and Foreign
// edges in both colours.
type BorderEdge struct {
	Tile     Coord
	Dir      Direction
	Kind     EdgeKind
	Owner    FactionID
	Neighbor Owner // Zero for outer edges
}

// Borders lists every edge of every claimed tile whose neighbor is not held by
// the same faction. Edges between two tiles of one faction are omitted.
func Borders(m *Map) []BorderEdge {
	var edges []BorderEdge
	m.Each(func(c Coord, t Tile) {
		owner, ok := t.Owner.Faction()
		if !ok {
			return
		}
		for _, dir := range Directions {
			n, _ := m.Neighbor(c, dir, true)
			nt, inside := m.Get(n)
			switch {
			case !inside:
				edges = append(edges, BorderEdge{Tile: c, Dir: dir, Kind: EdgeOuter, Owner: owner})
			case !nt.Owner.IsClaimed():
				edges = append(edges, BorderEdge{Tile: c, Dir: dir, Kind: EdgeUnclaimed, Owner: owner})
			case !nt.Owner.Is(owner):
				edges = append(edges, BorderEdge{Tile: c, Dir: dir, Kind: EdgeForeign, Owner: owner, Neighbor: nt.Owner})
			}
		}
	})
	return edges
}
