// Reachability: the layered wavefront that decides where a unit can go this turn.
package engine

import (
	"cmp"
	"context"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/talgya/hexwar/internal/world"
)

// Reach is a tile a unit can get to this turn and the moves it takes.
type Reach struct {
	Coord world.Coord `json:"coord"`
	Moves int         `json:"moves"`
}

// frontierTile is a tile being entered. Tiles that take several moves to
// enter wait in the frontier until remaining drops to 1.
type frontierTile struct {
	at        world.Coord
	remaining int
	cost      int
}

// Reachable returns every tile a unit on from can reach with budget moves,
// excluding from itself.
func (s *Session) Reachable(from world.Coord, budget int) []Reach {
	r, _ := Reachable(context.Background(), s.board, from, budget)
	return r
}

// ReachableContext is Reachable with cancellation checked between layers.
func (s *Session) ReachableContext(ctx context.Context, from world.Coord, budget int) ([]Reach, error) {
	return Reachable(ctx, s.board, from, budget)
}

// Reachable computes the reachable set on m. Each layer spends one move.
//
// Tiles holding a unit, and tiles entered across a turn-ending interface, can
// be reached but are not expanded. A tile first reached across a turn-ending
// interface is promoted back into the frontier if a later layer reaches it
// across an ordinary one. Tiles still being entered when the budget runs out
// are reported at the full budget.
func Reachable(ctx context.Context, m *world.Map, from world.Coord, budget int) ([]Reach, error) {
	if budget <= 0 || !m.Contains(from) {
		return nil, nil
	}

	var (
		visited  = mapset.New[world.Coord]() // Retired and no longer next to anything active
		retired  = mapset.New[world.Coord]() // Fully entered, still next to the frontier
		occupied = mapset.New[world.Coord]() // Holding a unit: destination only
		ending   = mapset.New[world.Coord]() // Entered across a turn-ending interface
		cost     = make(map[world.Coord]int)
		promoted = make(map[world.Coord]int) // Turn-ending cost of tiles later promoted

		active    = []frontierTile{{at: from, remaining: 1, cost: 0}}
		activeSet = mapset.New[world.Coord]()
	)
	activeSet.Put(from)

	for layer := 0; layer < budget; layer++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var next []frontierTile
		nextSet := mapset.New[world.Coord]()

		for _, ft := range active {
			if ft.remaining > 1 {
				next = append(next, frontierTile{at: ft.at, remaining: ft.remaining - 1, cost: ft.cost})
				nextSet.Put(ft.at)
				continue
			}

			current, _ := m.Get(ft.at)
			for _, nc := range m.Neighbors(ft.at) {
				neighbor, _ := m.Get(nc)

				required := world.MovesRequired(current.Terrain, neighbor.Terrain)
				if required == world.Impassable {
					continue
				}
				if neighbor.AtCapacity() {
					continue
				}
				if occupied.Has(nc) {
					continue
				}
				if visited.Has(nc) || retired.Has(nc) || activeSet.Has(nc) || nextSet.Has(nc) {
					continue
				}

				c := min(layer+required, budget)

				if neighbor.Unit.Occupied() {
					occupied.Put(nc)
					cost[nc] = c
					continue
				}

				if world.IsInterfaceTurnEnding(current.Terrain, neighbor.Terrain) {
					if prev, seen := cost[nc]; !seen || c < prev {
						cost[nc] = c
					}
					ending.Put(nc)
					continue
				}

				if ending.Has(nc) {
					ending.Remove(nc)
					promoted[nc] = cost[nc]
					delete(cost, nc)
				}

				next = append(next, frontierTile{at: nc, remaining: required, cost: c})
				nextSet.Put(nc)
			}
		}

		for _, ft := range active {
			if ft.remaining == 1 {
				retired.Put(ft.at)
				cost[ft.at] = ft.cost
			}
		}

		active, activeSet = next, nextSet

		var settled []world.Coord
		retired.Each(func(c world.Coord) {
			for _, n := range m.Neighbors(c) {
				if activeSet.Has(n) {
					return
				}
			}
			settled = append(settled, c)
		})
		for _, c := range settled {
			retired.Remove(c)
			visited.Put(c)
		}
	}

	var result []Reach
	add := func(c world.Coord, moves int) {
		if c == from {
			return
		}
		if p, ok := promoted[c]; ok && p < moves {
			moves = p
		}
		result = append(result, Reach{Coord: c, Moves: moves})
	}

	for _, set := range []mapset.Set[world.Coord]{visited, retired, occupied, ending} {
		set.Each(func(c world.Coord) { add(c, cost[c]) })
	}
	for _, ft := range active {
		add(ft.at, ft.cost)
	}

	slices.SortFunc(result, func(a, b Reach) int {
		return cmp.Or(
			cmp.Compare(a.Moves, b.Moves),
			cmp.Compare(a.Coord.Y, b.Coord.Y),
			cmp.Compare(a.Coord.X, b.Coord.X),
		)
	})
	return result, nil
}

// Reaches reports whether to is among the reachable tiles and at what cost.
func Reaches(reach []Reach, to world.Coord) (int, bool) {
	for _, r := range reach {
		if r.Coord == to {
			return r.Moves, true
		}
	}
	return 0, false
}
