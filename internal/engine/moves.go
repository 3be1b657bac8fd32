package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/hexwar/internal/world"
)

// IsMoveValid reports whether the current faction may make m now.
// Ordinary refusals are reported as false; the error is reserved for
// configurations the rules do not support.
func (s *Session) IsMoveValid(m world.Move) (bool, error) {
	reason, err := s.checkMove(m)
	if err != nil {
		return false, err
	}
	return reason == "", nil
}

// ValidMoves returns the tiles the unit on origin may move to this turn,
// for highlighting. It is empty if the unit cannot move at all.
func (s *Session) ValidMoves(origin world.Coord) ([]Reach, error) {
	if reason, err := s.checkOrigin(origin); err != nil || reason != "" {
		return nil, err
	}
	var out []Reach
	for _, r := range s.Reachable(origin, s.speed) {
		if reason, _ := s.checkMove(world.Move{From: origin, To: r.Coord}); reason == "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// checkOrigin validates the moving side of a move. An empty reason means legal.
func (s *Session) checkOrigin(from world.Coord) (string, error) {
	origin, ok := s.board.Get(from)
	if !ok {
		return "origin off the board", nil
	}
	if !origin.Owner.Is(s.turn.Current) {
		return "origin not held by the faction to move", nil
	}
	u, ok := origin.Unit.Get()
	if !ok {
		return "no unit on origin", nil
	}
	if u.Faction != s.turn.Current {
		return "unit belongs to another faction", nil
	}
	if u.Moved {
		return "unit already moved this turn", nil
	}
	if s.speed != world.UnitSpeed {
		return "", fmt.Errorf("move checking for unit speed %d: %w", s.speed, ErrNotImplemented)
	}
	return "", nil
}

// checkMove returns why m is illegal, or "" if it is legal.
func (s *Session) checkMove(m world.Move) (string, error) {
	if reason, err := s.checkOrigin(m.From); err != nil || reason != "" {
		return reason, err
	}
	if world.Distance(m) > s.speed {
		return "destination beyond unit speed", nil
	}

	dest, ok := s.board.Get(m.To)
	if !ok {
		return "destination off the board", nil
	}
	if m.To == m.From {
		return "destination is origin", nil
	}
	if du, ok := dest.Unit.Get(); ok {
		if du.Faction != s.turn.Current {
			return "destination held by an enemy unit", nil
		}
		origin, _ := s.board.Get(m.From)
		if origin.Unit.Count()+du.Count > world.MaxUnitsPerTile {
			return "merged stack would exceed tile capacity", nil
		}
	}
	if _, ok := Reaches(s.Reachable(m.From, s.speed), m.To); !ok {
		return "destination not reachable this turn", nil
	}
	return "", nil
}

// ApplyMove validates and performs m, then advances the turn state.
// The unit stack moves whole, merging into a friendly stack at the destination,
// and the destination is claimed for the mover.
func (s *Session) ApplyMove(m world.Move) (TurnState, error) {
	reason, err := s.checkMove(m)
	if err != nil {
		return s.turn, err
	}
	if reason != "" {
		return s.turn, fmt.Errorf("%w %v: %s", ErrIllegalMove, m, reason)
	}

	var u world.Unit
	if err := s.board.Update(m.From, func(t *world.Tile) {
		u, _ = t.Unit.Get()
		t.Unit = world.NoUnit()
	}); err != nil {
		return s.turn, err
	}
	u.Moved = true
	if err := s.board.Update(m.To, func(t *world.Tile) {
		if du, ok := t.Unit.Get(); ok {
			total := u.Count + du.Count
			if total > 0 {
				u.Morale = (u.Count*u.Morale + du.Count*du.Morale) / total
			}
			u.Count = total
		}
		t.Unit = world.Present(u)
		t.Owner = world.OwnedBy(u.Faction)
	}); err != nil {
		return s.turn, err
	}

	s.seq++
	rec := MoveRecord{Seq: s.seq, Turn: s.turn.Turn, Faction: s.turn.Current, Move: m}
	slog.Debug("move applied", "session", s.id, "seq", rec.Seq, "faction", rec.Faction, "move", m.String())

	s.advance(s.turn.Next(len(s.factions)))
	if s.OnMove != nil {
		s.OnMove(rec)
	}
	return s.turn, nil
}

// EndTurn gives up the current faction's remaining moves.
func (s *Session) EndTurn() TurnState {
	s.seq++
	rec := MoveRecord{Seq: s.seq, Turn: s.turn.Turn, Faction: s.turn.Current, Pass: true}

	s.advance(s.turn.Pass(len(s.factions)))
	if s.OnMove != nil {
		s.OnMove(rec)
	}
	return s.turn
}
