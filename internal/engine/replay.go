package engine

import (
	"fmt"

	"github.com/talgya/hexwar/internal/world"
)

// Replay rebuilds a session from its generation parameters and action log.
// Records must be in sequence order and match the faction to move at each step.
func Replay(cfg world.GenConfig, records []MoveRecord) (*Session, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}

	for i, rec := range records {
		if rec.Faction != s.turn.Current || rec.Turn != s.turn.Turn {
			return nil, fmt.Errorf("replay record %d (seq %d): recorded for faction %d turn %d, session at %v",
				i, rec.Seq, rec.Faction, rec.Turn, s.turn)
		}
		if rec.Pass {
			s.EndTurn()
			continue
		}
		if _, err := s.ApplyMove(rec.Move); err != nil {
			return nil, fmt.Errorf("replay record %d (seq %d): %w", i, rec.Seq, err)
		}
	}
	return s, nil
}
