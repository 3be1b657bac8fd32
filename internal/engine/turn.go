package engine

import (
	"fmt"

	"github.com/talgya/hexwar/internal/world"
)

// TurnState is the turn bookkeeping threaded through every move.
// Faction 0 opens each turn; Turn increments when play returns to it.
type TurnState struct {
	Turn           int             `json:"turn"`
	Current        world.FactionID `json:"current"`
	MovesRemaining int             `json:"moves_remaining"`
}

// InitialTurn returns the state at the start of a session.
func InitialTurn() TurnState {
	return TurnState{
		Turn:           1,
		Current:        0,
		MovesRemaining: world.MovesPerTurn,
	}
}

// Next returns the state after the current faction spends one move.
func (t TurnState) Next(numFactions int) TurnState {
	t.MovesRemaining--
	if t.MovesRemaining > 0 {
		return t
	}
	return t.Pass(numFactions)
}

// Pass returns the state after the current faction gives up its remaining moves.
func (t TurnState) Pass(numFactions int) TurnState {
	if numFactions <= 0 {
		return t
	}
	t.Current = (t.Current + 1) % world.FactionID(numFactions)
	if t.Current == 0 {
		t.Turn++
	}
	t.MovesRemaining = world.MovesPerTurn
	return t
}

func (t TurnState) String() string {
	return fmt.Sprintf("turn %d, faction %d, %d moves left", t.Turn, t.Current, t.MovesRemaining)
}
