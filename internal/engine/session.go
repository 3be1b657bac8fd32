// Package engine runs a game session: the board, the factions, and the turn
// state machine that move application drives forward.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/hexwar/internal/social"
	"github.com/talgya/hexwar/internal/world"
)

var (
	// ErrNotImplemented marks engine operations the rules do not define yet.
	ErrNotImplemented = errors.New("not implemented")
	// ErrIllegalMove is wrapped by ApplyMove when a move breaks the rules.
	ErrIllegalMove    = errors.New("illegal move")
)

// MoveRecord describes one applied action. Pass records carry no move.
type MoveRecord struct {
	Seq     int             `json:"seq" db:"seq"`
	Turn    int             `json:"turn" db:"turn"`
	Faction world.FactionID `json:"faction" db:"faction"`
	Pass    bool            `json:"pass" db:"pass"`
	Move    world.Move      `json:"move" db:"-"`
}

// Session holds the complete state of one game.
type Session struct {
	id       uuid.UUID
	cfg      world.GenConfig
	board    *world.Map
	factions []social.Faction
	turn     TurnState
	seq      int // Actions applied so far
	speed    int // Unit speed used by move validation

	// Callbacks, populated by the caller. Clones never carry them.
	OnMove func(rec MoveRecord)       // After every applied move or pass
	OnTurn func(prev, next TurnState) // When play passes to another faction
}

// New generates a board from cfg and opens a session on it.
func New(cfg world.GenConfig) (*Session, error) {
	board, err := world.Generate(cfg)
	if err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}

	s := &Session{
		id:       uuid.New(),
		cfg:      cfg,
		board:    board,
		factions: social.SeedFactions(cfg.Factions),
		turn:     InitialTurn(),
		speed:    world.UnitSpeed,
	}

	counts := world.TerrainCounts(board)
	slog.Info("session created",
		"session", s.id,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"seed", cfg.Seed,
		"factions", cfg.Factions,
		"land", counts[world.TerrainLand],
		"water", counts[world.TerrainWater],
	)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Config returns the generation parameters the board was built from.
func (s *Session) Config() world.GenConfig { return s.cfg }

// Map returns the live board. Callers must not modify it; use Clone for a private copy.
func (s *Session) Map() *world.Map { return s.board }

// Tile returns the tile at c.
func (s *Session) Tile(c world.Coord) (world.Tile, error) {
	t, ok := s.board.Get(c)
	if !ok {
		return world.Tile{}, fmt.Errorf("tile %v: %w", c, world.ErrOutOfBounds)
	}
	return t, nil
}

// Factions returns a copy of the faction list.
func (s *Session) Factions() []social.Faction {
	out := make([]social.Faction, len(s.factions))
	copy(out, s.factions)
	return out
}

// TurnState returns the current turn bookkeeping.
func (s *Session) TurnState() TurnState { return s.turn }

// Turn returns the turn number, starting at 1.
func (s *Session) Turn() int { return s.turn.Turn }

// CurrentFaction returns the faction to move.
func (s *Session) CurrentFaction() social.Faction { return s.factions[s.turn.Current] }

// MovesRemaining returns how many moves the current faction has left this turn.
func (s *Session) MovesRemaining() int { return s.turn.MovesRemaining }

// Seq returns the number of actions applied so far.
func (s *Session) Seq() int { return s.seq }

// Clone returns a deep copy that shares nothing with s. The copy has no callbacks.
func (s *Session) Clone() *Session {
	return &Session{
		id:       s.id,
		cfg:      s.cfg,
		board:    s.board.Clone(),
		factions: s.Factions(),
		turn:     s.turn,
		seq:      s.seq,
		speed:    s.speed,
	}
}

// advance moves the session to next, clearing the moved flags of the faction
// that gains the move.
func (s *Session) advance(next TurnState) {
	prev := s.turn
	s.turn = next
	if prev.Current == next.Current && prev.Turn == next.Turn {
		return
	}

	s.board.UpdateAll(func(_ world.Coord, t *world.Tile) {
		u, ok := t.Unit.Get()
		if !ok || u.Faction != next.Current || !u.Moved {
			return
		}
		u.Moved = false
		t.Unit = world.Present(u)
	})

	slog.Debug("turn passed", "session", s.id, "turn", next.Turn, "faction", next.Current)
	if s.OnTurn != nil {
		s.OnTurn(prev, next)
	}
}
