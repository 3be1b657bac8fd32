package persistence

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/talgya/hexwar/internal/engine"
	"github.com/talgya/hexwar/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenPragmas(t *testing.T) {
	db := openTestDB(t)

	var mode string
	if err := db.conn.Get(&mode, "PRAGMA journal_mode"); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	var timeout int
	if err := db.conn.Get(&timeout, "PRAGMA busy_timeout"); err != nil {
		t.Fatalf("busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", timeout)
	}
}

func TestJournalRoundTrip(t *testing.T) {
	db := openTestDB(t)

	cfg := world.DefaultGenConfig()
	cfg.Seed = 31
	s, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	opening := s.Map().Clone()

	if err := db.RecordSession(s); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}
	s.OnMove = func(rec engine.MoveRecord) {
		if err := db.RecordMove(s.ID(), rec); err != nil {
			t.Errorf("RecordMove: %v", err)
		}
	}

	mv := world.Move{From: world.Coord{X: 1, Y: 1}, To: world.Coord{X: 1, Y: 2}}
	if _, err := s.ApplyMove(mv); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	s.EndTurn()

	gotCfg, err := db.SessionConfig(s.ID())
	if err != nil {
		t.Fatalf("SessionConfig: %v", err)
	}
	if gotCfg != cfg {
		t.Errorf("config = %+v, want %+v", gotCfg, cfg)
	}

	terrain, err := db.Terrain(s.ID())
	if err != nil {
		t.Fatalf("Terrain: %v", err)
	}
	if !terrain.Equal(opening) {
		t.Error("stored board is not the opening board")
	}
	if err := db.CheckTerrain(s.ID()); err != nil {
		t.Errorf("CheckTerrain: %v", err)
	}

	moves, err := db.Moves(s.ID())
	if err != nil {
		t.Fatalf("Moves: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("got %d records, want 2", len(moves))
	}
	if moves[0].Move != mv || moves[0].Pass || moves[0].Seq != 1 {
		t.Errorf("record 0 = %+v", moves[0])
	}
	if !moves[1].Pass || moves[1].Faction != 0 || moves[1].Seq != 2 {
		t.Errorf("record 1 = %+v", moves[1])
	}

	r, err := db.Replay(s.ID())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !r.Map().Equal(s.Map()) || r.TurnState() != s.TurnState() {
		t.Error("replayed session differs from the original")
	}
}

func TestJournalDuplicateSeq(t *testing.T) {
	db := openTestDB(t)
	s, err := engine.New(world.DefaultGenConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.RecordSession(s); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}
	rec := engine.MoveRecord{Seq: 1, Turn: 1, Pass: true}
	if err := db.RecordMove(s.ID(), rec); err != nil {
		t.Fatalf("RecordMove: %v", err)
	}
	if err := db.RecordMove(s.ID(), rec); err == nil {
		t.Error("second record with the same seq was accepted")
	}
}

func TestJournalUnknownSession(t *testing.T) {
	db := openTestDB(t)
	id := uuid.New()
	if _, err := db.SessionConfig(id); err == nil {
		t.Error("SessionConfig of an unknown session succeeded")
	}
	if moves, err := db.Moves(id); err != nil || len(moves) != 0 {
		t.Errorf("Moves of an unknown session = %v, %v", moves, err)
	}
}

func TestCheckTerrainMismatch(t *testing.T) {
	db := openTestDB(t)
	s, err := engine.New(world.DefaultGenConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Journal the board after a move, so it no longer matches a fresh generation.
	if _, err := s.ApplyMove(world.Move{From: world.Coord{X: 1, Y: 1}, To: world.Coord{X: 1, Y: 2}}); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if err := db.RecordSession(s); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}
	if err := db.CheckTerrain(s.ID()); !errors.Is(err, ErrTerrainMismatch) {
		t.Errorf("err = %v, want ErrTerrainMismatch", err)
	}
}
