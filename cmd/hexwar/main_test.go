package main

import (
	"path/filepath"
	"testing"

	"github.com/talgya/hexwar/internal/persistence"
	"github.com/talgya/hexwar/internal/world"
)

func TestCheckFlags(t *testing.T) {
	tests := []struct {
		moves, replay string
		wantErr       bool
	}{
		{"", "", false},
		{"moves.txt", "", false},
		{"", "0b7b3c8e-2d4f-4a61-9a57-3f7e9d1c2b10", false},
		{"moves.txt", "0b7b3c8e-2d4f-4a61-9a57-3f7e9d1c2b10", true},
	}
	for _, tt := range tests {
		err := checkFlags(tt.moves, tt.replay)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkFlags(%q, %q) = %v, wantErr %v", tt.moves, tt.replay, err, tt.wantErr)
		}
	}
}

func TestReplayLogsTurns(t *testing.T) {
	db, err := persistence.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	s, err := start(db, world.DefaultGenConfig())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.OnMove == nil || s.OnTurn == nil {
		t.Fatal("started session is missing its hooks")
	}
	s.EndTurn()

	r, err := replay(db, s.ID().String())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if r.OnTurn == nil {
		t.Error("replayed session does not log turns")
	}
	if r.OnMove != nil {
		t.Error("replayed session writes to the journal")
	}
	if r.TurnState() != s.TurnState() {
		t.Errorf("replayed state %v, want %v", r.TurnState(), s.TurnState())
	}

	if _, err := replay(nil, s.ID().String()); err == nil {
		t.Error("replay without a journal succeeded")
	}
	if _, err := replay(db, "not-a-uuid"); err == nil {
		t.Error("replay of a malformed id succeeded")
	}
}
