// Package persistence provides the SQLite match journal: the parameters each
// session was generated from, a compressed copy of its opening board, and
// every action applied to it. Sessions are rebuilt by replaying the journal.
package persistence

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexwar/internal/engine"
	"github.com/talgya/hexwar/internal/world"
)

// ErrTerrainMismatch is returned by CheckTerrain when the generator no longer
// reproduces a journaled opening board.
var ErrTerrainMismatch = errors.New("regenerated terrain differs from journal")

// DB wraps a SQLite connection for the match journal.
type DB struct {
	conn *sqlx.DB
	enc  *zstd.Encoder
	dec  *zstd.Decoder
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		conn.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	db := &DB{conn: conn, enc: enc, dec: dec}
	if err := db.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.dec.Close()
	if err := db.enc.Close(); err != nil {
		db.conn.Close()
		return err
	}
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		factions INTEGER NOT NULL,
		water_threshold REAL NOT NULL,
		algorithm TEXT NOT NULL,
		starting_garrison INTEGER NOT NULL,
		terrain BLOB NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS moves (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		seq INTEGER NOT NULL,
		turn INTEGER NOT NULL,
		faction INTEGER NOT NULL,
		pass INTEGER NOT NULL,
		from_x INTEGER NOT NULL,
		from_y INTEGER NOT NULL,
		to_x INTEGER NOT NULL,
		to_y INTEGER NOT NULL,
		UNIQUE (session_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_moves_session ON moves(session_id, seq);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type sessionRow struct {
	ID               string  `db:"id"`
	Seed             int64   `db:"seed"`
	Width            int     `db:"width"`
	Height           int     `db:"height"`
	Factions         int     `db:"factions"`
	WaterThreshold   float64 `db:"water_threshold"`
	Algorithm        string  `db:"algorithm"`
	StartingGarrison int     `db:"starting_garrison"`
	Terrain          []byte  `db:"terrain"`
	CreatedAt        string  `db:"created_at"`
}

func (r sessionRow) genConfig() world.GenConfig {
	return world.GenConfig{
		Width:            r.Width,
		Height:           r.Height,
		Seed:             r.Seed,
		Factions:         r.Factions,
		WaterThreshold:   r.WaterThreshold,
		Algorithm:        world.Algorithm(r.Algorithm),
		StartingGarrison: r.StartingGarrison,
	}
}

type moveRow struct {
	Seq     int  `db:"seq"`
	Turn    int  `db:"turn"`
	Faction int  `db:"faction"`
	Pass    bool `db:"pass"`
	FromX   int  `db:"from_x"`
	FromY   int  `db:"from_y"`
	ToX     int  `db:"to_x"`
	ToY     int  `db:"to_y"`
}

// RecordSession stores the session's generation parameters and its current board.
// Call it before any move is applied so the board is the opening position.
func (db *DB) RecordSession(s *engine.Session) error {
	raw, err := s.Map().MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	blob := db.enc.EncodeAll(raw, nil)

	cfg := s.Config()
	_, err = db.conn.Exec(`INSERT INTO sessions
		(id, seed, width, height, factions, water_threshold, algorithm, starting_garrison, terrain, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID().String(), cfg.Seed, cfg.Width, cfg.Height, cfg.Factions,
		cfg.WaterThreshold, string(cfg.Algorithm), cfg.StartingGarrison,
		blob, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", s.ID(), err)
	}

	slog.Info("session journaled", "session", s.ID(), "board_bytes", len(raw), "stored_bytes", len(blob))
	return nil
}

// RecordMove appends one action to a session's log.
func (db *DB) RecordMove(id uuid.UUID, rec engine.MoveRecord) error {
	pass := 0
	if rec.Pass {
		pass = 1
	}
	_, err := db.conn.Exec(`INSERT INTO moves
		(session_id, seq, turn, faction, pass, from_x, from_y, to_x, to_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), rec.Seq, rec.Turn, int(rec.Faction), pass,
		rec.Move.From.X, rec.Move.From.Y, rec.Move.To.X, rec.Move.To.Y,
	)
	if err != nil {
		return fmt.Errorf("insert move %d: %w", rec.Seq, err)
	}
	return nil
}

func (db *DB) session(id uuid.UUID) (sessionRow, error) {
	var row sessionRow
	err := db.conn.Get(&row, "SELECT * FROM sessions WHERE id = ?", id.String())
	if err != nil {
		return row, fmt.Errorf("load session %s: %w", id, err)
	}
	return row, nil
}

// SessionConfig returns the parameters a session was generated from.
func (db *DB) SessionConfig(id uuid.UUID) (world.GenConfig, error) {
	row, err := db.session(id)
	if err != nil {
		return world.GenConfig{}, err
	}
	return row.genConfig(), nil
}

// Terrain returns the opening board stored for a session.
func (db *DB) Terrain(id uuid.UUID) (*world.Map, error) {
	row, err := db.session(id)
	if err != nil {
		return nil, err
	}
	raw, err := db.dec.DecodeAll(row.Terrain, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress board %s: %w", id, err)
	}
	m := &world.Map{}
	if err := m.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("decode board %s: %w", id, err)
	}
	return m, nil
}

// Moves returns a session's actions in sequence order.
func (db *DB) Moves(id uuid.UUID) ([]engine.MoveRecord, error) {
	var rows []moveRow
	err := db.conn.Select(&rows,
		"SELECT seq, turn, faction, pass, from_x, from_y, to_x, to_y FROM moves WHERE session_id = ? ORDER BY seq",
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("load moves %s: %w", id, err)
	}

	records := make([]engine.MoveRecord, len(rows))
	for i, r := range rows {
		records[i] = engine.MoveRecord{
			Seq:     r.Seq,
			Turn:    r.Turn,
			Faction: world.FactionID(r.Faction),
			Pass:    r.Pass,
		}
		if !r.Pass {
			records[i].Move = world.Move{
				From: world.Coord{X: r.FromX, Y: r.FromY},
				To:   world.Coord{X: r.ToX, Y: r.ToY},
			}
		}
	}
	return records, nil
}

// CheckTerrain regenerates a session's board from its parameters and compares
// it with the stored opening board.
func (db *DB) CheckTerrain(id uuid.UUID) error {
	cfg, err := db.SessionConfig(id)
	if err != nil {
		return err
	}
	stored, err := db.Terrain(id)
	if err != nil {
		return err
	}
	fresh, err := world.Generate(cfg)
	if err != nil {
		return fmt.Errorf("regenerate %s: %w", id, err)
	}
	if !fresh.Equal(stored) {
		return fmt.Errorf("session %s: %w", id, ErrTerrainMismatch)
	}
	return nil
}

// Replay rebuilds a session from the journal. The result has a new session id.
func (db *DB) Replay(id uuid.UUID) (*engine.Session, error) {
	cfg, err := db.SessionConfig(id)
	if err != nil {
		return nil, err
	}
	records, err := db.Moves(id)
	if err != nil {
		return nil, err
	}
	s, err := engine.Replay(cfg, records)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", id, err)
	}
	slog.Info("session replayed", "from", id, "session", s.ID(), "actions", len(records))
	return s, nil
}
