// Command hexwar generates a hex-grid war board, plays a scripted match on it,
// and journals every action so the match can be replayed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/hexwar/internal/config"
	"github.com/talgya/hexwar/internal/engine"
	"github.com/talgya/hexwar/internal/entropy"
	"github.com/talgya/hexwar/internal/persistence"
	"github.com/talgya/hexwar/internal/world"
)

func main() {
	configPath := flag.String("config", "hexwar.yaml", "YAML config file; missing file means defaults")
	seed := flag.Int64("seed", 0, "override the world seed")
	randomSeed := flag.Bool("random-seed", false, "pick a fresh world seed")
	movesPath := flag.String("moves", "", "move script to play, one action per line")
	replayID := flag.String("replay", "", "rebuild a journaled session by id instead of starting a new one")
	noJournal := flag.Bool("no-journal", false, "do not record the session")
	flag.Parse()

	if err := checkFlags(*movesPath, *replayID); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// ── Config ────────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.World.Seed = *seed
		}
	})
	if *noJournal {
		cfg.Journal.Path = ""
	}

	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if *randomSeed {
		rng := entropy.NewClient(os.Getenv("RANDOM_ORG_API_KEY"))
		cfg.World.Seed = rng.Seed()
		slog.Info("world seed picked", "seed", cfg.World.Seed, "random_org", rng.Enabled())
	}

	// ── Journal ───────────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.Journal.Path != "" {
		if dir := filepath.Dir(cfg.Journal.Path); dir != "." {
			os.MkdirAll(dir, 0755)
		}
		db, err = persistence.Open(cfg.Journal.Path)
		if err != nil {
			slog.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("journal opened", "path", cfg.Journal.Path)
	}

	// ── Session ───────────────────────────────────────────────────────
	var session *engine.Session
	if *replayID != "" {
		session, err = replay(db, *replayID)
	} else {
		session, err = start(db, cfg.GenConfig())
	}
	if err != nil {
		slog.Error("session failed", "error", err)
		os.Exit(1)
	}

	// ── Script ────────────────────────────────────────────────────────
	if *movesPath != "" {
		if err := play(session, *movesPath); err != nil {
			slog.Error("move script failed", "error", err)
			os.Exit(1)
		}
	}

	report(session)
}

// start generates a new session and hooks it up to the journal.
func start(db *persistence.DB, gen world.GenConfig) (*engine.Session, error) {
	session, err := engine.New(gen)
	if err != nil {
		return nil, err
	}
	logTurns(session)
	if db == nil {
		return session, nil
	}

	if err := db.RecordSession(session); err != nil {
		return nil, err
	}
	session.OnMove = func(rec engine.MoveRecord) {
		if err := db.RecordMove(session.ID(), rec); err != nil {
			slog.Error("journal write failed", "seq", rec.Seq, "error", err)
		}
	}
	return session, nil
}

// checkFlags rejects flag combinations main cannot honor. A replayed session
// is not journaled, so scripted moves on top of it would be lost.
func checkFlags(movesPath, replayID string) error {
	if movesPath != "" && replayID != "" {
		return errors.New("-moves cannot be combined with -replay")
	}
	return nil
}

func logTurns(session *engine.Session) {
	session.OnTurn = func(prev, next engine.TurnState) {
		if next.Turn != prev.Turn {
			slog.Info("turn started", "turn", humanize.Ordinal(next.Turn))
		}
	}
}

func replay(db *persistence.DB, raw string) (*engine.Session, error) {
	if db == nil {
		return nil, errors.New("replay needs a journal")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	if err := db.CheckTerrain(id); err != nil {
		slog.Warn("stored board does not match regenerated board", "error", err)
	}
	session, err := db.Replay(id)
	if err != nil {
		return nil, err
	}
	logTurns(session)
	return session, nil
}

func play(session *engine.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	actions, err := parseScript(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for _, a := range actions {
		if a.pass {
			session.EndTurn()
			continue
		}
		if _, err := session.ApplyMove(a.move); err != nil {
			if errors.Is(err, engine.ErrIllegalMove) {
				slog.Warn("move rejected", "line", a.line, "reason", err)
				continue
			}
			return fmt.Errorf("%s:%d: %w", path, a.line, err)
		}
	}
	slog.Info("script played", "actions", humanize.Comma(int64(len(actions))), "applied", session.Seq())
	return nil
}

func report(session *engine.Session) {
	board := session.Map()
	fmt.Println(world.Render(board))

	counts := world.TerrainCounts(board)
	for _, t := range world.Terrains {
		slog.Info("terrain", "type", t, "count", humanize.Comma(int64(counts[t])))
	}

	for _, f := range session.Factions() {
		terr := world.Territory(board, f.ID)
		attrs := []any{
			"faction", f.Name,
			"owned", terr.Owned(),
			"cut_off", len(terr.Cutoff),
		}
		if terr.Capital != nil {
			reach := session.Reachable(*terr.Capital, world.UnitSpeed)
			attrs = append(attrs, "capital", terr.Capital.String(), "reachable", len(reach))
		}
		slog.Info("faction", attrs...)
	}

	slog.Info("session state",
		"session", session.ID(),
		"turn", humanize.Ordinal(session.Turn()),
		"to_move", session.CurrentFaction().Name,
		"moves_left", session.MovesRemaining(),
		"border_edges", len(world.Borders(board)),
	)
}
