// Package config loads session settings from a YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hexwar/internal/world"
)

// Config is the top-level hexwar.yaml document.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Generation GenerationConfig `yaml:"generation"`
	Journal    JournalConfig    `yaml:"journal"`
	Log        LogConfig        `yaml:"log"`
}

// WorldConfig sets the board size, seed and number of playing factions.
type WorldConfig struct {
	Width    int   `yaml:"width"`
	Height   int   `yaml:"height"`
	Seed     int64 `yaml:"seed"`
	Factions int   `yaml:"factions"`
}

// GenerationConfig tunes the terrain generator.
type GenerationConfig struct {
	WaterThreshold   float64         `yaml:"water_threshold"`
	Algorithm        world.Algorithm `yaml:"algorithm"`
	StartingGarrison int             `yaml:"starting_garrison"`
}

// JournalConfig locates the SQLite match journal.
type JournalConfig struct {
	Path string `yaml:"path"` // Empty disables the journal
}

// LogConfig sets the slog level.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the standard four-player setup.
func Default() Config {
	gen := world.DefaultGenConfig()
	return Config{
		World: WorldConfig{
			Width:    gen.Width,
			Height:   gen.Height,
			Seed:     gen.Seed,
			Factions: gen.Factions,
		},
		Generation: GenerationConfig{
			WaterThreshold:   gen.WaterThreshold,
			Algorithm:        gen.Algorithm,
			StartingGarrison: gen.StartingGarrison,
		},
		Journal: JournalConfig{Path: "data/hexwar.db"},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// GenConfig returns the world generation parameters.
func (c Config) GenConfig() world.GenConfig {
	return world.GenConfig{
		Width:            c.World.Width,
		Height:           c.World.Height,
		Seed:             c.World.Seed,
		Factions:         c.World.Factions,
		WaterThreshold:   c.Generation.WaterThreshold,
		Algorithm:        c.Generation.Algorithm,
		StartingGarrison: c.Generation.StartingGarrison,
	}
}

// Validate checks the world settings and the log level.
func (c Config) Validate() error {
	if err := c.GenConfig().Validate(); err != nil {
		return err
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured level. Empty means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(l.Level) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	return lvl, nil
}
