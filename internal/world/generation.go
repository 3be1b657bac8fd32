// World generation: a seeded height map (diamond-square by default, layered
// simplex noise as an alternative) cropped to the board, thresholded into
// land and water, then four capitals stamped onto the corners.
package world

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// ErrInvalidConfig is wrapped by every GenConfig validation failure.
var ErrInvalidConfig = errors.New("invalid generation config")

// Algorithm selects how the height map is produced.
type Algorithm string

const (
	AlgorithmDiamondSquare Algorithm = "diamond-square"
	AlgorithmSimplex       Algorithm = "simplex"
)

// Board limits. Capital neighbourhoods on opposite corners must not overlap,
// and the height map is a square grid sized to the longer side.
const (
	MinBoardSize = 6
	MaxBoardSize = 1024
	MaxFactions  = 4
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width            int
	Height           int
	Seed             int64
	Factions         int
	WaterThreshold   float64   // Heights below this become water
	Algorithm        Algorithm // Empty means diamond-square
	StartingGarrison int       // Unit count placed on each playable capital; 0 = none
}

// DefaultGenConfig returns the standard 20x11 four-player board.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:            20,
		Height:           11,
		Seed:             0,
		Factions:         4,
		WaterThreshold:   0.45,
		Algorithm:        AlgorithmDiamondSquare,
		StartingGarrison: 10,
	}
}

// Validate reports the first invalid parameter.
func (cfg GenConfig) Validate() error {
	switch {
	case cfg.Width < MinBoardSize || cfg.Height < MinBoardSize:
		return fmt.Errorf("%w: board %dx%d smaller than %d", ErrInvalidConfig, cfg.Width, cfg.Height, MinBoardSize)
	case cfg.Width > MaxBoardSize || cfg.Height > MaxBoardSize:
		return fmt.Errorf("%w: board %dx%d larger than %d", ErrInvalidConfig, cfg.Width, cfg.Height, MaxBoardSize)
	case cfg.Factions < 1 || cfg.Factions > MaxFactions:
		return fmt.Errorf("%w: %d factions, want 1..%d", ErrInvalidConfig, cfg.Factions, MaxFactions)
	case cfg.WaterThreshold <= 0 || cfg.WaterThreshold >= 1:
		return fmt.Errorf("%w: water threshold %v outside (0,1)", ErrInvalidConfig, cfg.WaterThreshold)
	case cfg.StartingGarrison < 0 || cfg.StartingGarrison > MaxUnitsPerTile:
		return fmt.Errorf("%w: starting garrison %d outside 0..%d", ErrInvalidConfig, cfg.StartingGarrison, MaxUnitsPerTile)
	}
	switch cfg.Algorithm {
	case "", AlgorithmDiamondSquare, AlgorithmSimplex:
	default:
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, cfg.Algorithm)
	}
	return nil
}

// Capitals returns the capital positions in faction order.
func (cfg GenConfig) Capitals() [MaxFactions]Coord {
	return [MaxFactions]Coord{
		{1, 1},
		{1, cfg.Height - 2},
		{cfg.Width - 2, 1},
		{cfg.Width - 2, cfg.Height - 2},
	}
}

// Generate creates a complete board. The same config always yields the same board.
func Generate(cfg GenConfig) (*Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var heights func(x, y int) float64
	switch cfg.Algorithm {
	case AlgorithmSimplex:
		heights = simplexHeights(cfg.Seed)
	default:
		heights = diamondSquare(cfg.Width, cfg.Height, cfg.WaterThreshold, cfg.Seed)
	}

	m := NewMap(cfg.Width, cfg.Height)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			terrain := TerrainLand
			if heights(x, y) < cfg.WaterThreshold {
				terrain = TerrainWater
			}
			m.update(Coord{x, y}, func(t *Tile) { t.Terrain = terrain })
		}
	}

	placeCapitals(m, cfg)
	return m, nil
}

// diamondSquare builds a square height map of side 2^k+1 covering the board
// and returns a lookup into it.
func diamondSquare(width, height int, threshold float64, seed int64) func(x, y int) float64 {
	rng := rand.New(rand.NewSource(seed))

	k := 0
	for 1<<k+1 < max(width, height) {
		k++
	}
	size := 1<<k + 1
	last := size - 1
	h := make([]float64, size*size)
	at := func(x, y int) float64 { return h[y*size+x] }
	set := func(x, y int, v float64) { h[y*size+x] = v }

	for _, c := range [4]Coord{{0, 0}, {0, last}, {last, 0}, {last, last}} {
		set(c.X, c.Y, threshold+rng.Float64()/3)
	}

	for level := 1; level <= k; level++ {
		step := last >> (level - 1)
		half := step / 2
		scale := 1 / math.Pow(1.1, float64(level+1))
		jitter := func() float64 { return (rng.Float64() - 0.5) * scale }

		// Centres.
		for y := 0; y < last; y += step {
			for x := 0; x < last; x += step {
				avg := (at(x, y) + at(x+step, y) + at(x, y+step) + at(x+step, y+step)) / 4
				if level == 1 {
					// The first centre leans towards water so land gathers at the corners.
					set(x+half, y+half, avg+rng.Float64()*0.3-0.75)
				} else {
					set(x+half, y+half, avg+jitter())
				}
			}
		}

		// Edge midpoints. Shared edges are written once, by the square above or to the right of them.
		for y := 0; y < last; y += step {
			for x := 0; x < last; x += step {
				centre := at(x+half, y+half)
				set(x+half, y, (centre+at(x, y)+at(x+step, y))/3+jitter())
				set(x, y+half, (centre+at(x, y)+at(x, y+step))/3+jitter())
				if x+step == last {
					set(last, y+half, (centre+at(last, y)+at(last, y+step))/3+jitter())
				}
				if y+step == last {
					set(x+half, last, (centre+at(x, last)+at(x+step, last))/3+jitter())
				}
			}
		}
	}

	return at
}

// simplexHeights samples layered simplex noise over the hex layout.
func simplexHeights(seed int64) func(x, y int) float64 {
	noise := opensimplex.NewNormalized(seed)
	return func(x, y int) float64 {
		// Odd columns sit half a row higher; columns are sqrt(3)/2 apart.
		px := float64(x) * math.Sqrt(3.0) / 2.0
		py := float64(y)
		if x%2 != 0 {
			py += 0.5
		}
		return octaveNoise(noise, px, py, 4, 0.12, 0.5)
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// placeCapitals stamps the four corner capitals and their land rings.
// Capitals beyond the faction count stay unclaimed.
func placeCapitals(m *Map, cfg GenConfig) {
	for i, c := range cfg.Capitals() {
		owner := Unclaimed()
		if i < cfg.Factions {
			owner = OwnedBy(FactionID(i))
		}

		for _, n := range m.Neighbors(c) {
			m.update(n, func(t *Tile) {
				t.Terrain = TerrainLand
				t.Owner = owner
			})
		}

		m.update(c, func(t *Tile) {
			t.Terrain = TerrainCapital
			t.Owner = owner
			if id, ok := owner.Faction(); ok && cfg.StartingGarrison > 0 {
				t.Unit = Present(Unit{Count: cfg.StartingGarrison, Morale: MaxMorale, Faction: id})
			}
		})
	}
}
