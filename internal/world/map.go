package world

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// Map holds the complete tile grid. Tiles are stored by value in row-major
// order, so copying the slice copies the board.
type Map struct {
	Bounds
	tiles []Tile
}

// NewMap creates a board of the given size filled with unclaimed Land.
func NewMap(width, height int) *Map {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Map{
		Bounds: Bounds{Width: width, Height: height},
		tiles:  make([]Tile, width*height),
	}
}

func (m *Map) index(c Coord) int {
	return c.Y*m.Width + c.X
}

// Get returns the tile at c and whether c is on the board.
func (m *Map) Get(c Coord) (Tile, bool) {
	if !m.Contains(c) {
		return Tile{}, false
	}
	return m.tiles[m.index(c)], true
}

// Set replaces the tile at c.
func (m *Map) Set(c Coord, t Tile) error {
	if !m.Contains(c) {
		return fmt.Errorf("set %v: %w", c, ErrOutOfBounds)
	}
	m.tiles[m.index(c)] = t
	return nil
}

// Update applies fn to the tile at c in place.
func (m *Map) Update(c Coord, fn func(t *Tile)) error {
	if !m.Contains(c) {
		return fmt.Errorf("update %v: %w", c, ErrOutOfBounds)
	}
	m.update(c, fn)
	return nil
}

// update is Update without the bounds check. c must be on the board.
func (m *Map) update(c Coord, fn func(t *Tile)) {
	fn(&m.tiles[m.index(c)])
}

// UpdateAll applies fn to every tile in place, bottom row first.
func (m *Map) UpdateAll(fn func(c Coord, t *Tile)) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := Coord{x, y}
			fn(c, &m.tiles[m.index(c)])
		}
	}
}

// Each calls fn for every tile, bottom row first.
func (m *Map) Each(fn func(c Coord, t Tile)) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := Coord{x, y}
			fn(c, m.tiles[m.index(c)])
		}
	}
}

// TileCount returns the total number of tiles on the board.
func (m *Map) TileCount() int {
	return len(m.tiles)
}

// Clone returns an independent copy of the board.
func (m *Map) Clone() *Map {
	tiles := make([]Tile, len(m.tiles))
	copy(tiles, m.tiles)
	return &Map{Bounds: m.Bounds, tiles: tiles}
}

// Equal reports whether two boards hold identical tiles.
func (m *Map) Equal(o *Map) bool {
	if m.Bounds != o.Bounds {
		return false
	}
	for i := range m.tiles {
		if m.tiles[i] != o.tiles[i] {
			return false
		}
	}
	return true
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, tiles=%d)", m.Width, m.Height, m.TileCount())
}

// Binary layout: width and height as big-endian uint16, then six bytes per
// tile in row-major order: terrain, owner, unit flags, count, morale, unit faction.
const (
	tileRecordSize = 6
	unclaimedByte  = 0xFF
	flagPresent    = 1 << 0
	flagMoved      = 1 << 1
)

var errCorruptMap = errors.New("corrupt map encoding")

// MarshalBinary encodes the board. Identical boards produce identical bytes.
func (m *Map) MarshalBinary() ([]byte, error) {
	if m.Width > 0xFFFF || m.Height > 0xFFFF {
		return nil, fmt.Errorf("encode map %dx%d: too large", m.Width, m.Height)
	}
	buf := make([]byte, 4, 4+len(m.tiles)*tileRecordSize)
	binary.BigEndian.PutUint16(buf[0:], uint16(m.Width))
	binary.BigEndian.PutUint16(buf[2:], uint16(m.Height))

	for _, t := range m.tiles {
		owner := byte(unclaimedByte)
		if id, ok := t.Owner.Faction(); ok {
			if id < 0 || id >= unclaimedByte {
				return nil, fmt.Errorf("encode map: faction id %d out of range", id)
			}
			owner = byte(id)
		}
		var flags, count, morale, unitFaction byte
		if u, ok := t.Unit.Get(); ok {
			flags |= flagPresent
			if u.Moved {
				flags |= flagMoved
			}
			count = byte(u.Count)
			morale = byte(u.Morale)
			unitFaction = byte(u.Faction)
		}
		buf = append(buf, byte(t.Terrain), owner, flags, count, morale, unitFaction)
	}
	return buf, nil
}

// UnmarshalBinary decodes a board written by MarshalBinary.
func (m *Map) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("%w: short header", errCorruptMap)
	}
	width := int(binary.BigEndian.Uint16(data[0:]))
	height := int(binary.BigEndian.Uint16(data[2:]))
	body := data[4:]
	if len(body) != width*height*tileRecordSize {
		return fmt.Errorf("%w: %d bytes for %dx%d", errCorruptMap, len(body), width, height)
	}

	tiles := make([]Tile, width*height)
	for i := range tiles {
		rec := body[i*tileRecordSize : (i+1)*tileRecordSize]
		if Terrain(rec[0]) >= numTerrains {
			return fmt.Errorf("%w: terrain %d", errCorruptMap, rec[0])
		}
		t := Tile{Terrain: Terrain(rec[0])}
		if rec[1] != unclaimedByte {
			t.Owner = OwnedBy(FactionID(rec[1]))
		}
		if rec[2]&flagPresent != 0 {
			t.Unit = Present(Unit{
				Count:   int(rec[3]),
				Morale:  int(rec[4]),
				Moved:   rec[2]&flagMoved != 0,
				Faction: FactionID(rec[5]),
			})
		}
		tiles[i] = t
	}

	m.Bounds = Bounds{Width: width, Height: height}
	m.tiles = tiles
	return nil
}

// Render draws the terrain as text, one character per tile, top row first:
// C capital, c city, H harbor, L land, blank for water.
func Render(m *Map) string {
	var sb strings.Builder
	sb.Grow((m.Width + 1) * m.Height)
	for y := m.Height - 1; y >= 0; y-- {
		for x := 0; x < m.Width; x++ {
			t, _ := m.Get(Coord{x, y})
			sb.WriteByte(terrainGlyph(t.Terrain))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func terrainGlyph(t Terrain) byte {
	switch t {
	case TerrainCapital:
		return 'C'
	case TerrainCity:
		return 'c'
	case TerrainHarbor:
		return 'H'
	case TerrainWater:
		return ' '
	case TerrainLand:
		return 'L'
	default:
		return 'X'
	}
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(m *Map) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, t := range m.tiles {
		counts[t.Terrain]++
	}
	return counts
}
