package engine

import (
	"fmt"
	"strings"
)

// Catalog maps shot pattern names to the offsets they cover around an
// anchor coordinate. Lookups are case-insensitive.
type Catalog struct {
	patterns map[string][]Coordinate
}

// NewCatalog creates an empty shot catalog.
func NewCatalog() *Catalog {
	return &Catalog{patterns: make(map[string][]Coordinate)}
}

// DefaultCatalog returns the built-in shot patterns:
//
//	light   – the anchor cell only
//	heavy   – the anchor plus its four orthogonal neighbors
//	barrage – a horizontal three-cell line anchored at the left cell
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.Register("light", []Coordinate{{0, 0}})
	c.Register("heavy", []Coordinate{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}})
	c.Register("barrage", []Coordinate{{0, 0}, {0, 1}, {0, 2}})
	return c
}

// Register adds or replaces a named pattern. Offsets are row/col deltas
// relative to the anchor; their order is the order shots are applied in.
func (c *Catalog) Register(name string, offsets []Coordinate) {
	c.patterns[strings.ToLower(name)] = offsets
}

// Names returns the registered pattern names.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.patterns))
	for name := range c.patterns {
		names = append(names, name)
	}
	return names
}

// Resolve maps a pattern name and anchor to the ordered target coordinates
// on a size×size board. The anchor must be on the board; pattern cells that
// fall off the edge are dropped, preserving the remaining order.
func (c *Catalog) Resolve(name string, anchor Coordinate, size int) ([]Coordinate, error) {
	offsets, ok := c.patterns[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShotType, name)
	}
	if !anchor.InBounds(size) {
		return nil, fmt.Errorf("%w: anchor (%d,%d)", ErrOutOfBounds, anchor.Row, anchor.Col)
	}

	coords := make([]Coordinate, 0, len(offsets))
	for _, off := range offsets {
		target := Coordinate{Row: anchor.Row + off.Row, Col: anchor.Col + off.Col}
		if target.InBounds(size) {
			coords = append(coords, target)
		}
	}
	return coords, nil
}
