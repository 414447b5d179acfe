package engine

import (
	"fmt"
	"strings"
)

// ShipSpec describes one class of ship in a fleet configuration
type ShipSpec struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
	Count  int    `json:"count"`
}

// ShotSpec describes one named shot pattern in a fleet configuration.
// Offsets are [row, col] deltas relative to the anchor.
type ShotSpec struct {
	Name    string   `json:"name"`
	Offsets [][2]int `json:"offsets"`
}

// FleetConfig is the JSON schema for a game configuration
type FleetConfig struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	BoardSize   int        `json:"board_size"`
	Ships       []ShipSpec `json:"ships"`
	Shots       []ShotSpec `json:"shots,omitempty"`
}

// FleetLengths expands the ship specs into the flat list of ship lengths
// placed on each board.
func (c *FleetConfig) FleetLengths() []int {
	var lengths []int
	for _, spec := range c.Ships {
		count := spec.Count
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			lengths = append(lengths, spec.Length)
		}
	}
	return lengths
}

// BuildCatalog constructs the shot catalog for this configuration. With no
// shots section the default catalog applies.
func (c *FleetConfig) BuildCatalog() *Catalog {
	if len(c.Shots) == 0 {
		return DefaultCatalog()
	}
	catalog := NewCatalog()
	for _, spec := range c.Shots {
		offsets := make([]Coordinate, 0, len(spec.Offsets))
		for _, off := range spec.Offsets {
			offsets = append(offsets, Coordinate{Row: off[0], Col: off[1]})
		}
		catalog.Register(spec.Name, offsets)
	}
	return catalog
}

// ValidateFleetConfig checks a configuration for structural problems:
// board size range, ship lengths that fit, fleet density low enough for
// random placement, and well-formed shot patterns.
func ValidateFleetConfig(config *FleetConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config name is required")
	}
	if config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize {
		return fmt.Errorf("board_size must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.BoardSize)
	}
	if len(config.Ships) == 0 {
		return fmt.Errorf("at least one ship is required")
	}

	totalCells := 0
	for _, spec := range config.Ships {
		if spec.Length < 1 || spec.Length > config.BoardSize {
			return fmt.Errorf("ship %q length %d does not fit a %d×%d board", spec.Name, spec.Length, config.BoardSize, config.BoardSize)
		}
		count := spec.Count
		if count < 1 {
			count = 1
		}
		totalCells += spec.Length * count
	}

	// Random placement needs open water; cap the fleet at 40% of the board
	area := config.BoardSize * config.BoardSize
	if totalCells*10 > area*4 {
		return fmt.Errorf("fleet covers %d of %d cells, too dense for placement", totalCells, area)
	}

	seen := make(map[string]bool)
	for _, spec := range config.Shots {
		if spec.Name == "" {
			return fmt.Errorf("shot pattern without a name")
		}
		key := strings.ToLower(spec.Name)
		if seen[key] {
			return fmt.Errorf("duplicate shot pattern %q", spec.Name)
		}
		seen[key] = true
		if len(spec.Offsets) == 0 {
			return fmt.Errorf("shot %q has no offsets", spec.Name)
		}
	}

	return nil
}
