package engine

import (
	"fmt"
	"math/rand"
)

// Board holds one team's grid: ship placements plus the shot history.
// A board belongs to exactly one Team and is only reached through it.
type Board struct {
	size   int
	cells  [][]CellState
	ships  []*Ship
	shipAt map[Coordinate]*Ship
}

// NewBoard creates an empty size×size board.
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}

	cells := make([][]CellState, size)
	for i := range cells {
		cells[i] = make([]CellState, size)
		for j := range cells[i] {
			cells[i][j] = CellEmpty
		}
	}

	return &Board{
		size:   size,
		cells:  cells,
		shipAt: make(map[Coordinate]*Ship),
	}, nil
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

// Ships returns the placed ships.
func (b *Board) Ships() []*Ship {
	return b.ships
}

// Place seeds the grid with the given ships. It fails with
// ErrInvalidPlacement if any ship overlaps another or falls outside the
// board; on failure the board is left unchanged.
func (b *Board) Place(ships []*Ship) error {
	seen := make(map[Coordinate]string, len(ships)*4)
	for _, ship := range ships {
		if len(ship.Cells) == 0 {
			return fmt.Errorf("%w: ship %s has no cells", ErrInvalidPlacement, ship.ID)
		}
		for _, c := range ship.Cells {
			if !c.InBounds(b.size) {
				return fmt.Errorf("%w: ship %s at (%d,%d)", ErrInvalidPlacement, ship.ID, c.Row, c.Col)
			}
			if other, ok := seen[c]; ok {
				return fmt.Errorf("%w: ships %s and %s overlap at (%d,%d)", ErrInvalidPlacement, other, ship.ID, c.Row, c.Col)
			}
			if _, ok := b.shipAt[c]; ok {
				return fmt.Errorf("%w: cell (%d,%d) already occupied", ErrInvalidPlacement, c.Row, c.Col)
			}
			seen[c] = ship.ID
		}
	}

	for _, ship := range ships {
		for _, c := range ship.Cells {
			b.cells[c.Row][c.Col] = CellShip
			b.shipAt[c] = ship
		}
		b.ships = append(b.ships, ship)
	}
	return nil
}

// ApplyShot resolves a single coordinate against the board.
//
// A cell that was already resolved returns OutcomeAlreadyShot without any
// mutation, so re-shooting is a no-op. An empty cell becomes a miss. A ship
// cell becomes a hit; when the hit completes the ship, every cell of that
// ship is marked sunk and OutcomeSunk is returned.
func (b *Board) ApplyShot(c Coordinate) (Outcome, error) {
	if !c.InBounds(b.size) {
		return "", fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, c.Row, c.Col)
	}

	switch b.cells[c.Row][c.Col] {
	case CellHit, CellMiss, CellSunk:
		return OutcomeAlreadyShot, nil
	case CellEmpty:
		b.cells[c.Row][c.Col] = CellMiss
		return OutcomeMiss, nil
	}

	ship := b.shipAt[c]
	ship.Hits++
	b.cells[c.Row][c.Col] = CellHit

	if ship.Sunk() {
		for _, sc := range ship.Cells {
			b.cells[sc.Row][sc.Col] = CellSunk
		}
		return OutcomeSunk, nil
	}
	return OutcomeHit, nil
}

// IsFullySunk reports whether every ship on the board is sunk.
func (b *Board) IsFullySunk() bool {
	if len(b.ships) == 0 {
		return false
	}
	for _, ship := range b.ships {
		if !ship.Sunk() {
			return false
		}
	}
	return true
}

// View returns a snapshot of the grid. When masked is true, un-hit ship
// cells are rendered as empty so the opposing team never learns ship
// positions from an exported view.
func (b *Board) View(masked bool) [][]CellState {
	out := make([][]CellState, b.size)
	for i := range out {
		out[i] = make([]CellState, b.size)
		for j, st := range b.cells[i] {
			if masked && st == CellShip {
				st = CellEmpty
			}
			out[i][j] = st
		}
	}
	return out
}

// RandomPlacement builds a non-overlapping random fleet of straight ships
// with the given lengths. It retries failed placements up to
// MaxPlacementTry times per ship before giving up with ErrInvalidPlacement.
func RandomPlacement(r *rand.Rand, size int, lengths []int) ([]*Ship, error) {
	occupied := make(map[Coordinate]bool)
	ships := make([]*Ship, 0, len(lengths))

	for i, length := range lengths {
		if length < 1 || length > size {
			return nil, fmt.Errorf("%w: ship length %d on %d×%d board", ErrInvalidPlacement, length, size, size)
		}

		placed := false
		for try := 0; try < MaxPlacementTry && !placed; try++ {
			horizontal := r.Intn(2) == 0
			row, col := r.Intn(size), r.Intn(size)

			cells := make([]Coordinate, 0, length)
			for k := 0; k < length; k++ {
				c := Coordinate{Row: row, Col: col + k}
				if !horizontal {
					c = Coordinate{Row: row + k, Col: col}
				}
				cells = append(cells, c)
			}

			ok := true
			for _, c := range cells {
				if !c.InBounds(size) || occupied[c] {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}

			for _, c := range cells {
				occupied[c] = true
			}
			ships = append(ships, &Ship{
				ID:    fmt.Sprintf("ship-%d", i+1),
				Cells: cells,
			})
			placed = true
		}
		if !placed {
			return nil, fmt.Errorf("%w: could not fit ship of length %d", ErrInvalidPlacement, length)
		}
	}

	return ships, nil
}
