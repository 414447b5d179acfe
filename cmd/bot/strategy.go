package main

// HuntStrategy picks targets on the masked opponent board. It alternates
// between two modes: hunting with wide patterns on a checkerboard lattice,
// and finishing wounded ships with single-cell shots around confirmed hits.
type HuntStrategy struct {
	fired map[[2]int]bool
}

func NewHuntStrategy() *HuntStrategy {
	return &HuntStrategy{fired: make(map[[2]int]bool)}
}

// NextShot returns the anchor coordinate and shot pattern to fire next.
// The board uses the server's masked cell states: "empty" is unknown water,
// "hit"/"miss"/"sunk" are resolved cells.
func (s *HuntStrategy) NextShot(board [][]string) (row, col int, shot string) {
	if len(board) == 0 {
		return 0, 0, "light"
	}
	size := len(board)

	// Target mode: un-sunk hits mean a wounded ship nearby
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if board[r][c] != "hit" {
				continue
			}
			for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				nr, nc := r+d[0], c+d[1]
				if nr < 0 || nr >= size || nc < 0 || nc >= size {
					continue
				}
				if board[nr][nc] == "empty" && !s.fired[[2]int{nr, nc}] {
					s.fired[[2]int{nr, nc}] = true
					return nr, nc, "light"
				}
			}
		}
	}

	// Hunt mode: checkerboard sweep with the wide pattern. The heavy
	// cross covers the skipped parity cells.
	for r := 0; r < size; r++ {
		for c := r % 2; c < size; c += 2 {
			if board[r][c] == "empty" && !s.fired[[2]int{r, c}] {
				s.fired[[2]int{r, c}] = true
				return r, c, "heavy"
			}
		}
	}

	// Mop up anything the lattice missed
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if board[r][c] == "empty" && !s.fired[[2]int{r, c}] {
				s.fired[[2]int{r, c}] = true
				return r, c, "light"
			}
		}
	}

	// Board exhausted; repeat shots are idempotent
	return 0, 0, "light"
}
