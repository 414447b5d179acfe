package main

import "testing"

func emptyBoard(size int) [][]string {
	board := make([][]string, size)
	for r := range board {
		board[r] = make([]string, size)
		for c := range board[r] {
			board[r][c] = "empty"
		}
	}
	return board
}

func TestHuntStrategy_ChecksNeighborsOfHit(t *testing.T) {
	board := emptyBoard(10)
	board[5][5] = "hit"

	s := NewHuntStrategy()
	row, col, shot := s.NextShot(board)

	if shot != "light" {
		t.Errorf("shot = %q, want light in target mode", shot)
	}
	dr, dc := row-5, col-5
	if dr*dr+dc*dc != 1 {
		t.Errorf("target (%d,%d) is not adjacent to the hit at (5,5)", row, col)
	}
}

func TestHuntStrategy_IgnoresSunkCells(t *testing.T) {
	board := emptyBoard(10)
	board[5][5] = "sunk"

	s := NewHuntStrategy()
	_, _, shot := s.NextShot(board)

	if shot != "heavy" {
		t.Errorf("shot = %q, want heavy when no wounded ship remains", shot)
	}
}

func TestHuntStrategy_NoRepeats(t *testing.T) {
	board := emptyBoard(5)

	s := NewHuntStrategy()
	seen := make(map[[2]int]bool)
	for i := 0; i < 25; i++ {
		row, col, _ := s.NextShot(board)
		key := [2]int{row, col}
		if seen[key] {
			t.Fatalf("anchor (%d,%d) repeated on shot %d", row, col, i)
		}
		seen[key] = true

		// Mark the anchor resolved so only the strategy's own memory
		// prevents repeats elsewhere
		board[row][col] = "miss"
	}
}

func TestHuntStrategy_ExhaustedBoardFallsBack(t *testing.T) {
	board := emptyBoard(5)
	for r := range board {
		for c := range board[r] {
			board[r][c] = "miss"
		}
	}

	s := NewHuntStrategy()
	row, col, shot := s.NextShot(board)
	if row != 0 || col != 0 || shot != "light" {
		t.Errorf("exhausted board: got (%d,%d,%s), want (0,0,light)", row, col, shot)
	}
}
