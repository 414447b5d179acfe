package engine

import "errors"

var (
	ErrInvalidPlacement = errors.New("invalid ship placement")
	ErrUnknownShotType  = errors.New("unknown shot type")
	ErrOutOfBounds      = errors.New("coordinate out of bounds")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotInBattle      = errors.New("session is not in battle phase")
	ErrIncompleteRoster = errors.New("both teams need two players")
	ErrAlreadyStarted   = errors.New("battle already started")
	ErrUnknownPlayer    = errors.New("player is not part of this session")
	ErrInvalidBoardSize = errors.New("board size out of range")
)
