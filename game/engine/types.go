package engine

// CellState represents the visible state of a single board cell
type CellState string

const (
	CellEmpty CellState = "empty"
	CellShip  CellState = "ship"
	CellHit   CellState = "hit"
	CellMiss  CellState = "miss"
	CellSunk  CellState = "sunk"

	// Validation constants
	MinBoardSize    = 5
	MaxBoardSize    = 26
	MaxPlacementTry = 200
	TeamSize        = 2
	RosterSize      = 4
	EventBufferSize = 64
)

// Outcome is the result of applying a shot to one cell
type Outcome string

const (
	OutcomeMiss        Outcome = "miss"
	OutcomeHit         Outcome = "hit"
	OutcomeSunk        Outcome = "sunk"
	OutcomeAlreadyShot Outcome = "already_shot"
)

// TeamID identifies one of the two teams in a session
type TeamID string

const (
	TeamA TeamID = "A"
	TeamB TeamID = "B"
)

// Label returns the display name used at the serialization boundary.
func (t TeamID) Label() string {
	switch t {
	case TeamA:
		return "Team A"
	case TeamB:
		return "Team B"
	}
	return ""
}

// Opposite returns the other team.
func (t TeamID) Opposite() TeamID {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// Phase represents the lifecycle stage of a battle session
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseBattle   Phase = "battle"
	PhaseFinished Phase = "finished"
)

// Coordinate is a row/column pair on a board
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the coordinate lies on a size×size board.
func (c Coordinate) InBounds(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// Ship is a placed vessel: an identity, its occupied cells, and the
// number of cells already hit.
type Ship struct {
	ID    string       `json:"id"`
	Cells []Coordinate `json:"cells"`
	Hits  int          `json:"hits"`
}

// Length returns the number of cells the ship occupies.
func (s *Ship) Length() int {
	return len(s.Cells)
}

// Sunk reports whether every cell of the ship has been hit.
func (s *Ship) Sunk() bool {
	return s.Hits >= len(s.Cells) && len(s.Cells) > 0
}

// PerCellResult records the outcome of one coordinate of a shot pattern
type PerCellResult struct {
	Coord   Coordinate `json:"coord"`
	Outcome Outcome    `json:"outcome"`
}

// EventType classifies session events delivered to the transport layer
type EventType string

const (
	EventTurnChanged EventType = "turn_changed"
	EventGameOver    EventType = "game_over"
)

// Event is an engine notification emitted on a session's outbound channel.
// The transport layer subscribes via Session.Events and performs delivery;
// the engine never holds a connection handle.
type Event struct {
	Type    EventType       `json:"type"`
	Holder  string          `json:"holder,omitempty"`
	Winner  TeamID          `json:"winner,omitempty"`
	Results []PerCellResult `json:"results,omitempty"`
}
