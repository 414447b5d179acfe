package service

import (
	"time"

	"github.com/broadsidehq/broadside/game/engine"
)

// PlayerInfo describes one participant in API responses
type PlayerInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Team          string `json:"team,omitempty"`
	Leader        bool   `json:"leader"`
	ReadyBattle   bool   `json:"ready_battle"`
	ReadyStrategy bool   `json:"ready_strategy"`
}

// RoomInfo provides full information about a room
type RoomInfo struct {
	ID         string        `json:"id"`
	Code       string        `json:"code"`
	Name       string        `json:"name"`
	Phase      engine.Phase  `json:"phase"`
	Players    []*PlayerInfo `json:"players"`
	TurnHolder string        `json:"turn_holder,omitempty"`
	Winner     string        `json:"winner,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	BoardSize  int           `json:"board_size"`
	ConfigName string        `json:"config_name"`
}

// RoomSummary is the listing entry for room discovery
type RoomSummary struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	PlayerCount int          `json:"player_count"`
	Phase       engine.Phase `json:"phase"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CellResult is the serialized per-cell outcome of a shot
type CellResult struct {
	Row     int            `json:"row"`
	Col     int            `json:"col"`
	Outcome engine.Outcome `json:"outcome"`
}

// ShotResult contains the result of a shoot operation
type ShotResult struct {
	Results    []CellResult `json:"results"`
	Finished   bool         `json:"finished"`
	Winner     string       `json:"winner,omitempty"`
	NextHolder string       `json:"next_holder,omitempty"`
	RoomID     string       `json:"room_id"`
}

// ViewInfo is a participant's export of both boards: their own in full,
// the opponent's masked so un-hit ships stay hidden.
type ViewInfo struct {
	RoomID        string               `json:"room_id"`
	Team          string               `json:"team"`
	Strategy      string               `json:"strategy,omitempty"`
	OwnBoard      [][]engine.CellState `json:"own_board"`
	OpponentBoard [][]engine.CellState `json:"opponent_board"`
	TurnHolder    string               `json:"turn_holder,omitempty"`
	Phase         engine.Phase         `json:"phase"`
	Winner        string               `json:"winner,omitempty"`
}
