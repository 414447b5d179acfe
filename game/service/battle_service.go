package service

import (
	"context"

	"github.com/broadsidehq/broadside/game/engine"
	"github.com/broadsidehq/broadside/game/room"
)

// BattleService defines all room and game operations exposed to the
// transport layer. Rejections are reported to the single requester as
// errors; they never mutate session state.
type BattleService interface {
	// Room Management
	CreateRoom(ctx context.Context, name, configID string) (*RoomInfo, error)
	JoinRoom(ctx context.Context, roomID, playerID, playerName string) (*RoomInfo, error)
	LeaveRoom(ctx context.Context, playerID string) error
	GetRoom(ctx context.Context, roomID string) (*RoomInfo, error)
	ListRooms(ctx context.Context) ([]*RoomSummary, error)

	// Game Operations
	StartBattle(ctx context.Context, roomID string) (*RoomInfo, error)
	Shoot(ctx context.Context, playerID string, row, col int, shotName string) (*ShotResult, error)
	SetStrategy(ctx context.Context, playerID, tag string) error
	MarkReady(ctx context.Context, playerID string, stage room.ReadyStage) error

	// Views and Events
	GetView(ctx context.Context, playerID string) (*ViewInfo, error)
	RoomEvents(roomID string) (<-chan engine.Event, error)
}

// RoomRegistry defines the registry operations the service depends on
type RoomRegistry interface {
	CreateRoom(name string, boardSize int, fleet []int, catalog *engine.Catalog) *room.Room
	AddPlayer(roomID string, p *engine.Player) error
	RemovePlayer(playerID string) error
	Get(roomID string) *room.Room
	RoomOf(playerID string) *room.Room
	List() []*room.Room
}

// ConfigManager handles fleet configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.FleetConfig, error)
	GetDefault() *engine.FleetConfig
}
