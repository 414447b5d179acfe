package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/broadsidehq/broadside/game/engine"
	"github.com/broadsidehq/broadside/game/room"
)

// battleServiceImpl implements the BattleService interface
type battleServiceImpl struct {
	registry RoomRegistry
	configs  ConfigManager
}

// NewBattleService creates a new battle service instance
func NewBattleService(registry RoomRegistry, configs ConfigManager) BattleService {
	return &battleServiceImpl{
		registry: registry,
		configs:  configs,
	}
}

// CreateRoom allocates a room using the named fleet configuration, or the
// default configuration when configID is empty.
func (s *battleServiceImpl) CreateRoom(ctx context.Context, name, configID string) (*RoomInfo, error) {
	var cfg *engine.FleetConfig
	if configID != "" {
		loaded, err := s.configs.LoadConfig(configID)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", configID, err)
		}
		cfg = loaded
	} else {
		cfg = s.configs.GetDefault()
	}

	r := s.registry.CreateRoom(name, cfg.BoardSize, cfg.FleetLengths(), cfg.BuildCatalog())
	return s.roomInfo(r, cfg), nil
}

// JoinRoom registers a participant into a room. The player identity may be
// supplied by the caller (a connection token) or left empty for a fresh one.
func (s *battleServiceImpl) JoinRoom(ctx context.Context, roomID, playerID, playerName string) (*RoomInfo, error) {
	if playerID == "" {
		playerID = uuid.NewString()
	}
	if playerName == "" {
		playerName = "Player"
	}

	if err := s.registry.AddPlayer(roomID, &engine.Player{ID: playerID, Name: playerName}); err != nil {
		return nil, err
	}

	r := s.registry.Get(roomID)
	if r == nil {
		return nil, room.ErrRoomNotFound
	}
	return s.roomInfo(r, nil), nil
}

// LeaveRoom removes a participant; the room is destroyed when it empties.
func (s *battleServiceImpl) LeaveRoom(ctx context.Context, playerID string) error {
	return s.registry.RemovePlayer(playerID)
}

// GetRoom returns full information about a room.
func (s *battleServiceImpl) GetRoom(ctx context.Context, roomID string) (*RoomInfo, error) {
	r := s.registry.Get(roomID)
	if r == nil {
		return nil, room.ErrRoomNotFound
	}
	return s.roomInfo(r, nil), nil
}

// ListRooms returns summaries of every room, sorted by name. Sorting is a
// boundary concern; the registry itself keeps no order.
func (s *battleServiceImpl) ListRooms(ctx context.Context) ([]*RoomSummary, error) {
	rooms := s.registry.List()

	out := make([]*RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		summary := r.Summary()
		out = append(out, &RoomSummary{
			ID:          summary.ID,
			Code:        summary.Code,
			Name:        summary.Name,
			PlayerCount: summary.PlayerCount,
			Phase:       summary.Phase,
			CreatedAt:   summary.CreatedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// StartBattle transitions a room into the battle phase.
func (s *battleServiceImpl) StartBattle(ctx context.Context, roomID string) (*RoomInfo, error) {
	r := s.registry.Get(roomID)
	if r == nil {
		return nil, room.ErrRoomNotFound
	}
	if err := r.Start(); err != nil {
		return nil, err
	}
	return s.roomInfo(r, nil), nil
}

// Shoot resolves the participant to their room and applies the shot.
func (s *battleServiceImpl) Shoot(ctx context.Context, playerID string, row, col int, shotName string) (*ShotResult, error) {
	r := s.registry.RoomOf(playerID)
	if r == nil {
		return nil, room.ErrRoomNotFound
	}

	results, err := r.Shoot(playerID, engine.Coordinate{Row: row, Col: col}, shotName)
	if err != nil {
		return nil, err
	}

	out := &ShotResult{RoomID: r.ID, Results: make([]CellResult, 0, len(results))}
	for _, res := range results {
		out.Results = append(out.Results, CellResult{
			Row:     res.Coord.Row,
			Col:     res.Coord.Col,
			Outcome: res.Outcome,
		})
	}

	r.Snapshot(func(sess *engine.BattleSession) {
		if sess.Phase() == engine.PhaseFinished {
			out.Finished = true
			out.Winner = sess.Winner().Label()
		} else {
			out.NextHolder = sess.CurrentTurnHolder()
		}
	})
	return out, nil
}

// SetStrategy stores the team-private strategy tag for broadcast to
// teammates only; it has no rule effect.
func (s *battleServiceImpl) SetStrategy(ctx context.Context, playerID, tag string) error {
	r := s.registry.RoomOf(playerID)
	if r == nil {
		return room.ErrRoomNotFound
	}
	return r.SetStrategy(playerID, tag)
}

// MarkReady flips a readiness flag for the participant.
func (s *battleServiceImpl) MarkReady(ctx context.Context, playerID string, stage room.ReadyStage) error {
	r := s.registry.RoomOf(playerID)
	if r == nil {
		return room.ErrRoomNotFound
	}
	return r.MarkReady(playerID, stage)
}

// GetView exports both boards for a participant: their own in full, the
// opponent's masked. Both snapshots are taken under one room lock so the
// exported pair is consistent.
func (s *battleServiceImpl) GetView(ctx context.Context, playerID string) (*ViewInfo, error) {
	r := s.registry.RoomOf(playerID)
	if r == nil {
		return nil, room.ErrRoomNotFound
	}

	var view *ViewInfo
	var viewErr error
	r.Snapshot(func(sess *engine.BattleSession) {
		team, ok := sess.TeamOf(playerID)
		if !ok {
			viewErr = engine.ErrUnknownPlayer
			return
		}
		opponent := sess.Team(team.ID.Opposite())

		view = &ViewInfo{
			RoomID:     r.ID,
			Team:       team.ID.Label(),
			Strategy:   team.Strategy,
			Phase:      sess.Phase(),
			TurnHolder: sess.CurrentTurnHolder(),
		}
		if sess.Phase() == engine.PhaseFinished {
			view.Winner = sess.Winner().Label()
		}
		if team.Board != nil {
			view.OwnBoard = team.Board.View(false)
		}
		if opponent.Board != nil {
			view.OpponentBoard = opponent.Board.View(true)
		}
	})
	if viewErr != nil {
		return nil, viewErr
	}
	return view, nil
}

// RoomEvents hands the room's session event channel to the transport layer.
func (s *battleServiceImpl) RoomEvents(roomID string) (<-chan engine.Event, error) {
	r := s.registry.Get(roomID)
	if r == nil {
		return nil, room.ErrRoomNotFound
	}
	return r.Session().Events(), nil
}

// roomInfo builds the full room DTO.
func (s *battleServiceImpl) roomInfo(r *room.Room, cfg *engine.FleetConfig) *RoomInfo {
	info := &RoomInfo{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
	if cfg != nil {
		info.ConfigName = cfg.Name
		info.BoardSize = cfg.BoardSize
	}

	r.Snapshot(func(sess *engine.BattleSession) {
		info.Phase = sess.Phase()
		info.TurnHolder = sess.CurrentTurnHolder()
		if sess.Phase() == engine.PhaseFinished {
			info.Winner = sess.Winner().Label()
		}
		for _, id := range []engine.TeamID{engine.TeamA, engine.TeamB} {
			team := sess.Team(id)
			for _, p := range team.Players {
				info.Players = append(info.Players, &PlayerInfo{
					ID:            p.ID,
					Name:          p.Name,
					Team:          id.Label(),
					Leader:        p.Leader,
					ReadyBattle:   p.ReadyBattle,
					ReadyStrategy: p.ReadyStrategy,
				})
			}
		}
	})
	return info
}
