package room

import (
	"sync"
	"time"

	"github.com/broadsidehq/broadside/game/engine"
)

// Room is one game's container: identity, name, players in join order, and
// a battle session. All session mutations go through Room methods, which
// hold the room's mutex; sessions themselves are not goroutine-safe.
type Room struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time

	mu      sync.Mutex
	players []*engine.Player
	session *engine.BattleSession
}

// Summary is a read-only snapshot of a room for listings
type Summary struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	PlayerCount int          `json:"player_count"`
	Phase       engine.Phase `json:"phase"`
	CreatedAt   time.Time    `json:"created_at"`
}

// AddPlayer assigns the player to the next open team slot. It fails when
// the roster is full or the ID is already present.
func (r *Room) AddPlayer(p *engine.Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) >= engine.RosterSize {
		return false
	}
	for _, existing := range r.players {
		if existing.ID == p.ID {
			return false
		}
	}
	if !r.session.AddPlayer(p) {
		return false
	}
	r.players = append(r.players, p)
	return true
}

// RemovePlayer drops the player from the room and its session, reporting
// whether the player was present and how many players remain.
func (r *Room) RemovePlayer(playerID string) (removed bool, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.players {
		if p.ID == playerID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			r.session.RemovePlayer(playerID)
			return true, len(r.players)
		}
	}
	return false, len(r.players)
}

// Players returns a snapshot of the roster in join order.
func (r *Room) Players() []*engine.Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*engine.Player, len(r.players))
	copy(out, r.players)
	return out
}

// Start transitions the room's session into battle.
func (r *Room) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Start()
}

// Shoot applies a shot pattern for the given player.
func (r *Room) Shoot(playerID string, anchor engine.Coordinate, shotName string) ([]engine.PerCellResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Shoot(playerID, anchor, shotName)
}

// SetStrategy stores the strategy tag for the player's team.
func (r *Room) SetStrategy(playerID, tag string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	team, ok := r.session.TeamOf(playerID)
	if !ok {
		return engine.ErrUnknownPlayer
	}
	team.SetStrategy(tag)
	return nil
}

// ReadyStage selects which readiness flag MarkReady flips
type ReadyStage string

const (
	ReadyBattle   ReadyStage = "battle"
	ReadyStrategy ReadyStage = "strategy"
)

// MarkReady flips the player's readiness flag for the given stage.
func (r *Room) MarkReady(playerID string, stage ReadyStage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.players {
		if p.ID == playerID {
			switch stage {
			case ReadyBattle:
				p.ReadyBattle = true
			case ReadyStrategy:
				p.ReadyStrategy = true
			default:
				return ErrUnknownReadyStage
			}
			return nil
		}
	}
	return engine.ErrUnknownPlayer
}

// Close shuts down the room's session event stream. Called by the
// registry when the room is destroyed.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session.Close()
}

// Session exposes the underlying battle session for read paths that the
// caller serializes themselves (event subscription at room creation).
func (r *Room) Session() *engine.BattleSession {
	return r.session
}

// Snapshot runs fn under the room lock. Used for composite reads such as
// exporting both boards consistently.
func (r *Room) Snapshot(fn func(s *engine.BattleSession)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.session)
}

// Summary returns the room's listing entry.
func (r *Room) Summary() *Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &Summary{
		ID:          r.ID,
		Code:        r.Code,
		Name:        r.Name,
		PlayerCount: len(r.players),
		Phase:       r.session.Phase(),
		CreatedAt:   r.CreatedAt,
	}
}
