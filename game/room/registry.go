package room

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/broadsidehq/broadside/game/engine"
)

var (
	ErrRoomNotFound         = errors.New("room not found")
	ErrRosterFull           = errors.New("room roster is full")
	ErrDuplicateParticipant = errors.New("participant already registered")
	ErrAlreadyInRoom        = errors.New("participant already in a room")
	ErrUnknownReadyStage    = errors.New("unknown ready stage")
)

// Registry owns the collection of active rooms and the participant→room
// index. Its lock guards only the maps; each room serializes its own
// session independently, so rooms never contend with each other.
type Registry struct {
	rooms    map[string]*Room
	byPlayer map[string]string
	mu       sync.RWMutex
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		byPlayer: make(map[string]string),
	}
}

// CreateRoom allocates a new room with a fresh unique identity. Names may
// collide; identity never does. The session is created in setup phase.
func (reg *Registry) CreateRoom(name string, boardSize int, fleet []int, catalog *engine.Catalog) *Room {
	r := &Room{
		ID:        uuid.NewString(),
		Code:      generateRoomCode(),
		Name:      name,
		CreatedAt: time.Now(),
		session:   engine.NewSession(boardSize, fleet, catalog),
	}

	reg.mu.Lock()
	reg.rooms[r.ID] = r
	reg.mu.Unlock()

	return r
}

// AddPlayer registers a participant into a room, updating the
// participant index. A participant can occupy at most one room.
//
// The index entry is reserved before the room is touched, in one write
// section, so two concurrent joins of the same participant into
// different rooms cannot both pass the occupancy check. The
// reservation is rolled back when the room itself rejects the join.
func (reg *Registry) AddPlayer(roomID string, p *engine.Player) error {
	reg.mu.Lock()
	r, exists := reg.rooms[roomID]
	if !exists {
		reg.mu.Unlock()
		return ErrRoomNotFound
	}
	if _, occupied := reg.byPlayer[p.ID]; occupied {
		reg.mu.Unlock()
		return ErrAlreadyInRoom
	}
	reg.byPlayer[p.ID] = roomID
	reg.mu.Unlock()

	if !r.AddPlayer(p) {
		reg.mu.Lock()
		delete(reg.byPlayer, p.ID)
		reg.mu.Unlock()

		// Distinguish the two failure modes for the caller
		for _, existing := range r.Players() {
			if existing.ID == p.ID {
				return ErrDuplicateParticipant
			}
		}
		return ErrRosterFull
	}
	return nil
}

// RemovePlayer drops a participant from their room. When the room empties
// it is destroyed (both index entries removed in one critical section).
func (reg *Registry) RemovePlayer(playerID string) error {
	reg.mu.RLock()
	roomID, ok := reg.byPlayer[playerID]
	r := reg.rooms[roomID]
	reg.mu.RUnlock()

	if !ok || r == nil {
		return ErrRoomNotFound
	}

	removed, remaining := r.RemovePlayer(playerID)

	reg.mu.Lock()
	delete(reg.byPlayer, playerID)
	destroyed := removed && remaining == 0
	if destroyed {
		delete(reg.rooms, roomID)
	}
	reg.mu.Unlock()

	if destroyed {
		r.Close()
	}
	return nil
}

// Get returns the room with the given identity, or nil when absent.
// Absence is a valid result, not an error.
func (reg *Registry) Get(roomID string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[roomID]
}

// RoomOf returns the room a participant currently occupies, or nil.
func (reg *Registry) RoomOf(playerID string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	roomID, ok := reg.byPlayer[playerID]
	if !ok {
		return nil
	}
	return reg.rooms[roomID]
}

// List returns a snapshot of all rooms. Ordering is left to the boundary
// that presents the list.
func (reg *Registry) List() []*Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		out = append(out, r)
	}
	return out
}

// Delete removes a room and every participant index entry pointing at
// it, closing the room's event stream.
func (reg *Registry) Delete(roomID string) error {
	reg.mu.Lock()
	r, exists := reg.rooms[roomID]
	if !exists {
		reg.mu.Unlock()
		return ErrRoomNotFound
	}
	delete(reg.rooms, roomID)
	for pid, rid := range reg.byPlayer {
		if rid == roomID {
			delete(reg.byPlayer, pid)
		}
	}
	reg.mu.Unlock()

	r.Close()
	return nil
}

// Count returns the number of active rooms.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// generateRoomCode returns a short random join code.
func generateRoomCode() string {
	bytes := make([]byte, 3)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
