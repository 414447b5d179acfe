package engine

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

// BattleSession is the turn-based state machine for one room: two teams,
// a fixed turn order, the current phase, and the winner once finished.
//
// The session itself is not goroutine-safe; the owning Room serializes
// access (see game/room).
type BattleSession struct {
	teamA *Team
	teamB *Team

	catalog   *Catalog
	boardSize int
	fleet     []int

	turnOrder []string
	turnIdx   int
	phase     Phase
	winner    TeamID

	events chan Event
	closed bool
	rng    *rand.Rand
}

// NewSession creates a session in the setup phase. The fleet slice lists
// the ship lengths placed on each board at start.
func NewSession(boardSize int, fleet []int, catalog *Catalog) *BattleSession {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &BattleSession{
		teamA:     NewTeam(TeamA),
		teamB:     NewTeam(TeamB),
		catalog:   catalog,
		boardSize: boardSize,
		fleet:     fleet,
		phase:     PhaseSetup,
		events:    make(chan Event, EventBufferSize),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Phase returns the current lifecycle phase.
func (s *BattleSession) Phase() Phase {
	return s.phase
}

// Winner returns the winning team once the session is finished.
func (s *BattleSession) Winner() TeamID {
	return s.winner
}

// Team returns the team with the given ID.
func (s *BattleSession) Team(id TeamID) *Team {
	if id == TeamA {
		return s.teamA
	}
	return s.teamB
}

// Events exposes the session's outbound notification channel. The
// transport layer consumes it; the engine never blocks on delivery.
func (s *BattleSession) Events() <-chan Event {
	return s.events
}

// AddPlayer assigns the player to the next open team slot in fixed
// order: A-leader, A-member, B-leader, B-member.
func (s *BattleSession) AddPlayer(p *Player) bool {
	if s.phase != PhaseSetup {
		return false
	}
	if s.teamA.AddPlayer(p) {
		return true
	}
	return s.teamB.AddPlayer(p)
}

// RemovePlayer drops the player from whichever team holds them.
func (s *BattleSession) RemovePlayer(playerID string) bool {
	return s.teamA.RemovePlayer(playerID) || s.teamB.RemovePlayer(playerID)
}

// TeamOf returns the team containing the player.
func (s *BattleSession) TeamOf(playerID string) (*Team, bool) {
	if s.teamA.Contains(playerID) {
		return s.teamA, true
	}
	if s.teamB.Contains(playerID) {
		return s.teamB, true
	}
	return nil, false
}

// TeammateOf returns the player's teammate, if any.
func (s *BattleSession) TeammateOf(playerID string) (*Player, bool) {
	team, ok := s.TeamOf(playerID)
	if !ok {
		return nil, false
	}
	return team.TeammateOf(playerID)
}

// Players returns every registered player in join order.
func (s *BattleSession) Players() []*Player {
	out := make([]*Player, 0, RosterSize)
	out = append(out, s.teamA.Players...)
	out = append(out, s.teamB.Players...)
	return out
}

// Start transitions setup → battle: both teams must have a full roster,
// each board gets a random fleet, and the turn order is fixed to the join
// order of the four participants.
func (s *BattleSession) Start() error {
	if s.phase == PhaseBattle || s.phase == PhaseFinished {
		return ErrAlreadyStarted
	}
	if len(s.teamA.Players) != TeamSize || len(s.teamB.Players) != TeamSize {
		return ErrIncompleteRoster
	}

	for _, team := range []*Team{s.teamA, s.teamB} {
		board, err := NewBoard(s.boardSize)
		if err != nil {
			return err
		}
		ships, err := RandomPlacement(s.rng, s.boardSize, s.fleet)
		if err != nil {
			return err
		}
		if err := board.Place(ships); err != nil {
			return err
		}
		team.Board = board
	}

	// Round-robin across all four participants, A-leader first.
	s.turnOrder = make([]string, 0, RosterSize)
	for _, p := range s.teamA.Players {
		s.turnOrder = append(s.turnOrder, p.ID)
	}
	for _, p := range s.teamB.Players {
		s.turnOrder = append(s.turnOrder, p.ID)
	}
	s.turnIdx = 0
	s.phase = PhaseBattle

	s.emit(Event{Type: EventTurnChanged, Holder: s.CurrentTurnHolder()})
	return nil
}

// CurrentTurnHolder returns the participant authorized to shoot. Only
// defined during battle.
func (s *BattleSession) CurrentTurnHolder() string {
	if s.phase != PhaseBattle || len(s.turnOrder) == 0 {
		return ""
	}
	return s.turnOrder[s.turnIdx%len(s.turnOrder)]
}

// Shoot applies a named shot pattern anchored at the given coordinate to
// the opposing team's board.
//
// The turn check runs before shot-type validation; a rejected call never
// mutates any board. Coordinates are applied in catalog order. The first
// application that defeats the opponent finishes the session with the
// shooter's team as winner and the remaining pattern cells are skipped.
// Otherwise the turn advances round-robin.
func (s *BattleSession) Shoot(playerID string, anchor Coordinate, shotName string) ([]PerCellResult, error) {
	if s.phase != PhaseBattle {
		return nil, ErrNotInBattle
	}
	if playerID != s.CurrentTurnHolder() {
		return nil, ErrNotYourTurn
	}

	team, ok := s.TeamOf(playerID)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	opponent := s.Team(team.ID.Opposite())

	coords, err := s.catalog.Resolve(shotName, anchor, s.boardSize)
	if err != nil {
		return nil, err
	}

	results := make([]PerCellResult, 0, len(coords))
	for _, c := range coords {
		outcome, err := opponent.Board.ApplyShot(c)
		if err != nil {
			return nil, fmt.Errorf("apply shot: %w", err)
		}
		results = append(results, PerCellResult{Coord: c, Outcome: outcome})

		if opponent.IsDefeated() {
			s.finish(team.ID)
			s.emit(Event{Type: EventGameOver, Winner: team.ID, Results: results})
			return results, nil
		}
	}

	s.turnIdx = (s.turnIdx + 1) % len(s.turnOrder)
	s.emit(Event{Type: EventTurnChanged, Holder: s.CurrentTurnHolder(), Results: results})
	return results, nil
}

// finish transitions battle → finished. Terminal.
func (s *BattleSession) finish(winner TeamID) {
	s.phase = PhaseFinished
	s.winner = winner
}

// Close closes the outbound notification channel so consumers draining
// it terminate. Events emitted afterwards are dropped. Idempotent; the
// caller serializes Close against mutations like every other session call.
func (s *BattleSession) Close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}

// emit delivers an event without blocking. A full buffer means the
// transport consumer stalled; the event is dropped and logged rather than
// holding the room's critical section.
func (s *BattleSession) emit(ev Event) {
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
		log.Printf("session: dropping %s event, buffer full", ev.Type)
	}
}
