package engine

// Player is one participant in a room. The ID is the opaque token the
// transport layer resolves participants by.
type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Leader        bool   `json:"leader"`
	ReadyBattle   bool   `json:"ready_battle"`
	ReadyStrategy bool   `json:"ready_strategy"`
}

// Team owns two player slots (slot 0 is the leader) and one board.
type Team struct {
	ID       TeamID
	Players  []*Player
	Board    *Board
	Strategy string
}

// NewTeam creates an empty team.
func NewTeam(id TeamID) *Team {
	return &Team{ID: id}
}

// AddPlayer fills the next open slot. The first player becomes leader.
func (t *Team) AddPlayer(p *Player) bool {
	if len(t.Players) >= TeamSize {
		return false
	}
	p.Leader = len(t.Players) == 0
	t.Players = append(t.Players, p)
	return true
}

// RemovePlayer drops the player with the given ID, promoting the
// remaining player to leader.
func (t *Team) RemovePlayer(playerID string) bool {
	for i, p := range t.Players {
		if p.ID == playerID {
			t.Players = append(t.Players[:i], t.Players[i+1:]...)
			if len(t.Players) > 0 {
				t.Players[0].Leader = true
			}
			return true
		}
	}
	return false
}

// Contains reports whether the player belongs to this team.
func (t *Team) Contains(playerID string) bool {
	for _, p := range t.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// TeammateOf returns the other player on the same team, if any.
func (t *Team) TeammateOf(playerID string) (*Player, bool) {
	if !t.Contains(playerID) {
		return nil, false
	}
	for _, p := range t.Players {
		if p.ID != playerID {
			return p, true
		}
	}
	return nil, false
}

// IsDefeated reports whether every ship on the team's board is sunk.
func (t *Team) IsDefeated() bool {
	return t.Board != nil && t.Board.IsFullySunk()
}

// SetStrategy stores the team-private strategy tag. It has no rule
// effect; it only exists to be shared with teammates.
func (t *Team) SetStrategy(tag string) {
	t.Strategy = tag
}
