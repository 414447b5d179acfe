// Package engine provides the core battle logic for the Broadside game.
//
// The engine package implements the in-memory session model:
//   - Boards: per-team grids with ship placements and shot history
//   - Shot catalog: named multi-cell shot patterns resolved around an anchor
//   - Teams: two player slots, one board, one shared win/loss outcome
//   - BattleSession: the setup → battle → finished state machine with strict
//     per-participant turn ownership and win detection
//
// Core Types:
//
// BattleSession orchestrates everything: it owns both Teams, the turn order,
// and the phase, and applies shot patterns from the Catalog against the
// opposing team's Board. Board enforces idempotent hit/miss/sunk semantics
// per cell. Team aggregates defeat (all ships sunk).
//
// Usage:
//
//	session := engine.NewSession(10, []int{4, 3, 3, 2}, nil)
//	session.AddPlayer(&engine.Player{ID: "p1", Name: "Ada"})
//	// ... add three more players ...
//	if err := session.Start(); err != nil {
//		log.Fatal(err)
//	}
//
//	results, err := session.Shoot("p1", engine.Coordinate{Row: 4, Col: 4}, "heavy")
//
// Game Rules:
//
// Two teams of two share one board each. Participants act strictly in join
// order, one shot pattern per turn. A pattern's cells resolve in catalog
// order; the first cell that sinks the opponent's last ship ends the game
// immediately with the shooter's team as winner.
//
// Concurrency:
//
// Sessions are not self-locking. The owning room serializes all mutations;
// session events are delivered on a buffered channel so slow consumers never
// block the engine.
package engine
