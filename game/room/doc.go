// Package room provides room management for the Broadside server.
//
// The room package implements:
//   - Room: one game's container — identity, players in join order, and a
//     battle session guarded by a per-room mutex
//   - Registry: the process-wide collection of rooms plus the
//     participant→room index
//
// Lifecycle:
//
// Rooms are created on demand, filled up to four participants (team slots
// assigned in join order), and destroyed when the last participant leaves.
// Nothing persists across process restarts.
//
// Concurrency:
//
// The registry lock covers only map operations; every room owns an
// independent mutex serializing its session, so concurrent requests against
// different rooms never block each other, while two requests against the
// same room are mutually exclusive. For a single room the sequence of
// accepted operations forms a total order.
package room
