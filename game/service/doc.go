// Package service defines the application-facing operations of the
// Broadside server.
//
// BattleService is the single boundary the transport layers (REST,
// WebSocket, MCP) call into: room lifecycle, joining, starting battles,
// firing shots, strategy and readiness updates, and board-view exports. It
// translates between wire-friendly DTOs and the engine's types, resolves
// participants to rooms through the registry, and sorts room listings at
// the boundary.
//
// Error handling follows the engine: rejections (wrong turn, unknown shot,
// full roster, missing room) come back as sentinel errors the callers map
// to protocol-level responses addressed only to the requester.
package service
