// Package websocket provides the real-time transport for the Broadside
// server.
//
// The package uses a hub-and-spoke model: a central Hub groups connections
// by room and fans out engine events. Each client connection is handled by
// a dedicated goroutine pair managing reads, writes, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON envelopes:
//
//	{"room_id": "...", "event": "turn_changed", "data": {...}}
//
// Events include player_joined, battle_started, turn_changed, shot_result,
// game_over, and requester-only rejection notices. Inbound frames are only
// read for liveness; game actions go through the REST API.
//
// Room Integration:
//
// Clients connect with ?room=<id>&player=<id>. Broadcasts reach every
// client in the room; SendToPlayer targets one participant's connections
// for rejections, which are never broadcast. WatchSession subscribes the
// hub to a room's engine event channel, so the engine never holds a
// connection handle and a slow socket cannot block a battle session.
package websocket
