// Package mcp provides a Model Context Protocol interface for the battle server.
//
// The client is a thin proxy: every tool call is translated into a REST API
// request against a running server, so MCP agents and HTTP clients always
// observe the same state.
//
// MCP Tools:
//
//   - create_room: Create a new battle room
//   - join_room: Join a room as a participant
//   - list_rooms: List all active rooms
//   - get_room: Get room roster and phase
//   - start_battle: Start the battle with a full roster
//   - fire_shot: Fire a named shot pattern at an anchor coordinate
//   - get_view: Render both boards from a participant's perspective
//   - set_strategy: Share a strategy note with a teammate
//   - list_configs: List available fleet configurations
//   - game_instructions: Get the full game rules
//
// Transport Modes:
//
// The underlying MCP server is served over stdio for local clients; the
// main entrypoint selects this with the stdio-mcp mode flag.
package mcp
