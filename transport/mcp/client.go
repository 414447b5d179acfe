package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/broadsidehq/broadside/game/config"
	"github.com/broadsidehq/broadside/game/engine"
	"github.com/broadsidehq/broadside/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Broadside",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Broadside - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Two teams of two players each command a hidden fleet on a grid. Teams take
turns firing named shot patterns at the opposing board. Sink every enemy
ship to win.

AVAILABLE TOOLS:
- create_room: Create a new battle room
- join_room: Join a room as a participant (first two joiners form Team A)
- list_rooms: List open rooms
- get_room: Get room details including roster and phase
- start_battle: Start the battle once four participants have joined
- fire_shot: Fire a named shot pattern at an anchor coordinate
- get_view: See your own board in full and the opponent board masked
- set_strategy: Share a strategy note visible only to your teammate
- list_configs: List available fleet configurations
- game_instructions: Get comprehensive game rules

Turns rotate through all four participants in join order. Firing out of
turn is rejected and costs nothing; use get_view to check whose turn it is.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_room",
		Description: "Create a new battle room with an optional fleet configuration",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Display name for the room",
				},
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Fleet configuration to use (optional, defaults to classic)",
				},
			},
		},
	}, c.handleCreateRoom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "join_room",
		Description: "Join a room as a participant. The first two joiners form Team A, the next two Team B.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID to join",
				},
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Stable player identity (optional; one is generated when omitted)",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Display name",
				},
			},
			Required: []string{"room_id"},
		},
	}, c.handleJoinRoom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List all active rooms",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRooms)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_room",
		Description: "Get details of a specific room",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID to retrieve",
				},
			},
			Required: []string{"room_id"},
		},
	}, c.handleGetRoom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_battle",
		Description: "Start the battle. Requires a full roster of four participants.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID",
				},
			},
			Required: []string{"room_id"},
		},
	}, c.handleStartBattle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "fire_shot",
		Description: "Fire a named shot pattern at an anchor coordinate on the enemy board. Only the current turn holder may fire.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID",
				},
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Your player ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Anchor row (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Anchor column (0-based)",
				},
				"shot": map[string]interface{}{
					"type":        "string",
					"description": "Shot pattern name (light, heavy, barrage, or a config-defined pattern)",
				},
			},
			Required: []string{"room_id", "player_id", "row", "col", "shot"},
		},
	}, c.handleFireShot)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_view",
		Description: "Get your view of the battle: your own board in full, the opponent board with un-hit ships hidden",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Your player ID",
				},
			},
			Required: []string{"player_id"},
		},
	}, c.handleGetView)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_strategy",
		Description: "Set your team's strategy note. Only your teammate can see it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Your player ID",
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"description": "Free-form strategy note",
				},
			},
			Required: []string{"player_id", "strategy"},
		},
	}, c.handleSetStrategy)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available fleet configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game rules and instructions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	name, _ := args["name"].(string)
	configID, _ := args["config_id"].(string)

	body := map[string]string{"name": name}
	if configID != "" {
		body["config_id"] = configID
	}

	var info service.RoomInfo
	if err := c.apiCall("POST", "/api/rooms", body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created room: %s\nJoin code: %s\nConfig: %s (board %dx%d)\n",
		info.ID, info.Code, info.ConfigName, info.BoardSize, info.BoardSize)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleJoinRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	playerID, _ := args["player_id"].(string)
	name, _ := args["name"].(string)

	body := map[string]string{"name": name}
	if playerID != "" {
		body["player_id"] = playerID
	}

	var info service.RoomInfo
	if err := c.apiCall("POST", fmt.Sprintf("/api/rooms/%s/join", roomID), body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoomInfo(&info)), nil
}

func (c *Client) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                    `json:"count"`
		Rooms []*service.RoomSummary `json:"rooms"`
	}

	if err := c.apiCall("GET", "/api/rooms", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Rooms (%d):\n\n", response.Count)
	for _, r := range response.Rooms {
		result += fmt.Sprintf("- %s [%s] phase=%s players=%d/4 (created %s)\n",
			r.Name, r.ID, r.Phase, r.PlayerCount, r.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)

	var info service.RoomInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/rooms/%s", roomID), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoomInfo(&info)), nil
}

func (c *Client) handleStartBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)

	var info service.RoomInfo
	if err := c.apiCall("POST", fmt.Sprintf("/api/rooms/%s/start", roomID), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Battle started!\n\n%sFirst to fire: %s\n", formatRoomInfo(&info), info.TurnHolder)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleFireShot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	playerID, _ := args["player_id"].(string)
	row := intArg(args, "row")
	col := intArg(args, "col")
	shot, _ := args["shot"].(string)

	body := map[string]interface{}{
		"player_id": playerID,
		"row":       row,
		"col":       col,
		"shot":      shot,
	}

	var result service.ShotResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/rooms/%s/shoot", roomID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatShotResult(&result)), nil
}

func (c *Client) handleGetView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	playerID, _ := args["player_id"].(string)

	var view service.ViewInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/players/%s/view", playerID), nil, &view); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatView(&view)), nil
}

func (c *Client) handleSetStrategy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	playerID, _ := args["player_id"].(string)
	strategy, _ := args["strategy"].(string)

	body := map[string]string{"strategy": strategy}
	if err := c.apiCall("POST", fmt.Sprintf("/api/players/%s/strategy", playerID), body, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Strategy updated. Your teammate will see it in their view."), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                  `json:"count"`
		Configs []*config.ConfigInfo `json:"configs"`
	}
	if err := c.apiCall("GET", "/api/configs", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Fleet Configurations:\n\n"
	for _, cfg := range response.Configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Board: %dx%d, Ships: %d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.BoardSize, cfg.BoardSize, cfg.ShipCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Broadside - Complete Instructions

GAME OBJECTIVE:
Sink every ship of the opposing team before they sink yours.

SETUP:
• Each room holds exactly four participants in two teams of two
• The first two joiners form Team A, the next two Team B
• Each team shares one board; ships are placed randomly when the battle starts
• Participants never place ships by hand

TURN ORDER:
• Turns rotate through all four participants in join order
• Firing out of turn is rejected and consumes nothing
• Every shot targets the OPPOSING team's board at an anchor coordinate

SHOT PATTERNS:
• light   - single cell at the anchor
• heavy   - anchor plus the four orthogonal neighbors
• barrage - three cells in a horizontal row starting at the anchor
• Fleet configurations may define their own named patterns
• Pattern cells falling off the board are silently dropped
• The anchor itself must be on the board or the shot is rejected

OUTCOMES (per cell):
• miss         - open water
• hit          - struck a ship segment
• sunk         - struck the last intact segment of a ship
• already_shot - cell was resolved before; repeating it changes nothing

BOARD LEGEND (get_view):
• . - unknown / open water
• S - your own ship segment (never shown on the opponent board)
• X - hit ship segment
• o - confirmed miss
• # - sunk ship

TEAM PLAY:
• set_strategy shares a note with your teammate only
• The opposing team never sees your strategy or un-hit ship positions

VICTORY:
• The battle ends the moment a fleet is fully sunk
• The team that fired the final shot wins

TIPS:
• Use get_view before firing to confirm it is your turn
• heavy and barrage cover more water; light is precise follow-up
• Track confirmed hits and finish wounded ships before exploring`

	return mcp.NewToolResultText(instructions), nil
}

// intArg extracts an integer argument (JSON numbers decode as float64)
func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// Formatting helpers

func formatRoomInfo(info *service.RoomInfo) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Room: %s [%s]\nJoin code: %s\nPhase: %s\n", info.Name, info.ID, info.Code, info.Phase))
	if info.TurnHolder != "" {
		b.WriteString(fmt.Sprintf("Turn holder: %s\n", info.TurnHolder))
	}
	if info.Winner != "" {
		b.WriteString(fmt.Sprintf("Winner: %s\n", info.Winner))
	}

	b.WriteString(fmt.Sprintf("Players (%d/4):\n", len(info.Players)))
	for _, p := range info.Players {
		leader := ""
		if p.Leader {
			leader = " (leader)"
		}
		b.WriteString(fmt.Sprintf("  - %s [%s] %s%s\n", p.Name, p.ID, p.Team, leader))
	}
	return b.String()
}

func formatShotResult(result *service.ShotResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Shot resolved (%d cells):\n", len(result.Results)))
	for _, cell := range result.Results {
		b.WriteString(fmt.Sprintf("  (%d,%d) %s\n", cell.Row, cell.Col, cell.Outcome))
	}
	if result.Finished {
		b.WriteString(fmt.Sprintf("\nBattle over! Winner: %s\n", result.Winner))
	} else {
		b.WriteString(fmt.Sprintf("\nNext to fire: %s\n", result.NextHolder))
	}
	return b.String()
}

func formatView(view *service.ViewInfo) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Room: %s | Team: %s | Phase: %s\n", view.RoomID, view.Team, view.Phase))
	if view.TurnHolder != "" {
		b.WriteString(fmt.Sprintf("Turn holder: %s\n", view.TurnHolder))
	}
	if view.Winner != "" {
		b.WriteString(fmt.Sprintf("Winner: %s\n", view.Winner))
	}
	if view.Strategy != "" {
		b.WriteString(fmt.Sprintf("Team strategy: %s\n", view.Strategy))
	}

	if len(view.OwnBoard) > 0 {
		b.WriteString("\nYour board:\n")
		b.WriteString(renderBoard(view.OwnBoard))
	}
	if len(view.OpponentBoard) > 0 {
		b.WriteString("\nOpponent board:\n")
		b.WriteString(renderBoard(view.OpponentBoard))
	}
	return b.String()
}

// renderBoard draws a grid with column headers using the board legend
func renderBoard(cells [][]engine.CellState) string {
	var b strings.Builder

	b.WriteString("   ")
	for col := range cells[0] {
		b.WriteString(fmt.Sprintf("%2d", col))
	}
	b.WriteString("\n")

	for row, line := range cells {
		b.WriteString(fmt.Sprintf("%2d ", row))
		for _, cell := range line {
			b.WriteString(" " + cellChar(cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cellChar(cell engine.CellState) string {
	switch cell {
	case engine.CellShip:
		return "S"
	case engine.CellHit:
		return "X"
	case engine.CellMiss:
		return "o"
	case engine.CellSunk:
		return "#"
	default:
		return "."
	}
}
