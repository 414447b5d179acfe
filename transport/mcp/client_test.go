package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/broadsidehq/broadside/game/engine"
	"github.com/broadsidehq/broadside/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":    "room-1",
		"name":  "Harbor",
		"phase": "setup",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall("GET", "/api/rooms/room-1", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall("GET", "/api/rooms", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "not your turn"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/rooms/r/shoot", map[string]string{}, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 409 response")
	}
	if err.Error() != "not your turn" {
		t.Errorf("Expected server error message, got: %v", err)
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/rooms", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}
	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_handleCreateRoom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/rooms" {
			t.Errorf("Expected POST /api/rooms, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.RoomInfo{
			ID:         "room-123",
			Code:       "a1b2c3",
			Name:       "Harbor",
			Phase:      engine.PhaseSetup,
			ConfigName: "Classic",
			BoardSize:  10,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_room",
			Arguments: map[string]interface{}{"name": "Harbor"},
		},
	}

	result, err := client.handleCreateRoom(context.Background(), request)
	if err != nil {
		t.Fatalf("handleCreateRoom failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	if !strings.Contains(text.Text, "room-123") || !strings.Contains(text.Text, "a1b2c3") {
		t.Errorf("Expected room identity in result, got: %s", text.Text)
	}
}

func TestClient_handleFireShot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/rooms/room-1/shoot" {
			t.Errorf("Expected POST /api/rooms/room-1/shoot, got %s %s", r.Method, r.URL.Path)
		}

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["shot"] != "heavy" {
			t.Errorf("Expected shot=heavy in request, got %v", body["shot"])
		}

		resp := service.ShotResult{
			RoomID: "room-1",
			Results: []service.CellResult{
				{Row: 4, Col: 4, Outcome: engine.OutcomeHit},
				{Row: 3, Col: 4, Outcome: engine.OutcomeMiss},
			},
			NextHolder: "p2",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "fire_shot",
			Arguments: map[string]interface{}{
				"room_id":   "room-1",
				"player_id": "p1",
				"row":       float64(4),
				"col":       float64(4),
				"shot":      "heavy",
			},
		},
	}

	result, err := client.handleFireShot(context.Background(), request)
	if err != nil {
		t.Fatalf("handleFireShot failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	for _, want := range []string{"(4,4) hit", "(3,4) miss", "Next to fire: p2"} {
		if !strings.Contains(text.Text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text.Text)
		}
	}
}

func TestFormatShotResult_Finished(t *testing.T) {
	result := formatShotResult(&service.ShotResult{
		RoomID:   "room-1",
		Results:  []service.CellResult{{Row: 0, Col: 0, Outcome: engine.OutcomeSunk}},
		Finished: true,
		Winner:   "Team A",
	})

	if !strings.Contains(result, "Winner: Team A") {
		t.Errorf("Expected winner in result, got: %s", result)
	}
}

func TestFormatView(t *testing.T) {
	view := &service.ViewInfo{
		RoomID: "room-1",
		Team:   "Team A",
		Phase:  engine.PhaseBattle,
		OwnBoard: [][]engine.CellState{
			{engine.CellShip, engine.CellEmpty},
			{engine.CellHit, engine.CellMiss},
		},
		OpponentBoard: [][]engine.CellState{
			{engine.CellEmpty, engine.CellSunk},
			{engine.CellMiss, engine.CellEmpty},
		},
		TurnHolder: "p3",
		Strategy:   "sweep the middle",
	}

	result := formatView(view)

	expectedFields := []string{
		"Team: Team A",
		"Turn holder: p3",
		"Team strategy: sweep the middle",
		"Your board:",
		"Opponent board:",
	}
	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected %q in formatted view, got: %s", field, result)
		}
	}

	// Own ships render as S; the only sunk cell on the opponent board is #
	if !strings.Contains(result, "S") {
		t.Errorf("Expected own ship marker in view, got: %s", result)
	}
	if !strings.Contains(result, "#") {
		t.Errorf("Expected sunk marker in view, got: %s", result)
	}
}

func TestRenderBoardLegend(t *testing.T) {
	cases := []struct {
		cell engine.CellState
		want string
	}{
		{engine.CellEmpty, "."},
		{engine.CellShip, "S"},
		{engine.CellHit, "X"},
		{engine.CellMiss, "o"},
		{engine.CellSunk, "#"},
	}
	for _, tc := range cases {
		if got := cellChar(tc.cell); got != tc.want {
			t.Errorf("cellChar(%s) = %q, want %q", tc.cell, got, tc.want)
		}
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(context.Background(), request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"GAME OBJECTIVE:",
		"TURN ORDER:",
		"SHOT PATTERNS:",
		"OUTCOMES (per cell):",
		"BOARD LEGEND",
		"TEAM PLAY:",
		"VICTORY:",
	}
	for _, content := range expectedContent {
		if !strings.Contains(text.Text, content) {
			t.Errorf("Expected %q in instructions", content)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}
	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}
	if client.baseURL == "" {
		t.Error("Base URL not set")
	}
	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
