package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/broadsidehq/broadside/game/config"
	"github.com/broadsidehq/broadside/game/engine"
	"github.com/broadsidehq/broadside/game/room"
	"github.com/broadsidehq/broadside/game/service"
	"github.com/broadsidehq/broadside/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.BattleService
	configs *config.Manager
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(battleService service.BattleService, configs *config.Manager, hub *websocket.Hub) *Server {
	s := &Server{
		service: battleService,
		configs: configs,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Room lifecycle
	api.HandleFunc("/rooms", s.handleCreateRoom).Methods("POST")
	api.HandleFunc("/rooms", s.handleListRooms).Methods("GET")
	api.HandleFunc("/rooms/{id}", s.handleGetRoom).Methods("GET")
	api.HandleFunc("/rooms/{id}/join", s.handleJoinRoom).Methods("POST")
	api.HandleFunc("/rooms/{id}/start", s.handleStartBattle).Methods("POST")
	api.HandleFunc("/rooms/{id}/shoot", s.handleShoot).Methods("POST")

	// Participant operations
	api.HandleFunc("/players/{id}/strategy", s.handleSetStrategy).Methods("POST")
	api.HandleFunc("/players/{id}/ready", s.handleMarkReady).Methods("POST")
	api.HandleFunc("/players/{id}/view", s.handleGetView).Methods("GET")
	api.HandleFunc("/players/{id}/leave", s.handleLeaveRoom).Methods("POST")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps engine and registry errors to HTTP status codes. Every
// rejection is recoverable and addressed only to the requester.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound),
		errors.Is(err, config.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrRosterFull),
		errors.Is(err, room.ErrDuplicateParticipant),
		errors.Is(err, room.ErrAlreadyInRoom),
		errors.Is(err, engine.ErrNotYourTurn),
		errors.Is(err, engine.ErrNotInBattle),
		errors.Is(err, engine.ErrIncompleteRoster),
		errors.Is(err, engine.ErrAlreadyStarted):
		return http.StatusConflict
	case errors.Is(err, engine.ErrUnknownShotType),
		errors.Is(err, engine.ErrOutOfBounds),
		errors.Is(err, engine.ErrUnknownPlayer),
		errors.Is(err, room.ErrUnknownReadyStage):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Room Handlers

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		ConfigID string `json:"config_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		req.Name = "Room"
	}

	info, err := s.service.CreateRoom(r.Context(), req.Name, req.ConfigID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToLobby("room_created", info)
	}

	log.Printf("[ROOM] created id=%s name=%q config=%s", info.ID, info.Name, req.ConfigID)
	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.service.ListRooms(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(rooms),
		"rooms": rooms,
	})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetRoom(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	var req struct {
		PlayerID string `json:"player_id,omitempty"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := s.service.JoinRoom(r.Context(), roomID, req.PlayerID, req.Name)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(roomID, "player_joined", info)
		s.hub.BroadcastToLobby("room_list", info)
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleStartBattle(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	info, err := s.service.StartBattle(r.Context(), roomID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	// From here on the hub relays the session's own event stream
	if s.hub != nil {
		if events, err := s.service.RoomEvents(roomID); err == nil {
			s.hub.WatchSession(roomID, events)
		}
		s.hub.BroadcastToRoom(roomID, "battle_started", info)
	}

	log.Printf("[BATTLE] room=%s started holder=%s", roomID, info.TurnHolder)
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleShoot(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	var req struct {
		PlayerID string `json:"player_id"`
		Row      int    `json:"row"`
		Col      int    `json:"col"`
		Shot     string `json:"shot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Shoot(r.Context(), req.PlayerID, req.Row, req.Col, req.Shot)
	if err != nil {
		// Rejections go back to the requester only
		if s.hub != nil {
			s.hub.SendToPlayer(roomID, req.PlayerID, "shot_rejected", err.Error())
		}
		respondError(w, statusFor(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(result.RoomID, "shot_result", result)
	}

	log.Printf("[SHOT] room=%s player=%s anchor=(%d,%d) shot=%s cells=%d finished=%t",
		result.RoomID, req.PlayerID, req.Row, req.Col, req.Shot, len(result.Results), result.Finished)
	respondJSON(w, http.StatusOK, result)
}

// Participant Handlers

func (s *Server) handleSetStrategy(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["id"]

	var req struct {
		Strategy string `json:"strategy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.service.SetStrategy(r.Context(), playerID, req.Strategy); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	// Strategy is team-private: only the teammate learns about it, and
	// only through their own view export. Nothing is broadcast.
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMarkReady(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["id"]

	var req struct {
		Stage string `json:"stage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stage := room.ReadyStage(req.Stage)
	if stage == "" {
		stage = room.ReadyBattle
	}

	if err := s.service.MarkReady(r.Context(), playerID, stage); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.GetView(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleLeaveRoom(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["id"]

	if err := s.service.LeaveRoom(r.Context(), playerID); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	// Rosters changed and the room may be gone; lobby watchers refetch.
	if s.hub != nil {
		s.hub.BroadcastToLobby("room_list", nil)
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "left"})
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.configs.ListConfigs()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(configs),
		"configs": configs,
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.configs.LoadConfig(mux.Vars(r)["name"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	playerID := r.URL.Query().Get("player")
	if roomID == "" {
		respondError(w, http.StatusBadRequest, "room query parameter required")
		return
	}
	s.hub.ServeWS(w, r, roomID, playerID)
}
