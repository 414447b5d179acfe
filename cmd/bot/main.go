// Command bot is an autonomous REST client that plays battles against a
// running server. It joins a room, waits for its turn, and fires shots
// using a hunt-and-target strategy until the battle ends. Run four bots
// against one room for a full self-playing game.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Wire types mirror the server's JSON responses.

type RoomInfo struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Phase      string    `json:"phase"`
	TurnHolder string    `json:"turn_holder,omitempty"`
	Winner     string    `json:"winner,omitempty"`
	Players    []Player  `json:"players"`
	CreatedAt  time.Time `json:"created_at"`
}

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`
}

type View struct {
	RoomID        string     `json:"room_id"`
	Team          string     `json:"team"`
	OwnBoard      [][]string `json:"own_board"`
	OpponentBoard [][]string `json:"opponent_board"`
	TurnHolder    string     `json:"turn_holder,omitempty"`
	Phase         string     `json:"phase"`
	Winner        string     `json:"winner,omitempty"`
}

type CellResult struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Outcome string `json:"outcome"`
}

type ShotResult struct {
	Results    []CellResult `json:"results"`
	Finished   bool         `json:"finished"`
	Winner     string       `json:"winner,omitempty"`
	NextHolder string       `json:"next_holder,omitempty"`
}

type Client struct {
	baseURL  string
	playerID string
	client   *http.Client
}

func NewClient(baseURL, playerID string) *Client {
	return &Client{
		baseURL:  baseURL,
		playerID: playerID,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) post(path string, body, result interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+path, "application/json", &buf)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.Unmarshal(data, &errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("POST %s failed: %s", path, resp.Status)
	}

	if result != nil {
		return json.Unmarshal(data, result)
	}
	return nil
}

func (c *Client) get(path string, result interface{}) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("GET %s failed: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) CreateRoom(name, configID string) (*RoomInfo, error) {
	body := map[string]string{"name": name}
	if configID != "" {
		body["config_id"] = configID
	}
	var info RoomInfo
	if err := c.post("/api/rooms", body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) JoinRoom(roomID, name string) (*RoomInfo, error) {
	var info RoomInfo
	err := c.post("/api/rooms/"+roomID+"/join", map[string]string{
		"player_id": c.playerID,
		"name":      name,
	}, &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) StartBattle(roomID string) error {
	return c.post("/api/rooms/"+roomID+"/start", nil, nil)
}

func (c *Client) GetView() (*View, error) {
	var view View
	if err := c.get("/api/players/"+c.playerID+"/view", &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) Shoot(roomID string, row, col int, shot string) (*ShotResult, error) {
	var result ShotResult
	err := c.post("/api/rooms/"+roomID+"/shoot", map[string]interface{}{
		"player_id": c.playerID,
		"row":       row,
		"col":       col,
		"shot":      shot,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Battle server URL")
	roomID := flag.String("room", "", "Room ID to join (created when empty)")
	configID := flag.String("config", "", "Fleet configuration for a created room")
	playerID := flag.String("player", "", "Stable player identity (random when empty)")
	name := flag.String("name", "bot", "Display name")
	start := flag.Bool("start", false, "Start the battle once the roster fills")
	pollMs := flag.Int("poll", 500, "Polling interval in milliseconds")
	maxShots := flag.Int("max-shots", 1000, "Maximum shots before giving up")
	flag.Parse()

	pid := *playerID
	if pid == "" {
		pid = fmt.Sprintf("bot-%d", time.Now().UnixNano())
	}

	log.Printf("Connecting to battle server at %s as %s", *serverURL, pid)
	client := NewClient(*serverURL, pid)

	rid := *roomID
	if rid == "" {
		info, err := client.CreateRoom(*name+"'s room", *configID)
		if err != nil {
			log.Fatalf("Failed to create room: %v", err)
		}
		rid = info.ID
		log.Printf("Created room %s (code %s)", rid, info.Code)
	}

	info, err := client.JoinRoom(rid, *name)
	if err != nil {
		log.Fatalf("Failed to join room: %v", err)
	}
	log.Printf("Joined room %s with %d/4 players", rid, len(info.Players))

	// Wait for the roster to fill, then the battle to begin
	poll := time.Duration(*pollMs) * time.Millisecond
	for {
		view, err := client.GetView()
		if err != nil {
			log.Fatalf("Failed to fetch view: %v", err)
		}
		if view.Phase == "battle" {
			break
		}

		room, err := getRoom(client, rid)
		if err != nil {
			log.Fatalf("Failed to fetch room: %v", err)
		}
		if *start && len(room.Players) == 4 {
			if err := client.StartBattle(rid); err != nil {
				log.Printf("Start rejected: %v", err)
			}
		}
		time.Sleep(poll)
	}
	log.Printf("Battle underway")

	strategy := NewHuntStrategy()
	shots := 0
	for shots < *maxShots {
		view, err := client.GetView()
		if err != nil {
			log.Fatalf("Failed to fetch view: %v", err)
		}

		if view.Phase == "finished" {
			log.Printf("Battle over. Winner: %s", view.Winner)
			if view.Winner == view.Team {
				os.Exit(0)
			}
			os.Exit(1)
		}

		if view.TurnHolder != pid {
			time.Sleep(poll)
			continue
		}

		row, col, shot := strategy.NextShot(view.OpponentBoard)
		result, err := client.Shoot(rid, row, col, shot)
		if err != nil {
			// Turn may have rotated between poll and fire
			log.Printf("Shot rejected: %v", err)
			time.Sleep(poll)
			continue
		}
		shots++

		for _, cell := range result.Results {
			log.Printf("  (%d,%d) %s", cell.Row, cell.Col, cell.Outcome)
		}
		if result.Finished {
			log.Printf("Battle over after %d shots. Winner: %s", shots, result.Winner)
			if result.Winner == view.Team {
				os.Exit(0)
			}
			os.Exit(1)
		}
	}

	log.Printf("Gave up after %d shots", shots)
	os.Exit(1)
}

func getRoom(c *Client, roomID string) (*RoomInfo, error) {
	var info RoomInfo
	if err := c.get("/api/rooms/"+roomID, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
