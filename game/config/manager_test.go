package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/broadsidehq/broadside/game/engine"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

const classicJSON = `{
	"name": "Classic",
	"description": "Standard fleet",
	"board_size": 10,
	"ships": [
		{"name": "carrier", "length": 4, "count": 1},
		{"name": "destroyer", "length": 2, "count": 2}
	]
}`

func TestNewManagerMissingDir(t *testing.T) {
	if _, err := NewManager(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing config directory")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "classic.json", classicJSON)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	cfg, err := m.LoadConfig("classic")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.BoardSize != 10 {
		t.Errorf("Expected board size 10, got %d", cfg.BoardSize)
	}
	lengths := cfg.FleetLengths()
	if len(lengths) != 3 {
		t.Errorf("Expected 3 ships (1 carrier + 2 destroyers), got %d", len(lengths))
	}

	// Cached load returns the same instance
	again, err := m.LoadConfig("classic")
	if err != nil {
		t.Fatalf("Cached LoadConfig failed: %v", err)
	}
	if again != cfg {
		t.Error("Expected cached config instance")
	}
}

func TestLoadConfigNotFound(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "classic.json", classicJSON)
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if _, err := m.LoadConfig("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "bad.json", `{"name": "Bad", "board_size": 3, "ships": []}`)
	writeConfig(t, dir, "classic.json", classicJSON)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if _, err := m.LoadConfig("bad"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestDefaultFallsBackToMinimal(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	def := m.GetDefault()
	if def == nil {
		t.Fatal("Expected a default config")
	}
	if err := engine.ValidateFleetConfig(def); err != nil {
		t.Errorf("Minimal default must validate: %v", err)
	}
}

func TestListConfigsSkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "classic.json", classicJSON)
	writeConfig(t, dir, "broken.json", `not json`)
	writeConfig(t, dir, "notes.txt", "ignored")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	infos, err := m.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(infos) != 1 || infos[0].ConfigID != "classic" {
		t.Errorf("Expected only classic, got %v", infos)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "classic.json", classicJSON)
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	custom := &engine.FleetConfig{
		Name:      "Skirmish",
		BoardSize: 6,
		Ships:     []engine.ShipSpec{{Name: "sloop", Length: 2, Count: 1}},
		Shots:     []engine.ShotSpec{{Name: "light", Offsets: [][2]int{{0, 0}}}},
	}
	if err := m.SaveConfig("skirmish", custom); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	if err := m.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}
	loaded, err := m.LoadConfig("skirmish")
	if err != nil {
		t.Fatalf("LoadConfig after save failed: %v", err)
	}
	if loaded.Name != "Skirmish" || loaded.BoardSize != 6 {
		t.Errorf("Round-tripped config mismatch: %+v", loaded)
	}
}

func TestSaveConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "classic.json", classicJSON)
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	bad := &engine.FleetConfig{Name: "Bad", BoardSize: 100}
	if err := m.SaveConfig("bad", bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
