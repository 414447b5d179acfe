package engine

import "testing"

func validConfig() *FleetConfig {
	return &FleetConfig{
		Name:      "Test",
		BoardSize: 10,
		Ships:     []ShipSpec{{Name: "cruiser", Length: 3, Count: 2}},
	}
}

func TestValidateFleetConfig(t *testing.T) {
	if err := ValidateFleetConfig(validConfig()); err != nil {
		t.Errorf("Valid config rejected: %v", err)
	}
	if err := ValidateFleetConfig(nil); err == nil {
		t.Error("Nil config must be rejected")
	}
}

func TestValidateFleetConfigBoardSize(t *testing.T) {
	for _, size := range []int{0, 4, 27} {
		cfg := validConfig()
		cfg.BoardSize = size
		if err := ValidateFleetConfig(cfg); err == nil {
			t.Errorf("Board size %d must be rejected", size)
		}
	}
}

func TestValidateFleetConfigShips(t *testing.T) {
	cfg := validConfig()
	cfg.Ships = nil
	if err := ValidateFleetConfig(cfg); err == nil {
		t.Error("Empty fleet must be rejected")
	}

	cfg = validConfig()
	cfg.Ships = []ShipSpec{{Name: "leviathan", Length: 11, Count: 1}}
	if err := ValidateFleetConfig(cfg); err == nil {
		t.Error("Oversized ship must be rejected")
	}

	cfg = validConfig()
	cfg.Ships = []ShipSpec{{Name: "swarm", Length: 5, Count: 10}}
	if err := ValidateFleetConfig(cfg); err == nil {
		t.Error("Overly dense fleet must be rejected")
	}
}

func TestValidateFleetConfigShots(t *testing.T) {
	cfg := validConfig()
	cfg.Shots = []ShotSpec{{Name: "light", Offsets: nil}}
	if err := ValidateFleetConfig(cfg); err == nil {
		t.Error("Shot without offsets must be rejected")
	}

	cfg = validConfig()
	cfg.Shots = []ShotSpec{
		{Name: "light", Offsets: [][2]int{{0, 0}}},
		{Name: "LIGHT", Offsets: [][2]int{{0, 0}}},
	}
	if err := ValidateFleetConfig(cfg); err == nil {
		t.Error("Case-colliding shot names must be rejected")
	}
}

func TestBuildCatalog(t *testing.T) {
	cfg := validConfig()
	catalog := cfg.BuildCatalog()
	if _, err := catalog.Resolve("light", Coordinate{0, 0}, 10); err != nil {
		t.Errorf("Default catalog expected without shots section: %v", err)
	}

	cfg.Shots = []ShotSpec{{Name: "pair", Offsets: [][2]int{{0, 0}, {0, 1}}}}
	catalog = cfg.BuildCatalog()
	coords, err := catalog.Resolve("pair", Coordinate{2, 2}, 10)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(coords) != 2 || coords[1] != (Coordinate{2, 3}) {
		t.Errorf("Unexpected pair resolution: %v", coords)
	}
	if _, err := catalog.Resolve("heavy", Coordinate{0, 0}, 10); err == nil {
		t.Error("Custom catalog must not inherit defaults")
	}
}

func TestFleetLengths(t *testing.T) {
	cfg := &FleetConfig{
		Name:      "T",
		BoardSize: 10,
		Ships: []ShipSpec{
			{Name: "carrier", Length: 4, Count: 1},
			{Name: "destroyer", Length: 2, Count: 2},
			{Name: "implicit", Length: 3},
		},
	}
	lengths := cfg.FleetLengths()
	expected := []int{4, 2, 2, 3}
	if len(lengths) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, lengths)
	}
	for i := range expected {
		if lengths[i] != expected[i] {
			t.Errorf("Length %d: expected %d, got %d", i, expected[i], lengths[i])
		}
	}
}
