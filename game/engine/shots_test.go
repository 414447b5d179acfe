package engine

import (
	"errors"
	"testing"
)

func TestResolveLight(t *testing.T) {
	c := DefaultCatalog()

	coords, err := c.Resolve("light", Coordinate{3, 4}, 10)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(coords) != 1 || coords[0] != (Coordinate{3, 4}) {
		t.Errorf("Expected single anchor cell, got %v", coords)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	c := DefaultCatalog()

	for _, name := range []string{"LIGHT", "Light", "light", "hEaVy"} {
		if _, err := c.Resolve(name, Coordinate{5, 5}, 10); err != nil {
			t.Errorf("Resolve(%q) failed: %v", name, err)
		}
	}
}

func TestResolveHeavyOrder(t *testing.T) {
	c := DefaultCatalog()

	coords, err := c.Resolve("heavy", Coordinate{5, 5}, 10)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	expected := []Coordinate{{5, 5}, {4, 5}, {6, 5}, {5, 4}, {5, 6}}
	if len(coords) != len(expected) {
		t.Fatalf("Expected %d coords, got %d", len(expected), len(coords))
	}
	for i, want := range expected {
		if coords[i] != want {
			t.Errorf("Coord %d: expected %v, got %v", i, want, coords[i])
		}
	}
}

func TestResolveClipsEdges(t *testing.T) {
	c := DefaultCatalog()

	// Heavy at the top-left corner loses its up and left cells
	coords, err := c.Resolve("heavy", Coordinate{0, 0}, 10)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	expected := []Coordinate{{0, 0}, {1, 0}, {0, 1}}
	if len(coords) != len(expected) {
		t.Fatalf("Expected %d coords, got %v", len(expected), coords)
	}
	for i, want := range expected {
		if coords[i] != want {
			t.Errorf("Coord %d: expected %v, got %v", i, want, coords[i])
		}
	}

	// Barrage at the right edge collapses to the anchor
	coords, err = c.Resolve("barrage", Coordinate{4, 9}, 10)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(coords) != 1 || coords[0] != (Coordinate{4, 9}) {
		t.Errorf("Expected clipped barrage, got %v", coords)
	}
}

func TestResolveUnknownShot(t *testing.T) {
	c := DefaultCatalog()
	if _, err := c.Resolve("bogus", Coordinate{0, 0}, 10); !errors.Is(err, ErrUnknownShotType) {
		t.Errorf("Expected ErrUnknownShotType, got %v", err)
	}
}

func TestResolveAnchorOutOfBounds(t *testing.T) {
	c := DefaultCatalog()
	for _, anchor := range []Coordinate{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if _, err := c.Resolve("light", anchor, 10); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Expected ErrOutOfBounds for %v, got %v", anchor, err)
		}
	}
}

func TestRegisterCustomPattern(t *testing.T) {
	c := NewCatalog()
	c.Register("Diagonal", []Coordinate{{0, 0}, {1, 1}, {2, 2}})

	coords, err := c.Resolve("diagonal", Coordinate{1, 1}, 10)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(coords) != 3 || coords[2] != (Coordinate{3, 3}) {
		t.Errorf("Unexpected diagonal resolution: %v", coords)
	}
}
