// Command validate provides a small CLI that validates fleet configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board size range and ship lengths that fit the board
//   - Fleet density low enough for random placement
//   - Shot pattern names and offsets
//   - Placement: the fleet can actually be placed on an empty board
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/broadsidehq/broadside/game/engine"
)

// placementProbes is how many seeded placement attempts each config gets.
const placementProbes = 5

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single fleet configuration file.
// It performs structural checks, pattern validation, and a placement probe
// that confirms the declared fleet fits on an empty board.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.FleetConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateFleetConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Structural checks passed; confirm placement actually succeeds
	if probeErr := probePlacement(&config); probeErr != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Placement failure: %v", probeErr))
		return result
	}

	totalCells := 0
	for _, length := range config.FleetLengths() {
		totalCells += length
	}

	shotCount := len(config.Shots)
	shotLabel := fmt.Sprintf("%d custom", shotCount)
	if shotCount == 0 {
		shotLabel = "default catalog"
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.BoardSize, config.BoardSize))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Ships: %d (%d cells)", len(config.FleetLengths()), totalCells))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Shot patterns: %s", shotLabel))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Placement: %d/%d probes succeeded", placementProbes, placementProbes))

	return result
}

// probePlacement runs several seeded random placements of the configured
// fleet. A config that passes the density check can still describe a fleet
// that is awkward to place; the probe catches that before a room does.
func probePlacement(config *engine.FleetConfig) error {
	lengths := config.FleetLengths()
	for seed := int64(0); seed < placementProbes; seed++ {
		ships, err := engine.RandomPlacement(rand.New(rand.NewSource(seed)), config.BoardSize, lengths)
		if err != nil {
			return fmt.Errorf("seed %d: %w", seed, err)
		}

		board, err := engine.NewBoard(config.BoardSize)
		if err != nil {
			return err
		}
		if err := board.Place(ships); err != nil {
			return fmt.Errorf("seed %d: %w", seed, err)
		}
	}
	return nil
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
