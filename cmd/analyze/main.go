// Command analyze prints quick, human-readable heuristics about fleet
// configuration files in the project's configs directory. It summarizes
// board dimensions, fleet density, shot pattern coverage, and estimates
// how many volleys a team needs to clear the opposing fleet.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/broadsidehq/broadside/game/engine"
)

func main() {
	dir := "configs"
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No config files found in %s\n", dir)
		return
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeConfig(file)
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config engine.FleetConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Board: %d x %d\n", config.BoardSize, config.BoardSize)

	lengths := config.FleetLengths()
	fleetCells := 0
	for _, l := range lengths {
		fleetCells += l
	}
	area := config.BoardSize * config.BoardSize

	fmt.Printf("Ships: %d (%d cells)\n", len(lengths), fleetCells)
	fmt.Printf("Density: %s\n", densityLabel(fleetCells, area))

	widest := widestPattern(&config)
	fmt.Printf("Widest shot pattern: %d cells\n", widest)

	// Lower bound: every cell of the widest pattern lands on an intact
	// ship segment. Real games need far more volleys.
	minVolleys := (fleetCells + widest - 1) / widest
	fmt.Printf("Volleys to clear (best case): %d\n", minVolleys)

	if fleetCells*10 > area*4 {
		fmt.Printf("⚠️  WARNING: fleet exceeds the 40%% density cap; random placement will fail\n")
	} else if fleetCells*10 > area*3 {
		fmt.Printf("⚠️  Fleet is dense (above 30%%); placement may retry often\n")
	} else {
		fmt.Printf("✅ Fleet density is comfortable for random placement\n")
	}
}

// densityLabel renders fleet cells as a percentage of board area.
func densityLabel(fleetCells, area int) string {
	if area == 0 {
		return "n/a"
	}
	pct := float64(fleetCells) / float64(area) * 100
	return fmt.Sprintf("%d/%d cells (%.1f%%)", fleetCells, area, pct)
}

// widestPattern returns the cell count of the largest shot pattern the
// config offers, falling back to the default catalog.
func widestPattern(config *engine.FleetConfig) int {
	widest := 1
	if len(config.Shots) == 0 {
		catalog := engine.DefaultCatalog()
		for _, name := range catalog.Names() {
			cells, err := catalog.Resolve(name, engine.Coordinate{Row: engine.MinBoardSize / 2, Col: engine.MinBoardSize / 2}, engine.MaxBoardSize)
			if err == nil && len(cells) > widest {
				widest = len(cells)
			}
		}
		return widest
	}
	for _, shot := range config.Shots {
		if len(shot.Offsets) > widest {
			widest = len(shot.Offsets)
		}
	}
	return widest
}
