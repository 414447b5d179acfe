// Package config provides fleet configuration management for the Broadside
// server.
//
// Configurations are JSON files in a config directory, each defining a board
// size, a ship roster, and optionally a custom shot pattern catalog. The
// Manager loads them on demand, caches parsed configs, and falls back to a
// built-in minimal fleet when the directory holds no usable files.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cfg, err := manager.LoadConfig("classic")
//	infos, err := manager.ListConfigs()
//
// The manager is safe for concurrent use.
package config
