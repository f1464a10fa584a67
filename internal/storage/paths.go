// Package storage provides persistent storage for saved positions and game statistics.
package storage

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "fairychess"

// DataDir returns the application data directory under the XDG data home,
// creating it if needed.
// - Linux: ~/.local/share/fairychess/
// - macOS: ~/Library/Application Support/fairychess/
// - Windows: %LOCALAPPDATA%/fairychess/
func DataDir() (string, error) {
	dataDir := filepath.Join(xdg.DataHome, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// DatabaseDir returns the directory for storing the BadgerDB database.
func DatabaseDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
