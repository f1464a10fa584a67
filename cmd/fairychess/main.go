// Command fairychess plays and edits fairy-chess positions from the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hailam/fairychess/internal/config"
	"github.com/hailam/fairychess/internal/shell"
	"github.com/hailam/fairychess/internal/storage"
)

var (
	configPath = flag.String("config", "", "config file (default: search the XDG config dirs)")
	dbDir      = flag.String("db", "", "database directory (overrides the config file)")
	inMemory   = flag.Bool("memory", false, "keep saved positions and statistics in memory only")
)

func main() {
	flag.Parse()

	if err := run(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run does the work of main and returns, leaving os.Exit to main so the
// store is closed on every path.
func run(in io.Reader, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if *dbDir != "" {
		cfg.DatabaseDir = *dbDir
	}
	if *inMemory {
		cfg.InMemory = true
	}

	var sh *shell.Shell
	store, err := openStorage(cfg)
	if err != nil {
		// Play still works without persistence.
		log.Printf("Warning: Failed to initialize storage: %v", err)
		sh, err = shell.New(cfg.DefaultPosition, nil)
	} else {
		defer store.Close()
		sh, err = shell.New(cfg.DefaultPosition, store)
	}
	if err != nil {
		return err
	}

	return sh.Run(in, out)
}

func loadConfig() (*config.Config, error) {
	if *configPath != "" {
		return config.LoadFile(*configPath)
	}
	return config.Load()
}

func openStorage(cfg *config.Config) (*storage.Storage, error) {
	switch {
	case cfg.InMemory:
		return storage.Open("")
	case cfg.DatabaseDir != "":
		if err := os.MkdirAll(cfg.DatabaseDir, 0755); err != nil {
			return nil, err
		}
		return storage.Open(cfg.DatabaseDir)
	default:
		return storage.OpenDefault()
	}
}
