package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/hailam/fairychess/internal/board"
)

// Storage keys
const (
	keyStats          = "stats"
	keyFirstLaunch    = "first_launch"
	keySnapshotPrefix = "snapshot/"
)

var (
	// ErrSnapshotNotFound is returned when no snapshot has the requested name.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrInvalidName is returned for snapshot names containing whitespace.
	ErrInvalidName = errors.New("invalid snapshot name")
)

// Snapshot is a named position saved in board notation.
type Snapshot struct {
	Name     string    `json:"name"`
	Notation string    `json:"notation"`
	SavedAt  time.Time `json:"saved_at"`
}

// Outcome is how a finished game ended.
type Outcome int

const (
	OutcomeWhiteWins Outcome = iota
	OutcomeBlackWins
	OutcomeStalemate
)

// String returns a short description of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWhiteWins:
		return "white wins"
	case OutcomeBlackWins:
		return "black wins"
	default:
		return "stalemate"
	}
}

// GameResult represents the result of a completed game
type GameResult struct {
	Outcome  Outcome
	Rows     int
	Cols     int
	Plies    int
	Duration time.Duration
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Stalemates    int            `json:"stalemates"`
	GamesByBoard  map[string]int `json:"games_by_board"`
	TotalPlies    int            `json:"total_plies"`
	LongestGame   int            `json:"longest_game"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		GamesByBoard: make(map[string]int),
	}
}

// AveragePlies returns the mean game length in plies.
func (s *GameStats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens the database in dir. An empty dir opens a database that lives
// only in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the user's data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SaveSnapshot stores a position under name, replacing any snapshot with the
// same name. An empty name is replaced by a generated one. The notation must
// parse as a valid position. It returns the name used.
func (s *Storage) SaveSnapshot(name, notation string) (string, error) {
	if name == "" {
		name = uuid.New().String()
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, err := board.Parse(notation); err != nil {
		return "", fmt.Errorf("save snapshot %s: %w", name, err)
	}

	data, err := json.Marshal(Snapshot{
		Name:     name,
		Notation: notation,
		SavedAt:  time.Now(),
	})
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySnapshotPrefix+name), data)
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// LoadSnapshot returns the snapshot saved under name.
func (s *Storage) LoadSnapshot(name string) (*Snapshot, error) {
	var snap Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySnapshotPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListSnapshots returns every saved snapshot ordered by name.
func (s *Storage) ListSnapshots() ([]Snapshot, error) {
	var snaps []Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(keySnapshotPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var snap Snapshot
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &snap)
			})
			if err != nil {
				return err
			}
			snaps = append(snaps, snap)
		}
		return nil
	})

	return snaps, err
}

// DeleteSnapshot removes the snapshot saved under name.
func (s *Storage) DeleteSnapshot(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(keySnapshotPrefix + name)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	if stats.GamesByBoard == nil {
		stats.GamesByBoard = make(map[string]int)
	}

	return stats, err
}

// RecordResult records a completed game and updates statistics
func (s *Storage) RecordResult(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlies += result.Plies
	stats.TotalPlayTime += result.Duration
	if result.Plies > stats.LongestGame {
		stats.LongestGame = result.Plies
	}
	stats.GamesByBoard[fmt.Sprintf("%dx%d", result.Rows, result.Cols)]++

	switch result.Outcome {
	case OutcomeWhiteWins:
		stats.WhiteWins++
	case OutcomeBlackWins:
		stats.BlackWins++
	default:
		stats.Stalemates++
	}

	return s.SaveStats(stats)
}
