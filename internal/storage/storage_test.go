package storage

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/hailam/fairychess/internal/board"
)

func openMemory(t *testing.T) *Storage {
	t.Helper()
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open in memory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	s := openMemory(t)

	t.Run("FirstLaunch", func(t *testing.T) {
		first, err := s.IsFirstLaunch()
		if err != nil {
			t.Fatal(err)
		}
		if !first {
			t.Error("new database should report first launch")
		}
		if err := s.MarkFirstLaunchComplete(); err != nil {
			t.Fatal(err)
		}
		first, err = s.IsFirstLaunch()
		if err != nil {
			t.Fatal(err)
		}
		if first {
			t.Error("first launch still reported after marking it complete")
		}
	})

	t.Run("EmptyStats", func(t *testing.T) {
		stats, err := s.LoadStats()
		if err != nil {
			t.Fatal(err)
		}
		if stats.GamesPlayed != 0 || stats.AveragePlies() != 0 {
			t.Errorf("expected empty stats, got %+v", stats)
		}
		if stats.GamesByBoard == nil {
			t.Error("GamesByBoard should be initialized")
		}
	})
}

func TestSnapshots(t *testing.T) {
	s := openMemory(t)

	name, err := s.SaveSnapshot("opening", board.StandardPosition)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if name != "opening" {
		t.Errorf("name = %q, want opening", name)
	}

	snap, err := s.LoadSnapshot("opening")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snap.Notation != board.StandardPosition {
		t.Errorf("notation changed on the way through the store: %q", snap.Notation)
	}
	if snap.SavedAt.IsZero() {
		t.Error("SavedAt not set")
	}

	if _, err := s.SaveSnapshot("fairy", "10 10 e1K e10k c3QN h8gr"); err != nil {
		t.Fatal(err)
	}
	generated, err := s.SaveSnapshot("", "8 8 e1K e8k")
	if err != nil {
		t.Fatal(err)
	}
	if len(generated) != 36 {
		t.Errorf("generated name %q is not a uuid", generated)
	}

	list, err := s.ListSnapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Errorf("snapshots not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}

	if err := s.DeleteSnapshot("fairy"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadSnapshot("fairy"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("load after delete: err = %v, want ErrSnapshotNotFound", err)
	}
	if err := s.DeleteSnapshot("fairy"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("second delete: err = %v, want ErrSnapshotNotFound", err)
	}
}

func TestSnapshotValidation(t *testing.T) {
	s := openMemory(t)

	if _, err := s.SaveSnapshot("bad", "8 8 e1K"); !errors.Is(err, board.ErrRoyalCount) {
		t.Errorf("invalid position: err = %v, want ErrRoyalCount", err)
	}
	if _, err := s.SaveSnapshot("two words", board.StandardPosition); !errors.Is(err, ErrInvalidName) {
		t.Errorf("name with space: err = %v, want ErrInvalidName", err)
	}
	list, err := s.ListSnapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("rejected snapshots were stored: %v", list)
	}
}

func TestRecordResult(t *testing.T) {
	s := openMemory(t)

	results := []GameResult{
		{Outcome: OutcomeWhiteWins, Rows: 8, Cols: 8, Plies: 40, Duration: time.Minute},
		{Outcome: OutcomeBlackWins, Rows: 8, Cols: 8, Plies: 60, Duration: time.Minute},
		{Outcome: OutcomeStalemate, Rows: 10, Cols: 12, Plies: 20, Duration: 30 * time.Second},
	}
	for _, r := range results {
		if err := s.RecordResult(r); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 3 || stats.WhiteWins != 1 || stats.BlackWins != 1 || stats.Stalemates != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.GamesByBoard["8x8"] != 2 || stats.GamesByBoard["10x12"] != 1 {
		t.Errorf("unexpected board counts: %v", stats.GamesByBoard)
	}
	if stats.LongestGame != 60 {
		t.Errorf("LongestGame = %d, want 60", stats.LongestGame)
	}
	if got := stats.AveragePlies(); got != 40 {
		t.Errorf("AveragePlies = %v, want 40", got)
	}
	if stats.TotalPlayTime != 150*time.Second {
		t.Errorf("TotalPlayTime = %v", stats.TotalPlayTime)
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveSnapshot("kept", board.StandardPosition); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.LoadSnapshot("kept"); err != nil {
		t.Errorf("snapshot lost after reopening: %v", err)
	}
}

func TestDataPaths(t *testing.T) {
	dbDir, err := DatabaseDir()
	if err != nil {
		t.Fatalf("DatabaseDir failed: %v", err)
	}
	if dbDir == "" {
		t.Error("DatabaseDir returned empty path")
	}

	// Verify directory exists
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}

	t.Logf("Database directory: %s", dbDir)
}
