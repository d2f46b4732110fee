package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	ids := make(map[string]bool)
	for _, score := range []int{100, 50, 200} {
		id, err := store.SaveScore("ada", score)
		if err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
		if id == "" || ids[id] {
			t.Fatalf("SaveScore() returned empty or duplicate round id %q", id)
		}
		ids[id] = true
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Player != "ada" {
		t.Errorf("Player = %q, expected ada", scores[0].Player)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("", (i+1)*100)
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty store, got %d", high)
	}

	store.SaveScore("", 100)
	store.SaveScore("", 300)
	store.SaveScore("", 200)

	if high, _ = store.HighScore(); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	store.SubmitScore("ada", 300)
	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores(10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if board, _ := store.Leaderboard(10); len(board) != 1 {
		t.Error("ClearScores() should keep the leaderboard")
	}
}

func TestStoreSubmitScoreKeepsHigher(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		score     int
		submitted bool
		stored    int
	}{
		{40, true, 40},
		{25, false, 40},
		{40, false, 40},
		{90, true, 90},
	}

	for _, tc := range tests {
		ok, err := store.SubmitScore("ada", tc.score)
		if err != nil {
			t.Fatalf("SubmitScore(%d) failed: %v", tc.score, err)
		}
		if ok != tc.submitted {
			t.Errorf("SubmitScore(%d) = %v, expected %v", tc.score, ok, tc.submitted)
		}
		board, _ := store.Leaderboard(10)
		if len(board) != 1 || board[0].Score != tc.stored {
			t.Errorf("after %d: leaderboard %v, expected one entry at %d", tc.score, board, tc.stored)
		}
	}

	if _, err := store.SubmitScore("", 10); err == nil {
		t.Error("expected error for empty player name")
	}
}

func TestStoreLeaderboardOrder(t *testing.T) {
	store := openTestStore(t)

	store.SubmitScore("ada", 12)
	store.SubmitScore("bob", 30)
	store.SubmitScore("cy", 7)

	board, err := store.Leaderboard(2)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(board) != 2 || board[0].Player != "bob" || board[1].Player != "ada" {
		t.Errorf("unexpected leaderboard %v", board)
	}
}

func TestStoreRecordRound(t *testing.T) {
	store := openTestStore(t)

	first, err := store.RecordRound("ada", 10)
	if err != nil {
		t.Fatalf("RecordRound() failed: %v", err)
	}
	if !first.NewBest || !first.Submitted || first.Best != 10 || first.RoundID == "" {
		t.Errorf("first round: %+v", first)
	}

	worse, err := store.RecordRound("ada", 4)
	if err != nil {
		t.Fatalf("RecordRound() failed: %v", err)
	}
	if worse.NewBest || worse.Submitted || worse.Best != 10 {
		t.Errorf("worse round: %+v", worse)
	}

	anon, err := store.RecordRound("", 15)
	if err != nil {
		t.Fatalf("RecordRound() without name failed: %v", err)
	}
	if !anon.NewBest || anon.Submitted {
		t.Errorf("anonymous round: %+v", anon)
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Rounds != 3 || stats.HighScore != 15 || stats.TotalScore != 29 || stats.Players != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not set")
	}
}

func TestStoreRecordRoundConcurrentBest(t *testing.T) {
	store := openTestStore(t)

	const sessions = 8
	results := make([]RoundResult, sessions)
	errs := make([]error, sessions)

	var wg sync.WaitGroup
	for i := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = store.RecordRound(fmt.Sprintf("p%d", i), 50)
		}()
	}
	wg.Wait()

	newBests := 0
	for i := range sessions {
		if errs[i] != nil {
			t.Fatalf("RecordRound() #%d failed: %v", i, errs[i])
		}
		if results[i].NewBest {
			newBests++
		}
		if results[i].Best != 50 {
			t.Errorf("RecordRound() #%d best = %d, expected 50", i, results[i].Best)
		}
	}
	if newBests != 1 {
		t.Errorf("%d concurrent rounds reported a new best, expected exactly 1", newBests)
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Rounds != sessions || stats.Players != sessions {
		t.Errorf("stats = %+v, expected %d rounds and players", stats, sessions)
	}
}

func TestStoreSettingsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	got, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("fresh settings = %+v, expected defaults", got)
	}

	want := Settings{PlayerName: "ada", SoundEnabled: false}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	if got, _ = store.LoadSettings(); got != want {
		t.Errorf("LoadSettings() = %+v, expected %+v", got, want)
	}

	want.SoundEnabled = true
	want.PlayerName = "bob"
	store.SaveSettings(want)
	if got, _ = store.LoadSettings(); got != want {
		t.Errorf("overwritten settings = %+v, expected %+v", got, want)
	}
}
