// Package storage provides SQLite-based persistence for rounds, the
// leaderboard and player settings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// dsnParams make a connection wait for a concurrent writer instead of
// failing with SQLITE_BUSY, and take the write lock when a transaction
// begins. SSH sessions record rounds concurrently.
const dsnParams = "?_pragma=busy_timeout(5000)&_txlock=immediate"

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// ScoreEntry is one finished round.
type ScoreEntry struct {
	ID        int64
	RoundID   string
	Player    string
	Score     int
	CreatedAt time.Time
}

// LeaderboardEntry is a player's best submitted score.
type LeaderboardEntry struct {
	Player    string
	Score     int
	UpdatedAt time.Time
}

// RoundResult describes what RecordRound changed.
type RoundResult struct {
	RoundID   string
	Best      int  // Best score after this round
	NewBest   bool // This round beat the previous best
	Submitted bool // The leaderboard entry was created or raised
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);

		CREATE TABLE IF NOT EXISTS leaderboard (
			player TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_top ON leaderboard(score DESC);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime converts a scanned DATETIME column, which the driver may return
// as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a finished round and returns its generated round ID.
func (s *Store) SaveScore(player string, score int) (string, error) {
	return saveScore(s.db, player, score)
}

func saveScore(q execer, player string, score int) (string, error) {
	roundID := uuid.NewString()
	_, err := q.Exec(
		"INSERT INTO scores (round_id, player, score) VALUES (?, ?, ?)",
		roundID, player, score,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save score: %w", err)
	}
	return roundID, nil
}

// TopScores retrieves the top N rounds ordered by score descending.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, round_id, player, score, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RoundID, &e.Player, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score ever recorded, or 0 if none exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes every recorded round. The leaderboard is kept.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SubmitScore creates the player's leaderboard entry or raises it.
// A score that does not beat the existing entry is ignored and reported as
// false.
func (s *Store) SubmitScore(player string, score int) (bool, error) {
	return submitScore(s.db, player, score)
}

func submitScore(q execer, player string, score int) (bool, error) {
	if player == "" {
		return false, errors.New("storage: leaderboard player name is empty")
	}

	res, err := q.Exec(
		`INSERT INTO leaderboard (player, score) VALUES (?, ?)
		 ON CONFLICT(player) DO UPDATE
		 SET score = excluded.score, updated_at = CURRENT_TIMESTAMP
		 WHERE excluded.score > leaderboard.score`,
		player, score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot submit score: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	return n > 0, nil
}

// Leaderboard returns the top N players ordered by score descending.
func (s *Store) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT player, score, updated_at
		 FROM leaderboard
		 ORDER BY score DESC, updated_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var updatedAt any
		if err := rows.Scan(&e.Player, &e.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RecordRound persists a finished round: the score itself, the best score,
// and the player's leaderboard entry when a name is set. Everything happens
// in one write transaction, so concurrent rounds serialize and at most one
// of them sees a new best.
func (s *Store) RecordRound(player string, score int) (RoundResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return RoundResult{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	roundID, err := saveScore(tx, player, score)
	if err != nil {
		return RoundResult{}, err
	}

	var prev sql.NullInt64
	if err := tx.QueryRow(
		"SELECT MAX(score) FROM scores WHERE round_id <> ?", roundID,
	).Scan(&prev); err != nil {
		return RoundResult{}, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	prevBest := int(prev.Int64)

	result := RoundResult{
		RoundID: roundID,
		Best:    max(prevBest, score),
		NewBest: score > prevBest,
	}

	if player != "" {
		if result.Submitted, err = submitScore(tx, player, score); err != nil {
			return RoundResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return RoundResult{}, fmt.Errorf("storage: cannot commit round: %w", err)
	}
	return result, nil
}

// Stats contains aggregated statistics over all recorded rounds.
type Stats struct {
	Rounds     int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	Players    int // Leaderboard entries
	LastPlayed time.Time
}

// GetStats retrieves aggregated round statistics.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores`,
	).Scan(&stats.Rounds, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM leaderboard").Scan(&stats.Players); err != nil {
		return nil, fmt.Errorf("storage: cannot count leaderboard: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		"SELECT created_at FROM scores ORDER BY created_at DESC, id DESC LIMIT 1",
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
