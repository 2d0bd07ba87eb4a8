package runstore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/minipl/foundation/core/error"
	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	"github.com/msto63/minipl/foundation/minipl"
)

// Run is one recorded program execution
type Run struct {
	ID          string        `json:"id"`
	Source      string        `json:"source"`
	SourceHash  string        `json:"source_hash"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	Status      string        `json:"status"`
	Error       string        `json:"error,omitempty"`
	OutputBytes int64         `json:"output_bytes"`
}

// NewRun builds a history record from an engine result. source names the
// program (file path or "playground"), text is the program itself.
func NewRun(source, text string, result *minipl.Result, runErr error) *Run {
	run := &Run{
		ID:          result.RunID,
		Source:      source,
		SourceHash:  HashSource(text),
		StartedAt:   result.StartedAt,
		Duration:    result.Duration,
		Status:      result.Status,
		OutputBytes: result.OutputBytes,
	}
	if runErr != nil {
		run.Error = mdwerrors.Message(runErr)
	}
	return run
}

// HashSource returns the hex SHA-256 of a program text
func HashSource(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Filter defines criteria for listing runs
type Filter struct {
	Status     string
	SourceHash string
	Since      time.Time
	Limit      int
	Offset     int
}

// Stats summarizes the history
type Stats struct {
	Total    int64
	ByStatus map[string]int64
	LastRun  time.Time
}

// Store defines the interface for run persistence
type Store interface {
	Record(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, filter Filter) ([]*Run, error)
	Stats(ctx context.Context) (*Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/history.db",
	}
}

// NewSQLiteStore opens (and if needed creates) the run history database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dbError("Open", fmt.Errorf("failed to create directory: %w", err))
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, dbError("Open", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError("Open", fmt.Errorf("failed to initialize schema: %w", err))
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		source_hash TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		duration_us INTEGER NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		output_bytes INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
	CREATE INDEX IF NOT EXISTS idx_runs_source_hash ON runs(source_hash);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run. Missing IDs and timestamps are filled in.
func (s *SQLiteStore) Record(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(run)

	var errText sql.NullString
	if run.Error != "" {
		errText = sql.NullString{String: run.Error, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, source_hash, started_at, duration_us, status, error, output_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.SourceHash, run.StartedAt, run.Duration.Microseconds(),
		run.Status, errText, run.OutputBytes)
	if err != nil {
		return dbError("Record", fmt.Errorf("failed to insert run: %w", err))
	}
	return nil
}

// Get returns the run with the given ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, source_hash, started_at, duration_us, status, error, output_bytes
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mdwerrors.NotFound(mdwerrors.ModuleRunStore, "Get", id)
	}
	if err != nil {
		return nil, dbError("Get", err)
	}
	return run, nil
}

// List returns runs matching filter, newest first
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, source, source_hash, started_at, duration_us, status, error, output_bytes FROM runs WHERE 1=1`
	var args []interface{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.SourceHash != "" {
		query += " AND source_hash = ?"
		args = append(args, filter.SourceHash)
	}
	if !filter.Since.IsZero() {
		query += " AND started_at >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY started_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("List", fmt.Errorf("failed to query runs: %w", err))
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, dbError("List", fmt.Errorf("failed to scan run: %w", err))
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("List", err)
	}
	return runs, nil
}

// Stats returns run counts per status
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByStatus: make(map[string]int64)}

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM runs GROUP BY status`)
	if err != nil {
		return nil, dbError("Stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, dbError("Stats", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("Stats", err)
	}

	if stats.Total > 0 {
		var last time.Time
		err := s.db.QueryRowContext(ctx, `SELECT started_at FROM runs ORDER BY started_at DESC LIMIT 1`).Scan(&last)
		if err != nil {
			return nil, dbError("Stats", err)
		}
		stats.LastRun = last
	}
	return stats, nil
}

// Prune removes runs older than the specified duration
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, dbError("Prune", fmt.Errorf("failed to prune runs: %w", err))
	}
	deleted, _ := result.RowsAffected()
	return deleted, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var durationUS int64
	var errText sql.NullString

	if err := row.Scan(&run.ID, &run.Source, &run.SourceHash, &run.StartedAt, &durationUS,
		&run.Status, &errText, &run.OutputBytes); err != nil {
		return nil, err
	}
	run.Duration = time.Duration(durationUS) * time.Microsecond
	if errText.Valid {
		run.Error = errText.String
	}
	return &run, nil
}

func prepare(run *Run) {
	if run.ID == "" {
		run.ID = fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()
	if run.Status == "" {
		run.Status = minipl.StatusOK
	}
}

func dbError(operation string, err error) error {
	return mdwerrors.OperationFailed(mdwerrors.ModuleRunStore, operation, mdwerror.CodeDatabaseError, err)
}

// MemoryStore is an in-memory implementation for testing
type MemoryStore struct {
	mu   sync.RWMutex
	runs []*Run
}

// NewMemoryStore creates a new in-memory run store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make([]*Run, 0)}
}

// Record stores a copy of run
func (s *MemoryStore) Record(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(run)
	stored := *run
	s.runs = append(s.runs, &stored)
	return nil
}

// Get returns the run with the given ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, run := range s.runs {
		if run.ID == id {
			found := *run
			return &found, nil
		}
	}
	return nil, mdwerrors.NotFound(mdwerrors.ModuleRunStore, "Get", id)
}

// List returns runs matching filter, newest first
func (s *MemoryStore) List(ctx context.Context, filter Filter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Run
	for _, run := range s.runs {
		if filter.Status != "" && run.Status != filter.Status {
			continue
		}
		if filter.SourceHash != "" && run.SourceHash != filter.SourceHash {
			continue
		}
		if !filter.Since.IsZero() && run.StartedAt.Before(filter.Since) {
			continue
		}
		found := *run
		result = append(result, &found)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return nil, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Stats returns run counts per status
func (s *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByStatus: make(map[string]int64)}
	for _, run := range s.runs {
		stats.Total++
		stats.ByStatus[run.Status]++
		if run.StartedAt.After(stats.LastRun) {
			stats.LastRun = run.StartedAt
		}
	}
	return stats, nil
}

// Prune removes runs older than the specified duration
func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	kept := s.runs[:0]
	var deleted int64
	for _, run := range s.runs {
		if run.StartedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, run)
	}
	s.runs = kept
	return deleted, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
