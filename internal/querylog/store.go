// Package querylog persists assistant activity to SQLite: one row per
// answered query, plus report tokens issued for filed complaints.
package querylog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store handles the SQLite activity database.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the activity database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is still usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) initSchema() error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			language TEXT NOT NULL,
			query TEXT NOT NULL,
			entry_id TEXT,
			contextual INTEGER NOT NULL DEFAULT 0,
			score REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS tokens (
			token TEXT PRIMARY KEY,
			year INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			entry_id TEXT NOT NULL,
			phone TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
		`,
		`CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_entry ON turns(entry_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_year ON tokens(year)`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// TurnRecord is one logged query.
type TurnRecord struct {
	SessionID  string    `json:"session_id"`
	Language   string    `json:"language"`
	Query      string    `json:"query"`
	EntryID    string    `json:"entry_id,omitempty"`
	Contextual bool      `json:"contextual"`
	Score      float64   `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// LogTurn records one answered query.
func (s *Store) LogTurn(rec TurnRecord) error {
	query := `
		INSERT INTO turns (session_id, language, query, entry_id, contextual, score)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var entryID interface{}
	if rec.EntryID != "" {
		entryID = rec.EntryID
	}
	_, err := s.db.Exec(query, rec.SessionID, rec.Language, rec.Query, entryID, rec.Contextual, rec.Score)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

// SessionTurns returns the logged turns for one session, oldest first.
func (s *Store) SessionTurns(sessionID string) ([]TurnRecord, error) {
	query := `
		SELECT session_id, language, query, COALESCE(entry_id, ''), contextual, score, created_at
		FROM turns WHERE session_id = ? ORDER BY id
	`

	rows, err := s.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var records []TurnRecord
	for rows.Next() {
		var rec TurnRecord
		if err := rows.Scan(&rec.SessionID, &rec.Language, &rec.Query, &rec.EntryID,
			&rec.Contextual, &rec.Score, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating turns: %w", err)
	}

	return records, nil
}

// Stats summarizes logged activity.
type Stats struct {
	TotalTurns   int            `json:"total_turns"`
	Matched      int            `json:"matched"`
	Unmatched    int            `json:"unmatched"`
	Contextual   int            `json:"contextual"`
	ByLanguage   map[string]int `json:"by_language"`
	TopIncidents map[string]int `json:"top_incidents"`
	TokensIssued int            `json:"tokens_issued"`
}

// GetStats aggregates the activity log.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{
		ByLanguage:   make(map[string]int),
		TopIncidents: make(map[string]int),
	}

	row := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN entry_id IS NOT NULL THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(contextual), 0)
		FROM turns
	`)
	if err := row.Scan(&stats.TotalTurns, &stats.Matched, &stats.Contextual); err != nil {
		return nil, fmt.Errorf("failed to scan totals: %w", err)
	}
	stats.Unmatched = stats.TotalTurns - stats.Matched

	rows, err := s.db.Query(`SELECT language, COUNT(*) FROM turns GROUP BY language`)
	if err != nil {
		return nil, fmt.Errorf("failed to query language counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var language string
		var count int
		if err := rows.Scan(&language, &count); err != nil {
			return nil, fmt.Errorf("failed to scan language count: %w", err)
		}
		stats.ByLanguage[language] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating language counts: %w", err)
	}

	entryRows, err := s.db.Query(`
		SELECT entry_id, COUNT(*) FROM turns
		WHERE entry_id IS NOT NULL GROUP BY entry_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query incident counts: %w", err)
	}
	defer entryRows.Close()
	for entryRows.Next() {
		var entryID string
		var count int
		if err := entryRows.Scan(&entryID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan incident count: %w", err)
		}
		stats.TopIncidents[entryID] = count
	}
	if err := entryRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incident counts: %w", err)
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tokens`).Scan(&stats.TokensIssued); err != nil {
		return nil, fmt.Errorf("failed to scan token count: %w", err)
	}

	return stats, nil
}
