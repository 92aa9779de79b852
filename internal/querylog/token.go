package querylog

import (
	"database/sql"
	"fmt"
	"time"
)

// Token is an issued report token.
type Token struct {
	Value     string    `json:"value"`
	Year      int       `json:"year"`
	Seq       int       `json:"seq"`
	EntryID   string    `json:"entry_id"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IssueToken allocates the next report token for the given year in the
// form YEAR/NNNN. Sequences start at 1 each year and are zero-padded to
// four digits; they keep counting past 9999 without truncation. The
// insert and the max-sequence read run in one transaction so concurrent
// issuers never collide.
func (s *Store) IssueToken(now time.Time, entryID, phone string) (*Token, error) {
	year := now.Year()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var maxSeq int
	row := tx.QueryRow(`SELECT COALESCE(MAX(seq), 0) FROM tokens WHERE year = ?`, year)
	if err := row.Scan(&maxSeq); err != nil {
		return nil, fmt.Errorf("failed to read token sequence: %w", err)
	}

	seq := maxSeq + 1
	value := fmt.Sprintf("%d/%04d", year, seq)

	var phoneArg interface{}
	if phone != "" {
		phoneArg = phone
	}
	if _, err := tx.Exec(
		`INSERT INTO tokens (token, year, seq, entry_id, phone) VALUES (?, ?, ?, ?, ?)`,
		value, year, seq, entryID, phoneArg,
	); err != nil {
		return nil, fmt.Errorf("failed to insert token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit token: %w", err)
	}

	return &Token{
		Value:     value,
		Year:      year,
		Seq:       seq,
		EntryID:   entryID,
		Phone:     phone,
		CreatedAt: now,
	}, nil
}

// LookupToken returns an issued token, or nil if it was never issued.
func (s *Store) LookupToken(value string) (*Token, error) {
	row := s.db.QueryRow(`
		SELECT token, year, seq, entry_id, COALESCE(phone, ''), created_at
		FROM tokens WHERE token = ?
	`, value)

	var t Token
	if err := row.Scan(&t.Value, &t.Year, &t.Seq, &t.EntryID, &t.Phone, &t.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan token: %w", err)
	}
	return &t, nil
}
