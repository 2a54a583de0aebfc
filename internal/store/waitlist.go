package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type WaitlistEntry struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Source     string    `json:"source,omitempty"`
	CreatedUTC time.Time `json:"created_utc"`
}

// AddWaitlistEntry appends a signup. Repeated emails are stored again.
func (s *Store) AddWaitlistEntry(ctx context.Context, email, source string) (WaitlistEntry, error) {
	entry := WaitlistEntry{
		ID:         uuid.NewString(),
		Email:      strings.TrimSpace(email),
		Source:     strings.TrimSpace(source),
		CreatedUTC: time.Now().UTC(),
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO waitlist_entries (id, email, source, created_utc)
		VALUES (?, ?, ?, ?)
	`, entry.ID, entry.Email, entry.Source, entry.CreatedUTC.Format(time.RFC3339Nano)); err != nil {
		return WaitlistEntry{}, fmt.Errorf("insert waitlist entry: %w", err)
	}
	return entry, nil
}

// ListWaitlistEntries returns signups in insertion order.
func (s *Store) ListWaitlistEntries(ctx context.Context) ([]WaitlistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, source, created_utc
		FROM waitlist_entries
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list waitlist entries: %w", err)
	}
	defer rows.Close()

	out := []WaitlistEntry{}
	for rows.Next() {
		var (
			entry      WaitlistEntry
			createdUTC string
		)
		if err := rows.Scan(&entry.ID, &entry.Email, &entry.Source, &createdUTC); err != nil {
			return nil, fmt.Errorf("scan waitlist entry: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdUTC); err == nil {
			entry.CreatedUTC = t
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate waitlist entries: %w", err)
	}
	return out, nil
}

func (s *Store) CountWaitlistEntries(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM waitlist_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count waitlist entries: %w", err)
	}
	return n, nil
}
