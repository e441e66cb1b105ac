package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"eyecare/internal/core/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const journalFileName = "journal.db"

// Journal is the SQLite log of how breaks ended.
type Journal struct {
	db *sql.DB
}

// JournalPath returns the journal location inside dir.
func JournalPath(dir string) string {
	return filepath.Join(dir, journalFileName)
}

// OpenJournal opens or creates the journal database and applies migrations.
func OpenJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	journal := &Journal{db: db}
	if err := journal.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return journal, nil
}

// Close closes the underlying database.
func (journal *Journal) Close() error {
	return journal.db.Close()
}

func (journal *Journal) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS breaks (
			id INTEGER PRIMARY KEY,
			at_unix_ms INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			streak INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_breaks_at ON breaks(at_unix_ms);`,
	}
	for _, stmt := range stmts {
		if _, err := journal.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record appends one break outcome.
func (journal *Journal) Record(ctx context.Context, entry model.BreakEntry) error {
	_, err := journal.db.ExecContext(ctx,
		`INSERT INTO breaks (at_unix_ms, outcome, streak) VALUES (?, ?, ?)`,
		entry.At.UnixMilli(),
		string(entry.Outcome),
		entry.Streak,
	)
	if err != nil {
		return fmt.Errorf("record break: %w", err)
	}
	return nil
}

// DailyTotals counts outcomes for the local calendar day containing day.
func (journal *Journal) DailyTotals(ctx context.Context, day time.Time) (model.DailyTotals, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	rows, err := journal.db.QueryContext(ctx,
		`SELECT outcome, COUNT(*) FROM breaks
		 WHERE at_unix_ms >= ? AND at_unix_ms < ?
		 GROUP BY outcome`,
		start.UnixMilli(),
		end.UnixMilli(),
	)
	if err != nil {
		return model.DailyTotals{}, fmt.Errorf("query daily totals: %w", err)
	}
	defer rows.Close()

	var totals model.DailyTotals
	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return model.DailyTotals{}, fmt.Errorf("scan daily totals: %w", err)
		}
		switch model.BreakOutcome(outcome) {
		case model.BreakCompleted:
			totals.Completed = count
		case model.BreakSkipped:
			totals.Skipped = count
		}
	}
	if err := rows.Err(); err != nil {
		return model.DailyTotals{}, fmt.Errorf("iterate daily totals: %w", err)
	}
	return totals, nil
}

// Recent returns the latest entries, newest first.
func (journal *Journal) Recent(ctx context.Context, limit int) ([]model.BreakEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := journal.db.QueryContext(ctx,
		`SELECT at_unix_ms, outcome, streak FROM breaks ORDER BY at_unix_ms DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent breaks: %w", err)
	}
	defer rows.Close()

	var entries []model.BreakEntry
	for rows.Next() {
		var atMillis int64
		var outcome string
		var entry model.BreakEntry
		if err := rows.Scan(&atMillis, &outcome, &entry.Streak); err != nil {
			return nil, fmt.Errorf("scan recent breaks: %w", err)
		}
		entry.At = time.UnixMilli(atMillis)
		entry.Outcome = model.BreakOutcome(outcome)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent breaks: %w", err)
	}
	return entries, nil
}
