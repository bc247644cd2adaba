/*
Package sqlite provides a SQLite-backed implementation of generic.ConfigStore.

PURPOSE:
  Persists the static configuration an evaluation reads: the holiday
  calendar and the teams with their default monthly targets. Nothing
  computed is stored; evaluations are always recomputed from inputs.

INTERFACES IMPLEMENTED:
  generic.HolidayStore: Holiday CRUD plus per-period expansion
  generic.TeamStore:    Team default targets

KEY TABLES:
  holidays: One row per configured holiday (recurring or one-off)
  teams:    Team name and default target

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. Reads share the lock; writes are
  serialised.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers never block
  on the single writer.

USAGE:
  store, err := sqlite.New("./data/quota.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  holidays, err := store.HolidaysFor(ctx, period)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/atlas/quota-engine/generic"
)

// Store implements generic.ConfigStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ generic.ConfigStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring BOOLEAN DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_date
		ON holidays(date);

	CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		default_target INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_name
		ON teams(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// HOLIDAY STORE (generic.HolidayStore interface)
// =============================================================================

// SaveHoliday inserts a holiday or replaces the one with the same ID.
func (s *Store) SaveHoliday(ctx context.Context, h generic.Holiday) error {
	if h.ID == "" {
		return &generic.InvalidArgumentError{Field: "id", Value: h.ID, Reason: "required"}
	}
	if h.Date.IsZero() {
		return &generic.InvalidArgumentError{Field: "date", Value: h.Date, Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			name = excluded.name,
			recurring = excluded.recurring
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID,
		h.Date.String(),
		h.Name,
		h.Recurring,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save holiday %s: %w", h.ID, err)
	}
	return nil
}

// DeleteHoliday deletes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete holiday %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", generic.ErrHolidayNotFound, id)
	}
	return nil
}

// ListHolidays returns all holidays ordered by date.
func (s *Store) ListHolidays(ctx context.Context) ([]generic.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, date, name, recurring
		FROM holidays
		ORDER BY date ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHolidays(rows)
}

// HolidaysFor returns the holiday dates inside period. One-off holidays are
// filtered in SQL; recurring ones are expanded into the period's years.
func (s *Store) HolidaysFor(ctx context.Context, period generic.Period) (generic.HolidaySet, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, date, name, recurring
		FROM holidays
		WHERE (recurring = FALSE AND date BETWEEN ? AND ?)
		   OR recurring = TRUE
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, period.Start.String(), period.End.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays, err := scanHolidays(rows)
	if err != nil {
		return nil, err
	}
	return generic.HolidaySetFor(holidays, period), nil
}

func scanHolidays(rows *sql.Rows) ([]generic.Holiday, error) {
	var holidays []generic.Holiday
	for rows.Next() {
		var h generic.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &dateStr, &h.Name, &h.Recurring); err != nil {
			return nil, err
		}
		date, err := generic.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("holiday %s has corrupt date: %w", h.ID, err)
		}
		h.Date = date
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// =============================================================================
// TEAM STORE (generic.TeamStore interface)
// =============================================================================

// SaveTeam upserts a team by ID.
func (s *Store) SaveTeam(ctx context.Context, t generic.Team) error {
	if strings.TrimSpace(t.ID) == "" {
		return &generic.InvalidArgumentError{Field: "id", Value: t.ID, Reason: "required"}
	}
	if t.DefaultTarget < 0 {
		return generic.NegativeCountError("default_target", t.DefaultTarget)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Format(time.RFC3339)
	query := `
		INSERT INTO teams (id, name, default_target, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			default_target = excluded.default_target,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, t.ID, t.Name, t.DefaultTarget, now, now); err != nil {
		if isUniqueViolation(err) {
			return generic.DuplicateTeamNameError(t.Name)
		}
		return fmt.Errorf("save team %s: %w", t.ID, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// GetTeam retrieves a team by ID.
func (s *Store) GetTeam(ctx context.Context, id string) (generic.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t generic.Team
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, default_target FROM teams WHERE id = ?", id,
	).Scan(&t.ID, &t.Name, &t.DefaultTarget)
	if err == sql.ErrNoRows {
		return generic.Team{}, fmt.Errorf("%w: %s", generic.ErrTeamNotFound, id)
	}
	if err != nil {
		return generic.Team{}, err
	}
	return t, nil
}

// ListTeams returns all teams ordered by name.
func (s *Store) ListTeams(ctx context.Context) ([]generic.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, default_target FROM teams ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []generic.Team
	for rows.Next() {
		var t generic.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.DefaultTarget); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
