/*
store.go - Persistence interfaces for static configuration

PURPOSE:
  Defines the interface between the presentation layer and whatever holds
  the calendar configuration (holidays) and team defaults (monthly
  targets). The engine never touches a store: a handler loads what it
  needs, builds a HolidaySet, and passes plain values into Evaluate.

WHAT IS NOT STORED:
  Evaluations, counts, projections and commissions are never persisted.
  Every evaluation is recomputed from its inputs.

KEY INTERFACES:
  HolidayStore: Holiday CRUD plus per-period expansion
  TeamStore:    Team default targets
  ConfigStore:  Both, as implemented by every concrete store

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite-backed
  - generic/store/memory.go: In-memory for testing and :memory: setups

SEE ALSO:
  - time.go: Holiday and HolidaySet
  - api/handlers.go: Loads holidays/teams before evaluating
*/
package generic

import "context"

// Team groups salespeople that share a default monthly target.
type Team struct {
	ID            string
	Name          string
	DefaultTarget int
}

// HolidayStore persists the holiday calendar.
type HolidayStore interface {
	// SaveHoliday inserts or replaces a holiday by ID.
	SaveHoliday(ctx context.Context, h Holiday) error

	// DeleteHoliday removes a holiday. Returns ErrHolidayNotFound if absent.
	DeleteHoliday(ctx context.Context, id string) error

	// ListHolidays returns all configured holidays ordered by date.
	ListHolidays(ctx context.Context) ([]Holiday, error)

	// HolidaysFor returns the concrete holiday dates falling in period,
	// with recurring holidays expanded to the period's year(s).
	HolidaysFor(ctx context.Context, period Period) (HolidaySet, error)
}

// TeamStore persists teams and their default targets.
type TeamStore interface {
	SaveTeam(ctx context.Context, t Team) error

	// GetTeam returns ErrTeamNotFound if absent.
	GetTeam(ctx context.Context, id string) (Team, error)

	ListTeams(ctx context.Context) ([]Team, error)
}

// ConfigStore is the full configuration surface.
type ConfigStore interface {
	HolidayStore
	TeamStore
}
