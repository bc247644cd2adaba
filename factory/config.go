/*
Package factory provides JSON to Go configuration conversion.

PURPOSE:
  Converts JSON configuration (teams with default targets, holiday
  calendars) into generic.Team and generic.Holiday values, and seeds a
  generic.ConfigStore from them. Sales ops can change targets or add a
  holiday by editing a file; no code change is needed.

JSON SCHEMA:
  {
    "teams": [
      {"id": "ura", "name": "URA", "default_target": 80}
    ],
    "holidays": [
      {"date": "2025-11-20", "name": "Consciência Negra", "recurring": false}
    ]
  }

KEY FEATURES:
  - Validates structure (required IDs, non-negative targets, dates)
  - Derives team IDs from names when omitted
  - Derives holiday IDs from dates, so re-seeding is idempotent

USAGE:
  f := factory.NewConfigFactory()
  cfg, err := f.ParseConfig(factory.DefaultConfigJSON)
  if err != nil {
      return err
  }
  err = f.Seed(ctx, store, cfg)

SEE ALSO:
  - generic/store.go: Team, HolidayStore, TeamStore
  - config/config.go: TEAMS_FILE and DEFAULT_HOLIDAYS
  - cmd/server/main.go: Seeds the store at startup
  - cmd/quota/commands/root.go: Seeds the in-memory store of the CLI
*/
package factory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/atlas/quota-engine/generic"
)

// DefaultConfigJSON holds the teams every deployment starts with.
const DefaultConfigJSON = `{
  "teams": [
    {"id": "ura", "name": "URA", "default_target": 80},
    {"id": "discador", "name": "DISCADOR", "default_target": 60},
    {"id": "outro", "name": "Outro", "default_target": 60}
  ]
}`

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigJSON is the JSON representation of a configuration file.
type ConfigJSON struct {
	Teams    []TeamJSON    `json:"teams,omitempty"`
	Holidays []HolidayJSON `json:"holidays,omitempty"`
}

// TeamJSON represents one team.
type TeamJSON struct {
	ID            string `json:"id,omitempty"` // Derived from name when empty
	Name          string `json:"name"`
	DefaultTarget int    `json:"default_target"`
}

// HolidayJSON represents one holiday.
type HolidayJSON struct {
	ID        string `json:"id,omitempty"` // Derived from date when empty
	Date      string `json:"date"`         // YYYY-MM-DD
	Name      string `json:"name"`
	Recurring bool   `json:"recurring,omitempty"`
}

// Config is the parsed, validated configuration.
type Config struct {
	Teams    []generic.Team
	Holidays []generic.Holiday
}

// =============================================================================
// CONFIG FACTORY
// =============================================================================

// ConfigFactory converts JSON configuration to Go structs.
type ConfigFactory struct{}

// NewConfigFactory creates a new config factory.
func NewConfigFactory() *ConfigFactory {
	return &ConfigFactory{}
}

// ParseConfig parses a JSON string into a Config.
func (f *ConfigFactory) ParseConfig(jsonStr string) (*Config, error) {
	var cj ConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts ConfigJSON to a Config.
func (f *ConfigFactory) FromJSON(cj ConfigJSON) (*Config, error) {
	cfg := &Config{}

	seen := make(map[string]bool, len(cj.Teams))
	for i, tj := range cj.Teams {
		team, err := f.Team(tj)
		if err != nil {
			return nil, fmt.Errorf("teams[%d]: %w", i, err)
		}
		if seen[team.ID] {
			return nil, fmt.Errorf("teams[%d]: %w", i, &generic.InvalidArgumentError{
				Field: "id", Value: team.ID, Reason: "duplicate team",
			})
		}
		seen[team.ID] = true
		cfg.Teams = append(cfg.Teams, team)
	}

	for i, hj := range cj.Holidays {
		holiday, err := f.Holiday(hj)
		if err != nil {
			return nil, fmt.Errorf("holidays[%d]: %w", i, err)
		}
		cfg.Holidays = append(cfg.Holidays, holiday)
	}

	return cfg, nil
}

// Team converts and validates one TeamJSON.
func (f *ConfigFactory) Team(tj TeamJSON) (generic.Team, error) {
	name := strings.TrimSpace(tj.Name)
	if name == "" {
		return generic.Team{}, &generic.InvalidArgumentError{Field: "name", Value: tj.Name, Reason: "required"}
	}
	if tj.DefaultTarget < 0 {
		return generic.Team{}, generic.NegativeCountError("default_target", tj.DefaultTarget)
	}

	id := strings.TrimSpace(tj.ID)
	if id == "" {
		id = TeamID(name)
	}
	return generic.Team{ID: id, Name: name, DefaultTarget: tj.DefaultTarget}, nil
}

// Holiday converts and validates one HolidayJSON.
func (f *ConfigFactory) Holiday(hj HolidayJSON) (generic.Holiday, error) {
	date, err := generic.ParseDate(hj.Date)
	if err != nil {
		return generic.Holiday{}, err
	}

	name := strings.TrimSpace(hj.Name)
	if name == "" {
		name = "Holiday"
	}
	h := generic.NewHoliday(date, name, hj.Recurring)
	if hj.ID != "" {
		h.ID = hj.ID
	}
	return h, nil
}

// ToJSON converts a Config back to its JSON shape.
func (f *ConfigFactory) ToJSON(cfg *Config) ConfigJSON {
	var cj ConfigJSON
	for _, t := range cfg.Teams {
		cj.Teams = append(cj.Teams, TeamJSON{ID: t.ID, Name: t.Name, DefaultTarget: t.DefaultTarget})
	}
	for _, h := range cfg.Holidays {
		cj.Holidays = append(cj.Holidays, HolidayJSON{
			ID:        h.ID,
			Date:      h.Date.String(),
			Name:      h.Name,
			Recurring: h.Recurring,
		})
	}
	return cj
}

// Seed writes every team and holiday in cfg to store. Saving is an upsert,
// so seeding twice leaves the store unchanged.
func (f *ConfigFactory) Seed(ctx context.Context, store generic.ConfigStore, cfg *Config) error {
	for _, t := range cfg.Teams {
		if err := store.SaveTeam(ctx, t); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}
	for _, h := range cfg.Holidays {
		if err := store.SaveHoliday(ctx, h); err != nil {
			return fmt.Errorf("seed holiday %s: %w", h.ID, err)
		}
	}
	return nil
}

// LoadDefaults builds the configuration every process starts from: the teams
// in teamsFile (DefaultConfigJSON when empty) plus one-off holidays for
// holidayDates.
func (f *ConfigFactory) LoadDefaults(teamsFile string, holidayDates []string) (*Config, error) {
	teamsJSON := DefaultConfigJSON
	if teamsFile != "" {
		raw, err := os.ReadFile(teamsFile)
		if err != nil {
			return nil, fmt.Errorf("read teams file: %w", err)
		}
		teamsJSON = string(raw)
	}

	cfg, err := f.ParseConfig(teamsJSON)
	if err != nil {
		return nil, err
	}

	holidays, err := HolidaysFromDates(holidayDates)
	if err != nil {
		return nil, err
	}
	cfg.Holidays = append(cfg.Holidays, holidays...)
	return cfg, nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

// TeamID derives a URL-safe ID from a team name: "Time Azul" -> "time-azul".
func TeamID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// HolidaysFromDates builds one-off holidays from YYYY-MM-DD strings.
func HolidaysFromDates(dates []string) ([]generic.Holiday, error) {
	f := NewConfigFactory()
	holidays := make([]generic.Holiday, 0, len(dates))
	for _, d := range dates {
		h, err := f.Holiday(HolidayJSON{Date: d})
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}
