package factory_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas/quota-engine/factory"
	"github.com/atlas/quota-engine/generic"
	"github.com/atlas/quota-engine/generic/store"
)

func TestParseConfig_DefaultTeams(t *testing.T) {
	cfg, err := factory.NewConfigFactory().ParseConfig(factory.DefaultConfigJSON)
	require.NoError(t, err)

	assert.Equal(t, []generic.Team{
		{ID: "ura", Name: "URA", DefaultTarget: 80},
		{ID: "discador", Name: "DISCADOR", DefaultTarget: 60},
		{ID: "outro", Name: "Outro", DefaultTarget: 60},
	}, cfg.Teams)
	assert.Empty(t, cfg.Holidays)
}

func TestParseConfig_HolidaysAndDerivedIDs(t *testing.T) {
	jsonStr := `{
		"teams": [{"name": "Time Azul", "default_target": 70}],
		"holidays": [
			{"date": "2025-11-20", "name": "Consciência Negra"},
			{"id": "natal", "date": "2025-12-25", "name": "Natal", "recurring": true}
		]
	}`

	cfg, err := factory.NewConfigFactory().ParseConfig(jsonStr)
	require.NoError(t, err)

	require.Len(t, cfg.Teams, 1)
	assert.Equal(t, "time-azul", cfg.Teams[0].ID)

	require.Len(t, cfg.Holidays, 2)
	assert.Equal(t, "holiday-20251120", cfg.Holidays[0].ID)
	assert.False(t, cfg.Holidays[0].Recurring)
	assert.Equal(t, "natal", cfg.Holidays[1].ID)
	assert.True(t, cfg.Holidays[1].Recurring)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		invalid bool // wraps ErrInvalidArgument
	}{
		{"malformed json", `{"teams": [`, false},
		{"missing team name", `{"teams": [{"default_target": 10}]}`, true},
		{"negative target", `{"teams": [{"name": "A", "default_target": -1}]}`, true},
		{"duplicate team", `{"teams": [{"name": "A"}, {"id": "a", "name": "B"}]}`, true},
		{"bad holiday date", `{"holidays": [{"date": "20/11/2025"}]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.NewConfigFactory().ParseConfig(tt.json)

			require.Error(t, err)
			assert.Equal(t, tt.invalid, generic.IsClientError(err), err.Error())
		})
	}
}

func TestToJSON_ReparsesToSameConfig(t *testing.T) {
	f := factory.NewConfigFactory()
	cfg, err := f.ParseConfig(`{
		"teams": [{"id": "ura", "name": "URA", "default_target": 80}],
		"holidays": [{"date": "2025-11-20", "name": "Consciência Negra"}]
	}`)
	require.NoError(t, err)

	raw, err := json.Marshal(f.ToJSON(cfg))
	require.NoError(t, err)
	again, err := f.ParseConfig(string(raw))
	require.NoError(t, err)

	assert.Equal(t, cfg.Teams, again.Teams)
	require.Len(t, again.Holidays, 1)
	assert.Equal(t, cfg.Holidays[0].ID, again.Holidays[0].ID)
	assert.True(t, cfg.Holidays[0].Date.Equal(again.Holidays[0].Date))
}

func TestSeed_IsIdempotent(t *testing.T) {
	// GIVEN: the default teams plus one holiday
	ctx := context.Background()
	f := factory.NewConfigFactory()
	cfg, err := f.ParseConfig(factory.DefaultConfigJSON)
	require.NoError(t, err)
	cfg.Holidays, err = factory.HolidaysFromDates([]string{"2025-11-20"})
	require.NoError(t, err)

	// WHEN: Seeding the same store twice
	m := store.NewMemory()
	require.NoError(t, f.Seed(ctx, m, cfg))
	require.NoError(t, f.Seed(ctx, m, cfg))

	// THEN: one copy of everything
	teams, err := m.ListTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 3)

	holidays, err := m.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Len(t, holidays, 1)

	period, err := generic.MonthPeriod(2025, time.November)
	require.NoError(t, err)
	set, err := m.HolidaysFor(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, 19, generic.BusinessDaysInclusive(period.Start, period.End, set))
}

func TestHolidaysFromDates_Invalid(t *testing.T) {
	_, err := factory.HolidaysFromDates([]string{"2025-11-20", "nope"})

	assert.ErrorIs(t, err, generic.ErrInvalidArgument)
}

func TestLoadDefaults(t *testing.T) {
	f := factory.NewConfigFactory()

	// GIVEN: no teams file, one default holiday
	cfg, err := f.LoadDefaults("", []string{"2025-11-20"})
	require.NoError(t, err)
	assert.Len(t, cfg.Teams, 3)
	require.Len(t, cfg.Holidays, 1)
	assert.Equal(t, "holiday-20251120", cfg.Holidays[0].ID)

	// GIVEN: a teams file that also carries holidays
	path := filepath.Join(t.TempDir(), "teams.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"teams": [{"name": "Time Azul", "default_target": 40}],
		"holidays": [{"date": "2025-12-25", "name": "Natal", "recurring": true}]
	}`), 0o600))

	cfg, err = f.LoadDefaults(path, []string{"2025-11-20"})
	require.NoError(t, err)
	require.Len(t, cfg.Teams, 1)
	assert.Equal(t, "time-azul", cfg.Teams[0].ID)
	assert.Len(t, cfg.Holidays, 2)

	_, err = f.LoadDefaults(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	_, err = f.LoadDefaults("", []string{"soon"})
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)
}

func TestTeamID(t *testing.T) {
	assert.Equal(t, "ura", factory.TeamID("URA"))
	assert.Equal(t, "time-azul", factory.TeamID("  Time   Azul "))
}
