package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas/quota-engine/config"
	"github.com/atlas/quota-engine/generic"
	"github.com/atlas/quota-engine/generic/store"
)

func TestSeed_DefaultTeamsAndHolidays(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	cfg := &config.Config{DefaultHolidays: []string{"2025-11-20"}}

	require.NoError(t, seed(ctx, mem, cfg, zerolog.Nop()))

	teams, err := mem.ListTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 3)

	november, err := generic.MonthPeriod(2025, time.November)
	require.NoError(t, err)
	holidays, err := mem.HolidaysFor(ctx, november)
	require.NoError(t, err)
	assert.Equal(t, 19, generic.BusinessDaysInclusive(november.Start, november.End, holidays))

	// Restarting seeds the same rows again
	require.NoError(t, seed(ctx, mem, cfg, zerolog.Nop()))
	all, err := mem.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSeed_TeamsFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "teams.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"teams":[{"name":"Time Azul","default_target":40}]}`), 0o600))

	mem := store.NewMemory()
	require.NoError(t, seed(ctx, mem, &config.Config{TeamsFile: path}, zerolog.Nop()))

	team, err := mem.GetTeam(ctx, "time-azul")
	require.NoError(t, err)
	assert.Equal(t, 40, team.DefaultTarget)
}

func TestSeed_MissingTeamsFile(t *testing.T) {
	mem := store.NewMemory()
	err := seed(context.Background(), mem, &config.Config{TeamsFile: filepath.Join(t.TempDir(), "nope.json")}, zerolog.Nop())
	assert.Error(t, err)
}
