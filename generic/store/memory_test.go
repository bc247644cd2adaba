package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas/quota-engine/generic"
	"github.com/atlas/quota-engine/generic/store"
)

func TestMemory_Holidays(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.SaveHoliday(ctx, generic.NewHoliday(generic.MustParseDate("2025-12-25"), "Natal", true)))
	require.NoError(t, m.SaveHoliday(ctx, generic.NewHoliday(generic.MustParseDate("2025-11-20"), "Consciência Negra", false)))

	all, err := m.ListHolidays(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2025-11-20", all[0].Date.String())

	period, err := generic.MonthPeriod(2026, time.December)
	require.NoError(t, err)
	set, err := m.HolidaysFor(ctx, period)
	require.NoError(t, err)
	assert.True(t, set.IsHoliday(generic.MustParseDate("2026-12-25")))
	assert.Equal(t, 1, set.Len())

	_, err = m.HolidaysFor(ctx, generic.Period{Start: period.End, End: period.Start})
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)

	assert.ErrorIs(t, m.DeleteHoliday(ctx, "nope"), generic.ErrHolidayNotFound)
	require.NoError(t, m.DeleteHoliday(ctx, all[0].ID))

	err = m.SaveHoliday(ctx, generic.Holiday{ID: "x"})
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)
}

func TestMemory_Teams(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.SaveTeam(ctx, generic.Team{ID: "ura", Name: "URA", DefaultTarget: 80}))
	require.NoError(t, m.SaveTeam(ctx, generic.Team{ID: "outro", Name: "Outro", DefaultTarget: 60}))

	team, err := m.GetTeam(ctx, "ura")
	require.NoError(t, err)
	assert.Equal(t, 80, team.DefaultTarget)

	teams, err := m.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Outro", teams[0].Name)

	_, err = m.GetTeam(ctx, "missing")
	assert.True(t, generic.IsNotFound(err))

	err = m.SaveTeam(ctx, generic.Team{ID: "bad", DefaultTarget: -1})
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)

	// renaming a team to its own name is fine, taking another team's is not
	require.NoError(t, m.SaveTeam(ctx, generic.Team{ID: "ura", Name: "URA", DefaultTarget: 90}))
	err = m.SaveTeam(ctx, generic.Team{ID: "ura-2", Name: "URA", DefaultTarget: 70})
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)
}
