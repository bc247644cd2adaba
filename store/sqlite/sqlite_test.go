package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas/quota-engine/generic"
	"github.com/atlas/quota-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func november(t *testing.T) generic.Period {
	t.Helper()
	p, err := generic.MonthPeriod(2025, time.November)
	require.NoError(t, err)
	return p
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestHolidays_SaveListDelete(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	consciencia := generic.NewHoliday(generic.MustParseDate("2025-11-20"), "Consciência Negra", false)
	natal := generic.NewHoliday(generic.MustParseDate("2025-12-25"), "Natal", true)
	require.NoError(t, store.SaveHoliday(ctx, natal))
	require.NoError(t, store.SaveHoliday(ctx, consciencia))

	all, err := store.ListHolidays(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, consciencia.ID, all[0].ID)
	assert.Equal(t, "2025-11-20", all[0].Date.String())
	assert.Equal(t, "Consciência Negra", all[0].Name)
	assert.False(t, all[0].Recurring)
	assert.True(t, all[1].Recurring)

	require.NoError(t, store.DeleteHoliday(ctx, natal.ID))
	all, err = store.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestHolidays_SaveReplacesByID(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	h := generic.NewHoliday(generic.MustParseDate("2025-11-20"), "old name", false)
	require.NoError(t, store.SaveHoliday(ctx, h))
	h.Name = "Consciência Negra"
	h.Recurring = true
	require.NoError(t, store.SaveHoliday(ctx, h))

	all, err := store.ListHolidays(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Consciência Negra", all[0].Name)
	assert.True(t, all[0].Recurring)
}

func TestHolidays_DeleteMissing(t *testing.T) {
	err := newStore(t).DeleteHoliday(context.Background(), "holiday-nope")

	assert.ErrorIs(t, err, generic.ErrHolidayNotFound)
	assert.True(t, generic.IsNotFound(err))
}

func TestHolidays_SaveRejectsIncomplete(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	err := store.SaveHoliday(ctx, generic.Holiday{Date: generic.MustParseDate("2025-11-20")})
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)

	err = store.SaveHoliday(ctx, generic.Holiday{ID: "x"})
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)
}

func TestHolidaysFor_ExpandsRecurringAndFiltersPeriod(t *testing.T) {
	// GIVEN: a one-off holiday in November 2025, one in November 2024,
	//        a recurring one first saved in 2020 and one in December
	ctx := context.Background()
	store := newStore(t)
	for _, h := range []generic.Holiday{
		generic.NewHoliday(generic.MustParseDate("2025-11-20"), "Consciência Negra", false),
		generic.NewHoliday(generic.MustParseDate("2024-11-15"), "last year only", false),
		generic.NewHoliday(generic.MustParseDate("2020-11-02"), "Finados", true),
		generic.NewHoliday(generic.MustParseDate("2025-12-25"), "Natal", true),
	} {
		require.NoError(t, store.SaveHoliday(ctx, h))
	}

	// WHEN: Asking for November 2025
	set, err := store.HolidaysFor(ctx, november(t))
	require.NoError(t, err)

	// THEN: the one-off in range plus the recurring date moved to 2025
	dates := set.Dates()
	require.Len(t, dates, 2)
	assert.Equal(t, "2025-11-02", dates[0].String())
	assert.Equal(t, "2025-11-20", dates[1].String())
}

func TestHolidaysFor_FeedsBusinessDayCount(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SaveHoliday(ctx,
		generic.NewHoliday(generic.MustParseDate("2025-11-20"), "Consciência Negra", false)))

	period := november(t)
	set, err := store.HolidaysFor(ctx, period)
	require.NoError(t, err)

	assert.Equal(t, 19, generic.BusinessDaysInclusive(period.Start, period.End, set))
}

func TestHolidaysFor_InvalidPeriod(t *testing.T) {
	bad := generic.Period{Start: generic.MustParseDate("2025-11-30"), End: generic.MustParseDate("2025-11-01")}

	_, err := newStore(t).HolidaysFor(context.Background(), bad)

	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}

// =============================================================================
// TEAMS
// =============================================================================

func TestTeams_SaveGetList(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.SaveTeam(ctx, generic.Team{ID: "ura", Name: "URA", DefaultTarget: 80}))
	require.NoError(t, store.SaveTeam(ctx, generic.Team{ID: "discador", Name: "DISCADOR", DefaultTarget: 60}))

	team, err := store.GetTeam(ctx, "ura")
	require.NoError(t, err)
	assert.Equal(t, generic.Team{ID: "ura", Name: "URA", DefaultTarget: 80}, team)

	teams, err := store.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "DISCADOR", teams[0].Name)
	assert.Equal(t, "URA", teams[1].Name)

	// upsert
	require.NoError(t, store.SaveTeam(ctx, generic.Team{ID: "ura", Name: "URA", DefaultTarget: 90}))
	team, err = store.GetTeam(ctx, "ura")
	require.NoError(t, err)
	assert.Equal(t, 90, team.DefaultTarget)
}

func TestTeams_Errors(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.GetTeam(ctx, "missing")
	assert.ErrorIs(t, err, generic.ErrTeamNotFound)

	err = store.SaveTeam(ctx, generic.Team{ID: "x", Name: "X", DefaultTarget: -1})
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)

	err = store.SaveTeam(ctx, generic.Team{ID: " ", Name: "X"})
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)
}

func TestTeams_DuplicateNameIsInvalidArgument(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SaveTeam(ctx, generic.Team{ID: "ura", Name: "URA", DefaultTarget: 80}))

	// WHEN: another ID reuses the name
	err := store.SaveTeam(ctx, generic.Team{ID: "ura-2", Name: "URA", DefaultTarget: 70})

	// THEN: it is a client error and the original team is untouched
	assert.True(t, generic.IsClientError(err), err)
	team, err := store.GetTeam(ctx, "ura")
	require.NoError(t, err)
	assert.Equal(t, 80, team.DefaultTarget)

	_, err = store.GetTeam(ctx, "ura-2")
	assert.ErrorIs(t, err, generic.ErrTeamNotFound)
}

func TestHolidaysFor_RecurringLeapDaySkipsCommonYears(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SaveHoliday(ctx,
		generic.NewHoliday(generic.MustParseDate("2024-02-29"), "Leap day", true)))

	march, err := generic.MonthPeriod(2027, time.March)
	require.NoError(t, err)
	set, err := store.HolidaysFor(ctx, march)
	require.NoError(t, err)

	assert.Equal(t, 0, set.Len())
	assert.False(t, set.IsHoliday(generic.MustParseDate("2027-03-01")))
}

// =============================================================================
// DURABILITY AND CONCURRENCY
// =============================================================================

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quota.db")

	store, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveTeam(ctx, generic.Team{ID: "ura", Name: "URA", DefaultTarget: 80}))
	require.NoError(t, store.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	team, err := reopened.GetTeam(ctx, "ura")
	require.NoError(t, err)
	assert.Equal(t, 80, team.DefaultTarget)
}

func TestStore_ConcurrentReadsAndWrites(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	period := november(t)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(2)
		go func(day int) {
			defer wg.Done()
			d := generic.NewTimePoint(2025, time.November, day)
			assert.NoError(t, store.SaveHoliday(ctx, generic.NewHoliday(d, "h", false)))
		}(i)
		go func() {
			defer wg.Done()
			_, err := store.HolidaysFor(ctx, period)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	set, err := store.HolidaysFor(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, 20, set.Len())
}
