package commission_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas/quota-engine/commission"
	"github.com/atlas/quota-engine/generic"
)

// novemberInput: Friday Nov 14 2025, 20 business days, 10 elapsed.
func novemberInput() commission.EvaluationInput {
	return commission.EvaluationInput{
		Today:       generic.NewTimePoint(2025, time.November, 14),
		PeriodYear:  2025,
		PeriodMonth: time.November,
		Holidays:    generic.NewHolidaySet(),
		Target:      80,
		Approved:    40,
		Pending:     10,
	}
}

func TestEvaluate_BaselineScenarios(t *testing.T) {
	// GIVEN: target 80, 40 approved, 10 pending, half the month elapsed
	// WHEN: Evaluating
	// THEN: approved-only projects to 80 (R$720), with pending to 100 (R$1080)
	res, err := commission.Evaluate(novemberInput())
	require.NoError(t, err)

	assert.Equal(t, 20, res.Calendar.Total)
	assert.Equal(t, 10, res.Calendar.Elapsed)
	assert.Equal(t, 10, res.Calendar.Remaining)

	ao := res.ApprovedOnly
	assert.Equal(t, commission.ScenarioApprovedOnly, ao.Kind)
	assertDecimal(t, "40", ao.CountSoFar.Value)
	assertDecimal(t, "80", ao.Projected.Value)
	assertDecimal(t, "1", ao.Commission.Attainment)
	assertDecimal(t, "9", ao.Commission.UnitRate.Value)
	assertDecimal(t, "1.0", ao.Commission.Accelerator)
	assertDecimal(t, "720", ao.Commission.Subtotal.Value)
	assertDecimal(t, "720", ao.Commission.Total.Value)
	assert.True(t, ao.MeetsTarget(80))

	ap := res.ApprovedPlusPending
	assert.Equal(t, commission.ScenarioApprovedPlusPending, ap.Kind)
	assertDecimal(t, "100", ap.Projected.Value)
	assertDecimal(t, "1.25", ap.Commission.Attainment)
	assertDecimal(t, "1.2", ap.Commission.Accelerator)
	assertDecimal(t, "1080", ap.Commission.Subtotal.Value)

	assert.Nil(t, res.Simulated)
	assert.Len(t, res.Scenarios(), 2)
}

func TestEvaluate_RankingBonusOnBaselines(t *testing.T) {
	in := novemberInput()
	in.RankingPosition = commission.PositionFirst

	res, err := commission.Evaluate(in)
	require.NoError(t, err)

	assertDecimal(t, "700", res.ApprovedOnly.Commission.Bonus.Value)
	assertDecimal(t, "1420", res.ApprovedOnly.Commission.Total.Value)
	assertDecimal(t, "1780", res.ApprovedPlusPending.Commission.Total.Value)
}

func TestEvaluate_OffPodiumPositionIgnored(t *testing.T) {
	in := novemberInput()
	in.RankingPosition = commission.RankingPosition(7)

	res, err := commission.Evaluate(in)
	require.NoError(t, err)

	assert.Equal(t, commission.PositionNone, res.ApprovedOnly.Position)
	assert.True(t, res.ApprovedOnly.Commission.Bonus.IsZero())
}

func TestEvaluate_RequiredDailyPace(t *testing.T) {
	res, err := commission.Evaluate(novemberInput())
	require.NoError(t, err)

	require.NotNil(t, res.RequiredDailyPace)
	assertDecimal(t, "4", *res.RequiredDailyPace)
	assert.False(t, res.PeriodClosed)

	in := novemberInput()
	in.Approved = 90
	res, err = commission.Evaluate(in)
	require.NoError(t, err)

	require.NotNil(t, res.RequiredDailyPace)
	assertDecimal(t, "0", *res.RequiredDailyPace)
}

func TestEvaluate_PeriodClosed(t *testing.T) {
	// GIVEN: Friday Nov 28 is the last business day
	in := novemberInput()
	in.Today = generic.NewTimePoint(2025, time.November, 28)

	res, err := commission.Evaluate(in)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Calendar.Remaining)
	assert.True(t, res.PeriodClosed)
	assert.Nil(t, res.RequiredDailyPace)
	// month over: projection equals what was achieved
	assertDecimal(t, "40", res.ApprovedOnly.Projected.Value)
}

func TestEvaluate_FirstDayWeekend_UsesFlooredDivisor(t *testing.T) {
	in := novemberInput()
	in.Today = generic.NewTimePoint(2025, time.November, 1)
	in.Approved = 3
	in.Pending = 0

	res, err := commission.Evaluate(in)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Calendar.Elapsed)
	assert.Equal(t, 20, res.Calendar.Remaining)
	assertDecimal(t, "60", res.ApprovedOnly.Projected.Value)
}

func TestEvaluate_HolidayShrinksMonth(t *testing.T) {
	in := novemberInput()
	in.Holidays = generic.NewHolidaySet(generic.NewTimePoint(2025, time.November, 20))

	res, err := commission.Evaluate(in)
	require.NoError(t, err)

	assert.Equal(t, 19, res.Calendar.Total)
	assert.Equal(t, 9, res.Calendar.Remaining)
	// 40 / 10 * 19
	assertDecimal(t, "76", res.ApprovedOnly.Projected.Value)
	assertDecimal(t, "0.95", res.ApprovedOnly.Commission.Attainment)
	assertDecimal(t, "532", res.ApprovedOnly.Commission.Total.Value)
}

func TestEvaluate_Simulation(t *testing.T) {
	tests := []struct {
		name      string
		sim       *commission.Simulation
		produced  bool
		projected string
		total     string
	}{
		{"no simulation", nil, false, "", ""},
		{"all zero", &commission.Simulation{}, false, "", ""},
		{"off-podium position only", &commission.Simulation{Position: commission.RankingPosition(5)}, false, "", ""},
		{"position only", &commission.Simulation{Position: commission.PositionThird}, true, "100", "1430"},
		{"deltas", &commission.Simulation{ApprovedDelta: 5, PendingDelta: 5}, true, "120", "1296"},
		{"deltas and position", &commission.Simulation{ApprovedDelta: 5, PendingDelta: 5, Position: commission.PositionSecond}, true, "120", "1796"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := novemberInput()
			in.RankingPosition = commission.PositionFirst
			in.Simulation = tt.sim

			res, err := commission.Evaluate(in)
			require.NoError(t, err)

			if !tt.produced {
				assert.Nil(t, res.Simulated)
				return
			}
			require.NotNil(t, res.Simulated)
			assert.Equal(t, commission.ScenarioSimulated, res.Simulated.Kind)
			assertDecimal(t, tt.projected, res.Simulated.Projected.Value)
			assertDecimal(t, tt.total, res.Simulated.Commission.Total.Value)
			assert.Len(t, res.Scenarios(), 3)
		})
	}
}

func TestEvaluate_InvalidArguments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*commission.EvaluationInput)
	}{
		{"negative approved", func(in *commission.EvaluationInput) { in.Approved = -1 }},
		{"negative pending", func(in *commission.EvaluationInput) { in.Pending = -2 }},
		{"negative approved delta", func(in *commission.EvaluationInput) {
			in.Simulation = &commission.Simulation{ApprovedDelta: -1}
		}},
		{"negative pending delta", func(in *commission.EvaluationInput) {
			in.Simulation = &commission.Simulation{PendingDelta: -1}
		}},
		{"missing today", func(in *commission.EvaluationInput) { in.Today = generic.TimePoint{} }},
		{"bad month", func(in *commission.EvaluationInput) { in.PeriodMonth = 13 }},
		{"bad year", func(in *commission.EvaluationInput) { in.PeriodYear = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := novemberInput()
			tt.mutate(&in)

			res, err := commission.Evaluate(in)

			assert.Nil(t, res)
			assert.ErrorIs(t, err, generic.ErrInvalidArgument)
		})
	}
}

func TestEvaluate_NilHolidaysAndZeroTarget(t *testing.T) {
	in := novemberInput()
	in.Holidays = nil
	in.Target = 0

	res, err := commission.Evaluate(in)
	require.NoError(t, err)

	// effective target 1, attainment 80
	assertDecimal(t, "80", res.ApprovedOnly.Commission.Attainment)
	assertDecimal(t, "0", *res.RequiredDailyPace)
}

func TestRequiredDailyPace(t *testing.T) {
	pace, ok := commission.RequiredDailyPace(80, 40, 10)
	assert.True(t, ok)
	assert.True(t, pace.Equal(decimal.NewFromInt(4)))

	pace, ok = commission.RequiredDailyPace(80, 90, 10)
	assert.True(t, ok)
	assert.True(t, pace.IsZero())

	_, ok = commission.RequiredDailyPace(80, 40, 0)
	assert.False(t, ok)
}

func TestScenario_Shortfall(t *testing.T) {
	s := commission.Scenario{Projected: projected("62.5")}

	assertDecimal(t, "17.5", s.Shortfall(80).Value)
	assert.False(t, s.MeetsTarget(80))
	assertDecimal(t, "0", s.Shortfall(60).Value)
	assert.True(t, s.MeetsTarget(60))
}
