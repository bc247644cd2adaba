package generic_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas/quota-engine/generic"
)

func accounts(n int) generic.Amount {
	return generic.NewAmountFromInt(n, generic.UnitAccounts)
}

func TestProject_LinearPace(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		elapsed  int
		total    int
		expected string
	}{
		{"approved only", 40, 10, 20, "80"},
		{"approved plus pending", 50, 10, 20, "100"},
		{"nothing yet", 0, 5, 20, "0"},
		{"month over", 37, 20, 20, "37"},
		{"floored divisor", 3, 1, 21, "63"},
		{"fractional", 7, 4, 22, "38.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generic.Project(accounts(tt.count), tt.elapsed, tt.total)
			require.NoError(t, err)
			assert.True(t, got.Value.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, got.Value)
			assert.Equal(t, generic.UnitAccounts, got.Unit)
		})
	}
}

func TestProject_ZeroDivisorRejected(t *testing.T) {
	// GIVEN: A caller that forgot to floor elapsed business days
	// THEN: The projector fails loudly instead of returning Inf/0
	_, err := generic.Project(accounts(10), 0, 20)

	require.Error(t, err)
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)

	var iae *generic.InvalidArgumentError
	require.ErrorAs(t, err, &iae)
	assert.Equal(t, "elapsed_business_days", iae.Field)
}

func TestProject_NegativeInputsRejected(t *testing.T) {
	_, err := generic.Project(accounts(-1), 10, 20)
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)

	_, err = generic.Project(accounts(1), -3, 20)
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)

	_, err = generic.Project(accounts(1), 3, -20)
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)
}

func TestProject_Deterministic(t *testing.T) {
	first, err := generic.Project(accounts(13), 7, 21)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		again, err := generic.Project(accounts(13), 7, 21)
		require.NoError(t, err)
		assert.True(t, first.Value.Equal(again.Value))
	}
	assert.True(t, first.Value.Equal(decimal.NewFromInt(39)))
}

func TestDailyPace(t *testing.T) {
	pace, err := generic.DailyPace(accounts(40), 10)
	require.NoError(t, err)
	assert.True(t, pace.Value.Equal(decimal.NewFromInt(4)))

	_, err = generic.DailyPace(accounts(40), 0)
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, generic.IsClientError(generic.NegativeCountError("approved", -1)))
	assert.True(t, generic.IsClientError(generic.ErrInvalidPeriod))
	assert.False(t, generic.IsClientError(generic.ErrTeamNotFound))
	assert.True(t, generic.IsNotFound(generic.ErrHolidayNotFound))
}
