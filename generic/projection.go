/*
projection.go - Linear pace projection

PURPOSE:
  Extrapolates what has been achieved so far in a period to the whole
  period, assuming the current daily pace holds:

    projected = (countSoFar / elapsedBusinessDays) * totalBusinessDays

KEY INSIGHT:
  The projector divides by elapsed business days and refuses a zero
  divisor. On the first day of a month (or before it), nothing has
  elapsed, so the CALLER floors the divisor at 1 via
  CalendarSnapshot.PaceDivisor(). Guarding silently in here would hide
  a caller that forgot the floor.

EXAMPLE:
  snap := generic.SnapshotFor(period, today, holidays) // Total 20, Elapsed 10
  proj, _ := generic.Project(generic.NewAmountFromInt(40, generic.UnitAccounts),
      snap.PaceDivisor(), snap.Total)
  // proj == 80 accounts

SEE ALSO:
  - calendar.go: CalendarSnapshot and the floor guard
  - commission/engine.go: Feeds every scenario through Project
*/
package generic

import "github.com/shopspring/decimal"

// Project extrapolates countSoFar over totalBusinessDays at the pace set in
// elapsedBusinessDays.
//
// The product is taken before the division so whole-number inputs that
// project to whole numbers stay exact.
func Project(countSoFar Amount, elapsedBusinessDays, totalBusinessDays int) (Amount, error) {
	if elapsedBusinessDays <= 0 {
		return Amount{}, &InvalidArgumentError{
			Field:  "elapsed_business_days",
			Value:  elapsedBusinessDays,
			Reason: "must be positive; floor the divisor before projecting",
		}
	}
	if totalBusinessDays < 0 {
		return Amount{}, NegativeCountError("total_business_days", totalBusinessDays)
	}
	if countSoFar.IsNegative() {
		return Amount{}, NegativeCountError("count_so_far", countSoFar.Value.String())
	}

	return countSoFar.
		Mul(decimal.NewFromInt(int64(totalBusinessDays))).
		Div(decimal.NewFromInt(int64(elapsedBusinessDays))), nil
}

// DailyPace is countSoFar per elapsed business day, with the same divisor
// contract as Project.
func DailyPace(countSoFar Amount, elapsedBusinessDays int) (Amount, error) {
	if elapsedBusinessDays <= 0 {
		return Amount{}, &InvalidArgumentError{
			Field:  "elapsed_business_days",
			Value:  elapsedBusinessDays,
			Reason: "must be positive; floor the divisor before projecting",
		}
	}
	if countSoFar.IsNegative() {
		return Amount{}, NegativeCountError("count_so_far", countSoFar.Value.String())
	}
	return countSoFar.Div(decimal.NewFromInt(int64(elapsedBusinessDays))), nil
}
