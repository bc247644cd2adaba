package commission

import (
	"github.com/shopspring/decimal"

	"github.com/atlas/quota-engine/generic"
)

// =============================================================================
// COMMISSION TABLES - Fixed by the compensation plan
// =============================================================================

// Unit rates, BRL per account.
const (
	RateBelow80  = 0
	Rate80To90   = 5
	Rate90To100  = 7
	Rate100Above = 9
)

// Positional bonuses, BRL.
const (
	BonusFirst  = 700
	BonusSecond = 500
	BonusThird  = 350
)

var (
	threshold80  = decimal.RequireFromString("0.80")
	threshold90  = decimal.RequireFromString("0.90")
	threshold100 = decimal.RequireFromString("1.00")
	threshold110 = decimal.RequireFromString("1.10")
	threshold120 = decimal.RequireFromString("1.20")

	accelNone = decimal.RequireFromString("1.0")
	accel110  = decimal.RequireFromString("1.1")
	accel120  = decimal.RequireFromString("1.2")
)

// TierRate maps attainment to the per-account rate.
func TierRate(attainment decimal.Decimal) generic.Amount {
	var rate int
	switch {
	case attainment.LessThan(threshold80):
		rate = RateBelow80
	case attainment.LessThan(threshold90):
		rate = Rate80To90
	case attainment.LessThan(threshold100):
		rate = Rate90To100
	default:
		rate = Rate100Above
	}
	return generic.NewAmountFromInt(rate, generic.UnitBRL)
}

// Accelerator maps attainment to the commission multiplier.
func Accelerator(attainment decimal.Decimal) decimal.Decimal {
	switch {
	case attainment.GreaterThanOrEqual(threshold120):
		return accel120
	case attainment.GreaterThanOrEqual(threshold110):
		return accel110
	default:
		return accelNone
	}
}

// PositionalBonus is the flat bonus for a podium position; 0 otherwise.
func PositionalBonus(pos RankingPosition) generic.Amount {
	var bonus int
	switch pos {
	case PositionFirst:
		bonus = BonusFirst
	case PositionSecond:
		bonus = BonusSecond
	case PositionThird:
		bonus = BonusThird
	}
	return generic.NewAmountFromInt(bonus, generic.UnitBRL)
}

// EffectiveTarget coerces a non-positive target to 1.
func EffectiveTarget(target int) int {
	if target > 0 {
		return target
	}
	return 1
}

// =============================================================================
// CALCULATE
// =============================================================================

// Calculate prices a projected account count.
//
// The bonus is paid only when includeBonus is set AND pos is on the podium.
// A negative projection is rejected; any target is accepted.
func Calculate(projected generic.Amount, target int, includeBonus bool, pos RankingPosition) (Result, error) {
	if projected.IsNegative() {
		return Result{}, generic.NegativeCountError("projected_count", projected.Value.String())
	}

	attainment := projected.Value.Div(decimal.NewFromInt(int64(EffectiveTarget(target))))
	rate := TierRate(attainment)
	accel := Accelerator(attainment)

	subtotal := generic.NewAmountFromDecimal(projected.Value.Mul(rate.Value).Mul(accel), generic.UnitBRL)

	bonus := generic.NewAmountFromInt(0, generic.UnitBRL)
	if includeBonus && pos.Valid() {
		bonus = PositionalBonus(pos)
	}

	return Result{
		Total:       subtotal.Add(bonus),
		Subtotal:    subtotal,
		Attainment:  attainment,
		UnitRate:    rate,
		Accelerator: accel,
		Bonus:       bonus,
	}, nil
}
