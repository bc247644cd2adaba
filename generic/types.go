/*
Package generic provides the calendar and pace primitives of the quota engine.

PURPOSE:
  This package contains the domain-agnostic pieces every evaluation needs:
  business-day arithmetic over a month, a linear pace projector, and the
  quantity type used to carry counts and money through the engine. The
  commission package builds the sales-specific rules on top of it.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity with a unit (e.g., 80 accounts, R$ 720.00)
  - Unit: What the quantity measures (accounts, BRL)

DESIGN PRINCIPLES:
  1. Purity: Nothing here reads the wall clock or global state
  2. Precision: Uses decimal.Decimal so tier thresholds compare exactly
  3. Explicit inputs: "today" and the holiday set are always parameters

USAGE:
  approved := generic.NewAmountFromInt(40, generic.UnitAccounts)
  projected, err := generic.Project(approved, snapshot.PaceDivisor(), snapshot.Total)

SEE ALSO:
  - calendar.go: Business-day counting and CalendarSnapshot
  - projection.go: Linear pace projection
  - errors.go: InvalidArgument taxonomy
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitAccounts Unit = "accounts" // sales counted per month ("contas")
	UnitBRL      Unit = "BRL"      // commission money
)

func NewAmountFromInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

func NewAmountFromDecimal(value decimal.Decimal, unit Unit) Amount {
	return Amount{Value: value, Unit: unit}
}

func (a Amount) Zero() Amount                 { return Amount{Value: decimal.Zero, Unit: a.Unit} }
func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Unit: a.Unit} }
func (a Amount) Div(s decimal.Decimal) Amount { return Amount{Value: a.Value.Div(s), Unit: a.Unit} }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) GreaterThan(b Amount) bool    { return a.Value.GreaterThan(b.Value) }
func (a Amount) LessThan(b Amount) bool       { return a.Value.LessThan(b.Value) }

func (a Amount) Max(b Amount) Amount {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Float64 is the lossy view used at the JSON boundary.
func (a Amount) Float64() float64 {
	f, _ := a.Value.Float64()
	return f
}

// Round returns the amount rounded half away from zero to places decimals.
func (a Amount) Round(places int32) Amount {
	return Amount{Value: a.Value.Round(places), Unit: a.Unit}
}

func (a Amount) String() string {
	return a.Value.String() + " " + string(a.Unit)
}
