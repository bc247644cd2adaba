/*
Package commission provides the sales-specific rules of the quota engine.

PURPOSE:
  Turns a projected monthly account count into money. The generic package
  answers "how many accounts will this salesperson close at the current
  pace?"; this package answers "what does that pay?" and assembles the
  scenarios callers display.

COMMISSION FORMULA:
  attainment  = projected / target            (target <= 0 treated as 1)
  unit rate   = 0 | 5 | 7 | 9 BRL per account (tiers at 80%, 90%, 100%)
  accelerator = 1.0 | 1.1 | 1.2               (thresholds at 110%, 120%)
  subtotal    = projected * unit rate * accelerator
  total       = subtotal + positional bonus   (1st 700, 2nd 500, 3rd 350)

  Each tier is half-open: low <= attainment < high. Hitting a threshold
  exactly selects the higher bracket.

SCENARIOS:
  approved-only:         approved accounts projected to month end
  approved-plus-pending: approved + pending, projected
  simulated:             approved + pending + hypothetical deltas (optional)

SEE ALSO:
  - calculator.go: Tier, accelerator and bonus tables
  - engine.go: Evaluate, the single entry point for presentation layers
  - generic/calendar.go: Business-day snapshot
*/
package commission

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/atlas/quota-engine/generic"
)

// =============================================================================
// RANKING POSITION - Closed enumeration with an explicit absence case
// =============================================================================

// RankingPosition is the salesperson's place in the monthly ranking.
// Only the podium earns a bonus; everything else is PositionNone.
type RankingPosition int

const (
	PositionNone RankingPosition = iota
	PositionFirst
	PositionSecond
	PositionThird
)

// Valid reports whether the position is on the podium.
func (p RankingPosition) Valid() bool {
	return p >= PositionFirst && p <= PositionThird
}

// Normalize maps anything off the podium to PositionNone.
func (p RankingPosition) Normalize() RankingPosition {
	if p.Valid() {
		return p
	}
	return PositionNone
}

func (p RankingPosition) String() string {
	if !p.Valid() {
		return "none"
	}
	return strconv.Itoa(int(p))
}

// ParseRankingPosition accepts "1", "2", "3" (surrounding spaces allowed).
// Any other text, including "", "none" or "Outro", is PositionNone.
func ParseRankingPosition(s string) RankingPosition {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return PositionNone
	}
	return RankingPosition(n).Normalize()
}

// =============================================================================
// SCENARIO KINDS
// =============================================================================

type ScenarioKind string

const (
	ScenarioApprovedOnly        ScenarioKind = "approved-only"
	ScenarioApprovedPlusPending ScenarioKind = "approved-plus-pending"
	ScenarioSimulated           ScenarioKind = "simulated"
)

// =============================================================================
// RESULT - Pure output of Calculate
// =============================================================================

// Result is everything Calculate derives from one projected count.
type Result struct {
	Total       generic.Amount  // Subtotal + Bonus, BRL
	Subtotal    generic.Amount  // commission without bonus, BRL
	Attainment  decimal.Decimal // projected / effective target
	UnitRate    generic.Amount  // BRL per account
	Accelerator decimal.Decimal // 1.0, 1.1 or 1.2
	Bonus       generic.Amount  // positional bonus, BRL
}

func (r Result) String() string {
	return fmt.Sprintf("total=%s subtotal=%s attainment=%s rate=%s accel=%s bonus=%s",
		r.Total.Value.StringFixed(2), r.Subtotal.Value.StringFixed(2), r.Attainment.StringFixed(4),
		r.UnitRate.Value, r.Accelerator, r.Bonus.Value)
}

// Scenario pairs a count with the commission it would pay.
type Scenario struct {
	Kind       ScenarioKind
	CountSoFar generic.Amount // accounts fed into the projector
	Projected  generic.Amount // accounts at month end
	Position   RankingPosition
	Commission Result
}

// MeetsTarget reports whether the projection reaches target.
func (s Scenario) MeetsTarget(target int) bool {
	return !s.Projected.Value.LessThan(decimal.NewFromInt(int64(target)))
}

// Shortfall is how many projected accounts are missing to reach target, never negative.
func (s Scenario) Shortfall(target int) generic.Amount {
	gap := generic.NewAmountFromInt(target, generic.UnitAccounts).Sub(s.Projected)
	return gap.Max(gap.Zero())
}
