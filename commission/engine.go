package commission

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atlas/quota-engine/generic"
)

// =============================================================================
// SCENARIO ENGINE - Calendar + projector + calculator, per scenario
// =============================================================================

// Simulation carries the hypothetical deltas of the what-if scenario.
type Simulation struct {
	ApprovedDelta int
	PendingDelta  int
	Position      RankingPosition
}

// Active reports whether the simulation changes anything.
func (s *Simulation) Active() bool {
	return s != nil && (s.ApprovedDelta != 0 || s.PendingDelta != 0 || s.Position.Valid())
}

// EvaluationInput is everything one evaluation depends on.
// Nothing is read from the clock or from global state.
type EvaluationInput struct {
	Today       generic.TimePoint
	PeriodYear  int
	PeriodMonth time.Month
	Holidays    generic.HolidayCalendar

	Target   int
	Approved int
	Pending  int

	RankingPosition RankingPosition
	Simulation      *Simulation // nil = no what-if scenario
}

// EvaluationResult is recomputed from scratch on every call.
type EvaluationResult struct {
	Calendar generic.CalendarSnapshot
	Target   int

	ApprovedOnly        Scenario
	ApprovedPlusPending Scenario
	Simulated           *Scenario // nil when no active simulation

	// RequiredDailyPace is nil when PeriodClosed.
	RequiredDailyPace *decimal.Decimal
	PeriodClosed      bool
}

// Scenarios returns the produced scenarios in display order.
func (r *EvaluationResult) Scenarios() []Scenario {
	out := []Scenario{r.ApprovedOnly, r.ApprovedPlusPending}
	if r.Simulated != nil {
		out = append(out, *r.Simulated)
	}
	return out
}

func (in EvaluationInput) validate() error {
	if in.Today.IsZero() {
		return &generic.InvalidArgumentError{Field: "today", Value: "", Reason: "required"}
	}
	if in.Approved < 0 {
		return generic.NegativeCountError("approved", in.Approved)
	}
	if in.Pending < 0 {
		return generic.NegativeCountError("pending", in.Pending)
	}
	if in.Simulation != nil {
		if in.Simulation.ApprovedDelta < 0 {
			return generic.NegativeCountError("simulation.approved_delta", in.Simulation.ApprovedDelta)
		}
		if in.Simulation.PendingDelta < 0 {
			return generic.NegativeCountError("simulation.pending_delta", in.Simulation.PendingDelta)
		}
	}
	return nil
}

// Evaluate produces the calendar snapshot, the scenarios and the required
// daily pace for one set of inputs.
func Evaluate(in EvaluationInput) (*EvaluationResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	period, err := generic.MonthPeriod(in.PeriodYear, in.PeriodMonth)
	if err != nil {
		return nil, err
	}

	holidays := in.Holidays
	if holidays == nil {
		holidays = generic.NewHolidaySet()
	}
	snap := generic.SnapshotFor(period, in.Today, holidays)

	pos := in.RankingPosition.Normalize()
	approvedOnly, err := buildScenario(ScenarioApprovedOnly, in.Approved, snap, in.Target, pos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ScenarioApprovedOnly, err)
	}
	withPending, err := buildScenario(ScenarioApprovedPlusPending, in.Approved+in.Pending, snap, in.Target, pos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ScenarioApprovedPlusPending, err)
	}

	result := &EvaluationResult{
		Calendar:            snap,
		Target:              in.Target,
		ApprovedOnly:        approvedOnly,
		ApprovedPlusPending: withPending,
	}

	// The simulation never inherits the baseline ranking position.
	if in.Simulation.Active() {
		sim := in.Simulation
		count := in.Approved + sim.ApprovedDelta + in.Pending + sim.PendingDelta
		simulated, err := buildScenario(ScenarioSimulated, count, snap, in.Target, sim.Position.Normalize())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ScenarioSimulated, err)
		}
		result.Simulated = &simulated
	}

	if pace, ok := RequiredDailyPace(in.Target, in.Approved, snap.Remaining); ok {
		result.RequiredDailyPace = &pace
	} else {
		result.PeriodClosed = true
	}

	return result, nil
}

func buildScenario(kind ScenarioKind, countSoFar int, snap generic.CalendarSnapshot, target int, pos RankingPosition) (Scenario, error) {
	count := generic.NewAmountFromInt(countSoFar, generic.UnitAccounts)

	projected, err := generic.Project(count, snap.PaceDivisor(), snap.Total)
	if err != nil {
		return Scenario{}, err
	}

	res, err := Calculate(projected, target, pos.Valid(), pos)
	if err != nil {
		return Scenario{}, err
	}

	return Scenario{
		Kind:       kind,
		CountSoFar: count,
		Projected:  projected,
		Position:   pos,
		Commission: res,
	}, nil
}

// RequiredDailyPace is the accounts per remaining business day needed to
// reach target from approved. A target already met yields 0.
// ok is false when no business days remain: the period is closed.
func RequiredDailyPace(target, approved, remaining int) (pace decimal.Decimal, ok bool) {
	if remaining <= 0 {
		return decimal.Zero, false
	}
	missing := target - approved
	if missing < 0 {
		missing = 0
	}
	return decimal.NewFromInt(int64(missing)).Div(decimal.NewFromInt(int64(remaining))), true
}
