package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/atlas/quota-engine/commission"
	"github.com/atlas/quota-engine/generic"
	"github.com/atlas/quota-engine/report"
)

type evaluateOptions struct {
	root *rootOptions

	name     string
	today    string
	year     int
	month    int
	target   int
	team     string
	approved int
	pending  int
	position string
	holidays []string

	simApproved int
	simPending  int
	simPosition string

	format string
	now    func() time.Time
}

func newEvaluateCmd(root *rootOptions) *cobra.Command {
	o := &evaluateOptions{root: root, now: time.Now}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Project the month and price every scenario",
		Long: `Evaluate projects approved (and approved + pending) accounts to month end at
the current business-day pace and prints the commission of each scenario.

A what-if scenario is added when any --sim-* flag changes something.

Example:
  quota evaluate --today 2025-11-14 --target 80 --approved 40 --pending 10
  quota evaluate --team ura --approved 40 --holiday 2025-11-20 --position 1
  quota evaluate --target 80 --approved 40 --sim-approved 5 --sim-position 2 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.name, "name", "", "salesperson name for the summary")
	f.StringVar(&o.today, "today", "", "evaluation date YYYY-MM-DD (default: today)")
	f.IntVar(&o.year, "year", 0, "period year (default: year of --today)")
	f.IntVar(&o.month, "month", 0, "period month 1-12 (default: month of --today)")
	f.IntVar(&o.target, "target", 0, "monthly target in accounts")
	f.StringVar(&o.team, "team", "", "team ID supplying the default target")
	f.IntVar(&o.approved, "approved", 0, "approved accounts so far")
	f.IntVar(&o.pending, "pending", 0, "pending accounts so far")
	f.StringVar(&o.position, "position", "", "ranking position 1-3 (empty or none for no position)")
	f.StringSliceVar(&o.holidays, "holiday", nil, "extra holiday YYYY-MM-DD (repeatable)")
	f.IntVar(&o.simApproved, "sim-approved", 0, "what-if: additional approved accounts")
	f.IntVar(&o.simPending, "sim-pending", 0, "what-if: additional pending accounts")
	f.StringVar(&o.simPosition, "sim-position", "", "what-if: ranking position 1-3")
	f.StringVar(&o.format, "format", "text", "output format (text|json)")

	return cmd
}

func (o *evaluateOptions) run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := o.root.logger(cmd)

	if o.format != "text" && o.format != "json" {
		return fmt.Errorf("unknown format %q (use text or json)", o.format)
	}

	today := generic.DateOf(o.now())
	if o.today != "" {
		parsed, err := generic.ParseDate(o.today)
		if err != nil {
			return err
		}
		today = parsed
	}

	year, month := o.year, time.Month(o.month)
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = today.Month()
	}
	period, err := generic.MonthPeriod(year, month)
	if err != nil {
		return err
	}

	cfgStore, closeStore, err := o.root.openConfigStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	target := o.target
	if !cmd.Flags().Changed("target") {
		if o.team == "" {
			return fmt.Errorf("either --target or --team is required")
		}
		team, err := cfgStore.GetTeam(ctx, o.team)
		if err != nil {
			return err
		}
		target = team.DefaultTarget
	}

	stored, err := cfgStore.HolidaysFor(ctx, period)
	if err != nil {
		return err
	}
	extra, err := generic.ParseHolidaySet(o.holidays)
	if err != nil {
		return err
	}

	in := commission.EvaluationInput{
		Today:           today,
		PeriodYear:      year,
		PeriodMonth:     month,
		Holidays:        stored.Merge(extra),
		Target:          target,
		Approved:        o.approved,
		Pending:         o.pending,
		RankingPosition: commission.ParseRankingPosition(o.position),
		Simulation: &commission.Simulation{
			ApprovedDelta: o.simApproved,
			PendingDelta:  o.simPending,
			Position:      commission.ParseRankingPosition(o.simPosition),
		},
	}

	res, err := commission.Evaluate(in)
	if err != nil {
		return err
	}
	log.Debug().Str("today", today.String()).Int("target", target).Msg("evaluated")

	if o.format == "json" {
		return writeEvaluationJSON(cmd.OutOrStdout(), o.name, in, res)
	}
	return writeEvaluationText(cmd.OutOrStdout(), o.name, period, in, res)
}

// =============================================================================
// OUTPUT
// =============================================================================

type scenarioOutput struct {
	Kind        string `json:"kind"`
	Projected   string `json:"projected"`
	Attainment  string `json:"attainment"`
	UnitRate    string `json:"unit_rate"`
	Accelerator string `json:"accelerator"`
	Subtotal    string `json:"subtotal"`
	Bonus       string `json:"bonus"`
	Total       string `json:"total"`
	Position    string `json:"ranking_position"`
}

type evaluationOutput struct {
	Summary           report.Summary          `json:"summary"`
	Scenarios         []scenarioOutput        `json:"scenarios"`
	RequiredDailyPace *string                 `json:"required_daily_pace"`
	PeriodClosed      bool                    `json:"period_closed"`
	Recommendations   []report.Recommendation `json:"recommendations"`
}

func toScenarioOutput(s commission.Scenario) scenarioOutput {
	c := s.Commission
	return scenarioOutput{
		Kind:        string(s.Kind),
		Projected:   s.Projected.Value.StringFixed(2),
		Attainment:  c.Attainment.StringFixed(4),
		UnitRate:    c.UnitRate.Value.StringFixed(2),
		Accelerator: c.Accelerator.StringFixed(1),
		Subtotal:    c.Subtotal.Value.StringFixed(2),
		Bonus:       c.Bonus.Value.StringFixed(2),
		Total:       c.Total.Value.StringFixed(2),
		Position:    s.Position.String(),
	}
}

func writeEvaluationJSON(w io.Writer, name string, in commission.EvaluationInput, res *commission.EvaluationResult) error {
	out := evaluationOutput{
		Summary:         report.NewSummary(name, in, res),
		PeriodClosed:    res.PeriodClosed,
		Recommendations: report.Recommendations(in, res),
	}
	for _, s := range res.Scenarios() {
		out.Scenarios = append(out.Scenarios, toScenarioOutput(s))
	}
	if res.RequiredDailyPace != nil {
		pace := res.RequiredDailyPace.StringFixed(2)
		out.RequiredDailyPace = &pace
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeEvaluationText(w io.Writer, name string, period generic.Period, in commission.EvaluationInput, res *commission.EvaluationResult) error {
	snap := res.Calendar
	fmt.Fprintf(w, "Period        : %s\n", period)
	fmt.Fprintf(w, "Business days : %d total, %d elapsed, %d remaining\n", snap.Total, snap.Elapsed, snap.Remaining)
	if res.PeriodClosed {
		fmt.Fprintln(w, "Required pace : period closed")
	} else {
		fmt.Fprintf(w, "Required pace : %s accounts/day\n", res.RequiredDailyPace.StringFixed(2))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tPROJECTED\tATTAINMENT\tRATE\tACCEL\tSUBTOTAL\tBONUS\tTOTAL")
	for _, s := range res.Scenarios() {
		o := toScenarioOutput(s)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.Kind, o.Projected, o.Attainment, o.UnitRate, o.Accelerator, o.Subtotal, o.Bonus, o.Total)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, rec := range report.Recommendations(in, res) {
		fmt.Fprintf(w, "- %s\n", rec.Message)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	_, err := io.WriteString(w, report.NewSummary(name, in, res).Text())
	return err
}
