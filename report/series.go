package report

import (
	"github.com/shopspring/decimal"

	"github.com/atlas/quota-engine/commission"
	"github.com/atlas/quota-engine/generic"
)

// PacePoint is one business day on the pace chart.
type PacePoint struct {
	Day        int             // 1-based business-day index
	Cumulative decimal.Decimal // approved accounts expected by this day at the current pace
	Target     decimal.Decimal // flat line at the monthly target
}

// PaceSeries returns one point per business day of the period.
// The target line is flat: every point carries the monthly target.
func PaceSeries(res *commission.EvaluationResult) ([]PacePoint, error) {
	pace, err := generic.DailyPace(res.ApprovedOnly.CountSoFar, res.Calendar.PaceDivisor())
	if err != nil {
		return nil, err
	}

	target := decimal.NewFromInt(int64(res.Target))
	points := make([]PacePoint, 0, res.Calendar.Total)
	for day := 1; day <= res.Calendar.Total; day++ {
		points = append(points, PacePoint{
			Day:        day,
			Cumulative: pace.Value.Mul(decimal.NewFromInt(int64(day))),
			Target:     target,
		})
	}
	return points, nil
}
