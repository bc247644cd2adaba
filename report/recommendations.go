package report

import (
	"fmt"

	"github.com/atlas/quota-engine/commission"
)

// Recommendation codes are stable; messages may be reworded.
const (
	CodeKeepPace          = "keep-pace"
	CodeRaiseConversions  = "raise-conversions"
	CodeFollowUpPending   = "follow-up-pending"
	CodeJoinRanking       = "join-ranking"
	CodeRankingConsidered = "ranking-considered"
	CodeRequiredPace      = "required-pace"
	CodePeriodClosed      = "period-closed"
)

type Recommendation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Recommendations derives advice from one evaluation, in display order.
func Recommendations(in commission.EvaluationInput, res *commission.EvaluationResult) []Recommendation {
	var recs []Recommendation

	if res.PeriodClosed {
		recs = append(recs, Recommendation{
			Code:    CodePeriodClosed,
			Message: "No business days left this month. Check the final results.",
		})
	} else {
		recs = append(recs, Recommendation{
			Code: CodeRequiredPace,
			Message: fmt.Sprintf("Close an average of %s accounts per business day until month end to reach the target.",
				res.RequiredDailyPace.StringFixed(2)),
		})
	}

	if res.ApprovedOnly.MeetsTarget(in.Target) {
		recs = append(recs, Recommendation{
			Code:    CodeKeepPace,
			Message: "Keep the pace: you are on track to hit the target without counting pending accounts.",
		})
	} else {
		recs = append(recs, Recommendation{
			Code:    CodeRaiseConversions,
			Message: "Raise conversions or pipeline; focus on the accounts under review to get them approved.",
		})
	}

	if in.Pending > 0 {
		recs = append(recs, Recommendation{
			Code:    CodeFollowUpPending,
			Message: "Follow up quickly on pending accounts to turn them into approvals.",
		})
	}

	if pos := in.RankingPosition.Normalize(); pos.Valid() {
		recs = append(recs, Recommendation{
			Code:    CodeRankingConsidered,
			Message: fmt.Sprintf("Ranking position %s was included in the calculation.", pos),
		})
	} else {
		recs = append(recs, Recommendation{
			Code:    CodeJoinRanking,
			Message: "Reaching the top 3 of the ranking adds a bonus; aim for a podium position.",
		})
	}

	return recs
}
