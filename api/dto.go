/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - Float money for the dashboard while the engine stays in decimals
  - Lenient input (ranking position as "1" or 1)

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Evaluation:
    EvaluateRequest, SimulationRequest, EvaluationDTO, ScenarioDTO,
    CalendarDTO, PacePointDTO

  Configuration:
    HolidayDTO, CreateHolidayRequest, TeamDTO, SaveTeamRequest

  Presets:
    PresetDTO

VALIDATION:
  Validation is done in handlers and the engine, not in DTOs. DTOs are
  pure data carriers; PositionParam only normalises its input.

SEE ALSO:
  - handlers.go: Uses these types
  - commission/engine.go: EvaluationInput and EvaluationResult
*/
package api

import (
	"encoding/json"
	"fmt"

	"github.com/atlas/quota-engine/commission"
	"github.com/atlas/quota-engine/generic"
	"github.com/atlas/quota-engine/report"
)

// =============================================================================
// EVALUATION REQUEST
// =============================================================================

// EvaluateRequest is the body of POST /api/evaluations.
type EvaluateRequest struct {
	Name            string             `json:"name,omitempty"`
	Today           string             `json:"today,omitempty"`        // YYYY-MM-DD; defaults to the server clock
	PeriodYear      int                `json:"period_year,omitempty"`  // defaults to today's year
	PeriodMonth     int                `json:"period_month,omitempty"` // 1-12; defaults to today's month
	Holidays        []string           `json:"holidays,omitempty"`     // merged with stored holidays
	Target          *int               `json:"target,omitempty"`       // defaults to the team's target
	TeamID          string             `json:"team_id,omitempty"`
	Approved        int                `json:"approved"`
	Pending         int                `json:"pending"`
	RankingPosition PositionParam      `json:"ranking_position,omitempty"`
	Simulation      *SimulationRequest `json:"simulation,omitempty"`
}

// SimulationRequest describes the what-if scenario.
type SimulationRequest struct {
	ApprovedDelta int           `json:"approved_delta"`
	PendingDelta  int           `json:"pending_delta"`
	Position      PositionParam `json:"position,omitempty"`
}

// PositionParam accepts a ranking position as a number, a numeric string,
// "none", or null. Anything outside 1..3 becomes no position.
type PositionParam commission.RankingPosition

func (p *PositionParam) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = PositionParam(commission.PositionNone)
		return nil
	}

	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*p = PositionParam(commission.RankingPosition(n).Normalize())
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("ranking position must be a number or a string, got %s", b)
	}
	*p = PositionParam(commission.ParseRankingPosition(s))
	return nil
}

func (p PositionParam) MarshalJSON() ([]byte, error) {
	return json.Marshal(commission.RankingPosition(p).String())
}

// =============================================================================
// EVALUATION RESPONSE
// =============================================================================

// EvaluationDTO is the full response of an evaluation.
type EvaluationDTO struct {
	Name              string                  `json:"name,omitempty"`
	Today             string                  `json:"today"`
	PeriodStart       string                  `json:"period_start"`
	PeriodEnd         string                  `json:"period_end"`
	Target            int                     `json:"target"`
	Calendar          CalendarDTO             `json:"calendar"`
	Scenarios         []ScenarioDTO           `json:"scenarios"`
	RequiredDailyPace *float64                `json:"required_daily_pace"` // null once the period is closed
	PeriodClosed      bool                    `json:"period_closed"`
	Recommendations   []report.Recommendation `json:"recommendations"`
	PaceSeries        []PacePointDTO          `json:"pace_series"`
}

// CalendarDTO is the business-day snapshot.
type CalendarDTO struct {
	Total     int      `json:"total_business_days"`
	Elapsed   int      `json:"elapsed_business_days"`
	Remaining int      `json:"remaining_business_days"`
	Holidays  []string `json:"holidays"`
}

// ScenarioDTO is one scenario with its commission breakdown.
type ScenarioDTO struct {
	Kind        string  `json:"kind"`
	CountSoFar  float64 `json:"count_so_far"`
	Projected   float64 `json:"projected"`
	Attainment  float64 `json:"attainment"`
	UnitRate    float64 `json:"unit_rate"`
	Accelerator float64 `json:"accelerator"`
	Subtotal    float64 `json:"subtotal"`
	Bonus       float64 `json:"bonus"`
	Total       float64 `json:"total"`
	Position    string  `json:"ranking_position"`
	MeetsTarget bool    `json:"meets_target"`
	Shortfall   float64 `json:"shortfall"`
}

// PacePointDTO is one point of the pace chart.
type PacePointDTO struct {
	Day        int     `json:"day"`
	Cumulative float64 `json:"cumulative"`
	Target     float64 `json:"target"`
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// HolidayDTO represents a holiday in API responses.
type HolidayDTO struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

// CreateHolidayRequest is the request to create a holiday.
type CreateHolidayRequest struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

// TeamDTO represents a team in API responses.
type TeamDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DefaultTarget int    `json:"default_target"`
}

// SaveTeamRequest is the request to create or update a team.
type SaveTeamRequest struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	DefaultTarget int    `json:"default_target"`
}

// =============================================================================
// PRESETS
// =============================================================================

// PresetDTO describes a demo evaluation.
type PresetDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Request     EvaluateRequest `json:"request"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toScenarioDTO(s commission.Scenario, target int) ScenarioDTO {
	c := s.Commission
	return ScenarioDTO{
		Kind:        string(s.Kind),
		CountSoFar:  s.CountSoFar.Float64(),
		Projected:   s.Projected.Round(2).Float64(),
		Attainment:  c.Attainment.Round(4).InexactFloat64(),
		UnitRate:    c.UnitRate.Float64(),
		Accelerator: c.Accelerator.InexactFloat64(),
		Subtotal:    c.Subtotal.Round(2).Float64(),
		Bonus:       c.Bonus.Float64(),
		Total:       c.Total.Round(2).Float64(),
		Position:    s.Position.String(),
		MeetsTarget: s.MeetsTarget(target),
		Shortfall:   s.Shortfall(target).Round(2).Float64(),
	}
}

func toHolidayDTO(h generic.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:        h.ID,
		Date:      h.Date.String(),
		Name:      h.Name,
		Recurring: h.Recurring,
	}
}

func toTeamDTO(t generic.Team) TeamDTO {
	return TeamDTO{ID: t.ID, Name: t.Name, DefaultTarget: t.DefaultTarget}
}
