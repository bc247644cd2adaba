/*
handlers.go - HTTP API handlers for the quota engine

PURPOSE:
  Exposes the commission engine via REST API. Handles HTTP request/response,
  resolves defaults (clock, team target, stored holidays) and delegates the
  arithmetic to commission.Evaluate. Nothing computed is persisted.

ENDPOINTS:
  Evaluations:
    POST   /api/evaluations          Evaluate scenarios, pace, recommendations
    POST   /api/evaluations/summary  Key/value summary (?format=text)

  Holidays:
    GET    /api/holidays             List holidays (?year=)
    POST   /api/holidays             Create holiday
    DELETE /api/holidays/{id}        Delete holiday

  Teams:
    GET    /api/teams                List teams and default targets
    POST   /api/teams                Create or update a team

  Presets:
    GET    /api/presets              List demo evaluations
    POST   /api/presets/{id}/evaluate Evaluate a demo against the clock

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Holidays and teams
  - Log:   Request-independent logger for failures
  - Clock: Source of "today" when a request omits it

REQUEST FLOW:
  1. Parse HTTP request
  2. Resolve defaults (today, period, target, holidays)
  3. Call commission.Evaluate
  4. Shape the result (report package) and serialize
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed JSON, invalid arguments
  - 404: Unknown team or holiday
  - 500: Store failures

SEE ALSO:
  - dto.go: Request/response data structures
  - presets.go: Demo evaluations
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/atlas/quota-engine/commission"
	"github.com/atlas/quota-engine/factory"
	"github.com/atlas/quota-engine/generic"
	"github.com/atlas/quota-engine/report"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   generic.ConfigStore
	Factory *factory.ConfigFactory
	Log     zerolog.Logger
	Clock   func() time.Time
}

// NewHandler creates a new handler with the given store.
func NewHandler(store generic.ConfigStore, log zerolog.Logger) *Handler {
	return &Handler{
		Store:   store,
		Factory: factory.NewConfigFactory(),
		Log:     log.With().Str("component", "api").Logger(),
		Clock:   time.Now,
	}
}

// =============================================================================
// EVALUATION HANDLERS
// =============================================================================

// evaluation bundles what one request resolved to and what the engine returned.
type evaluation struct {
	name     string
	input    commission.EvaluationInput
	result   *commission.EvaluationResult
	period   generic.Period
	holidays generic.HolidaySet
}

// Evaluate runs all scenarios for one salesperson.
// POST /api/evaluations
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ev, err := h.evaluate(r.Context(), req)
	if err != nil {
		h.fail(w, r, "Evaluation failed", err)
		return
	}

	dto, err := toEvaluationDTO(ev)
	if err != nil {
		h.fail(w, r, "Evaluation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// Summary returns the copy-paste export of one evaluation.
// POST /api/evaluations/summary?format=text|json
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ev, err := h.evaluate(r.Context(), req)
	if err != nil {
		h.fail(w, r, "Evaluation failed", err)
		return
	}

	summary := report.NewSummary(ev.name, ev.input, ev.result)
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(summary.Text()))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// evaluate resolves request defaults and runs the engine.
func (h *Handler) evaluate(ctx context.Context, req EvaluateRequest) (*evaluation, error) {
	today := generic.DateOf(h.Clock())
	if req.Today != "" {
		parsed, err := generic.ParseDate(req.Today)
		if err != nil {
			return nil, err
		}
		today = parsed
	}

	year, month := req.PeriodYear, time.Month(req.PeriodMonth)
	if year == 0 && month == 0 {
		year, month = today.Year(), today.Month()
	}
	period, err := generic.MonthPeriod(year, month)
	if err != nil {
		return nil, err
	}

	target, err := h.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	holidays, err := h.resolveHolidays(ctx, period, req.Holidays)
	if err != nil {
		return nil, err
	}

	in := commission.EvaluationInput{
		Today:           today,
		PeriodYear:      year,
		PeriodMonth:     month,
		Holidays:        holidays,
		Target:          target,
		Approved:        req.Approved,
		Pending:         req.Pending,
		RankingPosition: commission.RankingPosition(req.RankingPosition),
	}
	if sim := req.Simulation; sim != nil {
		in.Simulation = &commission.Simulation{
			ApprovedDelta: sim.ApprovedDelta,
			PendingDelta:  sim.PendingDelta,
			Position:      commission.RankingPosition(sim.Position),
		}
	}

	result, err := commission.Evaluate(in)
	if err != nil {
		return nil, err
	}

	h.Log.Debug().
		Str("today", today.String()).
		Int("target", target).
		Int("approved", req.Approved).
		Int("pending", req.Pending).
		Str("approved_only_total", result.ApprovedOnly.Commission.Total.Value.StringFixed(2)).
		Msg("evaluated")

	return &evaluation{
		name:     req.Name,
		input:    in,
		result:   result,
		period:   period,
		holidays: holidays,
	}, nil
}

// resolveTarget prefers an explicit target, then the team's default.
func (h *Handler) resolveTarget(ctx context.Context, req EvaluateRequest) (int, error) {
	if req.Target != nil {
		return *req.Target, nil
	}
	if req.TeamID == "" {
		return 0, &generic.InvalidArgumentError{
			Field:  "target",
			Value:  nil,
			Reason: "either target or team_id is required",
		}
	}
	team, err := h.Store.GetTeam(ctx, req.TeamID)
	if err != nil {
		return 0, err
	}
	return team.DefaultTarget, nil
}

// resolveHolidays merges stored holidays for period with the request's own.
func (h *Handler) resolveHolidays(ctx context.Context, period generic.Period, extra []string) (generic.HolidaySet, error) {
	stored, err := h.Store.HolidaysFor(ctx, period)
	if err != nil {
		return nil, err
	}
	requested, err := generic.ParseHolidaySet(extra)
	if err != nil {
		return nil, err
	}
	return stored.Merge(requested), nil
}

func toEvaluationDTO(ev *evaluation) (EvaluationDTO, error) {
	res := ev.result

	series, err := report.PaceSeries(res)
	if err != nil {
		return EvaluationDTO{}, err
	}
	points := make([]PacePointDTO, 0, len(series))
	for _, p := range series {
		points = append(points, PacePointDTO{
			Day:        p.Day,
			Cumulative: p.Cumulative.Round(2).InexactFloat64(),
			Target:     p.Target.InexactFloat64(),
		})
	}

	holidays := make([]string, 0, ev.holidays.Len())
	for _, d := range ev.holidays.Dates() {
		holidays = append(holidays, d.String())
	}

	scenarios := make([]ScenarioDTO, 0, 3)
	for _, s := range res.Scenarios() {
		scenarios = append(scenarios, toScenarioDTO(s, res.Target))
	}

	dto := EvaluationDTO{
		Name:        ev.name,
		Today:       ev.input.Today.String(),
		PeriodStart: ev.period.Start.String(),
		PeriodEnd:   ev.period.End.String(),
		Target:      res.Target,
		Calendar: CalendarDTO{
			Total:     res.Calendar.Total,
			Elapsed:   res.Calendar.Elapsed,
			Remaining: res.Calendar.Remaining,
			Holidays:  holidays,
		},
		Scenarios:       scenarios,
		PeriodClosed:    res.PeriodClosed,
		Recommendations: report.Recommendations(ev.input, res),
		PaceSeries:      points,
	}
	if res.RequiredDailyPace != nil {
		pace := res.RequiredDailyPace.Round(2).InexactFloat64()
		dto.RequiredDailyPace = &pace
	}
	return dto, nil
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns all holidays, optionally only those falling in a year.
// GET /api/holidays?year=2025
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to get holidays", err)
		return
	}

	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		if year != 0 {
			date, ok := hol.InYear(year)
			if !ok {
				continue
			}
			hol.Date = date
		}
		dtos = append(dtos, toHolidayDTO(hol))
	}

	writeJSON(w, http.StatusOK, map[string]any{"holidays": dtos})
}

// CreateHoliday creates a new holiday.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Date == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Date and name are required", nil)
		return
	}

	holiday, err := h.Factory.Holiday(factory.HolidayJSON{
		Date:      req.Date,
		Name:      req.Name,
		Recurring: req.Recurring,
	})
	if err != nil {
		h.fail(w, r, "Invalid holiday", err)
		return
	}

	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		h.fail(w, r, "Failed to create holiday", err)
		return
	}

	writeJSON(w, http.StatusCreated, toHolidayDTO(holiday))
}

// DeleteHoliday deletes a holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		h.fail(w, r, "Failed to delete holiday", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// =============================================================================
// TEAM ENDPOINTS
// =============================================================================

// ListTeams returns all teams.
// GET /api/teams
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Store.ListTeams(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to get teams", err)
		return
	}

	dtos := make([]TeamDTO, 0, len(teams))
	for _, t := range teams {
		dtos = append(dtos, toTeamDTO(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": dtos})
}

// SaveTeam creates or updates a team.
// POST /api/teams
func (h *Handler) SaveTeam(w http.ResponseWriter, r *http.Request) {
	var req SaveTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	team, err := h.Factory.Team(factory.TeamJSON{
		ID:            req.ID,
		Name:          req.Name,
		DefaultTarget: req.DefaultTarget,
	})
	if err != nil {
		h.fail(w, r, "Invalid team", err)
		return
	}

	if err := h.Store.SaveTeam(r.Context(), team); err != nil {
		h.fail(w, r, "Failed to save team", err)
		return
	}

	writeJSON(w, http.StatusOK, toTeamDTO(team))
}

// =============================================================================
// CONFIG EXPORT
// =============================================================================

// ExportConfig returns every stored team and holiday in the TEAMS_FILE
// format, ready to be saved and seeded into another deployment.
// GET /api/config
func (h *Handler) ExportConfig(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Store.ListTeams(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to get teams", err)
		return
	}
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to get holidays", err)
		return
	}

	writeJSON(w, http.StatusOK, h.Factory.ToJSON(&factory.Config{Teams: teams, Holidays: holidays}))
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   h.Clock().UTC().Format(time.RFC3339),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message, Code: codeFor(status)}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// fail classifies err, logs server-side failures and writes the response.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg(message)
	}
	writeError(w, status, message, err)
}

func statusFor(err error) int {
	var syntaxErr *json.SyntaxError
	switch {
	case generic.IsClientError(err), errors.As(err, &syntaxErr):
		return http.StatusBadRequest
	case generic.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_argument"
	case http.StatusNotFound:
		return "not_found"
	default:
		return "internal"
	}
}
