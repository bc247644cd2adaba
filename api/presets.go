/*
presets.go - Demo evaluations for the dashboard

PURPOSE:
  Provides canned evaluation requests that show the engine's behaviour
  without typing numbers: on pace, behind pace, a podium bonus and a
  what-if simulation. Presets omit "today", so they always run against
  the server clock and the current month.

AVAILABLE PRESETS:
  on-track:        URA team target, pace exactly on target
  behind-pace:     DISCADOR team target, well below the 80% tier
  top-ranked:      Ahead of target with the first-place bonus
  with-simulation: Baseline plus a what-if with more approvals

USAGE VIA API:
  GET  /api/presets
  POST /api/presets/on-track/evaluate

ADDING NEW PRESETS:
  Append to 'presets' with an ID, a name, a description and the request.
  Team-based presets need the team to exist in the store.

SEE ALSO:
  - handlers.go: Evaluation flow shared with POST /api/evaluations
  - factory/config.go: Default teams the presets refer to
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atlas/quota-engine/commission"
)

// =============================================================================
// PRESET DEFINITIONS
// =============================================================================

func intPtr(n int) *int { return &n }

var presets = []PresetDTO{
	{
		ID:          "on-track",
		Name:        "On Track",
		Description: "URA default target with approvals on pace and some pending",
		Request: EvaluateRequest{
			Name:     "On Track",
			TeamID:   "ura",
			Approved: 40,
			Pending:  10,
		},
	},
	{
		ID:          "behind-pace",
		Name:        "Behind Pace",
		Description: "DISCADOR default target, below the first commission tier",
		Request: EvaluateRequest{
			Name:     "Behind Pace",
			TeamID:   "discador",
			Approved: 12,
			Pending:  4,
		},
	},
	{
		ID:          "top-ranked",
		Name:        "Top Ranked",
		Description: "Ahead of target and first in the ranking",
		Request: EvaluateRequest{
			Name:            "Top Ranked",
			Target:          intPtr(80),
			Approved:        55,
			Pending:         8,
			RankingPosition: PositionParam(commission.PositionFirst),
		},
	},
	{
		ID:          "with-simulation",
		Name:        "With Simulation",
		Description: "Third place today; what if five more accounts close and the ranking improves",
		Request: EvaluateRequest{
			Name:            "With Simulation",
			Target:          intPtr(80),
			Approved:        35,
			Pending:         12,
			RankingPosition: PositionParam(commission.PositionThird),
			Simulation: &SimulationRequest{
				ApprovedDelta: 5,
				PendingDelta:  0,
				Position:      PositionParam(commission.PositionSecond),
			},
		},
	},
}

func findPreset(id string) (PresetDTO, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return PresetDTO{}, false
}

// ListPresets returns available presets.
// GET /api/presets
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presets)
}

// EvaluatePreset runs one preset against the current clock.
// POST /api/presets/{id}/evaluate
func (h *Handler) EvaluatePreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	preset, ok := findPreset(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown preset: "+id, nil)
		return
	}

	ev, err := h.evaluate(r.Context(), preset.Request)
	if err != nil {
		h.fail(w, r, "Preset evaluation failed", err)
		return
	}

	dto, err := toEvaluationDTO(ev)
	if err != nil {
		h.fail(w, r, "Preset evaluation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}
