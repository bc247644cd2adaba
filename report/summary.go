/*
Package report shapes evaluation results for people.

PURPOSE:
  The engine returns numbers; this package turns them into the artefacts a
  dashboard or terminal shows: a copy-paste summary, a short list of
  recommendations, and the data behind the "pace vs target" chart. It adds
  no arithmetic of its own beyond rounding and formatting.

ARTEFACTS:
  Summary:         Ordered key/value block, as text or JSON
  Recommendations: Rule-based advice keyed by a stable code
  PaceSeries:      Cumulative pace per business day against a flat target

SEE ALSO:
  - commission/engine.go: EvaluationResult
  - api/handlers.go: Serves all three over HTTP
  - cmd/quota: Prints them on the terminal
*/
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atlas/quota-engine/commission"
)

// Field is one summary line. Value is a string, an int or a float64.
type Field struct {
	Key   string
	Value any
}

// Summary is an ordered key/value export of one evaluation.
type Summary struct {
	Fields []Field
}

// NewSummary builds the export. The headline commission is the approved-only
// scenario; the main projection includes pending accounts.
func NewSummary(name string, in commission.EvaluationInput, res *commission.EvaluationResult) Summary {
	headline := res.ApprovedOnly.Commission

	return Summary{Fields: []Field{
		{"name", name},
		{"target", in.Target},
		{"approved", in.Approved},
		{"pending", in.Pending},
		{"main_projection", res.ApprovedPlusPending.Projected.Round(2).Float64()},
		{"headline_commission", headline.Total.Round(2).Float64()},
		{"commission_without_bonus", headline.Subtotal.Round(2).Float64()},
		{"ranking_position", in.RankingPosition.Normalize().String()},
		{"remaining_business_days", res.Calendar.Remaining},
	}}
}

// Get returns the value stored under key.
func (s Summary) Get(key string) (any, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Text renders "key: value" lines; floats always carry two decimals.
func (s Summary) Text() string {
	var b strings.Builder
	for _, f := range s.Fields {
		switch v := f.Value.(type) {
		case float64:
			fmt.Fprintf(&b, "%s: %.2f\n", f.Key, v)
		default:
			fmt.Fprintf(&b, "%s: %v\n", f.Key, v)
		}
	}
	return b.String()
}

// MarshalJSON keeps field order, which a map would lose.
func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("summary field %s: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
