// Package aggregator reduces an ordered sequence of agent outcomes into one
// turn result, resolving conflicts and partial failures.
package aggregator

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MergeStrategy combines the payloads of all successful outcomes, in plan
// order, into one response payload. Implementations must be deterministic.
type MergeStrategy interface {
	Merge(payloads []string) string
}

// TextJoin concatenates non-empty textual payloads with a separator. This is
// the default strategy: most smart-home agents answer in prose and the
// separator keeps multi-agent answers readable.
type TextJoin struct {
	Separator string
}

// NewTextJoin constructs a TextJoin strategy with the given separator.
func NewTextJoin(separator string) TextJoin { return TextJoin{Separator: separator} }

// Merge implements MergeStrategy.
func (s TextJoin) Merge(payloads []string) string {
	parts := make([]string, 0, len(payloads))
	for _, payload := range payloads {
		if payload != "" {
			parts = append(parts, payload)
		}
	}
	return strings.Join(parts, s.Separator)
}

// JSONMerge merges structured JSON object payloads key by key, later
// payloads overwriting earlier ones. Payloads that are not JSON objects are
// ignored; if no payload is a JSON object the strategy degrades to a newline
// join so the caller still gets something usable.
type JSONMerge struct{}

// NewJSONMerge constructs a JSONMerge strategy.
func NewJSONMerge() JSONMerge { return JSONMerge{} }

// Merge implements MergeStrategy.
func (JSONMerge) Merge(payloads []string) string {
	merged := "{}"
	sawObject := false

	for _, payload := range payloads {
		parsed := gjson.Parse(payload)
		if !parsed.IsObject() {
			continue
		}
		sawObject = true
		parsed.ForEach(func(key, value gjson.Result) bool {
			merged, _ = sjson.SetRaw(merged, key.String(), value.Raw)
			return true
		})
	}

	if !sawObject {
		return TextJoin{Separator: "\n"}.Merge(payloads)
	}
	return merged
}
