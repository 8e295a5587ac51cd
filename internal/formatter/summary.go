package formatter

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// SummaryLimit is the default length of a body preview, counted in
// grapheme clusters so combined characters are never split.
const SummaryLimit = 200

// Summary truncates text to at most limit grapheme clusters, appending
// an ellipsis when anything was cut. A limit of 0 or less uses
// SummaryLimit.
func Summary(text string, limit int) string {
	if limit <= 0 {
		limit = SummaryLimit
	}

	text = strings.TrimSpace(text)

	var b strings.Builder

	count := 0
	truncated := false

	tokens := graphemes.FromString(text)
	for tokens.Next() {
		if count == limit {
			truncated = true

			break
		}

		b.WriteString(tokens.Value())
		count++
	}

	if !truncated {
		return text
	}

	return b.String() + "..."
}
