package ai

import "strings"

// Section markers. Matching is exact-substring and case-sensitive: output
// that labels its sections differently (casing, localization) collapses into
// Summary with empty insights/recommendations. That fragility is inherited
// from the upstream behavior and kept deliberately; do not loosen the
// matching without flagging the behavior change.
const (
	summaryLabel          = "Summary:"
	insightsMarker        = "Insights:"
	recommendationsMarker = "Recommendations:"
)

// ParsedSummary is the sectioned form of a raw completion.
type ParsedSummary struct {
	Summary         string   `json:"summary"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// ParseSections splits raw completion text into summary, insights and
// recommendations using the literal markers. Parsing never fails: with no
// markers the whole trimmed text becomes the summary and the lists are empty.
func ParseSections(raw string) ParsedSummary {
	out := ParsedSummary{Insights: []string{}, Recommendations: []string{}}

	idx := strings.Index(raw, insightsMarker)
	if idx < 0 {
		out.Summary = stripSummaryLabel(raw)
		return out
	}

	out.Summary = stripSummaryLabel(raw[:idx])
	rest := raw[idx+len(insightsMarker):]

	if rIdx := strings.Index(rest, recommendationsMarker); rIdx >= 0 {
		out.Insights = nonBlankLines(rest[:rIdx])
		out.Recommendations = nonBlankLines(rest[rIdx+len(recommendationsMarker):])
	} else {
		out.Insights = nonBlankLines(rest)
	}
	return out
}

// stripSummaryLabel removes the first "Summary:" label and trims whitespace.
func stripSummaryLabel(s string) string {
	return strings.TrimSpace(strings.Replace(s, summaryLabel, "", 1))
}

// nonBlankLines trims the block, splits it into lines and drops every empty
// or whitespace-only line. Line content is otherwise left untouched.
func nonBlankLines(block string) []string {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	out := []string{}
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
