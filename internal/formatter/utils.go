package formatter

import (
	"sort"
	"strings"

	"github.com/hmtran/voicescan/internal/analysis"
)

// maxDetailSegments bounds the per-segment detail listing; responses with
// more segments get a remainder count instead.
const maxDetailSegments = 20

// barWidth is the character width of the statistics distribution bars.
const barWidth = 20

// orderedLabels returns the statistics labels in presentation order: the
// three canonical classifications first, in their fixed order, then any
// unrecognized labels sorted for stable output.
func orderedLabels(stats map[string]int) []string {
	labels := make([]string, 0, len(stats))
	labels = append(labels, analysis.CanonicalTypes...)

	var extras []string
	for label := range stats {
		if !isCanonical(label) {
			extras = append(extras, label)
		}
	}
	sort.Strings(extras)

	return append(labels, extras...)
}

func isCanonical(label string) bool {
	for _, c := range analysis.CanonicalTypes {
		if label == c {
			return true
		}
	}
	return false
}

// percentage computes count/denominator as a percentage, returning 0 for an
// empty denominator. The denominator is always the actual number of
// segments received, not the server-declared total.
func percentage(count, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return float64(count) / float64(denominator) * 100
}

// distributionBar renders a fixed-width fill bar for a percentage.
func distributionBar(pct float64) string {
	filled := int(pct / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
