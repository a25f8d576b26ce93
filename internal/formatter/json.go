package formatter

import (
	"encoding/json"

	"github.com/hmtran/voicescan/internal/analysis"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(resp *analysis.AnalysisResponse) ([]byte, error) {
	output := &JSONOutput{
		Summary:    createSummary(resp),
		Statistics: resp.GetStatistics(),
		Segments:   resp.Segments,
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput is the machine-readable report structure. Segments keep the
// wire schema so they round-trip through analysis.ParseResponse.
type JSONOutput struct {
	Summary    *SummaryOutput     `json:"summary"`
	Statistics map[string]int     `json:"statistics"`
	Segments   []analysis.Segment `json:"segments"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	Filename         string             `json:"filename"`
	TotalSegments    int                `json:"total_segments"`
	SegmentsReceived int                `json:"segments_received"`
	Percentages      map[string]float64 `json:"percentages"`
}

// createSummary builds the summary with percentages over the received
// segment count.
func createSummary(resp *analysis.AnalysisResponse) *SummaryOutput {
	stats := resp.GetStatistics()
	denominator := len(resp.Segments)

	percentages := make(map[string]float64, len(stats))
	for label, count := range stats {
		percentages[label] = percentage(count, denominator)
	}

	return &SummaryOutput{
		Filename:         resp.Filename,
		TotalSegments:    resp.TotalSegments,
		SegmentsReceived: denominator,
		Percentages:      percentages,
	}
}
