package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/hmtran/voicescan/internal/analysis"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(resp *analysis.AnalysisResponse) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Voice Analysis Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	f.writeSummaryTable(&b, resp)
	f.writeStatisticsTable(&b, resp)
	f.writeSegmentTable(&b, resp)

	return []byte(b.String()), nil
}

// writeSummaryTable writes the summary table
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, resp *analysis.AnalysisResponse) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| File | %s |\n", resp.Filename)
	fmt.Fprintf(b, "| Server Total | %d |\n", resp.TotalSegments)
	fmt.Fprintf(b, "| Segments Received | %d |\n\n", len(resp.Segments))
}

// writeStatisticsTable writes per-classification counts and percentages
func (f *markdownFormatter) writeStatisticsTable(b *strings.Builder, resp *analysis.AnalysisResponse) {
	b.WriteString("## Statistics\n\n")

	stats := resp.GetStatistics()
	denominator := len(resp.Segments)

	b.WriteString("| Type | Frames | Percentage |\n")
	b.WriteString("|------|--------|------------|\n")
	for _, label := range orderedLabels(stats) {
		count := stats[label]
		fmt.Fprintf(b, "| %s | %d | %.2f%% |\n", label, count, percentage(count, denominator))
	}
	b.WriteString("\n")
}

// writeSegmentTable writes the bounded segment listing
func (f *markdownFormatter) writeSegmentTable(b *strings.Builder, resp *analysis.AnalysisResponse) {
	fmt.Fprintf(b, "## First %d Segments\n\n", maxDetailSegments)

	limit := len(resp.Segments)
	if limit > maxDetailSegments {
		limit = maxDetailSegments
	}

	b.WriteString("| # | Time (s) | Type | F0 (Hz) | Energy |\n")
	b.WriteString("|---|----------|------|---------|--------|\n")
	for i := 0; i < limit; i++ {
		seg := resp.Segments[i]
		fmt.Fprintf(b, "| %d | %.3f | %s | %.2f | %.4f |\n", i+1, seg.Time, seg.Type, seg.F0, seg.Energy)
	}

	if remaining := len(resp.Segments) - limit; remaining > 0 {
		fmt.Fprintf(b, "\n... and %d more segments\n", remaining)
	}
}
