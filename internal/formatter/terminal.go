package formatter

import (
	"fmt"
	"strings"

	"github.com/hmtran/voicescan/internal/analysis"
	"github.com/hmtran/voicescan/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(resp *analysis.AnalysisResponse) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, resp)
	f.writeStatistics(&b, resp)
	f.writeSegments(&b, resp)

	return []byte(b.String()), nil
}

// writeHeader writes the file summary block.
func (f *terminalFormatter) writeHeader(b *strings.Builder, resp *analysis.AnalysisResponse) {
	b.WriteString(emoji.GetEmoji("file") + " Analysis Result\n")

	items := []termfmt.TreeItem{
		{Label: "File", Value: resp.Filename},
		{Label: "Server Total", Value: fmt.Sprintf("%d", resp.TotalSegments)},
		{Label: "Segments Received", Value: fmt.Sprintf("%d", len(resp.Segments)), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeStatistics writes the per-classification counts with percentage bars.
// Percentages are computed over the received segment count.
func (f *terminalFormatter) writeStatistics(b *strings.Builder, resp *analysis.AnalysisResponse) {
	b.WriteString(emoji.GetEmoji("statistics") + " Statistics\n")

	stats := resp.GetStatistics()
	labels := orderedLabels(stats)
	denominator := len(resp.Segments)

	items := make([]termfmt.TreeItem, 0, len(labels))
	for i, label := range labels {
		count := stats[label]
		pct := percentage(count, denominator)

		item := termfmt.TreeItem{
			Label: fmt.Sprintf("%s %-10s", emoji.ForSegmentType(label), label),
			Value: fmt.Sprintf("%6d frames (%.2f%%)  [%s]", count, pct, distributionBar(pct)),
			Last:  i == len(labels)-1,
		}
		items = append(items, item)
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeSegments writes the bounded per-segment detail listing in received
// order.
func (f *terminalFormatter) writeSegments(b *strings.Builder, resp *analysis.AnalysisResponse) {
	fmt.Fprintf(b, "%s First %d Segments\n", emoji.GetEmoji("search"), maxDetailSegments)

	limit := len(resp.Segments)
	if limit > maxDetailSegments {
		limit = maxDetailSegments
	}

	for i := 0; i < limit; i++ {
		seg := resp.Segments[i]
		fmt.Fprintf(b, "%4d  %8.3f  %s %-10s  F0: %8.2f Hz  E: %.4f\n",
			i+1, seg.Time, emoji.ForSegmentType(seg.Type), seg.Type, seg.F0, seg.Energy)
	}

	if remaining := len(resp.Segments) - limit; remaining > 0 {
		fmt.Fprintf(b, "... and %d more segments\n", remaining)
	}
}
