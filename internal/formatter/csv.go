package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/hmtran/voicescan/internal/analysis"
)

// csvFormatter formats segments as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(resp *analysis.AnalysisResponse) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Index",
		"Time",
		"Type",
		"F0",
		"Energy",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	// CSV carries all segments; the 20-row cap only applies to display
	// formats.
	for i, seg := range resp.Segments {
		record := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.3f", seg.Time),
			seg.Type,
			fmt.Sprintf("%.2f", seg.F0),
			fmt.Sprintf("%.4f", seg.Energy),
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}
