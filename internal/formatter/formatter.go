package formatter

import "github.com/hmtran/voicescan/internal/analysis"

// Formatter defines the interface for rendering an analysis response
type Formatter interface {
	Format(resp *analysis.AnalysisResponse) ([]byte, error)
}
