package analysis

import (
	"encoding/json"
	"fmt"
)

// Canonical segment classifications returned by the analysis server.
// The wire format carries them as free-form strings, so any other label
// must be tolerated and carried through verbatim.
const (
	TypeVoiced   = "VOICED"
	TypeUnvoiced = "UNVOICED"
	TypeSilence  = "SILENCE"
)

// CanonicalTypes lists the known classifications in display order.
var CanonicalTypes = []string{TypeVoiced, TypeUnvoiced, TypeSilence}

// Segment is one classified audio frame.
type Segment struct {
	Time   float64 `json:"time"`   // seconds from start of file
	Type   string  `json:"type"`   // VOICED, UNVOICED, SILENCE, or unrecognized
	F0     float64 `json:"f0"`     // fundamental frequency in Hz, meaningful for VOICED only
	Energy float64 `json:"energy"` // frame energy
}

// AnalysisResponse is the decoded reply from the analysis endpoint.
// Segments keep their received (chronological) order. TotalSegments is the
// server-declared count and is not reconciled against len(Segments); callers
// that need a denominator use the actual slice length.
type AnalysisResponse struct {
	Filename      string    `json:"filename"`
	TotalSegments int       `json:"total_segments"`
	Segments      []Segment `json:"segments"`
}

// wireResponse mirrors AnalysisResponse with pointer fields so that absent
// keys can be told apart from zero values during decoding.
type wireResponse struct {
	Filename      *string    `json:"filename"`
	TotalSegments *int       `json:"total_segments"`
	Segments      *[]Segment `json:"segments"`
}

// ParseResponse decodes a JSON response body into an AnalysisResponse.
// It fails if the body is not valid JSON, a field has the wrong shape, or a
// required field is missing. Numeric ranges and the declared segment count
// are not validated here.
func ParseResponse(data []byte) (*AnalysisResponse, error) {
	var wire wireResponse
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	if wire.Filename == nil {
		return nil, fmt.Errorf("response missing required field %q", "filename")
	}
	if wire.TotalSegments == nil {
		return nil, fmt.Errorf("response missing required field %q", "total_segments")
	}
	if wire.Segments == nil {
		return nil, fmt.Errorf("response missing required field %q", "segments")
	}

	return &AnalysisResponse{
		Filename:      *wire.Filename,
		TotalSegments: *wire.TotalSegments,
		Segments:      *wire.Segments,
	}, nil
}

// GetStatistics counts segments per classification label. The result is
// always pre-seeded with the three canonical labels at zero; unrecognized
// labels accumulate under their literal key.
func (r *AnalysisResponse) GetStatistics() map[string]int {
	stats := map[string]int{
		TypeVoiced:   0,
		TypeUnvoiced: 0,
		TypeSilence:  0,
	}

	for i := range r.Segments {
		stats[r.Segments[i].Type]++
	}

	return stats
}
