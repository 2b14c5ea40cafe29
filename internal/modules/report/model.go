// README: Report section model, supersession rule, and confidence normalization.
package report

import (
	"time"

	"voyage/internal/agent"
	"voyage/internal/trip"
	"voyage/internal/types"
)

// ExpectedSections is the fixed set a complete report contains.
var ExpectedSections = agent.AllTypes

// Section is one persisted agent output. Confidence is stored as an integer
// on the 0–100 scale; read paths expose the 0.0–1.0 float via View.
type Section struct {
	ID          int64
	TripID      types.ID
	SectionType string
	Title       string
	Content     string
	Confidence  int
	Sources     []agent.Source
	GeneratedAt time.Time
}

// SectionView is the read model with normalized confidence.
type SectionView struct {
	SectionType string         `json:"section_type"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Confidence  float64        `json:"confidence_score"`
	Sources     []agent.Source `json:"sources,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// NormalizeConfidence converts the stored 0–100 integer to the 0.0–1.0
// scale. Every read path goes through this one function.
func NormalizeConfidence(stored int) float64 {
	return float64(stored) / 100
}

// StoredConfidence converts an agent's 0.0–1.0 score to the stored integer
// scale, clamping out-of-range values.
func StoredConfidence(score float64) int {
	switch {
	case score <= 0:
		return 0
	case score >= 1:
		return 100
	default:
		return int(score*100 + 0.5)
	}
}

func (s Section) View() SectionView {
	return SectionView{
		SectionType: s.SectionType,
		Title:       s.Title,
		Content:     s.Content,
		Confidence:  NormalizeConfidence(s.Confidence),
		Sources:     s.Sources,
		GeneratedAt: s.GeneratedAt,
	}
}

// AggregatedReport is the read-time composition of the latest sections plus
// a completeness and confidence summary. It is never stored.
type AggregatedReport struct {
	TripID            types.ID               `json:"trip_id"`
	TripInfo          *trip.Header           `json:"trip_info"`
	Sections          map[string]SectionView `json:"sections"`
	AvailableSections []string               `json:"available_sections"`
	MissingSections   []string               `json:"missing_sections"`
	OverallConfidence float64                `json:"overall_confidence"`
	IsComplete        bool                   `json:"is_complete"`
}

// latestPerType applies the supersession rule: for each section type the row
// with the newest generated_at wins; equal timestamps break by higher stored
// confidence, then by the monotonic row id.
func latestPerType(rows []Section) map[string]Section {
	latest := make(map[string]Section, len(rows))
	for _, row := range rows {
		cur, ok := latest[row.SectionType]
		if !ok || supersedes(row, cur) {
			latest[row.SectionType] = row
		}
	}
	return latest
}

func supersedes(a, b Section) bool {
	if !a.GeneratedAt.Equal(b.GeneratedAt) {
		return a.GeneratedAt.After(b.GeneratedAt)
	}
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return a.ID > b.ID
}
