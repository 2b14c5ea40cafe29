// README: Report aggregation service composing latest sections into one report.
package report

import (
	"context"
	"errors"

	"voyage/internal/trip"
	"voyage/internal/types"
)

var (
	ErrNotFound        = errors.New("trip not found")
	ErrSectionNotFound = errors.New("section not found")
)

// SectionSource is the slice of the section store the aggregator reads.
type SectionSource interface {
	ListByTrip(ctx context.Context, tripID types.ID) ([]Section, error)
	ListByType(ctx context.Context, tripID types.ID, sectionType string) ([]Section, error)
}

// TripSource provides the minimal trip header.
type TripSource interface {
	Header(ctx context.Context, tripID types.ID) (*trip.Header, error)
}

type Service struct {
	sections SectionSource
	trips    TripSource
}

func NewService(sections SectionSource, trips TripSource) *Service {
	return &Service{sections: sections, trips: trips}
}

// AggregateReport composes the latest persisted section per type with the
// trip header. The report is recomputed on every call, never cached or
// stored, so repeated calls without intervening writes are identical.
func (s *Service) AggregateReport(ctx context.Context, tripID types.ID) (*AggregatedReport, error) {
	header, err := s.trips.Header(ctx, tripID)
	if errors.Is(err, trip.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.sections.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	latest := latestPerType(rows)

	rep := &AggregatedReport{
		TripID:   tripID,
		TripInfo: header,
		Sections: make(map[string]SectionView, len(latest)),
	}

	var confidenceSum float64
	for _, sectionType := range ExpectedSections {
		sec, ok := latest[sectionType]
		if !ok {
			rep.MissingSections = append(rep.MissingSections, sectionType)
			continue
		}
		view := sec.View()
		rep.Sections[sectionType] = view
		rep.AvailableSections = append(rep.AvailableSections, sectionType)
		confidenceSum += view.Confidence
	}

	if len(rep.AvailableSections) > 0 {
		rep.OverallConfidence = confidenceSum / float64(len(rep.AvailableSections))
	}
	rep.IsComplete = len(rep.MissingSections) == 0
	return rep, nil
}

// GetSection returns the latest persisted section of one type.
func (s *Service) GetSection(ctx context.Context, tripID types.ID, sectionType string) (*SectionView, error) {
	rows, err := s.sections.ListByType(ctx, tripID, sectionType)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrSectionNotFound
	}
	latest := latestPerType(rows)
	sec := latest[sectionType]
	view := sec.View()
	return &view, nil
}

// GetAllSections returns the latest section per type, keyed by type.
func (s *Service) GetAllSections(ctx context.Context, tripID types.ID) (map[string]SectionView, error) {
	rows, err := s.sections.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	latest := latestPerType(rows)
	out := make(map[string]SectionView, len(latest))
	for sectionType, sec := range latest {
		out[sectionType] = sec.View()
	}
	return out, nil
}
