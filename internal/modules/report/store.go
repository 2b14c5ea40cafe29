// README: Report section store backed by PostgreSQL.
package report

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"voyage/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Insert appends a new section row. Rows of the same (trip, type) are
// superseded at read time rather than overwritten, so an abandoned run never
// destroys the previous good section.
func (s *Store) Insert(ctx context.Context, sec *Section) error {
	sources, err := json.Marshal(sec.Sources)
	if err != nil {
		return err
	}
	return s.db.QueryRow(ctx, `
		INSERT INTO report_sections (
			trip_id, section_type, title, content, confidence_score, sources, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		string(sec.TripID),
		sec.SectionType,
		sec.Title,
		sec.Content,
		sec.Confidence,
		sources,
		sec.GeneratedAt,
	).Scan(&sec.ID)
}

func (s *Store) ListByTrip(ctx context.Context, tripID types.ID) ([]Section, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, trip_id, section_type, title, content, confidence_score, sources, generated_at
		FROM report_sections
		WHERE trip_id = $1
		ORDER BY generated_at, id`, string(tripID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSections(rows)
}

func (s *Store) ListByType(ctx context.Context, tripID types.ID, sectionType string) ([]Section, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, trip_id, section_type, title, content, confidence_score, sources, generated_at
		FROM report_sections
		WHERE trip_id = $1 AND section_type = $2
		ORDER BY generated_at, id`, string(tripID), sectionType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSections(rows)
}

// PruneSuperseded deletes every row that lost the supersession race, keeping
// only the latest per (trip, type). Used by maintenance, never by read paths.
func (s *Store) PruneSuperseded(ctx context.Context, tripID types.ID) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM report_sections
		WHERE trip_id = $1 AND id NOT IN (
			SELECT DISTINCT ON (section_type) id
			FROM report_sections
			WHERE trip_id = $1
			ORDER BY section_type, generated_at DESC, confidence_score DESC, id DESC
		)`, string(tripID),
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanSections(rows pgx.Rows) ([]Section, error) {
	var out []Section
	for rows.Next() {
		var sec Section
		var tripID string
		var rawSources []byte
		if err := rows.Scan(
			&sec.ID, &tripID, &sec.SectionType, &sec.Title, &sec.Content,
			&sec.Confidence, &rawSources, &sec.GeneratedAt,
		); err != nil {
			return nil, err
		}
		sec.TripID = types.ID(tripID)
		if len(rawSources) > 0 {
			if err := json.Unmarshal(rawSources, &sec.Sources); err != nil {
				return nil, err
			}
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}
