// README: Trip store backed by PostgreSQL (jsonb snapshot plus status).
package trip

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"voyage/internal/types"
)

var ErrNotFound = errors.New("trip not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, id types.ID, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO trips (id, snapshot, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())`,
		string(id), raw, string(StatusDraft),
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (Snapshot, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT snapshot FROM trips WHERE id = $1`, string(id)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// UpdateSnapshot replaces the stored snapshot wholesale. The previous value
// is returned so edit flows can diff old against new without a second read.
func (s *Store) UpdateSnapshot(ctx context.Context, id types.ID, snap Snapshot) (Snapshot, error) {
	prev, err := s.Get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE trips SET snapshot = $1, updated_at = NOW() WHERE id = $2`,
		raw, string(id),
	)
	if err != nil {
		return Snapshot{}, err
	}
	if tag.RowsAffected() == 0 {
		return Snapshot{}, ErrNotFound
	}
	return prev, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, status Status) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE trips SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Header(ctx context.Context, id types.ID) (*Header, error) {
	var raw []byte
	var status string
	err := s.db.QueryRow(ctx, `SELECT snapshot, status FROM trips WHERE id = $1`, string(id)).
		Scan(&raw, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &Header{
		TripID:        id,
		Destinations:  snap.Destinations,
		DepartureDate: snap.Details.DepartureDate,
		ReturnDate:    snap.Details.ReturnDate,
		Status:        Status(status),
	}, nil
}
