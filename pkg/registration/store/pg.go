package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/chainsafe/vrsc-identity/pkg/registration"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the registration store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) Record(ctx context.Context, p registration.Progress) error {
	if p.ID == "" {
		return ErrMissingID
	}
	dao, err := toRegistrationDao(&p)
	if err != nil {
		return err
	}

	_, err = s.db.NewInsert().
		Model(dao).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("state = EXCLUDED.state").
		Set("request = COALESCE(EXCLUDED.request, r.request)").
		Set("commitment_txid = COALESCE(EXCLUDED.commitment_txid, r.commitment_txid)").
		Set("commitment = COALESCE(EXCLUDED.commitment, r.commitment)").
		Set("registration_txid = COALESCE(EXCLUDED.registration_txid, r.registration_txid)").
		Set("error = EXCLUDED.error").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record registration %s: %w", p.ID, err)
	}
	return nil
}

func (s *pgStore) Get(ctx context.Context, id string) (*registration.Progress, error) {
	dao := new(RegistrationDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return toProgress(dao)
}

func (s *pgStore) GetByName(ctx context.Context, name string) (*registration.Progress, error) {
	dao := new(RegistrationDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("name = ?", name).
		Order("updated_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get registration by name: %w", err)
	}
	return toProgress(dao)
}

func (s *pgStore) ListByState(ctx context.Context, state registration.State) ([]*registration.Progress, error) {
	var daos []RegistrationDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("state = ?", state.String()).
		Order("updated_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	out := make([]*registration.Progress, 0, len(daos))
	for i := range daos {
		p, err := toProgress(&daos[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
