// Package store persists registration progress.
package store

import (
	"context"
	"errors"

	"github.com/chainsafe/vrsc-identity/pkg/registration"
)

var (
	ErrNotFound  = errors.New("registration not found")
	ErrMissingID = errors.New("registration progress has no id")
)

//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter

// Store keeps the latest progress of every registration run. Record upserts on
// the run id, so a Store can back a registration.Journal.
type Store interface {
	Record(ctx context.Context, p registration.Progress) error
	Get(ctx context.Context, id string) (*registration.Progress, error)
	// GetByName returns the most recently updated run for name.
	GetByName(ctx context.Context, name string) (*registration.Progress, error)
	ListByState(ctx context.Context, state registration.State) ([]*registration.Progress, error)
}
