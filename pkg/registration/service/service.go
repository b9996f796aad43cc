// Package service runs identity registrations in the background and exposes
// their progress.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/vrsc-identity/pkg/app/errors"
	"github.com/chainsafe/vrsc-identity/pkg/identity"
	"github.com/chainsafe/vrsc-identity/pkg/registration"
	"github.com/chainsafe/vrsc-identity/pkg/registration/store"
	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
	"github.com/chainsafe/vrsc-identity/pkg/vrscrpc"
)

var (
	ErrClosed         = errors.New("registration service is shutting down")
	ErrAlreadyRunning = errors.New("a registration for this name is already running")
)

// Store is the narrow persistence interface of the service.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	Record(ctx context.Context, p registration.Progress) error
	Get(ctx context.Context, id string) (*registration.Progress, error)
	ListByState(ctx context.Context, state registration.State) ([]*registration.Progress, error)
}

// resumeStates are the states in which a run holds a commitment but has not
// called registeridentity yet.
var resumeStates = []registration.State{
	registration.StateCommitmentSubmitted,
	registration.StateAwaitingConfirmation,
	registration.StateCommitmentConfirmed,
}

// Service accepts registration requests and reports their progress
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Submit(ctx context.Context, req identity.Request) (*Submission, error)
	Status(ctx context.Context, id string) (*registration.Progress, error)
}

// Submission identifies an accepted registration run
type Submission struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	State registration.State `json:"state"`
}

// BackgroundService runs each accepted request in its own goroutine bound to
// the service lifetime.
type BackgroundService struct {
	store         Store
	node          registration.Node
	network       vrsc.Network
	registrarOpts []registration.Option
	runTimeout    time.Duration
	logger        *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	closed   bool
	inFlight map[string]string // name -> run id
}

// NewService creates the service for a node serving network. runTimeout
// bounds each run; zero leaves runs bounded only by Close.
func NewService(
	st Store,
	node registration.Node,
	network vrsc.Network,
	logger *zap.Logger,
	runTimeout time.Duration,
	registrarOpts ...registration.Option,
) *BackgroundService {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BackgroundService{
		store:         st,
		node:          node,
		network:       network,
		registrarOpts: registrarOpts,
		runTimeout:    runTimeout,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		inFlight:      make(map[string]string),
	}
}

// Submit validates req and starts its registration. It returns once the run
// is recorded; the outcome is read with Status.
func (s *BackgroundService) Submit(ctx context.Context, req identity.Request) (*Submission, error) {
	validated, err := identity.Validate(req, s.logger)
	if err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}
	if validated.Network() != s.network {
		err := fmt.Errorf("%w: request targets %s, node serves %s",
			registration.ErrNetworkMismatch, validated.Network(), s.network)
		return nil, apperrors.BadRequestError(err, err.Error())
	}

	id := uuid.NewString()
	name := validated.Name()

	if err := s.reserve(name, id); err != nil {
		return nil, err
	}

	raw := validated.Request()
	if err := s.store.Record(ctx, registration.Progress{
		ID:        id,
		Name:      name,
		State:     registration.StateInit,
		Request:   &raw,
		UpdatedAt: time.Now().UTC(),
	}); err != nil {
		s.release(name)
		s.wg.Done()
		return nil, fmt.Errorf("failed to record registration: %w", err)
	}

	go s.run(id, validated, nil)

	return &Submission{ID: id, Name: name, State: registration.StateInit}, nil
}

// Status returns the latest recorded progress of run id
func (s *BackgroundService) Status(ctx context.Context, id string) (*registration.Progress, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "registration not found")
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return p, nil
}

// ResumePending restarts the runs a previous process left holding a name
// commitment and returns how many were restarted. Runs that reached
// registration_submitted are only logged, since their registration may
// already be on chain.
func (s *BackgroundService) ResumePending(ctx context.Context) (int, error) {
	var resumed int
	for _, state := range resumeStates {
		runs, err := s.store.ListByState(ctx, state)
		if err != nil {
			return resumed, fmt.Errorf("failed to list %s registrations: %w", state, err)
		}
		for _, p := range runs {
			if s.resume(p) {
				resumed++
			}
		}
	}

	submitted, err := s.store.ListByState(ctx, registration.StateRegistrationSubmitted)
	if err != nil {
		return resumed, fmt.Errorf("failed to list %s registrations: %w", registration.StateRegistrationSubmitted, err)
	}
	for _, p := range submitted {
		fields := []zap.Field{zap.String("run_id", p.ID), zap.String("name", p.Name)}
		if p.Commitment != nil {
			fields = append(fields, zap.Stringer("commitment_txid", p.Commitment.TxID))
		}
		s.logger.Warn("registration was interrupted after registeridentity; check the chain before resuming it by hand", fields...)
	}

	return resumed, nil
}

func (s *BackgroundService) resume(p *registration.Progress) bool {
	logger := s.logger.With(zap.String("run_id", p.ID), zap.String("name", p.Name))

	if err := p.Resumable(); err != nil {
		logger.Warn("skipping interrupted registration", zap.Error(err))
		return false
	}
	if p.Request == nil {
		logger.Warn("skipping interrupted registration without a stored request")
		return false
	}
	validated, err := identity.Validate(*p.Request, s.logger)
	if err != nil {
		logger.Warn("skipping interrupted registration with an invalid request", zap.Error(err))
		return false
	}
	if validated.Network() != s.network {
		logger.Warn("skipping interrupted registration for another network",
			zap.Stringer("request_network", validated.Network()))
		return false
	}
	if err := s.reserve(validated.Name(), p.ID); err != nil {
		logger.Warn("skipping interrupted registration", zap.Error(err))
		return false
	}

	logger.Info("resuming interrupted registration", zap.Stringer("state", p.State))
	go s.run(p.ID, validated, p.Commitment)
	return true
}

// Close stops accepting requests, cancels running registrations and waits for
// them to record their final state.
func (s *BackgroundService) Close() {
	_ = s.Shutdown(context.Background())
}

// Shutdown is Close bounded by ctx. It returns ctx's error when runs are
// still recording their final state as ctx ends.
func (s *BackgroundService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("registrations still running: %w", ctx.Err())
	}
}

// reserve claims name for run id and counts the run in wg. The caller either
// starts run or undoes both with release and wg.Done.
func (s *BackgroundService) reserve(name, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return apperrors.UnavailableError(ErrClosed, "service is shutting down")
	}
	if running, ok := s.inFlight[name]; ok {
		return apperrors.ConflictError(
			fmt.Errorf("%w: %s", ErrAlreadyRunning, running),
			"a registration for this name is already running",
		)
	}
	s.inFlight[name] = id
	// counted under mu so Close cannot start waiting before the run is added
	s.wg.Add(1)
	return nil
}

func (s *BackgroundService) release(name string) {
	s.mu.Lock()
	delete(s.inFlight, name)
	s.mu.Unlock()
}

// run registers req, or finishes it from commitment when one is held.
func (s *BackgroundService) run(id string, req *identity.ValidatedRequest, commitment *vrscrpc.NameCommitment) {
	defer s.wg.Done()
	defer s.release(req.Name())

	ctx := s.ctx
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	logger := s.logger.With(zap.String("run_id", id), zap.String("name", req.Name()))
	opts := append([]registration.Option{}, s.registrarOpts...)
	opts = append(opts,
		registration.WithLogger(logger),
		registration.WithJournal(registration.ForRun(s.store, id, req)),
	)
	r := registration.New(s.node, opts...)

	var (
		rec *registration.IdentityRecord
		err error
	)
	if commitment != nil {
		rec, err = r.Resume(ctx, req, commitment)
	} else {
		rec, err = r.RegisterIdentity(ctx, req)
	}
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if c, ok := registration.CommitmentOf(err); ok {
			fields = append(fields, zap.Stringer("commitment_txid", c.TxID))
		}
		logger.Error("background registration failed", fields...)
		return
	}

	logger.Info("background registration completed", zap.Stringer("registration_txid", rec.RegistrationTxID))
}
