package registration

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/internal/metrics"
	"github.com/chainsafe/vrsc-identity/pkg/identity"
	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
	"github.com/chainsafe/vrsc-identity/pkg/vrscrpc"
)

// Registrar runs registrations against a node. A Registrar holds no per-run
// state and may be used for concurrent runs.
type Registrar struct {
	node Node
	settings
}

// New creates a Registrar for node.
func New(node Node, opts ...Option) *Registrar {
	return &Registrar{
		node:     node,
		settings: applyOptions(opts),
	}
}

// RegisterIdentity commits to the request's name, waits for the commitment to
// confirm and registers the identity. On failure after the commitment was
// made, CommitmentOf(err) returns the commitment for Resume.
//
// The wait only ends on confirmation, on a definitive node error, when the
// node still does not know the commitment after the retry cap, or when ctx
// ends. The last two return a *TimeoutError.
func (r *Registrar) RegisterIdentity(ctx context.Context, req *identity.ValidatedRequest) (*IdentityRecord, error) {
	if err := r.checkNetwork(req); err != nil {
		return nil, err
	}

	start := time.Now()
	metrics.InFlightRegistrations.Inc()
	defer metrics.InFlightRegistrations.Dec()

	rec, err := r.registerIdentity(ctx, req)
	observe(start, err)
	return rec, err
}

func (r *Registrar) registerIdentity(ctx context.Context, req *identity.ValidatedRequest) (*IdentityRecord, error) {
	r.record(ctx, Progress{Name: req.Name(), State: StateInit})

	commitment, err := r.SubmitCommitment(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := r.WaitForConfirmation(ctx, commitment); err != nil {
		return nil, err
	}
	return r.RegisterConfirmed(ctx, req, commitment)
}

// Resume finishes a run that already holds a name commitment. It waits for
// confirmation, which returns after a single lookup when the commitment is
// already confirmed, and registers the identity.
func (r *Registrar) Resume(
	ctx context.Context,
	req *identity.ValidatedRequest,
	commitment *vrscrpc.NameCommitment,
) (*IdentityRecord, error) {
	if commitment == nil || commitment.TxID.IsZero() {
		return nil, fmt.Errorf("%w: no commitment transaction", ErrCommitmentMismatch)
	}
	if name := commitment.NameReservation.Name; name != req.Name() {
		return nil, fmt.Errorf("%w: commitment reserves %q, request is for %q", ErrCommitmentMismatch, name, req.Name())
	}
	if err := r.checkNetwork(req); err != nil {
		return nil, err
	}

	start := time.Now()
	metrics.InFlightRegistrations.Inc()
	defer metrics.InFlightRegistrations.Dec()

	r.logger.Info("resuming registration",
		zap.String("name", req.Name()),
		zap.Stringer("commitment_txid", commitment.TxID))

	err := r.WaitForConfirmation(ctx, commitment)
	if err != nil {
		observe(start, err)
		return nil, err
	}
	rec, err := r.RegisterConfirmed(ctx, req, commitment)
	observe(start, err)
	return rec, err
}

// SubmitCommitment calls registernamecommitment for the request's name and
// controlling address. Failures are not retried.
func (r *Registrar) SubmitCommitment(ctx context.Context, req *identity.ValidatedRequest) (*vrscrpc.NameCommitment, error) {
	commitment, err := r.node.RegisterNameCommitment(
		ctx,
		req.Name(),
		req.ControllingAddress(),
		req.Referral(),
		req.CurrencyContext(),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, r.fail(ctx, req.Name(), nil, &TimeoutError{Phase: PhaseCommitment, Attempts: 1, Err: ctxErr})
		}
		return nil, r.fail(ctx, req.Name(), nil, &RPCError{Phase: PhaseCommitment, Err: err})
	}

	r.logger.Info("name commitment submitted",
		zap.String("name", req.Name()),
		zap.Stringer("txid", commitment.TxID))
	r.record(ctx, Progress{Name: req.Name(), State: StateCommitmentSubmitted, Commitment: commitment})
	return commitment, nil
}

// WaitForConfirmation polls the commitment transaction until it has at least
// one confirmation.
func (r *Registrar) WaitForConfirmation(ctx context.Context, commitment *vrscrpc.NameCommitment) error {
	name := commitment.NameReservation.Name
	txid := commitment.TxID
	logger := r.logger.With(zap.String("name", name), zap.Stringer("txid", txid))

	r.record(ctx, Progress{Name: name, State: StateAwaitingConfirmation, Commitment: commitment})

	var lookups, notVisible int
	for {
		lookups++
		tx, err := r.lookupTx(ctx, txid)

		switch {
		case err == nil && tx.Confirmations > 0:
			metrics.ConfirmationPolls.WithLabelValues("confirmed").Inc()
			logger.Info("name commitment confirmed",
				zap.Int64("confirmations", tx.Confirmations),
				zap.Int("lookups", lookups))
			r.record(ctx, Progress{Name: name, State: StateCommitmentConfirmed, Commitment: commitment})
			return nil

		case err == nil:
			metrics.ConfirmationPolls.WithLabelValues("unconfirmed").Inc()
			logger.Debug("name commitment not confirmed yet")
			if err := sleep(ctx, r.pollInterval); err != nil {
				return r.fail(ctx, name, commitment, &TimeoutError{
					Phase:      PhaseConfirmation,
					Commitment: commitment,
					Attempts:   lookups,
					Err:        err,
				})
			}

		case vrscrpc.IsTransientVisibility(err):
			metrics.ConfirmationPolls.WithLabelValues("not_visible").Inc()
			notVisible++
			if notVisible > r.maxVisibilityRetries {
				logger.Error("waited too long for commitment transaction, abort",
					zap.Int("retries", notVisible), zap.Error(err))
				return r.fail(ctx, name, commitment, &TimeoutError{
					Phase:      PhaseConfirmation,
					Commitment: commitment,
					Attempts:   notVisible,
					Err:        fmt.Errorf("%w: %w", ErrVisibilityTimeout, err),
				})
			}
			logger.Debug("commitment transaction not yet visible, waiting", zap.Int("retries", notVisible))
			if err := sleep(ctx, r.visibilityRetryInterval); err != nil {
				return r.fail(ctx, name, commitment, &TimeoutError{
					Phase:      PhaseConfirmation,
					Commitment: commitment,
					Attempts:   lookups,
					Err:        err,
				})
			}

		case ctx.Err() != nil:
			return r.fail(ctx, name, commitment, &TimeoutError{
				Phase:      PhaseConfirmation,
				Commitment: commitment,
				Attempts:   lookups,
				Err:        ctx.Err(),
			})

		default:
			metrics.ConfirmationPolls.WithLabelValues("error").Inc()
			return r.fail(ctx, name, commitment, &RPCError{
				Phase:      PhaseConfirmation,
				Commitment: commitment,
				Err:        err,
			})
		}
	}
}

// RegisterConfirmed submits registeridentity for a confirmed commitment.
func (r *Registrar) RegisterConfirmed(
	ctx context.Context,
	req *identity.ValidatedRequest,
	commitment *vrscrpc.NameCommitment,
) (*IdentityRecord, error) {
	name := commitment.NameReservation.Name
	r.record(ctx, Progress{Name: name, State: StateRegistrationSubmitted, Commitment: commitment})

	txid, err := r.node.RegisterIdentity(ctx, vrscrpc.IdentityRegistration{
		Commitment:        *commitment,
		PrimaryAddresses:  req.PrimaryAddresses(),
		MinimumSignatures: req.ExplicitMinimumSignatures(),
		PrivateAddress:    req.PrivateAddress(),
		Parent:            req.CurrencyContext(),
		ContentMap:        req.ContentMap(),
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, r.fail(ctx, name, commitment, &TimeoutError{
				Phase:      PhaseRegistration,
				Commitment: commitment,
				Attempts:   1,
				Err:        ctxErr,
			})
		}
		return nil, r.fail(ctx, name, commitment, &RPCError{
			Phase:      PhaseRegistration,
			Commitment: commitment,
			Err:        err,
		})
	}

	r.logger.Info("identity registered",
		zap.String("name", name),
		zap.Stringer("txid", txid))
	r.record(ctx, Progress{Name: name, State: StateDone, Commitment: commitment, RegistrationTxID: &txid})

	return &IdentityRecord{NameCommitment: *commitment, RegistrationTxID: txid}, nil
}

// checkNetwork rejects a request for another chain than the node serves.
func (r *Registrar) checkNetwork(req *identity.ValidatedRequest) error {
	if r.network == nil || req.Network() == *r.network {
		return nil
	}
	r.logger.Warn("request network does not match node",
		zap.String("name", req.Name()),
		zap.Stringer("request_network", req.Network()),
		zap.Stringer("node_network", *r.network))
	return fmt.Errorf("%w: request targets %s, node serves %s", ErrNetworkMismatch, req.Network(), *r.network)
}

func (r *Registrar) lookupTx(ctx context.Context, txid vrsc.TxID) (*vrscrpc.TransactionInfo, error) {
	if r.lookup == LookupRaw {
		return r.node.GetRawTransactionVerbose(ctx, txid)
	}
	return r.node.GetTransaction(ctx, txid, false)
}

func (r *Registrar) fail(ctx context.Context, name string, commitment *vrscrpc.NameCommitment, err error) error {
	r.logger.Warn("registration failed", zap.String("name", name), zap.Error(err))
	r.record(ctx, Progress{Name: name, State: StateFailed, Commitment: commitment, Error: err.Error()})
	return err
}

// record writes p to the journal. Journal failures never stop a run.
func (r *Registrar) record(ctx context.Context, p Progress) {
	p.UpdatedAt = time.Now().UTC()
	if err := r.journal.Record(context.WithoutCancel(ctx), p); err != nil {
		metrics.JournalErrors.Inc()
		r.logger.Warn("failed to record registration progress",
			zap.String("name", p.Name),
			zap.Stringer("state", p.State),
			zap.Error(err))
	}
}

func observe(start time.Time, err error) {
	o := outcome(err)
	metrics.RegistrationsTotal.WithLabelValues(o).Inc()
	metrics.RegistrationDuration.WithLabelValues(o).Observe(time.Since(start).Seconds())
}

func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
