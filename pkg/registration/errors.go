package registration

import (
	"errors"
	"fmt"

	"github.com/chainsafe/vrsc-identity/pkg/vrscrpc"
)

// Phase names the protocol step an error happened in.
type Phase string

const (
	PhaseCommitment   Phase = "commitment"
	PhaseConfirmation Phase = "confirmation"
	PhaseRegistration Phase = "registration"
)

var (
	// ErrVisibilityTimeout means the node never learned about the commitment
	// transaction within the retry cap.
	ErrVisibilityTimeout = errors.New("commitment transaction never became visible to the node")
	// ErrCommitmentMismatch means a commitment was resumed for a different name.
	ErrCommitmentMismatch = errors.New("commitment does not match request")
	// ErrNetworkMismatch means the request names another chain than the
	// node the Registrar talks to.
	ErrNetworkMismatch = errors.New("request network does not match node network")
	// ErrNotResumable means a journaled run cannot be finished with Resume.
	ErrNotResumable = errors.New("registration run cannot be resumed")
)

// RPCError is a definitive failure reported by the node. Commitment is set
// when the failure happened after the name was committed.
type RPCError struct {
	Phase      Phase
	Commitment *vrscrpc.NameCommitment
	Err        error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

// TimeoutError means the context ended during a node call or a wait, or the
// commitment never became visible within the retry cap.
type TimeoutError struct {
	Phase      Phase
	Commitment *vrscrpc.NameCommitment
	Attempts   int
	Err        error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %d attempts: %v", e.Phase, e.Attempts, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// CommitmentOf returns the name commitment carried by a registration error, so
// the run can be resumed with Resume.
func CommitmentOf(err error) (*vrscrpc.NameCommitment, bool) {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) && rpcErr.Commitment != nil {
		return rpcErr.Commitment, true
	}
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) && timeoutErr.Commitment != nil {
		return timeoutErr.Commitment, true
	}
	return nil, false
}

func outcome(err error) string {
	var timeoutErr *TimeoutError
	switch {
	case err == nil:
		return "done"
	case errors.As(err, &timeoutErr):
		return "timeout"
	default:
		return "failed"
	}
}
