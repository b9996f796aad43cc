// Package registration drives the two phase identity registration against a
// node: commit to a name, wait for the commitment to confirm, then register
// the identity.
package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/chainsafe/vrsc-identity/pkg/identity"
	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
	"github.com/chainsafe/vrsc-identity/pkg/vrscrpc"
)

//go:generate mockery --name Node --output mocks --outpkg mocks --filename mock_node.go --with-expecter

// Node is the subset of the node RPC the registration flow uses.
// *vrscrpc.Client satisfies it and is safe to share between runs.
type Node interface {
	RegisterNameCommitment(
		ctx context.Context,
		name string,
		controlAddr vrsc.Address,
		referral, parent *string,
	) (*vrscrpc.NameCommitment, error)
	GetTransaction(ctx context.Context, txid vrsc.TxID, includeWatchOnly bool) (*vrscrpc.TransactionInfo, error)
	GetRawTransactionVerbose(ctx context.Context, txid vrsc.TxID) (*vrscrpc.TransactionInfo, error)
	RegisterIdentity(ctx context.Context, reg vrscrpc.IdentityRegistration) (vrsc.TxID, error)
}

// IdentityRecord is the result of a completed registration.
type IdentityRecord struct {
	NameCommitment   vrscrpc.NameCommitment `json:"name_commitment"`
	RegistrationTxID vrsc.TxID              `json:"registration_txid"`
}

// State is a step of the registration protocol.
type State int

const (
	StateInit State = iota
	StateCommitmentSubmitted
	StateAwaitingConfirmation
	StateCommitmentConfirmed
	StateRegistrationSubmitted
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateInit:                  "init",
	StateCommitmentSubmitted:   "commitment_submitted",
	StateAwaitingConfirmation:  "awaiting_confirmation",
	StateCommitmentConfirmed:   "commitment_confirmed",
	StateRegistrationSubmitted: "registration_submitted",
	StateDone:                  "done",
	StateFailed:                "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// ParseState is the inverse of State.String.
func ParseState(s string) (State, error) {
	for state, name := range stateNames {
		if name == s {
			return state, nil
		}
	}
	return StateInit, fmt.Errorf("unknown registration state %q", s)
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Progress is a snapshot of a run, written to the Journal on every
// transition. ID and Request are left empty by the Registrar; journals that
// track several runs fill them in so a run can be resumed from the journal.
type Progress struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	State            State                   `json:"state"`
	Request          *identity.Request       `json:"request,omitempty"`
	Commitment       *vrscrpc.NameCommitment `json:"commitment,omitempty"`
	RegistrationTxID *vrsc.TxID              `json:"registration_txid,omitempty"`
	Error            string                  `json:"error,omitempty"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// Resumable reports whether Resume may finish the run. A run that reached
// registration_submitted may already have broadcast its registration, so it
// is only finished by an operator who checked the chain.
func (p *Progress) Resumable() error {
	switch {
	case p.State == StateDone:
		return fmt.Errorf("%w: run %s is done", ErrNotResumable, p.ID)
	case p.State == StateRegistrationSubmitted:
		return fmt.Errorf("%w: run %s may already have submitted registeridentity", ErrNotResumable, p.ID)
	case p.Commitment == nil || p.Commitment.TxID.IsZero():
		return fmt.Errorf("%w: run %s holds no name commitment", ErrNotResumable, p.ID)
	}
	return nil
}

// Journal persists progress so a confirmed commitment is not lost when the
// registration step fails.
type Journal interface {
	Record(ctx context.Context, p Progress) error
}

// JournalFunc adapts a function to Journal.
type JournalFunc func(ctx context.Context, p Progress) error

func (f JournalFunc) Record(ctx context.Context, p Progress) error {
	return f(ctx, p)
}

// ForRun tags every Progress written to j with the run id and its request, so
// a journal shared by several runs can resume each of them.
func ForRun(j Journal, id string, req *identity.ValidatedRequest) Journal {
	raw := req.Request()
	return JournalFunc(func(ctx context.Context, p Progress) error {
		p.ID = id
		p.Request = &raw
		return j.Record(ctx, p)
	})
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, Progress) error { return nil }

// Lookup selects how the commitment transaction is polled.
type Lookup int

const (
	// LookupWallet uses gettransaction, which only knows wallet transactions.
	LookupWallet Lookup = iota
	// LookupRaw uses getrawtransaction, for nodes that do not track the
	// commitment in their wallet.
	LookupRaw
)

func (l Lookup) String() string {
	if l == LookupRaw {
		return "raw"
	}
	return "wallet"
}

// ParseLookup maps "wallet" and "raw" to a Lookup.
func ParseLookup(s string) (Lookup, error) {
	switch s {
	case "", "wallet":
		return LookupWallet, nil
	case "raw":
		return LookupRaw, nil
	default:
		return LookupWallet, fmt.Errorf("unknown lookup %q", s)
	}
}
