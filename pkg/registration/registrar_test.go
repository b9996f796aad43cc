package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/pkg/identity"
	"github.com/chainsafe/vrsc-identity/pkg/registration/mocks"
	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
	"github.com/chainsafe/vrsc-identity/pkg/vrscrpc"
)

const controlAddress = "RP1sexQNvjGPohJkK9JnuPDH7V7NboycGj"

var (
	commitTxID = mustTxID(strings.Repeat("ab", 32))
	regTxID    = mustTxID(strings.Repeat("cd", 32))
)

func mustTxID(s string) vrsc.TxID {
	id, err := vrsc.ParseTxID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func testRequest(t *testing.T) *identity.ValidatedRequest {
	t.Helper()
	req, err := identity.NewBuilder().
		SetName("aaaaah").
		AddPrimaryAddress(vrsc.MustParseAddress(controlAddress)).
		SetMinimumSignatures(1).
		SetContentMap(map[string]string{"deadbeef": "deadbeef"}).
		Validate()
	require.NoError(t, err)
	return req
}

func testCommitment(t *testing.T, name string) *vrscrpc.NameCommitment {
	t.Helper()
	res, err := vrscrpc.NewNameReservation(json.RawMessage(
		`{"name":"` + name + `","salt":"6c7bd2c4","referral":"","parent":"","nameid":"iBDkCmYkMRRV7zm4fuK3ky8UWa2p8AG5vR"}`))
	require.NoError(t, err)
	return &vrscrpc.NameCommitment{TxID: commitTxID, NameReservation: res}
}

func notVisibleErr() error {
	return &vrscrpc.NodeError{
		Method:  "gettransaction",
		Code:    vrscrpc.CodeInvalidAddressOrKey,
		Message: "Invalid or non-wallet transaction id",
	}
}

// fakeNode scripts lookups with a function; used where call counts are too
// large for expectations.
type fakeNode struct {
	commitment *vrscrpc.NameCommitment
	lookup     func(n int) (*vrscrpc.TransactionInfo, error)

	lookups   int
	registers int
}

func (f *fakeNode) RegisterNameCommitment(context.Context, string, vrsc.Address, *string, *string) (*vrscrpc.NameCommitment, error) {
	return f.commitment, nil
}

func (f *fakeNode) GetTransaction(context.Context, vrsc.TxID, bool) (*vrscrpc.TransactionInfo, error) {
	f.lookups++
	return f.lookup(f.lookups)
}

func (f *fakeNode) GetRawTransactionVerbose(ctx context.Context, txid vrsc.TxID) (*vrscrpc.TransactionInfo, error) {
	return f.GetTransaction(ctx, txid, false)
}

func (f *fakeNode) RegisterIdentity(context.Context, vrscrpc.IdentityRegistration) (vrsc.TxID, error) {
	f.registers++
	return regTxID, nil
}

type recordingJournal struct {
	progress []Progress
	err      error
}

func (j *recordingJournal) Record(_ context.Context, p Progress) error {
	j.progress = append(j.progress, p)
	return j.err
}

func (j *recordingJournal) states() []State {
	out := make([]State, len(j.progress))
	for i, p := range j.progress {
		out[i] = p.State
	}
	return out
}

func fastOptions(opts ...Option) []Option {
	return append([]Option{
		WithLogger(zap.NewNop()),
		WithPollInterval(0),
		WithVisibilityRetryInterval(0),
	}, opts...)
}

func TestRegisterIdentity_EndToEnd(t *testing.T) {
	ctx := context.Background()
	req := testRequest(t)
	commitment := testCommitment(t, "aaaaah")
	journal := &recordingJournal{}

	node := mocks.NewNode(t)
	node.EXPECT().
		RegisterNameCommitment(mock.Anything, "aaaaah", req.ControllingAddress(), (*string)(nil), (*string)(nil)).
		Return(commitment, nil).Once()
	node.EXPECT().
		GetTransaction(mock.Anything, commitTxID, false).
		Return(&vrscrpc.TransactionInfo{TxID: commitTxID, Confirmations: 1}, nil).Once()
	node.EXPECT().
		RegisterIdentity(mock.Anything, mock.MatchedBy(func(reg vrscrpc.IdentityRegistration) bool {
			return reg.Commitment.TxID == commitTxID &&
				reg.Commitment.NameReservation.Name == "aaaaah" &&
				len(reg.PrimaryAddresses) == 1 &&
				reg.MinimumSignatures != nil && *reg.MinimumSignatures == 1 &&
				reg.ContentMap["deadbeef"] == "deadbeef" &&
				reg.Parent == nil
		})).
		Return(regTxID, nil).Once()

	r := New(node, fastOptions(WithJournal(journal))...)
	rec, err := r.RegisterIdentity(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "aaaaah", rec.NameCommitment.NameReservation.Name)
	assert.Equal(t, commitTxID, rec.NameCommitment.TxID)
	assert.Equal(t, regTxID, rec.RegistrationTxID)

	assert.Equal(t, []State{
		StateInit,
		StateCommitmentSubmitted,
		StateAwaitingConfirmation,
		StateCommitmentConfirmed,
		StateRegistrationSubmitted,
		StateDone,
	}, journal.states())
	last := journal.progress[len(journal.progress)-1]
	require.NotNil(t, last.RegistrationTxID)
	assert.Equal(t, regTxID, *last.RegistrationTxID)
}

func TestRegisterIdentity_CommitmentFails(t *testing.T) {
	ctx := context.Background()
	nodeErr := &vrscrpc.NodeError{Method: "registernamecommitment", Code: -8, Message: "Identity already exists"}
	journal := &recordingJournal{}

	node := mocks.NewNode(t)
	node.EXPECT().
		RegisterNameCommitment(mock.Anything, "aaaaah", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nodeErr).Once()

	rec, err := New(node, fastOptions(WithJournal(journal))...).RegisterIdentity(ctx, testRequest(t))
	require.Error(t, err)
	assert.Nil(t, rec)

	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, PhaseCommitment, rpcErr.Phase)
	assert.True(t, errors.Is(err, nodeErr))

	_, ok := CommitmentOf(err)
	assert.False(t, ok)
	assert.Equal(t, []State{StateInit, StateFailed}, journal.states())
}

func TestRegisterIdentity_NeverConfirmedUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	node := &fakeNode{
		commitment: testCommitment(t, "aaaaah"),
		lookup: func(n int) (*vrscrpc.TransactionInfo, error) {
			if n == 25 {
				cancel()
			}
			return &vrscrpc.TransactionInfo{TxID: commitTxID}, nil
		},
	}

	rec, err := New(node, fastOptions()...).RegisterIdentity(ctx, testRequest(t))
	require.Error(t, err)
	assert.Nil(t, rec)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, PhaseConfirmation, timeoutErr.Phase)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 25, node.lookups)
	assert.Zero(t, node.registers)

	commitment, ok := CommitmentOf(err)
	require.True(t, ok)
	assert.Equal(t, commitTxID, commitment.TxID)
}

func TestRegisterIdentity_DeadlineDuringPoll(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	node := &fakeNode{
		commitment: testCommitment(t, "aaaaah"),
		lookup: func(int) (*vrscrpc.TransactionInfo, error) {
			return &vrscrpc.TransactionInfo{TxID: commitTxID}, nil
		},
	}

	start := time.Now()
	_, err := New(node,
		WithPollInterval(10*time.Millisecond),
		WithVisibilityRetryInterval(time.Millisecond),
	).RegisterIdentity(ctx, testRequest(t))

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Zero(t, node.registers)
}

func TestRegisterIdentity_DeadlineDuringCommitment(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	journal := &recordingJournal{}

	node := mocks.NewNode(t)
	node.EXPECT().
		RegisterNameCommitment(mock.Anything, "aaaaah", mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ string, _ vrsc.Address, _, _ *string) (*vrscrpc.NameCommitment, error) {
			<-ctx.Done()
			return nil, fmt.Errorf("registernamecommitment: %w", ctx.Err())
		}).Once()

	rec, err := New(node, fastOptions(WithJournal(journal))...).RegisterIdentity(ctx, testRequest(t))
	require.Error(t, err)
	assert.Nil(t, rec)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, PhaseCommitment, timeoutErr.Phase)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	var rpcErr *RPCError
	assert.False(t, errors.As(err, &rpcErr))
	_, ok := CommitmentOf(err)
	assert.False(t, ok)
	assert.Equal(t, []State{StateInit, StateFailed}, journal.states())
}

func TestRegisterConfirmed_CancelledDuringRegistration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	journal := &recordingJournal{}

	node := mocks.NewNode(t)
	node.EXPECT().
		RegisterIdentity(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ vrscrpc.IdentityRegistration) (vrsc.TxID, error) {
			cancel()
			<-ctx.Done()
			return vrsc.TxID{}, fmt.Errorf("registeridentity: %w", ctx.Err())
		}).Once()

	rec, err := New(node, fastOptions(WithJournal(journal))...).
		RegisterConfirmed(ctx, testRequest(t), testCommitment(t, "aaaaah"))
	require.Error(t, err)
	assert.Nil(t, rec)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, PhaseRegistration, timeoutErr.Phase)
	assert.True(t, errors.Is(err, context.Canceled))

	var rpcErr *RPCError
	assert.False(t, errors.As(err, &rpcErr))
	commitment, ok := CommitmentOf(err)
	require.True(t, ok)
	assert.Equal(t, commitTxID, commitment.TxID)

	last := journal.progress[len(journal.progress)-1]
	assert.Equal(t, StateFailed, last.State)
	require.NotNil(t, last.Commitment)
	assert.Equal(t, commitTxID, last.Commitment.TxID)
}

func TestRegisterIdentity_NetworkMismatch(t *testing.T) {
	journal := &recordingJournal{}
	// no expectations: any node call fails the test
	node := mocks.NewNode(t)
	r := New(node, fastOptions(WithNetwork(vrsc.Testnet), WithJournal(journal))...)

	rec, err := r.RegisterIdentity(context.Background(), testRequest(t))
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.True(t, errors.Is(err, ErrNetworkMismatch))
	assert.Empty(t, journal.progress)

	_, err = r.Resume(context.Background(), testRequest(t), testCommitment(t, "aaaaah"))
	assert.True(t, errors.Is(err, ErrNetworkMismatch))
}

func TestRegisterIdentity_NetworkMatches(t *testing.T) {
	node := &fakeNode{
		commitment: testCommitment(t, "aaaaah"),
		lookup: func(int) (*vrscrpc.TransactionInfo, error) {
			return &vrscrpc.TransactionInfo{TxID: commitTxID, Confirmations: 1}, nil
		},
	}

	rec, err := New(node, fastOptions(WithNetwork(vrsc.Mainnet))...).RegisterIdentity(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Equal(t, regTxID, rec.RegistrationTxID)
}

func TestRegisterIdentity_TransientThenConfirmed(t *testing.T) {
	const transient = 137

	node := &fakeNode{
		commitment: testCommitment(t, "aaaaah"),
		lookup: func(n int) (*vrscrpc.TransactionInfo, error) {
			if n <= transient {
				return nil, notVisibleErr()
			}
			return &vrscrpc.TransactionInfo{TxID: commitTxID, Confirmations: 1}, nil
		},
	}

	rec, err := New(node, fastOptions()...).RegisterIdentity(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Equal(t, regTxID, rec.RegistrationTxID)
	assert.Equal(t, transient+1, node.lookups)
	assert.Equal(t, 1, node.registers)
}

func TestRegisterIdentity_TransientAtCapStillSucceeds(t *testing.T) {
	node := &fakeNode{
		commitment: testCommitment(t, "aaaaah"),
		lookup: func(n int) (*vrscrpc.TransactionInfo, error) {
			if n <= DefaultMaxVisibilityRetries {
				return nil, notVisibleErr()
			}
			return &vrscrpc.TransactionInfo{TxID: commitTxID, Confirmations: 3}, nil
		},
	}

	_, err := New(node, fastOptions()...).RegisterIdentity(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxVisibilityRetries+1, node.lookups)
	assert.Equal(t, 1, node.registers)
}

func TestRegisterIdentity_TransientBeyondCap(t *testing.T) {
	node := &fakeNode{
		commitment: testCommitment(t, "aaaaah"),
		lookup: func(int) (*vrscrpc.TransactionInfo, error) {
			return nil, notVisibleErr()
		},
	}

	rec, err := New(node, fastOptions()...).RegisterIdentity(context.Background(), testRequest(t))
	require.Error(t, err)
	assert.Nil(t, rec)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.True(t, errors.Is(err, ErrVisibilityTimeout))
	assert.Equal(t, DefaultMaxVisibilityRetries+1, timeoutErr.Attempts)
	assert.Equal(t, DefaultMaxVisibilityRetries+1, node.lookups)
	assert.Zero(t, node.registers)
}

func TestRegisterIdentity_ConfirmationLookupFails(t *testing.T) {
	lookupErr := &vrscrpc.NodeError{Method: "gettransaction", Code: -28, Message: "Loading block index..."}

	node := mocks.NewNode(t)
	node.EXPECT().
		RegisterNameCommitment(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testCommitment(t, "aaaaah"), nil).Once()
	node.EXPECT().
		GetTransaction(mock.Anything, commitTxID, false).
		Return(nil, lookupErr).Once()

	_, err := New(node, fastOptions()...).RegisterIdentity(context.Background(), testRequest(t))

	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, PhaseConfirmation, rpcErr.Phase)
	commitment, ok := CommitmentOf(err)
	require.True(t, ok)
	assert.Equal(t, "aaaaah", commitment.NameReservation.Name)
}

func TestRegisterIdentity_RegistrationFailsThenResume(t *testing.T) {
	ctx := context.Background()
	req := testRequest(t)
	regErr := errors.New("connection refused")

	node := mocks.NewNode(t)
	node.EXPECT().
		RegisterNameCommitment(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testCommitment(t, "aaaaah"), nil).Once()
	node.EXPECT().
		GetTransaction(mock.Anything, commitTxID, false).
		Return(&vrscrpc.TransactionInfo{TxID: commitTxID, Confirmations: 1}, nil).Twice()
	node.EXPECT().
		RegisterIdentity(mock.Anything, mock.Anything).
		Return(vrsc.TxID{}, regErr).Once()
	node.EXPECT().
		RegisterIdentity(mock.Anything, mock.Anything).
		Return(regTxID, nil).Once()

	r := New(node, fastOptions()...)
	_, err := r.RegisterIdentity(ctx, req)
	require.Error(t, err)

	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, PhaseRegistration, rpcErr.Phase)
	assert.True(t, errors.Is(err, regErr))

	commitment, ok := CommitmentOf(err)
	require.True(t, ok)

	rec, err := r.Resume(ctx, req, commitment)
	require.NoError(t, err)
	assert.Equal(t, regTxID, rec.RegistrationTxID)
}

func TestResume_RawLookup(t *testing.T) {
	node := mocks.NewNode(t)
	node.EXPECT().
		GetRawTransactionVerbose(mock.Anything, commitTxID).
		Return(&vrscrpc.TransactionInfo{TxID: commitTxID, Confirmations: 10}, nil).Once()
	node.EXPECT().
		RegisterIdentity(mock.Anything, mock.Anything).
		Return(regTxID, nil).Once()

	rec, err := New(node, fastOptions(WithLookup(LookupRaw))...).
		Resume(context.Background(), testRequest(t), testCommitment(t, "aaaaah"))
	require.NoError(t, err)
	assert.Equal(t, regTxID, rec.RegistrationTxID)
}

func TestResume_Mismatch(t *testing.T) {
	node := mocks.NewNode(t)
	r := New(node, fastOptions()...)

	_, err := r.Resume(context.Background(), testRequest(t), testCommitment(t, "someoneelse"))
	assert.True(t, errors.Is(err, ErrCommitmentMismatch))

	_, err = r.Resume(context.Background(), testRequest(t), nil)
	assert.True(t, errors.Is(err, ErrCommitmentMismatch))
}

func TestRegisterIdentity_JournalErrorsIgnored(t *testing.T) {
	journal := &recordingJournal{err: errors.New("db down")}
	node := &fakeNode{
		commitment: testCommitment(t, "aaaaah"),
		lookup: func(int) (*vrscrpc.TransactionInfo, error) {
			return &vrscrpc.TransactionInfo{TxID: commitTxID, Confirmations: 1}, nil
		},
	}

	rec, err := New(node, fastOptions(WithJournal(journal))...).RegisterIdentity(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.NotNil(t, rec)
	assert.Len(t, journal.progress, 6)
}

func TestState_RoundTrip(t *testing.T) {
	for s := StateInit; s <= StateFailed; s++ {
		parsed, err := ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseState("bogus")
	assert.Error(t, err)
	assert.True(t, StateDone.Terminal())
	assert.False(t, StateAwaitingConfirmation.Terminal())
}

func TestProgress_Resumable(t *testing.T) {
	commitment := testCommitment(t, "aaaaah")

	resumable := []Progress{
		{ID: "r", State: StateCommitmentSubmitted, Commitment: commitment},
		{ID: "r", State: StateAwaitingConfirmation, Commitment: commitment},
		{ID: "r", State: StateCommitmentConfirmed, Commitment: commitment},
		{ID: "r", State: StateFailed, Commitment: commitment},
	}
	for _, p := range resumable {
		assert.NoError(t, p.Resumable(), p.State.String())
	}

	blocked := []Progress{
		{ID: "r", State: StateInit},
		{ID: "r", State: StateFailed},
		{ID: "r", State: StateRegistrationSubmitted, Commitment: commitment},
		{ID: "r", State: StateDone, Commitment: commitment},
	}
	for _, p := range blocked {
		assert.ErrorIs(t, p.Resumable(), ErrNotResumable, p.State.String())
	}
}

func TestForRun_TagsProgress(t *testing.T) {
	inner := &recordingJournal{}
	req := testRequest(t)
	node := &fakeNode{
		commitment: testCommitment(t, "aaaaah"),
		lookup: func(int) (*vrscrpc.TransactionInfo, error) {
			return &vrscrpc.TransactionInfo{TxID: commitTxID, Confirmations: 1}, nil
		},
	}

	_, err := New(node, fastOptions(WithJournal(ForRun(inner, "run-7", req)))...).RegisterIdentity(context.Background(), req)
	require.NoError(t, err)

	require.NotEmpty(t, inner.progress)
	for _, p := range inner.progress {
		assert.Equal(t, "run-7", p.ID)
		require.NotNil(t, p.Request)
		assert.Equal(t, "aaaaah", p.Request.Name)
	}
}
