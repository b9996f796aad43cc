package vrscrpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
)

const (
	testAddress = "RP1sexQNvjGPohJkK9JnuPDH7V7NboycGj"
	testUser    = "user"
	testPass    = "pass"
)

var (
	commitTxID = strings.Repeat("ab", 32)
	regTxID    = strings.Repeat("cd", 32)
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeNode answers JSON-RPC calls with handler results. A handler returning a
// non-nil *rpcFault produces a komodo style HTTP 500 error reply.
type fakeNode struct {
	handlers map[string]func(params []json.RawMessage) (any, *rpcFault)
	calls    []rpcRequest
}

type rpcFault struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	status  int
}

func (f *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok || user != testUser || pass != testPass {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.calls = append(f.calls, req)

	h, ok := f.handlers[req.Method]
	if !ok {
		f.writeFault(w, req.ID, &rpcFault{Code: -32601, Message: "Method not found", status: http.StatusNotFound})
		return
	}

	result, fault := h(req.Params)
	if fault != nil {
		f.writeFault(w, req.ID, fault)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"id":      req.ID,
		"result":  result,
		"error":   nil,
	})
}

func (f *fakeNode) writeFault(w http.ResponseWriter, id json.RawMessage, fault *rpcFault) {
	status := fault.status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     id,
		"result": nil,
		"error":  fault,
	})
}

func newTestClient(t *testing.T, node *fakeNode) *Client {
	t.Helper()
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), &Config{URL: srv.URL, User: testUser, Password: testPass})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(context.Background(), &Config{})
	require.Error(t, err)

	_, err = New(context.Background(), nil)
	require.Error(t, err)
}

func TestRegisterNameCommitment(t *testing.T) {
	reservation := `{"version":1,"name":"aaaaah","parent":"iParent","salt":"00ff","referral":"","nameid":"iName"}`
	node := &fakeNode{handlers: map[string]func([]json.RawMessage) (any, *rpcFault){
		methodRegisterNameCommitment: func([]json.RawMessage) (any, *rpcFault) {
			return json.RawMessage(`{"txid":"` + commitTxID + `","namereservation":` + reservation + `}`), nil
		},
	}}
	c := newTestClient(t, node)

	parent := "geckotest"
	commitment, err := c.RegisterNameCommitment(context.Background(), "aaaaah", vrsc.MustParseAddress(testAddress), nil, &parent)
	require.NoError(t, err)

	assert.Equal(t, commitTxID, commitment.TxID.String())
	assert.Equal(t, "aaaaah", commitment.NameReservation.Name)

	raw, err := json.Marshal(commitment.NameReservation)
	require.NoError(t, err)
	assert.JSONEq(t, reservation, string(raw))

	require.Len(t, node.calls, 1)
	params := node.calls[0].Params
	require.Len(t, params, 4)
	assert.JSONEq(t, `"aaaaah"`, string(params[0]))
	assert.JSONEq(t, `"`+testAddress+`"`, string(params[1]))
	assert.JSONEq(t, `""`, string(params[2]))
	assert.JSONEq(t, `"geckotest"`, string(params[3]))
}

func TestRegisterNameCommitment_NoOptionalArgs(t *testing.T) {
	node := &fakeNode{handlers: map[string]func([]json.RawMessage) (any, *rpcFault){
		methodRegisterNameCommitment: func([]json.RawMessage) (any, *rpcFault) {
			return json.RawMessage(`{"txid":"` + commitTxID + `","namereservation":{"name":"x"}}`), nil
		},
	}}
	c := newTestClient(t, node)

	_, err := c.RegisterNameCommitment(context.Background(), "x", vrsc.MustParseAddress(testAddress), nil, nil)
	require.NoError(t, err)
	require.Len(t, node.calls, 1)
	assert.Len(t, node.calls[0].Params, 2)
}

func TestGetTransaction(t *testing.T) {
	node := &fakeNode{handlers: map[string]func([]json.RawMessage) (any, *rpcFault){
		methodGetTransaction: func(params []json.RawMessage) (any, *rpcFault) {
			return map[string]any{"txid": commitTxID, "confirmations": 2, "blockhash": "00ab"}, nil
		},
	}}
	c := newTestClient(t, node)

	info, err := c.GetTransaction(context.Background(), mustTxID(t, commitTxID), false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Confirmations)
	assert.JSONEq(t, `false`, string(node.calls[0].Params[1]))
}

func TestGetTransaction_NonWalletIsTransient(t *testing.T) {
	node := &fakeNode{handlers: map[string]func([]json.RawMessage) (any, *rpcFault){
		methodGetTransaction: func([]json.RawMessage) (any, *rpcFault) {
			return nil, &rpcFault{Code: CodeInvalidAddressOrKey, Message: "Invalid or non-wallet transaction id"}
		},
	}}
	c := newTestClient(t, node)

	_, err := c.GetTransaction(context.Background(), mustTxID(t, commitTxID), false)
	require.Error(t, err)

	var ne *NodeError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, CodeInvalidAddressOrKey, ne.Code)
	assert.Equal(t, http.StatusInternalServerError, ne.HTTPStatus)
	assert.Equal(t, methodGetTransaction, ne.Method)
	assert.True(t, IsTransientVisibility(err))
}

func TestGetRawTransactionVerbose_MempoolHasNoConfirmations(t *testing.T) {
	node := &fakeNode{handlers: map[string]func([]json.RawMessage) (any, *rpcFault){
		methodGetRawTransaction: func(params []json.RawMessage) (any, *rpcFault) {
			return map[string]any{"txid": commitTxID}, nil
		},
	}}
	c := newTestClient(t, node)

	info, err := c.GetRawTransactionVerbose(context.Background(), mustTxID(t, commitTxID))
	require.NoError(t, err)
	assert.Zero(t, info.Confirmations)
	assert.JSONEq(t, `1`, string(node.calls[0].Params[1]))
}

func TestRegisterIdentity(t *testing.T) {
	node := &fakeNode{handlers: map[string]func([]json.RawMessage) (any, *rpcFault){
		methodRegisterIdentity: func([]json.RawMessage) (any, *rpcFault) {
			return regTxID, nil
		},
	}}
	c := newTestClient(t, node)

	reservation, err := NewNameReservation(json.RawMessage(`{"name":"aaaaah","salt":"01"}`))
	require.NoError(t, err)

	minSigs := uint8(1)
	priv := "zs1private"
	parent := "geckotest"
	txid, err := c.RegisterIdentity(context.Background(), IdentityRegistration{
		Commitment:        NameCommitment{TxID: mustTxID(t, commitTxID), NameReservation: reservation},
		PrimaryAddresses:  []vrsc.Address{vrsc.MustParseAddress(testAddress)},
		MinimumSignatures: &minSigs,
		PrivateAddress:    &priv,
		Parent:            &parent,
		ContentMap:        map[string]string{"deadbeef": "deadbeef"},
	})
	require.NoError(t, err)
	assert.Equal(t, regTxID, txid.String())

	require.Len(t, node.calls[0].Params, 1)
	assert.JSONEq(t, `{
		"txid": "`+commitTxID+`",
		"namereservation": {"name":"aaaaah","salt":"01"},
		"identity": {
			"name": "aaaaah",
			"parent": "geckotest",
			"primaryaddresses": ["`+testAddress+`"],
			"minimumsignatures": 1,
			"privateaddress": "zs1private",
			"contentmap": {"deadbeef": "deadbeef"}
		}
	}`, string(node.calls[0].Params[0]))
}

func TestCall_DefinitiveNodeError(t *testing.T) {
	node := &fakeNode{handlers: map[string]func([]json.RawMessage) (any, *rpcFault){
		methodRegisterIdentity: func([]json.RawMessage) (any, *rpcFault) {
			return nil, &rpcFault{Code: -8, Message: "Identity already exists"}
		},
	}}
	c := newTestClient(t, node)

	_, err := c.RegisterIdentity(context.Background(), IdentityRegistration{})
	require.Error(t, err)
	assert.Equal(t, KindDefinitive, Classify(err))
	assert.Contains(t, err.Error(), "Identity already exists")
}

func TestCall_BadCredentials(t *testing.T) {
	node := &fakeNode{}
	srv := httptest.NewServer(node)
	defer srv.Close()

	c, err := New(context.Background(), &Config{URL: srv.URL, User: "wrong", Password: "creds"})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.GetTransaction(context.Background(), mustTxID(t, commitTxID), false)
	require.Error(t, err)
	assert.Equal(t, KindDefinitive, Classify(err))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindDefinitive, Classify(context.Canceled))
	assert.Equal(t, KindDefinitive, Classify(nil))
	assert.Equal(t, KindTransientVisibility, Classify(&NodeError{Message: "Invalid or non-wallet transaction id"}))
	assert.Equal(t, KindTransientVisibility, Classify(&NodeError{Code: -5, Message: "No information available about transaction"}))
	assert.Equal(t, KindDefinitive, Classify(&NodeError{Code: -5, Message: "Invalid address"}))
	assert.Equal(t, KindDefinitive, Classify(&NodeError{Code: -32601, Message: "non-wallet transaction"}))
}

func TestLoadNodeConfig(t *testing.T) {
	dir := t.TempDir()
	conf := "# node config\nrpcuser=alice\nrpcpassword=secret\nrpcport=18000\nserver=1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vrsctest.conf"), []byte(conf), 0o600))

	cfg, err := LoadNodeConfig(dir, vrsc.Testnet)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:18000", cfg.URL)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
}

func TestLoadNodeConfig_DefaultPortAndMissingCredentials(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "VRSC.conf"), []byte("rpcuser=alice\n"), 0o600))

	_, err := LoadNodeConfig(dir, vrsc.Mainnet)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "VRSC.conf"), []byte("rpcuser=alice\nrpcpassword=pw\n"), 0o600))
	cfg, err := LoadNodeConfig(dir, vrsc.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:27486", cfg.URL)
}

func TestLoadNodeConfig_MissingFile(t *testing.T) {
	_, err := LoadNodeConfig(t.TempDir(), vrsc.Mainnet)
	require.Error(t, err)
}

func mustTxID(t *testing.T, s string) vrsc.TxID {
	t.Helper()
	id, err := vrsc.ParseTxID(s)
	require.NoError(t, err)
	return id
}
