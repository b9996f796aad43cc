// Package vrscrpc is a JSON-RPC client for the identity related calls of a
// Verus node.
package vrscrpc

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/internal/metrics"
	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
)

const (
	methodRegisterNameCommitment = "registernamecommitment"
	methodGetTransaction         = "gettransaction"
	methodGetRawTransaction      = "getrawtransaction"
	methodRegisterIdentity       = "registeridentity"
)

// Client talks to a single node. It is safe for concurrent use.
type Client struct {
	cfg    *Config
	rpc    *rpc.Client
	logger *zap.Logger
}

// New dials the node described by cfg. No request is sent until the first call.
func New(ctx context.Context, cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	s := applyOptions(opts)

	clientOpts := []rpc.ClientOption{rpc.WithHTTPClient(s.httpClient)}
	if cfg.User != "" {
		clientOpts = append(clientOpts, rpc.WithHTTPAuth(basicAuth(cfg.User, cfg.Password)))
	}

	c, err := rpc.DialOptions(ctx, cfg.URL, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("dial node rpc: %w", err)
	}

	return &Client{cfg: cfg, rpc: c, logger: s.logger}, nil
}

// Close releases the underlying transport.
func (c *Client) Close() {
	c.rpc.Close()
}

// RegisterNameCommitment reserves name for controlAddr. referral and parent
// are optional; parent selects the currency the identity is created under.
func (c *Client) RegisterNameCommitment(
	ctx context.Context,
	name string,
	controlAddr vrsc.Address,
	referral, parent *string,
) (*NameCommitment, error) {
	args := []any{name, controlAddr.String()}
	if referral != nil || parent != nil {
		args = append(args, deref(referral))
	}
	if parent != nil {
		args = append(args, *parent)
	}

	var out NameCommitment
	if err := c.call(ctx, &out, methodRegisterNameCommitment, args...); err != nil {
		return nil, err
	}

	c.logger.Debug("name commitment submitted",
		zap.String("name", out.NameReservation.Name),
		zap.Stringer("txid", out.TxID))
	return &out, nil
}

// GetTransaction looks the transaction up in the node's wallet.
func (c *Client) GetTransaction(ctx context.Context, txid vrsc.TxID, includeWatchOnly bool) (*TransactionInfo, error) {
	var out TransactionInfo
	if err := c.call(ctx, &out, methodGetTransaction, txid.String(), includeWatchOnly); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRawTransactionVerbose looks the transaction up in the mempool and chain,
// independent of the wallet.
func (c *Client) GetRawTransactionVerbose(ctx context.Context, txid vrsc.TxID) (*TransactionInfo, error) {
	var out TransactionInfo
	if err := c.call(ctx, &out, methodGetRawTransaction, txid.String(), 1); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterIdentity submits the identity definition for a confirmed commitment
// and returns the registration transaction id.
func (c *Client) RegisterIdentity(ctx context.Context, reg IdentityRegistration) (vrsc.TxID, error) {
	var out vrsc.TxID
	if err := c.call(ctx, &out, methodRegisterIdentity, reg.arg()); err != nil {
		return vrsc.TxID{}, err
	}
	return out, nil
}

func (c *Client) call(ctx context.Context, result any, method string, args ...any) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := c.rpc.CallContext(ctx, result, method, args...)
	if err != nil {
		err = wrapError(method, err)
	}
	metrics.RPCCallDuration.WithLabelValues(method, callOutcome(err)).Observe(time.Since(start).Seconds())
	return err
}

func callOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsTransientVisibility(err):
		return "not_visible"
	default:
		return "error"
	}
}

func basicAuth(user, password string) rpc.HTTPAuth {
	token := base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
	return func(h http.Header) error {
		h.Set("Authorization", "Basic "+token)
		return nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
