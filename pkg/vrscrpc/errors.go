package vrscrpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

// CodeInvalidAddressOrKey is the node's RPC_INVALID_ADDRESS_OR_KEY error code,
// returned among others for transactions the node does not know yet.
const CodeInvalidAddressOrKey = -5

// ErrorKind classifies node errors for retry decisions.
type ErrorKind int

const (
	// KindDefinitive errors will not go away by retrying.
	KindDefinitive ErrorKind = iota
	// KindTransientVisibility means the transaction is not yet visible to the
	// node (wallet or mempool) and a retry may succeed.
	KindTransientVisibility
)

func (k ErrorKind) String() string {
	if k == KindTransientVisibility {
		return "transient_visibility"
	}
	return "definitive"
}

var visibilityMessages = []string{
	"non-wallet transaction",
	"no information available about transaction",
}

// NodeError is a JSON-RPC error reply from the node.
type NodeError struct {
	Method     string
	Code       int
	Message    string
	HTTPStatus int

	Err error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s: node error %d: %s", e.Method, e.Code, e.Message)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// Kind classifies the error.
func (e *NodeError) Kind() ErrorKind {
	if e.Code != 0 && e.Code != CodeInvalidAddressOrKey {
		return KindDefinitive
	}
	msg := strings.ToLower(e.Message)
	for _, m := range visibilityMessages {
		if strings.Contains(msg, m) {
			return KindTransientVisibility
		}
	}
	return KindDefinitive
}

// Classify returns the kind of err. Anything that is not a NodeError (transport
// failures, cancelled contexts) is definitive.
func Classify(err error) ErrorKind {
	var ne *NodeError
	if errors.As(err, &ne) {
		return ne.Kind()
	}
	return KindDefinitive
}

// IsTransientVisibility reports whether err means the transaction is not yet
// visible to the node.
func IsTransientVisibility(err error) bool {
	return Classify(err) == KindTransientVisibility
}

type errorBody struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// wrapError converts transport level errors into NodeError where the node sent
// a JSON-RPC error object. Komodo-derived nodes reply with HTTP 500 and the
// error in the body, which the transport reports as an HTTPError.
func wrapError(method string, err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return &NodeError{
			Method:  method,
			Code:    rpcErr.ErrorCode(),
			Message: rpcErr.Error(),
			Err:     err,
		}
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		var body errorBody
		if jsonErr := json.Unmarshal(httpErr.Body, &body); jsonErr == nil && body.Error != nil {
			return &NodeError{
				Method:     method,
				Code:       body.Error.Code,
				Message:    body.Error.Message,
				HTTPStatus: httpErr.StatusCode,
				Err:        err,
			}
		}
	}

	return fmt.Errorf("%s: %w", method, err)
}
