package vrsc

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TxID identifies a transaction. String form is the byte-reversed hex used by
// the node's RPC interface.
type TxID struct {
	hash chainhash.Hash
}

// ParseTxID parses a 64 character hex transaction id.
func ParseTxID(s string) (TxID, error) {
	if len(s) != chainhash.MaxHashStringSize {
		return TxID{}, fmt.Errorf("invalid txid %q: expected %d hex characters", s, chainhash.MaxHashStringSize)
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return TxID{}, fmt.Errorf("invalid txid %q: %w", s, err)
	}
	return TxID{hash: *h}, nil
}

func (t TxID) String() string {
	return t.hash.String()
}

// IsZero reports whether t is the zero value.
func (t TxID) IsZero() bool {
	return t.hash == chainhash.Hash{}
}

func (t TxID) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TxID) UnmarshalText(text []byte) error {
	parsed, err := ParseTxID(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
