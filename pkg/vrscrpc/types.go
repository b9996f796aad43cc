package vrscrpc

import (
	"encoding/json"
	"fmt"

	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
)

// NameCommitment is the node's reply to registernamecommitment. The
// reservation is passed back to registeridentity untouched.
type NameCommitment struct {
	TxID            vrsc.TxID       `json:"txid"`
	NameReservation NameReservation `json:"namereservation"`
}

// NameReservation is an opaque reservation object. Only the name is read; the
// original encoding is kept so it round-trips byte for byte.
type NameReservation struct {
	Name string

	raw json.RawMessage
}

// NewNameReservation wraps a raw reservation object returned by the node.
func NewNameReservation(raw json.RawMessage) (NameReservation, error) {
	var r NameReservation
	if err := r.UnmarshalJSON(raw); err != nil {
		return NameReservation{}, err
	}
	return r, nil
}

func (r NameReservation) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	return json.Marshal(struct {
		Name string `json:"name"`
	}{r.Name})
}

func (r *NameReservation) UnmarshalJSON(b []byte) error {
	var v struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("decode name reservation: %w", err)
	}
	r.Name = v.Name
	r.raw = append(json.RawMessage(nil), b...)
	return nil
}

// TransactionInfo is the subset of gettransaction / getrawtransaction output
// the registration flow needs. Confirmations is zero while the transaction is
// in the mempool.
type TransactionInfo struct {
	TxID          vrsc.TxID `json:"txid"`
	Confirmations int64     `json:"confirmations"`
	BlockHash     string    `json:"blockhash,omitempty"`
}

// IdentityRegistration holds the arguments of registeridentity.
type IdentityRegistration struct {
	Commitment        NameCommitment
	PrimaryAddresses  []vrsc.Address
	MinimumSignatures *uint8
	PrivateAddress    *string
	Parent            *string
	ContentMap        map[string]string
}

type identityDefinition struct {
	Name              string            `json:"name"`
	Parent            string            `json:"parent,omitempty"`
	PrimaryAddresses  []string          `json:"primaryaddresses"`
	MinimumSignatures *uint8            `json:"minimumsignatures,omitempty"`
	PrivateAddress    string            `json:"privateaddress,omitempty"`
	ContentMap        map[string]string `json:"contentmap,omitempty"`
}

type identityRegistrationArg struct {
	TxID            vrsc.TxID          `json:"txid"`
	NameReservation NameReservation    `json:"namereservation"`
	Identity        identityDefinition `json:"identity"`
}

func (r IdentityRegistration) arg() identityRegistrationArg {
	addrs := make([]string, len(r.PrimaryAddresses))
	for i, a := range r.PrimaryAddresses {
		addrs[i] = a.String()
	}

	def := identityDefinition{
		Name:              r.Commitment.NameReservation.Name,
		PrimaryAddresses:  addrs,
		MinimumSignatures: r.MinimumSignatures,
		ContentMap:        r.ContentMap,
	}
	if r.Parent != nil {
		def.Parent = *r.Parent
	}
	if r.PrivateAddress != nil {
		def.PrivateAddress = *r.PrivateAddress
	}

	return identityRegistrationArg{
		TxID:            r.Commitment.TxID,
		NameReservation: r.Commitment.NameReservation,
		Identity:        def,
	}
}
