// Package identity assembles and validates identity registration requests.
// Nothing in this package talks to the network.
package identity

import (
	"maps"
	"slices"

	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
)

const (
	// MaxContentMapKeyBytes is the size of a content map key (uint160).
	MaxContentMapKeyBytes = 20
	// MaxContentMapValueBytes is the size of a content map value (uint256).
	MaxContentMapValueBytes = 32

	// DefaultMinimumSignatures applies when no minimum is given.
	DefaultMinimumSignatures uint8 = 1
)

// Request holds the parameters of an identity registration. The first primary
// address controls the name commitment.
type Request struct {
	Name              string            `json:"name"`
	Network           vrsc.Network      `json:"network"`
	CurrencyContext   *string           `json:"currency,omitempty"`
	Referral          *string           `json:"referral,omitempty"`
	PrimaryAddresses  []vrsc.Address    `json:"primary_addresses"`
	MinimumSignatures *uint8            `json:"minimum_signatures,omitempty"`
	PrivateAddress    *string           `json:"private_address,omitempty"`
	ContentMap        map[string]string `json:"content_map,omitempty"`
}

func (r Request) clone() Request {
	out := r
	out.CurrencyContext = cloneString(r.CurrencyContext)
	out.Referral = cloneString(r.Referral)
	out.PrivateAddress = cloneString(r.PrivateAddress)
	out.PrimaryAddresses = slices.Clone(r.PrimaryAddresses)
	if r.MinimumSignatures != nil {
		n := *r.MinimumSignatures
		out.MinimumSignatures = &n
	}
	if r.ContentMap != nil {
		out.ContentMap = maps.Clone(r.ContentMap)
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// ValidatedRequest is a Request that passed Validate. It cannot be modified;
// accessors return copies.
type ValidatedRequest struct {
	req Request
}

func (v *ValidatedRequest) Name() string {
	return v.req.Name
}

func (v *ValidatedRequest) Network() vrsc.Network {
	return v.req.Network
}

// CurrencyContext is the currency the identity is created under; nil selects
// the node's own chain.
func (v *ValidatedRequest) CurrencyContext() *string {
	return cloneString(v.req.CurrencyContext)
}

func (v *ValidatedRequest) Referral() *string {
	return cloneString(v.req.Referral)
}

// ControllingAddress is the address the name commitment is made for.
func (v *ValidatedRequest) ControllingAddress() vrsc.Address {
	return v.req.PrimaryAddresses[0]
}

func (v *ValidatedRequest) PrimaryAddresses() []vrsc.Address {
	return slices.Clone(v.req.PrimaryAddresses)
}

// MinimumSignatures returns the number of signatures required to spend from
// the identity, 1 unless set.
func (v *ValidatedRequest) MinimumSignatures() uint8 {
	if v.req.MinimumSignatures == nil {
		return DefaultMinimumSignatures
	}
	return *v.req.MinimumSignatures
}

// ExplicitMinimumSignatures returns the minimum only if the caller set one, so
// the node can apply its own default otherwise.
func (v *ValidatedRequest) ExplicitMinimumSignatures() *uint8 {
	if v.req.MinimumSignatures == nil {
		return nil
	}
	n := *v.req.MinimumSignatures
	return &n
}

func (v *ValidatedRequest) PrivateAddress() *string {
	return cloneString(v.req.PrivateAddress)
}

func (v *ValidatedRequest) ContentMap() map[string]string {
	if v.req.ContentMap == nil {
		return nil
	}
	return maps.Clone(v.req.ContentMap)
}

// Request returns a copy of the underlying request.
func (v *ValidatedRequest) Request() Request {
	return v.req.clone()
}
