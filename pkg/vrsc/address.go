// Package vrsc holds Verus chain primitives shared by the RPC client and the
// registration flow: addresses, transaction ids and network selection.
package vrsc

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Base58check version bytes used by Verus transparent addresses.
const (
	PubKeyHashVersion byte = 60  // R-address
	ScriptHashVersion byte = 85  // b-address
	IdentityVersion   byte = 102 // i-address
)

const addressHashLen = 20

var ErrInvalidAddress = errors.New("invalid address")

// Address is a decoded transparent Verus address.
type Address struct {
	version byte
	hash    [addressHashLen]byte
	encoded string
}

// ParseAddress decodes a base58check encoded address and verifies its checksum
// and version byte.
func ParseAddress(s string) (Address, error) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w %q: %v", ErrInvalidAddress, s, err)
	}
	if len(payload) != addressHashLen {
		return Address{}, fmt.Errorf("%w %q: payload length %d", ErrInvalidAddress, s, len(payload))
	}
	switch version {
	case PubKeyHashVersion, ScriptHashVersion, IdentityVersion:
	default:
		return Address{}, fmt.Errorf("%w %q: unknown version byte %d", ErrInvalidAddress, s, version)
	}

	a := Address{version: version, encoded: s}
	copy(a.hash[:], payload)
	return a, nil
}

// MustParseAddress is like ParseAddress but panics on error. Intended for
// constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	return a.encoded
}

// Version returns the base58check version byte.
func (a Address) Version() byte {
	return a.version
}

// IsIdentity reports whether the address is an identity (i-) address.
func (a Address) IsIdentity() bool {
	return a.version == IdentityVersion
}

// IsZero reports whether a is the zero value.
func (a Address) IsZero() bool {
	return a.encoded == ""
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.encoded), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
