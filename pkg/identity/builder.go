package identity

import (
	"maps"

	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
)

// Builder accumulates request parameters through chained setters.
//
//	req, err := identity.NewBuilder().
//		SetName("alice").
//		AddPrimaryAddress(addr).
//		Validate()
type Builder struct {
	req    Request
	logger *zap.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for diagnostics during validation.
func WithLogger(l *zap.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder returns an empty builder targeting mainnet.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *Builder) SetName(name string) *Builder {
	b.req.Name = name
	return b
}

func (b *Builder) SetReferral(referral string) *Builder {
	b.req.Referral = &referral
	return b
}

// SetCurrencyContext selects the currency (chain) to create the identity on.
func (b *Builder) SetCurrencyContext(currency string) *Builder {
	b.req.CurrencyContext = &currency
	return b
}

func (b *Builder) SetMinimumSignatures(n uint8) *Builder {
	b.req.MinimumSignatures = &n
	return b
}

// AddPrimaryAddress appends an address. The first address added controls the
// name commitment.
func (b *Builder) AddPrimaryAddress(addr vrsc.Address) *Builder {
	b.req.PrimaryAddresses = append(b.req.PrimaryAddresses, addr)
	return b
}

func (b *Builder) SetPrivateAddress(addr string) *Builder {
	b.req.PrivateAddress = &addr
	return b
}

func (b *Builder) SetContentMap(cm map[string]string) *Builder {
	b.req.ContentMap = maps.Clone(cm)
	return b
}

func (b *Builder) SetNetwork(testnet bool) *Builder {
	if testnet {
		b.req.Network = vrsc.Testnet
	} else {
		b.req.Network = vrsc.Mainnet
	}
	return b
}

// Request returns a copy of the accumulated request.
func (b *Builder) Request() Request {
	return b.req.clone()
}

// Validate runs Validate on the accumulated request. The builder is not
// modified, so repeated calls return the same result.
func (b *Builder) Validate() (*ValidatedRequest, error) {
	return Validate(b.req, b.logger)
}
