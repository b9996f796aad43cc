package registration

import (
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
)

const (
	DefaultPollInterval            = 3 * time.Second
	DefaultVisibilityRetryInterval = 100 * time.Millisecond
	DefaultMaxVisibilityRetries    = 20000
)

// Option configures a Registrar.
type Option func(*settings)

type settings struct {
	logger                  *zap.Logger
	journal                 Journal
	pollInterval            time.Duration
	visibilityRetryInterval time.Duration
	maxVisibilityRetries    int
	lookup                  Lookup
	network                 *vrsc.Network
}

func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithJournal records every state transition to j.
func WithJournal(j Journal) Option {
	return func(s *settings) {
		if j != nil {
			s.journal = j
		}
	}
}

// WithPollInterval sets the wait between lookups of a visible but unconfirmed
// commitment.
func WithPollInterval(d time.Duration) Option {
	return func(s *settings) { s.pollInterval = d }
}

// WithVisibilityRetryInterval sets the wait between lookups while the node
// does not know the commitment transaction yet.
func WithVisibilityRetryInterval(d time.Duration) Option {
	return func(s *settings) { s.visibilityRetryInterval = d }
}

// WithMaxVisibilityRetries caps the lookups that may fail with a not yet
// visible error before the run times out.
func WithMaxVisibilityRetries(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.maxVisibilityRetries = n
		}
	}
}

func WithLookup(l Lookup) Option {
	return func(s *settings) { s.lookup = l }
}

// WithNetwork makes the Registrar refuse requests for any other network
// before calling the node.
func WithNetwork(n vrsc.Network) Option {
	return func(s *settings) { s.network = &n }
}

func applyOptions(opts []Option) settings {
	s := settings{
		logger:                  zap.NewNop(),
		journal:                 nopJournal{},
		pollInterval:            DefaultPollInterval,
		visibilityRetryInterval: DefaultVisibilityRetryInterval,
		maxVisibilityRetries:    DefaultMaxVisibilityRetries,
		lookup:                  LookupWallet,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
