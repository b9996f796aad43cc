// Package app defines the runtime contracts shared by the executable entry
// points and the wiring from configuration to components.
package app

import (
	"fmt"

	"github.com/chainsafe/vrsc-identity/pkg/config"
	"github.com/chainsafe/vrsc-identity/pkg/registration"
	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
	"github.com/chainsafe/vrsc-identity/pkg/vrscrpc"
)

// Runner represents a runnable application component.
type Runner interface {
	Run() error
}

// NodeClientConfig resolves the node endpoint. An explicit URL wins; otherwise
// the endpoint and credentials come from the node's own config file.
func NodeClientConfig(cfg config.NodeConfig) (*vrscrpc.Config, error) {
	network, err := vrsc.ParseNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}

	if cfg.URL != "" {
		return &vrscrpc.Config{
			URL:      cfg.URL,
			User:     cfg.User,
			Password: cfg.Password,
			Timeout:  cfg.Timeout,
		}, nil
	}

	nodeCfg, err := vrscrpc.LoadNodeConfig(cfg.DataDir, network)
	if err != nil {
		return nil, fmt.Errorf("load node config: %w", err)
	}
	nodeCfg.Timeout = cfg.Timeout
	return nodeCfg, nil
}

// RegistrarOptions converts the registration settings into Registrar options.
// The Registrar is bound to the node's network and refuses requests for the
// other one.
func RegistrarOptions(cfg config.RegistrationConfig, node config.NodeConfig) ([]registration.Option, error) {
	lookup, err := registration.ParseLookup(cfg.Lookup)
	if err != nil {
		return nil, err
	}
	network, err := vrsc.ParseNetwork(node.Network)
	if err != nil {
		return nil, err
	}
	return []registration.Option{
		registration.WithPollInterval(cfg.PollInterval),
		registration.WithVisibilityRetryInterval(cfg.VisibilityRetryInterval),
		registration.WithMaxVisibilityRetries(cfg.MaxVisibilityRetries),
		registration.WithLookup(lookup),
		registration.WithNetwork(network),
	}, nil
}
