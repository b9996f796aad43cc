package vrsc

import "fmt"

// Network selects the chain the node serves.
type Network int

const (
	Mainnet Network = iota
	Testnet
)

// ChainName returns the chain identifier the node uses for its data directory
// and config file.
func (n Network) ChainName() string {
	if n == Testnet {
		return "vrsctest"
	}
	return "VRSC"
}

// DefaultRPCPort returns the node's default RPC port for the network.
func (n Network) DefaultRPCPort() int {
	if n == Testnet {
		return 18843
	}
	return 27486
}

func (n Network) String() string {
	if n == Testnet {
		return "testnet"
	}
	return "mainnet"
}

// ParseNetwork maps "mainnet"/"testnet" (and the chain names) to a Network.
func ParseNetwork(s string) (Network, error) {
	switch s {
	case "", "mainnet", "VRSC":
		return Mainnet, nil
	case "testnet", "vrsctest":
		return Testnet, nil
	default:
		return Mainnet, fmt.Errorf("unknown network %q", s)
	}
}

func (n Network) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Network) UnmarshalText(text []byte) error {
	parsed, err := ParseNetwork(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
