package identity

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
)

// requestFile is the on-disk shape of a request:
//
//	name: alice
//	network: testnet
//	primary_addresses:
//	  - RP1sexQNvjGPohJkK9JnuPDH7V7NboycGj
//	minimum_signatures: 1
//	content_map:
//	  deadbeef: deadbeef
type requestFile struct {
	Name              string            `yaml:"name"`
	Network           string            `yaml:"network" validate:"omitempty,oneof=mainnet testnet VRSC vrsctest"`
	CurrencyContext   *string           `yaml:"currency" validate:"omitempty,min=1"`
	Referral          *string           `yaml:"referral" validate:"omitempty,min=1"`
	PrimaryAddresses  []string          `yaml:"primary_addresses" validate:"dive,required"`
	MinimumSignatures *uint8            `yaml:"minimum_signatures"`
	PrivateAddress    *string           `yaml:"private_address" validate:"omitempty,min=1"`
	ContentMap        map[string]string `yaml:"content_map"`
}

var fileValidator = validator.New(validator.WithRequiredStructEnabled())

// LoadRequestFile reads a YAML request. The file's shape is checked here; the
// request itself still has to go through Validate.
func LoadRequestFile(path string) (Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("failed to read request file: %w", err)
	}
	return ParseRequest(data)
}

// ParseRequest decodes a YAML request document.
func ParseRequest(data []byte) (Request, error) {
	var f requestFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Request{}, fmt.Errorf("failed to decode request: %w", err)
	}
	if err := fileValidator.Struct(f); err != nil {
		return Request{}, fmt.Errorf("malformed request: %w", err)
	}

	req := Request{
		Name:              f.Name,
		CurrencyContext:   f.CurrencyContext,
		Referral:          f.Referral,
		MinimumSignatures: f.MinimumSignatures,
		PrivateAddress:    f.PrivateAddress,
		ContentMap:        f.ContentMap,
	}
	if f.Network != "" {
		n, err := vrsc.ParseNetwork(f.Network)
		if err != nil {
			return Request{}, err
		}
		req.Network = n
	}
	for i, s := range f.PrimaryAddresses {
		addr, err := vrsc.ParseAddress(s)
		if err != nil {
			return Request{}, fmt.Errorf("primary_addresses[%d]: %w", i, err)
		}
		req.PrimaryAddresses = append(req.PrimaryAddresses, addr)
	}
	return req, nil
}
