package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
)

func writeRequest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadRequestFile(t *testing.T) {
	path := writeRequest(t, `
name: aaaaah
network: testnet
currency: vrsctest
referral: bob
primary_addresses:
  - `+controlAddress+`
minimum_signatures: 1
private_address: zs1exampleprivateaddress
content_map:
  deadbeef: deadbeef
`)

	req, err := LoadRequestFile(path)
	require.NoError(t, err)

	assert.Equal(t, "aaaaah", req.Name)
	assert.Equal(t, vrsc.Testnet, req.Network)
	require.NotNil(t, req.CurrencyContext)
	assert.Equal(t, "vrsctest", *req.CurrencyContext)
	require.NotNil(t, req.Referral)
	assert.Equal(t, "bob", *req.Referral)
	require.Len(t, req.PrimaryAddresses, 1)
	assert.Equal(t, controlAddress, req.PrimaryAddresses[0].String())
	require.NotNil(t, req.MinimumSignatures)
	assert.Equal(t, uint8(1), *req.MinimumSignatures)
	assert.Equal(t, map[string]string{"deadbeef": "deadbeef"}, req.ContentMap)

	_, err = Validate(req, nil)
	require.NoError(t, err)
}

func TestLoadRequestFile_Malformed(t *testing.T) {
	tests := map[string]string{
		"unknown network": "name: a\nnetwork: regtest\nprimary_addresses: [" + controlAddress + "]\n",
		"bad address":     "name: a\nprimary_addresses: [nope]\n",
		"empty address":   "name: a\nprimary_addresses: ['']\n",
		"not yaml":        "name: [unterminated\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadRequestFile(writeRequest(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadRequestFile_Missing(t *testing.T) {
	_, err := LoadRequestFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseRequest_LeavesDomainChecksToValidate(t *testing.T) {
	req, err := ParseRequest([]byte("primary_addresses: [" + controlAddress + "]\n"))
	require.NoError(t, err)

	_, err = Validate(req, nil)
	requireValidationError(t, err, ErrMissingName)
}
