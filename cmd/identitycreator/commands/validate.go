package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chainsafe/vrsc-identity/pkg/identity"
)

func validateCmd() *cobra.Command {
	var requestPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a request file without contacting the node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(requestPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "request for %q on %s is valid (%d of %d signatures)\n",
				req.Name(), req.Network(), req.MinimumSignatures(), len(req.PrimaryAddresses()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&requestPath, "file", "f", "", "path to the identity request YAML file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func loadRequest(path string) (*identity.ValidatedRequest, error) {
	raw, err := identity.LoadRequestFile(path)
	if err != nil {
		return nil, err
	}
	return identity.Validate(raw, logger)
}
