package commands

import (
	"github.com/spf13/cobra"

	"github.com/chainsafe/vrsc-identity/pkg/app/api"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the registration HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return api.NewServer(cfg, logger).Run()
		},
	}
}
