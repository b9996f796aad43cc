package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/pkg/migrations/identitydb"
	"github.com/chainsafe/vrsc-identity/pkg/pgutil"
	mghelper "github.com/chainsafe/vrsc-identity/pkg/pgutil/migrations"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate " + strings.Join(mghelper.Commands, "|"),
		Short:     "Manage the registration journal schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: mghelper.Commands,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := pgutil.ConnectDB(ctx, &cfg.Database, logger)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			logger.Info("running migrations", zap.String("database", cfg.Database.Database), zap.String("command", args[0]))

			if err := mghelper.RunMigrations(ctx, migrate.NewMigrator(db, identitydb.Migrations), logger, args[0]); err != nil {
				return fmt.Errorf("migrate %s: %w", args[0], err)
			}
			return nil
		},
	}
}
