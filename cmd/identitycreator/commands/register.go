package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/pkg/app"
	"github.com/chainsafe/vrsc-identity/pkg/pgutil"
	"github.com/chainsafe/vrsc-identity/pkg/registration"
	"github.com/chainsafe/vrsc-identity/pkg/registration/store"
	"github.com/chainsafe/vrsc-identity/pkg/vrscrpc"
)

type runFlags struct {
	requestPath string
	timeout     time.Duration
	journal     bool
}

func (f *runFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.requestPath, "file", "f", "", "path to the identity request YAML file")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "abort the run after this long (default: configured registration.timeout)")
	cmd.Flags().BoolVar(&f.journal, "journal", false, "record progress in the configured database")
}

func registerCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Commit a name, wait for confirmation and register the identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(flags.requestPath)
			if err != nil {
				return err
			}

			return withRun(cmd, flags, func(ctx context.Context, env *runEnv) error {
				var journal registration.Journal
				if flags.journal {
					st, err := env.store(ctx)
					if err != nil {
						return err
					}
					runID := uuid.NewString()
					logger.Info("recording progress", zap.String("run_id", runID))
					journal = registration.ForRun(st, runID, req)
				}

				r, err := env.registrar(ctx, journal)
				if err != nil {
					return err
				}
				rec, err := r.RegisterIdentity(ctx, req)
				return report(cmd.OutOrStdout(), rec, err)
			})
		},
	}

	flags.bind(cmd)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// runEnv opens the node client and journal database of one CLI run on first
// use and releases them in close.
type runEnv struct {
	node *vrscrpc.Client
	db   *bun.DB
}

func (e *runEnv) store(ctx context.Context) (store.Store, error) {
	if e.db == nil {
		db, err := pgutil.ConnectDB(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		e.db = db
	}
	return store.NewStore(e.db), nil
}

// registrar builds a Registrar bound to the configured node and its network.
// journal may be nil.
func (e *runEnv) registrar(ctx context.Context, journal registration.Journal) (*registration.Registrar, error) {
	opts, err := app.RegistrarOptions(cfg.Registration, cfg.Node)
	if err != nil {
		return nil, err
	}
	nodeCfg, err := app.NodeClientConfig(cfg.Node)
	if err != nil {
		return nil, err
	}
	if e.node == nil {
		node, err := vrscrpc.New(ctx, nodeCfg, vrscrpc.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create node client: %w", err)
		}
		e.node = node
	}

	opts = append(opts, registration.WithLogger(logger), registration.WithJournal(journal))
	return registration.New(e.node, opts...), nil
}

func (e *runEnv) close() {
	if e.node != nil {
		e.node.Close()
	}
	if e.db != nil {
		_ = e.db.Close()
	}
}

// withRun calls fn with a context cancelled on SIGINT, SIGTERM or the run
// timeout.
func withRun(cmd *cobra.Command, flags runFlags, fn func(context.Context, *runEnv) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeout := flags.timeout
	if timeout == 0 {
		timeout = cfg.Registration.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	env := &runEnv{}
	defer env.close()
	return fn(ctx, env)
}

// report prints the identity record on success. On a failure after the name
// commitment it prints the commitment so the run can be resumed.
func report(w io.Writer, rec *registration.IdentityRecord, err error) error {
	if err != nil {
		if commitment, ok := registration.CommitmentOf(err); ok {
			logger.Error("registration failed after name commitment; resume with the commitment below",
				zap.Stringer("commitment_txid", commitment.TxID),
				zap.Error(err))
			if encErr := writeJSON(w, commitment); encErr != nil {
				logger.Error("failed to print commitment", zap.Error(encErr))
			}
		}
		return err
	}
	return writeJSON(w, rec)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
