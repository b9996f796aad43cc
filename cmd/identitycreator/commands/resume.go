package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/pkg/identity"
	"github.com/chainsafe/vrsc-identity/pkg/registration"
	"github.com/chainsafe/vrsc-identity/pkg/registration/store"
	"github.com/chainsafe/vrsc-identity/pkg/vrscrpc"
)

func resumeCmd() *cobra.Command {
	var (
		flags          runFlags
		commitmentPath string
		runID          string
	)

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Finish a registration that already holds a name commitment",
		Long: `Finish a registration without committing to the name again.

The commitment is read from --commitment, from the journaled run --run-id, or
from the latest journaled run for the name in --file. A journaled run keeps
its request, so --file is optional with --run-id. Runs that reached
registration_submitted are refused: check the chain, then retry with the
commitment file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req *identity.ValidatedRequest
			if flags.requestPath != "" {
				var err error
				if req, err = loadRequest(flags.requestPath); err != nil {
					return err
				}
			}
			if req == nil && runID == "" {
				return errors.New("--file is required unless --run-id is given")
			}

			return withRun(cmd, flags, func(ctx context.Context, env *runEnv) error {
				var (
					commitment *vrscrpc.NameCommitment
					journal    registration.Journal
				)

				if commitmentPath != "" {
					var err error
					if commitment, err = loadCommitment(commitmentPath); err != nil {
						return err
					}
					if flags.journal {
						st, err := env.store(ctx)
						if err != nil {
							return err
						}
						journal = registration.ForRun(st, uuid.NewString(), req)
					}
				} else {
					st, err := env.store(ctx)
					if err != nil {
						return err
					}
					run, err := journaledRun(ctx, st, runID, req)
					if err != nil {
						return err
					}
					if req == nil {
						if req, err = storedRequest(run); err != nil {
							return err
						}
					}
					commitment = run.Commitment
					journal = registration.ForRun(st, run.ID, req)
				}

				r, err := env.registrar(ctx, journal)
				if err != nil {
					return err
				}
				rec, err := r.Resume(ctx, req, commitment)
				return report(cmd.OutOrStdout(), rec, err)
			})
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&commitmentPath, "commitment", "", "path to the name commitment JSON")
	cmd.Flags().StringVar(&runID, "run-id", "", "resume the journaled run with this id")
	cmd.MarkFlagsMutuallyExclusive("commitment", "run-id")
	return cmd
}

// journaledRun loads run id, or the latest run for req's name when id is
// empty, and checks that it can be resumed.
func journaledRun(ctx context.Context, st store.Store, id string, req *identity.ValidatedRequest) (*registration.Progress, error) {
	var (
		run *registration.Progress
		err error
	)
	if id != "" {
		run, err = st.Get(ctx, id)
	} else {
		run, err = st.GetByName(ctx, req.Name())
	}
	if err != nil {
		return nil, fmt.Errorf("load journaled run: %w", err)
	}
	if err := run.Resumable(); err != nil {
		return nil, err
	}

	logger.Info("resuming journaled run",
		zap.String("run_id", run.ID),
		zap.String("name", run.Name),
		zap.Stringer("state", run.State))
	return run, nil
}

func storedRequest(run *registration.Progress) (*identity.ValidatedRequest, error) {
	if run.Request == nil {
		return nil, fmt.Errorf("run %s has no stored request; pass --file", run.ID)
	}
	return identity.Validate(*run.Request, logger)
}

func loadCommitment(path string) (*vrscrpc.NameCommitment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read commitment file: %w", err)
	}
	var c vrscrpc.NameCommitment
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse commitment file: %w", err)
	}
	return &c, nil
}
