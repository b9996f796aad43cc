package identitydb

import (
	"context"

	"github.com/uptrace/bun"

	mghelper "github.com/chainsafe/vrsc-identity/pkg/pgutil/migrations"
	"github.com/chainsafe/vrsc-identity/pkg/registration/store"
)

var registrationIndexes = []string{"name", "state"}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if err := mghelper.CreateSchema(ctx, tx, &store.RegistrationDao{}); err != nil {
				return err
			}
			return mghelper.CreateModelIndexes(ctx, tx, &store.RegistrationDao{}, registrationIndexes...)
		})
	}, func(ctx context.Context, db *bun.DB) error {
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if err := mghelper.DropModelIndexes(ctx, tx, &store.RegistrationDao{}, registrationIndexes...); err != nil {
				return err
			}
			return mghelper.DropTables(ctx, tx, &store.RegistrationDao{})
		})
	})
}
