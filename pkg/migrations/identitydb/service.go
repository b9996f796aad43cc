// Package identitydb holds all the migrations for the registration journal database
package identitydb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the registration journal database
var Migrations = migrate.NewMigrations()
