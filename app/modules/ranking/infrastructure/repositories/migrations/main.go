package rankingmigrations

import "github.com/uptrace/bun/migrate"

// Migrations is the ranking module's migration registry.
var Migrations = migrate.NewMigrations()
