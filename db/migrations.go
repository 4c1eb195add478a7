// Package db embeds the SQL migrations so binaries and tests can apply them
// without a checkout of the repository.
package db

import "embed"

// MigrationsDir is the directory inside Migrations holding the goose files.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var Migrations embed.FS
