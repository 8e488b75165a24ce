package db

import "embed"

// Migrations holds the versioned schema for every supported record store,
// one directory per driver.
//
//go:embed migrations
var Migrations embed.FS

const (
	PostgresMigrationsDir = "migrations/postgres"
	SQLiteMigrationsDir   = "migrations/sqlite"
)
