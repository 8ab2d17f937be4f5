package repository

import (
	_ "embed"
)

// PostgresSchema is the DDL for the PostgreSQL repository.
// Unique name, generated id and timestamps are declared here, not on the entity.
//
//go:embed schema/postgres.sql
var PostgresSchema string

// SQLiteSchema is the DDL for the SQLite repository.
//
//go:embed schema/sqlite.sql
var SQLiteSchema string
