package migrations

import "embed"

// FS contiene el esquema Postgres.
//
//go:embed *.sql
var FS embed.FS
