package migrations

import "embed"

// FS contiene el esquema SQLite.
//
//go:embed *.sql
var FS embed.FS
