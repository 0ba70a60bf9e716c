package migrations

import "embed"

// FS contains the embedded archive schema.
//
//go:embed *.sql
var FS embed.FS
