package migrations

import "embed"

// FS holds the goose SQL migrations so binaries do not depend on the working directory.
//
//go:embed *.sql
var FS embed.FS
