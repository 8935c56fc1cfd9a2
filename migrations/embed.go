package migrations

import "embed"

// Files holds the numbered, forward-only SQL migrations compiled into the
// binary; internal/db applies them in order on startup.
//
//go:embed *.sql
var Files embed.FS
