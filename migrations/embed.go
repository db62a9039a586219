// Package migrations holds the postgres schema as golang-migrate SQL files.
package migrations

import "embed"

// FS contains every migration file, compiled into the binaries
//
//go:embed *.sql
var FS embed.FS
