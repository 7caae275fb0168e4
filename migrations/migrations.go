// Package migrations embeds the SQL schema migrations applied by
// cmd/aihc-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
