// Package migrations embeds the SQL schema migrations applied by
// database.RunMigrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
