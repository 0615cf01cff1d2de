// Package migrations embeds the SQL migration files into the binary so the
// service can migrate its own schema on startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
