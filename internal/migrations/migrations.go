// Package migrations embeds the SQL migrations for the quiz database.
package migrations

import "embed"

// FS is the embedded filesystem
//
//go:embed *.sql
var FS embed.FS
