// Package migrations embeds the SQLite schema for answers and words.
package migrations

import "embed"

// FS contains embedded SQLite migrations.
//
//go:embed *.sql
var FS embed.FS
