// Package migrations embeds the schema files so the main binary can apply
// them without shipping the directory next to it. The migration CLI reads
// the same files from disk.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
