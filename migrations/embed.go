// Package migrations SQL миграции схемы, встроенные в бинарник
package migrations

import "embed"

// FS файлы миграций вида 001_name.up.sql
//
//go:embed *.sql
var FS embed.FS
