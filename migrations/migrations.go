// Package migrations содержит встроенные SQL миграции схемы хранилища.
package migrations

import "embed"

//go:embed postgres/*.sql
var PostgresMigrations embed.FS

// PostgresDir путь к миграциям внутри встроенной файловой системы
const PostgresDir = "postgres"
