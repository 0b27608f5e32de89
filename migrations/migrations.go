// Package migrations содержит SQL миграции, встраиваемые в бинарник
// и применяемые через goose при старте сервиса
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
