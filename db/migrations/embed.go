// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

// FS holds every NNNN_name.sql migration, annotated with goose
// "-- +goose Up" and "-- +goose Down" sections.
//
//go:embed *.sql
var FS embed.FS
