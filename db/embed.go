// Package db carries the SQL migrations for the match result archive.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
