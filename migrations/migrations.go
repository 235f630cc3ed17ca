// Package migrations embeds the goose SQL migrations shared by the SQL blob stores.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed goose_sql/*.sql
var embedded embed.FS

// FS is rooted at the migration directory.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "goose_sql")
	if err != nil {
		panic(err) // embed layout is fixed at compile time
	}
	return sub
}

// Up applies every pending migration for the given dialect and returns how many ran.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect) (int, error) {
	provider, err := goose.NewProvider(dialect, db, FS())
	if err != nil {
		return 0, fmt.Errorf("goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	return len(results), nil
}
