package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from store implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnavailable   = errors.New("store unavailable")
	ErrSchemaMissing = errors.New("store schema missing")
)

// MapPgError translates the Postgres error codes the stores care about to domain errors.
// Everything else passes through untouched.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UndefinedTable:
			return fmt.Errorf("%w: %s", ErrSchemaMissing, pgErr.Message)
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgErr.Code == pgerrcode.AdminShutdown,
			pgErr.Code == pgerrcode.CannotConnectNow:
			return fmt.Errorf("%w: %s", ErrUnavailable, pgErr.Message)
		}
	}
	return err
}
