package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound means the serial or phone does not exist in the store.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateSerial means an insert hit the primary-key constraint.
	ErrDuplicateSerial = errors.New("serial number already exists")
)

const uniqueViolation = "23505"

// translateError maps driver errors onto the store taxonomy. Anything that
// is neither a missing row nor a unique violation is a persistence failure
// and passes through verbatim.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateSerial
	}
	return err
}
