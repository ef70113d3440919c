package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound is returned when a lookup by id or email matches no row.
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrDuplicateKey is returned when an insert or update violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignKey is returned when a row references a missing parent.
	ErrForeignKey = errors.New("foreign key violation")
)

// postgres SQLSTATE codes
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// translate maps driver errors onto the package sentinels, keeping the
// original error in the chain.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrDuplicateKey, pgErr.ConstraintName)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrForeignKey, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
