package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the postgres error code for unique-constraint
// violations.
const uniqueViolation = "23505"

// IsDuplicateKey reports whether err is a unique-constraint violation.
// gorm translates most of these to ErrDuplicatedKey; the pgconn check
// covers paths where translation does not apply.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
