package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"taskmanager/pkg/apperror"
)

// sqliteConstraint is the primary SQLITE_CONSTRAINT result code; extended
// codes keep it in the low byte.
const sqliteConstraint = 19

// translateError maps a driver error to the application taxonomy.
// Constraint violations become integrity errors, everything else a database error.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	if isConstraintViolation(err) {
		return apperror.Integrity(op, err)
	}
	return apperror.Database(op, err)
}

func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// SQLSTATE class 23: integrity constraint violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		return coded.Code()&0xff == sqliteConstraint
	}
	return false
}
