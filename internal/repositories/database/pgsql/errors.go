package pgsql

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATEs caused by contention. The unit of work that hit one can be retried as a whole.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
)

// mapError translates driver errors into application errors.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(msg)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return fmt.Errorf("%w: %s: %s", apperrors.ErrRetryable, msg, pgErr.Message)
		case codeUniqueViolation:
			return fmt.Errorf("%w: %w: %s: %s", apperrors.ErrRetryable, apperrors.ErrDuplicate, msg, pgErr.ConstraintName)
		case codeCheckViolation:
			return fmt.Errorf("%w: %s: constraint %s", apperrors.ErrValidation, msg, pgErr.ConstraintName)
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}
