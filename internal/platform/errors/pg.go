package errors

// Postgres helpers: SQLSTATE classification and retry hints for the survey store

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the survey store can hit
const (
	sqlUniqueViolation     = "23505"
	sqlForeignKeyViolation = "23503"
	sqlNotNullViolation    = "23502"
	sqlCheckViolation      = "23514"
	sqlStringTooLong       = "22001"
	sqlBadTextInput        = "22P02"

	sqlSerializationFailure = "40001"
	sqlDeadlock             = "40P01"
	sqlLockNotAvailable     = "55P03"
	sqlReadOnlyTx           = "25006"
	sqlCannotConnectNow     = "57P03"
	sqlAdminShutdown        = "57P01"
)

// ExtractPgError returns the *pgconn.PgError anywhere in the chain
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether err is a Postgres error with the given SQLSTATE
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports a unique violation, e.g. (client_id, response_id)
func IsDuplicateKey(err error) bool { return IsSQLState(err, sqlUniqueViolation) }

// DBErrorCode maps a Postgres error to an ErrorCode; ok is false for non pg errors
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case sqlUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case sqlNotNullViolation, sqlCheckViolation:
		return ErrorCodeValidation, true
	case sqlForeignKeyViolation, sqlStringTooLong, sqlBadTextInput:
		return ErrorCodeInvalidArgument, true
	case sqlReadOnlyTx, sqlCannotConnectNow, sqlAdminShutdown:
		return ErrorCodeUnavailable, true
	default:
		return ErrorCodeDB, true
	}
}

// FromPostgres wraps err with its mapped code; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	e := &Error{code: code, msg: msg, orig: err}
	if pgErr, ok := ExtractPgError(err); ok && pgErr.ColumnName != "" {
		e.field = pgErr.ColumnName
	}
	return e
}

// IsRetryable reports transient database conditions.
// Local cancellation never counts; the caller owns that decision
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case sqlSerializationFailure, sqlDeadlock, sqlLockNotAvailable, sqlCannotConnectNow, sqlAdminShutdown:
			return true
		}
		return false
	}

	// pgx surfaces some of these only as text
	s := strings.ToLower(Root(err).Error())
	for _, needle := range []string{
		"commit unexpectedly resulted in rollback",
		"deadlock detected",
		"could not serialize access",
		"canceling statement due to lock timeout",
		"terminating connection due to administrator command",
	} {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
