package errors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBErrorNil(t *testing.T) {
	if got := MapDBError(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestMapDBErrorContext(t *testing.T) {
	err := MapDBError(fmt.Errorf("exec: %w", context.DeadlineExceeded))
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("expected cause to be preserved")
	}

	err = MapDBError(context.Canceled)
	if GetCode(err) != ErrCodeCanceled {
		t.Fatalf("expected canceled code, got %q", GetCode(err))
	}
}

func TestMapDBErrorNoRows(t *testing.T) {
	for _, cause := range []error{pgx.ErrNoRows, sql.ErrNoRows} {
		err := MapDBError(cause)
		if !IsNotFound(err) {
			t.Fatalf("expected not found for %v, got %v", cause, err)
		}
	}
}

func TestMapDBErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "renewal_runs_pkey"}
	err := MapDBError(pgErr)
	if !IsStateConflict(err) {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if !errors.Is(err, pgErr) {
		t.Fatal("expected pg error to be wrapped")
	}
}

func TestMapDBErrorValidationViolations(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "domain"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Message != "invalid value for domain" {
		t.Fatalf("expected column in message, got %v", err)
	}

	err = MapDBError(&pgconn.PgError{Code: pgerrcode.CheckViolation})
	if !errors.As(err, &appErr) || appErr.Message != "invalid value" {
		t.Fatalf("expected bare validation message, got %v", err)
	}
}

func TestMapDBErrorUnknownPgCode(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	if GetCode(err) != ErrCodeInternal {
		t.Fatalf("expected internal code, got %q", GetCode(err))
	}
}

func TestMapDBErrorPassthrough(t *testing.T) {
	cause := errors.New("connection reset")
	if got := MapDBError(cause); got != cause {
		t.Fatalf("expected original error back, got %v", got)
	}
}
