package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	err := NotFound("run not found")
	if err.Error() != "run not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	wrapped := Wrap(errors.New("boom"), ErrCodeInternal, "insert failed")
	if wrapped.Error() != "insert failed: boom" {
		t.Fatalf("unexpected message: %q", wrapped.Error())
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(cause, ErrCodeSecretUnavailable, "secret store unreachable")
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
	if !IsSecretUnavailable(err) {
		t.Fatal("expected secret unavailable code")
	}
}

func TestCodeHelpers(t *testing.T) {
	tests := []struct {
		err   error
		check func(error) bool
	}{
		{NotFoundf("run %s not found", "abc"), IsNotFound},
		{Validation("domain is required"), IsValidation},
		{Throttled("slow down"), IsThrottled},
		{Wrap(errors.New("deadline"), ErrCodeTimeout, "timed out"), IsTimeout},
		{IssuanceFailed("issuance process exited with code 1"), IsIssuanceFailed},
		{ReconcileFailed("malformed chain"), IsReconcileFailed},
		{SecretUnavailable("secret is empty"), IsSecretUnavailable},
		{StateConflict("instance already running"), IsStateConflict},
	}
	for _, tt := range tests {
		if !tt.check(tt.err) {
			t.Fatalf("helper did not match %v", tt.err)
		}
	}
}

func TestHelpersMatchWrappedErrors(t *testing.T) {
	err := fmt.Errorf("trigger: %w", StateConflict("instance already running"))
	if !IsStateConflict(err) {
		t.Fatal("expected helper to see through fmt wrapping")
	}
	if IsNotFound(err) {
		t.Fatal("unexpected not found match")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(Internal("oops")); got != ErrCodeInternal {
		t.Fatalf("unexpected code %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Fatalf("expected empty code, got %q", got)
	}
	if got := GetCode(nil); got != "" {
		t.Fatalf("expected empty code for nil, got %q", got)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "ignored") != nil {
		t.Fatal("expected nil for nil cause")
	}
	if Wrapf(nil, ErrCodeInternal, "ignored %d", 1) != nil {
		t.Fatal("expected nil for nil cause")
	}
}
