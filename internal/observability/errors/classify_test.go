package errors

import (
	goerrors "errors"
	"fmt"
	"net"
	"testing"

	apperrors "github.com/cloudfolio/siteops/internal/errors"
)

func TestClassifyNil(t *testing.T) {
	if got := Classify(nil); got != "" {
		t.Fatalf("expected empty class for nil, got %q", got)
	}
}

func TestClassifyAppErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{apperrors.SecretUnavailable("store down"), "secret_unavailable"},
		{apperrors.IssuanceFailed("exit 1"), "issuance_failed"},
		{apperrors.ReconcileFailed("malformed chain"), "reconcile_failed"},
		{fmt.Errorf("wrapped: %w", apperrors.StateConflict("running")), "state_conflict"},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestClassifyUnwrapsToInnermostType(t *testing.T) {
	inner := &net.OpError{Op: "dial", Err: goerrors.New("refused")}
	err := fmt.Errorf("trigger: %w", inner)
	// errors.New yields *errors.errorString after full unwrap.
	if got := Classify(err); got != "errors_errorstring" {
		t.Fatalf("Classify = %q", got)
	}
}

func TestClassifyPlainError(t *testing.T) {
	if got := Classify(goerrors.New("boom")); got != "errors_errorstring" {
		t.Fatalf("Classify = %q", got)
	}
}
