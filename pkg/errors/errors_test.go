package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("boom")
	err := Wrap(internal, "failed")

	if err.Error() != "failed: boom" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
	if !stdErrors.Is(err, internal) {
		t.Fatal("expected wrapped error to match errors.Is")
	}
}

func TestWithInternalCopies(t *testing.T) {
	base := New("TEST", "test", http.StatusBadRequest)
	with := base.WithInternal(stdErrors.New("oops"))

	if with == base {
		t.Fatal("expected WithInternal to return a copy")
	}
	if base.Internal != nil {
		t.Fatal("expected original error to remain unchanged")
	}
	if with.Internal == nil {
		t.Fatal("expected internal error to be set")
	}
}

func TestFromError(t *testing.T) {
	if out := FromError(ErrForbidden); out != ErrForbidden {
		t.Fatal("expected FromError to return the same AppError instance")
	}

	raw := stdErrors.New("raw")
	out := FromError(raw)
	if out.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server code, got %s", out.Code)
	}
	if out.Internal == nil {
		t.Fatal("expected internal error to be attached")
	}

	if FromError(nil) != nil {
		t.Fatal("expected nil for nil input")
	}
}

func TestAuthFailuresShareGenericShape(t *testing.T) {
	if ErrInvalidCredentials.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", ErrInvalidCredentials.StatusCode)
	}
	if ErrUnauthorized.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", ErrUnauthorized.StatusCode)
	}
	if ErrForbidden.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected status: %d", ErrForbidden.StatusCode)
	}
}
