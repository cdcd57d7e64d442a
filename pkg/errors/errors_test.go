package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Validation("v"), http.StatusBadRequest},
		{BadRequest("b"), http.StatusBadRequest},
		{InvalidFileType("f"), http.StatusBadRequest},
		{Unauthorized("u"), http.StatusUnauthorized},
		{Forbidden("f"), http.StatusForbidden},
		{NotFound("n"), http.StatusNotFound},
		{CustomerNotFound(), http.StatusNotFound},
		{OrderNotFound(), http.StatusNotFound},
		{ProductNotFound(), http.StatusNotFound},
		{Conflict("c"), http.StatusConflict},
		{EmailExists(), http.StatusConflict},
		{TooManyRequests("t"), http.StatusTooManyRequests},
		{Storage(stderrors.New("disk"), "s"), http.StatusInternalServerError},
		{Internal("i"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.HTTPStatusCode(); got != tt.want {
			t.Errorf("%s maps to %d, want %d", tt.err.Code, got, tt.want)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Storage(cause, "failed to save file")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause lost")
	}
	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, CodeStorage) {
		t.Error("code lost through further wrapping")
	}
}

func TestAsAppError(t *testing.T) {
	app := OrderNotFound()
	if got := AsAppError(app); got != app {
		t.Error("AsAppError changed an existing AppError")
	}

	raw := stderrors.New("driver exploded")
	got := AsAppError(raw)
	if got.Code != CodeInternal {
		t.Errorf("unknown error code = %v, want INTERNAL_ERROR", got.Code)
	}
	if got.Message != "internal server error" {
		t.Errorf("unknown error message = %q, must not leak detail", got.Message)
	}
	if !stderrors.Is(got, raw) {
		t.Error("original error not preserved for logging")
	}
}

func TestIs(t *testing.T) {
	if !Is(EmailExists(), CodeEmailExists) {
		t.Error("Is() missed matching code")
	}
	if Is(EmailExists(), CodeOrderNotFound) {
		t.Error("Is() matched wrong code")
	}
	if Is(stderrors.New("plain"), CodeInternal) {
		t.Error("Is() matched non-AppError")
	}
	if Is(nil, CodeInternal) {
		t.Error("Is() matched nil")
	}
}
