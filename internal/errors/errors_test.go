package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{InternalWrap(io.EOF, "x"), http.StatusInternalServerError},
		{Validation("x"), http.StatusBadRequest},
		{InvalidArgument("x"), http.StatusBadRequest},
		{BadRequestWrap(io.EOF, "x"), http.StatusBadRequest},
		{RateLimit("x"), http.StatusTooManyRequests},
		{ServiceUnavailable("x"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			if tt.err.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", tt.err.StatusCode, tt.want)
			}
		})
	}
}

func TestErrorCode_StatusUnknownIsInternal(t *testing.T) {
	if got := ErrorCode("SOMETHING_ELSE").Status(); got != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", got)
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("generate dataset: %w", InvalidArgument("num_days must be positive"))
	if got := CodeOf(wrapped); got != CodeInvalidArg {
		t.Errorf("CodeOf(wrapped) = %s, want %s", got, CodeInvalidArg)
	}

	if got := CodeOf(io.EOF); got != CodeInternal {
		t.Errorf("CodeOf(plain) = %s, want %s", got, CodeInternal)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := BadRequestWrap(io.ErrUnexpectedEOF, "bad input")
	if err.Unwrap() != io.ErrUnexpectedEOF {
		t.Error("Unwrap should return the cause")
	}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestWriteError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app error", Validation("unknown region"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrapped app error", fmt.Errorf("ctx: %w", InvalidArgument("bad")), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"plain error", io.EOF, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, logger, tt.err, "req-1")

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code      string `json:"code"`
					RequestID string `json:"request_id"`
				} `json:"error"`
			}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success {
				t.Error("expected success=false")
			}
			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
			if body.Error.RequestID != "req-1" {
				t.Errorf("request_id = %q", body.Error.RequestID)
			}
		})
	}
}

func TestWriteError_LeavesSharedErrorUntouched(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	shared := ServiceUnavailable("dataset not loaded")

	WriteError(httptest.NewRecorder(), logger, shared, "req-1")
	w := httptest.NewRecorder()
	WriteError(w, logger, shared, "req-2")

	if shared.RequestID != "" {
		t.Errorf("shared error was stamped with %q", shared.RequestID)
	}
	if !strings.Contains(w.Body.String(), `"request_id":"req-2"`) {
		t.Errorf("body should carry the second request id: %s", w.Body.String())
	}
}

func TestWriteError_HidesPlainErrorText(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := httptest.NewRecorder()
	WriteError(w, logger, fmt.Errorf("open /var/data/secret.db: permission denied"), "req-1")

	if strings.Contains(w.Body.String(), "secret.db") {
		t.Errorf("cause leaked into body: %s", w.Body.String())
	}
}

func TestWriteSuccess_NullData(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, nil)

	if got := strings.TrimSpace(w.Body.String()); got != `{"success":true,"data":null}` {
		t.Errorf("body = %s", got)
	}
}

func TestWriteSuccessWithHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessWithHeaders(w, []int{1, 2}, map[string]string{"Cache-Control": "no-store"})

	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("cache-control = %q", cc)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}
}
