// Package errors carries the dashboard's coded errors and the JSON envelopes
// the HTTP layer writes for them.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeInvalidArg     ErrorCode = "INVALID_ARGUMENT"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeRateLimit      ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavail ErrorCode = "SERVICE_UNAVAILABLE"
)

// Codes missing here answer 500.
var statusByCode = map[ErrorCode]int{
	CodeValidation:     http.StatusBadRequest,
	CodeInvalidArg:     http.StatusBadRequest,
	CodeBadRequest:     http.StatusBadRequest,
	CodeRateLimit:      http.StatusTooManyRequests,
	CodeServiceUnavail: http.StatusServiceUnavailable,
}

// Status maps a code to the HTTP status it is answered with.
func (c ErrorCode) Status() int {
	if status, ok := statusByCode[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AppError is a coded failure. Message is safe to show clients; Cause is
// logged but never serialized.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
}

func newError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: code.Status(),
		Cause:      cause,
		Timestamp:  time.Now().UTC(),
	}
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

func InternalWrap(err error, message string) *AppError {
	return newError(CodeInternal, message, err)
}

// Validation rejects a well-formed value that names nothing known, such as
// an unknown region.
func Validation(message string) *AppError {
	return newError(CodeValidation, message, nil)
}

// InvalidArgument reports a caller-supplied parameter outside its domain,
// such as a non-positive day count.
func InvalidArgument(message string) *AppError {
	return newError(CodeInvalidArg, message, nil)
}

// BadRequestWrap reports input that could not be parsed at all.
func BadRequestWrap(err error, message string) *AppError {
	return newError(CodeBadRequest, message, err)
}

func RateLimit(message string) *AppError {
	return newError(CodeRateLimit, message, nil)
}

func ServiceUnavailable(message string) *AppError {
	return newError(CodeServiceUnavail, message, nil)
}

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// CodeOf returns the code of the first AppError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   *AppError `json:"error"`
}

type dataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// WriteError answers with err's envelope stamped with requestID. Errors
// outside the AppError chain are reported as an opaque 500 so their text
// never reaches the client.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error, requestID string) {
	var resp AppError
	if appErr, ok := As(err); ok {
		resp = *appErr
	} else {
		resp = *InternalWrap(err, "An unexpected error occurred")
	}
	resp.RequestID = requestID

	level := slog.LevelWarn
	if resp.StatusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, "request failed",
		"error_code", resp.Code,
		"error_message", resp.Message,
		"status_code", resp.StatusCode,
		"request_id", requestID,
		"cause", resp.Cause,
	)

	if encErr := writeJSON(w, resp.StatusCode, errorEnvelope{Error: &resp}); encErr != nil {
		logger.Error("failed to encode error response", "error", encErr, "request_id", requestID)
	}
}

// WriteSuccess answers 200 with data under the success envelope. Data is
// always present, even when null.
func WriteSuccess(w http.ResponseWriter, data any) {
	_ = writeJSON(w, http.StatusOK, dataEnvelope{Success: true, Data: data})
}

func WriteSuccessWithHeaders(w http.ResponseWriter, data any, headers map[string]string) {
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	WriteSuccess(w, data)
}
