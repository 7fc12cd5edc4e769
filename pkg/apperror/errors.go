package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Is matches another *AppError by code, so errors.Is(err, ErrUserRejected()) works
// regardless of message or wrapped cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Error codes. Callers compare against these instead of messages.
const (
	CodeProviderUnavailable  = "PRV_001"
	CodeUserRejected         = "PRV_002"
	CodeBindingError         = "SES_001"
	CodeNotConnected         = "SES_002"
	CodeInvalidArgument      = "OPS_001"
	CodeUnsupportedOperation = "OPS_002"
	CodeSubmissionFailed     = "OPS_003"
	CodeOperationReverted    = "OPS_004"
	CodeOperationInProgress  = "OPS_005"
	CodeConfirmationUnknown  = "OPS_006"
	CodeReadFailed           = "CHN_001"
)

// ---- Wallet provider (PRV) ----

func ErrProviderUnavailable(err error) *AppError {
	return Wrap(CodeProviderUnavailable, "No wallet provider available; install or enable a wallet", http.StatusServiceUnavailable, err)
}

func ErrUserRejected(err error) *AppError {
	return Wrap(CodeUserRejected, "Request rejected by the wallet user", http.StatusForbidden, err)
}

// ---- Contract session (SES) ----

func ErrBinding(err error) *AppError {
	return Wrap(CodeBindingError, "Failed to bind contract session", http.StatusBadGateway, err)
}

func ErrNotConnected() *AppError {
	return New(CodeNotConnected, "No contract session bound; connect first", http.StatusConflict)
}

// ---- Operations (OPS) ----

func ErrInvalidArgument(message string) *AppError {
	return New(CodeInvalidArgument, message, http.StatusBadRequest)
}

func ErrUnsupportedOperation(kind string) *AppError {
	return New(CodeUnsupportedOperation, fmt.Sprintf("Unsupported operation %q", kind), http.StatusBadRequest)
}

func ErrSubmissionFailed(err error) *AppError {
	return Wrap(CodeSubmissionFailed, "Transaction submission failed", http.StatusBadGateway, err)
}

// ErrOperationReverted carries the revert reason as the message when the network surfaced one.
func ErrOperationReverted(reason string) *AppError {
	msg := "Transaction reverted"
	if reason != "" {
		msg = "Transaction reverted: " + reason
	}
	return New(CodeOperationReverted, msg, http.StatusUnprocessableEntity)
}

func ErrOperationInProgress() *AppError {
	return New(CodeOperationInProgress, "Another operation is in progress", http.StatusConflict)
}

func ErrConfirmationUnknown(err error) *AppError {
	return Wrap(CodeConfirmationUnknown, "Transaction submitted but confirmation was not observed", http.StatusGatewayTimeout, err)
}

// ---- Chain reads (CHN) ----

func ErrReadFailed(err error) *AppError {
	return Wrap(CodeReadFailed, "Failed to read contract state", http.StatusBadGateway, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrNotFound(entity string) *AppError {
	return New("SYS_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns an OPS_001-style validation error for malformed request bodies.
func Validation(message string) *AppError {
	return New(CodeInvalidArgument, message, http.StatusBadRequest)
}

// HasCode reports whether err, or anything it wraps, is an *AppError with the given code.
func HasCode(err error, code string) bool {
	return errors.Is(err, &AppError{Code: code})
}
