package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Rule       string `json:"-"` // Verification rule id, when the error came from one
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

// ---- Values (VAL) ----

func ErrInvalidValue(err error) *AppError {
	return Wrap("VAL_001", "Invalid value", http.StatusBadRequest, err)
}

func ErrCurrencyMismatch(err error) *AppError {
	return Wrap("VAL_002", "Currency mismatch", http.StatusBadRequest, err)
}

// ---- Transaction verification (TX) ----

func ErrMalformedTransaction(err error) *AppError {
	return Wrap("TX_001", "Malformed transaction", http.StatusUnprocessableEntity, err)
}

func ErrContractViolation(err error) *AppError {
	return Wrap("TX_002", "Contract violation", http.StatusUnprocessableEntity, err)
}

func ErrMissingSignature(err error) *AppError {
	return Wrap("TX_003", "Missing required signature", http.StatusUnprocessableEntity, err)
}

// ---- Signatures (SEC) ----

func ErrMalformedSignature() *AppError {
	return New("SEC_001", "Malformed signature encoding", http.StatusBadRequest)
}

func ErrInvalidSignature() *AppError {
	return New("SEC_002", "Invalid signature", http.StatusUnauthorized)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Verdicts (VRD) ----

func ErrNotFound(entity string) *AppError {
	return New("VRD_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("REQ_001", message, http.StatusBadRequest)
}

// ErrBodyTooLarge is returned when the request body exceeds the configured limit.
func ErrBodyTooLarge() *AppError {
	return New("REQ_002", "Request body too large", http.StatusRequestEntityTooLarge)
}
