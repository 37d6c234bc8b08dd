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

// ---- Purchase Validation (VAL) ----

func ErrInvalidAmount() *AppError {
	return New("VAL_001", "Invalid amount. Please enter a positive value", http.StatusBadRequest)
}

func ErrAmountExceedsLimit(limit float64) *AppError {
	return New("VAL_002", fmt.Sprintf("Amount exceeds daily limit of %.2f", limit), http.StatusUnprocessableEntity)
}

func ErrInvalidCurrency() *AppError {
	return New("VAL_003", "Invalid currency selection", http.StatusBadRequest)
}

func ErrSameCurrency() *AppError {
	return New("VAL_004", "Cannot exchange between the same currency", http.StatusBadRequest)
}

func ErrUnsupportedCurrency(code string) *AppError {
	return New("VAL_005", fmt.Sprintf("Currency %s is not supported", code), http.StatusBadRequest)
}

func ErrInvalidBankAccount() *AppError {
	return New("VAL_006", "Invalid bank account information", http.StatusBadRequest)
}

func ErrInvalidAccountNumber() *AppError {
	return New("VAL_007", "Invalid account number format", http.StatusBadRequest)
}

func ErrInvalidRoutingNumber() *AppError {
	return New("VAL_008", "Invalid routing number", http.StatusBadRequest)
}

func ErrInvalidAccountHolderName() *AppError {
	return New("VAL_009", "Invalid account holder name", http.StatusBadRequest)
}

// ---- Rate Acquisition (RATE) ----

func ErrRateNotAvailable() *AppError {
	return New("RATE_001", "Exchange rate not available. Please try again", http.StatusServiceUnavailable)
}

func ErrRateSourcesExhausted(err error) *AppError {
	return Wrap("RATE_002", "All live rate sources failed", http.StatusServiceUnavailable, err)
}

// ---- Payment Processing (PAY) ----

func ErrPaymentFailed(err error) *AppError {
	return Wrap("PAY_001", "Payment processing failed. Please try again", http.StatusPaymentRequired, err)
}

func ErrNotFound(entity string) *AppError {
	return New("PAY_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request-binding validation error.
func Validation(message string) *AppError {
	return New("VAL_000", message, http.StatusBadRequest)
}
