package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New("VAL_001", "bad amount", http.StatusBadRequest)
	assert.Equal(t, "[VAL_001] bad amount", e.Error())
}

func TestAppError_Error_Wrapped(t *testing.T) {
	inner := errors.New("boom")
	e := Wrap("SYS_001", "internal", http.StatusInternalServerError, inner)
	assert.Equal(t, "[SYS_001] internal: boom", e.Error())
	assert.Equal(t, inner, e.Unwrap())
}

func TestAppError_ErrorsAs(t *testing.T) {
	var appErr *AppError
	err := fmt.Errorf("outer: %w", ErrRateNotAvailable())
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "RATE_001", appErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
}

func TestValidationErrors_Codes(t *testing.T) {
	assert.Equal(t, "VAL_001", ErrInvalidAmount().Code)
	assert.Equal(t, "VAL_004", ErrSameCurrency().Code)
	assert.Equal(t, "VAL_008", ErrInvalidRoutingNumber().Code)
	assert.Equal(t, http.StatusUnprocessableEntity, ErrAmountExceedsLimit(10000).HTTPStatus)
	assert.Contains(t, ErrAmountExceedsLimit(10000).Message, "10000.00")
	assert.Contains(t, ErrUnsupportedCurrency("XXX").Message, "XXX")
}

func TestPaymentFailed_WrapsCause(t *testing.T) {
	cause := errors.New("authorization declined")
	e := ErrPaymentFailed(cause)
	assert.Equal(t, "PAY_001", e.Code)
	assert.ErrorIs(t, e, cause)
}
