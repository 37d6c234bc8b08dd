package dto

import (
	"strings"

	"currency-exchange-gateway/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
		_ = v.RegisterValidation("account_holder", validateAccountHolder)
	}
}

// validateCurrencyCode accepts the tradable currency set, case insensitive.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := domain.CurrencyCode(strings.ToUpper(fl.Field().String()))
	return code.IsSupported()
}

// validateAccountHolder rejects names that cannot pass domain validation,
// so obviously broken requests fail at binding time.
func validateAccountHolder(fl validator.FieldLevel) bool {
	return domain.ValidateAccountHolderName(strings.TrimSpace(fl.Field().String()))
}
