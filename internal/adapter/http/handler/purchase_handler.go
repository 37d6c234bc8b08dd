package handler

import (
	"errors"
	"fmt"

	"currency-exchange-gateway/internal/adapter/http/dto"
	"currency-exchange-gateway/internal/core/domain"
	"currency-exchange-gateway/internal/core/ports"
	"currency-exchange-gateway/pkg/apperror"
	"currency-exchange-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// PurchaseHandler handles currency purchase endpoints.
type PurchaseHandler struct {
	purchaseSvc ports.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseSvc ports.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseSvc: purchaseSvc}
}

// CreatePurchase handles POST /api/v1/purchases.
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	tx, err := h.purchaseSvc.Purchase(c.Request.Context(), ports.PurchaseRequest{
		Amount:       req.Amount,
		FromCurrency: domain.CurrencyCode(req.FromCurrency),
		ToCurrency:   domain.CurrencyCode(req.ToCurrency),
		BankAccount:  req.BankAccount.ToDomain(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromTransaction(*tx))
}

// ListPurchases handles GET /api/v1/purchases.
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	history, err := h.purchaseSvc.History(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromTransactions(history))
}

// GetPurchase handles GET /api/v1/purchases/:id.
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	tx, err := h.purchaseSvc.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if tx == nil {
		response.Error(c, apperror.ErrNotFound("transaction"))
		return
	}
	response.OK(c, dto.FromTransaction(*tx))
}

// bindError maps custom binding tag failures onto the domain error codes,
// so the same input fails the same way at the edge and in the service.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "currency_code":
				return apperror.ErrUnsupportedCurrency(fmt.Sprint(fe.Value()))
			case "account_holder":
				return apperror.ErrInvalidAccountHolderName()
			}
		}
	}
	return apperror.Validation(err.Error())
}

// ListCurrencies handles GET /api/v1/currencies.
func (h *PurchaseHandler) ListCurrencies(c *gin.Context) {
	codes := h.purchaseSvc.SupportedCurrencies()
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		out = append(out, string(code))
	}
	response.OK(c, dto.CurrencyListResponse{Currencies: out})
}
