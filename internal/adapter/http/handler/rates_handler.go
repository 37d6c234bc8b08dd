package handler

import (
	"strconv"
	"strings"

	"currency-exchange-gateway/internal/adapter/http/dto"
	"currency-exchange-gateway/internal/core/domain"
	"currency-exchange-gateway/internal/core/ports"
	"currency-exchange-gateway/pkg/apperror"
	"currency-exchange-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// RatesHandler handles exchange-rate endpoints.
type RatesHandler struct {
	rateSvc ports.RateService
}

// NewRatesHandler creates a new RatesHandler.
func NewRatesHandler(rateSvc ports.RateService) *RatesHandler {
	return &RatesHandler{rateSvc: rateSvc}
}

// GetRates handles GET /api/v1/rates?base=USD.
func (h *RatesHandler) GetRates(c *gin.Context) {
	base, ok := currencyQuery(c, "base", true)
	if !ok {
		return
	}

	table, err := h.rateSvc.FetchRates(c.Request.Context(), base)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromRateTable(table, h.rateSvc.Snapshot().Message))
}

// GetPairRate handles GET /api/v1/rates/pair?from=EUR&to=USD.
func (h *RatesHandler) GetPairRate(c *gin.Context) {
	from, ok := currencyQuery(c, "from", false)
	if !ok {
		return
	}
	to, ok := currencyQuery(c, "to", false)
	if !ok {
		return
	}

	// Pair lookups read the current table; make sure one exists.
	if _, err := h.rateSvc.FetchRates(c.Request.Context(), ""); err != nil {
		response.Error(c, err)
		return
	}

	rate, ok := h.rateSvc.GetRate(from, to)
	if !ok {
		response.Error(c, apperror.ErrRateNotAvailable())
		return
	}

	response.OK(c, dto.PairRateResponse{From: string(from), To: string(to), Rate: rate})
}

// Convert handles GET /api/v1/rates/convert?amount=100&from=USD&to=EUR.
func (h *RatesHandler) Convert(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount <= 0 {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}
	from, ok := currencyQuery(c, "from", false)
	if !ok {
		return
	}
	to, ok := currencyQuery(c, "to", false)
	if !ok {
		return
	}

	if _, err := h.rateSvc.FetchRates(c.Request.Context(), ""); err != nil {
		response.Error(c, err)
		return
	}

	rate, found := h.rateSvc.GetRate(from, to)
	if !found {
		response.Error(c, apperror.ErrRateNotAvailable())
		return
	}

	response.OK(c, dto.ConvertResponse{
		From:      string(from),
		To:        string(to),
		Amount:    amount,
		Rate:      rate,
		Converted: amount * rate,
	})
}

// GetBoard handles GET /api/v1/rates/board.
func (h *RatesHandler) GetBoard(c *gin.Context) {
	board, err := h.rateSvc.PairBoard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromPairRates(board))
}

// currencyQuery reads and validates a currency code query parameter.
// Optional parameters may be absent; present values must be supported codes.
func currencyQuery(c *gin.Context, name string, optional bool) (domain.CurrencyCode, bool) {
	raw := strings.ToUpper(strings.TrimSpace(c.Query(name)))
	if raw == "" {
		if optional {
			return "", true
		}
		response.Error(c, apperror.ErrInvalidCurrency())
		return "", false
	}
	code := domain.CurrencyCode(raw)
	if !code.IsSupported() {
		response.Error(c, apperror.ErrUnsupportedCurrency(raw))
		return "", false
	}
	return code, true
}
