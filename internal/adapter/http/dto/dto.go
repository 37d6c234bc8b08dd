package dto

import (
	"time"

	"currency-exchange-gateway/internal/core/domain"
)

// BankAccountRequest is the destination account block of a purchase request.
type BankAccountRequest struct {
	AccountNumber     string `json:"account_number" binding:"required"`
	RoutingNumber     string `json:"routing_number" binding:"required"`
	AccountHolderName string `json:"account_holder_name" binding:"required,account_holder"`
	BankName          string `json:"bank_name" binding:"required"`
	AccountType       string `json:"account_type" binding:"omitempty,oneof=Checking Savings"`
}

// PurchaseRequest is the request body for currency purchases. Binding tags
// stop malformed JSON at the door; business validation lives in the service.
type PurchaseRequest struct {
	Amount       float64            `json:"amount" binding:"required"`
	FromCurrency string             `json:"from_currency" binding:"required,currency_code"`
	ToCurrency   string             `json:"to_currency" binding:"required,currency_code"`
	BankAccount  BankAccountRequest `json:"bank_account" binding:"required"`
}

// ToDomain converts the request account into the domain type.
func (r BankAccountRequest) ToDomain() domain.BankAccount {
	accountType := domain.AccountType(r.AccountType)
	if accountType == "" {
		accountType = domain.AccountTypeChecking
	}
	return domain.BankAccount{
		AccountNumber:     r.AccountNumber,
		RoutingNumber:     r.RoutingNumber,
		AccountHolderName: r.AccountHolderName,
		BankName:          r.BankName,
		AccountType:       accountType,
	}
}

// TransactionResponse is the response body for purchase results.
type TransactionResponse struct {
	ID           string  `json:"id"`
	FromCurrency string  `json:"from_currency"`
	ToCurrency   string  `json:"to_currency"`
	Amount       float64 `json:"amount"`
	ExchangeRate float64 `json:"exchange_rate"`
	Fee          float64 `json:"fee"`
	TotalCost    float64 `json:"total_cost"`
	AccountLast4 string  `json:"account_last4"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

// FromTransaction converts a domain transaction, masking the bank account.
func FromTransaction(tx domain.PurchaseTransaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		FromCurrency: string(tx.FromCurrency),
		ToCurrency:   string(tx.ToCurrency),
		Amount:       tx.Amount,
		ExchangeRate: tx.ExchangeRate,
		Fee:          tx.Fee,
		TotalCost:    tx.TotalCost,
		AccountLast4: tx.AccountLast4(),
		Status:       string(tx.Status),
		CreatedAt:    tx.CreatedAt.Format(time.RFC3339),
	}
}

// FromTransactions converts a history slice preserving order.
func FromTransactions(txs []domain.PurchaseTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, FromTransaction(tx))
	}
	return out
}

// RateTableResponse is the response body for a base-currency rate table.
type RateTableResponse struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt string             `json:"fetched_at"`
	Degraded  bool               `json:"degraded"`
	Message   string             `json:"message,omitempty"`
}

// FromRateTable converts a domain table plus the engine's degradation notice.
func FromRateTable(table domain.RateTable, message string) RateTableResponse {
	rates := make(map[string]float64, len(table.Rates))
	for code, rate := range table.Rates {
		rates[string(code)] = rate
	}
	return RateTableResponse{
		Base:      string(table.Base),
		Rates:     rates,
		FetchedAt: table.FetchedAt.UTC().Format(time.RFC3339),
		Degraded:  message != "",
		Message:   message,
	}
}

// PairRateResponse is one entry of the major-pair board, or the result of a
// single pair lookup.
type PairRateResponse struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

// FromPairRates converts a scraped board preserving order.
func FromPairRates(pairs []domain.PairRate) []PairRateResponse {
	out := make([]PairRateResponse, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, PairRateResponse{From: string(p.From), To: string(p.To), Rate: p.Rate})
	}
	return out
}

// ConvertResponse is the response body for amount conversion.
type ConvertResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Rate      float64 `json:"rate"`
	Converted float64 `json:"converted"`
}

// CurrencyListResponse lists the tradable currency codes.
type CurrencyListResponse struct {
	Currencies []string `json:"currencies"`
}
