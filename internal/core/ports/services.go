package ports

import (
	"context"
	"time"

	"currency-exchange-gateway/internal/core/domain"
)

// RateService is the exchange-rate engine consumed by the purchase workflow
// and the HTTP layer.
type RateService interface {
	// FetchRates returns the rate table for base, serving the cache while
	// fresh and running the source chain otherwise.
	FetchRates(ctx context.Context, base domain.CurrencyCode) (domain.RateTable, error)
	// GetRate returns the rate from one currency to another, derived through
	// the engine's current table. ok is false when the pair is not quotable.
	GetRate(from, to domain.CurrencyCode) (rate float64, ok bool)
	// ConvertAmount converts amount via GetRate.
	ConvertAmount(amount float64, from, to domain.CurrencyCode) (converted float64, ok bool)
	// PairBoard fetches the scraped major-pair board.
	PairBoard(ctx context.Context) ([]domain.PairRate, error)
	// Snapshot returns the engine's observable state.
	Snapshot() RateSnapshot
}

// RateSnapshot is the observable state the UI layer polls or renders.
type RateSnapshot struct {
	Table   domain.RateTable `json:"table"`
	Loading bool             `json:"loading"`
	Message string           `json:"message,omitempty"` // last user-facing degraded-service notice
}

// PurchaseService drives the purchase workflow.
type PurchaseService interface {
	Purchase(ctx context.Context, req PurchaseRequest) (*domain.PurchaseTransaction, error)
	History(ctx context.Context) ([]domain.PurchaseTransaction, error)
	ByID(ctx context.Context, id string) (*domain.PurchaseTransaction, error)
	SupportedCurrencies() []domain.CurrencyCode
}

// PurchaseRequest holds validated input for a currency purchase.
type PurchaseRequest struct {
	Amount       float64
	FromCurrency domain.CurrencyCode
	ToCurrency   domain.CurrencyCode
	BankAccount  domain.BankAccount
}

// PaymentAuthorizer simulates (or fronts) the payment rail authorization step.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, tx domain.PurchaseTransaction) error
}

// FeeCalculator computes the transaction fee for a purchase amount.
// Defined for amount >= 0; callers reject non-positive amounts beforehand.
type FeeCalculator interface {
	Fee(amount float64) float64
}

// EventPublisher publishes observable state changes.
type EventPublisher interface {
	Publish(event domain.Event)
}

// EventSubscriber hands out subscription channels for state changes.
type EventSubscriber interface {
	// Subscribe returns a receive channel and a cancel func that closes it.
	Subscribe() (<-chan domain.Event, func())
}

// Clock abstracts time for freshness checks in tests.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
