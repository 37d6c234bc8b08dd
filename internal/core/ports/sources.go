package ports

import (
	"context"

	"currency-exchange-gateway/internal/core/domain"
)

// RateSource is one provider in the acquisition chain. Implementations
// return a full rate table for the base currency or a typed error.
type RateSource interface {
	// Name identifies the source in logs and metrics.
	Name() string
	Fetch(ctx context.Context, base domain.CurrencyCode) (domain.RateTable, error)
}

// PairSource fetches individual currency pairs, used for the scraped board.
type PairSource interface {
	FetchPairRates(ctx context.Context, pairs []Pair) ([]domain.PairRate, error)
}

// Pair is an ordered currency pair request.
type Pair struct {
	From domain.CurrencyCode
	To   domain.CurrencyCode
}
