package ratesource

import (
	"context"
	"time"

	"currency-exchange-gateway/internal/core/domain"
)

// usdRates are approximate rates relative to USD, used as the terminal tier
// of the acquisition chain. Deliberately coarse: this tier exists so that
// FetchRates always yields some table.
var usdRates = map[domain.CurrencyCode]float64{
	domain.EUR: 0.92,
	domain.GBP: 0.79,
	domain.JPY: 149.50,
	domain.CAD: 1.36,
	domain.AUD: 1.52,
	domain.CHF: 0.88,
	domain.CNY: 7.24,
	domain.INR: 83.15,
	domain.BRL: 5.12,
	domain.MXN: 17.45,
}

// StaticSource returns the hardcoded fallback table. It never fails.
type StaticSource struct {
	now func() time.Time
}

// NewStaticSource creates the terminal fallback source.
func NewStaticSource() *StaticSource {
	return &StaticSource{now: time.Now}
}

func (s *StaticSource) Name() string { return "static" }

// Fetch returns the USD-relative table, rebased when base != USD by dividing
// every rate by the base currency's USD-relative rate. An unknown base
// degrades to baseRate 1.0 rather than failing.
func (s *StaticSource) Fetch(_ context.Context, base domain.CurrencyCode) (domain.RateTable, error) {
	fetchedAt := s.now()

	if base == domain.USD {
		rates := make(map[domain.CurrencyCode]float64, len(usdRates))
		for c, r := range usdRates {
			rates[c] = r
		}
		return domain.RateTable{Base: base, Rates: rates, FetchedAt: fetchedAt}, nil
	}

	baseRate, ok := usdRates[base]
	if !ok || baseRate <= 0 {
		baseRate = 1.0
	}

	rates := make(map[domain.CurrencyCode]float64, len(usdRates))
	for c, r := range usdRates {
		if c == base {
			continue
		}
		rates[c] = r / baseRate
	}
	rates[domain.USD] = 1.0 / baseRate

	return domain.RateTable{Base: base, Rates: rates, FetchedAt: fetchedAt}, nil
}

// Table is a convenience for other sources that degrade to the static table.
func (s *StaticSource) Table(base domain.CurrencyCode) domain.RateTable {
	t, _ := s.Fetch(context.Background(), base)
	return t
}
