package domain

import (
	"math"
	"time"
)

// CurrencyCode is a 3-letter uppercase ISO-4217 style identifier.
type CurrencyCode string

// Supported currencies, in display order.
const (
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
	GBP CurrencyCode = "GBP"
	JPY CurrencyCode = "JPY"
	CAD CurrencyCode = "CAD"
	AUD CurrencyCode = "AUD"
	CHF CurrencyCode = "CHF"
	CNY CurrencyCode = "CNY"
	INR CurrencyCode = "INR"
	BRL CurrencyCode = "BRL"
	MXN CurrencyCode = "MXN"
)

// Board-only currencies: quoted on the rates board but not tradable.
const (
	NZD CurrencyCode = "NZD"
	SEK CurrencyCode = "SEK"
	NOK CurrencyCode = "NOK"
	DKK CurrencyCode = "DKK"
)

// SupportedCurrencies is the fixed set the gateway quotes and trades.
func SupportedCurrencies() []CurrencyCode {
	return []CurrencyCode{USD, EUR, GBP, JPY, CAD, AUD, CHF, CNY, INR, BRL, MXN}
}

// IsSupported reports whether code is in the supported set.
func (c CurrencyCode) IsSupported() bool {
	for _, s := range SupportedCurrencies() {
		if c == s {
			return true
		}
	}
	return false
}

// RateTable holds exchange rates expressed against a base currency:
// Rates[X] = units of X per 1 unit of Base. The base itself is implicitly 1.0
// and is not required to be stored.
type RateTable struct {
	Base      CurrencyCode             `json:"base"`
	Rates     map[CurrencyCode]float64 `json:"rates"`
	FetchedAt time.Time                `json:"fetched_at"`
}

// Rate returns the direct or derived rate from one currency to another.
// Same-currency is exactly 1.0. If neither leg is the base, the cross rate
// is derived through the base. Returns false when a leg is not quoted.
func (t RateTable) Rate(from, to CurrencyCode) (float64, bool) {
	if from == to {
		return 1.0, true
	}
	if from == t.Base {
		r, ok := t.Rates[to]
		return r, ok
	}
	if to == t.Base {
		r, ok := t.Rates[from]
		if !ok || r == 0 {
			return 0, false
		}
		return 1.0 / r, true
	}
	fromRate, okFrom := t.Rates[from]
	toRate, okTo := t.Rates[to]
	if !okFrom || !okTo || fromRate == 0 {
		return 0, false
	}
	return toRate / fromRate, true
}

// Convert converts amount from one currency to another via Rate.
func (t RateTable) Convert(amount float64, from, to CurrencyCode) (float64, bool) {
	rate, ok := t.Rate(from, to)
	if !ok {
		return 0, false
	}
	return amount * rate, true
}

// Valid reports whether every quoted rate is positive and finite.
func (t RateTable) Valid() bool {
	if t.Base == "" || len(t.Rates) == 0 {
		return false
	}
	for _, r := range t.Rates {
		if r <= 0 || math.IsInf(r, 0) || math.IsNaN(r) {
			return false
		}
	}
	return true
}

// PairRate is a single quoted currency pair, as shown on the rates board.
type PairRate struct {
	From      CurrencyCode `json:"from"`
	To        CurrencyCode `json:"to"`
	Rate      float64      `json:"rate"`
	FetchedAt time.Time    `json:"fetched_at"`
}
