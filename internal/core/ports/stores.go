package ports

import (
	"context"
	"time"

	"currency-exchange-gateway/internal/core/domain"
)

// RateCache stores one rate table per base currency with its fetch time.
// Stale entries are not evicted, only superseded by the next Put.
type RateCache interface {
	// Get returns the cached table regardless of freshness.
	Get(base domain.CurrencyCode) (domain.RateTable, bool)
	// IsFresh reports whether an entry exists and now - fetch time < ttl.
	IsFresh(base domain.CurrencyCode, now time.Time, ttl time.Duration) bool
	// Put overwrites any existing entry for the table's base.
	Put(table domain.RateTable)
}

// TransactionStore owns purchase transactions once created. Insertion order
// is preserved; History returns newest-first.
type TransactionStore interface {
	Append(ctx context.Context, tx domain.PurchaseTransaction) error
	// UpdateStatus transitions the stored transaction. Returns false when the
	// id is absent or the transition violates the state machine.
	UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) (bool, error)
	History(ctx context.Context) ([]domain.PurchaseTransaction, error)
	ByID(ctx context.Context, id string) (*domain.PurchaseTransaction, error)
}
