package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"currency-exchange-gateway/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(base domain.CurrencyCode, fetchedAt time.Time) domain.RateTable {
	return domain.RateTable{
		Base:      base,
		Rates:     map[domain.CurrencyCode]float64{domain.EUR: 0.92},
		FetchedAt: fetchedAt,
	}
}

func TestRateCache_GetMissing(t *testing.T) {
	c := NewRateCache()
	_, ok := c.Get(domain.USD)
	assert.False(t, ok)
	assert.False(t, c.IsFresh(domain.USD, time.Now(), time.Hour))
}

func TestRateCache_FreshnessWindow(t *testing.T) {
	c := NewRateCache()
	at := time.Now()
	c.Put(table(domain.USD, at))

	assert.True(t, c.IsFresh(domain.USD, at.Add(3599*time.Second), time.Hour))
	assert.False(t, c.IsFresh(domain.USD, at.Add(3601*time.Second), time.Hour))
	assert.False(t, c.IsFresh(domain.USD, at.Add(3600*time.Second), time.Hour), "window is strict")
}

func TestRateCache_StaleEntryStillReadable(t *testing.T) {
	c := NewRateCache()
	at := time.Now().Add(-2 * time.Hour)
	c.Put(table(domain.USD, at))

	got, ok := c.Get(domain.USD)
	require.True(t, ok, "stale entries are not evicted")
	assert.Equal(t, at, got.FetchedAt)
}

func TestRateCache_PutOverwrites(t *testing.T) {
	c := NewRateCache()
	c.Put(table(domain.USD, time.Now().Add(-time.Hour)))
	newer := time.Now()
	c.Put(table(domain.USD, newer))

	got, ok := c.Get(domain.USD)
	require.True(t, ok)
	assert.Equal(t, newer, got.FetchedAt)
}

func TestRateCache_PerBaseEntries(t *testing.T) {
	c := NewRateCache()
	c.Put(table(domain.USD, time.Now()))
	c.Put(table(domain.EUR, time.Now()))

	_, okUSD := c.Get(domain.USD)
	_, okEUR := c.Get(domain.EUR)
	assert.True(t, okUSD)
	assert.True(t, okEUR)
}

func newTx(id string, createdAt time.Time) domain.PurchaseTransaction {
	return domain.PurchaseTransaction{
		ID:           id,
		FromCurrency: domain.USD,
		ToCurrency:   domain.EUR,
		Amount:       100,
		Status:       domain.TransactionStatusPending,
		CreatedAt:    createdAt,
	}
}

func TestTransactionStore_AppendAndByID(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, newTx("a", time.Now())))

	got, err := s.ByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)

	missing, err := s.ByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTransactionStore_DuplicateIDRejected(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, newTx("a", time.Now())))
	assert.Error(t, s.Append(ctx, newTx("a", time.Now())))
}

func TestTransactionStore_HistoryNewestFirst(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, s.Append(ctx, newTx("first", base)))
	require.NoError(t, s.Append(ctx, newTx("second", base.Add(time.Second))))
	require.NoError(t, s.Append(ctx, newTx("third", base.Add(2*time.Second))))

	hist, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, "third", hist[0].ID)
	assert.Equal(t, "second", hist[1].ID)
	assert.Equal(t, "first", hist[2].ID)
}

func TestTransactionStore_UpdateStatus(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, newTx("a", time.Now())))

	ok, err := s.UpdateStatus(ctx, "a", domain.TransactionStatusProcessing)
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := s.ByID(ctx, "a")
	assert.Equal(t, domain.TransactionStatusProcessing, got.Status)
}

func TestTransactionStore_UpdateStatus_AbsentIDIsNoop(t *testing.T) {
	s := NewTransactionStore()
	ok, err := s.UpdateStatus(context.Background(), "ghost", domain.TransactionStatusCompleted)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransactionStore_UpdateStatus_TerminalIsFrozen(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, newTx("a", time.Now())))

	_, _ = s.UpdateStatus(ctx, "a", domain.TransactionStatusProcessing)
	_, _ = s.UpdateStatus(ctx, "a", domain.TransactionStatusCompleted)

	ok, err := s.UpdateStatus(ctx, "a", domain.TransactionStatusFailed)
	require.NoError(t, err)
	assert.False(t, ok)

	got, _ := s.ByID(ctx, "a")
	assert.Equal(t, domain.TransactionStatusCompleted, got.Status)
}

func TestTransactionStore_ByIDReturnsCopy(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, newTx("a", time.Now())))

	got, _ := s.ByID(ctx, "a")
	got.Status = domain.TransactionStatusFailed

	again, _ := s.ByID(ctx, "a")
	assert.Equal(t, domain.TransactionStatusPending, again.Status, "mutating the returned copy must not affect the store")
}

func TestTransactionStore_ConcurrentAppends(t *testing.T) {
	s := NewTransactionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.Append(ctx, newTx(fmt.Sprintf("tx-%d", n), time.Now()))
		}(i)
	}
	wg.Wait()

	hist, err := s.History(ctx)
	require.NoError(t, err)
	assert.Len(t, hist, 50)
}
