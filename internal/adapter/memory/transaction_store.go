package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"currency-exchange-gateway/internal/core/domain"
)

// TransactionStore keeps purchase transactions in memory for the process
// lifetime. Insertion order is preserved; History returns newest-first.
type TransactionStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.PurchaseTransaction
}

// NewTransactionStore creates an empty store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{byID: make(map[string]domain.PurchaseTransaction)}
}

// Append stores a new transaction. A duplicate id is rejected.
func (s *TransactionStore) Append(_ context.Context, tx domain.PurchaseTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[tx.ID]; exists {
		return fmt.Errorf("transaction %s already exists", tx.ID)
	}
	s.byID[tx.ID] = tx
	s.order = append(s.order, tx.ID)
	return nil
}

// UpdateStatus transitions the stored transaction. Returns false (without
// error) when the id is absent or the transition would leave a terminal
// state or otherwise violate the state machine.
func (s *TransactionStore) UpdateStatus(_ context.Context, id string, status domain.TransactionStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	if !tx.Status.CanTransitionTo(status) {
		return false, nil
	}
	tx.Status = status
	s.byID[id] = tx
	return true, nil
}

// History returns all transactions ordered by creation time descending.
// Ties keep reverse insertion order.
func (s *TransactionStore) History(_ context.Context) ([]domain.PurchaseTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PurchaseTransaction, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.byID[s.order[i]])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ByID returns a copy of the transaction, or nil when absent.
func (s *TransactionStore) ByID(_ context.Context, id string) (*domain.PurchaseTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &tx, nil
}
