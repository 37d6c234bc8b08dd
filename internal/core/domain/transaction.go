package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is the lifecycle state of a currency purchase.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "Pending"
	TransactionStatusProcessing TransactionStatus = "Processing"
	TransactionStatusCompleted  TransactionStatus = "Completed"
	TransactionStatusFailed     TransactionStatus = "Failed"
)

// IsTerminal returns true if the status is final.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// CanTransitionTo enforces the purchase state machine:
// Pending → Processing → Completed, with Failed reachable from any
// non-terminal state. Nothing leaves a terminal state.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case TransactionStatusPending:
		return next == TransactionStatusProcessing || next == TransactionStatusFailed
	case TransactionStatusProcessing:
		return next == TransactionStatusCompleted || next == TransactionStatusFailed
	}
	return false
}

// PurchaseTransaction is a currency purchase record. ExchangeRate and
// TotalCost are snapshots frozen at quote time.
type PurchaseTransaction struct {
	ID           string            `json:"id"`
	FromCurrency CurrencyCode      `json:"from_currency"`
	ToCurrency   CurrencyCode      `json:"to_currency"`
	Amount       float64           `json:"amount"`
	ExchangeRate float64           `json:"exchange_rate"`
	Fee          float64           `json:"fee"`
	TotalCost    float64           `json:"total_cost"`
	BankAccount  BankAccount       `json:"bank_account"`
	CreatedAt    time.Time         `json:"created_at"`
	Status       TransactionStatus `json:"status"`
}

// NewTransactionID returns a unique opaque transaction id.
func NewTransactionID() string {
	return uuid.New().String()
}

// AccountLast4 returns the last four digits of the destination account,
// for notification and log output.
func (t PurchaseTransaction) AccountLast4() string {
	n := t.BankAccount.AccountNumber
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}
