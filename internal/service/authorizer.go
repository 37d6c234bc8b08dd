package service

import (
	"context"
	"time"

	"currency-exchange-gateway/internal/core/domain"
)

// SimulatedAuthorizer stands in for the payment rail. It waits the
// configured authorization delay and approves. Failure behavior lives
// behind the PaymentAuthorizer port so callers can swap in a declining
// implementation.
type SimulatedAuthorizer struct {
	delay time.Duration
}

// NewSimulatedAuthorizer creates an authorizer with the given processing delay.
func NewSimulatedAuthorizer(delay time.Duration) *SimulatedAuthorizer {
	return &SimulatedAuthorizer{delay: delay}
}

// Authorize waits the processing delay, honoring cancellation.
func (a *SimulatedAuthorizer) Authorize(ctx context.Context, _ domain.PurchaseTransaction) error {
	if a.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(a.delay):
		return nil
	}
}
