package service

import (
	"context"
	"sync"
	"time"

	"currency-exchange-gateway/config"
	"currency-exchange-gateway/internal/core/domain"
	"currency-exchange-gateway/internal/core/ports"
	"currency-exchange-gateway/internal/metrics"
	"currency-exchange-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// PurchaseWorkflow drives a currency purchase through validation, quoting,
// simulated payment authorization, and detached settlement.
type PurchaseWorkflow struct {
	cfg        config.PurchaseConfig
	rates      ports.RateService
	store      ports.TransactionStore
	fees       ports.FeeCalculator
	authorizer ports.PaymentAuthorizer
	hub        *EventHub
	met        *metrics.Metrics
	log        zerolog.Logger
	clock      ports.Clock

	settlements sync.WaitGroup
	stopOnce    sync.Once
	stop        chan struct{}
}

// NewPurchaseWorkflow creates the workflow.
func NewPurchaseWorkflow(
	cfg config.PurchaseConfig,
	rates ports.RateService,
	store ports.TransactionStore,
	fees ports.FeeCalculator,
	authorizer ports.PaymentAuthorizer,
	hub *EventHub,
	met *metrics.Metrics,
	log zerolog.Logger,
) *PurchaseWorkflow {
	return &PurchaseWorkflow{
		cfg:        cfg,
		rates:      rates,
		store:      store,
		fees:       fees,
		authorizer: authorizer,
		hub:        hub,
		met:        met,
		log:        log,
		clock:      ports.ClockFunc(time.Now),
		stop:       make(chan struct{}),
	}
}

// Purchase validates the request, quotes the pair, authorizes payment, and
// stores the transaction in Processing. Settlement runs detached; callers
// observe completion through the store or the event stream.
func (w *PurchaseWorkflow) Purchase(ctx context.Context, req ports.PurchaseRequest) (*domain.PurchaseTransaction, error) {
	if err := w.validate(req); err != nil {
		w.met.PurchasesTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	rate, ok := w.rates.GetRate(req.FromCurrency, req.ToCurrency)
	if !ok {
		w.met.PurchasesTotal.WithLabelValues("no_rate").Inc()
		return nil, apperror.ErrRateNotAvailable()
	}

	// Snapshot point: rate and cost are frozen from here on.
	fee := w.fees.Fee(req.Amount)
	tx := domain.PurchaseTransaction{
		ID:           domain.NewTransactionID(),
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		Amount:       req.Amount,
		ExchangeRate: rate,
		Fee:          fee,
		TotalCost:    req.Amount + fee,
		BankAccount:  req.BankAccount,
		CreatedAt:    w.clock.Now().UTC(),
		Status:       domain.TransactionStatusPending,
	}

	if err := w.authorizer.Authorize(ctx, tx); err != nil {
		// Failed authorizations are never stored.
		w.met.PurchasesTotal.WithLabelValues("payment_failed").Inc()
		w.log.Warn().Err(err).Str("tx_id", tx.ID).Msg("payment authorization failed")
		return nil, apperror.ErrPaymentFailed(err)
	}

	tx.Status = domain.TransactionStatusProcessing
	if err := w.store.Append(ctx, tx); err != nil {
		return nil, apperror.InternalError(err)
	}
	w.met.PurchasesTotal.WithLabelValues("accepted").Inc()
	w.publishTx(tx)

	w.settlements.Add(1)
	go w.settle(tx)

	w.log.Info().
		Str("tx_id", tx.ID).
		Str("from", string(tx.FromCurrency)).
		Str("to", string(tx.ToCurrency)).
		Float64("amount", tx.Amount).
		Float64("total_cost", tx.TotalCost).
		Msg("purchase accepted")

	result := tx
	return &result, nil
}

// validate applies the purchase preconditions in order.
func (w *PurchaseWorkflow) validate(req ports.PurchaseRequest) error {
	if req.Amount <= 0 {
		return apperror.ErrInvalidAmount()
	}
	if req.Amount > w.cfg.DailyLimit {
		return apperror.ErrAmountExceedsLimit(w.cfg.DailyLimit)
	}
	if req.FromCurrency == "" || req.ToCurrency == "" {
		return apperror.ErrInvalidCurrency()
	}
	if req.FromCurrency == req.ToCurrency {
		return apperror.ErrSameCurrency()
	}
	if !req.FromCurrency.IsSupported() {
		return apperror.ErrUnsupportedCurrency(string(req.FromCurrency))
	}
	if !req.ToCurrency.IsSupported() {
		return apperror.ErrUnsupportedCurrency(string(req.ToCurrency))
	}
	if !req.BankAccount.HasRequiredFields() {
		return apperror.ErrInvalidBankAccount()
	}
	if !domain.ValidateAccountNumber(req.BankAccount.AccountNumber) {
		return apperror.ErrInvalidAccountNumber()
	}
	if !domain.ValidateRoutingNumber(req.BankAccount.RoutingNumber) {
		return apperror.ErrInvalidRoutingNumber()
	}
	if !domain.ValidateAccountHolderName(req.BankAccount.AccountHolderName) {
		return apperror.ErrInvalidAccountHolderName()
	}
	return nil
}

// settle simulates the bank transfer and completes the stored transaction.
func (w *PurchaseWorkflow) settle(tx domain.PurchaseTransaction) {
	defer w.settlements.Done()

	if w.cfg.SettlementDelay > 0 {
		select {
		case <-w.stop:
			return
		case <-time.After(w.cfg.SettlementDelay):
		}
	}

	updated, err := w.store.UpdateStatus(context.Background(), tx.ID, domain.TransactionStatusCompleted)
	if err != nil || !updated {
		w.log.Warn().Err(err).Str("tx_id", tx.ID).Msg("settlement could not complete transaction")
		return
	}
	w.met.SettlementsTotal.Inc()

	tx.Status = domain.TransactionStatusCompleted
	w.publishTx(tx)

	w.log.Info().
		Str("tx_id", tx.ID).
		Float64("amount", tx.Amount).
		Str("currency", string(tx.ToCurrency)).
		Str("account_last4", tx.AccountLast4()).
		Msg("currency transfer completed")
}

// History returns all transactions newest-first.
func (w *PurchaseWorkflow) History(ctx context.Context) ([]domain.PurchaseTransaction, error) {
	return w.store.History(ctx)
}

// ByID returns a single transaction, or nil when absent.
func (w *PurchaseWorkflow) ByID(ctx context.Context, id string) (*domain.PurchaseTransaction, error) {
	return w.store.ByID(ctx, id)
}

// SupportedCurrencies returns the fixed tradable set.
func (w *PurchaseWorkflow) SupportedCurrencies() []domain.CurrencyCode {
	return domain.SupportedCurrencies()
}

// Close stops pending settlements from starting their delay over and waits
// for in-flight ones, honoring ctx.
func (w *PurchaseWorkflow) Close(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.stop) })

	done := make(chan struct{})
	go func() {
		w.settlements.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (w *PurchaseWorkflow) publishTx(tx domain.PurchaseTransaction) {
	w.hub.Publish(domain.Event{Type: domain.EventTransactionUpdated, Transaction: &tx})
}
