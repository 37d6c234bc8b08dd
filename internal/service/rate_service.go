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
	"golang.org/x/sync/singleflight"
)

// DefaultBase is the base currency the engine publishes and refreshes.
const DefaultBase = domain.USD

// degradedNotice is surfaced to callers when the chain fell through to the
// static table.
const degradedNotice = "Using cached exchange rates. Please check your internet connection."

// RateEngine orchestrates cache lookup, the source chain, and cache writes,
// and exposes rate queries derived from its current table.
type RateEngine struct {
	cfg        config.RatesConfig
	cache      ports.RateCache
	sources    []ports.RateSource
	pairSource ports.PairSource
	boardPairs []ports.Pair
	hub        *EventHub
	met        *metrics.Metrics
	log        zerolog.Logger
	clock      ports.Clock
	group      singleflight.Group

	mu      sync.RWMutex
	current domain.RateTable
	loading bool
	message string
}

// NewRateEngine creates the engine. Sources are tried strictly in order;
// the last source is expected to be the never-failing static tier.
func NewRateEngine(
	cfg config.RatesConfig,
	cache ports.RateCache,
	sources []ports.RateSource,
	pairSource ports.PairSource,
	boardPairs []ports.Pair,
	hub *EventHub,
	met *metrics.Metrics,
	log zerolog.Logger,
) *RateEngine {
	return &RateEngine{
		cfg:        cfg,
		cache:      cache,
		sources:    sources,
		pairSource: pairSource,
		boardPairs: boardPairs,
		hub:        hub,
		met:        met,
		log:        log,
		clock:      ports.ClockFunc(time.Now),
	}
}

// Subscribe exposes the engine's event stream.
func (e *RateEngine) Subscribe() (<-chan domain.Event, func()) {
	return e.hub.Subscribe()
}

// FetchRates returns the table for base, serving the cache while fresh and
// running the source chain otherwise. Concurrent calls for the same base
// share a single chain run.
func (e *RateEngine) FetchRates(ctx context.Context, base domain.CurrencyCode) (domain.RateTable, error) {
	if base == "" {
		base = DefaultBase
	}

	if e.cache.IsFresh(base, e.clock.Now(), e.cfg.CacheTTL) {
		if table, ok := e.cache.Get(base); ok {
			e.met.CacheHitTotal.Inc()
			// A hit keeps the degradation notice in effect: the cached
			// table may have come from the fallback tier, and stays
			// fabricated for the rest of its TTL.
			e.mu.RLock()
			message := e.message
			e.mu.RUnlock()
			e.publishTable(base, table, message)
			return table, nil
		}
	}

	// The chain run is shared across concurrent callers, so it must not
	// die with whichever caller happened to start it.
	chainCtx := context.WithoutCancel(ctx)
	result, err, _ := e.group.Do(string(base), func() (interface{}, error) {
		return e.runChain(chainCtx, base)
	})
	if err != nil {
		return domain.RateTable{}, err
	}
	return result.(domain.RateTable), nil
}

// runChain tries each source in order and caches the first success.
func (e *RateEngine) runChain(ctx context.Context, base domain.CurrencyCode) (domain.RateTable, error) {
	e.setLoading(true)
	defer e.setLoading(false)

	start := e.clock.Now()
	defer func() {
		e.met.RateFetchDuration.Observe(e.clock.Now().Sub(start).Seconds())
	}()

	var lastErr error
	for i, src := range e.sources {
		table, err := src.Fetch(ctx, base)
		if err != nil {
			// Non-terminal source errors are swallowed, never surfaced.
			e.met.RateFetchTotal.WithLabelValues(src.Name(), "error").Inc()
			e.log.Warn().Err(err).Str("source", src.Name()).Str("base", string(base)).
				Msg("rate source failed, trying next")
			lastErr = err
			continue
		}
		e.met.RateFetchTotal.WithLabelValues(src.Name(), "success").Inc()

		terminalTier := i == len(e.sources)-1
		message := ""
		if terminalTier && len(e.sources) > 1 {
			if e.cfg.StrictFallback {
				e.log.Error().Str("base", string(base)).Msg("all live rate sources failed")
				return domain.RateTable{}, apperror.ErrRateSourcesExhausted(lastErr)
			}
			e.met.RateFallbackTotal.Inc()
			message = degradedNotice
			e.log.Warn().Str("base", string(base)).Msg("serving static fallback rates")
		}

		e.cache.Put(table)
		e.publishTable(base, table, message)
		e.log.Info().Str("source", src.Name()).Str("base", string(base)).
			Int("currencies", len(table.Rates)).Msg("exchange rates updated")
		return table, nil
	}

	// Unreachable when the static tier is configured.
	return domain.RateTable{}, apperror.ErrRateNotAvailable()
}

// GetRate returns the rate from one currency to another using the engine's
// current table. Same-currency is exactly 1.0 even before the first fetch.
func (e *RateEngine) GetRate(from, to domain.CurrencyCode) (float64, bool) {
	if from == to {
		return 1.0, true
	}
	e.mu.RLock()
	table := e.current
	e.mu.RUnlock()
	if table.Base == "" {
		return 0, false
	}
	return table.Rate(from, to)
}

// ConvertAmount converts amount via GetRate, propagating absence.
func (e *RateEngine) ConvertAmount(amount float64, from, to domain.CurrencyCode) (float64, bool) {
	rate, ok := e.GetRate(from, to)
	if !ok {
		return 0, false
	}
	return amount * rate, true
}

// PairBoard fetches the scraped major-pair board.
func (e *RateEngine) PairBoard(ctx context.Context) ([]domain.PairRate, error) {
	e.met.PairBoardFetches.Inc()
	rates, err := e.pairSource.FetchPairRates(ctx, e.boardPairs)
	if err != nil {
		return nil, apperror.ErrRateSourcesExhausted(err)
	}
	return rates, nil
}

// Snapshot returns the observable engine state.
func (e *RateEngine) Snapshot() ports.RateSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return ports.RateSnapshot{Table: e.current, Loading: e.loading, Message: e.message}
}

// Run refreshes the default-base table periodically until ctx is cancelled.
// Each tick re-runs the freshness check inside FetchRates, so a tick while
// the cache is fresh does no I/O.
func (e *RateEngine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.RefreshPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.FetchRates(ctx, DefaultBase); err != nil {
				e.log.Warn().Err(err).Msg("periodic rate refresh failed")
			}
		}
	}
}

func (e *RateEngine) setLoading(v bool) {
	e.mu.Lock()
	e.loading = v
	e.mu.Unlock()

	loading := v
	e.hub.Publish(domain.Event{Type: domain.EventLoadingChanged, Loading: &loading})
}

// publishTable installs the table as the engine's current one (default base
// only) and emits the observable events.
func (e *RateEngine) publishTable(base domain.CurrencyCode, table domain.RateTable, message string) {
	e.mu.Lock()
	if base == DefaultBase {
		e.current = table
	}
	e.message = message
	e.mu.Unlock()

	e.hub.Publish(domain.Event{Type: domain.EventRatesUpdated, Rates: &table})
	if message != "" {
		e.hub.Publish(domain.Event{Type: domain.EventServiceDegraded, Message: message})
	}
}
