package ratesource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"

	"currency-exchange-gateway/internal/core/domain"
	"currency-exchange-gateway/internal/core/ports"
)

// Per-currency extraction patterns applied against the raw page text.
// A currency whose pattern does not match is omitted from the result.
var scrapePatterns = map[domain.CurrencyCode]*regexp.Regexp{
	domain.EUR: regexp.MustCompile(`EUR.*?(\d+\.\d+)`),
	domain.GBP: regexp.MustCompile(`GBP.*?(\d+\.\d+)`),
	domain.JPY: regexp.MustCompile(`JPY.*?(\d+\.\d+)`),
	domain.CAD: regexp.MustCompile(`CAD.*?(\d+\.\d+)`),
	domain.AUD: regexp.MustCompile(`AUD.*?(\d+\.\d+)`),
}

// Patterns tried in order when extracting a single pair rate from a page.
// The last is a catch-all for any 4-6 decimal-place number.
var pairRatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`data-rate="([0-9.]+)"`),
	regexp.MustCompile(`(?i)rate.*?([0-9]+\.[0-9]+)`),
	regexp.MustCompile(`(?i)exchange-rate.*?([0-9]+\.[0-9]+)`),
	regexp.MustCompile(`([0-9]+\.[0-9]{4,6})`),
}

// defaultBoardPairs are the major pairs shown on the rates board. The board
// also quotes currencies outside the tradable set (NZD, SEK, NOK, DKK).
var defaultBoardPairs = []ports.Pair{
	{From: domain.EUR, To: domain.USD}, {From: domain.GBP, To: domain.USD},
	{From: domain.USD, To: domain.JPY}, {From: domain.USD, To: domain.CHF},
	{From: domain.USD, To: domain.CAD}, {From: domain.AUD, To: domain.USD},
	{From: domain.NZD, To: domain.USD}, {From: domain.USD, To: domain.CNY},
	{From: domain.USD, To: domain.INR}, {From: domain.USD, To: domain.BRL},
	{From: domain.USD, To: domain.MXN}, {From: domain.EUR, To: domain.GBP},
	{From: domain.EUR, To: domain.JPY}, {From: domain.GBP, To: domain.JPY},
	{From: domain.AUD, To: domain.JPY}, {From: domain.CHF, To: domain.JPY},
	{From: domain.CAD, To: domain.JPY}, {From: domain.EUR, To: domain.CHF},
	{From: domain.GBP, To: domain.CHF}, {From: domain.USD, To: domain.SEK},
	{From: domain.USD, To: domain.NOK}, {From: domain.USD, To: domain.DKK},
	{From: domain.EUR, To: domain.NOK}, {From: domain.EUR, To: domain.SEK},
}

// DefaultBoardPairs returns the pair set fetched for the rates board.
func DefaultBoardPairs() []ports.Pair {
	pairs := make([]ports.Pair, len(defaultBoardPairs))
	copy(pairs, defaultBoardPairs)
	return pairs
}

// ScrapeSource extracts rates from a public currency-converter page with
// fixed regex patterns. It is tier 2 of the chain: transport and parse
// failures are typed errors; a page where no pattern matches degrades to
// the static fallback table instead of failing.
type ScrapeSource struct {
	pageURL    string
	client     *http.Client
	fallback   *StaticSource
	batchSize  int
	batchDelay time.Duration
	now        func() time.Time
}

// NewScrapeSource creates the tier-2 scrape source.
func NewScrapeSource(pageURL string, client *http.Client, batchSize int, batchDelay time.Duration) *ScrapeSource {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &ScrapeSource{
		pageURL:    pageURL,
		client:     client,
		fallback:   NewStaticSource(),
		batchSize:  batchSize,
		batchDelay: batchDelay,
		now:        time.Now,
	}
}

func (s *ScrapeSource) Name() string { return "scrape" }

// Fetch loads the converter page for base→EUR and applies the per-currency
// patterns against the raw text.
func (s *ScrapeSource) Fetch(ctx context.Context, base domain.CurrencyCode) (domain.RateTable, error) {
	html, err := s.fetchPage(ctx, base, domain.EUR, 1)
	if err != nil {
		return domain.RateTable{}, err
	}

	rates := make(map[domain.CurrencyCode]float64)
	for currency, pattern := range scrapePatterns {
		m := pattern.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		rate, err := strconv.ParseFloat(m[1], 64)
		if err != nil || rate <= 0 {
			continue
		}
		rates[currency] = rate
	}

	// All patterns failed: degrade to the static table rather than error.
	if len(rates) == 0 {
		return s.fallback.Table(base), nil
	}

	return domain.RateTable{Base: base, Rates: rates, FetchedAt: s.now()}, nil
}

// FetchPairRates fetches the given pairs in bounded concurrent batches with
// a fixed inter-batch delay to rate-limit outbound requests. A failed pair
// is dropped, not an error for the batch. Results are sorted by the from
// currency.
func (s *ScrapeSource) FetchPairRates(ctx context.Context, pairs []ports.Pair) ([]domain.PairRate, error) {
	var (
		mu      sync.Mutex
		results []domain.PairRate
	)

	for start := 0; start < len(pairs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(pairs) {
			end = len(pairs)
		}

		var wg sync.WaitGroup
		for _, pair := range pairs[start:end] {
			wg.Add(1)
			go func(p ports.Pair) {
				defer wg.Done()
				rate, err := s.fetchPairRate(ctx, p)
				if err != nil {
					return
				}
				mu.Lock()
				results = append(results, rate)
				mu.Unlock()
			}(pair)
		}
		wg.Wait()

		if end < len(pairs) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.batchDelay):
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].From != results[j].From {
			return results[i].From < results[j].From
		}
		return results[i].To < results[j].To
	})
	return results, nil
}

func (s *ScrapeSource) fetchPairRate(ctx context.Context, p ports.Pair) (domain.PairRate, error) {
	html, err := s.fetchPage(ctx, p.From, p.To, 1)
	if err != nil {
		return domain.PairRate{}, err
	}

	for _, pattern := range pairRatePatterns {
		m := pattern.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		rate, err := strconv.ParseFloat(m[1], 64)
		// Sanity window filters page artifacts like years or pixel sizes.
		if err != nil || rate <= 0 || rate >= 1000 {
			continue
		}
		return domain.PairRate{From: p.From, To: p.To, Rate: rate, FetchedAt: s.now()}, nil
	}

	return domain.PairRate{}, fmt.Errorf("%w: no rate found for %s/%s", ErrInvalidData, p.From, p.To)
}

func (s *ScrapeSource) fetchPage(ctx context.Context, from, to domain.CurrencyCode, amount int) (string, error) {
	u, err := url.Parse(s.pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	q := u.Query()
	q.Set("Amount", strconv.Itoa(amount))
	q.Set("From", string(from))
	q.Set("To", string(to))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return string(body), nil
}
