package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"currency-exchange-gateway/internal/core/domain"
)

// apiResponse mirrors the primary rate provider's JSON body.
type apiResponse struct {
	Success   bool               `json:"success"`
	Timestamp int64              `json:"timestamp"`
	Base      string             `json:"base"`
	Date      string             `json:"date"`
	Rates     map[string]float64 `json:"rates"`
}

// PrimarySource fetches rate tables from the configured JSON rate API.
// Endpoint shape: GET <baseURL>/<BASE>.
type PrimarySource struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewPrimarySource creates the tier-1 API source. The client is injected so
// callers control timeouts and tests can stub transport.
func NewPrimarySource(baseURL string, client *http.Client) *PrimarySource {
	return &PrimarySource{
		baseURL: baseURL,
		client:  client,
		now:     time.Now,
	}
}

func (s *PrimarySource) Name() string { return "primary_api" }

// Fetch requests the rate table for base and decodes it.
func (s *PrimarySource) Fetch(ctx context.Context, base domain.CurrencyCode) (domain.RateTable, error) {
	url := fmt.Sprintf("%s/%s", s.baseURL, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.RateTable{}, fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.RateTable{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if !body.Success {
		return domain.RateTable{}, ErrAPIError
	}

	rates := make(map[domain.CurrencyCode]float64, len(body.Rates))
	for code, rate := range body.Rates {
		rates[domain.CurrencyCode(code)] = rate
	}

	table := domain.RateTable{Base: base, Rates: rates, FetchedAt: s.now()}
	if !table.Valid() {
		return domain.RateTable{}, fmt.Errorf("%w: empty or non-positive rates", ErrDecode)
	}
	return table, nil
}
