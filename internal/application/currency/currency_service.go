package currency

import (
	"context"
	"time"

	"github.com/mercado/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Exchange rates are cached for an hour; prices on a storefront do not need
// tighter freshness.
const (
	cacheKey = "currency:rates:cop"
	cacheTTL = time.Hour
)

// fallback rates used when the upstream API is unreachable
var fallbackRates = map[string]float64{
	"USD": 0.00025,
	"EUR": 0.00023,
}

// RateProvider fetches exchange rates for a base currency
type RateProvider interface {
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}

// Cache stores serializable values with a TTL
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service converts COP amounts into reference currencies for display.
// Provider failures degrade to static fallback rates instead of erroring.
type Service struct {
	provider RateProvider
	cache    Cache
	logger   *zap.Logger
}

// NewService creates a new currency Service
func NewService(provider RateProvider, cache Cache, logger *zap.Logger) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

// RatesResult carries exchange rates and where they came from
type RatesResult struct {
	Rates  map[string]float64 `json:"rates"`
	Source string             `json:"source"`
}

// Rates returns USD and EUR rates for one COP
func (s *Service) Rates(ctx context.Context) RatesResult {
	var cached map[string]float64
	if ok, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && ok {
		return RatesResult{Rates: cached, Source: "cache"}
	}

	fetched, err := s.provider.FetchRates(ctx, "COP")
	if err != nil {
		s.logger.Warn("exchange rate fetch failed, using fallback rates", zap.Error(err))
		return RatesResult{Rates: fallbackRates, Source: "fallback"}
	}

	rates := map[string]float64{}
	for _, code := range []string{"USD", "EUR"} {
		if rate, ok := fetched[code]; ok {
			rates[code] = rate
		} else {
			rates[code] = fallbackRates[code]
		}
	}

	if err := s.cache.Set(ctx, cacheKey, rates, cacheTTL); err != nil {
		s.logger.Warn("failed to cache exchange rates", zap.Error(err))
	}
	return RatesResult{Rates: rates, Source: "api"}
}

// DisplayResponse is a COP amount formatted for the storefront alongside its
// reference-currency equivalents
type DisplayResponse struct {
	COP    string `json:"cop"`
	USD    string `json:"usd"`
	EUR    string `json:"eur"`
	Source string `json:"source"`
}

// Display formats a COP amount with its USD and EUR equivalents
func (s *Service) Display(ctx context.Context, amount decimal.Decimal) DisplayResponse {
	result := s.Rates(ctx)

	base := valueobject.NewMoneyCOP(amount)
	convert := func(to valueobject.Currency) valueobject.Money {
		rate := decimal.NewFromFloat(result.Rates[string(to)])
		return base.Convert(rate, to).Round(2)
	}

	return DisplayResponse{
		COP:    Format(base),
		USD:    Format(convert(valueobject.USD)),
		EUR:    Format(convert(valueobject.EUR)),
		Source: result.Source,
	}
}
