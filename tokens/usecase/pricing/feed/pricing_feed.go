package feedpricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/migaloo-labs/bqs/domain"
	"github.com/migaloo-labs/bqs/domain/cache"
)

var (
	cacheHitsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bqs_pricing_cache_hits_total",
			Help: "Total number of pricing cache hits",
		},
		[]string{"symbol"},
	)
	cacheMissesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bqs_pricing_cache_misses_total",
			Help: "Total number of pricing cache misses",
		},
		[]string{"symbol"},
	)
	pricingErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bqs_pricing_errors_total",
			Help: "Total number of pricing errors",
		},
		[]string{"symbol", "err"},
	)
)

func init() {
	prometheus.Register(cacheHitsCounter)
	prometheus.Register(cacheMissesCounter)
	prometheus.Register(pricingErrorCounter)
}

// FeedPricing serves quote-currency prices out of a symbol-keyed price
// document, with an expiring per-symbol cache in front of the feed.
type FeedPricing struct {
	config        domain.PricingConfig
	cache         *cache.Cache
	cacheExpiryNs time.Duration
	quoteCurrency string
	feedURL       string
}

var _ domain.PricingSource = &FeedPricing{}

// New creates a price feed source over a symbol-keyed price document.
// An absent symbol is a valid, expected state of the feed, reported as
// a PriceNotFoundError so that callers can degrade display affordances.
func New(config domain.PricingConfig) *FeedPricing {
	return &FeedPricing{
		config:        config,
		cache:         cache.New(),
		cacheExpiryNs: time.Duration(config.CacheExpiryMs) * time.Millisecond,
		quoteCurrency: config.QuoteCurrency,
		feedURL:       config.FeedURL,
	}
}

// GetPrice implements domain.PricingSource.
func (f *FeedPricing) GetPrice(ctx context.Context, humanDenom string, opts ...domain.PricingOption) (osmomath.BigDec, error) {
	options := domain.PricingOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	symbol := f.config.NormalizeSymbol(humanDenom)

	cacheKey := domain.FormatPricingCacheKey(symbol, f.quoteCurrency)

	if !options.RecomputePrices {
		if cachedValue, found := f.cache.Get(cacheKey); found {
			cachedBigDecPrice, ok := cachedValue.(osmomath.BigDec)
			if !ok {
				return osmomath.BigDec{}, fmt.Errorf("invalid type cached in pricing, expected BigDec, got (%T)", cachedValue)
			}
			cacheHitsCounter.WithLabelValues(symbol).Inc()
			return cachedBigDecPrice, nil
		}
		cacheMissesCounter.WithLabelValues(symbol).Inc()
	}

	price, err := f.fetchPrice(ctx, symbol)
	if err != nil {
		pricingErrorCounter.WithLabelValues(symbol, err.Error()).Inc()
		return osmomath.BigDec{}, err
	}

	f.cache.Set(cacheKey, price, f.cacheExpiryNs)

	return price, nil
}

// RefreshPrices refetches the feed document and caches every symbol it
// carries, keeping lookups warm between user requests. Driven by the
// background interval fetcher.
func (f *FeedPricing) RefreshPrices(ctx context.Context) error {
	document, err := f.fetchDocument(ctx)
	if err != nil {
		return err
	}

	for symbol, quotes := range document {
		rawPrice, ok := quotes[f.quoteCurrency]
		if !ok {
			continue
		}

		price, err := parseFeedPrice(rawPrice)
		if err != nil {
			pricingErrorCounter.WithLabelValues(symbol, err.Error()).Inc()
			continue
		}

		f.cache.Set(domain.FormatPricingCacheKey(symbol, f.quoteCurrency), price, f.cacheExpiryNs)
	}

	return nil
}

// fetchPrice fetches the whole feed document and extracts the price for
// the given normalized symbol.
func (f *FeedPricing) fetchPrice(ctx context.Context, symbol string) (osmomath.BigDec, error) {
	document, err := f.fetchDocument(ctx)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	price, ok := document[symbol][f.quoteCurrency]
	if !ok {
		return osmomath.BigDec{}, PriceNotFoundError{Symbol: symbol}
	}

	return parseFeedPrice(price)
}

// fetchDocument fetches and decodes the symbol-keyed price document.
func (f *FeedPricing) fetchDocument(ctx context.Context) (map[string]map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get price document from feed: %s", resp.Status)
	}

	// symbol -> quote currency -> price
	var data map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode price feed response: %s", err)
	}

	return data, nil
}

// parseFeedPrice converts a feed float into a BigDec without truncating
// sub-micro prices the way a fixed-width format would.
func parseFeedPrice(price float64) (osmomath.BigDec, error) {
	return osmomath.NewBigDecFromStr(strconv.FormatFloat(price, 'f', -1, 64))
}

// InitializeCache implements domain.PricingSource.
func (f *FeedPricing) InitializeCache(cache *cache.Cache) {
	f.cache = cache
}

// PriceNotFoundError represents a symbol absent from the price feed.
// This is an expected state of an incomplete feed, not a transport failure.
type PriceNotFoundError struct {
	Symbol string
}

// Error implements the error interface.
func (e PriceNotFoundError) Error() string {
	return fmt.Sprintf("price for symbol (%s) not found in the feed", e.Symbol)
}
