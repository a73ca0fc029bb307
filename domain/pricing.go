package domain

import (
	"context"
	"strings"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/migaloo-labs/bqs/domain/cache"
)

// PricingSource defines an interface that must be fulfilled by the specific
// implementation of the live price feed.
type PricingSource interface {
	// GetPrice returns the quote-currency price for the given human denom
	// or error, if any. It attempts to find the price in the cache first and
	// falls back to refetching the feed.
	// A denom absent from the feed is a valid, expected state and is
	// reported as a PriceNotFoundError rather than a transport failure.
	GetPrice(ctx context.Context, humanDenom string, opts ...PricingOption) (osmomath.BigDec, error)

	// InitializeCache initializes the cache for the pricing source to a given value.
	InitializeCache(*cache.Cache)
}

// PricingOptions defines the options for retrieving the prices.
type PricingOptions struct {
	// RecomputePrices defines whether to bypass the cache and refetch
	// the feed. If set to false, prices might still be refetched if the
	// cache is empty.
	RecomputePrices bool
}

// PricingOption configures the pricing options.
type PricingOption func(*PricingOptions)

// WithRecomputePrices configures the pricing options to bypass
// the cache and refetch the feed.
func WithRecomputePrices() PricingOption {
	return func(o *PricingOptions) {
		o.RecomputePrices = true
	}
}

// PricingConfig defines the configuration for the price feed.
type PricingConfig struct {
	// The number of milliseconds to cache a fetched price for.
	CacheExpiryMs int `mapstructure:"cache-expiry-ms"`

	// The number of milliseconds between background feed refreshes.
	RefetchIntervalMs int `mapstructure:"refetch-interval-ms"`

	// FeedURL is the URL of the symbol-keyed price document.
	FeedURL string `mapstructure:"feed-url"`

	// QuoteCurrency is the currency the feed quotes prices in.
	QuoteCurrency string `mapstructure:"quote-currency"`

	// SymbolAliases maps a lowercase symbol substring of a wrapped or
	// synthetic variant to the canonical base symbol present in the feed,
	// e.g. daoophir -> ophir. Consulted before every feed lookup.
	SymbolAliases map[string]string `mapstructure:"symbol-aliases"`
}

// NormalizeSymbol lowercases the given human denom and substitutes the
// canonical base symbol if the result contains a configured alias substring.
// The alias table is data, not logic. Extend it via config rather than
// special-casing new wrapped assets in code.
func (c PricingConfig) NormalizeSymbol(humanDenom string) string {
	symbol := strings.ToLower(humanDenom)

	for aliasSubstring, canonical := range c.SymbolAliases {
		if strings.Contains(symbol, aliasSubstring) {
			return canonical
		}
	}

	return symbol
}

// FormatPricingCacheKey formats the cache key for the given symbol and quote currency.
func FormatPricingCacheKey(symbol, quoteCurrency string) string {
	var sb strings.Builder
	sb.WriteString(symbol)
	sb.WriteString(quoteCurrency)
	return sb.String()
}
