package feedpricing_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/require"

	"github.com/migaloo-labs/bqs/domain"
	feedpricing "github.com/migaloo-labs/bqs/tokens/usecase/pricing/feed"
)

const testFeedJSON = `{
	"whale": {"usd": 0.015},
	"ophir": {"usd": 0.0023},
	"btc": {"usd": 65000}
}`

func newTestFeedConfig(feedURL string) domain.PricingConfig {
	return domain.PricingConfig{
		CacheExpiryMs: 60_000,
		FeedURL:       feedURL,
		QuoteCurrency: "usd",
		SymbolAliases: map[string]string{
			"daoophir": "ophir",
			"wbtc":     "btc",
		},
	}
}

func TestGetPrice(t *testing.T) {
	var feedRequests atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		feedRequests.Add(1)
		_, err := w.Write([]byte(testFeedJSON))
		require.NoError(t, err)
	}))
	defer server.Close()

	source := feedpricing.New(newTestFeedConfig(server.URL))

	t.Run("fetches the quote currency price", func(t *testing.T) {
		price, err := source.GetPrice(context.Background(), "WHALE")
		require.NoError(t, err)
		require.Equal(t, osmomath.MustNewBigDecFromStr("0.015"), price)
	})

	t.Run("serves repeated lookups from cache", func(t *testing.T) {
		before := feedRequests.Load()

		_, err := source.GetPrice(context.Background(), "WHALE")
		require.NoError(t, err)

		require.Equal(t, before, feedRequests.Load())
	})

	t.Run("recompute option bypasses the cache", func(t *testing.T) {
		before := feedRequests.Load()

		_, err := source.GetPrice(context.Background(), "WHALE", domain.WithRecomputePrices())
		require.NoError(t, err)

		require.Equal(t, before+1, feedRequests.Load())
	})

	t.Run("alias substring maps to the canonical symbol", func(t *testing.T) {
		// The feed has no daoophir entry; the alias resolves against ophir.
		price, err := source.GetPrice(context.Background(), "daoOPHIR")
		require.NoError(t, err)
		require.Equal(t, osmomath.MustNewBigDecFromStr("0.0023"), price)

		price, err = source.GetPrice(context.Background(), "wBTC")
		require.NoError(t, err)
		require.Equal(t, osmomath.MustNewBigDecFromStr("65000"), price)
	})

	t.Run("absent symbol is a price not found error", func(t *testing.T) {
		_, err := source.GetPrice(context.Background(), "UNKNOWN")
		require.Error(t, err)

		var notFoundErr feedpricing.PriceNotFoundError
		require.ErrorAs(t, err, &notFoundErr)
		require.Equal(t, "unknown", notFoundErr.Symbol)
	})
}

func TestGetPrice_SubMicroPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`{"shrimp": {"usd": 0.0000001}}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	source := feedpricing.New(newTestFeedConfig(server.URL))

	// Prices below a micro unit survive the float conversion instead of
	// collapsing to zero.
	price, err := source.GetPrice(context.Background(), "SHRIMP")
	require.NoError(t, err)
	require.Equal(t, osmomath.MustNewBigDecFromStr("0.0000001"), price)
}

func TestRefreshPrices(t *testing.T) {
	var feedRequests atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		feedRequests.Add(1)
		_, err := w.Write([]byte(testFeedJSON))
		require.NoError(t, err)
	}))
	defer server.Close()

	source := feedpricing.New(newTestFeedConfig(server.URL))

	require.NoError(t, source.RefreshPrices(context.Background()))
	require.Equal(t, int64(1), feedRequests.Load())

	// A single refresh warms every symbol the document carries.
	for symbol, expected := range map[string]string{
		"WHALE": "0.015",
		"OPHIR": "0.0023",
		"wBTC":  "65000",
	} {
		price, err := source.GetPrice(context.Background(), symbol)
		require.NoError(t, err)
		require.Equal(t, osmomath.MustNewBigDecFromStr(expected), price)
	}

	require.Equal(t, int64(1), feedRequests.Load())
}

func TestGetPrice_FeedUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	source := feedpricing.New(newTestFeedConfig(server.URL))

	_, err := source.GetPrice(context.Background(), "WHALE")
	require.Error(t, err)

	// Transport failures are not conflated with an absent feed entry.
	var notFoundErr feedpricing.PriceNotFoundError
	require.False(t, errors.As(err, &notFoundErr))
}
