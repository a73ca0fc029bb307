package usecase_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/migaloo-labs/bqs/domain"
	"github.com/migaloo-labs/bqs/tokens/usecase"
)

const testAssetListJSON = `{
	"chain_name": "migaloo",
	"assets": [
		{
			"description": "The native token of Migaloo",
			"denom_units": [
				{"denom": "uwhale", "exponent": 0},
				{"denom": "whale", "exponent": 6}
			],
			"base": "uwhale",
			"name": "Whale",
			"display": "whale",
			"symbol": "WHALE"
		},
		{
			"description": "Ophir DAO treasury token",
			"denom_units": [
				{"denom": "factory/migaloo1t862qdu9mj5hr3j727247acypym3ej47axu22rrapm4tqlcpuseqltxwq5/ophir", "exponent": 0},
				{"denom": "ophir", "exponent": 6}
			],
			"base": "factory/migaloo1t862qdu9mj5hr3j727247acypym3ej47axu22rrapm4tqlcpuseqltxwq5/ophir",
			"name": "Ophir",
			"display": "ophir",
			"symbol": "OPHIR"
		}
	]
}`

func TestGetTokensFromChainRegistry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(testAssetListJSON))
		require.NoError(t, err)
	}))
	defer server.Close()

	tokensMap, hash, err := usecase.GetTokensFromChainRegistry(server.URL)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.Len(t, tokensMap, 2)

	whaleToken, ok := tokensMap[whaleChainDenom]
	require.True(t, ok)
	require.Equal(t, "WHALE", whaleToken.HumanDenom)
	require.Equal(t, defaultCosmosExponent, whaleToken.Precision)
	require.Equal(t, "migaloo", whaleToken.ChainName)

	ophirToken, ok := tokensMap[ophirChainDenom]
	require.True(t, ok)
	require.Equal(t, "OPHIR", ophirToken.HumanDenom)
	require.Equal(t, defaultCosmosExponent, ophirToken.Precision)
}

func TestChainRegistryHTTPFetcher(t *testing.T) {
	t.Run("loads on first fetch", func(t *testing.T) {
		loadCalls := 0

		fetcher := usecase.NewChainRegistryHTTPFetcher(
			"unused",
			func(url string) (map[string]domain.Token, string, error) {
				return defaultTokenMetadata(), "hash-1", nil
			},
			func(tokenMetadataByChainDenom map[string]domain.Token) {
				loadCalls++
			},
		)

		require.NoError(t, fetcher.FetchAndUpdateTokens())
		require.Equal(t, 1, loadCalls)
	})

	t.Run("skips reload on unchanged hash", func(t *testing.T) {
		loadCalls := 0
		hash := "hash-1"

		fetcher := usecase.NewChainRegistryHTTPFetcher(
			"unused",
			func(url string) (map[string]domain.Token, string, error) {
				return defaultTokenMetadata(), hash, nil
			},
			func(tokenMetadataByChainDenom map[string]domain.Token) {
				loadCalls++
			},
		)

		require.NoError(t, fetcher.FetchAndUpdateTokens())
		require.NoError(t, fetcher.FetchAndUpdateTokens())
		require.Equal(t, 1, loadCalls)

		// A content change reloads.
		hash = "hash-2"
		require.NoError(t, fetcher.FetchAndUpdateTokens())
		require.Equal(t, 2, loadCalls)
	})

	t.Run("fetch failure does not load", func(t *testing.T) {
		loadCalls := 0

		fetcher := usecase.NewChainRegistryHTTPFetcher(
			"unused",
			func(url string) (map[string]domain.Token, string, error) {
				return nil, "", errors.New("registry unreachable")
			},
			func(tokenMetadataByChainDenom map[string]domain.Token) {
				loadCalls++
			},
		)

		require.Error(t, fetcher.FetchAndUpdateTokens())
		require.Zero(t, loadCalls)
	})
}
