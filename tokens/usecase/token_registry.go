package usecase

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/migaloo-labs/bqs/domain"
	"github.com/migaloo-labs/bqs/domain/mvc"
)

// AssetList represents the chain registry assetlist JSON structure.
type AssetList struct {
	ChainName string `json:"chain_name"`
	Assets    []struct {
		Description string `json:"description"`
		DenomUnits  []struct {
			Denom    string `json:"denom"`
			Exponent int    `json:"exponent"`
		} `json:"denom_units"`
		Base     string   `json:"base"`
		Name     string   `json:"name"`
		Display  string   `json:"display"`
		Symbol   string   `json:"symbol"`
		Keywords []string `json:"keywords"`
	} `json:"assets"`
}

// GetTokensFromChainRegistryFunc is a GetTokensFromChainRegistry function signature.
type GetTokensFromChainRegistryFunc func(chainRegistryAssetsFileURL string) (map[string]domain.Token, string, error)

// GetTokensFromChainRegistry fetches the tokens from the chain registry.
// It returns a map of tokens by chain denom and the md5 hash of the
// fetched document for change detection.
func GetTokensFromChainRegistry(chainRegistryAssetsFileURL string) (map[string]domain.Token, string, error) {
	// Fetch the JSON data from the URL
	response, err := http.Get(chainRegistryAssetsFileURL)
	if err != nil {
		return nil, "", err
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, "", err
	}

	var assetList AssetList
	if err := json.Unmarshal(data, &assetList); err != nil {
		return nil, "", err
	}

	tokensByChainDenom := make(map[string]domain.Token)

	for _, asset := range assetList.Assets {
		token := domain.Token{
			HumanDenom: asset.Symbol,
			ChainName:  assetList.ChainName,
		}
		chainDenom := asset.Base

		// The exponent of the display denom unit is the token precision.
		// The zero-exponent unit is the chain denom itself.
		for _, denomUnit := range asset.DenomUnits {
			if denomUnit.Exponent > 0 && denomUnit.Denom == asset.Display {
				token.Precision = denomUnit.Exponent
			}
		}

		tokensByChainDenom[chainDenom] = token
	}

	return tokensByChainDenom, fmt.Sprintf("%x", md5.Sum(data)), nil
}

// ChainRegistryHTTPFetcher is an implementation of domain.TokenRegistryLoader
// that fetches tokens from the HTTP chain registry.
type ChainRegistryHTTPFetcher struct {
	registryURL                string
	getTokensFromChainRegistry GetTokensFromChainRegistryFunc
	loadTokens                 mvc.LoadTokensFunc
	lastFetchHash              string
}

var _ domain.TokenRegistryLoader = &ChainRegistryHTTPFetcher{}

// NewChainRegistryHTTPFetcher creates a new instance of ChainRegistryHTTPFetcher.
func NewChainRegistryHTTPFetcher(registryURL string, getTokensFromChainRegistry GetTokensFromChainRegistryFunc, loadTokens mvc.LoadTokensFunc) *ChainRegistryHTTPFetcher {
	return &ChainRegistryHTTPFetcher{
		getTokensFromChainRegistry: getTokensFromChainRegistry,
		registryURL:                registryURL,
		loadTokens:                 loadTokens,
	}
}

// FetchAndUpdateTokens fetches tokens from the chain registry and loads them
// into the registry. In case there were no changes since the last fetch,
// it does not reload.
func (f *ChainRegistryHTTPFetcher) FetchAndUpdateTokens() error {
	tokens, hash, err := f.getTokensFromChainRegistry(f.registryURL)
	if err != nil {
		return err
	}

	if f.lastFetchHash != hash {
		f.loadTokens(tokens)
		f.lastFetchHash = hash
	}

	return nil
}
