package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/migaloo-labs/bqs/domain"
	"github.com/migaloo-labs/bqs/domain/mvc"
)

type tokensUseCase struct {
	metadataMapMu             sync.RWMutex
	tokenMetadataByChainDenom map[string]domain.Token

	denomMapMu           sync.RWMutex
	humanToChainDenomMap map[string]string

	chainDenomsMu sync.RWMutex
	chainDenoms   map[string]struct{}

	// The live price feed source. Set once during wiring, before any reads.
	pricingSource domain.PricingSource
}

var _ mvc.TokensUsecase = &tokensUseCase{}

// NewTokensUsecase will create a new tokens use case object
func NewTokensUsecase(tokenMetadataByChainDenom map[string]domain.Token) mvc.TokensUsecase {
	us := &tokensUseCase{
		tokenMetadataByChainDenom: map[string]domain.Token{},
		humanToChainDenomMap:      map[string]string{},
		chainDenoms:               map[string]struct{}{},
	}

	us.LoadTokens(tokenMetadataByChainDenom)

	return us
}

// LoadTokens implements mvc.TokensUsecase.
func (t *tokensUseCase) LoadTokens(tokenMetadataByChainDenom map[string]domain.Token) {
	// Create human denom to chain denom map
	humanToChainDenomMap := make(map[string]string, len(tokenMetadataByChainDenom))
	chainDenoms := make(map[string]struct{}, len(tokenMetadataByChainDenom))

	for chainDenom, tokenMetadata := range tokenMetadataByChainDenom {
		// lower case human denom
		lowerCaseHumanDenom := strings.ToLower(tokenMetadata.HumanDenom)

		humanToChainDenomMap[lowerCaseHumanDenom] = chainDenom

		chainDenoms[chainDenom] = struct{}{}
	}

	t.metadataMapMu.Lock()
	t.tokenMetadataByChainDenom = tokenMetadataByChainDenom
	t.metadataMapMu.Unlock()

	t.denomMapMu.Lock()
	t.humanToChainDenomMap = humanToChainDenomMap
	t.denomMapMu.Unlock()

	t.chainDenomsMu.Lock()
	t.chainDenoms = chainDenoms
	t.chainDenomsMu.Unlock()
}

// GetChainDenom implements mvc.TokensUsecase.
func (t *tokensUseCase) GetChainDenom(humanDenom string) (string, error) {
	humanDenomLowerCase := strings.ToLower(humanDenom)

	t.denomMapMu.RLock()
	defer t.denomMapMu.RUnlock()

	chainDenom, ok := t.humanToChainDenomMap[humanDenomLowerCase]
	if !ok {
		return "", ChainDenomForHumanDenomNotFoundError{HumanDenom: humanDenomLowerCase}
	}

	return chainDenom, nil
}

// GetMetadataByChainDenom implements mvc.TokensUsecase.
// An unmapped denom degrades to fallback metadata: the raw denom string
// is treated as the human denom with the fallback precision.
func (t *tokensUseCase) GetMetadataByChainDenom(denom string) (domain.Token, error) {
	if denom == "" {
		return domain.Token{}, MetadataForChainDenomNotFoundError{ChainDenom: denom}
	}

	t.metadataMapMu.RLock()
	token, ok := t.tokenMetadataByChainDenom[denom]
	t.metadataMapMu.RUnlock()
	if !ok {
		return domain.NewFallbackToken(denom), nil
	}

	return token, nil
}

// GetFullTokenMetadata implements mvc.TokensUsecase.
func (t *tokensUseCase) GetFullTokenMetadata() (map[string]domain.Token, error) {
	t.metadataMapMu.RLock()
	defer t.metadataMapMu.RUnlock()

	// Do a copy of the cached metadata
	result := make(map[string]domain.Token, len(t.tokenMetadataByChainDenom))
	for denom, tokenMetadata := range t.tokenMetadataByChainDenom {
		result[denom] = tokenMetadata
	}

	return result, nil
}

// GetChainScalingFactorByDenomMut implements mvc.TokensUsecase.
func (t *tokensUseCase) GetChainScalingFactorByDenomMut(denom string) (osmomath.Dec, error) {
	denomMetadata, err := t.GetMetadataByChainDenom(denom)
	if err != nil {
		return osmomath.Dec{}, err
	}

	scalingFactor, ok := getPrecisionScalingFactorMut(denomMetadata.Precision)
	if !ok {
		return osmomath.Dec{}, ScalingFactorForPrecisionNotFoundError{Precision: denomMetadata.Precision, Denom: denom}
	}

	return scalingFactor, nil
}

// GetPrice implements mvc.TokensUsecase.
func (t *tokensUseCase) GetPrice(ctx context.Context, denom string, opts ...domain.PricingOption) (osmomath.BigDec, error) {
	if t.pricingSource == nil {
		return osmomath.BigDec{}, PricingSourceNotRegisteredError{}
	}

	tokenMetadata, err := t.GetMetadataByChainDenom(denom)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	return t.pricingSource.GetPrice(ctx, tokenMetadata.HumanDenom, opts...)
}

// IsValidChainDenom implements mvc.TokensUsecase.
func (t *tokensUseCase) IsValidChainDenom(chainDenom string) bool {
	t.chainDenomsMu.RLock()
	defer t.chainDenomsMu.RUnlock()
	_, ok := t.chainDenoms[chainDenom]
	return ok
}

// RegisterPricingSource implements mvc.TokensUsecase.
func (t *tokensUseCase) RegisterPricingSource(source domain.PricingSource) {
	t.pricingSource = source
}
