package mvc

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/migaloo-labs/bqs/domain"
)

// LoadTokensFunc is a function signature for replacing the token registry contents.
type LoadTokensFunc func(tokenMetadataByChainDenom map[string]domain.Token)

// TokensUsecase defines an interface for the tokens usecase.
type TokensUsecase interface {
	// LoadTokens replaces the registry contents with the given metadata map.
	LoadTokens(tokenMetadataByChainDenom map[string]domain.Token)

	// GetMetadataByChainDenom returns token metadata for a given chain denom.
	// An unmapped denom falls back to treating the raw denom string as the
	// human denom with the fallback precision, so the error is only set for
	// malformed input.
	GetMetadataByChainDenom(denom string) (domain.Token, error)

	// GetFullTokenMetadata returns token metadata for all chain denoms as a map.
	GetFullTokenMetadata() (map[string]domain.Token, error)

	// GetChainDenom returns chain denom by human denom
	GetChainDenom(humanDenom string) (string, error)

	// GetChainScalingFactorByDenomMut returns a chain scaling factor for a given denom.
	// Note that the returned decimal is a shared resource and must not be mutated.
	// A clone should be made for any mutative operation.
	GetChainScalingFactorByDenomMut(denom string) (osmomath.Dec, error)

	// GetPrice returns the quote-currency price for the given chain denom
	// after symbol normalization, or an error if the feed has no entry.
	GetPrice(ctx context.Context, denom string, opts ...domain.PricingOption) (osmomath.BigDec, error)

	// IsValidChainDenom returns true if the given denom is present in the registry.
	IsValidChainDenom(chainDenom string) bool

	// RegisterPricingSource registers the live price feed source.
	RegisterPricingSource(source domain.PricingSource)
}
