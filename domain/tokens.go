package domain

// Token represents the token's domain model
type Token struct {
	// HumanDenom is the human readable denom, e.g. WHALE
	HumanDenom string `json:"symbol"`
	// Precision is the precision of the token.
	Precision int `json:"decimals"`
	// ChainName is the registry name of the chain the denom originates from.
	ChainName string `json:"chain"`
	// IsUnlisted is true if the token is unlisted.
	IsUnlisted bool `json:"preview"`
}

// FallbackPrecision is assumed for denoms that are not present
// in the chain registry. Callers treat the raw denom string as the
// human denom in that case.
const FallbackPrecision = 6

// NewFallbackToken returns the token metadata assumed for an unmapped denom.
func NewFallbackToken(chainDenom string) Token {
	return Token{
		HumanDenom: chainDenom,
		Precision:  FallbackPrecision,
		IsUnlisted: true,
	}
}

// TokenRegistryLoader is loader of tokens from the chain registry.
// Loaded tokens are used to update the token registry.
type TokenRegistryLoader interface {
	// FetchAndUpdateTokens fetches tokens from the chain registry and updates the token registry.
	FetchAndUpdateTokens() error
}
