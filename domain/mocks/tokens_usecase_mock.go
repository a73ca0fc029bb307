package mocks

import (
	"context"
	"fmt"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/migaloo-labs/bqs/domain"
)

// TokensUsecaseMock is a mock implementation of the TokensUsecase interface
type TokensUsecaseMock struct {
	LoadTokensFunc                      func(tokenMetadataByChainDenom map[string]domain.Token)
	GetMetadataByChainDenomFunc         func(denom string) (domain.Token, error)
	GetFullTokenMetadataFunc            func() (map[string]domain.Token, error)
	GetChainDenomFunc                   func(humanDenom string) (string, error)
	GetChainScalingFactorByDenomMutFunc func(denom string) (osmomath.Dec, error)
	GetPriceFunc                        func(ctx context.Context, denom string, opts ...domain.PricingOption) (osmomath.BigDec, error)
	IsValidChainDenomFunc               func(chainDenom string) bool
	RegisterPricingSourceFunc           func(source domain.PricingSource)
}

func (m *TokensUsecaseMock) LoadTokens(tokenMetadataByChainDenom map[string]domain.Token) {
	if m.LoadTokensFunc != nil {
		m.LoadTokensFunc(tokenMetadataByChainDenom)
	}
}

func (m *TokensUsecaseMock) GetMetadataByChainDenom(denom string) (domain.Token, error) {
	if m.GetMetadataByChainDenomFunc != nil {
		return m.GetMetadataByChainDenomFunc(denom)
	}
	return domain.NewFallbackToken(denom), nil
}

func (m *TokensUsecaseMock) GetFullTokenMetadata() (map[string]domain.Token, error) {
	if m.GetFullTokenMetadataFunc != nil {
		return m.GetFullTokenMetadataFunc()
	}
	return nil, nil
}

func (m *TokensUsecaseMock) GetChainDenom(humanDenom string) (string, error) {
	if m.GetChainDenomFunc != nil {
		return m.GetChainDenomFunc(humanDenom)
	}
	return "", fmt.Errorf("chain denom for human denom (%s) is not found", humanDenom)
}

func (m *TokensUsecaseMock) GetChainScalingFactorByDenomMut(denom string) (osmomath.Dec, error) {
	if m.GetChainScalingFactorByDenomMutFunc != nil {
		return m.GetChainScalingFactorByDenomMutFunc(denom)
	}
	// Matches the fallback token precision of 6.
	return osmomath.NewDec(1_000_000), nil
}

func (m *TokensUsecaseMock) GetPrice(ctx context.Context, denom string, opts ...domain.PricingOption) (osmomath.BigDec, error) {
	if m.GetPriceFunc != nil {
		return m.GetPriceFunc(ctx, denom, opts...)
	}
	return osmomath.BigDec{}, nil
}

func (m *TokensUsecaseMock) IsValidChainDenom(chainDenom string) bool {
	if m.IsValidChainDenomFunc != nil {
		return m.IsValidChainDenomFunc(chainDenom)
	}
	return false
}

func (m *TokensUsecaseMock) RegisterPricingSource(source domain.PricingSource) {
	if m.RegisterPricingSourceFunc != nil {
		m.RegisterPricingSourceFunc(source)
	}
}
