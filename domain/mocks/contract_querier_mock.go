package mocks

import (
	"context"
	"sync/atomic"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/migaloo-labs/bqs/domain"
)

// ContractQuerierMock is a mock implementation of the ContractQuerier interface
type ContractQuerierMock struct {
	GetFeeRateFunc func(ctx context.Context) (osmomath.BigDec, error)
	GetNFTInfoFunc func(ctx context.Context, tokenID string) (domain.BondNFTInfo, error)

	// FeeRateCalls counts GetFeeRate invocations for cache assertions.
	// Atomic so that tests may invoke the mock concurrently.
	FeeRateCalls atomic.Int64
	// NFTInfoCalls counts GetNFTInfo invocations for cache assertions.
	NFTInfoCalls atomic.Int64
}

func (m *ContractQuerierMock) GetFeeRate(ctx context.Context) (osmomath.BigDec, error) {
	m.FeeRateCalls.Add(1)
	if m.GetFeeRateFunc != nil {
		return m.GetFeeRateFunc(ctx)
	}
	return osmomath.BigDec{}, nil
}

func (m *ContractQuerierMock) GetNFTInfo(ctx context.Context, tokenID string) (domain.BondNFTInfo, error) {
	m.NFTInfoCalls.Add(1)
	if m.GetNFTInfoFunc != nil {
		return m.GetNFTInfoFunc(ctx, tokenID)
	}
	return domain.BondNFTInfo{}, nil
}
