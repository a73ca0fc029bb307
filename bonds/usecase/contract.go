package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"

	bqshttp "github.com/migaloo-labs/bqs/delivery/http"
	"github.com/migaloo-labs/bqs/domain"
)

// ContractQuerier abstracts the read-only smart queries issued against the
// bond contract. Signing and execution stay with the browser wallet.
type ContractQuerier interface {
	// GetFeeRate returns the contract's fee rate as a decimal fraction.
	GetFeeRate(ctx context.Context) (osmomath.BigDec, error)

	// GetNFTInfo returns the contract-side view of a minted bond.
	GetNFTInfo(ctx context.Context, tokenID string) (domain.BondNFTInfo, error)
}

// LCDContractClient issues CosmWasm smart queries through the chain's
// REST (LCD) gateway.
type LCDContractClient struct {
	restGatewayEndpoint string
	contractAddress     string
	client              *http.Client
}

var _ ContractQuerier = &LCDContractClient{}

// NewLCDContractClient creates a new LCD-backed contract querier.
func NewLCDContractClient(restGatewayEndpoint, contractAddress string) *LCDContractClient {
	return &LCDContractClient{
		restGatewayEndpoint: restGatewayEndpoint,
		contractAddress:     contractAddress,
		client:              bqshttp.DefaultClient,
	}
}

// contractConfigResponse mirrors the contract's config query response as
// wrapped by the LCD gateway.
type contractConfigResponse struct {
	Data struct {
		FeeRate string `json:"fee_rate"`
	} `json:"data"`
}

// nftInfoResponse mirrors the contract's nft_info query response as
// wrapped by the LCD gateway.
type nftInfoResponse struct {
	Data struct {
		Owner     string `json:"owner"`
		Extension struct {
			Denom       string `json:"denom"`
			TotalSupply string `json:"total_supply"`
			Price       string `json:"price"`
			BondType    string `json:"bond_type"`
			Maturity    int64  `json:"maturity"`
			Description string `json:"description"`
		} `json:"extension"`
	} `json:"data"`
}

// GetFeeRate implements ContractQuerier.
func (c *LCDContractClient) GetFeeRate(ctx context.Context) (osmomath.BigDec, error) {
	var response contractConfigResponse
	if err := c.querySmart(ctx, []byte(`{"config":{}}`), &response); err != nil {
		return osmomath.BigDec{}, err
	}

	feeRate, err := osmomath.NewBigDecFromStr(response.Data.FeeRate)
	if err != nil {
		return osmomath.BigDec{}, fmt.Errorf("failed to parse contract fee rate (%s): %w", response.Data.FeeRate, err)
	}

	return feeRate, nil
}

// GetNFTInfo implements ContractQuerier.
func (c *LCDContractClient) GetNFTInfo(ctx context.Context, tokenID string) (domain.BondNFTInfo, error) {
	query, err := json.Marshal(map[string]any{
		"nft_info": map[string]string{"token_id": tokenID},
	})
	if err != nil {
		return domain.BondNFTInfo{}, err
	}

	var response nftInfoResponse
	if err := c.querySmart(ctx, query, &response); err != nil {
		return domain.BondNFTInfo{}, err
	}

	extension := response.Data.Extension

	return domain.BondNFTInfo{
		TokenID:     tokenID,
		Owner:       response.Data.Owner,
		Denom:       extension.Denom,
		TotalSupply: extension.TotalSupply,
		UnitPrice:   extension.Price,
		BondType:    domain.BondType(extension.BondType),
		Maturity:    time.Unix(extension.Maturity, 0).UTC(),
		Description: extension.Description,
	}, nil
}

// querySmart issues a base64-encoded smart query against the contract
// through the LCD gateway and decodes the response into result.
func (c *LCDContractClient) querySmart(ctx context.Context, query []byte, result any) error {
	url := fmt.Sprintf(
		"%s/cosmwasm/wasm/v1/contract/%s/smart/%s",
		c.restGatewayEndpoint,
		c.contractAddress,
		base64.StdEncoding.EncodeToString(query),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("contract smart query failed: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
