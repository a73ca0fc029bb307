package domain

import (
	"time"
)

// BondType defines the claim behavior of a bond.
type BondType string

const (
	// BondTypeCliff pays out the entire bond at maturity.
	BondTypeCliff BondType = "cliff"
	// BondTypeVested pays out linearly over a claim window.
	BondTypeVested BondType = "vested"
)

// BondDraft is the single in-memory draft owned by an active bond form
// session. It is a plain value: every mutation goes through the schedule
// reducer which returns a new draft with the ordering invariants repaired.
type BondDraft struct {
	BondType BondType `json:"bond_type"`

	PurchaseStart time.Time `json:"purchase_start"`
	PurchaseEnd   time.Time `json:"purchase_end"`
	ClaimStart    time.Time `json:"claim_start"`
	ClaimEnd      time.Time `json:"claim_end"`
	Maturity      time.Time `json:"maturity"`

	// ImmediateClaim forces the claim window of a vested bond to span
	// purchase end through maturity, overriding any manual claim window.
	ImmediateClaim bool `json:"immediate_claim"`

	// HasExplicitClaimWindow is set once the user edits the claim fields
	// directly. It suppresses the default claim-start buffer in offset math.
	HasExplicitClaimWindow bool `json:"has_explicit_claim_window"`
}

// EffectiveClaimStart returns the claim start instant as read by
// consumers. Cliff bonds always claim at maturity regardless of any
// stored claim fields.
func (d BondDraft) EffectiveClaimStart() time.Time {
	if d.BondType == BondTypeCliff {
		return d.Maturity
	}
	return d.ClaimStart
}

// BondTerms is the validated, internally consistent set of instants
// submitted to the bond contract. All four fields derive from a single
// "now" snapshot and are always recomputed together.
// Invariant: PurchaseStart < PurchaseEnd < Maturity. For vested bonds
// PurchaseEnd <= ClaimStart <= Maturity; for cliff bonds ClaimStart == Maturity.
type BondTerms struct {
	BondType      BondType  `json:"bond_type"`
	PurchaseStart time.Time `json:"purchase_start"`
	PurchaseEnd   time.Time `json:"purchase_end"`
	ClaimStart    time.Time `json:"claim_start"`
	Maturity      time.Time `json:"maturity"`
}

// ScheduleOffsets expresses BondTerms as strictly positive minute offsets
// from the snapshot instant, which is the form the contract accepts.
type ScheduleOffsets struct {
	StartOffsetMinutes      int64 `json:"start_offset_minutes"`
	EndOffsetMinutes        int64 `json:"end_offset_minutes"`
	ClaimStartOffsetMinutes int64 `json:"claim_start_offset_minutes"`
	MaturityOffsetMinutes   int64 `json:"maturity_offset_minutes"`
}

// DurationPreset is a named relative schedule measured in minutes from
// the moment of selection. Maturity minutes are offset from the same
// "now" snapshot as the other fields, not from the purchase end.
type DurationPreset struct {
	Name            string `json:"name"`
	StartMinutes    int64  `json:"start_minutes"`
	EndMinutes      int64  `json:"end_minutes"`
	MaturityMinutes int64  `json:"maturity_minutes"`
}

// FeeBreakdown is what the buyer pays and what is retained as fees,
// expressed as decimal strings at the purchasing token's precision.
// Invariants: TotalFee == MakerFee + TakerFee exactly (the maker fee is
// computed as the complement) and NetAmount == GrossAmount - TotalFee.
type FeeBreakdown struct {
	GrossAmount string `json:"gross_amount"`
	MakerFee    string `json:"maker_fee"`
	TakerFee    string `json:"taker_fee"`
	TotalFee    string `json:"total_fee"`
	NetAmount   string `json:"net_amount"`

	// Each fee component divided by the gross amount, to 2 fractional digits.
	MakerFeePercent string `json:"maker_fee_percent"`
	TakerFeePercent string `json:"taker_fee_percent"`
	TotalFeePercent string `json:"total_fee_percent"`
}

// BondCreationPayload is the record handed to the external submission
// collaborator. The maker/taker rate fields are included only when the
// creator opted into a non-default fee split.
type BondCreationPayload struct {
	Denom       string `json:"denom"`
	TotalSupply string `json:"total_supply"`
	// TotalSupplyBase is the supply scaled to the denom's base units.
	TotalSupplyBase string `json:"total_supply_base"`
	UnitPrice       string `json:"price"`
	Description     string `json:"description,omitempty"`

	NFTName     string `json:"nft_name,omitempty"`
	NFTImageURL string `json:"nft_image_url,omitempty"`

	BondTerms

	MakerFeeRate string `json:"maker_fee_rate,omitempty"`
	TakerFeeRate string `json:"taker_fee_rate,omitempty"`
}

// BondNFTInfo is the contract-side view of an already minted bond,
// consumed by the claim, transfer and resell flows.
type BondNFTInfo struct {
	TokenID     string    `json:"token_id"`
	Owner       string    `json:"owner"`
	Denom       string    `json:"denom"`
	TotalSupply string    `json:"total_supply"`
	UnitPrice   string    `json:"price"`
	BondType    BondType  `json:"bond_type"`
	Maturity    time.Time `json:"maturity"`
	Description string    `json:"description,omitempty"`
}

// BondsConfig defines the configuration for the bond contract and the
// calculator defaults.
type BondsConfig struct {
	// ContractAddress is the bech32 address of the bond contract.
	ContractAddress string `mapstructure:"contract-address"`

	// DefaultFeeRatePercent is used when the contract config cannot be
	// fetched or parsed.
	DefaultFeeRatePercent string `mapstructure:"default-fee-rate-percent"`

	// DefaultTakerSharePercent is the taker share of the total fee when
	// the creator has not opted into a custom split. The maker share is
	// always the complement.
	DefaultTakerSharePercent int `mapstructure:"default-taker-share-percent"`

	// StartBufferMinutes is added to every "now" snapshot so that the
	// submitted start has not already elapsed by the time the transaction
	// is signed.
	StartBufferMinutes int64 `mapstructure:"start-buffer-minutes"`

	// LapsedCorrectionMinutes is the correction applied to a field found
	// to be in the past on re-check just before submission.
	LapsedCorrectionMinutes int64 `mapstructure:"lapsed-correction-minutes"`

	// VestedClaimBufferMinutes is added to the purchase end offset to
	// derive the default claim start of a vested bond.
	VestedClaimBufferMinutes int64 `mapstructure:"vested-claim-buffer-minutes"`

	// NFTInfoCacheSize bounds the LRU cache of bond NFT info entries.
	NFTInfoCacheSize int `mapstructure:"nft-info-cache-size"`
}
