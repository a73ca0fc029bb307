package mvc

import (
	"context"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/migaloo-labs/bqs/domain"
)

// BondsUsecase defines an interface for the bonds usecase.
// It encapsulates the bond economics and scheduling calculator: the pure
// derivations that convert user-entered quantities, prices and dates into
// the exact numeric and temporal values submitted to the bond contract.
type BondsUsecase interface {
	// GetFeeBreakdown computes the gross, fee-split and net amounts for
	// the given supply and unit price, formatted at the purchasing
	// token's precision. The taker share defaults to the configured
	// value when takerSharePercent is nil; the fee rate defaults to the
	// contract config value with a static fallback.
	GetFeeBreakdown(ctx context.Context, totalSupply, unitPrice, purchasingDenom string, takerSharePercent *int) (domain.FeeBreakdown, error)

	// GetMarkupPrice derives the bond unit price from the live market
	// price ratio of the listed and sale tokens, adjusted by the given
	// markup (or discount, when negative) percent. Formatted to 6
	// fractional digits. Tokens may be given as chain denoms or as
	// registry symbols.
	GetMarkupPrice(ctx context.Context, markupPercent, listTokenDenom, saleTokenDenom string) (string, error)

	// GetDiscountPercent compares a bond's unit price against the live
	// market and returns the discount (negative) or premium (positive)
	// percent. A feed miss yields a DataUnavailableError.
	GetDiscountPercent(ctx context.Context, listTokenDenom, saleTokenDenom, bondUnitPrice string) (osmomath.BigDec, error)

	// GetContractFeeRatePercent returns the bond contract's configured
	// fee rate, falling back to the static default on fetch or parse failure.
	GetContractFeeRatePercent(ctx context.Context) osmomath.BigDec

	// ReduceDraft applies a single edit event to the draft and returns a
	// new draft with the ordering invariants repaired.
	ReduceDraft(draft domain.BondDraft, event domain.ScheduleEvent) domain.BondDraft

	// ApplyPreset populates all schedule fields of the draft from a named
	// duration preset measured from the given snapshot instant.
	ApplyPreset(draft domain.BondDraft, presetName string, now time.Time) (domain.BondDraft, error)

	// GetPresets returns the named duration preset table.
	GetPresets() []domain.DurationPreset

	// ValidateSchedule enforces the hard submission preconditions on the
	// draft against the given snapshot instant.
	ValidateSchedule(draft domain.BondDraft, now time.Time) error

	// RepairLapsed advances any schedule field found to be in the past to
	// the current instant plus the configured correction.
	RepairLapsed(draft domain.BondDraft, now time.Time) domain.BondDraft

	// GetScheduleOffsets converts the draft into strictly positive minute
	// offsets from the snapshot instant.
	GetScheduleOffsets(draft domain.BondDraft, now time.Time) (domain.ScheduleOffsets, error)

	// BuildCreationPayload validates and merges the fee and schedule
	// derivations into the record handed to the submission collaborator.
	BuildCreationPayload(ctx context.Context, req domain.BondCreationRequest, now time.Time) (domain.BondCreationPayload, error)

	// GetBondNFTInfo returns the contract-side view of a minted bond.
	GetBondNFTInfo(ctx context.Context, tokenID string) (domain.BondNFTInfo, error)
}
