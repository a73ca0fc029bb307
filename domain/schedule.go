package domain

import "time"

// ScheduleField identifies one of the directly editable schedule instants.
type ScheduleField string

const (
	ScheduleFieldPurchaseStart ScheduleField = "purchase_start"
	ScheduleFieldPurchaseEnd   ScheduleField = "purchase_end"
	ScheduleFieldClaimStart    ScheduleField = "claim_start"
	ScheduleFieldClaimEnd      ScheduleField = "claim_end"
	ScheduleFieldMaturity      ScheduleField = "maturity"
)

// ScheduleEvent is a single edit applied to a bond draft by the schedule
// reducer. Exactly one concrete event type is applied per reduction.
type ScheduleEvent interface {
	isScheduleEvent()
}

// SetInstantEvent sets one schedule field to an absolute instant.
type SetInstantEvent struct {
	Field ScheduleField
	Value time.Time
}

func (SetInstantEvent) isScheduleEvent() {}

// SetImmediateClaimEvent toggles the immediate-claim flag of a vested bond.
type SetImmediateClaimEvent struct {
	ImmediateClaim bool
}

func (SetImmediateClaimEvent) isScheduleEvent() {}

// SetBondTypeEvent switches the draft between cliff and vested.
type SetBondTypeEvent struct {
	BondType BondType
}

func (SetBondTypeEvent) isScheduleEvent() {}

// BondCreationRequest carries the user's committed bond configuration
// into payload assembly.
type BondCreationRequest struct {
	Draft BondDraft `json:"draft"`

	Denom       string `json:"denom"`
	TotalSupply string `json:"total_supply"`
	UnitPrice   string `json:"price"`
	Description string `json:"description,omitempty"`

	NFTName     string `json:"nft_name,omitempty"`
	NFTImageURL string `json:"nft_image_url,omitempty"`

	// TakerSharePercent is set only when the creator opted into a custom
	// fee split. The payload then carries explicit maker/taker rates.
	TakerSharePercent *int `json:"taker_share_percent,omitempty"`
}
