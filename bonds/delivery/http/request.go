package http

import (
	"time"

	"github.com/labstack/echo/v4"

	bondsusecase "github.com/migaloo-labs/bqs/bonds/usecase"
	bqshttp "github.com/migaloo-labs/bqs/delivery/http"
	"github.com/migaloo-labs/bqs/domain"
)

// ScheduleRequest carries the form state of a bond schedule: an optional
// named preset plus an ordered list of field edits, each a calendar date
// and a 24-hour time in the client's timezone.
type ScheduleRequest struct {
	BondType       string               `json:"bond_type"`
	Timezone       string               `json:"timezone,omitempty"`
	Preset         string               `json:"preset,omitempty"`
	ImmediateClaim bool                 `json:"immediate_claim,omitempty"`
	Fields         []ScheduleFieldInput `json:"fields,omitempty"`
}

var _ bqshttp.RequestUnmarshaler = &ScheduleRequest{}

// UnmarshalHTTPRequest implements RequestUnmarshaler.
func (r *ScheduleRequest) UnmarshalHTTPRequest(c echo.Context) error {
	return c.Bind(r)
}

// Validate validates the request.
func (r ScheduleRequest) Validate() error {
	switch domain.BondType(r.BondType) {
	case domain.BondTypeCliff, domain.BondTypeVested:
	default:
		return domain.InvalidInputError{Field: "bond_type", Reason: "must be cliff or vested"}
	}

	if r.Preset == "" && len(r.Fields) == 0 {
		return domain.InvalidInputError{Field: "fields", Reason: "either a preset or at least one field edit is required"}
	}

	return nil
}

// Location resolves the client's IANA timezone, defaulting to UTC.
func (r ScheduleRequest) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, domain.InvalidInputError{Field: "timezone", Reason: err.Error()}
	}

	return loc, nil
}

// ScheduleFieldInput is a single schedule field edit. Date and Time are
// combined by direct concatenation before being parsed back into an
// absolute instant, keeping the representation locale-invariant.
type ScheduleFieldInput struct {
	Field string `json:"field"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// ToEvent converts the input into a reducer event in the given location.
func (f ScheduleFieldInput) ToEvent(loc *time.Location) (domain.ScheduleEvent, error) {
	switch domain.ScheduleField(f.Field) {
	case domain.ScheduleFieldPurchaseStart, domain.ScheduleFieldPurchaseEnd,
		domain.ScheduleFieldClaimStart, domain.ScheduleFieldClaimEnd,
		domain.ScheduleFieldMaturity:
	default:
		return nil, domain.InvalidInputError{Field: "field", Reason: "unknown schedule field " + f.Field}
	}

	instant, err := bondsusecase.CombineDateTime(f.Date, f.Time, loc)
	if err != nil {
		return nil, err
	}

	return domain.SetInstantEvent{Field: domain.ScheduleField(f.Field), Value: instant}, nil
}

// CreateBondPayloadRequest extends the schedule request with the
// committed amounts, denom and NFT metadata of a new bond.
type CreateBondPayloadRequest struct {
	ScheduleRequest

	Denom       string `json:"denom"`
	TotalSupply string `json:"total_supply"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`

	NFTName     string `json:"nft_name,omitempty"`
	NFTImageURL string `json:"nft_image_url,omitempty"`

	TakerSharePercent *int `json:"taker_share_percent,omitempty"`
}

var _ bqshttp.RequestUnmarshaler = &CreateBondPayloadRequest{}

// UnmarshalHTTPRequest implements RequestUnmarshaler.
func (r *CreateBondPayloadRequest) UnmarshalHTTPRequest(c echo.Context) error {
	return c.Bind(r)
}

// Validate validates the request.
func (r CreateBondPayloadRequest) Validate() error {
	if err := r.ScheduleRequest.Validate(); err != nil {
		return err
	}

	if r.Denom == "" {
		return domain.InvalidInputError{Field: "denom", Reason: "missing value"}
	}

	return nil
}

// MarkupPriceResponse wraps a markup-adjusted price.
type MarkupPriceResponse struct {
	Price string `json:"price"`
}

// DiscountResponse wraps a discount (negative) or premium (positive) percent.
type DiscountResponse struct {
	DiscountPercent string `json:"discount_percent"`
}

// ScheduleResponse returns the reduced draft together with the minute
// offsets submitted to the contract.
type ScheduleResponse struct {
	Draft   domain.BondDraft       `json:"draft"`
	Offsets domain.ScheduleOffsets `json:"offsets"`
}

func bindAndValidate(c echo.Context, req bqshttp.RequestUnmarshaler) error {
	return bqshttp.ParseRequest(c, req)
}
