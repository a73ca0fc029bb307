package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	bqshttp "github.com/migaloo-labs/bqs/delivery/http"
	"github.com/migaloo-labs/bqs/domain"
	"github.com/migaloo-labs/bqs/domain/mvc"
	"github.com/migaloo-labs/bqs/log"
)

// BondsHandler represent the httphandler for bonds
type BondsHandler struct {
	BUsecase mvc.BondsUsecase
	logger   log.Logger
}

const bondsResource = "/bonds"

func formatBondsResource(resource string) string {
	return bondsResource + resource
}

// NewBondsHandler will initialize the bonds/ resources endpoint
func NewBondsHandler(e *echo.Echo, us mvc.BondsUsecase, logger log.Logger) {
	handler := &BondsHandler{
		BUsecase: us,
		logger:   logger,
	}
	e.GET(formatBondsResource("/fee-quote"), handler.GetFeeQuote)
	e.GET(formatBondsResource("/markup-price"), handler.GetMarkupPrice)
	e.GET(formatBondsResource("/discount"), handler.GetDiscount)
	e.GET(formatBondsResource("/presets"), handler.GetPresets)
	e.GET(formatBondsResource("/nft/:id"), handler.GetBondNFTInfo)
	e.POST(formatBondsResource("/schedule"), handler.ComputeSchedule)
	e.POST(formatBondsResource("/payload"), handler.BuildPayload)
}

// @Summary Fee Quote
// @Description returns the gross, maker/taker fee split and net amounts for
// @Description the given total supply and unit price, formatted at the
// @Description purchasing token's precision.
// @ID get-bond-fee-quote
// @Produce json
// @Param supply query string true "Total bond supply as a decimal string."
// @Param price query string true "Unit price as a decimal string."
// @Param denom query string true "Chain denom of the purchasing token."
// @Param takerShare query int false "Taker share of the total fee in percent. Defaults to the configured split."
// @Success 200 {object} domain.FeeBreakdown "The computed fee breakdown"
// @Router /bonds/fee-quote [get]
func (a *BondsHandler) GetFeeQuote(c echo.Context) error {
	ctx, span := bqshttp.Span(c)

	totalSupply := c.QueryParam("supply")
	unitPrice := c.QueryParam("price")
	denom := c.QueryParam("denom")

	var takerShare *int
	if takerShareStr := c.QueryParam("takerShare"); takerShareStr != "" {
		parsed, err := strconv.Atoi(takerShareStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
		}
		takerShare = &parsed
	}

	breakdown, err := a.BUsecase.GetFeeBreakdown(ctx, totalSupply, unitPrice, denom, takerShare)
	if err != nil {
		bqshttp.RecordSpanError(span, err)
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, breakdown)
}

// @Summary Markup Price
// @Description returns the bond unit price derived from the live market
// @Description price ratio of the listed and sale tokens, adjusted by the
// @Description given markup (or discount, when negative) percent.
// @ID get-bond-markup-price
// @Produce json
// @Param markup query string true "Markup percent within [-100, 100]."
// @Param listDenom query string true "Chain denom of the listed token."
// @Param saleDenom query string true "Chain denom of the sale token."
// @Success 200 {object} MarkupPriceResponse "The markup-adjusted price"
// @Router /bonds/markup-price [get]
func (a *BondsHandler) GetMarkupPrice(c echo.Context) error {
	ctx, span := bqshttp.Span(c)

	price, err := a.BUsecase.GetMarkupPrice(ctx, c.QueryParam("markup"), c.QueryParam("listDenom"), c.QueryParam("saleDenom"))
	if err != nil {
		bqshttp.RecordSpanError(span, err)
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, MarkupPriceResponse{Price: price})
}

// @Summary Discount
// @Description compares a bond's unit price against the live market and
// @Description returns the discount (negative) or premium (positive) percent.
// @ID get-bond-discount
// @Produce json
// @Param listDenom query string true "Chain denom of the listed token."
// @Param saleDenom query string true "Chain denom of the sale token."
// @Param price query string true "Bond unit price as a decimal string."
// @Success 200 {object} DiscountResponse "The discount percent"
// @Router /bonds/discount [get]
func (a *BondsHandler) GetDiscount(c echo.Context) error {
	ctx, span := bqshttp.Span(c)

	discount, err := a.BUsecase.GetDiscountPercent(ctx, c.QueryParam("listDenom"), c.QueryParam("saleDenom"), c.QueryParam("price"))
	if err != nil {
		bqshttp.RecordSpanError(span, err)
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, DiscountResponse{DiscountPercent: discount.String()})
}

// @Summary Duration Presets
// @Description returns the named duration preset table.
// @ID get-bond-presets
// @Produce json
// @Success 200 {array} domain.DurationPreset "The preset table"
// @Router /bonds/presets [get]
func (a *BondsHandler) GetPresets(c echo.Context) error {
	return c.JSON(http.StatusOK, a.BUsecase.GetPresets())
}

// @Summary Bond NFT Info
// @Description returns the contract-side view of a minted bond.
// @ID get-bond-nft-info
// @Produce json
// @Param id path string true "Bond NFT token ID."
// @Success 200 {object} domain.BondNFTInfo "The bond NFT info"
// @Router /bonds/nft/{id} [get]
func (a *BondsHandler) GetBondNFTInfo(c echo.Context) error {
	ctx, span := bqshttp.Span(c)

	info, err := a.BUsecase.GetBondNFTInfo(ctx, c.Param("id"))
	if err != nil {
		bqshttp.RecordSpanError(span, err)
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, info)
}

// @Summary Compute Schedule
// @Description applies the given edits (and optional preset) to a bond
// @Description draft, repairs the coupling invariants, validates the
// @Description ordering preconditions and returns the draft together with
// @Description the minute offsets submitted to the contract.
// @ID compute-bond-schedule
// @Accept json
// @Produce json
// @Success 200 {object} ScheduleResponse "The reduced draft and its offsets"
// @Router /bonds/schedule [post]
func (a *BondsHandler) ComputeSchedule(c echo.Context) error {
	_, span := bqshttp.Span(c)

	var req ScheduleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	now := time.Now()

	draft, err := a.reduceRequest(req, now)
	if err != nil {
		bqshttp.RecordSpanError(span, err)
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	if err := a.BUsecase.ValidateSchedule(draft, now); err != nil {
		bqshttp.RecordSpanError(span, err)
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	offsets, err := a.BUsecase.GetScheduleOffsets(draft, now)
	if err != nil {
		bqshttp.RecordSpanError(span, err)
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, ScheduleResponse{Draft: draft, Offsets: offsets})
}

// @Summary Build Creation Payload
// @Description validates and merges the fee and schedule derivations into
// @Description the bond-creation record handed to the submitting wallet.
// @ID build-bond-payload
// @Accept json
// @Produce json
// @Success 200 {object} domain.BondCreationPayload "The creation payload"
// @Router /bonds/payload [post]
func (a *BondsHandler) BuildPayload(c echo.Context) error {
	ctx, span := bqshttp.Span(c)

	var req CreateBondPayloadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	now := time.Now()

	draft, err := a.reduceRequest(req.ScheduleRequest, now)
	if err != nil {
		bqshttp.RecordSpanError(span, err)
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	payload, err := a.BUsecase.BuildCreationPayload(ctx, domain.BondCreationRequest{
		Draft:             draft,
		Denom:             req.Denom,
		TotalSupply:       req.TotalSupply,
		UnitPrice:         req.Price,
		Description:       req.Description,
		NFTName:           req.NFTName,
		NFTImageURL:       req.NFTImageURL,
		TakerSharePercent: req.TakerSharePercent,
	}, now)
	if err != nil {
		bqshttp.RecordSpanError(span, err)
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, payload)
}

// reduceRequest folds the request's preset and ordered field edits into a
// draft through the schedule reducer.
func (a *BondsHandler) reduceRequest(req ScheduleRequest, now time.Time) (domain.BondDraft, error) {
	loc, err := req.Location()
	if err != nil {
		return domain.BondDraft{}, err
	}

	draft := domain.BondDraft{}
	draft = a.BUsecase.ReduceDraft(draft, domain.SetBondTypeEvent{BondType: domain.BondType(req.BondType)})

	if req.Preset != "" {
		draft, err = a.BUsecase.ApplyPreset(draft, req.Preset, now)
		if err != nil {
			return domain.BondDraft{}, domain.InvalidInputError{Field: "preset", Reason: err.Error()}
		}
	}

	for _, field := range req.Fields {
		event, err := field.ToEvent(loc)
		if err != nil {
			return domain.BondDraft{}, err
		}
		draft = a.BUsecase.ReduceDraft(draft, event)
	}

	if req.ImmediateClaim {
		draft = a.BUsecase.ReduceDraft(draft, domain.SetImmediateClaimEvent{ImmediateClaim: true})
	}

	return draft, nil
}
