package usecase

import (
	"context"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/migaloo-labs/bqs/domain"
	"github.com/migaloo-labs/bqs/domain/mvc"
	"github.com/migaloo-labs/bqs/log"
)

type bondsUseCase struct {
	config        domain.BondsConfig
	tokensUsecase mvc.TokensUsecase
	contract      ContractQuerier
	logger        log.Logger

	presets       []domain.DurationPreset
	presetsByName map[string]domain.DurationPreset

	// Contract fee rate is fetched once per session and kept for the
	// lifetime of the process. Failed fetches fall back to the default
	// and are retried on the next call. The usecase is shared across
	// request goroutines, hence the atomic pointer.
	feeRatePercent atomic.Pointer[osmomath.BigDec]

	nftInfoCache *lru.Cache[string, domain.BondNFTInfo]
}

var _ mvc.BondsUsecase = &bondsUseCase{}

// durationPresets is the named relative schedule table. Offsets are in
// minutes from the selection instant; the start buffer is added on top
// of every entry at application time. Maturity offsets are measured from
// the same instant as the purchase window, not from the purchase end.
var durationPresets = []domain.DurationPreset{
	{Name: "12h Bond", StartMinutes: 0, EndMinutes: 715, MaturityMinutes: 775},
	{Name: "24h Bond", StartMinutes: 0, EndMinutes: 1435, MaturityMinutes: 1615},
	{Name: "7d Bond", StartMinutes: 0, EndMinutes: 10075, MaturityMinutes: 11515},
	{Name: "30d Bond", StartMinutes: 0, EndMinutes: 43195, MaturityMinutes: 44635},
}

// NewBondsUsecase will create a new bonds use case object
func NewBondsUsecase(config domain.BondsConfig, tokensUsecase mvc.TokensUsecase, contract ContractQuerier, logger log.Logger) (mvc.BondsUsecase, error) {
	nftInfoCache, err := lru.New[string, domain.BondNFTInfo](config.NFTInfoCacheSize)
	if err != nil {
		return nil, err
	}

	presetsByName := make(map[string]domain.DurationPreset, len(durationPresets))
	for _, preset := range durationPresets {
		presetsByName[preset.Name] = preset
	}

	return &bondsUseCase{
		config:        config,
		tokensUsecase: tokensUsecase,
		contract:      contract,
		logger:        logger,

		presets:       durationPresets,
		presetsByName: presetsByName,

		nftInfoCache: nftInfoCache,
	}, nil
}

// GetContractFeeRatePercent implements mvc.BondsUsecase.
// The contract reports the rate as a decimal fraction; it is converted to
// percent here. On fetch or parse failure the configured default applies.
func (b *bondsUseCase) GetContractFeeRatePercent(ctx context.Context) osmomath.BigDec {
	if cached := b.feeRatePercent.Load(); cached != nil {
		return *cached
	}

	defaultRate, err := osmomath.NewBigDecFromStr(b.config.DefaultFeeRatePercent)
	if err != nil {
		// Misconfigured default. The shipped contracts charge 3%.
		defaultRate = osmomath.NewBigDec(3)
	}

	feeRateFraction, err := b.contract.GetFeeRate(ctx)
	if err != nil {
		b.logger.Warn("failed to fetch contract fee rate, using default", zap.Error(err))
		return defaultRate
	}

	feeRatePercent := feeRateFraction.Mul(oneHundredBigDec)
	b.feeRatePercent.Store(&feeRatePercent)

	return feeRatePercent
}

// BuildCreationPayload implements mvc.BondsUsecase.
// It repairs any lapsed fields, enforces the schedule preconditions, and
// merges the fee and schedule derivations into the submission record.
func (b *bondsUseCase) BuildCreationPayload(ctx context.Context, req domain.BondCreationRequest, now time.Time) (domain.BondCreationPayload, error) {
	if req.Denom == "" {
		return domain.BondCreationPayload{}, domain.InvalidInputError{Field: "denom", Reason: "missing value"}
	}

	supply, err := parseNonNegativeDec("total_supply", req.TotalSupply)
	if err != nil {
		return domain.BondCreationPayload{}, err
	}
	if _, err := parseNonNegativeDec("price", req.UnitPrice); err != nil {
		return domain.BondCreationPayload{}, err
	}

	// The contract takes the supply in the denom's base units.
	scalingFactor, err := b.tokensUsecase.GetChainScalingFactorByDenomMut(req.Denom)
	if err != nil {
		return domain.BondCreationPayload{}, domain.InvalidInputError{Field: "denom", Reason: err.Error()}
	}

	draft := b.RepairLapsed(req.Draft, now)

	if err := b.ValidateSchedule(draft, now); err != nil {
		return domain.BondCreationPayload{}, err
	}

	payload := domain.BondCreationPayload{
		Denom:           req.Denom,
		TotalSupply:     req.TotalSupply,
		TotalSupplyBase: FormatToPrecision(supply.Mul(osmomath.BigDecFromDec(scalingFactor)), 0),
		UnitPrice:       req.UnitPrice,
		Description:     req.Description,

		NFTName:     req.NFTName,
		NFTImageURL: req.NFTImageURL,

		BondTerms: domain.BondTerms{
			BondType:      draft.BondType,
			PurchaseStart: draft.PurchaseStart,
			PurchaseEnd:   draft.PurchaseEnd,
			ClaimStart:    draft.EffectiveClaimStart(),
			Maturity:      draft.Maturity,
		},
	}

	// Explicit maker/taker rates are carried only for a non-default split.
	if req.TakerSharePercent != nil {
		if *req.TakerSharePercent < 0 || *req.TakerSharePercent > 100 {
			return domain.BondCreationPayload{}, domain.InvalidInputError{Field: "taker_share_percent", Reason: "must be within [0, 100]"}
		}

		feeRateFraction := b.GetContractFeeRatePercent(ctx).Quo(oneHundredBigDec)
		takerShare := osmomath.NewBigDec(int64(*req.TakerSharePercent)).Quo(oneHundredBigDec)

		takerRate := feeRateFraction.Mul(takerShare)
		makerRate := feeRateFraction.Sub(takerRate)

		payload.TakerFeeRate = FormatToPrecision(takerRate, markupPricePrecision)
		payload.MakerFeeRate = FormatToPrecision(makerRate, markupPricePrecision)
	}

	return payload, nil
}

// GetBondNFTInfo implements mvc.BondsUsecase.
func (b *bondsUseCase) GetBondNFTInfo(ctx context.Context, tokenID string) (domain.BondNFTInfo, error) {
	if tokenID == "" {
		return domain.BondNFTInfo{}, domain.InvalidInputError{Field: "token_id", Reason: "missing value"}
	}

	if info, found := b.nftInfoCache.Get(tokenID); found {
		return info, nil
	}

	info, err := b.contract.GetNFTInfo(ctx, tokenID)
	if err != nil {
		return domain.BondNFTInfo{}, domain.DataUnavailableError{Resource: "bond NFT info", Key: tokenID}
	}

	b.nftInfoCache.Add(tokenID, info)

	return info, nil
}
