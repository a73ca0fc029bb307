package usecase

import (
	"context"
	"strings"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/migaloo-labs/bqs/domain"
)

var (
	oneHundredBigDec = osmomath.NewBigDec(100)
	oneBigDec        = osmomath.OneBigDec()
)

const (
	// Number of fractional digits for reported fee percentages.
	percentPrecision = 2
	// Number of fractional digits for markup-adjusted prices.
	markupPricePrecision = 6
)

// ComputeFeeBreakdown derives the gross, fee-split and net amounts for the
// given supply and unit price. The maker fee is computed as the complement
// of the taker fee rather than independently so that the sum invariant
// holds exactly even under rounding. Internal arithmetic is full precision;
// outputs are truncated to the given decimals only at the string boundary.
func ComputeFeeBreakdown(totalSupply, unitPrice string, decimals int, feeRatePercent, takerSharePercent osmomath.BigDec) (domain.FeeBreakdown, error) {
	supply, err := parseNonNegativeDec("total_supply", totalSupply)
	if err != nil {
		return domain.FeeBreakdown{}, err
	}

	price, err := parseNonNegativeDec("price", unitPrice)
	if err != nil {
		return domain.FeeBreakdown{}, err
	}

	gross := supply.Mul(price)
	totalFee := gross.Mul(feeRatePercent).Quo(oneHundredBigDec)
	takerFee := totalFee.Mul(takerSharePercent).Quo(oneHundredBigDec)
	makerFee := totalFee.Sub(takerFee)
	net := gross.Sub(totalFee)

	breakdown := domain.FeeBreakdown{
		GrossAmount: FormatToPrecision(gross, decimals),
		MakerFee:    FormatToPrecision(makerFee, decimals),
		TakerFee:    FormatToPrecision(takerFee, decimals),
		TotalFee:    FormatToPrecision(totalFee, decimals),
		NetAmount:   FormatToPrecision(net, decimals),
	}

	if gross.IsZero() {
		zeroPercent := FormatToPrecision(osmomath.ZeroBigDec(), percentPrecision)
		breakdown.MakerFeePercent = zeroPercent
		breakdown.TakerFeePercent = zeroPercent
		breakdown.TotalFeePercent = zeroPercent
		return breakdown, nil
	}

	breakdown.MakerFeePercent = FormatToPrecision(makerFee.Quo(gross).Mul(oneHundredBigDec), percentPrecision)
	breakdown.TakerFeePercent = FormatToPrecision(takerFee.Quo(gross).Mul(oneHundredBigDec), percentPrecision)
	breakdown.TotalFeePercent = FormatToPrecision(totalFee.Quo(gross).Mul(oneHundredBigDec), percentPrecision)

	return breakdown, nil
}

// ComputeMarkupPrice derives the bond unit price from the market price
// ratio of the listed and sale tokens, adjusted by the markup percent.
// A negative markup is a discount versus the market.
func ComputeMarkupPrice(markupPercent, listTokenPrice, saleTokenPrice osmomath.BigDec) (string, error) {
	if listTokenPrice.IsNil() || saleTokenPrice.IsNil() || listTokenPrice.IsZero() || saleTokenPrice.IsZero() {
		return "", domain.DataUnavailableError{Resource: "price", Key: "markup base"}
	}

	basePrice := listTokenPrice.Quo(saleTokenPrice)
	result := basePrice.Mul(oneBigDec.Add(markupPercent.Quo(oneHundredBigDec)))

	return FormatToPrecision(result, markupPricePrecision), nil
}

// ComputeDiscountPercent compares the bond unit price against the live
// market prices. Negative result is a discount, positive a premium.
func ComputeDiscountPercent(bondUnitPrice, listTokenPrice, saleTokenPrice osmomath.BigDec) (osmomath.BigDec, error) {
	if listTokenPrice.IsNil() || saleTokenPrice.IsNil() || listTokenPrice.IsZero() || saleTokenPrice.IsZero() {
		return osmomath.BigDec{}, domain.DataUnavailableError{Resource: "price", Key: "discount base"}
	}

	bondPriceInQuote := bondUnitPrice.Mul(saleTokenPrice)

	return bondPriceInQuote.Sub(listTokenPrice).Quo(listTokenPrice).Mul(oneHundredBigDec), nil
}

// FormatToPrecision formats the given decimal as a string truncated to
// exactly the given number of fractional digits. Truncation happens here
// and only here so that internal arithmetic keeps full precision.
func FormatToPrecision(value osmomath.BigDec, decimals int) string {
	// BigDec.String renders a fixed number of fractional digits,
	// always more than any token precision we accept.
	s := value.String()

	dotIndex := strings.IndexByte(s, '.')
	if dotIndex == -1 {
		return s
	}

	if decimals <= 0 {
		return s[:dotIndex]
	}

	fraction := s[dotIndex+1:]
	if len(fraction) > decimals {
		fraction = fraction[:decimals]
	}

	return s[:dotIndex] + "." + fraction
}

// parseNonNegativeDec parses a user-entered decimal string, rejecting
// missing, unparseable and negative values with a field-level error.
func parseNonNegativeDec(field, value string) (osmomath.BigDec, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return osmomath.BigDec{}, domain.InvalidInputError{Field: field, Reason: "missing value"}
	}

	parsed, err := osmomath.NewBigDecFromStr(trimmed)
	if err != nil {
		return osmomath.BigDec{}, domain.InvalidInputError{Field: field, Reason: err.Error()}
	}

	if parsed.IsNegative() {
		return osmomath.BigDec{}, domain.InvalidInputError{Field: field, Reason: "negative value"}
	}

	return parsed, nil
}

// GetFeeBreakdown implements mvc.BondsUsecase.
func (b *bondsUseCase) GetFeeBreakdown(ctx context.Context, totalSupply, unitPrice, purchasingDenom string, takerSharePercent *int) (domain.FeeBreakdown, error) {
	if purchasingDenom == "" {
		return domain.FeeBreakdown{}, domain.InvalidInputError{Field: "denom", Reason: "missing value"}
	}

	tokenMetadata, err := b.tokensUsecase.GetMetadataByChainDenom(purchasingDenom)
	if err != nil {
		return domain.FeeBreakdown{}, err
	}

	takerShare := osmomath.NewBigDec(int64(b.config.DefaultTakerSharePercent))
	if takerSharePercent != nil {
		if *takerSharePercent < 0 || *takerSharePercent > 100 {
			return domain.FeeBreakdown{}, domain.InvalidInputError{Field: "taker_share_percent", Reason: "must be within [0, 100]"}
		}
		takerShare = osmomath.NewBigDec(int64(*takerSharePercent))
	}

	feeRate := b.GetContractFeeRatePercent(ctx)

	return ComputeFeeBreakdown(totalSupply, unitPrice, tokenMetadata.Precision, feeRate, takerShare)
}

// GetMarkupPrice implements mvc.BondsUsecase.
func (b *bondsUseCase) GetMarkupPrice(ctx context.Context, markupPercent, listTokenDenom, saleTokenDenom string) (string, error) {
	markup, err := parseMarkupPercent(markupPercent)
	if err != nil {
		return "", err
	}

	listPrice, salePrice, err := b.getPricePair(ctx, listTokenDenom, saleTokenDenom)
	if err != nil {
		return "", err
	}

	return ComputeMarkupPrice(markup, listPrice, salePrice)
}

// GetDiscountPercent implements mvc.BondsUsecase.
func (b *bondsUseCase) GetDiscountPercent(ctx context.Context, listTokenDenom, saleTokenDenom, bondUnitPrice string) (osmomath.BigDec, error) {
	unitPrice, err := parseNonNegativeDec("price", bondUnitPrice)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	listPrice, salePrice, err := b.getPricePair(ctx, listTokenDenom, saleTokenDenom)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	return ComputeDiscountPercent(unitPrice, listPrice, salePrice)
}

// resolveDenom accepts either a chain denom or a human symbol. A symbol
// known to the registry is translated to its chain denom; anything else is
// passed through untouched so that unmapped denoms keep their fallback path.
func (b *bondsUseCase) resolveDenom(denom string) string {
	if b.tokensUsecase.IsValidChainDenom(denom) {
		return denom
	}

	if chainDenom, err := b.tokensUsecase.GetChainDenom(denom); err == nil {
		return chainDenom
	}

	return denom
}

// getPricePair resolves both live prices, converting any feed miss into a
// DataUnavailableError so callers can hide the affordance instead of failing.
func (b *bondsUseCase) getPricePair(ctx context.Context, listTokenDenom, saleTokenDenom string) (osmomath.BigDec, osmomath.BigDec, error) {
	listTokenDenom = b.resolveDenom(listTokenDenom)
	saleTokenDenom = b.resolveDenom(saleTokenDenom)

	listPrice, err := b.tokensUsecase.GetPrice(ctx, listTokenDenom)
	if err != nil {
		b.logger.Debug("list token price unavailable", zap.String("denom", listTokenDenom), zap.Error(err))
		return osmomath.BigDec{}, osmomath.BigDec{}, domain.DataUnavailableError{Resource: "price", Key: listTokenDenom}
	}

	salePrice, err := b.tokensUsecase.GetPrice(ctx, saleTokenDenom)
	if err != nil {
		b.logger.Debug("sale token price unavailable", zap.String("denom", saleTokenDenom), zap.Error(err))
		return osmomath.BigDec{}, osmomath.BigDec{}, domain.DataUnavailableError{Resource: "price", Key: saleTokenDenom}
	}

	return listPrice, salePrice, nil
}

func parseMarkupPercent(markupPercent string) (osmomath.BigDec, error) {
	trimmed := strings.TrimSpace(markupPercent)
	if trimmed == "" {
		return osmomath.BigDec{}, domain.InvalidInputError{Field: "markup_percent", Reason: "missing value"}
	}

	markup, err := osmomath.NewBigDecFromStr(trimmed)
	if err != nil {
		return osmomath.BigDec{}, domain.InvalidInputError{Field: "markup_percent", Reason: err.Error()}
	}

	if markup.LT(oneHundredBigDec.Neg()) || markup.GT(oneHundredBigDec) {
		return osmomath.BigDec{}, domain.InvalidInputError{Field: "markup_percent", Reason: "must be within [-100, 100]"}
	}

	return markup, nil
}
