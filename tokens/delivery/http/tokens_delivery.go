package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	sdk "github.com/cosmos/cosmos-sdk/types"

	bqshttp "github.com/migaloo-labs/bqs/delivery/http"
	"github.com/migaloo-labs/bqs/domain"
	"github.com/migaloo-labs/bqs/domain/mvc"
	"github.com/migaloo-labs/bqs/log"
)

// TokensHandler represent the httphandler for the tokens
type TokensHandler struct {
	TUsecase mvc.TokensUsecase
	logger   log.Logger
}

const tokensResource = "/tokens"

func formatTokensResource(resource string) string {
	return tokensResource + resource
}

// NewTokensHandler will initialize the tokens/ resources endpoint
func NewTokensHandler(e *echo.Echo, ts mvc.TokensUsecase, logger log.Logger) {
	handler := &TokensHandler{
		TUsecase: ts,
		logger:   logger,
	}
	e.GET(formatTokensResource("/metadata"), handler.GetMetadata)
	e.GET(formatTokensResource("/prices"), handler.GetPrices)
}

// @Summary Token Metadata
// @Description returns token metadata with human denom, precision and chain
// @Description for the given chain denoms. Unmapped denoms degrade to the
// @Description fallback metadata rather than erroring.
// @ID get-token-metadata
// @Produce json
// @Param denoms query string false "Comma-separated list of chain denoms. Omit for the full registry."
// @Success 200 {object} map[string]domain.Token "Success"
// @Router /tokens/metadata [get]
func (a *TokensHandler) GetMetadata(c echo.Context) error {
	_, span := bqshttp.Span(c)

	denomsStr := c.QueryParam("denoms")
	if len(denomsStr) == 0 {
		tokenMetadata, err := a.TUsecase.GetFullTokenMetadata()
		if err != nil {
			bqshttp.RecordSpanError(span, err)
			return c.JSON(http.StatusInternalServerError, domain.ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, tokenMetadata)
	}

	denoms := strings.Split(denomsStr, ",")

	tokenMetadataResult := make(map[string]domain.Token, len(denoms))

	for _, denom := range denoms {
		denom, err := url.PathUnescape(denom)
		if err != nil {
			return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
		}

		if err := sdk.ValidateDenom(denom); err != nil {
			return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
		}

		tokenMetadata, err := a.TUsecase.GetMetadataByChainDenom(denom)
		if err != nil {
			bqshttp.RecordSpanError(span, err)
			return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}

		tokenMetadataResult[denom] = tokenMetadata
	}

	return c.JSON(http.StatusOK, tokenMetadataResult)
}

// @Summary Token Prices
// @Description returns quote-currency prices for the given chain denoms.
// @Description A denom absent from the feed is omitted from the result
// @Description rather than failing the whole request.
// @ID get-token-prices
// @Produce json
// @Param denoms query string true "Comma-separated list of chain denoms."
// @Success 200 {object} map[string]string "Success"
// @Router /tokens/prices [get]
func (a *TokensHandler) GetPrices(c echo.Context) error {
	ctx := c.Request().Context()

	denomsStr := c.QueryParam("denoms")
	if len(denomsStr) == 0 {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: "denoms query parameter is required"})
	}

	denoms := strings.Split(denomsStr, ",")

	prices := make(map[string]string, len(denoms))

	for _, denom := range denoms {
		denom, err := url.PathUnescape(denom)
		if err != nil {
			return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
		}

		price, err := a.TUsecase.GetPrice(ctx, denom)
		if err != nil {
			// An incomplete feed is a valid state. The affordance that
			// needed this price is hidden by the caller.
			continue
		}

		prices[denom] = price.String()
	}

	return c.JSON(http.StatusOK, prices)
}
