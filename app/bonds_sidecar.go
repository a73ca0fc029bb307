package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	bondshttpdelivery "github.com/migaloo-labs/bqs/bonds/delivery/http"
	bondsusecase "github.com/migaloo-labs/bqs/bonds/usecase"
	"github.com/migaloo-labs/bqs/bqsutil/datafetchers"
	"github.com/migaloo-labs/bqs/domain"
	"github.com/migaloo-labs/bqs/domain/mvc"
	"github.com/migaloo-labs/bqs/log"
	"github.com/migaloo-labs/bqs/middleware"
	systemhttpdelivery "github.com/migaloo-labs/bqs/system/delivery/http"
	tokenshttpdelivery "github.com/migaloo-labs/bqs/tokens/delivery/http"
	tokensusecase "github.com/migaloo-labs/bqs/tokens/usecase"
	feedpricing "github.com/migaloo-labs/bqs/tokens/usecase/pricing/feed"
)

// BondsSidecarServer defines an interface for the bonds sidecar query server (BQS).
// It exposes endpoints for querying the token registry, the live price
// feed, and the bond economics and scheduling calculator from the frontend.
type BondsSidecarServer interface {
	GetTokensUseCase() mvc.TokensUsecase
	GetBondsUseCase() mvc.BondsUsecase
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type bondsSidecarServer struct {
	tokensUseCase   mvc.TokensUsecase
	bondsUseCase    mvc.BondsUsecase
	registryFetcher *datafetchers.IntervalFetcher[struct{}]
	priceFetcher    *datafetchers.IntervalFetcher[struct{}]
	e               *echo.Echo
	address         string
	logger          log.Logger
}

// registryRefetchInterval bounds how often changes to the chain registry
// assetlist are picked up.
const registryRefetchInterval = 15 * time.Minute

// priceRefreshTimeout bounds a single background refresh of the price feed.
const priceRefreshTimeout = 10 * time.Second

// GetTokensUseCase implements BondsSidecarServer.
func (bqs *bondsSidecarServer) GetTokensUseCase() mvc.TokensUsecase {
	return bqs.tokensUseCase
}

// GetBondsUseCase implements BondsSidecarServer.
func (bqs *bondsSidecarServer) GetBondsUseCase() mvc.BondsUsecase {
	return bqs.bondsUseCase
}

// GetLogger implements BondsSidecarServer.
func (bqs *bondsSidecarServer) GetLogger() log.Logger {
	return bqs.logger
}

// Shutdown implements BondsSidecarServer.
func (bqs *bondsSidecarServer) Shutdown(ctx context.Context) error {
	bqs.registryFetcher.Close()
	bqs.priceFetcher.Close()
	return bqs.e.Shutdown(ctx)
}

// Start implements BondsSidecarServer.
func (bqs *bondsSidecarServer) Start(context.Context) error {
	bqs.logger.Info("Starting bonds sidecar query server", zap.String("address", bqs.address))
	return bqs.e.Start(bqs.address)
}

// NewBondsSidecarServer creates a new bonds sidecar query server (BQS).
func NewBondsSidecarServer(config domain.Config, logger log.Logger) (BondsSidecarServer, error) {
	// Setup echo server
	e := echo.New()
	middleware := middleware.InitMiddleware(config.CORS)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	e.Use(middleware.TraceWithParamsMiddleware("bqs"))

	// Compute token metadata from chain denom.
	tokenMetadataByChainDenom, _, err := tokensusecase.GetTokensFromChainRegistry(config.ChainRegistryAssetsFileURL)
	if err != nil {
		return nil, err
	}

	// Initialize tokens usecase with the live price feed source.
	tokensUseCase := tokensusecase.NewTokensUsecase(tokenMetadataByChainDenom)
	pricingSource := feedpricing.New(*config.Pricing)
	tokensUseCase.RegisterPricingSource(pricingSource)

	// Keep the price cache warm so that user requests rarely pay for a
	// feed round trip. A failed refresh leaves the cached prices to
	// expire on their own.
	priceFetcher := datafetchers.NewIntervalFetcher(func() (struct{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), priceRefreshTimeout)
		defer cancel()
		return struct{}{}, pricingSource.RefreshPrices(ctx)
	}, time.Duration(config.Pricing.RefetchIntervalMs)*time.Millisecond)

	// Keep the registry fresh in the background. A failed refetch keeps
	// serving the last good snapshot.
	registryLoader := tokensusecase.NewChainRegistryHTTPFetcher(
		config.ChainRegistryAssetsFileURL,
		tokensusecase.GetTokensFromChainRegistry,
		tokensUseCase.LoadTokens,
	)
	registryFetcher := datafetchers.NewIntervalFetcher(func() (struct{}, error) {
		return struct{}{}, registryLoader.FetchAndUpdateTokens()
	}, registryRefetchInterval)

	// Initialize bonds usecase over the bond contract.
	contractClient := bondsusecase.NewLCDContractClient(config.ChainRESTGatewayEndpoint, config.Bonds.ContractAddress)
	bondsUseCase, err := bondsusecase.NewBondsUsecase(*config.Bonds, tokensUseCase, contractClient, logger)
	if err != nil {
		return nil, err
	}

	// HTTP handlers
	tokenshttpdelivery.NewTokensHandler(e, tokensUseCase, logger)
	bondshttpdelivery.NewBondsHandler(e, bondsUseCase, logger)
	systemhttpdelivery.NewSystemHandler(e, config, logger)

	return &bondsSidecarServer{
		tokensUseCase:   tokensUseCase,
		bondsUseCase:    bondsUseCase,
		registryFetcher: registryFetcher,
		priceFetcher:    priceFetcher,
		logger:          logger,
		e:               e,
		address:         config.ServerAddress,
	}, nil
}
