package main

import (
	"github.com/migaloo-labs/bqs/domain"
)

// DefaultConfig defines the default config for the bonds sidecar query server.
var DefaultConfig = domain.Config{
	ServerAddress:             ":9092",
	ServerTimeoutDurationSecs: 5,

	LoggerFilename:     "bqs.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	ChainRESTGatewayEndpoint:   "https://migaloo-api.polkachu.com",
	ChainID:                    "migaloo-1",
	ChainRegistryAssetsFileURL: "https://raw.githubusercontent.com/cosmos/chain-registry/master/migaloo/assetlist.json",

	CORS: &domain.CORSConfig{
		AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With, X-Server-Time",
		AllowedMethods: "HEAD, GET, POST",
		AllowedOrigin:  "*",
	},

	Pricing: &domain.PricingConfig{
		CacheExpiryMs:     120000, // 2 minutes.
		RefetchIntervalMs: 60000,  // 1 minute.
		FeedURL:           "https://prices.migaloo.zone/api/v3/simple/price",
		QuoteCurrency:     "usd",
		SymbolAliases: map[string]string{
			// Wrapped and synthetic variants priced as their base asset.
			"daoophir": "ophir",
			"wbtc":     "btc",
		},
	},

	Bonds: &domain.BondsConfig{
		// Mainnet bond contract as of mid 2024.
		ContractAddress: "migaloo1qwqy9vne50d05gjcalx7nvnyhhh0ya9xyx5pk88jrls06nvkk97s6cvgg8",

		DefaultFeeRatePercent:    "3",
		DefaultTakerSharePercent: 30,
		StartBufferMinutes:       5,
		LapsedCorrectionMinutes:  2,
		VestedClaimBufferMinutes: 2,
		NFTInfoCacheSize:         256,
	},
}
