package domain

// Config defines the config for the bonds sidecar query server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress             string `mapstructure:"server-address"`
	ServerTimeoutDurationSecs int    `mapstructure:"timeout-duration-secs"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	ChainRESTGatewayEndpoint string `mapstructure:"rest-gateway-endpoint"`
	ChainID                  string `mapstructure:"chain-id"`

	// Chain registry assets file URL.
	ChainRegistryAssetsFileURL string `mapstructure:"chain-registry-assets-url"`

	// CORS encapsulates the CORS headers applied to every response.
	CORS *CORSConfig `mapstructure:"cors"`

	// Pricing encapsulates the price feed config.
	Pricing *PricingConfig `mapstructure:"pricing"`

	// Bonds encapsulates the bond contract and calculator config.
	Bonds *BondsConfig `mapstructure:"bonds"`

	OTEL *OTELConfig `mapstructure:"otel"`
}

// CORSConfig defines the CORS headers returned on every response.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// OTELConfig defines the configuration for the OTEL tracer and the
// Sentry exporter.
type OTELConfig struct {
	DSN                string  `mapstructure:"dsn"`
	SampleRate         float64 `mapstructure:"sample-rate"`
	EnableTracing      bool    `mapstructure:"enable-tracing"`
	ProfilesSampleRate float64 `mapstructure:"profiles-sample-rate"`
	Environment        string  `mapstructure:"environment"`
}
