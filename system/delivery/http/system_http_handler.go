package http

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/migaloo-labs/bqs/domain"
	"github.com/migaloo-labs/bqs/log"

	"github.com/labstack/echo/v4"
)

type SystemHandler struct {
	logger      log.Logger
	restAddress string
	config      domain.Config
}

const (
	versionPlaceholder    = "version="
	whiteSpacePlaceholder = " "
)

// NewSystemHandler will initialize the /debug/pprof resources endpoint
func NewSystemHandler(e *echo.Echo, config domain.Config, logger log.Logger) {
	handler := &SystemHandler{
		logger:      logger,
		restAddress: config.ChainRESTGatewayEndpoint,
		config:      config,
	}

	// if debug mod, enable additional profiles that are too intensive
	// for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	e.GET("/debug/pprof/*", echo.WrapHandler(http.DefaultServeMux))
	e.GET("/debug/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	e.GET("/debug/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	e.GET("/debug/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	e.GET("/debug/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/healthcheck", handler.GetHealthStatus)
	e.GET("/config", handler.GetConfig)
	e.GET("/version", handler.GetVersion)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("docs/swagger.json"), echoSwagger.URL("swagger.yaml")))
}

// GetConfig returns the config for the BQS service
func (h *SystemHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.config)
}

func (h *SystemHandler) GetVersion(c echo.Context) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read build info")
	}

	for _, setting := range buildInfo.Settings {
		if setting.Key == "-ldflags" {
			version, err := extractVersion(setting.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to extract version information: %v", err))
			}

			return c.JSON(http.StatusOK, version)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "failed to find version information")
}

// extractVersion extracts the version string from the ldflags
func extractVersion(ldFlagsValueStr string) (string, error) {
	index := strings.Index(ldFlagsValueStr, versionPlaceholder)

	if index == -1 {
		return "", fmt.Errorf("No version string found")
	}

	// Extract the substring after the version placeholder
	substring := ldFlagsValueStr[index+len(versionPlaceholder):]

	index = strings.Index(substring, whiteSpacePlaceholder)
	if index == -1 {
		// The version was the last flag.
		return substring, nil
	}

	return substring[:index], nil
}

// GetHealthStatus handles health check requests against the chain REST gateway
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	// Check REST gateway status
	url := h.restAddress + "/cosmos/base/tendermint/v1beta1/node_info"
	resp, err := http.Get(url)
	if err != nil || resp == nil || resp.StatusCode != http.StatusOK {
		h.logger.Error("Error checking REST gateway status", zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Error connecting to the Migaloo chain via REST gateway")
	}
	defer resp.Body.Close()

	return c.JSON(http.StatusOK, map[string]string{
		"status":   "healthy",
		"chain_id": h.config.ChainID,
	})
}
