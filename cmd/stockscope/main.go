package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockScope/internal/config"
	"StockScope/internal/httpx"
	"StockScope/internal/marketdata"
)

var (
	cfgPath string
	offline bool
)

var rootCmd = &cobra.Command{
	Use:           "stockscope",
	Short:         "Stock analysis dashboard with charts, news and AI chat",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "serve synthetic data instead of calling Yahoo Finance")
	rootCmd.AddCommand(serveCmd, snapshotCmd)
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)
}

func newHTTPClient(cfg *config.Config) *httpx.Client {
	return httpx.NewClient(httpx.Options{
		Timeout:  cfg.RequestTimeout(),
		ProxyURL: cfg.Proxy,
	})
}

// buildFetcher selects the market-data source and wraps it in the TTL
// cache. The offline flag swaps in synthetic data for development.
func buildFetcher(cfg *config.Config) marketdata.Fetcher {
	var fetcher marketdata.Fetcher
	if offline {
		fetcher = &marketdata.MockFetcher{}
	} else {
		fetcher = marketdata.NewYahooClient(cfg.DataSource.BaseURL, cfg.DataSource.Interval, newHTTPClient(cfg))
	}
	return marketdata.NewCachedFetcher(fetcher, cfg.CacheTTL())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("stockscope failed")
	}
}
