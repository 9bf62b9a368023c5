// Package cmd wires each sample to a cobra subcommand.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/betbot/alpacasamples/internal/metrics"
	"github.com/betbot/alpacasamples/internal/samples"
	"github.com/betbot/alpacasamples/pkg/config"
	"github.com/betbot/alpacasamples/pkg/logger"
	"github.com/betbot/alpacasamples/pkg/ratelimit"
	"github.com/betbot/alpacasamples/pkg/sdk/marketdata"
	"github.com/betbot/alpacasamples/pkg/sdk/stream"
	"github.com/betbot/alpacasamples/pkg/sdk/trading"
	"github.com/betbot/alpacasamples/pkg/secretstore"
)

var (
	// persistent flags
	cfgFile      string
	section      string
	settingsFile string
	logLevel     string
	outputFormat string
	secretDB     string
	envFile      string
	debugAddr    string

	limits = ratelimit.NewRateLimitManager()
)

var rootCmd = &cobra.Command{
	Use:   "alpaca-samples",
	Short: "Sample calls against the Alpaca trading and market data APIs",
	Long: `Sample calls against the Alpaca trading and market data APIs.

Credentials are read from the [alpaca] section of .config/config.ini
(api_key, api_secret), from APCA_API_KEY_ID / APCA_API_SECRET_KEY, or from
an encrypted Badger store imported with "credentials import".

Examples:
  alpaca-samples accounts
  alpaca-samples news --symbols MSFT,AAPL --max-pages 2
  alpaca-samples screener --output table`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initLogging(); err != nil {
			return err
		}
		if debugAddr != "" {
			addr, err := metrics.StartAsync(cmd.Context(), debugAddr)
			if err != nil {
				return err
			}
			logger.Infof("debug server on http://%s/debug/vars", addr)
		}
		return nil
	},
}

// ExecuteContext runs the root command; ctx is cancelled on SIGINT/SIGTERM.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", config.DefaultCredentialsPath, "credentials INI file")
	pf.StringVar(&section, "section", config.DefaultSection, "INI section holding api_key and api_secret")
	pf.StringVar(&settingsFile, "settings", "", "optional settings file (.yaml, .yml or .json)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides settings)")
	pf.StringVarP(&outputFormat, "output", "o", "json", "output format for frames: json, csv or table")
	pf.StringVar(&secretDB, "secret-db", "", "read credentials from this Badger store instead of the INI file")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.StringVar(&debugAddr, "debug-addr", "", "serve expvar counters and pprof on this address, e.g. localhost:6060")

	rootCmd.AddCommand(accountsCmd, assetsCmd, announcementsCmd, ordersCmd)
	rootCmd.AddCommand(cryptoCmd, newsCmd, stocksCmd, screenerCmd, streamCmd)
	rootCmd.AddCommand(credentialsCmd)
}

func initLogging() error {
	// .env is optional; plain environment variables work too
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", envFile, err)
	}

	settings, err := config.LoadSettings(settingsFile)
	if err != nil {
		return err
	}
	level := settings.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	return logger.Init(logger.Config{
		Level:      level,
		OutputFile: settings.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	})
}

func loadConfig() (*config.Config, error) {
	return config.Load(config.LoadOptions{
		CredentialsPath: cfgFile,
		Section:         section,
		SettingsPath:    settingsFile,
		SecretDB:        secretDB,
		OpenStore:       openStore,
	})
}

func openStore(path, key string) (config.StoreCloser, error) {
	keyBytes, err := secretstore.ParseKey(key)
	if err != nil {
		return nil, err
	}
	store, err := secretstore.Open(secretstore.OpenOptions{Path: path, EncryptionKey: keyBytes, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func newPrinter(cmd *cobra.Command) (*samples.Printer, error) {
	format, err := samples.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return samples.NewPrinter(cmd.OutOrStdout(), format), nil
}

func newTradingClient(cfg *config.Config) *trading.Client {
	s := cfg.Settings
	return trading.NewClient(trading.ClientOptions{
		KeyID:      cfg.Credentials.APIKey,
		SecretKey:  cfg.Credentials.APISecret,
		Paper:      s.Paper,
		BaseURL:    s.TradingBaseURL,
		Timeout:    s.HTTPTimeout,
		RetryCount: s.RetryCount,
		Limiter:    limits.GetLimiter(ratelimit.KeyTrading),
	})
}

func newDataClient(cfg *config.Config) *marketdata.Client {
	s := cfg.Settings
	return marketdata.NewClient(marketdata.ClientOptions{
		KeyID:          cfg.Credentials.APIKey,
		SecretKey:      cfg.Credentials.APISecret,
		BaseURL:        s.DataBaseURL,
		Feed:           s.StockFeed,
		CryptoLocation: s.CryptoLocation,
		Timeout:        s.HTTPTimeout,
		RetryCount:     s.RetryCount,
		Limiter:        limits.GetLimiter(ratelimit.KeyData),
	})
}

func newStreamClient(cfg *config.Config, crypto bool) *stream.Client {
	s := cfg.Settings
	base := strings.TrimSuffix(s.StreamBaseURL, "/")
	path := stream.DefaultStocksPath
	switch {
	case crypto:
		path = "/v1beta3/crypto/" + s.CryptoLocation
	case s.StockFeed != "":
		path = "/v2/" + s.StockFeed
	}
	return stream.NewClient(base+path, cfg.Credentials.APIKey, cfg.Credentials.APISecret)
}

// parseTime accepts YYYY-MM-DD or RFC 3339.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// sampleSetup is the shared prologue of every sample: config, printer, logging context.
func sampleSetup(cmd *cobra.Command) (*config.Config, *samples.Printer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := newPrinter(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger.WithField("sample", cmd.Name()).Debugf("paper=%v trading=%s data=%s", cfg.Settings.Paper, cfg.Settings.TradingURL(), cfg.Settings.DataBaseURL)
	return cfg, p, nil
}
