package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	PaperTradingURL = "https://paper-api.alpaca.markets"
	LiveTradingURL  = "https://api.alpaca.markets"
	DataURL         = "https://data.alpaca.markets"
	StreamURL       = "wss://stream.data.alpaca.markets"
)

// Settings are the non-secret knobs shared by every sample.
type Settings struct {
	Paper          bool
	TradingBaseURL string // empty means derived from Paper
	DataBaseURL    string
	StreamBaseURL  string
	StockFeed      string // iex, sip, otc or empty for the account default
	CryptoLocation string
	HTTPTimeout    time.Duration
	RetryCount     int
	LogLevel       string
	LogFile        string
	SecretDB       string // badger path; when set, credentials come from it
	SecretKey      string // badger encryption key, hex or base64
}

// TradingURL resolves the trading endpoint.
func (s Settings) TradingURL() string {
	if s.TradingBaseURL != "" {
		return s.TradingBaseURL
	}
	if s.Paper {
		return PaperTradingURL
	}
	return LiveTradingURL
}

// SettingsFile is the YAML/JSON layout of Settings.
type SettingsFile struct {
	Paper          *bool    `yaml:"paper" json:"paper"`
	TradingBaseURL string   `yaml:"trading_base_url" json:"trading_base_url"`
	DataBaseURL    string   `yaml:"data_base_url" json:"data_base_url"`
	StreamBaseURL  string   `yaml:"stream_base_url" json:"stream_base_url"`
	StockFeed      string   `yaml:"stock_feed" json:"stock_feed"`
	CryptoLocation string   `yaml:"crypto_location" json:"crypto_location"`
	HTTPTimeout    Duration `yaml:"http_timeout" json:"http_timeout"`
	RetryCount     *int     `yaml:"retry_count" json:"retry_count"`
	LogLevel       string   `yaml:"log_level" json:"log_level"`
	LogFile        string   `yaml:"log_file" json:"log_file"`
	SecretDB       string   `yaml:"secret_db" json:"secret_db"`
}

// DefaultSettings mirrors what the samples assume: paper trading, the
// public data host and the "us" crypto venue.
func DefaultSettings() Settings {
	return Settings{
		Paper:          true,
		DataBaseURL:    DataURL,
		StreamBaseURL:  StreamURL,
		CryptoLocation: "us",
		HTTPTimeout:    30 * time.Second,
		RetryCount:     3,
		LogLevel:       "info",
	}
}

// LoadSettings reads an optional settings file (yaml, yml or json) and
// applies environment overrides. An empty path skips the file.
// Priority: environment > file > defaults.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	if path != "" {
		file, err := loadSettingsFile(path)
		if err != nil {
			return nil, fmt.Errorf("load settings %s: %w", path, err)
		}
		applySettingsFile(&s, file)
	}

	s.Paper = parseBoolEnv("ALPACA_PAPER", s.Paper)
	s.TradingBaseURL = getEnv("APCA_API_BASE_URL", s.TradingBaseURL)
	s.DataBaseURL = getEnv("APCA_API_DATA_URL", s.DataBaseURL)
	s.StreamBaseURL = getEnv("APCA_API_STREAM_URL", s.StreamBaseURL)
	s.StockFeed = getEnv("ALPACA_STOCK_FEED", s.StockFeed)
	s.RetryCount = parseIntEnv("ALPACA_RETRY_COUNT", s.RetryCount)
	s.LogLevel = getEnv("LOG_LEVEL", s.LogLevel)
	s.LogFile = getEnv("LOG_FILE", s.LogFile)
	s.SecretDB = getEnv("ALPACA_SECRET_DB", s.SecretDB)
	s.SecretKey = getEnv("ALPACA_SECRET_KEY", s.SecretKey)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

func loadSettingsFile(path string) (*SettingsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file SettingsFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported settings format %q (want .yaml, .yml or .json)", ext)
	}
	return &file, nil
}

func applySettingsFile(s *Settings, f *SettingsFile) {
	if f.Paper != nil {
		s.Paper = *f.Paper
	}
	s.TradingBaseURL = firstNonEmpty(f.TradingBaseURL, s.TradingBaseURL)
	s.DataBaseURL = firstNonEmpty(f.DataBaseURL, s.DataBaseURL)
	s.StreamBaseURL = firstNonEmpty(f.StreamBaseURL, s.StreamBaseURL)
	s.StockFeed = firstNonEmpty(f.StockFeed, s.StockFeed)
	s.CryptoLocation = firstNonEmpty(f.CryptoLocation, s.CryptoLocation)
	if f.HTTPTimeout.Duration > 0 {
		s.HTTPTimeout = f.HTTPTimeout.Duration
	}
	if f.RetryCount != nil {
		s.RetryCount = *f.RetryCount
	}
	s.LogLevel = firstNonEmpty(f.LogLevel, s.LogLevel)
	s.LogFile = firstNonEmpty(f.LogFile, s.LogFile)
	s.SecretDB = firstNonEmpty(f.SecretDB, s.SecretDB)
}

// Validate checks the settings that would otherwise fail deep inside a request.
func (s Settings) Validate() error {
	switch s.StockFeed {
	case "", "iex", "sip", "otc", "delayed_sip", "boats", "overnight":
	default:
		return fmt.Errorf("unknown stock feed %q", s.StockFeed)
	}
	if s.RetryCount < 0 {
		return errors.New("retry_count must be >= 0")
	}
	if s.HTTPTimeout <= 0 {
		return errors.New("http_timeout must be positive")
	}
	if s.DataBaseURL == "" {
		return errors.New("data_base_url is empty")
	}
	return nil
}

// Config is everything a sample needs before building clients.
type Config struct {
	Credentials Credentials
	Settings    Settings
}

// LoadOptions locate the credential and settings sources.
type LoadOptions struct {
	CredentialsPath string // INI file, DefaultCredentialsPath when empty
	Section         string
	SettingsPath    string // optional
	SecretDB        string // overrides Settings.SecretDB when set
	// OpenStore opens the secret store at Settings.SecretDB. Required only
	// when a secret DB is configured.
	OpenStore func(path, key string) (StoreCloser, error)
}

// StoreCloser is a CredentialStore that must be closed after use.
type StoreCloser interface {
	CredentialStore
	Close() error
}

// Load resolves settings, then credentials from the secret store when one is
// configured, else from the INI file. APCA_API_KEY_ID/APCA_API_SECRET_KEY
// replace file credentials when both are set.
func Load(opts LoadOptions) (*Config, error) {
	settings, err := LoadSettings(opts.SettingsPath)
	if err != nil {
		return nil, err
	}
	if opts.SecretDB != "" {
		settings.SecretDB = opts.SecretDB
	}

	creds, err := loadCredentials(opts, settings)
	if envCreds, ok := credentialsFromEnv(); ok {
		creds, err = envCreds, nil
	}
	if err != nil {
		return nil, err
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &Config{Credentials: *creds, Settings: *settings}, nil
}

func loadCredentials(opts LoadOptions, settings *Settings) (*Credentials, error) {
	if settings.SecretDB != "" {
		if opts.OpenStore == nil {
			return nil, errors.New("secret_db configured but no store opener provided")
		}
		store, err := opts.OpenStore(settings.SecretDB, settings.SecretKey)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return LoadCredentialsFromStore(store, "")
	}
	path := opts.CredentialsPath
	if path == "" {
		path = DefaultCredentialsPath
	}
	return LoadCredentials(path, opts.Section)
}

// Duration reads "30s"-style strings or integer seconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value == nil || value.Kind != yaml.ScalarNode {
		return nil
	}
	return d.parse(value.Value, value.Tag == "!!int")
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		return d.parse(unq, false)
	}
	return d.parse(s, true)
}

func (d *Duration) parse(s string, seconds bool) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Duration = 0
		return nil
	}
	if seconds {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid duration seconds %q: %w", s, err)
		}
		d.Duration = time.Duration(n) * time.Second
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = dd
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func parseIntEnv(key string, defaultValue int) int {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
