package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"cointracker/internal/domain"
	"cointracker/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   logging.Config  `mapstructure:"logging"`
	Database  DatabaseConfig  `mapstructure:"database"`
	API       APIConfig       `mapstructure:"api"`
	Currency  CurrencyConfig  `mapstructure:"currency"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Refresh   RefreshConfig   `mapstructure:"refresh"`
	Export    ExportConfig    `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig encapsulates PostgreSQL connectivity. An empty DSN selects
// the in-memory cache store instead.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsPath  string        `mapstructure:"migrations_path"`
}

// APIConfig captures pricing API connectivity.
type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Key               string        `mapstructure:"key"`
	ReferenceCurrency string        `mapstructure:"reference_currency"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// CurrencyConfig drives Price/Percentage display formatting. It is read
// once at startup and frozen into a domain.CurrencyFormat.
type CurrencyConfig struct {
	Symbol         string `mapstructure:"symbol"`
	ThousandsSep   string `mapstructure:"thousands_separator"`
	DecimalSep     string `mapstructure:"decimal_separator"`
	FractionDigits int    `mapstructure:"fraction_digits"`
}

// CacheConfig tunes the local cache store.
type CacheConfig struct {
	CoinsLimit int           `mapstructure:"coins_limit"`
	MemoryTTL  time.Duration `mapstructure:"memory_ttl"`
}

// RefreshConfig governs the background refresh cadence of the run command.
type RefreshConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	AlignToClock  bool          `mapstructure:"align_to_clock"`
	StartupDelay  time.Duration `mapstructure:"startup_delay"`
}

// ExportConfig sets chart export behaviour.
type ExportConfig struct {
	MaxDataPoints int    `mapstructure:"max_data_points"`
	DefaultPeriod string `mapstructure:"default_period"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("COINTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "cointracker")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("api.base_url", "https://api.coinranking.com/v2")
	v.SetDefault("api.request_timeout", "10s")
	v.SetDefault("api.user_agent", "cointracker/1.0")

	v.SetDefault("currency.symbol", "$")
	v.SetDefault("currency.thousands_separator", ",")
	v.SetDefault("currency.decimal_separator", ".")
	v.SetDefault("currency.fraction_digits", 2)

	v.SetDefault("cache.coins_limit", 100)
	v.SetDefault("cache.memory_ttl", "0s")

	v.SetDefault("refresh.interval", "5m")
	v.SetDefault("refresh.align_to_clock", true)
	v.SetDefault("refresh.startup_delay", "0s")

	v.SetDefault("export.max_data_points", 100000)
	v.SetDefault("export.default_period", "24h")

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.migrations_path", "migrations")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Cache.CoinsLimit <= 0 {
		return fmt.Errorf("cache.coins_limit must be greater than zero")
	}
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh.interval must be greater than zero")
	}
	if c.Export.MaxDataPoints <= 0 {
		return fmt.Errorf("export.max_data_points must be greater than zero")
	}
	if c.Currency.Symbol == "" {
		return fmt.Errorf("currency.symbol is required")
	}
	return nil
}

// CurrencyFormat freezes the currency configuration into the immutable
// format passed to value-type construction.
func (c *Config) CurrencyFormat() domain.CurrencyFormat {
	return domain.CurrencyFormat{
		Symbol:         c.Currency.Symbol,
		ThousandsSep:   c.Currency.ThousandsSep,
		DecimalSep:     c.Currency.DecimalSep,
		FractionDigits: c.Currency.FractionDigits,
	}
}

// ResolveMaxPoints returns either the CLI override or config default.
func (c *Config) ResolveMaxPoints(override int) int {
	if override > 0 {
		return override
	}
	return c.Export.MaxDataPoints
}
