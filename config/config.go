package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Rates    RatesConfig    `mapstructure:"rates"`
	Purchase PurchaseConfig `mapstructure:"purchase"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// RatesConfig drives the rate acquisition pipeline.
type RatesConfig struct {
	ProviderBaseURL string        `mapstructure:"provider_base_url"`
	ScrapeURL       string        `mapstructure:"scrape_url"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	RefreshPeriod   time.Duration `mapstructure:"refresh_period"`
	BatchSize       int           `mapstructure:"batch_size"`
	BatchDelay      time.Duration `mapstructure:"batch_delay"`
	// StrictFallback turns chain exhaustion of the live sources into an
	// error instead of serving the static table.
	StrictFallback bool `mapstructure:"strict_fallback"`
}

// PurchaseConfig drives the purchase workflow.
type PurchaseConfig struct {
	DailyLimit      float64       `mapstructure:"daily_limit"`
	FeeBase         float64       `mapstructure:"fee_base"`
	FeePercent      float64       `mapstructure:"fee_percent"`
	PaymentDelay    time.Duration `mapstructure:"payment_delay"`
	SettlementDelay time.Duration `mapstructure:"settlement_delay"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CXG_ (Currency
// Exchange Gateway). Nested keys use underscore: CXG_RATES_CACHE_TTL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("rates.provider_base_url", "http://api.exchangerate-api.com/v4/latest")
	v.SetDefault("rates.scrape_url", "https://www.xe.com/currencyconverter/convert/")
	v.SetDefault("rates.http_timeout", "15s")
	v.SetDefault("rates.cache_ttl", "1h")
	v.SetDefault("rates.refresh_period", "30m")
	v.SetDefault("rates.batch_size", 5)
	v.SetDefault("rates.batch_delay", "1s")
	v.SetDefault("rates.strict_fallback", false)
	v.SetDefault("purchase.daily_limit", 10000.0)
	v.SetDefault("purchase.fee_base", 2.99)
	v.SetDefault("purchase.fee_percent", 0.015)
	v.SetDefault("purchase.payment_delay", "2s")
	v.SetDefault("purchase.settlement_delay", "5s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CXG_RATES_CACHE_TTL -> rates.cache_ttl
	v.SetEnvPrefix("CXG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
