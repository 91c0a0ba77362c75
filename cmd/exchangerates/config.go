package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"exchange-rates/internal"
	"exchange-rates/internal/exchangerates"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "EXCHANGE_RATES"

type Config struct {
	BaseURL   string
	AccessKey string
	LogLevel  string

	// serve only
	DatabaseURL string
	EncodingKey string
	HTTPPort    string
	Pivot       internal.CurrencyCode
	Symbols     []internal.CurrencyCode
	CronSpec    string
	Location    string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("base_url", exchangerates.DefaultBaseURL)
	v.SetDefault("log_level", "info")
	v.SetDefault("port", "8080")
	v.SetDefault("pivot", "EUR")
	v.SetDefault("symbols", "USD,GBP,JPY,CHF")
	v.SetDefault("cron_spec", "0 17 * * 1-5")
	v.SetDefault("location", "Europe/Berlin")

	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("encoding_key", "ENCODING_KEY")
	_ = v.BindEnv("port", envPrefix+"_PORT", "PORT")
	return v
}

// LoadConfig reads envFile (if present) into the environment and resolves the
// configuration from it. A missing default .env is not an error.
func LoadConfig(v *viper.Viper, envFile string, required bool) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if required || !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	cfg := Config{
		BaseURL:     strings.TrimSpace(v.GetString("base_url")),
		AccessKey:   strings.TrimSpace(v.GetString("access_key")),
		LogLevel:    strings.TrimSpace(v.GetString("log_level")),
		DatabaseURL: strings.TrimSpace(v.GetString("database_url")),
		EncodingKey: strings.TrimSpace(v.GetString("encoding_key")),
		HTTPPort:    strings.TrimSpace(v.GetString("port")),
		CronSpec:    strings.TrimSpace(v.GetString("cron_spec")),
		Location:    strings.TrimSpace(v.GetString("location")),
	}

	pivot, err := internal.NewCurrencyCode(v.GetString("pivot"))
	if err != nil {
		return Config{}, fmt.Errorf("%s_PIVOT: %w", envPrefix, err)
	}
	cfg.Pivot = pivot

	for _, s := range strings.Split(v.GetString("symbols"), ",") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		ccy, err := internal.NewCurrencyCode(s)
		if err != nil {
			return Config{}, fmt.Errorf("%s_SYMBOLS: %w", envPrefix, err)
		}
		cfg.Symbols = append(cfg.Symbols, ccy)
	}

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("%s_BASE_URL is empty", envPrefix)
	}
	return cfg, nil
}

// ValidateServe checks the settings only the long-running service needs.
func (c Config) ValidateServe() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if c.AccessKey == "" {
		return fmt.Errorf("%s_ACCESS_KEY is empty", envPrefix)
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("%s_SYMBOLS is empty", envPrefix)
	}
	return nil
}

// ValidateDatabase checks the settings needed to reach the key and rate tables.
func (c Config) ValidateDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is empty")
	}
	if c.EncodingKey == "" {
		return fmt.Errorf("ENCODING_KEY is empty")
	}
	return nil
}
