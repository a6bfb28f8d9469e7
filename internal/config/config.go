package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var ErrNonPositiveLimit = errors.New("error getting PT_MAX_ENTRIES / PT_MAX_AGE_DAYS: limits must be positive")

type Config struct {
	Env            string // Env is the current environment: local, dev, prod.
	LedgerPath     string // LedgerPath is the price history JSON document.
	BlacklistPath  string // BlacklistPath is the hidden/removed products JSON document.
	MaxEntries     int    // MaxEntries caps the history kept per product.
	MaxAgeDays     int    // MaxAgeDays caps the age of kept observations.
	AlertThreshold float64
	HTTPAddr       string
	Tg             Telegram
}

type Telegram struct {
	Token    string        // Token is a unique telegram bot token. Empty disables the notifier.
	ChatID   int64         // ChatID is the chat that receives alert digests.
	Interval time.Duration // Interval between alert polls.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("PT")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("LEDGER_PATH", "price_history.json")
	viper.SetDefault("BLACKLIST_PATH", "product_blacklist.json")
	viper.SetDefault("MAX_ENTRIES", 15)
	viper.SetDefault("MAX_AGE_DAYS", 90)
	viper.SetDefault("ALERT_THRESHOLD", 2.0)
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("NOTIFY_INTERVAL", "1h")

	if viper.GetInt("MAX_ENTRIES") <= 0 || viper.GetInt("MAX_AGE_DAYS") <= 0 {
		panic(ErrNonPositiveLimit)
	}

	return &Config{
		Env:            viper.GetString("ENV"),
		LedgerPath:     viper.GetString("LEDGER_PATH"),
		BlacklistPath:  viper.GetString("BLACKLIST_PATH"),
		MaxEntries:     viper.GetInt("MAX_ENTRIES"),
		MaxAgeDays:     viper.GetInt("MAX_AGE_DAYS"),
		AlertThreshold: viper.GetFloat64("ALERT_THRESHOLD"),
		HTTPAddr:       viper.GetString("HTTP_ADDR"),
		Tg: Telegram{
			Token:    viper.GetString("TELEGRAM_TOKEN"),
			ChatID:   viper.GetInt64("TELEGRAM_CHAT_ID"),
			Interval: viper.GetDuration("NOTIFY_INTERVAL"),
		},
	}
}
