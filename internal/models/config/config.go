package config

import "time"

// AppConfig is the process-wide configuration filled by Load.
var AppConfig *Config

// Config is the root configuration.
type Config struct {
	Environment string
	HTTP        HTTPConfig
	Bot         BotConfig
	Database    DatabaseConfig
	AI          AIConfig
	Clock       ClockConfig
}

type HTTPConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BotConfig is optional: an empty token disables the telegram bot and alert delivery.
type BotConfig struct {
	Token    string
	Debug    bool
	AdminIDs []int64 // chat ids that receive compliance alerts
}

func (c BotConfig) Enabled() bool {
	return c.Token != ""
}

// AIConfig configures the note suggestion helper. Without an API key the
// helper only returns fallback templates.
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

// ClockConfig controls how "today" is computed for expiration bucketing.
type ClockConfig struct {
	TimeZone string
	Location *time.Location
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
