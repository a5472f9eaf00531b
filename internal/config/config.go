package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "Asia/Seoul"
	configPathEnv   = "ISSUE_RADAR_CONFIG"
	databasePathEnv = "ISSUE_RADAR_DB"
	logLevelEnv     = "ISSUE_RADAR_LOG_LEVEL"
	cronEnv         = "ISSUE_RADAR_CRON"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
	Trend     TrendConfig     `yaml:"trend"`
	HTTP      HTTPConfig      `yaml:"http"`
	Sources   []SourceConfig  `yaml:"sources"`
}

// DatabaseConfig describes the SQLite database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig defines the recompute cadence of the current window.
type SchedulerConfig struct {
	CronExpression string `yaml:"cronExpression"`
}

// LoggingConfig controls the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// TrendConfig carries the reference timezone and ranking depths.
type TrendConfig struct {
	Timezone        string         `yaml:"timezone"`
	LookbackWindows int            `yaml:"lookbackWindows"`
	LimitWindows    int            `yaml:"limitWindows"`
	location        *time.Location `yaml:"-"`
}

// Location resolves the reference timezone string to a time.Location.
func (t TrendConfig) Location() *time.Location {
	if t.location != nil {
		return t.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// HTTPConfig tunes the outbound client shared by all news scanners. TLS
// verification stays on unless explicitly switched off here; there is no
// process-wide override.
type HTTPConfig struct {
	TimeoutSeconds int  `yaml:"timeoutSeconds"`
	InsecureTLS    bool `yaml:"insecureTls"`
}

// Timeout returns the client timeout with a sane floor.
func (h HTTPConfig) Timeout() time.Duration {
	if h.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// SourceConfig describes one news provider with its scanner strategy.
type SourceConfig struct {
	Name    string            `yaml:"name"`
	Scanner string            `yaml:"scanner"`
	URL     string            `yaml:"url"`
	Query   string            `yaml:"query"`
	Tickers []string          `yaml:"tickers"`
	Options map[string]string `yaml:"options"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultConfig().Sources
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(cronEnv); v != "" {
		c.Scheduler.CronExpression = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Trend.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Trend.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Trend.Timezone != "" {
		base.Trend.Timezone = override.Trend.Timezone
	}
	if override.Trend.LookbackWindows > 0 {
		base.Trend.LookbackWindows = override.Trend.LookbackWindows
	}
	if override.Trend.LimitWindows > 0 {
		base.Trend.LimitWindows = override.Trend.LimitWindows
	}

	if override.HTTP.TimeoutSeconds > 0 {
		base.HTTP.TimeoutSeconds = override.HTTP.TimeoutSeconds
	}
	if override.HTTP.InsecureTLS {
		base.HTTP.InsecureTLS = true
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func defaultConfig() Config {
	loc, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Database:  DatabaseConfig{Path: "issue_trend.db"},
		Scheduler: SchedulerConfig{CronExpression: "*/5 * * * *"},
		Logging:   LoggingConfig{Level: "info"},
		Trend: TrendConfig{
			Timezone:        defaultTimezone,
			LookbackWindows: 48,
			LimitWindows:    96,
			location:        loc,
		},
		HTTP: HTTPConfig{TimeoutSeconds: 20},
		Sources: []SourceConfig{
			{
				Name:    "googlenews-macro",
				Scanner: "googlenews",
				Query: "Fed OR FOMC OR CPI OR inflation OR yields OR dollar OR FX OR " +
					"oil OR OPEC OR recession OR GDP OR PMI OR earnings OR guidance OR AI OR semiconductor " +
					"when:3d",
			},
			{
				Name:    "yahoo-market",
				Scanner: "yahoo",
				Tickers: []string{"SPY", "QQQ", "^DJI"},
			},
		},
	}
}
