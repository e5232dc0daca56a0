// Package config loads the cronlint settings from the environment.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/reugn/go-cronspec/cron"
	"github.com/reugn/go-cronspec/logger"
	"github.com/sethvargo/go-envconfig"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the cronlint settings. Command-line flags override it.
type Config struct {
	Dialects    []string `env:"CRONLINT_DIALECTS, default=standard,seconds"`
	DayPolicy   string   `env:"CRONLINT_DAY_POLICY, default=or"`
	Descriptors bool     `env:"CRONLINT_DESCRIPTORS, default=true"`
	Format      string   `env:"CRONLINT_FORMAT, default=text"`
	LogLevel    string   `env:"CRONLINT_LOG_LEVEL, default=warn"`
	CacheSize   int      `env:"CRONLINT_CACHE_SIZE, default=1000"`
}

// NewConfigFromEnv reads the process environment. Variables found in
// envFile, when given, fill in whatever the environment leaves unset.
func NewConfigFromEnv(ctx context.Context, envFile string) (*Config, error) {
	lookuper := envconfig.OsLookuper()
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("read env file: %w", err)
		}
		lookuper = envconfig.MultiLookuper(lookuper, envconfig.MapLookuper(fileEnv))
	}
	return newConfig(ctx, lookuper)
}

func newConfig(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting names a known value.
func (c *Config) Validate() error {
	if _, err := c.dialects(); err != nil {
		return err
	}
	if _, err := cron.ParseDayPolicy(c.DayPolicy); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("negative cache size %d", c.CacheSize)
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() logger.Level {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelWarn
	}
	return level
}

// ParserOptions translates the settings into parser options.
func (c *Config) ParserOptions() ([]cron.Option, error) {
	dialects, err := c.dialects()
	if err != nil {
		return nil, err
	}
	policy, err := cron.ParseDayPolicy(c.DayPolicy)
	if err != nil {
		return nil, err
	}
	opts := []cron.Option{cron.WithDialects(dialects...), cron.WithDayPolicy(policy)}
	if c.Descriptors {
		opts = append(opts, cron.WithDescriptors())
	}
	return opts, nil
}

func (c *Config) dialects() ([]cron.Dialect, error) {
	if len(c.Dialects) == 0 {
		return nil, fmt.Errorf("no dialects configured")
	}
	dialects := make([]cron.Dialect, 0, len(c.Dialects))
	for _, name := range c.Dialects {
		dialect, ok := cron.DialectByName(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown dialect %q", name)
		}
		dialects = append(dialects, dialect)
	}
	return dialects, nil
}
