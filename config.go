package callz

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the declarative form of a decorator's options, for loading from
// YAML or the environment. Unset pointer fields keep the decorator
// defaults; an if_slower_than of 0s logs every call on the return line only.
//
//	level: debug
//	truncate_length: 80
//	if_slower_than: 250ms
//	tally: true
type Config struct {
	ShowArgs        *bool          `yaml:"show_args"`
	ShowReturnValue *bool          `yaml:"show_return_value"`
	Level           string         `yaml:"level"`
	Truncate        int            `yaml:"truncate_length"`
	SlowerThan      *time.Duration `yaml:"if_slower_than"`
	CallsOnly       bool           `yaml:"show_calls_only"`
	ReturnsOnly     bool           `yaml:"show_returns_only"`
	TimingOnly      bool           `yaml:"show_timing_only"`
	Tally           bool           `yaml:"tally"`
	TallyLog        bool           `yaml:"tally_log"`
	Disabled        bool           `yaml:"disabled"`
}

// ParseConfig decodes a YAML document into a Config.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse callz config: %w", err)
	}
	return c, nil
}

// LoadConfig reads and decodes the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read callz config: %w", err)
	}
	return ParseConfig(data)
}

// WithEnv returns a copy of c overridden by the environment:
//
//	CALLZ_LEVEL        log level name (debug, info, warn, ...)
//	CALLZ_TRUNCATE     truncation length
//	CALLZ_SLOWER_THAN  duration threshold, e.g. "100ms"
//	CALLZ_DISABLE      "1" or "true" turns wrapping into pass-through
//
// Unparseable values are ignored.
func (c Config) WithEnv() Config {
	if v := getEnv("CALLZ_LEVEL", ""); v != "" {
		c.Level = v
	}
	if n := parseInt(getEnv("CALLZ_TRUNCATE", "")); n > 0 {
		c.Truncate = n
	}
	if d, ok := parseDuration(getEnv("CALLZ_SLOWER_THAN", "")); ok {
		c.SlowerThan = &d
	}
	if v := getEnv("CALLZ_DISABLE", ""); v != "" {
		c.Disabled = parseBool(v)
	}
	return c
}

// Options converts c to decorator options. Unset fields keep their defaults.
// Conflicting options are reported by New, not here.
func (c Config) Options() ([]Option, error) {
	var opts []Option

	if c.Level != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
		if err != nil || level == zerolog.NoLevel {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, c.Level)
		}
		opts = append(opts, WithLevel(level))
	}
	if c.ShowArgs != nil {
		opts = append(opts, WithArgs(*c.ShowArgs))
	}
	if c.ShowReturnValue != nil {
		opts = append(opts, WithReturnValue(*c.ShowReturnValue))
	}
	if c.Truncate != 0 {
		opts = append(opts, WithTruncate(c.Truncate))
	}
	if c.SlowerThan != nil {
		opts = append(opts, IfSlowerThan(*c.SlowerThan))
	}
	if c.CallsOnly {
		opts = append(opts, CallsOnly())
	}
	if c.ReturnsOnly {
		opts = append(opts, ReturnsOnly())
	}
	if c.TimingOnly {
		opts = append(opts, TimingOnly())
	}
	if c.Tally {
		opts = append(opts, WithTally(true))
	}
	if c.TallyLog {
		opts = append(opts, WithTallyLog(true))
	}
	if c.Disabled {
		opts = append(opts, WithDisabled(true))
	}
	return opts, nil
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseInt parses integer from string with zero fallback.
func parseInt(s string) int {
	if value, err := strconv.Atoi(s); err == nil {
		return value
	}
	return 0
}

// parseDuration parses duration from string, reporting whether it succeeded.
func parseDuration(s string) (time.Duration, bool) {
	d, err := time.ParseDuration(s)
	return d, err == nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
