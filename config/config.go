// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct, populated from command
// line flags bound to viper and/or a settings file.
type Config struct {
	// minimum quadruplex score to keep a candidate
	MinScore float64 `mapstructure:"min-score"`

	// smallest G-run class scanned for (inclusive)
	MinRunLength int `mapstructure:"min-run-length"`

	// largest G-run class (exclusive)
	MaxRunLength int `mapstructure:"max-run-length"`

	// maximum loop length between G-runs
	MaxLoopLength int `mapstructure:"max-loop-length"`

	// path to the Z-Hunt predictor binary
	PredictorCommand string `mapstructure:"predictor"`

	// the predictor's three positional parameters
	PredictorMinRun int `mapstructure:"predictor-min-run"`
	PredictorWindow int `mapstructure:"predictor-window"`
	PredictorMaxRun int `mapstructure:"predictor-max-run"`

	// partitions smaller than this many MB of sequence are skipped
	MinPartitionMB float64 `mapstructure:"min-partition-mb"`

	// maximum concurrent predictor processes, 0 = one per CPU
	Workers int `mapstructure:"workers"`

	// progress poll interval
	PollInterval time.Duration `mapstructure:"poll-interval"`

	// grace period between SIGTERM and SIGKILL on cancellation
	GracePeriod time.Duration `mapstructure:"grace-period"`

	// inclusive Z-score band for keeping predictor windows
	ZScoreMin float64 `mapstructure:"zscore-min"`
	ZScoreMax float64 `mapstructure:"zscore-max"`

	// column of the quality metric in the probability file
	QualityColumn int `mapstructure:"quality-column"`

	// column of the sequence text, -1 if absent
	SequenceColumn int `mapstructure:"sequence-column"`

	// promoter extent around the TSS
	PromoterUpstream   int `mapstructure:"promoter-upstream"`
	PromoterDownstream int `mapstructure:"promoter-downstream"`

	// colocalization distance window in bp
	Window int `mapstructure:"window"`
}

// ConfigError reports contradictory or impossible settings. It is
// fatal at configuration-validation time, before any work starts.
type ConfigError struct {
	// Setting that failed validation
	Setting string

	// Reason it was rejected
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Setting, e.Reason)
}

// New returns a Config populated by Viper and validated.
func New() (*Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %v", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate rejects settings no run could honor.
func (c *Config) Validate() error {
	if c.MinRunLength > c.MaxRunLength {
		return &ConfigError{
			Setting: "min-run-length",
			Reason:  fmt.Sprintf("%d exceeds max-run-length %d", c.MinRunLength, c.MaxRunLength),
		}
	}
	if c.MinRunLength < 1 {
		return &ConfigError{Setting: "min-run-length", Reason: "must be positive"}
	}
	if c.MaxLoopLength < 1 {
		return &ConfigError{Setting: "max-loop-length", Reason: "must be positive"}
	}
	if c.ZScoreMin > c.ZScoreMax {
		return &ConfigError{
			Setting: "zscore-min",
			Reason:  fmt.Sprintf("%.1f exceeds zscore-max %.1f", c.ZScoreMin, c.ZScoreMax),
		}
	}
	if c.Window <= 0 {
		return &ConfigError{Setting: "window", Reason: "must be positive"}
	}
	if c.PromoterUpstream < 0 || c.PromoterDownstream < 0 {
		return &ConfigError{Setting: "promoter-upstream", Reason: "promoter extents cannot be negative"}
	}
	if c.QualityColumn < 0 {
		return &ConfigError{Setting: "quality-column", Reason: "cannot be negative"}
	}
	if c.MinPartitionMB < 0 {
		return &ConfigError{Setting: "min-partition-mb", Reason: "cannot be negative"}
	}

	return nil
}
