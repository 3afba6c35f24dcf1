package hxlive

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/pthm/hxlive/lib/logging"
)

// Config is the environment-driven registry configuration.
//
//	HXLIVE_KEY=...            # required, signs or encrypts state tokens
//	HXLIVE_SENSITIVE=true     # encrypt instead of sign
//	HXLIVE_LOG_LEVEL=debug    # debug, info, warn, error
//	HXLIVE_LOG_FORMAT=text    # json or text
type Config struct {
	Key       string `env:"HXLIVE_KEY,required"`
	Sensitive bool   `env:"HXLIVE_SENSITIVE" envDefault:"false"`
	LogLevel  string `env:"HXLIVE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"HXLIVE_LOG_FORMAT" envDefault:"json"`
}

// LoadConfig reads Config from the environment. Named files are loaded
// into the environment first and must exist; without names an optional
// .env in the working directory is loaded when present. Variables already
// set in the environment win over file values.
func LoadConfig(files ...string) (Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Config{}, errors.Join(ErrInvalidConfig, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// NewRegistryFromConfig builds a registry and its logger from cfg. Extra
// options are applied after the configured ones.
func NewRegistryFromConfig(cfg Config, opts ...Option) (*Registry, error) {
	if cfg.Key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidConfig)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	format := logging.Format(cfg.LogFormat)
	switch format {
	case "":
		format = logging.FormatJSON
	case logging.FormatJSON, logging.FormatText:
	default:
		return nil, fmt.Errorf("%w: log format %q", ErrInvalidConfig, cfg.LogFormat)
	}

	base := []Option{WithLogger(logging.New(logging.WithLevel(level), logging.WithFormat(format)))}
	if cfg.Sensitive {
		base = append(base, WithSensitive())
	}
	return NewRegistry([]byte(cfg.Key), append(base, opts...)...), nil
}
