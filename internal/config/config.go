package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/anchal00/farkle/internal/farkle"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port             string        `env:"PORT" envDefault:"9000"`
	DB               string        `env:"DB" envDefault:"farkle"`
	JWTSecret        string        `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer        string        `env:"JWT_ISSUER"`
	GracePeriod      time.Duration `env:"GRACE_PERIOD" envDefault:"30s"`
	TargetScore      int           `env:"TARGET_SCORE" envDefault:"10000"`
	OpeningThreshold int           `env:"OPENING_THRESHOLD" envDefault:"300"`
	MinPlayers       int           `env:"MIN_PLAYERS" envDefault:"2"`
	MaxPlayers       int           `env:"MAX_PLAYERS" envDefault:"6"`
	StraightScore    int           `env:"STRAIGHT_SCORE" envDefault:"0"`
	AllowedOrigins   []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	OtelEndpoint     string        `env:"OTEL_ENDPOINT"`
	SendBuffer       int           `env:"SEND_BUFFER" envDefault:"32"`
}

// Load reads FARKLE_* variables from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "FARKLE_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.GracePeriod <= 0 {
		errs = append(errs, errors.New("FARKLE_GRACE_PERIOD must be positive"))
	}
	if c.TargetScore <= 0 {
		errs = append(errs, errors.New("FARKLE_TARGET_SCORE must be positive"))
	}
	if c.OpeningThreshold < 0 {
		errs = append(errs, errors.New("FARKLE_OPENING_THRESHOLD must not be negative"))
	}
	if c.MinPlayers < 2 {
		errs = append(errs, errors.New("FARKLE_MIN_PLAYERS must be at least 2"))
	}
	if c.MaxPlayers > 6 || c.MaxPlayers < c.MinPlayers {
		errs = append(errs, fmt.Errorf("FARKLE_MAX_PLAYERS must be between FARKLE_MIN_PLAYERS and 6, got %d", c.MaxPlayers))
	}
	if c.SendBuffer <= 0 {
		errs = append(errs, errors.New("FARKLE_SEND_BUFFER must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) Rules() farkle.Rules {
	return farkle.Rules{
		TargetScore:      c.TargetScore,
		OpeningThreshold: c.OpeningThreshold,
		MinPlayers:       c.MinPlayers,
		MaxPlayers:       c.MaxPlayers,
		StraightScore:    c.StraightScore,
	}
}
