package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DevEnv = "dev"
	ProEnv = "pro"
)

const devAddress = ":3000"

var ErrMissingSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	Environment   string
	Address       string // empty in pro: the server terminates TLS itself
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	WhitelistHost string
	CertCacheDir  string
}

func (c *Config) IsDev() bool {
	return c.Environment == DevEnv
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("env", ProEnv)
	v.SetDefault("jwt_expires_in", "24h")
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("cert_cache_dir", "/var/www/.cache")

	cfg := &Config{
		Environment:   v.GetString("env"),
		Address:       v.GetString("address_listen"),
		JWTSecret:     v.GetString("jwt_secret"),
		TokenTTL:      v.GetDuration("jwt_expires_in"),
		BcryptCost:    v.GetInt("bcrypt_cost"),
		WhitelistHost: v.GetString("whitelist_host"),
		CertCacheDir:  v.GetString("cert_cache_dir"),
	}

	switch cfg.Environment {
	case DevEnv, ProEnv:
	default:
		return nil, fmt.Errorf("unknown ENV %q, want %q or %q", cfg.Environment, DevEnv, ProEnv)
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN %q", v.GetString("jwt_expires_in"))
	}
	if cfg.IsDev() && cfg.Address == "" {
		cfg.Address = devAddress
	}
	return cfg, nil
}
