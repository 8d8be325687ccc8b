package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration (file + env overrides)
type Config struct {
	Server struct {
		Addr     string `mapstructure:"addr"`
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"server"`

	Limits struct {
		// MaxTotalAds is the soft launch limit the stats endpoint
		// reports against. Generation itself is never truncated.
		MaxTotalAds int `mapstructure:"max_total_ads"`
	} `mapstructure:"limits"`

	Conventions struct {
		Path         string `mapstructure:"path"`
		Watch        bool   `mapstructure:"watch"`
		RetrySeconds int    `mapstructure:"retry_seconds"`
	} `mapstructure:"conventions"`
}

func Load() Config {
	v := viper.New()
	v.SetConfigName("application")
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	_ = v.ReadInConfig() // optional; env can fully configure

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Errorf("unable to decode config: %w", err))
	}
	validate(&cfg)
	return cfg
}

func validate(c *Config) {
	if c.Server.Addr == "" { c.Server.Addr = ":8080" }
	if c.Limits.MaxTotalAds == 0 { c.Limits.MaxTotalAds = 250 }
	if c.Conventions.Path == "" { c.Conventions.Path = "configs/conventions.yaml" }
	if c.Conventions.RetrySeconds <= 0 { c.Conventions.RetrySeconds = 5 }
}

func (c Config) Backoff() time.Duration { return time.Duration(c.Conventions.RetrySeconds) * time.Second }
