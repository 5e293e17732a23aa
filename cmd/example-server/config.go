package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type serverConfig struct {
	Listen     string `yaml:"listen"`
	RedisAddr  string `yaml:"redis_addr"`
	Limit      int64  `yaml:"limit"`
	Period     string `yaml:"period"`
	CookieName string `yaml:"cookie_name"`
	KeyPrefix  string `yaml:"key_prefix"`
	FailOpen   bool   `yaml:"fail_open"`
	LogLevel   string `yaml:"log_level"`
}

func defaultConfig() serverConfig {
	return serverConfig{
		Listen:    ":8080",
		RedisAddr: "localhost:6379",
		Limit:     100,
		Period:    "1m",
		LogLevel:  "info",
	}
}

// loadConfig reads path when given, otherwise uses defaults. The
// REDIS_ADDR environment variable overrides the file either way.
func loadConfig(path string) (serverConfig, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}

	return cfg, nil
}

func (c serverConfig) period() (time.Duration, error) {
	d, err := time.ParseDuration(c.Period)
	if err != nil {
		return 0, fmt.Errorf("invalid period %q: %w", c.Period, err)
	}
	return d, nil
}
