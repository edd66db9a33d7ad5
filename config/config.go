// Package config loads client configuration from the environment and an
// optional ~/.splitter/splitter.yml file. Environment variables win over the
// file; defaults cover the local-development setup.
package config

import (
	"errors"
	"fmt"
	"os/user"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config holds everything needed to construct a client and its session
// store.
type Config struct {
	APIURL      string        `mapstructure:"api_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SessionPath string        `mapstructure:"session_path"`
	SessionKey  string        `mapstructure:"session_key"`
	Debug       bool          `mapstructure:"debug"`
}

func homedir() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.HomeDir, nil
}

func loadEnv(v *viper.Viper) error {
	if err := v.BindEnv("api_url", "SPLITTER_API_URL"); err != nil {
		return err
	}
	v.SetDefault("api_url", "http://localhost:8000/api/v1")

	if err := v.BindEnv("timeout", "SPLITTER_TIMEOUT"); err != nil {
		return err
	}
	v.SetDefault("timeout", "30s")

	if err := v.BindEnv("session_path", "SPLITTER_SESSION_PATH"); err != nil {
		return err
	}
	home, err := homedir()
	if err != nil {
		return err
	}
	v.SetDefault("session_path", filepath.Join(home, ".splitter", "session.db"))

	if err := v.BindEnv("session_key", "SPLITTER_SESSION_KEY"); err != nil {
		return err
	}

	if err := v.BindEnv("debug", "DEBUG"); err != nil {
		return err
	}
	v.SetDefault("debug", false)

	return nil
}

func loadViperConfig() (*viper.Viper, error) {
	v := viper.New()

	if err := loadEnv(v); err != nil {
		return nil, err
	}

	home, err := homedir()
	if err != nil {
		return nil, err
	}
	v.AddConfigPath(filepath.Join(home, ".splitter"))
	v.SetConfigType("yml")
	v.SetConfigName("splitter")

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; only the env is required.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return v, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("api_url must not be empty")
	}
	return &cfg, nil
}

// Load reads configuration from the environment and the optional config
// file.
func Load() (*Config, error) {
	v, err := loadViperConfig()
	if err != nil {
		return nil, err
	}
	return unmarshal(v)
}

// NewTestConfig returns a config pointed at the given base URL with the rest
// left at defaults, for use in tests.
func NewTestConfig(apiURL string) *Config {
	return &Config{
		APIURL:  apiURL,
		Timeout: 30 * time.Second,
	}
}
