package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr        string        `mapstructure:"addr"`
	StorageDir  string        `mapstructure:"storage_dir"`
	MediaDir    string        `mapstructure:"media_dir"`
	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	LogLevel    string        `mapstructure:"log_level"`
	LogPretty   bool          `mapstructure:"log_pretty"`
}

// Load reads config.yaml from the working directory or ./config if one
// exists and overlays BRANCH_* environment variables. Everything has a
// usable default for local development.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":3001")
	v.SetDefault("storage_dir", "data")
	v.SetDefault("media_dir", "data/videos")
	v.SetDefault("token_secret", "dev-secret-change-me")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("branch")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
