// Package config loads the resolver's connection settings from an optional
// s3templates.yaml file and the environment. Every key has an
// S3TEMPLATES_* environment variable; credentials additionally fall back to
// the standard AWS variables.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the env-driven setup for one bucket-backed resolver.
type Config struct {
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	Bucket     string `mapstructure:"bucket"`
	Endpoint   string `mapstructure:"endpoint"`
	Region     string `mapstructure:"region"`
	SearchPath string `mapstructure:"search_path"` // comma-separated, priority order
	LogLevel   string `mapstructure:"log_level"`
}

// SearchDirs returns the search path as an ordered slice, blanks dropped.
func (c *Config) SearchDirs() []string {
	if c.SearchPath == "" {
		return nil
	}
	parts := strings.Split(c.SearchPath, ",")
	dirs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			dirs = append(dirs, p)
		}
	}
	return dirs
}

// Load reads s3templates.yaml (if present) and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("S3TEMPLATES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"access_key", "secret_key", "bucket",
		"endpoint", "region", "search_path", "log_level",
	} {
		v.BindEnv(key)
	}
	v.SetDefault("log_level", "info")

	v.SetConfigName("s3templates")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.AccessKey == "" {
		cfg.AccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	}
	if cfg.SecretKey == "" {
		cfg.SecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	return &cfg, nil
}
