package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	// APIBaseURL is the root of the remote platform API.
	APIBaseURL string `mapstructure:"api_base_url"`
	// DataDir holds the local database and logs.
	DataDir string `mapstructure:"data_dir"`
	LogFile string `mapstructure:"log_file"`
	// PageSize is the comment page size.
	PageSize int `mapstructure:"page_size"`
}

// Load reads configuration from an optional file, environment
// variables prefixed NOVELREADER_, and built-in defaults. A missing
// config file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".novelreader")

	v.SetDefault("api_base_url", "https://api.novelreader.app/v1")
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("log_file", filepath.Join(dataDir, "novelreader.log"))
	v.SetDefault("page_size", 10)

	v.SetEnvPrefix("NOVELREADER")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("failed to read config: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	return &cfg, nil
}

// DBPath is the local SQLite database location.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "novelreader.db")
}
