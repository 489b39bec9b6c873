package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int    `yaml:"log_level"`
	BaseURL  string `yaml:"base_url"`

	// OutputDir overrides the default ~/Radio/<program> location.
	OutputDir string `yaml:"output_dir"`

	LookbackDays     int  `yaml:"lookback_days"`
	RetryWaitSeconds int  `yaml:"retry_wait_seconds"`
	MaxRetries       int  `yaml:"max_retries"`
	StrictDownload   bool `yaml:"strict_download"`

	// LegacyMonSatRange reproduces the historical expansion of the
	// Monday-through-Saturday schedule range, which omits Friday.
	LegacyMonSatRange bool `yaml:"legacy_mon_sat_range"`

	Storage StorageConfig `yaml:"storage"`
	Notify  NotifyConfig  `yaml:"notify"`
}

type StorageConfig struct {
	// Type of storage: "local" or "gcs"
	Type string `yaml:"type"`

	// GCS options
	Bucket          string `yaml:"bucket"`
	ObjectPrefix    string `yaml:"object_prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

type NotifyConfig struct {
	Player string `yaml:"player"`
	Sound  string `yaml:"sound"`
}

// Load reads a YAML config file and fills in defaults for missing keys.
// A missing file is not an error; the defaults are returned instead.
func Load(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Set defaults if not provided
	if config.BaseURL == "" {
		config.BaseURL = "https://www.ner.gov.tw"
	}

	if config.LookbackDays == 0 {
		config.LookbackDays = 60
	}

	if config.RetryWaitSeconds == 0 {
		config.RetryWaitSeconds = 600
	}

	if config.MaxRetries == 0 {
		config.MaxRetries = 6
	}

	if config.Storage.Type == "" {
		config.Storage.Type = "local"
	}

	if config.Notify.Player == "" {
		config.Notify.Player = "/usr/bin/mpg123"
	}

	if config.Notify.Sound == "" {
		if home, err := os.UserHomeDir(); err == nil {
			config.Notify.Sound = home + "/bin/complete.mp3"
		}
	}

	return config, nil
}
