package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Source SourceConfig `yaml:"source"`
	Review ReviewConfig `yaml:"review"`
	Engine EngineConfig `yaml:"engine"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`
}

type SourceConfig struct {
	// Path to the JSON registry extract loaded once at startup.
	Path string `yaml:"path"`
}

type ReviewConfig struct {
	// DataPath is the directory holding the durable review database.
	DataPath string `yaml:"data_path"`
}

type EngineConfig struct {
	// Debounce coalesces rapid filter changes into one recomputation.
	Debounce time.Duration `yaml:"debounce"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	setDefaults(&cfg)
	return &cfg, nil
}

func LoadFromEnv() *Config {
	cfg := &Config{}
	setDefaults(cfg)

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if path := os.Getenv("RECORDS_PATH"); path != "" {
		cfg.Source.Path = path
	}
	if path := os.Getenv("REVIEW_DATA_PATH"); path != "" {
		cfg.Review.DataPath = path
	}

	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3006
	}
	if cfg.Server.Environment == "" {
		cfg.Server.Environment = "development"
	}
	if cfg.Source.Path == "" {
		cfg.Source.Path = "./data/records.json"
	}
	if cfg.Review.DataPath == "" {
		cfg.Review.DataPath = "/var/lib/vaxtriage/data"
		if cfg.Server.Environment == "development" {
			cfg.Review.DataPath = "/tmp/vaxtriage/data"
		}
	}
	if cfg.Engine.Debounce == 0 {
		cfg.Engine.Debounce = 300 * time.Millisecond
	}
}
