package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sitekb/sitekb"
	"github.com/sitekb/sitekb/gemini"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Crawler CrawlerConfig `yaml:"crawler"`
	Models  ModelsConfig  `yaml:"models"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	Collection   string `yaml:"collection"`
}

// CrawlerConfig holds crawl behavior settings. Extractor selects the HTML
// cleaning implementation, "goquery" (default) or "trafilatura".
type CrawlerConfig struct {
	Concurrency int    `yaml:"concurrency"`
	Retries     bool   `yaml:"retries"`
	Extractor   string `yaml:"extractor"`
}

// ModelsConfig holds Gemini model settings.
type ModelsConfig struct {
	Embedding  string `yaml:"embedding"`
	Generation string `yaml:"generation"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8000"},
		Storage: StorageConfig{DatabasePath: defaultDBPath(), Collection: "documents"},
		Crawler: CrawlerConfig{Concurrency: 1, Extractor: "goquery"},
		Models: ModelsConfig{
			Embedding:  gemini.DefaultEmbeddingModel,
			Generation: gemini.DefaultGenerationModel,
		},
	}
}

// LoadConfig reads the YAML config at path and fills unset fields with
// defaults. A missing file yields the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, sitekb.Errorf(sitekb.EINVALID, "failed to parse config %q: %s", path, err)
	}

	defaults := DefaultConfig()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = defaults.Storage.DatabasePath
	}
	if cfg.Storage.Collection == "" {
		cfg.Storage.Collection = defaults.Storage.Collection
	}
	if cfg.Crawler.Concurrency <= 0 {
		cfg.Crawler.Concurrency = defaults.Crawler.Concurrency
	}
	switch cfg.Crawler.Extractor {
	case "":
		cfg.Crawler.Extractor = defaults.Crawler.Extractor
	case "goquery", "trafilatura":
	default:
		return nil, sitekb.Errorf(sitekb.EINVALID, "unknown extractor %q", cfg.Crawler.Extractor)
	}
	if cfg.Models.Embedding == "" {
		cfg.Models.Embedding = defaults.Models.Embedding
	}
	if cfg.Models.Generation == "" {
		cfg.Models.Generation = defaults.Models.Generation
	}

	return cfg, nil
}

func defaultConfigPath() string {
	if path := os.Getenv("SITEKB_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitekb.yaml"
	}
	return filepath.Join(home, ".sitekb", "config.yaml")
}

func defaultDBPath() string {
	if path := os.Getenv("SITEKB_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitekb.db"
	}
	dir := filepath.Join(home, ".sitekb")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sitekb.db")
}
