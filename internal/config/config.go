package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Source is one syndication endpoint bound to a category. Priority is kept
// from the config file for operators but is not consulted anywhere in the
// pipeline.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Priority int    `yaml:"priority"`
}

// Category is a fixed output label with its ordered feed list. Category
// order in the file is the processing order.
type Category struct {
	Name  string   `yaml:"name"`
	Feeds []Source `yaml:"feeds"`
}

// FeedsConfig is the YAML feeds table structure:
//
//	categories:
//	  - name: "Релизы"
//	    feeds:
//	      - name: "StopGame - Новости"
//	        url: https://rss.stopgame.ru/rss_news.xml
//	        priority: 1
type FeedsConfig struct {
	Categories []Category `yaml:"categories"`
}

type Config struct {
	// RSS settings
	FeedsConfigPath string
	MaxPerCategory  int
	Categories      []Category

	// Output layout
	DataDir string

	// Synthesis settings
	TTSLanguage string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		FeedsConfigPath: "configs/feeds.yaml",
		MaxPerCategory:  5,
		DataDir:         "data",
		TTSLanguage:     "ru",
		RequestTimeout:  30 * time.Second,
		RetryAttempts:   3,
		RetryDelay:      2 * time.Second,
	}

	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.DataDir = getEnvOrDefault("DATA_DIR", cfg.DataDir)
	cfg.TTSLanguage = getEnvOrDefault("TTS_LANGUAGE", cfg.TTSLanguage)

	if limit := os.Getenv("MAX_NEWS_PER_CATEGORY"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 {
			cfg.MaxPerCategory = val
		}
	}
	if v := os.Getenv("RETRY_ATTEMPTS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RetryAttempts = val
		}
	}
	if v := os.Getenv("RETRY_DELAY_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RetryDelay = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	feeds, err := LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading feeds config: %w", err)
	}
	cfg.Categories = feeds.Categories

	return cfg, cfg.Validate()
}

// LoadFeeds reads the category/source table from a YAML file.
func LoadFeeds(path string) (*FeedsConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("feeds config has no categories")
	}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category without a name in %s", c.FeedsConfigPath)
		}
		for _, s := range cat.Feeds {
			if s.Name == "" {
				return fmt.Errorf("category %q: source without a name", cat.Name)
			}
			if s.URL == "" {
				return fmt.Errorf("source %q: url is required", s.Name)
			}
			u, err := url.Parse(s.URL)
			if err != nil {
				return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
			}
		}
	}
	return nil
}
