package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"reviewlens/pkg/llm"
	"reviewlens/pkg/scraper"
)

const EnvProduction = "production"

type Config struct {
	Provider      string
	APIKey        string
	Port          string
	FrontendURL   string
	Environment   string
	FetchTimeout  time.Duration
	SelectorsFile string
}

// Load reads the process environment. The API key for the configured
// provider is required.
func Load() (*Config, error) {
	cfg := &Config{
		Provider:      os.Getenv("LLM_PROVIDER"),
		Port:          os.Getenv("PORT"),
		FrontendURL:   os.Getenv("FRONTEND_URL"),
		Environment:   os.Getenv("APP_ENV"),
		SelectorsFile: os.Getenv("SELECTORS_FILE"),
		FetchTimeout:  scraper.DefaultFetchTimeout,
	}

	if cfg.Provider == "" {
		cfg.Provider = llm.ProviderAnthropic
	}

	switch cfg.Provider {
	case llm.ProviderAnthropic:
		cfg.APIKey = os.Getenv("CLAUDE_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("CLAUDE_API_KEY environment variable is not set")
		}
	case llm.ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.Provider)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if raw := os.Getenv("FETCH_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid FETCH_TIMEOUT_SECONDS %q", raw)
		}
		cfg.FetchTimeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}
