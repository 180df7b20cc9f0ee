package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port           string
	DeepgramAPIKey string
	OpenAIKey      string
	Language       string
	TTSVoice       string
	Env            string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DeepgramAPIKey: os.Getenv("DEEPGRAM_API_KEY"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		Language:       getEnv("LANGUAGE", "en"),
		TTSVoice:       getEnv("TTS_VOICE", "alloy"),
		Env:            getEnv("APP_ENV", "production"),
	}

	// Validate required environment variables
	if cfg.DeepgramAPIKey == "" {
		return nil, fmt.Errorf("DEEPGRAM_API_KEY is required. Please set it as environment variable:\n  Linux/Mac: export DEEPGRAM_API_KEY=\"your_key\"\n  Windows PowerShell: $env:DEEPGRAM_API_KEY=\"your_key\"")
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required. Please set it as environment variable:\n  Linux/Mac: export OPENAI_API_KEY=\"your_key\"\n  Windows PowerShell: $env:OPENAI_API_KEY=\"your_key\"")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
// Upstream error detail is only attached to responses when it is false.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
