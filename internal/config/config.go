// Package config resolves all runtime configuration once at process entry
// into an explicit struct that is passed to every component needing it.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration. It is constructed once by Load
// and never mutated afterwards.
type Config struct {
	// AnkiURL is the AnkiConnect endpoint.
	AnkiURL string

	// OpenRouter credentials for structured generation. Required at startup.
	OpenRouterKey     string
	OpenRouterBaseURL string
	ChatModel         string

	// ElevenLabs credentials for speech synthesis. Optional until the first
	// audio workflow runs.
	ElevenKey     string
	ElevenVoiceID string
	ElevenModelID string
}

const (
	defaultAnkiURL   = "http://localhost:8765"
	defaultChatModel = "gpt-4"
)

// Load builds the configuration from environment variables and the viper
// config file. Missing OpenRouter credentials are a fatal configuration
// error; missing ElevenLabs credentials are deferred to first use of speech
// synthesis.
func Load() (*Config, error) {
	cfg := &Config{
		AnkiURL:           lookup("ANKI_CONNECT_URL", "anki.url", defaultAnkiURL),
		OpenRouterKey:     lookup("OPENROUTER_API_KEY", "openrouter.api_key", ""),
		OpenRouterBaseURL: lookup("OPENROUTER_BASE_URL", "openrouter.base_url", ""),
		ChatModel:         lookup("OPENROUTER_MODEL", "openrouter.model", defaultChatModel),
		ElevenKey:         lookup("ELEVEN_API_KEY", "eleven.api_key", ""),
		ElevenVoiceID:     lookup("ELEVEN_VOICE_ID", "eleven.voice_id", ""),
		ElevenModelID:     lookup("ELEVEN_MODEL_ID", "eleven.model_id", ""),
	}

	var missing []string
	if cfg.OpenRouterKey == "" {
		missing = append(missing, "OPENROUTER_API_KEY")
	}
	if cfg.OpenRouterBaseURL == "" {
		missing = append(missing, "OPENROUTER_BASE_URL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s not set in environment variables", strings.Join(missing, " and "))
	}

	return cfg, nil
}

// lookup checks the environment first, then the viper config file, then the
// fallback.
func lookup(envName, configKey, fallback string) string {
	if value := os.Getenv(envName); value != "" {
		return value
	}
	if value := viper.GetString(configKey); value != "" {
		return value
	}
	return fallback
}
