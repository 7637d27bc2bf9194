package config

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name: "complete generation credentials",
			env: map[string]string{
				"OPENROUTER_API_KEY":  "key",
				"OPENROUTER_BASE_URL": "https://openrouter.ai/api/v1",
			},
		},
		{
			name:    "missing API key",
			env:     map[string]string{"OPENROUTER_BASE_URL": "https://openrouter.ai/api/v1"},
			wantErr: "OPENROUTER_API_KEY",
		},
		{
			name:    "missing base URL",
			env:     map[string]string{"OPENROUTER_API_KEY": "key"},
			wantErr: "OPENROUTER_BASE_URL",
		},
		{
			name:    "missing both",
			env:     map[string]string{},
			wantErr: "OPENROUTER_API_KEY and OPENROUTER_BASE_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Blank out any ambient credentials first.
			for _, name := range []string{"OPENROUTER_API_KEY", "OPENROUTER_BASE_URL", "OPENROUTER_MODEL", "ANKI_CONNECT_URL"} {
				t.Setenv(name, "")
			}
			for name, value := range tt.env {
				t.Setenv(name, value)
			}

			cfg, err := Load()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Load() error = %v", err)
				}
				if cfg.AnkiURL != defaultAnkiURL {
					t.Errorf("AnkiURL = %q, want default", cfg.AnkiURL)
				}
				if cfg.ChatModel != defaultChatModel {
					t.Errorf("ChatModel = %q, want default", cfg.ChatModel)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to name %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadElevenLabsOptionalAtStartup(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "key")
	t.Setenv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	for _, name := range []string{"ELEVEN_API_KEY", "ELEVEN_VOICE_ID", "ELEVEN_MODEL_ID"} {
		t.Setenv(name, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, speech credentials must not be required at startup", err)
	}
	if cfg.ElevenKey != "" || cfg.ElevenVoiceID != "" {
		t.Errorf("ElevenLabs config = %+v, want empty", cfg)
	}
}
