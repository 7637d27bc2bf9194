package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	requestTimeout = 30 * time.Second
)

// ConfigError means required speech credentials are missing. It is raised
// before any network call is attempted.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ElevenLabs configuration is not complete, missing: %s", strings.Join(e.Missing, ", "))
}

// Config holds the three pieces of configuration ElevenLabs requires.
type Config struct {
	APIKey  string
	VoiceID string
	ModelID string
	BaseURL string // Defaults to the public API endpoint.
}

// Synthesizer converts text to speech via the ElevenLabs API.
type Synthesizer struct {
	config     Config
	httpClient *http.Client
}

// NewSynthesizer creates a synthesizer. Credential validation is deferred to
// Synthesize so a session without audio workflows never needs speech
// credentials.
func NewSynthesizer(config Config) *Synthesizer {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	return &Synthesizer{
		config:     config,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// payloadKind discriminates the two response shapes the API produces.
type payloadKind int

const (
	payloadBuffered payloadKind = iota
	payloadStreamed
)

// audioPayload is the audio data in exactly one of two shapes, decided once
// at the HTTP boundary: a complete buffer or a stream still being read.
type audioPayload struct {
	kind   payloadKind
	data   []byte
	stream io.Reader
}

// Synthesize requests audio for the given text and writes it to a temporary
// file, returning the file's path. The caller owns the file; it is not
// cleaned up here.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	if err := s.checkConfig(); err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]string{
		"text":     text,
		"model_id": s.config.ModelID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode speech request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.config.BaseURL, s.config.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build speech request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ElevenLabs API error: %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	payload, err := classifyPayload(resp)
	if err != nil {
		return "", err
	}
	return writeTempFile(payload)
}

func (s *Synthesizer) checkConfig() error {
	var missing []string
	if s.config.APIKey == "" {
		missing = append(missing, "API key")
	}
	if s.config.VoiceID == "" {
		missing = append(missing, "voice id")
	}
	if s.config.ModelID == "" {
		missing = append(missing, "model id")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// classifyPayload decides the payload shape once, at the boundary: a known
// content length means the whole buffer can be read up front, anything else
// is treated as a stream. Non-audio responses are rejected.
func classifyPayload(resp *http.Response) (*audioPayload, error) {
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "audio/") && contentType != "application/octet-stream" {
		return nil, fmt.Errorf("unsupported audio response format: %s", contentType)
	}

	if resp.ContentLength >= 0 {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		return &audioPayload{kind: payloadBuffered, data: data}, nil
	}
	return &audioPayload{kind: payloadStreamed, stream: resp.Body}, nil
}

func writeTempFile(payload *audioPayload) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("eleven_%s.mp3", uuid.NewString()))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer out.Close()

	switch payload.kind {
	case payloadBuffered:
		_, err = out.Write(payload.data)
	case payloadStreamed:
		_, err = io.Copy(out, payload.stream)
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	return path, nil
}
