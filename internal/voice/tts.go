package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Synthesizer converts reply text to spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Available synthesis voices.
const (
	VoiceAlloy   = "alloy"
	VoiceEcho    = "echo"
	VoiceFable   = "fable"
	VoiceOnyx    = "onyx"
	VoiceNova    = "nova"
	VoiceShimmer = "shimmer"
)

// SpeechConfig holds speech synthesis configuration.
type SpeechConfig struct {
	APIKey  string
	Model   string // tts-1 or tts-1-hd
	Voice   string
	BaseURL string
	Timeout time.Duration
}

// DefaultSpeechConfig returns sensible defaults.
func DefaultSpeechConfig() SpeechConfig {
	return SpeechConfig{
		Model:   "tts-1",
		Voice:   VoiceAlloy,
		BaseURL: "https://api.openai.com/v1",
		Timeout: 30 * time.Second,
	}
}

// SpeechProvider implements Synthesizer against OpenAI's TTS API.
type SpeechProvider struct {
	apiKey string
	config SpeechConfig
	client *http.Client
}

// NewSpeechProvider creates a synthesis provider; the API key falls back to
// OPENAI_API_KEY.
func NewSpeechProvider(config SpeechConfig) *SpeechProvider {
	if config.Model == "" {
		config = DefaultSpeechConfig()
	}
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return &SpeechProvider{
		apiKey: apiKey,
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format,omitempty"`
}

// Synthesize converts text to MP3 audio.
func (p *SpeechProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("speech API key not configured")
	}
	if text == "" {
		return nil, nil
	}

	body, err := json.Marshal(speechRequest{
		Model:          p.config.Model,
		Input:          text,
		Voice:          p.config.Voice,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		slog.Error("SpeechProvider.Synthesize: API error", "status", resp.StatusCode, "body", string(errBody))
		return nil, fmt.Errorf("speech API error: %s", string(errBody))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}

	slog.Debug("SpeechProvider.Synthesize: synthesis complete", "bytes", len(audio))
	return audio, nil
}
