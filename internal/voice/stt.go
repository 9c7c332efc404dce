package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

// Transcriber converts recorded audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// transcriptionPrompt biases Whisper toward the report's vocabulary.
const transcriptionPrompt = "This is a maritime pilot report in English. Please transcribe clearly and accurately."

// WhisperConfig holds transcription API configuration.
type WhisperConfig struct {
	APIKey   string
	Model    string // "whisper-1"
	Language string
	BaseURL  string
	Timeout  time.Duration
}

// DefaultWhisperConfig returns sensible defaults.
func DefaultWhisperConfig() WhisperConfig {
	return WhisperConfig{
		Model:    "whisper-1",
		Language: "en",
		BaseURL:  "https://api.openai.com/v1",
		Timeout:  30 * time.Second,
	}
}

// WhisperProvider implements Transcriber against OpenAI's transcription API.
type WhisperProvider struct {
	apiKey string
	config WhisperConfig
	client *http.Client
}

// NewWhisperProvider creates a transcription provider; the API key falls
// back to OPENAI_API_KEY.
func NewWhisperProvider(config WhisperConfig) *WhisperProvider {
	if config.Model == "" {
		config = DefaultWhisperConfig()
	}
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return &WhisperProvider{
		apiKey: apiKey,
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Transcribe sends raw PCM16 audio to the transcription API and returns the
// recognized text.
func (p *WhisperProvider) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("transcription API key not configured")
	}
	if len(audio) == 0 {
		return "", nil
	}

	wavData := wrapPCM(audio, 16000, 1)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(wavData); err != nil {
		return "", fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := writer.WriteField("model", p.config.Model); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if p.config.Language != "" {
		if err := writer.WriteField("language", p.config.Language); err != nil {
			return "", fmt.Errorf("failed to write language field: %w", err)
		}
	}
	if err := writer.WriteField("prompt", transcriptionPrompt); err != nil {
		return "", fmt.Errorf("failed to write prompt field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		slog.Error("WhisperProvider.Transcribe: API error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("transcription API error: %s", string(body))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	slog.Debug("WhisperProvider.Transcribe: transcription complete", "length", len(result.Text))
	return result.Text, nil
}
