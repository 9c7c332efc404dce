package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/models"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/prompt"
	"github.com/google/uuid"
)

// defaultGeminiBaseURL is the Gemini REST endpoint prefix.
const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient adapts the Google Gemini generateContent backend to the
// normalized provider contract over plain HTTP.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// GeminiOption configures the Gemini adapter.
type GeminiOption func(*GeminiClient)

// WithGeminiAPIKey sets an explicit API key instead of the environment variable.
func WithGeminiAPIKey(key string) GeminiOption {
	return func(c *GeminiClient) { c.apiKey = key }
}

// WithGeminiModel overrides the default model.
func WithGeminiModel(model string) GeminiOption {
	return func(c *GeminiClient) { c.model = model }
}

// WithGeminiBaseURL overrides the API endpoint, used by tests.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(c *GeminiClient) { c.baseURL = strings.TrimRight(url, "/") }
}

// NewGeminiClient initializes the adapter using GEMINI_API_KEY unless an
// explicit key is provided.
func NewGeminiClient(opts ...GeminiOption) (*GeminiClient, error) {
	c := &GeminiClient{
		model:   "gemini-1.5-flash",
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		c.apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	return c, nil
}

// Gemini wire shapes for generateContent.

type geminiPart struct {
	Text         string              `json:"text,omitempty"`
	FunctionCall *geminiFunctionCall `json:"functionCall,omitempty"`
}

type geminiFunctionCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	Tools             []geminiTool           `json:"tools,omitempty"`
	GenerationConfig  map[string]interface{} `json:"generationConfig,omitempty"`
}

type geminiTool struct {
	FunctionDeclarations []geminiFunctionDecl `json:"functionDeclarations"`
}

type geminiFunctionDecl struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Invoke performs one generateContent call with the suggest_fields function
// declared and normalizes the response losslessly into the shared result
// shape. Backend faults are logged and returned as an empty result.
func (c *GeminiClient) Invoke(ctx context.Context, req Request) (*models.ModelResult, error) {
	system := prompt.Build(req.Persona, req.Form, req.FirstTurn)
	if req.Voice {
		system = prompt.BuildVoice(req.Persona, req.Form, req.FirstTurn)
	}

	// Gemini's role vocabulary uses "model" for assistant turns.
	contents := make([]geminiContent, 0, len(req.Turns))
	for _, turn := range req.Turns {
		role := "user"
		if turn.Role == models.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: turn.Content}}})
	}
	if len(contents) == 0 {
		contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: "Please help me with the form."}}})
	}

	body := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents:          contents,
		Tools: []geminiTool{{FunctionDeclarations: []geminiFunctionDecl{{
			Name:        models.ToolSuggestFields,
			Description: suggestFieldsDescription,
			Parameters:  suggestFieldsSchema(),
		}}}},
		GenerationConfig: map[string]interface{}{
			"temperature":     0.7,
			"topP":            0.8,
			"topK":            40,
			"maxOutputTokens": 2048,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		slog.Error("GeminiClient.Invoke: failed to marshal request", "error", err)
		return &models.ModelResult{}, nil
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		slog.Error("GeminiClient.Invoke: failed to create request", "error", err)
		return &models.ModelResult{}, nil
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		slog.Error("GeminiClient.Invoke: request failed", "error", err)
		return &models.ModelResult{}, nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("GeminiClient.Invoke: failed to read response", "error", err)
		return &models.ModelResult{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		slog.Error("GeminiClient.Invoke: API error", "status", resp.StatusCode, "body", string(respBody))
		return &models.ModelResult{}, nil
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		slog.Error("GeminiClient.Invoke: failed to parse response", "error", err)
		return &models.ModelResult{}, nil
	}
	if parsed.Error != nil {
		slog.Error("GeminiClient.Invoke: API error envelope", "message", parsed.Error.Message)
		return &models.ModelResult{}, nil
	}
	if len(parsed.Candidates) == 0 {
		slog.Warn("GeminiClient.Invoke: no candidates returned")
		return &models.ModelResult{}, nil
	}

	result := &models.ModelResult{}
	var texts []string
	for _, part := range parsed.Candidates[0].Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
		if part.FunctionCall == nil {
			continue
		}
		if part.FunctionCall.Name != models.ToolSuggestFields {
			slog.Warn("GeminiClient.Invoke: unexpected function call", "name", part.FunctionCall.Name)
			continue
		}
		if result.Call != nil {
			// One invocation per turn; keep the first.
			slog.Warn("GeminiClient.Invoke: dropping extra suggest_fields call")
			continue
		}
		args, aerr := json.Marshal(part.FunctionCall.Args)
		if aerr != nil {
			slog.Warn("GeminiClient.Invoke: failed to re-marshal function args", "error", aerr)
			continue
		}
		fc := models.FunctionCall{Name: part.FunctionCall.Name, Arguments: args}
		params, perr := fc.ParseSuggestFieldsParams()
		if perr != nil {
			slog.Warn("GeminiClient.Invoke: malformed suggest_fields arguments, treating as no updates", "error", perr)
			continue
		}
		result.Call = params
		// Gemini does not issue tool-call IDs; synthesize one so the voice
		// channel always has a call_id to forward.
		result.CallID = uuid.NewString()
	}
	result.Text = strings.Join(texts, "\n")

	slog.Debug("GeminiClient.Invoke: normalized response",
		"hasText", result.Text != "",
		"hasCall", result.Call != nil)
	return result, nil
}
