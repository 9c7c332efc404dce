package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/models"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/prompt"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// chatService defines the minimal interface for chat completions, allowing
// tests to substitute a mock for the OpenAI client.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// OpenAIClient adapts the OpenAI chat completions backend to the normalized
// provider contract.
type OpenAIClient struct {
	chat  chatService
	model openai.ChatModel
}

// OpenAIOption configures the OpenAI adapter.
type OpenAIOption func(*openAIOptions)

type openAIOptions struct {
	apiKey string
	model  openai.ChatModel
}

// WithAPIKey sets an explicit API key instead of the environment variable.
func WithAPIKey(key string) OpenAIOption {
	return func(o *openAIOptions) { o.apiKey = key }
}

// WithModel overrides the default chat model.
func WithModel(model openai.ChatModel) OpenAIOption {
	return func(o *openAIOptions) { o.model = model }
}

// NewOpenAIClient initializes the adapter using OPENAI_API_KEY unless an
// explicit key is provided.
func NewOpenAIClient(opts ...OpenAIOption) (*OpenAIClient, error) {
	cfg := openAIOptions{model: openai.ChatModelGPT4o}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.apiKey == "" {
		cfg.apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	cli := openai.NewClient(option.WithAPIKey(cfg.apiKey))
	return &OpenAIClient{chat: &cli.Chat.Completions, model: cfg.model}, nil
}

// suggestFieldsTool returns the OpenAI tool definition for suggest_fields.
func suggestFieldsTool() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Type: "function",
		Function: shared.FunctionDefinitionParam{
			Name:        models.ToolSuggestFields,
			Description: openai.String(suggestFieldsDescription),
			Parameters:  shared.FunctionParameters(suggestFieldsSchema()),
		},
	}
}

// Invoke performs one chat completion with the suggest_fields tool attached
// and normalizes the response. Backend faults are logged and returned as an
// empty result, never as an error.
func (c *OpenAIClient) Invoke(ctx context.Context, req Request) (*models.ModelResult, error) {
	system := prompt.Build(req.Persona, req.Form, req.FirstTurn)
	if req.Voice {
		system = prompt.BuildVoice(req.Persona, req.Form, req.FirstTurn)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Turns)+1)
	messages = append(messages, openai.SystemMessage(system))
	for _, turn := range req.Turns {
		switch turn.Role {
		case models.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
		Tools:    []openai.ChatCompletionToolParam{suggestFieldsTool()},
	}

	resp, err := c.chat.New(ctx, params)
	if err != nil {
		slog.Error("OpenAIClient.Invoke: chat completion failed", "error", err)
		return &models.ModelResult{}, nil
	}
	if len(resp.Choices) == 0 {
		slog.Warn("OpenAIClient.Invoke: no choices returned")
		return &models.ModelResult{}, nil
	}

	msg := resp.Choices[0].Message
	result := &models.ModelResult{Text: msg.Content}

	for i, tc := range msg.ToolCalls {
		if tc.Function.Name != models.ToolSuggestFields {
			slog.Warn("OpenAIClient.Invoke: unexpected tool call", "name", tc.Function.Name)
			continue
		}
		if result.Call != nil {
			// The capability contract allows one invocation per turn; keep the first.
			slog.Warn("OpenAIClient.Invoke: dropping extra suggest_fields call", "index", i, "callID", tc.ID)
			continue
		}
		fc := models.FunctionCall{Name: tc.Function.Name, Arguments: json.RawMessage(tc.Function.Arguments)}
		params, perr := fc.ParseSuggestFieldsParams()
		if perr != nil {
			slog.Warn("OpenAIClient.Invoke: malformed suggest_fields arguments, treating as no updates", "error", perr)
			continue
		}
		result.Call = params
		result.CallID = tc.ID
	}

	slog.Debug("OpenAIClient.Invoke: normalized response",
		"hasText", result.Text != "",
		"hasCall", result.Call != nil)
	return result, nil
}
