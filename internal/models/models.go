// Package models defines core types for the Maritime Pilot Report assistant,
// including request/response schemas, personas, and API response envelopes.
package models

import (
	"fmt"
	"log/slog"
)

// Persona identifies a behavioral profile for the assistant. The persona
// controls tone and proactivity but never the tool contract.
type Persona string

const (
	// PersonaCoWorker behaves like an equal teammate and is the default.
	PersonaCoWorker Persona = "co-worker"
	// PersonaButler maximizes auto-filling to minimize user effort.
	PersonaButler Persona = "butler"
	// PersonaCoach guides the user through the form step by step.
	PersonaCoach Persona = "coach"
)

// DefaultPersona is used whenever a request carries an unknown persona.
const DefaultPersona = PersonaCoWorker

// ParsePersona maps a raw string to a known persona. Unknown values fall back
// to the default persona rather than failing.
func ParsePersona(s string) Persona {
	switch Persona(s) {
	case PersonaCoWorker, PersonaButler, PersonaCoach:
		return Persona(s)
	case "":
		return DefaultPersona
	default:
		slog.Warn("models.ParsePersona: unknown persona, falling back to default", "persona", s, "default", DefaultPersona)
		return DefaultPersona
	}
}

// Provider selects which language-model backend serves a request.
type Provider string

const (
	// ProviderOpenAI uses the OpenAI chat completions backend.
	ProviderOpenAI Provider = "openai"
	// ProviderGemini uses the Google Gemini generateContent backend.
	ProviderGemini Provider = "gemini"
)

// DefaultProvider is used when a request does not name a backend.
const DefaultProvider = ProviderOpenAI

// ParseProvider maps a raw string to a known provider, defaulting to OpenAI.
func ParseProvider(s string) Provider {
	switch Provider(s) {
	case ProviderOpenAI, ProviderGemini:
		return Provider(s)
	case "":
		return DefaultProvider
	default:
		slog.Warn("models.ParseProvider: unknown provider, falling back to default", "provider", s, "default", DefaultProvider)
		return DefaultProvider
	}
}

// Conversation roles understood by the core. Provider adapters translate
// backend-native role vocabularies into these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is a single message in a conversation. Order across a
// slice of turns is chronological and must be preserved.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Messages []ConversationTurn `json:"messages"`
	Form     map[string]string  `json:"form,omitempty"`
	Persona  string             `json:"persona,omitempty"`
	Provider string             `json:"provider,omitempty"`
}

// Validate checks structural requirements of a chat request.
func (r *ChatRequest) Validate() error {
	if len(r.Messages) == 0 {
		return fmt.Errorf("missing required field: messages")
	}
	for i, m := range r.Messages {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			return fmt.Errorf("invalid role %q in message %d", m.Role, i)
		}
	}
	return nil
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	Reply         string            `json:"reply"`
	UpdatedFields map[string]string `json:"updated_fields"`
	HasUpdates    bool              `json:"has_updates"`
}

// InitializeRequest is the body of POST /initialize.
type InitializeRequest struct {
	Persona  string `json:"persona,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// InitializeResponse carries the two canned opening replies (a greeting, then
// a persona-flavored summary of auto-filled fields and fields still needing
// input) plus the defaults the model proposed.
type InitializeResponse struct {
	Replies       []string          `json:"replies"`
	UpdatedFields map[string]string `json:"updated_fields"`
	HasUpdates    bool              `json:"has_updates"`
}

// ModelResult is the canonical, backend-agnostic shape every provider adapter
// returns. At most one structured invocation is present per turn; when the
// model calls suggest_fields its conversational reply travels inside
// Call.Reply rather than in Text.
type ModelResult struct {
	Text   string               // free-text reply, may be empty
	Call   *SuggestFieldsParams // structured invocation, nil when absent
	CallID string               // backend tool-call ID, synthesized when the backend has none
}

// Empty reports whether the backend produced neither text nor an invocation.
func (r *ModelResult) Empty() bool {
	return r == nil || (r.Text == "" && r.Call == nil)
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates a successful operation.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates a failed operation.
	APIStatusError APIStatus = "error"
)

// APIResponse is the standard envelope for non-domain API replies.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Result: result}
}

// SuccessWithMessage creates a successful API response with a message.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Message: message, Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: string(APIStatusError), Message: message}
}
