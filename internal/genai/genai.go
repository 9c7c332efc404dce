// Package genai provides language-model provider adapters. Every adapter
// performs exactly one model invocation per call and returns the same
// normalized result shape, so downstream composition is agnostic to which
// backend ran.
package genai

import (
	"context"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/models"
)

// Request carries everything one model invocation needs. Turns are replayed
// to the backend in chronological order.
type Request struct {
	Turns     []models.ConversationTurn
	Form      map[string]string
	Persona   models.Persona
	FirstTurn bool
	Voice     bool // use spoken-style instructions
}

// ClientInterface is the contract every provider adapter satisfies.
//
// Invoke never propagates backend faults: unavailable backends, auth
// failures, and responses with neither text nor a structured invocation are
// logged and surfaced as an empty ModelResult, pushing fallback
// responsibility to the response composer.
type ClientInterface interface {
	Invoke(ctx context.Context, req Request) (*models.ModelResult, error)
}

// suggestFieldsDescription documents the single capability exposed to every
// backend.
const suggestFieldsDescription = "Updates form fields while providing a natural, conversational response to the user. Should explain what you're updating and why, ask follow-up questions, and maintain the conversation flow."

// suggestFieldsSchema is the JSON schema of the suggest_fields arguments.
// Both reply and updates are required; updates may be an empty list.
func suggestFieldsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"reply": map[string]interface{}{
				"type":        "string",
				"description": "Natural, conversational response to the user.",
			},
			"updates": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"field":      map[string]interface{}{"type": "string"},
						"suggestion": map[string]interface{}{"type": "string"},
					},
					"required": []string{"field", "suggestion"},
				},
			},
		},
		"required": []string{"reply", "updates"},
	}
}

// Registry resolves a provider selector to its adapter.
type Registry struct {
	clients map[models.Provider]ClientInterface
}

// NewRegistry builds a registry from the configured adapters. Nil adapters
// are skipped so a deployment can run with a single backend.
func NewRegistry(openAI, gemini ClientInterface) *Registry {
	clients := make(map[models.Provider]ClientInterface, 2)
	if openAI != nil {
		clients[models.ProviderOpenAI] = openAI
	}
	if gemini != nil {
		clients[models.ProviderGemini] = gemini
	}
	return &Registry{clients: clients}
}

// ForProvider returns the adapter for the selector, falling back to the
// default provider's adapter when the requested one is not configured.
func (r *Registry) ForProvider(p models.Provider) (ClientInterface, bool) {
	if c, ok := r.clients[p]; ok {
		return c, true
	}
	c, ok := r.clients[models.DefaultProvider]
	return c, ok
}
