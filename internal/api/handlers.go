package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/compose"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/genai"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/models"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/prompt"
)

// initializeInstruction seeds the opening model turn: populate every field
// with a known default and summarize what was filled.
const initializeInstruction = "We are starting a new pilot report. Fill in every form field that has a known default value by calling suggest_fields, then briefly summarize which fields you filled and which still need my input."

// chatHandler handles POST /chat: one conversational turn.
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("chatHandler invoked", "method", r.Method, "path", r.URL.Path)

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("chatHandler invalid JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("chatHandler validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	persona := models.ParsePersona(req.Persona)
	provider := models.ParseProvider(req.Provider)
	client, ok := s.registry.ForProvider(provider)
	if !ok {
		slog.Error("chatHandler no model backend configured", "provider", provider)
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("No model backend configured"))
		return
	}

	res, err := client.Invoke(r.Context(), genai.Request{
		Turns:     req.Messages,
		Form:      req.Form,
		Persona:   persona,
		FirstTurn: firstTurn(req.Messages),
	})
	if err != nil {
		slog.Error("chatHandler model invocation failed", "error", err, "provider", provider)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to generate response"))
		return
	}

	// A backend fault surfaces as an empty reply with no updates; the
	// spoken apology is a voice-channel behavior only.
	reply := compose.Compose(res)

	slog.Info("chatHandler succeeded", "provider", provider, "persona", persona, "hasUpdates", reply.HasUpdates)
	writeJSONResponse(w, http.StatusOK, models.ChatResponse{
		Reply:         reply.Display,
		UpdatedFields: reply.UpdatedFields,
		HasUpdates:    reply.HasUpdates,
	})
}

// initializeHandler handles POST /initialize: the canned conversation opener.
// The first reply is the persona's greeting; the second summarizes the
// default values the model proposed.
func (s *Server) initializeHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("initializeHandler invoked", "method", r.Method, "path", r.URL.Path)

	var req models.InitializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("initializeHandler invalid JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	persona := models.ParsePersona(req.Persona)
	provider := models.ParseProvider(req.Provider)
	client, ok := s.registry.ForProvider(provider)
	if !ok {
		slog.Error("initializeHandler no model backend configured", "provider", provider)
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("No model backend configured"))
		return
	}

	res, err := client.Invoke(r.Context(), genai.Request{
		Turns:     []models.ConversationTurn{{Role: models.RoleUser, Content: initializeInstruction}},
		Persona:   persona,
		FirstTurn: true,
	})
	if err != nil {
		slog.Error("initializeHandler model invocation failed", "error", err, "provider", provider)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to initialize conversation"))
		return
	}

	reply := compose.Compose(res)
	replies := []string{prompt.Greeting(persona)}
	if reply.Display != "" {
		replies = append(replies, reply.Display)
	}

	slog.Info("initializeHandler succeeded", "provider", provider, "persona", persona, "hasUpdates", reply.HasUpdates)
	writeJSONResponse(w, http.StatusOK, models.InitializeResponse{
		Replies:       replies,
		UpdatedFields: reply.UpdatedFields,
		HasUpdates:    reply.HasUpdates,
	})
}

// healthHandler handles GET /health.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Service healthy", nil))
}

// firstTurn reports whether the assistant has not yet spoken in this
// conversation.
func firstTurn(turns []models.ConversationTurn) bool {
	for _, t := range turns {
		if t.Role == models.RoleAssistant {
			return false
		}
	}
	return true
}
