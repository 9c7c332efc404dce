package voice

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"
	"sync"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/compose"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/genai"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/models"
)

// unavailableReply is spoken when the model produced neither text nor a
// structured invocation.
const unavailableReply = "Sorry, I'm unable to respond right now."

// Event is one server → client message on the voice channel.
type Event struct {
	Type    string                        `json:"type"`
	Text    string                        `json:"text,omitempty"`
	Audio   string                        `json:"audio,omitempty"`  // base64 encoded
	Format  string                        `json:"format,omitempty"` // audio encoding, e.g. "mp3"
	Message string                        `json:"message,omitempty"`
	Data    *models.VoiceFunctionCallData `json:"data,omitempty"`
}

// Session is the per-connection voice pipeline state: persona, form
// snapshot, and conversation history. Each connection owns exactly one
// session; nothing here is shared between connections except the
// capability's transcription and synthesis backends.
type Session struct {
	mu      sync.Mutex
	persona models.Persona
	form    map[string]string
	turns   []models.ConversationTurn
	client  genai.ClientInterface
	cap     *Capability
}

// NewSession creates a session bound to one model adapter and the shared
// speech capability.
func NewSession(client genai.ClientInterface, cap *Capability, persona models.Persona) *Session {
	return &Session{
		persona: persona,
		form:    map[string]string{},
		client:  client,
		cap:     cap,
	}
}

// SetForm replaces the session's form snapshot.
func (s *Session) SetForm(form map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = make(map[string]string, len(form))
	for k, v := range form {
		s.form[k] = v
	}
	slog.Debug("Session.SetForm: form snapshot replaced", "fields", len(form))
}

// SetPersona switches the active persona for subsequent turns.
func (s *Session) SetPersona(p models.Persona) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persona = p
	slog.Info("Session.SetPersona: persona changed", "persona", p)
}

// ProcessText runs one chat turn from typed text. Blank input yields no
// events and no model call.
func (s *Session) ProcessText(ctx context.Context, text string) []Event {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return s.respond(ctx, text)
}

// ProcessAudio transcribes recorded audio and, when the transcript carries
// real speech, runs one chat turn. The user's transcript precedes the
// assistant events; noise and silence short-circuit with zero model calls.
func (s *Session) ProcessAudio(ctx context.Context, audio []byte) []Event {
	transcript, err := s.cap.stt.Transcribe(ctx, audio)
	if err != nil {
		slog.Error("Session.ProcessAudio: transcription failed", "error", err)
		return []Event{{Type: models.VoiceEventError, Message: "transcription failed"}}
	}

	cleaned, hasSpeech := s.cap.filter.Clean(transcript)
	if !hasSpeech {
		slog.Debug("Session.ProcessAudio: no usable speech", "raw", transcript)
		return nil
	}

	events := []Event{{Type: models.VoiceEventTranscript, Text: cleaned}}
	return append(events, s.respond(ctx, cleaned)...)
}

// respond appends the user turn, invokes the model, and renders the
// assistant events: function_call (updates only, reply stripped), the
// tagged assistant transcript, and the synthesized audio chunk.
func (s *Session) respond(ctx context.Context, userText string) []Event {
	s.mu.Lock()
	s.turns = append(s.turns, models.ConversationTurn{Role: models.RoleUser, Content: userText})
	form := make(map[string]string, len(s.form))
	for k, v := range s.form {
		form[k] = v
	}
	req := genai.Request{
		Turns:     append([]models.ConversationTurn(nil), s.turns...),
		Form:      form,
		Persona:   s.persona,
		FirstTurn: s.firstTurnLocked(),
		Voice:     true,
	}
	s.mu.Unlock()

	res, err := s.client.Invoke(ctx, req)
	if err != nil {
		slog.Error("Session.respond: model invocation failed", "error", err)
		res = &models.ModelResult{}
	}

	var events []Event
	reply := compose.Compose(res)
	if res != nil && res.Call != nil && len(res.Call.Updates) > 0 {
		events = append(events, Event{
			Type: models.VoiceEventFunctionCall,
			Data: &models.VoiceFunctionCallData{
				CallID:  res.CallID,
				Name:    models.ToolSuggestFields,
				Updates: res.Call.Updates,
			},
		})
	}
	if reply.Prose == "" {
		reply.Prose = unavailableReply
		reply.Display = unavailableReply
	}

	events = append(events, Event{
		Type: models.VoiceEventTranscript,
		Text: models.TranscriptAIPrefix + reply.Display,
	})

	if audio, err := s.cap.tts.Synthesize(ctx, reply.Prose); err != nil {
		slog.Error("Session.respond: synthesis failed", "error", err)
		events = append(events, Event{Type: models.VoiceEventError, Message: "speech synthesis failed"})
	} else if len(audio) > 0 {
		events = append(events, Event{
			Type:   models.VoiceEventAudioChunk,
			Audio:  base64.StdEncoding.EncodeToString(audio),
			Format: "mp3",
		})
	}

	// Accepted suggestions become part of the session's form context so the
	// next turn's prompt reflects them, same as a form_update from the client.
	s.mu.Lock()
	for field, value := range reply.UpdatedFields {
		s.form[field] = value
	}
	s.turns = append(s.turns, models.ConversationTurn{Role: models.RoleAssistant, Content: reply.Prose})
	s.mu.Unlock()

	return events
}

// firstTurnLocked reports whether the assistant has spoken yet. Callers
// must hold s.mu.
func (s *Session) firstTurnLocked() bool {
	for _, t := range s.turns {
		if t.Role == models.RoleAssistant {
			return false
		}
	}
	return true
}
