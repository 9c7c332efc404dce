// Package models defines WebSocket message shapes for the voice channel.
package models

// Voice client → server message types.
const (
	VoiceMessageText       = "text_message"
	VoiceMessageFormUpdate = "form_update"
	VoiceMessageRoleChange = "role_change"
)

// Voice server → client message types.
const (
	VoiceEventAudioChunk   = "audio_chunk"
	VoiceEventTranscript   = "transcript"
	VoiceEventFunctionCall = "function_call"
	VoiceEventError        = "error"
)

// VoiceAudioMarker prefixes a text_message whose payload is base64 audio
// rather than typed text.
const VoiceAudioMarker = "[VOICE_AUDIO_BASE64]"

// TranscriptAIPrefix tags transcript events that carry assistant output.
const TranscriptAIPrefix = "[AI_TEXT]: "

// VoiceClientMessage is the JSON envelope for all client → server messages.
type VoiceClientMessage struct {
	Type     string            `json:"type"`
	Text     string            `json:"text,omitempty"`
	FormData map[string]string `json:"form_data,omitempty"`
	AIRole   string            `json:"ai_role,omitempty"`
}

// VoiceFunctionCallData is forwarded to the client when the model proposed
// field updates. The embedded conversational reply is stripped before
// emission so the transcript event remains the only message shown.
type VoiceFunctionCallData struct {
	CallID  string        `json:"call_id"`
	Name    string        `json:"name"`
	Updates []FieldUpdate `json:"updates"`
}
