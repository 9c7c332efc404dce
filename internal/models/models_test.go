package models

import (
	"strings"
	"testing"
)

func TestParsePersona_Known(t *testing.T) {
	cases := []struct {
		in   string
		want Persona
	}{
		{"co-worker", PersonaCoWorker},
		{"butler", PersonaButler},
		{"coach", PersonaCoach},
	}
	for _, c := range cases {
		if got := ParsePersona(c.in); got != c.want {
			t.Errorf("ParsePersona(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParsePersona_UnknownFallsBack(t *testing.T) {
	if got := ParsePersona("pirate"); got != DefaultPersona {
		t.Errorf("expected default persona for unknown value, got %q", got)
	}
	if got := ParsePersona(""); got != DefaultPersona {
		t.Errorf("expected default persona for empty value, got %q", got)
	}
}

func TestParseProvider_UnknownFallsBack(t *testing.T) {
	if got := ParseProvider("claude"); got != DefaultProvider {
		t.Errorf("expected default provider for unknown value, got %q", got)
	}
	if got := ParseProvider("gemini"); got != ProviderGemini {
		t.Errorf("expected gemini, got %q", got)
	}
}

func TestChatRequestValidate(t *testing.T) {
	valid := ChatRequest{Messages: []ConversationTurn{{Role: RoleUser, Content: "hi"}}}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}

	empty := ChatRequest{}
	if err := empty.Validate(); err == nil {
		t.Error("expected error for empty messages")
	}

	badRole := ChatRequest{Messages: []ConversationTurn{{Role: "system", Content: "x"}}}
	if err := badRole.Validate(); err == nil || !strings.Contains(err.Error(), "invalid role") {
		t.Errorf("expected invalid role error, got %v", err)
	}
}

func TestModelResultEmpty(t *testing.T) {
	var nilResult *ModelResult
	if !nilResult.Empty() {
		t.Error("nil result should be empty")
	}
	if !(&ModelResult{}).Empty() {
		t.Error("zero result should be empty")
	}
	if (&ModelResult{Text: "hi"}).Empty() {
		t.Error("result with text should not be empty")
	}
	if (&ModelResult{Call: &SuggestFieldsParams{Updates: []FieldUpdate{}}}).Empty() {
		t.Error("result with a call should not be empty")
	}
}
