package genai

import (
	"context"
	"testing"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/models"
)

// stubClient is a trivial ClientInterface with a fixed reply.
type stubClient struct {
	text string
}

func (s *stubClient) Invoke(ctx context.Context, req Request) (*models.ModelResult, error) {
	return &models.ModelResult{Text: s.text}, nil
}

func TestRegistry_ResolvesConfiguredProvider(t *testing.T) {
	openAI := &stubClient{text: "openai"}
	gemini := &stubClient{text: "gemini"}
	reg := NewRegistry(openAI, gemini)

	c, ok := reg.ForProvider(models.ProviderGemini)
	if !ok {
		t.Fatal("expected gemini adapter")
	}
	res, _ := c.Invoke(context.Background(), Request{})
	if res.Text != "gemini" {
		t.Errorf("resolved wrong adapter: %q", res.Text)
	}
}

func TestRegistry_FallsBackToDefault(t *testing.T) {
	openAI := &stubClient{text: "openai"}
	reg := NewRegistry(openAI, nil)

	c, ok := reg.ForProvider(models.ProviderGemini)
	if !ok {
		t.Fatal("expected fallback to the default provider")
	}
	res, _ := c.Invoke(context.Background(), Request{})
	if res.Text != "openai" {
		t.Errorf("expected the default adapter, got %q", res.Text)
	}
}

func TestRegistry_EmptyHasNoAdapter(t *testing.T) {
	reg := NewRegistry(nil, nil)
	if _, ok := reg.ForProvider(models.ProviderOpenAI); ok {
		t.Error("expected no adapter from an empty registry")
	}
}

func TestSuggestFieldsSchema_RequiresReplyAndUpdates(t *testing.T) {
	schema := suggestFieldsSchema()
	required, ok := schema["required"].([]string)
	if !ok {
		t.Fatal("expected a required list")
	}
	want := map[string]bool{"reply": false, "updates": false}
	for _, r := range required {
		want[r] = true
	}
	for field, seen := range want {
		if !seen {
			t.Errorf("schema must require %q", field)
		}
	}
}
