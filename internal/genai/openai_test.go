package genai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/models"
)

// mockChatService implements chatService for testing and records the last
// request parameters.
type mockChatService struct {
	resp   *openai.ChatCompletion
	err    error
	params openai.ChatCompletionNewParams
	calls  int
}

func (m *mockChatService) New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.params = params
	m.calls++
	return m.resp, m.err
}

func textCompletion(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func toolCompletion(content, callID, args string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				Content: content,
				ToolCalls: []openai.ChatCompletionMessageToolCall{
					{
						ID: callID,
						Function: openai.ChatCompletionMessageToolCallFunction{
							Name:      models.ToolSuggestFields,
							Arguments: args,
						},
					},
				},
			}},
		},
	}
}

func TestOpenAIInvoke_TextOnly(t *testing.T) {
	mock := &mockChatService{resp: textCompletion("What vessel were you piloting?")}
	client := &OpenAIClient{chat: mock, model: openai.ChatModelGPT4o}

	res, err := client.Invoke(context.Background(), Request{
		Turns:   []models.ConversationTurn{{Role: models.RoleUser, Content: "Hi"}},
		Persona: models.PersonaCoWorker,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Text != "What vessel were you piloting?" {
		t.Errorf("unexpected text: %q", res.Text)
	}
	if res.Call != nil {
		t.Error("expected no call")
	}
}

func TestOpenAIInvoke_SystemPromptEmbedsForm(t *testing.T) {
	mock := &mockChatService{resp: textCompletion("ok")}
	client := &OpenAIClient{chat: mock, model: openai.ChatModelGPT4o}

	_, err := client.Invoke(context.Background(), Request{
		Turns:   []models.ConversationTurn{{Role: models.RoleUser, Content: "Hi"}},
		Form:    map[string]string{"pilot-id": "Beatrice 4"},
		Persona: models.PersonaCoWorker,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(mock.params.Messages) != 2 {
		t.Fatalf("expected system + user message, got %d", len(mock.params.Messages))
	}
	system := mock.params.Messages[0].OfSystem
	if system == nil {
		t.Fatal("first message must be the system prompt")
	}
	if !strings.Contains(system.Content.OfString.Value, "pilot-id: Beatrice 4") {
		t.Error("system prompt must embed the form snapshot")
	}
	if len(mock.params.Tools) != 1 {
		t.Fatalf("expected the suggest_fields tool attached, got %d tools", len(mock.params.Tools))
	}
}

func TestOpenAIInvoke_ParsesToolCall(t *testing.T) {
	args := `{"reply":"Noted the weather.","updates":[{"field":"wind-conditions","suggestion":"Poor"},{"field":"workload","suggestion":4}]}`
	mock := &mockChatService{resp: toolCompletion("", "call_abc", args)}
	client := &OpenAIClient{chat: mock, model: openai.ChatModelGPT4o}

	res, err := client.Invoke(context.Background(), Request{
		Turns: []models.ConversationTurn{{Role: models.RoleUser, Content: "Wind was bad, workload a 4"}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Call == nil {
		t.Fatal("expected a parsed call")
	}
	if res.Call.Reply != "Noted the weather." {
		t.Errorf("unexpected reply: %q", res.Call.Reply)
	}
	if len(res.Call.Updates) != 2 {
		t.Fatalf("expected two updates, got %d", len(res.Call.Updates))
	}
	if res.Call.Updates[1].Suggestion.String() != "4" {
		t.Errorf("numeric suggestion must survive: %q", res.Call.Updates[1].Suggestion.String())
	}
	if res.CallID != "call_abc" {
		t.Errorf("expected backend call ID, got %q", res.CallID)
	}
}

func TestOpenAIInvoke_KeepsFirstToolCall(t *testing.T) {
	resp := toolCompletion("", "call_1", `{"reply":"first","updates":[]}`)
	resp.Choices[0].Message.ToolCalls = append(resp.Choices[0].Message.ToolCalls,
		openai.ChatCompletionMessageToolCall{
			ID: "call_2",
			Function: openai.ChatCompletionMessageToolCallFunction{
				Name:      models.ToolSuggestFields,
				Arguments: `{"reply":"second","updates":[]}`,
			},
		})
	client := &OpenAIClient{chat: &mockChatService{resp: resp}, model: openai.ChatModelGPT4o}

	res, err := client.Invoke(context.Background(), Request{
		Turns: []models.ConversationTurn{{Role: models.RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Call == nil || res.Call.Reply != "first" {
		t.Errorf("expected the first call to win, got %+v", res.Call)
	}
	if res.CallID != "call_1" {
		t.Errorf("expected first call ID, got %q", res.CallID)
	}
}

func TestOpenAIInvoke_MalformedArgumentsTreatedAsNoCall(t *testing.T) {
	mock := &mockChatService{resp: toolCompletion("fallback text", "call_x", `{broken`)}
	client := &OpenAIClient{chat: mock, model: openai.ChatModelGPT4o}

	res, err := client.Invoke(context.Background(), Request{
		Turns: []models.ConversationTurn{{Role: models.RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Call != nil {
		t.Error("malformed arguments must not produce a call")
	}
	if res.Text != "fallback text" {
		t.Errorf("text must survive a malformed call, got %q", res.Text)
	}
}

func TestOpenAIInvoke_BackendErrorYieldsEmptyResult(t *testing.T) {
	mock := &mockChatService{err: errors.New("service failure")}
	client := &OpenAIClient{chat: mock, model: openai.ChatModelGPT4o}

	res, err := client.Invoke(context.Background(), Request{
		Turns: []models.ConversationTurn{{Role: models.RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("backend faults must not propagate, got %v", err)
	}
	if !res.Empty() {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestOpenAIInvoke_NoChoicesYieldsEmptyResult(t *testing.T) {
	mock := &mockChatService{resp: &openai.ChatCompletion{}}
	client := &OpenAIClient{chat: mock, model: openai.ChatModelGPT4o}

	res, err := client.Invoke(context.Background(), Request{
		Turns: []models.ConversationTurn{{Role: models.RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Empty() {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestNewOpenAIClient_NoKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewOpenAIClient(); err == nil {
		t.Error("expected error when API key not provided, got nil")
	}
}

func TestNewOpenAIClient_WithKey(t *testing.T) {
	cli, err := NewOpenAIClient(WithAPIKey("test-key"))
	if err != nil {
		t.Fatalf("expected no error with API key, got %v", err)
	}
	if cli == nil {
		t.Error("expected client instance, got nil")
	}
}
