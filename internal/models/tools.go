// Package models defines tool structures for LLM function calling.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToolSuggestFields is the name of the single structured capability exposed
// to every backend: propose form field updates alongside a conversational
// reply.
const ToolSuggestFields = "suggest_fields"

// FieldValue holds a suggested field value exactly as the model emitted it.
// The capability schema declares suggestions as strings, but backends emit
// numbers and booleans often enough that the raw JSON is preserved so
// downstream coercion can be lossless.
type FieldValue struct {
	raw json.RawMessage
}

// StringValue builds a FieldValue from a plain string.
func StringValue(s string) FieldValue {
	raw, _ := json.Marshal(s)
	return FieldValue{raw: raw}
}

// NumberValue builds a FieldValue from a numeric suggestion.
func NumberValue(f float64) FieldValue {
	raw, _ := json.Marshal(f)
	return FieldValue{raw: raw}
}

// UnmarshalJSON accepts any JSON value and keeps it verbatim.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

// MarshalJSON returns the value exactly as received.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte(`""`), nil
	}
	return v.raw, nil
}

// Number reports the value as a float64 when it was emitted as a JSON number.
func (v FieldValue) Number() (float64, bool) {
	trimmed := strings.TrimSpace(string(v.raw))
	if trimmed == "" || trimmed[0] == '"' || trimmed[0] == '{' || trimmed[0] == '[' {
		return 0, false
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String renders the value as plain text: JSON strings are unquoted, every
// other value is passed through as written.
func (v FieldValue) String() string {
	trimmed := strings.TrimSpace(string(v.raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(v.raw, &s); err == nil {
			return s
		}
	}
	return trimmed
}

// FieldUpdate is one model-suggested (field, value) pair for the form.
type FieldUpdate struct {
	Field      string     `json:"field"`
	Suggestion FieldValue `json:"suggestion"`
}

// SuggestFieldsParams is the argument payload of the suggest_fields
// capability. Both reply and updates are mandatory in the wire contract; the
// model is expected to always explain itself, even with zero updates.
type SuggestFieldsParams struct {
	Reply   string        `json:"reply"`
	Updates []FieldUpdate `json:"updates"`
}

// Validate ensures the parameters satisfy the capability contract.
func (p *SuggestFieldsParams) Validate() error {
	if p.Updates == nil {
		return fmt.Errorf("missing required field: updates")
	}
	for i, u := range p.Updates {
		if strings.TrimSpace(u.Field) == "" {
			return fmt.Errorf("update %d has an empty field identifier", i)
		}
	}
	return nil
}

// ToolCall represents an LLM tool function call in backend-neutral form.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"` // always "function"
	Function FunctionCall `json:"function"`
}

// FunctionCall represents the function details within a tool call.
type FunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ParseSuggestFieldsParams parses the arguments as SuggestFieldsParams.
func (fc *FunctionCall) ParseSuggestFieldsParams() (*SuggestFieldsParams, error) {
	if fc.Name != ToolSuggestFields {
		return nil, fmt.Errorf("function name %s is not the suggest_fields capability", fc.Name)
	}

	var params SuggestFieldsParams
	if err := json.Unmarshal(fc.Arguments, &params); err != nil {
		return nil, fmt.Errorf("failed to parse suggest_fields parameters: %w", err)
	}

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid suggest_fields parameters: %w", err)
	}

	return &params, nil
}
