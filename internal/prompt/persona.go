// Package prompt builds the full instruction text sent to a language-model
// backend. Persona content is kept as structured configuration (role intro,
// tone rules, workflow rules, example transcript) and composed by a rendering
// step, so content stays data-driven and testable independent of assembly.
package prompt

import (
	"sort"
	"strings"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/models"
)

// Config is the structured instruction set for one persona.
type Config struct {
	Persona       models.Persona
	Intro         string   // role & background block
	ToneRules     []string // communication style
	UpdateRules   []string // form update handling
	WorkflowRules []string // persona-specific workflow additions
	Example       string   // example transcript, may be empty
	Greeting      string   // canned opening line for /initialize
}

// configs registers the full persona set. Unknown personas resolve to the
// default via models.ParsePersona before lookup, so this map is total.
var configs = map[models.Persona]Config{
	models.PersonaCoWorker: coworkerConfig,
	models.PersonaButler:   butlerConfig,
	models.PersonaCoach:    coachConfig,
}

// ConfigFor returns the persona configuration, falling back to the default
// persona for unknown values.
func ConfigFor(persona models.Persona) Config {
	if cfg, ok := configs[persona]; ok {
		return cfg
	}
	return configs[models.DefaultPersona]
}

// Greeting returns the canned opening line used by the initialize flow.
func Greeting(persona models.Persona) string {
	return ConfigFor(persona).Greeting
}

// render composes one persona configuration into a single instruction block.
// Section order is fixed: intro, form catalog, basic rules, update handling,
// workflow, tone, function-call rules, example.
func render(cfg Config) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(cfg.Intro))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(formFieldsSection))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(basicRulesSection))

	writeRuleBlock(&b, "FORM UPDATE HANDLING", cfg.UpdateRules)
	writeRuleBlock(&b, "CORE WORKFLOW", append(commonWorkflowRules(), cfg.WorkflowRules...))
	writeRuleBlock(&b, "COMMUNICATION STYLE", cfg.ToneRules)

	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(functionCallRulesSection))

	if cfg.Example != "" {
		b.WriteString("\n\n================================================================\nEXAMPLES & PATTERNS\n================================================================\n")
		b.WriteString(strings.TrimSpace(cfg.Example))
	}

	return b.String()
}

func writeRuleBlock(b *strings.Builder, title string, rules []string) {
	if len(rules) == 0 {
		return
	}
	b.WriteString("\n\n================================================================\n")
	b.WriteString(title)
	b.WriteString("\n================================================================")
	for _, r := range rules {
		b.WriteString("\n• ")
		b.WriteString(r)
	}
}

// FormSnapshotHeader introduces the serialized current form values appended
// after the persona template.
const FormSnapshotHeader = "Current form values:"

// firstTurnBias steers the very first exchange toward unfilled fields.
const firstTurnBias = "Focus on gathering information for fields that require user input or confirmation. No need to confirm already filled fields."

// voiceInstructions is appended for spoken conversations.
const voiceInstructions = "You are talking with the user over voice. Keep replies natural and short enough to speak aloud. When form fields need updating, call suggest_fields and still provide a spoken reply."

// Build assembles the full instruction string for one model call.
// Concatenation order is significant and never partially applied: persona
// template, then the form snapshot (when present), then the first-turn bias
// (when set).
func Build(persona models.Persona, form map[string]string, firstTurn bool) string {
	parts := []string{render(ConfigFor(persona))}
	if len(form) > 0 {
		parts = append(parts, FormSnapshotHeader+"\n"+SerializeForm(form))
	}
	if firstTurn {
		parts = append(parts, firstTurnBias)
	}
	return strings.Join(parts, "\n\n")
}

// BuildVoice assembles the instruction string for the voice pipeline: the
// regular assembly plus spoken-style guidance.
func BuildVoice(persona models.Persona, form map[string]string, firstTurn bool) string {
	return Build(persona, form, firstTurn) + "\n\n" + voiceInstructions
}

// SerializeForm renders a form snapshot as deterministic "field: value"
// lines, sorted by field identifier.
func SerializeForm(form map[string]string) string {
	fields := make([]string, 0, len(form))
	for f := range form {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(form[f])
	}
	return b.String()
}
