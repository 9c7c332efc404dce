// Package compose turns a normalized model result into the user-facing
// reply: it flattens proposed field updates, renders a deterministic grouped
// summary, and merges that summary with the model's conversational text.
package compose

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/models"
	"github.com/JiayiLi18/AI-Assistant-for-MARITIME-PILOT/internal/report"
)

// DefaultAcknowledgement is used when the model called suggest_fields but
// supplied no usable reply text anywhere.
const DefaultAcknowledgement = "I've updated the form based on our conversation."

// separator sits between the conversational reply and the update summary.
const separator = "\n\n---\n\n"

// summaryHeader opens the update summary block.
const summaryHeader = "I've updated the following fields:"

// Reply is the composed output of one turn. Display carries the full text
// for on-screen rendering; Prose is the conversational part only, which the
// voice pipeline feeds to speech synthesis.
type Reply struct {
	Display       string
	Prose         string
	UpdatedFields map[string]string
	HasUpdates    bool
}

// Compose normalizes a model result into the final reply shape. Later
// updates for the same field identifier overwrite earlier ones; list order
// defines precedence.
func Compose(res *models.ModelResult) Reply {
	if res == nil || res.Call == nil {
		text := ""
		if res != nil {
			text = res.Text
		}
		return Reply{Display: text, Prose: text, UpdatedFields: map[string]string{}}
	}

	updated := make(map[string]string, len(res.Call.Updates))
	order := make([]string, 0, len(res.Call.Updates))
	for _, u := range res.Call.Updates {
		if _, seen := updated[u.Field]; !seen {
			order = append(order, u.Field)
		}
		updated[u.Field] = normalizeValue(u.Field, u.Suggestion)
	}

	prose := strings.TrimSpace(res.Call.Reply)
	if prose == "" {
		prose = strings.TrimSpace(res.Text)
	}
	if prose == "" {
		prose = DefaultAcknowledgement
	}

	reply := Reply{
		Prose:         prose,
		Display:       prose,
		UpdatedFields: updated,
		HasUpdates:    len(updated) > 0,
	}
	if reply.HasUpdates {
		reply.Display = prose + separator + FormatUpdates(order, updated)
	}

	slog.Debug("compose.Compose: composed reply",
		"hasUpdates", reply.HasUpdates,
		"updateCount", len(updated),
		"proseLength", len(prose))
	return reply
}

// normalizeValue renders a suggested value as text. The workload scale is
// coerced to a canonical digit string (numbers truncated toward zero) so the
// caller always observes a uniform representation regardless of what type
// the model emitted.
func normalizeValue(field string, value models.FieldValue) string {
	if field == report.FieldWorkload {
		if f, ok := value.Number(); ok {
			return strconv.Itoa(int(f))
		}
	}
	return value.String()
}

// FormatUpdates renders the update summary grouped by the static section
// taxonomy. Blocks appear in first-occurrence order of each section among
// the updates, with members of a section gathered together even when
// interleaved in the input; fields outside the taxonomy render standalone
// under their raw identifier.
func FormatUpdates(order []string, updated map[string]string) string {
	type block struct {
		heading string // section name, empty for standalone fields
		items   []string
	}

	var blocks []block
	sectionIdx := make(map[string]int)

	for _, field := range order {
		value := updated[field]
		info, known := report.Lookup(field)
		if !known {
			blocks = append(blocks, block{items: []string{fmt.Sprintf("• **%s**: %s", field, value)}})
			continue
		}
		item := fmt.Sprintf("**%s**: %s", info.Label, value)
		if i, seen := sectionIdx[info.Section]; seen {
			blocks[i].items = append(blocks[i].items, item)
			continue
		}
		sectionIdx[info.Section] = len(blocks)
		blocks = append(blocks, block{heading: info.Section, items: []string{item}})
	}

	var b strings.Builder
	b.WriteString(summaryHeader)
	for _, blk := range blocks {
		b.WriteByte('\n')
		if blk.heading != "" {
			b.WriteString("• **")
			b.WriteString(blk.heading)
			b.WriteString("**:\n")
			b.WriteString(strings.Join(blk.items, "\n"))
			continue
		}
		b.WriteString(blk.items[0])
	}
	return b.String()
}
