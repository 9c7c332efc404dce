package voice

import (
	"log/slog"
	"sync"
)

// Capability bundles the speech resources shared across connections:
// transcription, synthesis, and the noise filter. Connections acquire a
// reference on attach and release it on detach; the teardown hook runs once
// per drain, when the last connection of a cycle releases.
type Capability struct {
	stt    Transcriber
	tts    Synthesizer
	filter *TranscriptFilter

	mu       sync.Mutex
	refs     int
	teardown func()
}

// NewCapability creates the shared capability. A nil filter gets the
// default noise markers; teardown may be nil.
func NewCapability(stt Transcriber, tts Synthesizer, filter *TranscriptFilter, teardown func()) *Capability {
	if filter == nil {
		filter = NewTranscriptFilter(nil)
	}
	return &Capability{
		stt:      stt,
		tts:      tts,
		filter:   filter,
		teardown: teardown,
	}
}

// Acquire registers a connection against the shared resources.
func (c *Capability) Acquire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs++
	slog.Debug("Capability.Acquire: connection attached", "refs", c.refs)
}

// Release detaches a connection. The teardown hook runs each time the
// refcount drains to zero, so the resources are torn down and rebuilt per
// usage cycle. Unmatched releases are logged and never re-fire the hook.
func (c *Capability) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refs == 0 {
		slog.Warn("Capability.Release: release without matching acquire")
		return
	}
	c.refs--
	slog.Debug("Capability.Release: connection detached", "refs", c.refs)
	if c.refs == 0 && c.teardown != nil {
		c.teardown()
	}
}
