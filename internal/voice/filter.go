// Package voice implements the speech pipeline: transcription, chat with
// the suggest_fields capability, and speech synthesis, with one isolated
// session per connection.
package voice

import (
	"strings"
	"sync"
)

// DefaultNoiseMarkers are substrings that indicate a classic Whisper
// misrecognition artifact on silence or background noise: fragments of
// Korean news sign-offs that the model hallucinates on near-empty audio.
var DefaultNoiseMarkers = []string{
	"뉴스",
	"김재경",
	"입니다",
	"안녕하세요",
}

// nullLike are transcripts treated as no speech detected.
var nullLike = map[string]struct{}{
	"":     {},
	"null": {},
	"none": {},
}

// TranscriptFilter decides whether a transcription result carries real
// speech. Empty, null-like, and noise-marker transcripts short-circuit the
// pipeline before any model call.
type TranscriptFilter struct {
	mu      sync.RWMutex
	markers []string
}

// NewTranscriptFilter creates a filter with the given noise markers.
// If markers is nil, DefaultNoiseMarkers is used.
func NewTranscriptFilter(markers []string) *TranscriptFilter {
	if markers == nil {
		markers = DefaultNoiseMarkers
	}
	return &TranscriptFilter{markers: append([]string(nil), markers...)}
}

// AddMarker registers an additional noise marker.
func (f *TranscriptFilter) AddMarker(marker string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markers = append(f.markers, marker)
}

// Clean trims the transcript and reports whether it contains usable speech.
func (f *TranscriptFilter) Clean(text string) (cleaned string, hasSpeech bool) {
	cleaned = strings.TrimSpace(text)
	if _, ok := nullLike[strings.ToLower(cleaned)]; ok {
		return "", false
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, marker := range f.markers {
		if strings.Contains(cleaned, marker) {
			return "", false
		}
	}
	return cleaned, true
}
