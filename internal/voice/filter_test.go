package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscriptFilter_PassesRealSpeech(t *testing.T) {
	f := NewTranscriptFilter(nil)
	cleaned, ok := f.Clean("  The wind conditions were poor today. ")
	assert.True(t, ok)
	assert.Equal(t, "The wind conditions were poor today.", cleaned)
}

func TestTranscriptFilter_RejectsNullLike(t *testing.T) {
	f := NewTranscriptFilter(nil)
	for _, in := range []string{"", "   ", "null", "None", "NULL"} {
		_, ok := f.Clean(in)
		assert.False(t, ok, "input %q should be rejected", in)
	}
}

func TestTranscriptFilter_RejectsNoiseMarkers(t *testing.T) {
	f := NewTranscriptFilter(nil)
	_, ok := f.Clean("MBC 뉴스 김재경입니다")
	assert.False(t, ok, "hallucinated news sign-off should be rejected")
}

func TestTranscriptFilter_AddMarker(t *testing.T) {
	f := NewTranscriptFilter([]string{})
	cleaned, ok := f.Clean("thanks for watching")
	assert.True(t, ok)
	assert.Equal(t, "thanks for watching", cleaned)

	f.AddMarker("thanks for watching")
	_, ok = f.Clean("thanks for watching")
	assert.False(t, ok)
}
