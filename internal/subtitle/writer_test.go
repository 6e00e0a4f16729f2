package subtitle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	segments := []Segment{
		{Index: 1, TimeRange: "00:00:00,000 --> 00:00:02,000", Text: "Bonjour"},
		{Index: 2, TimeRange: "00:00:02,000 --> 00:00:04,000", Text: "Monde"},
	}

	want := "1\n00:00:00,000 --> 00:00:02,000\nBonjour\n\n" +
		"2\n00:00:02,000 --> 00:00:04,000\nMonde\n\n"
	assert.Equal(t, want, Render(segments))
}

func TestRender_EmptyTimeRange(t *testing.T) {
	// A segment past the original list ends up with no timestamp; the blank
	// line is still emitted.
	got := Render([]Segment{{Index: 5, TimeRange: "", Text: "orphan"}})
	assert.Equal(t, "5\n\norphan\n\n", got)
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	segments := []Segment{
		{Index: 1, TimeRange: "00:00:00,000 --> 00:00:02,000", Text: "Bonjour"},
	}

	require.NoError(t, NewWriter().Write(path, segments))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Render(segments), string(data))
}

func TestWrite_NoSegments(t *testing.T) {
	err := NewWriter().Write(filepath.Join(t.TempDir(), "out.srt"), nil)
	assert.Error(t, err)
}
