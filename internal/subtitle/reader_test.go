package subtitle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParse_WellFormed(t *testing.T) {
	content := "1\n00:00:00,000 --> 00:00:02,000\nHello\n\n" +
		"2\n00:00:02,000 --> 00:00:04,000\nWorld\n\n"

	doc := Parse(content)

	require.Len(t, doc.Segments, 2)
	assert.Equal(t, Segment{Index: 1, TimeRange: "00:00:00,000 --> 00:00:02,000", Text: "Hello"}, doc.Segments[0])
	assert.Equal(t, Segment{Index: 2, TimeRange: "00:00:02,000 --> 00:00:04,000", Text: "World"}, doc.Segments[1])
	assert.Equal(t, "SRT", doc.Format)
}

func TestParse_CRLF(t *testing.T) {
	content := "1\r\n00:00:00,000 --> 00:00:02,000\r\nHello\r\n\r\n" +
		"2\r\n00:00:02,000 --> 00:00:04,000\r\nWorld\r\n\r\n"

	doc := Parse(content)

	require.Len(t, doc.Segments, 2)
	assert.Equal(t, "Hello", doc.Segments[0].Text)
	assert.Equal(t, "World", doc.Segments[1].Text)
}

func TestParse_MultiLineTextJoinedWithSpaces(t *testing.T) {
	content := "1\n00:00:00,000 --> 00:00:02,000\nfirst line\nsecond line\n\n"

	doc := Parse(content)

	require.Len(t, doc.Segments, 1)
	assert.Equal(t, "first line second line", doc.Segments[0].Text)
}

func TestParse_SkipsBlankBlocks(t *testing.T) {
	content := "1\n00:00:00,000 --> 00:00:02,000\nHello\n\n" +
		"   \n\n" +
		"2\n00:00:02,000 --> 00:00:04,000\nWorld\n\n"

	doc := Parse(content)

	require.Len(t, doc.Segments, 2)
}

func TestParse_MalformedIndexDegradesToZero(t *testing.T) {
	content := "not-a-number\n00:00:00,000 --> 00:00:02,000\nHello\n\n"

	doc := Parse(content)

	require.Len(t, doc.Segments, 1)
	assert.Equal(t, 0, doc.Segments[0].Index)
	assert.Equal(t, "Hello", doc.Segments[0].Text)
}

func TestParse_TimeRangeKeptVerbatim(t *testing.T) {
	// Whatever sits on line 2 is carried through untouched.
	content := "3\ntotally --> bogus timestamp\ntext\n\n"

	doc := Parse(content)

	require.Len(t, doc.Segments, 1)
	assert.Equal(t, "totally --> bogus timestamp", doc.Segments[0].TimeRange)
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		want         int
		wantDegraded bool
	}{
		{name: "numeric", raw: "12", want: 12},
		{name: "padded", raw: " 7 ", want: 7},
		{name: "non numeric", raw: "abc", want: 0, wantDegraded: true},
		{name: "empty", raw: "", want: 0, wantDegraded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIndex(tt.raw)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantDegraded, got.Degraded)
			if tt.wantDegraded {
				assert.Equal(t, tt.raw, got.Raw)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	segments := []Segment{
		{Index: 1, TimeRange: "00:00:00,000 --> 00:00:02,000", Text: "Hello"},
		{Index: 2, TimeRange: "00:00:02,000 --> 00:00:04,000", Text: "World"},
		{Index: 3, TimeRange: "00:00:04,000 --> 00:00:06,500", Text: "Goodbye"},
	}

	rendered := Render(segments)
	reparsed := Parse(rendered)

	require.Len(t, reparsed.Segments, len(segments))
	assert.Equal(t, segments, reparsed.Segments)
	assert.Equal(t, rendered, Render(reparsed.Segments))
}

func TestDetectLanguage(t *testing.T) {
	segments := []Segment{
		{Text: "Hello, world!"},
		{Text: "こんにちは、世界!"},
		{Text: "こんにちは、世界!"},
		{Text: "Привет, мир!"},
	}
	assert.Equal(t, language.Japanese, detectLanguage(segments))
}

func TestDetectLanguage_Empty(t *testing.T) {
	assert.Equal(t, language.Und, detectLanguage(nil))
}

func TestDefaultReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.srt")
	content := "1\n00:00:00,000 --> 00:00:02,000\nHello\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	doc, err := NewReader(path).Read()
	require.NoError(t, err)
	require.Len(t, doc.Segments, 1)
	assert.Equal(t, "Hello", doc.Segments[0].Text)
}

func TestDefaultReader_RejectsNonSRT(t *testing.T) {
	_, err := NewReader("subtitles.vtt").Read()
	assert.Error(t, err)
}

func TestDefaultReader_MissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.srt")).Read()
	assert.Error(t, err)
}
