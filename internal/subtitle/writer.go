package subtitle

import (
	"fmt"
	"os"
	"strings"
)

// DefaultWriter is the default subtitle file writer
type DefaultWriter struct{}

// NewWriter creates a new subtitle file writer
func NewWriter() Writer {
	return &DefaultWriter{}
}

// Render serializes segments back into SRT text. Each segment becomes
// "{index}\n{timeRange}\n{text}\n\n"; the time range is emitted exactly as it
// was carried, with no re-validation.
func Render(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "%d\n%s\n%s\n\n", seg.Index, seg.TimeRange, seg.Text)
	}
	return b.String()
}

// Write renders segments and writes them to the given path
func (w *DefaultWriter) Write(path string, segments []Segment) error {
	if len(segments) == 0 {
		return fmt.Errorf("no segments to write")
	}

	if err := os.WriteFile(path, []byte(Render(segments)), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
