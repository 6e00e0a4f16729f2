package subtitle

import "golang.org/x/text/language"

// Reader is the interface for reading subtitle files
type Reader interface {
	Read() (*Document, error)
}

// Writer is the interface for writing subtitle files
type Writer interface {
	Write(path string, segments []Segment) error
}

// Segment represents a single subtitle entry. TimeRange is the raw timestamp
// line carried verbatim; it is never parsed into start/end semantics.
type Segment struct {
	Index     int
	TimeRange string
	Text      string
}

// IndexResult is the outcome of parsing a segment index line. A non-numeric
// index degrades to 0 instead of failing; Degraded marks that case and Raw
// keeps the original line so callers can log it.
type IndexResult struct {
	Value    int
	Degraded bool
	Raw      string
}

// Document represents a parsed subtitle file
type Document struct {
	Segments []Segment
	Language language.Tag
	Format   string // e.g. SRT
}
