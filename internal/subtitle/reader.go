package subtitle

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"

	"github.com/MimeLyc/srt-batch-translator/pkg/log"
)

var (
	blockSeparator = regexp.MustCompile(`\r\n\r\n|\n\n`)
	lineSeparator  = regexp.MustCompile(`\r\n|\n`)
)

// DefaultReader is the default subtitle file reader
type DefaultReader struct {
	path string
}

// NewReader creates a new subtitle file reader
func NewReader(path string) Reader {
	return &DefaultReader{
		path: path,
	}
}

// Read reads and parses the subtitle file
func (r *DefaultReader) Read() (*Document, error) {
	if !strings.HasSuffix(strings.ToLower(r.path), ".srt") {
		return nil, fmt.Errorf("only SRT format subtitle files are supported: %s", r.path)
	}

	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return nil, fmt.Errorf("subtitle file does not exist: %s", r.path)
	}

	content, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	return Parse(string(content)), nil
}

// Parse splits raw SRT content into segments. Blocks are separated by blank
// lines, with both \n and \r\n accepted; whitespace-only blocks are skipped.
func Parse(content string) *Document {
	blocks := blockSeparator.Split(content, -1)

	var segments []Segment
	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		segments = append(segments, parseSegment(block))
	}

	return &Document{
		Segments: segments,
		Language: detectLanguage(segments),
		Format:   "SRT",
	}
}

// parseSegment parses one subtitle block: line 1 is the index, line 2 the
// timestamp line (kept verbatim), and any remaining lines are joined with a
// single space to form the text.
func parseSegment(block string) Segment {
	lines := lineSeparator.Split(block, -1)

	index := ParseIndex(lines[0])
	if index.Degraded {
		log.Warn("malformed segment index %q, defaulting to 0", index.Raw)
	}

	var timeRange string
	if len(lines) > 1 {
		timeRange = lines[1]
	}

	var text string
	if len(lines) > 2 {
		text = strings.Join(lines[2:], " ")
	}

	return Segment{
		Index:     index.Value,
		TimeRange: timeRange,
		Text:      text,
	}
}

// ParseIndex parses a segment index line leniently: malformed input degrades
// to 0 rather than producing an error.
func ParseIndex(raw string) IndexResult {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return IndexResult{Value: 0, Degraded: true, Raw: raw}
	}
	return IndexResult{Value: value}
}

// detectLanguage picks the dominant language across segment texts
func detectLanguage(segments []Segment) language.Tag {
	if len(segments) == 0 {
		return language.Und
	}

	langMap := make(map[string]int)
	for _, seg := range segments {
		lang := whatlanggo.DetectLang(seg.Text).Iso6391()
		langMap[lang]++
	}

	var topLang string
	var topCount int
	for lang, count := range langMap {
		if count > topCount {
			topLang = lang
			topCount = count
		}
	}

	return language.All.Make(topLang)
}
