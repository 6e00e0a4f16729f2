package service

import (
	"strings"

	"github.com/MimeLyc/srt-batch-translator/internal/batch"
	"github.com/MimeLyc/srt-batch-translator/internal/subtitle"
	"github.com/MimeLyc/srt-batch-translator/pkg/log"
)

// Reconciler maps translated batch text back onto original timestamps. It
// keeps one running output index across all batches of a run: each non-blank
// fragment takes the next index and the time range of the original segment at
// that position. A fragment landing past the end of the segment list gets an
// empty time range.
//
// The running index trusts that the gateway returns fragments 1:1 with the
// segments sent so far; if the gateway merges or splits fragments, every
// later timestamp drifts. The drift is detected and logged per batch but the
// output contract is left as-is.
type Reconciler struct {
	segments  []subtitle.Segment
	nextIndex int
}

// NewReconciler creates a Reconciler over the full original segment list
func NewReconciler(segments []subtitle.Segment) *Reconciler {
	return &Reconciler{segments: segments}
}

// ReconcileBatch splits one translated batch on the delimiter and pairs each
// trimmed, non-blank fragment with an original time range by running index.
func (r *Reconciler) ReconcileBatch(translated string, b batch.Batch) []subtitle.Segment {
	fragments := strings.Split(translated, batch.Delimiter)

	nonBlank := 0
	for _, frag := range fragments {
		if strings.TrimSpace(frag) != "" {
			nonBlank++
		}
	}
	if nonBlank != len(b.Segments) {
		log.Warn("translated fragment count %d does not match batch segment count %d; timestamps may drift from here on",
			nonBlank, len(b.Segments))
	}

	var out []subtitle.Segment
	for _, frag := range fragments {
		trimmed := strings.TrimSpace(frag)
		if trimmed == "" {
			continue
		}

		r.nextIndex++

		var timeRange string
		if r.nextIndex <= len(r.segments) {
			timeRange = r.segments[r.nextIndex-1].TimeRange
		}

		out = append(out, subtitle.Segment{
			Index:     r.nextIndex,
			TimeRange: timeRange,
			Text:      trimmed,
		})
	}

	return out
}
