package batch

import (
	"strings"

	"github.com/MimeLyc/srt-batch-translator/internal/subtitle"
)

// Delimiter separates segment texts inside one gateway request and fragments
// inside one gateway response. Subtitle text is assumed not to contain it
// meaningfully; this is a documented constraint, not an enforced one.
const Delimiter = "|"

// DefaultMaxTokens is the default per-batch token budget
const DefaultMaxTokens = 700

// Batch is a contiguous, non-empty run of segments sent to the translation
// gateway as one request.
type Batch struct {
	Segments []subtitle.Segment
}

// JoinTexts concatenates the batch's segment texts with the Delimiter
func (b Batch) JoinTexts() string {
	texts := make([]string, 0, len(b.Segments))
	for _, seg := range b.Segments {
		texts = append(texts, seg.Text)
	}
	return strings.Join(texts, Delimiter)
}

// Batcher partitions segments into batches whose estimated token cost stays
// within a budget.
type Batcher struct {
	maxTokens int
	estimator CostEstimator
}

// NewBatcher creates a Batcher. A non-positive budget falls back to
// DefaultMaxTokens; a nil estimator falls back to the heuristic.
func NewBatcher(maxTokens int, estimator CostEstimator) *Batcher {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if estimator == nil {
		estimator = HeuristicEstimator{}
	}
	return &Batcher{
		maxTokens: maxTokens,
		estimator: estimator,
	}
}

// Partition greedily groups consecutive segments: the current batch grows
// while the running cost (one extra unit per accepted segment for the
// delimiter) stays within budget, and the overflowing segment seeds the next
// batch. A lone segment whose own cost exceeds the budget still becomes its
// own batch; segments are never split or dropped.
func (b *Batcher) Partition(segments []subtitle.Segment) []Batch {
	var batches []Batch

	var current []subtitle.Segment
	currentCost := 0

	for _, seg := range segments {
		cost := b.estimator.Estimate(seg.Text)

		if currentCost+cost <= b.maxTokens {
			current = append(current, seg)
			currentCost += cost + 1 // delimiter overhead
		} else {
			if len(current) > 0 {
				batches = append(batches, Batch{Segments: current})
			}
			current = []subtitle.Segment{seg}
			currentCost = cost
		}
	}

	if len(current) > 0 {
		batches = append(batches, Batch{Segments: current})
	}

	return batches
}
