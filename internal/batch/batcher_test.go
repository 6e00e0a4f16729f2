package batch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/srt-batch-translator/internal/subtitle"
)

func segs(texts ...string) []subtitle.Segment {
	out := make([]subtitle.Segment, 0, len(texts))
	for i, text := range texts {
		out = append(out, subtitle.Segment{Index: i + 1, Text: text})
	}
	return out
}

func flatten(batches []Batch) []subtitle.Segment {
	var out []subtitle.Segment
	for _, b := range batches {
		out = append(out, b.Segments...)
	}
	return out
}

func TestHeuristicEstimator(t *testing.T) {
	est := HeuristicEstimator{}
	assert.Equal(t, 1, est.Estimate(""))
	assert.Equal(t, 2, est.Estimate("abcd"))
	assert.Equal(t, 2, est.Estimate("abcdefg"))
	assert.Equal(t, 3, est.Estimate("abcdefgh"))
}

func TestPartition_SingleBatchUnderBudget(t *testing.T) {
	segments := segs("Hello", "World")

	batches := NewBatcher(700, nil).Partition(segments)

	require.Len(t, batches, 1)
	assert.Equal(t, segments, batches[0].Segments)
}

func TestPartition_SplitsOnBudget(t *testing.T) {
	// Each text costs 30/4+1 = 8 tokens; with the +1 delimiter overhead a
	// budget of 20 holds two segments but not three.
	text := strings.Repeat("x", 30)
	segments := segs(text, text, text, text)

	batches := NewBatcher(20, nil).Partition(segments)

	require.Len(t, batches, 2)
	assert.Len(t, batches[0].Segments, 2)
	assert.Len(t, batches[1].Segments, 2)
}

func TestPartition_Completeness(t *testing.T) {
	texts := []string{
		"short",
		strings.Repeat("a", 100),
		"",
		strings.Repeat("b", 5000),
		"tail",
		strings.Repeat("c", 37),
	}
	segments := segs(texts...)

	for _, budget := range []int{1, 5, 50, 700, 10000} {
		batches := NewBatcher(budget, nil).Partition(segments)
		assert.Equal(t, segments, flatten(batches), "budget %d", budget)
		for i, b := range batches {
			assert.NotEmpty(t, b.Segments, "budget %d batch %d", budget, i)
		}
	}
}

func TestPartition_OversizedSegmentGetsOwnBatch(t *testing.T) {
	huge := strings.Repeat("z", 4000) // cost 1001, over any sane budget
	segments := segs("small", huge, "small")

	batches := NewBatcher(100, nil).Partition(segments)

	require.Len(t, batches, 3)
	assert.Len(t, batches[1].Segments, 1)
	assert.Equal(t, huge, batches[1].Segments[0].Text)
}

func TestPartition_SoftBudgetRespect(t *testing.T) {
	est := HeuristicEstimator{}
	segments := segs(
		strings.Repeat("a", 40),
		strings.Repeat("b", 12),
		strings.Repeat("c", 200),
		strings.Repeat("d", 8),
		strings.Repeat("e", 70),
	)

	const budget = 30
	batches := NewBatcher(budget, est).Partition(segments)

	for _, b := range batches {
		if len(b.Segments) == 1 {
			continue // a lone oversized segment may exceed the budget
		}
		total := 0
		for _, seg := range b.Segments {
			total += est.Estimate(seg.Text)
		}
		// cost plus one delimiter unit between each pair of segments
		assert.LessOrEqual(t, total+len(b.Segments)-1, budget)
	}
}

func TestPartition_Empty(t *testing.T) {
	assert.Empty(t, NewBatcher(700, nil).Partition(nil))
}

func TestPartition_DefaultBudget(t *testing.T) {
	b := NewBatcher(0, nil)
	assert.Equal(t, DefaultMaxTokens, b.maxTokens)
}

func TestJoinTexts(t *testing.T) {
	b := Batch{Segments: segs("Hello", "World")}
	assert.Equal(t, "Hello|World", b.JoinTexts())
}
