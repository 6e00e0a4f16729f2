package batch

// CostEstimator estimates the token cost of a piece of subtitle text.
// Isolated behind an interface so a real tokenizer can replace the heuristic
// without touching the batching logic.
type CostEstimator interface {
	Estimate(text string) int
}

// HeuristicEstimator approximates sub-word tokenization: roughly one token
// per four bytes of text, plus one. An approximation, not a guarantee.
type HeuristicEstimator struct{}

func (HeuristicEstimator) Estimate(text string) int {
	return len(text)/4 + 1
}
