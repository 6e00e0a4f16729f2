package translator

import (
	"context"
	"fmt"

	"github.com/MimeLyc/srt-batch-translator/internal/batch"
	"github.com/MimeLyc/srt-batch-translator/pkg/log"
	"github.com/MimeLyc/srt-batch-translator/pkg/retry"
)

// chatClient is the slice of the LLM client the translator needs
type chatClient interface {
	SimpleChat(ctx context.Context, prompt string, systemPrompt string) (string, error)
}

// llmTranslator translates batch text through an LLM chat backend. Transient
// backend failures are retried under a bounded policy; the final failure
// propagates once attempts are exhausted.
type llmTranslator struct {
	client chatClient
	policy retry.Policy
}

// Option configures the LLM translator
type Option func(*llmTranslator)

// WithRetryPolicy overrides the default retry policy, mainly so tests can
// drop the fixed delay.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(t *llmTranslator) {
		t.policy = policy
	}
}

// NewLLMTranslator creates a Translator backed by an LLM chat client
func NewLLMTranslator(client chatClient, opts ...Option) Translator {
	t := &llmTranslator{
		client: client,
		policy: retry.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *llmTranslator) Translate(ctx context.Context, text string, targetLanguage string) (string, error) {
	systemPrompt := fmt.Sprintf(
		"You are an experienced semantic translator, specialized in creating SRT files. "+
			"Separate translation segments with the '%s' symbol, emitting exactly one "+
			"translated fragment per input segment. Return only the translated text.",
		batch.Delimiter)
	prompt := fmt.Sprintf("Translate this to %s: %s", targetLanguage, text)

	var result string
	err := t.policy.Do(ctx, func() error {
		content, chatErr := t.client.SimpleChat(ctx, prompt, systemPrompt)
		if chatErr != nil {
			log.Warn("translation attempt failed: %v", chatErr)
			return chatErr
		}
		result = content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("translation failed after retries: %w", err)
	}

	return result, nil
}
