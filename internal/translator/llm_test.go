package translator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/srt-batch-translator/pkg/retry"
)

type stubChatClient struct {
	calls       int
	failures    int
	response    string
	lastPrompt  string
	lastSystem  string
	failWithErr error
}

func (s *stubChatClient) SimpleChat(ctx context.Context, prompt string, systemPrompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastSystem = systemPrompt
	if s.calls <= s.failures {
		if s.failWithErr != nil {
			return "", s.failWithErr
		}
		return "", errors.New("backend unavailable")
	}
	return s.response, nil
}

func noSleepPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, Sleep: func(time.Duration) {}}
}

func TestTranslate_Success(t *testing.T) {
	client := &stubChatClient{response: "Bonjour|Monde"}
	tr := NewLLMTranslator(client, WithRetryPolicy(noSleepPolicy()))

	got, err := tr.Translate(context.Background(), "Hello|World", "French")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour|Monde", got)
	assert.Equal(t, 1, client.calls)

	assert.Contains(t, client.lastPrompt, "Translate this to French: Hello|World")
	assert.Contains(t, client.lastSystem, "'|'")
}

func TestTranslate_FailTwiceThenSucceed(t *testing.T) {
	client := &stubChatClient{failures: 2, response: "Bonjour"}
	tr := NewLLMTranslator(client, WithRetryPolicy(noSleepPolicy()))

	got, err := tr.Translate(context.Background(), "Hello", "French")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", got)
	assert.Equal(t, 3, client.calls)
}

func TestTranslate_ExhaustsRetries(t *testing.T) {
	cause := errors.New("quota exceeded")
	client := &stubChatClient{failures: 100, failWithErr: cause}
	tr := NewLLMTranslator(client, WithRetryPolicy(noSleepPolicy()))

	_, err := tr.Translate(context.Background(), "Hello", "French")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, client.calls)
}

func TestTranslate_DefaultPolicyIsThreeAttempts(t *testing.T) {
	tr := NewLLMTranslator(&stubChatClient{}).(*llmTranslator)
	assert.Equal(t, 3, tr.policy.MaxAttempts)
}
