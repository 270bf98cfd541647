package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sector-sift/internal/common"
	"github.com/Veraticus/sector-sift/internal/model"
	"github.com/Veraticus/sector-sift/internal/service"
)

var _ service.Classifier = (*Classifier)(nil)

type fakeClient struct {
	complete func(ctx context.Context, prompt Prompt) (string, error)
	calls    atomic.Int32
	last     atomic.Value
}

func (f *fakeClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	f.calls.Add(1)
	f.last.Store(prompt)
	return f.complete(ctx, prompt)
}

func replying(reply string) *fakeClient {
	return &fakeClient{complete: func(context.Context, Prompt) (string, error) { return reply, nil }}
}

func newTestClassifier(t *testing.T, client Client, opts ...Option) *Classifier {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	c := NewClassifierWithClient(client, Config{MaxRetries: 3, RetryDelay: time.Millisecond}, opts...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		want       string
		confidence float64
	}{
		{name: "allowed label", reply: "retail", want: "retail", confidence: 1},
		{name: "decorated label", reply: "Output: \"Retail\".", want: "retail", confidence: 1},
		{name: "unknown label", reply: "underwater basket weaving", want: model.Unclassified, confidence: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(t, replying(tt.reply))

			got, err := c.Classify(context.Background(), model.ClassificationInput{Name: "Walmart", Description: "Domain: walmart.com."})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Industry)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			assert.Equal(t, ClassifierName, got.Classifier)
		})
	}
}

func TestClassifier_EmptyInputSkipsProvider(t *testing.T) {
	client := replying("retail")
	c := newTestClassifier(t, client)

	got, err := c.Classify(context.Background(), model.ClassificationInput{Description: "   "})
	require.NoError(t, err)
	assert.True(t, got.IsUnclassified())
	assert.Equal(t, int32(0), client.calls.Load())
}

func TestClassifier_UsesCache(t *testing.T) {
	client := replying("banking")
	c := newTestClassifier(t, client)
	in := model.ClassificationInput{Name: "Chase", Description: "Domain: chase.com."}

	for range 3 {
		got, err := c.Classify(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "banking", got.Industry)
	}
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestClassifier_AllowedLabelsAndHint(t *testing.T) {
	client := replying("fintech")
	c := newTestClassifier(t, client,
		WithAllowedLabels([]string{"SaaS", " ", "FinTech"}),
		WithExamples(nil))

	assert.Equal(t, []string{"SaaS", "FinTech"}, c.AllowedLabels())

	got, err := c.Classify(context.Background(), model.ClassificationInput{
		Name:          "Stripe",
		Description:   "payments",
		KnownIndustry: "FinTech",
	})
	require.NoError(t, err)
	assert.Equal(t, "FinTech", got.Industry)

	prompt, ok := client.last.Load().(Prompt)
	require.True(t, ok)
	assert.Contains(t, prompt.User, "categories: SaaS, FinTech.")
	assert.Contains(t, prompt.User, "Output: FinTech\n")
	assert.Equal(t, systemPrompt, prompt.System)
}

func TestClassifier_RetriesTransientErrors(t *testing.T) {
	var attempts atomic.Int32
	client := &fakeClient{complete: func(context.Context, Prompt) (string, error) {
		if attempts.Add(1) < 3 {
			return "", &common.RetryableError{Err: common.ErrProviderUnavailable, Retryable: true}
		}
		return "military", nil
	}}
	c := newTestClassifier(t, client)

	got, err := c.Classify(context.Background(), model.ClassificationInput{Name: "US Army", Description: "defense"})
	require.NoError(t, err)
	assert.Equal(t, "military", got.Industry)
	assert.Equal(t, int32(3), client.calls.Load())
}

func TestClassifier_PermanentErrorNotRetried(t *testing.T) {
	errBad := errors.New("invalid api key")
	client := &fakeClient{complete: func(context.Context, Prompt) (string, error) {
		return "", &common.RetryableError{Err: errBad, Retryable: false}
	}}
	c := newTestClassifier(t, client)

	_, err := c.Classify(context.Background(), model.ClassificationInput{Name: "Acme", Description: "widgets"})
	require.ErrorIs(t, err, errBad)
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestClassifier_CircuitOpens(t *testing.T) {
	client := &fakeClient{complete: func(context.Context, Prompt) (string, error) {
		return "", &common.RetryableError{Err: common.ErrProviderUnavailable, Retryable: true}
	}}
	c := NewClassifierWithClient(client, Config{MaxRetries: 1, RetryDelay: time.Millisecond},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer func() { _ = c.Close() }()

	in := model.ClassificationInput{Name: "Acme", Description: "widgets"}
	for range 5 {
		_, err := c.Classify(context.Background(), in)
		require.Error(t, err)
	}
	assert.Equal(t, int32(5), client.calls.Load())

	_, err := c.Classify(context.Background(), in)
	require.ErrorIs(t, err, common.ErrProviderUnavailable)
	assert.Equal(t, int32(5), client.calls.Load(), "open circuit must not reach the provider")
}

func TestClassifier_ContextCanceled(t *testing.T) {
	client := &fakeClient{complete: func(ctx context.Context, _ Prompt) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	c := newTestClassifier(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Classify(ctx, model.ClassificationInput{Name: "Acme", Description: "widgets"})
	require.Error(t, err)
}

func TestNewLimiter(t *testing.T) {
	unlimited := newLimiter(0)
	assert.True(t, unlimited.Allow())
	assert.True(t, unlimited.Allow())

	limited := newLimiter(60)
	assert.True(t, limited.Allow())
	assert.False(t, limited.Allow())
}
