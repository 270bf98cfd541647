package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/Veraticus/sector-sift/internal/common"
	"github.com/Veraticus/sector-sift/internal/model"
	"github.com/Veraticus/sector-sift/internal/service"
)

// ClassifierName identifies results produced by the LLM classifier.
const ClassifierName = "llm"

// Classifier implements service.Classifier by asking an LLM to choose one of a
// fixed set of industry labels.
type Classifier struct {
	client      Client
	cache       *resultCache
	logger      *slog.Logger
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[string]
	allowed     []string
	examples    []model.FewShotExample
	retryOpts   service.RetryOptions
	temperature float64
	maxTokens   int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithAllowedLabels restricts answers to the given labels.
func WithAllowedLabels(labels []string) Option {
	return func(c *Classifier) {
		cleaned := make([]string, 0, len(labels))
		for _, l := range labels {
			if l = strings.TrimSpace(l); l != "" {
				cleaned = append(cleaned, l)
			}
		}
		if len(cleaned) > 0 {
			c.allowed = cleaned
		}
	}
}

// WithExamples replaces the default few-shot examples.
func WithExamples(examples []model.FewShotExample) Option {
	return func(c *Classifier) {
		c.examples = append([]model.FewShotExample(nil), examples...)
	}
}

// WithLogger sets the classifier's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClassifier creates a provider client from cfg and wraps it in a Classifier.
func NewClassifier(cfg Config, opts ...Option) (*Classifier, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewClassifierWithClient(client, cfg, opts...), nil
}

// NewClassifierWithClient wraps an existing client.
func NewClassifierWithClient(client Client, cfg Config, opts ...Option) *Classifier {
	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	c := &Classifier{
		client:      client,
		cache:       newResultCache(cfg.CacheTTL),
		logger:      slog.Default(),
		limiter:     newLimiter(cfg.RateLimit),
		allowed:     DefaultIndustries(),
		examples:    DefaultExamples(),
		retryOpts:   retryOpts,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = c.newBreaker()

	return c
}

// newLimiter converts a requests-per-minute budget into a token bucket.
// Zero or negative means unlimited.
func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

func (c *Classifier) newBreaker() *gobreaker.CircuitBreaker[string] {
	logger := c.logger
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "llm",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// Rejected requests say nothing about provider health.
			return err == nil || !common.IsRetryable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// Name implements service.Classifier.
func (c *Classifier) Name() string { return ClassifierName }

// AllowedLabels returns a copy of the labels the classifier may answer with.
func (c *Classifier) AllowedLabels() []string {
	return append([]string(nil), c.allowed...)
}

// Classify asks the model for an industry. A reply that matches no allowed
// label yields Unclassified with zero confidence; provider failures are
// returned as errors.
func (c *Classifier) Classify(ctx context.Context, in model.ClassificationInput) (model.ClassificationResult, error) {
	if strings.TrimSpace(in.Text()) == "" {
		return model.UnclassifiedResult(ClassifierName), nil
	}

	key := cacheKey(in, c.allowed)
	if result, found := c.cache.get(key); found {
		c.logger.Debug("cache hit for company", "company", in.Name)
		return result, nil
	}

	prompt := Prompt{
		System:      systemPrompt,
		User:        buildPrompt(in, c.allowed, examplesFor(in, c.examples)),
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var reply string
	err := common.WithRetry(ctx, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return &common.RetryableError{Err: fmt.Errorf("rate limit wait: %w", err), Retryable: false}
		}

		out, err := c.breaker.Execute(func() (string, error) {
			return c.client.Complete(ctx, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return &common.RetryableError{Err: fmt.Errorf("%w: %w", common.ErrProviderUnavailable, err), Retryable: false}
			}
			c.logger.Warn("classification attempt failed", "company", in.Name, "error", err)
			return err
		}
		reply = out
		return nil
	}, c.retryOpts)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("llm classification failed: %w", err)
	}

	result := model.UnclassifiedResult(ClassifierName)
	if label, ok := matchLabel(reply, c.allowed); ok {
		result = model.ClassificationResult{
			Industry:   label,
			Classifier: ClassifierName,
			Confidence: 1.0,
		}
	} else {
		c.logger.Info("llm reply matched no allowed label", "company", in.Name, "reply", reply)
	}

	c.cache.set(key, result)

	c.logger.Debug("company classified",
		"company", in.Name,
		"industry", result.Industry,
		"confidence", result.Confidence)

	return result, nil
}

// Close stops background goroutines.
func (c *Classifier) Close() error {
	if c.cache != nil {
		c.cache.Close()
	}
	return nil
}
