package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/sector-sift/internal/common"
	"github.com/Veraticus/sector-sift/internal/llm"
)

// llmConfig builds the LLM configuration from viper, falling back to the
// provider's conventional API key variable.
func llmConfig() (llm.Config, error) {
	provider := strings.ToLower(viper.GetString("llm.provider"))
	if provider == "" {
		provider = llm.ProviderGemini
	}

	cfg := llm.Config{
		Provider:    provider,
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		BaseURL:     viper.GetString("llm.base_url"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		MaxRetries:  viper.GetInt("llm.max_retries"),
		RetryDelay:  viper.GetDuration("llm.retry_delay"),
		CacheTTL:    viper.GetDuration("llm.cache_ttl"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
		Timeout:     viper.GetDuration("llm.timeout"),
	}

	if cfg.APIKey == "" {
		switch provider {
		case llm.ProviderGemini:
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		case llm.ProviderOpenAI:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		default:
			return cfg, fmt.Errorf("unsupported LLM provider: %s", provider)
		}
	}
	if cfg.APIKey == "" {
		return cfg, common.NewUserError(
			fmt.Sprintf("No API key for %s: set llm.api_key, SIFT_LLM_API_KEY or %s_API_KEY", provider, strings.ToUpper(provider)),
			common.ErrMissingConfig,
		)
	}

	return cfg, nil
}

// createLLMClassifier creates the LLM classifier. A nil labels slice keeps the
// default industry list.
func createLLMClassifier(labels []string) (*llm.Classifier, error) {
	cfg, err := llmConfig()
	if err != nil {
		return nil, err
	}

	opts := []llm.Option{llm.WithLogger(slog.Default())}
	if len(labels) > 0 {
		opts = append(opts, llm.WithAllowedLabels(labels))
	}

	classifier, err := llm.NewClassifier(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM classifier: %w", err)
	}

	return classifier, nil
}
