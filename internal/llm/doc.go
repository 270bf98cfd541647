// Package llm provides an LLM-backed industry classifier. It supports Google
// Gemini and OpenAI-compatible chat APIs behind one Client interface, with
// few-shot prompting, rate limiting, retries, a circuit breaker, and result
// caching.
package llm
