package llm

import (
	"strings"
)

// cleanResponse strips the decoration models tend to add around a bare label:
// code fences, an echoed "Output:" prefix, quotes, and trailing punctuation.
// Only the first non-empty line is kept.
func cleanResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```text")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) >= len("output:") && strings.EqualFold(line[:len("output:")], "output:") {
			line = strings.TrimSpace(line[len("output:"):])
		}
		line = strings.TrimRight(line, ".")
		line = strings.Trim(line, "\"'`*")
		line = strings.TrimRight(line, ".")
		return strings.TrimSpace(line)
	}

	return ""
}

// matchLabel maps a model reply onto one of the allowed labels: an exact
// case-insensitive match first, then the first label that contains the reply
// or is contained in it. The second result is false when nothing fits.
func matchLabel(reply string, allowed []string) (string, bool) {
	reply = cleanResponse(reply)
	if reply == "" {
		return "", false
	}
	lower := strings.ToLower(reply)

	for _, label := range allowed {
		if strings.EqualFold(label, reply) {
			return label, true
		}
	}

	for _, label := range allowed {
		l := strings.ToLower(label)
		if l == "" {
			continue
		}
		if strings.Contains(lower, l) || strings.Contains(l, lower) {
			return label, true
		}
	}

	return "", false
}
