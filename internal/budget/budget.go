package budget

import "math"

// MaxInputTokens is the fixed budget for the user message handed to the
// chat model, leaving room for the system prompt and the response.
const MaxInputTokens = 120_000

// charsPerToken is the conservative heuristic used throughout: roughly four
// characters per token for English prose.
const charsPerToken = 4

// EstimateTokensFromChars converts a character count into an estimated token
// count. The result is always at least 1 when chars > 0.
func EstimateTokensFromChars(charCount int) int {
	if charCount <= 0 {
		return 0
	}
	return int(math.Ceil(float64(charCount) / charsPerToken))
}

// EstimateTokens returns the estimated token count of a string.
func EstimateTokens(s string) int {
	return EstimateTokensFromChars(len(s))
}

// Truncate returns a prefix of s that fits within maxTokens under the
// estimation heuristic, together with the number of tokens removed. The
// prefix never splits a UTF-8 rune. When s already fits it is returned
// unchanged with zero removed.
func Truncate(s string, maxTokens int) (string, int) {
	total := EstimateTokens(s)
	if maxTokens <= 0 || total <= maxTokens {
		return s, 0
	}
	trimmed := trimByByteLimitPreservingRunes(s, maxTokens*charsPerToken)
	return trimmed, total - EstimateTokens(trimmed)
}

// trimByByteLimitPreservingRunes returns a prefix of s whose byte length is
// <= maxBytes, never splitting a UTF-8 rune.
func trimByByteLimitPreservingRunes(s string, maxBytes int) string {
	if maxBytes >= len(s) {
		return s
	}
	if maxBytes <= 0 {
		return ""
	}
	var idx int
	for i := range s {
		if i > maxBytes {
			break
		}
		idx = i
	}
	if idx == 0 && maxBytes < len(s) {
		return ""
	}
	return s[:idx]
}
