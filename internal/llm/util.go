// Package llm - util.go provides shared utilities for response processing
// and input sizing.
package llm

import "strings"

// charsPerToken is the character-count heuristic used to approximate token
// counts without a tokenizer.
const charsPerToken = 4

// DefaultTokenBudget is the approximate input budget applied when a call
// does not specify one.
const DefaultTokenBudget = 8000

// truncationMarker is appended to truncated input so evaluators know
// context was lost.
const truncationMarker = "\n[truncated: input exceeded size budget]"

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// If first line looks like a language identifier (no spaces, short), skip it
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// TruncateToTokens bounds text to an approximate token budget using the
// chars-per-token heuristic. The second return value reports whether
// truncation happened; truncated text carries the truncation marker.
func TruncateToTokens(text string, tokenBudget int) (string, bool) {
	if tokenBudget <= 0 {
		tokenBudget = DefaultTokenBudget
	}
	maxChars := tokenBudget * charsPerToken
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text, false
	}
	return string(runes[:maxChars]) + truncationMarker, true
}
