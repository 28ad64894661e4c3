// Package generator holds helpers shared by the answer generation models.
package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// EstimateTokens approximates a subword tokenizer's count for models served
// by Ollama, whose tokenizer depends on the pulled model and is not exposed
// over its generate API: roughly four characters per token, never fewer
// than the number of words.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	chars := (utf8.RuneCountInString(text) + 3) / 4
	if chars > words {
		return chars
	}
	return words
}

// TruncateTokens cuts text after maxTokens words, for models that have no
// native output limit.
func TruncateTokens(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	count := 0
	inWord := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			if count == maxTokens {
				return strings.TrimSpace(text[:i])
			}
			count++
			inWord = true
		}
	}
	return text
}
