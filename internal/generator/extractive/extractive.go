// Package extractive is an offline answer model: it returns the context
// sentence that best covers the question's terms.
package extractive

import (
	"context"
	"regexp"
	"strings"

	"rag/internal/chunker"
	"rag/internal/generator"
)

const noAnswer = "I could not find an answer in the documents."

// Generator ranks sentences by overlap with the question (stopwords
// filtered) and returns the best one. Equal scores keep context order, so
// sentences from higher-ranked chunks win.
type Generator struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// New creates an extractive generator.
func New() *Generator {
	return &Generator{
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}]+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

func (g *Generator) Name() string { return "extractive" }

// CountTokens counts whitespace-separated words, which is what this model reads.
func (g *Generator) CountTokens(text string) int { return len(strings.Fields(text)) }

// Generate answers from the "Context:" and "Question:" sections of prompt.
// Without those markers the whole prompt serves as both.
func (g *Generator) Generate(ctx context.Context, prompt string, maxNewTokens int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	contextText, question := splitPrompt(prompt)
	sentences := chunker.SplitSentences(contextText)
	if len(sentences) == 0 {
		return noAnswer, nil
	}
	qTokens := g.tokenSet(question)
	bestIdx, bestScore := 0, 0
	for i, s := range sentences {
		if score := g.overlap(qTokens, s); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return generator.TruncateTokens(sentences[bestIdx], maxNewTokens), nil
}

func splitPrompt(prompt string) (contextText, question string) {
	qi := strings.LastIndex(prompt, "Question:")
	if qi < 0 {
		return prompt, prompt
	}
	question = strings.TrimSpace(prompt[qi+len("Question:"):])
	contextText = prompt[:qi]
	if ci := strings.Index(contextText, "Context:"); ci >= 0 {
		contextText = contextText[ci+len("Context:"):]
	}
	return contextText, question
}

func (g *Generator) tokenSet(text string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, t := range g.tokens(text) {
		m[t] = struct{}{}
	}
	return m
}

func (g *Generator) overlap(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	seen := make(map[string]struct{})
	for _, t := range g.tokens(sentence) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}

func (g *Generator) tokens(text string) []string {
	raw := g.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, ok := g.stopwords[t]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
		"who", "what", "which", "does", "do", "did", "has", "have", "had", "how", "many",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
