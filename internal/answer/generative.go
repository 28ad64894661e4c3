package answer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"rag/internal/domain"
)

const promptTemplate = "Answer the following question using the context below:\n\nContext:\n%s\n\nQuestion: %s\n"

// Generative conditions a generator on a token-bounded context built
// from the retrieved chunks.
type Generative struct {
	gen          domain.Generator
	maxContext   int
	maxNewTokens int
	trace        io.Writer
}

// NewGenerative creates the generative strategy. maxContext bounds the
// context in the generator's own tokens; maxNewTokens bounds the output.
func NewGenerative(gen domain.Generator, maxContext, maxNewTokens int, trace io.Writer) *Generative {
	return &Generative{gen: gen, maxContext: maxContext, maxNewTokens: maxNewTokens, trace: orDiscard(trace)}
}

func (g *Generative) Name() string { return "generative:" + g.gen.Name() }

// Answer always answers unless the generator fails.
func (g *Generative) Answer(ctx context.Context, query string, results []domain.SearchResult) (string, bool, error) {
	prompt := BuildPrompt(BuildContext(results, g.gen.CountTokens, g.maxContext), query)
	fmt.Fprintln(g.trace, "Generating answer...")
	out, err := g.gen.Generate(ctx, prompt, g.maxNewTokens)
	if err != nil {
		return "", false, fmt.Errorf("generate with %s: %w", g.gen.Name(), err)
	}
	return strings.TrimSpace(out), true, nil
}

// BuildContext concatenates chunks in rank order, each followed by a blank
// line, stopping before the running token count would exceed budget.
// A single chunk counts for at most budget tokens.
func BuildContext(results []domain.SearchResult, countTokens func(string) int, budget int) string {
	var b strings.Builder
	total := 0
	for _, r := range results {
		n := countTokens(r.Chunk.Text)
		if n > budget {
			n = budget
		}
		if total+n > budget {
			break
		}
		b.WriteString(r.Chunk.Text)
		b.WriteString("\n\n")
		total += n
	}
	return b.String()
}

// BuildPrompt wraps context and question in the instruction template.
func BuildPrompt(context, query string) string {
	return fmt.Sprintf(promptTemplate, context, query)
}
