// Package answer turns retrieved chunks into a final answer. Strategies are
// tried in order; the generative strategy always produces an answer and
// belongs at the end of a chain.
package answer

import (
	"context"
	"errors"
	"io"

	"rag/internal/domain"
)

// ErrNoAnswer is returned by a chain in which no strategy produced an answer.
var ErrNoAnswer = errors.New("no strategy produced an answer")

// Strategy produces an answer from the ranked retrieval results.
// ok is false when the strategy does not apply, letting the next one run.
type Strategy interface {
	Name() string
	Answer(ctx context.Context, query string, results []domain.SearchResult) (answer string, ok bool, err error)
}

// Chain tries strategies in order and returns the first answer produced.
type Chain []Strategy

// Answer returns the first answer and the name of the strategy that produced it.
func (c Chain) Answer(ctx context.Context, query string, results []domain.SearchResult) (string, string, error) {
	for _, s := range c {
		ans, ok, err := s.Answer(ctx, query, results)
		if err != nil {
			return "", s.Name(), err
		}
		if ok {
			return ans, s.Name(), nil
		}
	}
	return "", "", ErrNoAnswer
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
