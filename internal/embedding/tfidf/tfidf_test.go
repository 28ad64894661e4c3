package tfidf

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func norm(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func TestEmbed_RequiresPrepare(t *testing.T) {
	_, err := NewEmbedder().Embed(context.Background(), []string{"hello"})
	require.Error(t, err)
}

func TestPrepare_EmptyCorpus(t *testing.T) {
	require.Error(t, NewEmbedder().Prepare(nil))
	require.Error(t, NewEmbedder().Prepare([]string{"the and of"}))
}

func TestEmbed_NormalizedAndSymmetric(t *testing.T) {
	e := NewEmbedder()
	corpus := []string{
		"Novak Djokovic was born in Belgrade, Serbia.",
		"Roger Federer was born in Basel, Switzerland.",
	}
	require.NoError(t, e.Prepare(corpus))
	assert.Greater(t, e.Dimension(), 0)

	passages, err := e.Embed(context.Background(), corpus)
	require.NoError(t, err)
	require.Len(t, passages, 2)
	for _, v := range passages {
		assert.InDelta(t, 1.0, norm(v), 1e-9)
		assert.Len(t, v, e.Dimension())
	}

	q, err := e.Embed(context.Background(), []string{"Who is from Serbia?"})
	require.NoError(t, err)
	assert.Greater(t, dot(q[0], passages[0]), dot(q[0], passages[1]))
}

func TestEmbed_UnknownTermsGiveZeroVector(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"tennis racket"}))
	v, err := e.Embed(context.Background(), []string{"zebra"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, norm(v[0]))
}

func TestEmbed_NumbersAreTerms(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"He won 20 titles", "He won 22 titles"}))
	v, err := e.Embed(context.Background(), []string{"20"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, norm(v[0]), 1e-9)
}

func TestEmbed_CancelledContext(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"clay court"}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Embed(ctx, []string{"clay"})
	require.ErrorIs(t, err, context.Canceled)
}
