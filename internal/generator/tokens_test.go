package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 3, EstimateTokens("a b c"))
	// 40 characters, 1 word.
	assert.Equal(t, 10, EstimateTokens("abcdefghijabcdefghijabcdefghijabcdefghij"))
}

func TestTruncateTokens(t *testing.T) {
	assert.Equal(t, "one two", TruncateTokens("one two three", 2))
	assert.Equal(t, "one two three", TruncateTokens("one two three", 3))
	assert.Equal(t, "one two three", TruncateTokens("one two three", 0))
	assert.Equal(t, "one", TruncateTokens("  one\n\ttwo", 1))
}
