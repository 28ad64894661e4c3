package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fifteen = "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen"

func TestQuestion_Required(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		ok, msg := Question(q)
		assert.False(t, ok, "%q", q)
		assert.Contains(t, strings.ToLower(msg), "required")
	}

	ok, msg := Question("Hello")
	assert.True(t, ok)
	assert.Equal(t, "", msg)
}

func TestQuestion_MaxWords(t *testing.T) {
	ok, msg := Question(fifteen)
	assert.True(t, ok)
	assert.Empty(t, msg)

	ok, msg = Question(fifteen + " sixteen")
	assert.False(t, ok)
	assert.Contains(t, msg, "15")
}

func TestQuestion_ASCIIOnly(t *testing.T) {
	ok, msg := Question("Federer 2008!!! #1?")
	assert.True(t, ok)
	assert.Empty(t, msg)

	for _, q := range []string{
		"Привет",
		"你好",
		"Who is Djoković?",
		"Who is Federer?\u00a0",
		"\u3000Who is Federer?",
		"Who is Federer?\u2003",
		"\u0085Who?",
	} {
		ok, msg := Question(q)
		assert.False(t, ok, "%q", q)
		lower := strings.ToLower(msg)
		assert.True(t, strings.Contains(lower, "english") || strings.Contains(lower, "ascii"), msg)
	}
}

func TestCheck_Precedence(t *testing.T) {
	// Too long and non-ASCII: length is reported first.
	long := strings.Repeat("é ", 16)
	require.ErrorIs(t, Check(long), ErrTooLong)
	require.ErrorIs(t, Check("   "), ErrEmptyQuestion)
	require.ErrorIs(t, Check("ünïcode"), ErrNonASCII)
	require.NoError(t, Check("  padded question  "))
}

func TestCheck_ErrorKinds(t *testing.T) {
	err := Check("")
	var ve *Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, EmptyQuestion, ve.Kind)
	assert.Equal(t, "EmptyQuestion", ve.Kind.String())
	assert.Equal(t, "NonAsciiInput", NonASCIIInput.String())
}

func TestCheck_ASCIIWhitespaceControls(t *testing.T) {
	for _, q := range []string{"Who is\tFederer?", "Who is Federer?\n", "Who is Federer?\r\n"} {
		require.NoError(t, Check(q), "%q", q)
	}
	for _, q := range []string{"Who\x07 is Federer?", "Who is Federer?\x00", "Who is\x7f Federer?"} {
		require.ErrorIs(t, Check(q), ErrNonASCII, "%q", q)
	}
}
