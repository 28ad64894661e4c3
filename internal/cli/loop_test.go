package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag/internal/validate"
)

type fakeAsker struct {
	questions []string
}

func (f *fakeAsker) Ask(_ context.Context, q string) (string, error) {
	f.questions = append(f.questions, q)
	if err := validate.Check(q); err != nil {
		return "", err
	}
	return "answer to " + q, nil
}

func TestLoop_AnswersUntilExit(t *testing.T) {
	asker := &fakeAsker{}
	var out bytes.Buffer
	in := strings.NewReader("Who is from Serbia?\nEXIT\nnever asked\n")

	require.NoError(t, Loop(context.Background(), in, &out, asker))
	assert.Equal(t, []string{"Who is from Serbia?"}, asker.questions)
	assert.Contains(t, out.String(), "Final Answer:\nanswer to Who is from Serbia?")
	assert.Equal(t, 2, strings.Count(out.String(), "Ask a Question"))
}

func TestLoop_ReportsErrorsAndContinues(t *testing.T) {
	asker := &fakeAsker{}
	var out bytes.Buffer
	in := strings.NewReader("\nWho won?\n")

	require.NoError(t, Loop(context.Background(), in, &out, asker))
	assert.Len(t, asker.questions, 2)
	assert.Contains(t, out.String(), "Error: "+validate.ErrEmptyQuestion.Error())
	assert.Contains(t, out.String(), "answer to Who won?")
}

func TestLoop_EndsAtEOF(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Loop(context.Background(), strings.NewReader(""), &out, &fakeAsker{}))
}

func TestLoop_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	asker := &fakeAsker{}
	err := Loop(ctx, strings.NewReader("Who won?\n"), &bytes.Buffer{}, asker)
	require.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, asker.questions)
}

func TestAskOnce(t *testing.T) {
	var out bytes.Buffer
	err := AskOnce(context.Background(), &out, &fakeAsker{}, "é")
	require.ErrorIs(t, err, validate.ErrNonASCII)
	assert.True(t, strings.HasPrefix(out.String(), "Error: "))
}
