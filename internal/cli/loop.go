// Package cli runs the interactive question loop on a terminal.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const prompt = "\nAsk a Question (or type 'exit' to quit): "

// Asker answers a single question.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Loop reads one question per line from in and writes answers to out until
// the input ends or the user types "exit" in any letter case. A failed
// question is reported and the loop continues.
func Loop(ctx context.Context, in io.Reader, out io.Writer, asker Asker) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Text()
		if strings.EqualFold(strings.TrimSpace(line), "exit") {
			return nil
		}
		if err := AskOnce(ctx, out, asker, line); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// AskOnce answers one question, printing the answer or the error to out.
func AskOnce(ctx context.Context, out io.Writer, asker Asker, question string) error {
	ans, err := asker.Ask(ctx, question)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return err
	}
	fmt.Fprintf(out, "\nFinal Answer:\n%s\n", ans)
	return nil
}
