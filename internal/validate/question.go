// Package validate checks raw questions before they reach the pipeline.
package validate

import (
	"errors"
	"fmt"
	"strings"
)

// MaxWords is the longest accepted question, in whitespace-separated words.
const MaxWords = 15

// Kind classifies a rejected question.
type Kind int

const (
	EmptyQuestion Kind = iota + 1
	TooLong
	NonASCIIInput
)

func (k Kind) String() string {
	switch k {
	case EmptyQuestion:
		return "EmptyQuestion"
	case TooLong:
		return "TooLong"
	case NonASCIIInput:
		return "NonAsciiInput"
	default:
		return "Unknown"
	}
}

// Error is returned for a question the user has to correct.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is matches on Kind so callers can use errors.Is with the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmptyQuestion = &Error{Kind: EmptyQuestion, Msg: "a question is required"}
	ErrTooLong       = &Error{Kind: TooLong, Msg: fmt.Sprintf("questions are limited to %d words", MaxWords)}
	ErrNonASCII      = &Error{Kind: NonASCIIInput, Msg: "please ask in English: only printable ASCII characters are allowed"}
)

// Check returns nil for an acceptable question, otherwise one of
// ErrEmptyQuestion, ErrTooLong or ErrNonASCII, checked in that order.
// Tab, newline and carriage return count as whitespace and are accepted;
// any other rune outside 0x20..0x7E, including Unicode spaces, is rejected.
func Check(q string) error {
	if strings.TrimSpace(q) == "" {
		return ErrEmptyQuestion
	}
	if len(strings.Fields(q)) > MaxWords {
		return ErrTooLong
	}
	for _, r := range q {
		if r < 0x20 || r > 0x7e {
			if r == '\t' || r == '\n' || r == '\r' {
				continue
			}
			return ErrNonASCII
		}
	}
	return nil
}

// Question reports whether q is acceptable, with the user-facing message
// when it is not. The message is empty for an accepted question.
func Question(q string) (bool, string) {
	if err := Check(q); err != nil {
		var ve *Error
		if errors.As(err, &ve) {
			return false, ve.Msg
		}
		return false, err.Error()
	}
	return true, ""
}
