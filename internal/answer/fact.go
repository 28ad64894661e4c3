package answer

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"rag/internal/chunker"
	"rag/internal/domain"
)

var (
	factRe = regexp.MustCompile(`(?i)([\p{L}\p{N}_]+\s[\p{L}\p{N}_]+).*?(\d+)\s.*?(Grand Slam|major|Wimbledon|US Open|Roland Garros|French Open|Australian Open).*?titles`)
	// Tournament keywords as they must appear in the question, lowercased.
	tournaments = []string{"grand slam", "major", "wimbledon", "us open", "roland garros", "french open", "australian open"}
	numberRe    = regexp.MustCompile(`\d+`)
)

// FactExtractor answers "how many titles" questions directly from a
// sentence of the form "<name> ... <number> ... <tournament> ... titles".
// It only runs when the question carries both a number and a tournament
// keyword, and only answers when both agree with the matched sentence.
type FactExtractor struct {
	trace io.Writer
}

// NewFactExtractor creates a fact extractor that reports matches to trace.
func NewFactExtractor(trace io.Writer) *FactExtractor {
	return &FactExtractor{trace: orDiscard(trace)}
}

func (f *FactExtractor) Name() string { return "fact" }

// Answer scans the results in rank order, one sentence at a time.
func (f *FactExtractor) Answer(ctx context.Context, query string, results []domain.SearchResult) (string, bool, error) {
	q := strings.ToLower(query)
	want, ok := queryNumber(q)
	if !ok || !mentionsTournament(q) {
		return "", false, nil
	}
	for _, r := range results {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		for _, sent := range chunker.SplitSentences(r.Chunk.Text) {
			m := factRe.FindStringSubmatch(sent)
			if m == nil {
				continue
			}
			n, err := strconv.Atoi(m[2])
			if err != nil || n != want {
				continue
			}
			if !strings.Contains(q, strings.ToLower(m[3])) {
				continue
			}
			fmt.Fprintln(f.trace, "Using numeric match...")
			return "Answer from fact: " + m[1], true, nil
		}
	}
	return "", false, nil
}

// queryNumber returns the first integer in the question.
func queryNumber(q string) (int, bool) {
	s := numberRe.FindString(q)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func mentionsTournament(q string) bool {
	for _, t := range tournaments {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}
