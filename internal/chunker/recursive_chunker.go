package chunker

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"rag/internal/domain"
)

// RecursiveChunker splits on paragraph, line, then word boundaries until
// every piece fits in chunkSize characters, carrying chunkOverlap
// characters of context into the next chunk.
type RecursiveChunker struct {
	chunkSize    int
	chunkOverlap int
	splitter     textsplitter.RecursiveCharacter
}

// NewRecursiveChunker creates a character-bounded chunker.
func NewRecursiveChunker(chunkSize, chunkOverlap int) *RecursiveChunker {
	if chunkSize <= 0 {
		chunkSize = 450
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 4
	}
	return &RecursiveChunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", " ", ""}),
		),
	}
}

func (c *RecursiveChunker) Name() string {
	return fmt.Sprintf("recursive(%d,%d)", c.chunkSize, c.chunkOverlap)
}

// Chunk splits the document. Blank pieces are dropped.
func (c *RecursiveChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	if strings.TrimSpace(document.Content) == "" {
		return nil, nil
	}
	pieces, err := c.splitter.SplitText(document.Content)
	if err != nil {
		return nil, fmt.Errorf("split %s: %w", document.ID, err)
	}
	var chunks []domain.Chunk
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		chunks = append(chunks, newChunk(document.ID, len(chunks), p))
	}
	return chunks, nil
}
