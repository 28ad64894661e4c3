package domain

import "context"

// Document represents a single text file loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a bounded passage of a document used as the retrieval unit.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Text       string
	Index      int
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Embedder converts free text into numeric vectors.
// Implementations may require a preparation phase over the corpus.
// Passages and queries go through the same Embed call.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Name() string
	Chunk(document Document) ([]Chunk, error)
}

// VectorStore holds chunk vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(chunks []Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Clear() error
	Len() int
}

// Generator produces free text from a prompt. CountTokens uses the
// same tokenizer the model sees, so context budgets line up with it.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string, maxNewTokens int) (string, error)
	CountTokens(text string) int
}
