// Package service wires the retrieval-augmented answering pipeline:
// load the corpus, index it, retrieve the best chunks and answer.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"rag/internal/answer"
	"rag/internal/domain"
	"rag/internal/loader"
	"rag/internal/validate"
)

var (
	// ErrNoDocuments means the data folder holds no .txt files.
	ErrNoDocuments = errors.New("no .txt documents found")
	// ErrEmptyCorpus means the documents produced no chunks to index.
	ErrEmptyCorpus = errors.New("documents contain no indexable text")
)

// Options configures a Pipeline.
type Options struct {
	DataDir          string
	TopK             int
	MaxContextTokens int
	MaxNewTokens     int
	// FactExtractor enables the numeric fact short-circuit before generation.
	FactExtractor bool
	// Trace receives the human-readable run transcript. Nil discards it.
	Trace io.Writer
	// Logger receives operational log lines. Nil uses the standard logger.
	Logger *log.Logger
}

// Pipeline answers questions over the documents in a folder. The folder is
// re-read on every question; the index is rebuilt only when its contents
// change. Calls are serialized.
type Pipeline struct {
	chunker    domain.Chunker
	embedder   domain.Embedder
	store      domain.VectorStore
	strategies answer.Chain
	opts       Options
	trace      io.Writer
	log        *log.Logger

	mu          sync.Mutex
	fingerprint string
	chunks      []domain.Chunk
}

// NewPipeline assembles a pipeline from its components.
func NewPipeline(chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore, gen domain.Generator, opts Options) *Pipeline {
	if opts.TopK <= 0 {
		opts.TopK = 8
	}
	if opts.MaxContextTokens <= 0 {
		opts.MaxContextTokens = 1024
	}
	if opts.MaxNewTokens <= 0 {
		opts.MaxNewTokens = 128
	}
	trace := opts.Trace
	if trace == nil {
		trace = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	var chain answer.Chain
	if opts.FactExtractor {
		chain = append(chain, answer.NewFactExtractor(trace))
	}
	chain = append(chain, answer.NewGenerative(gen, opts.MaxContextTokens, opts.MaxNewTokens, trace))
	return &Pipeline{
		chunker:    chunker,
		embedder:   embedder,
		store:      store,
		strategies: chain,
		opts:       opts,
		trace:      trace,
		log:        logger,
	}
}

// Ask validates the question, retrieves the top chunks and answers it.
func (p *Pipeline) Ask(ctx context.Context, query string) (string, error) {
	if err := validate.Check(query); err != nil {
		return "", err
	}
	runID := uuid.NewString()
	start := time.Now()
	p.log.Printf("[info] run=%s op=ask query=%q", runID, query)

	results, err := p.retrieve(ctx, runID, query, p.opts.TopK)
	if err != nil {
		p.log.Printf("[error] run=%s op=retrieve err=%v", runID, err)
		return "", err
	}

	fmt.Fprintln(p.trace, "\nTop Matching Chunks:")
	for i, r := range results {
		fmt.Fprintf(p.trace, "\n#%d:\n%s\n", i+1, r.Chunk.Text)
	}

	ans, used, err := p.strategies.Answer(ctx, query, results)
	if err != nil {
		p.log.Printf("[error] run=%s op=answer strategy=%s err=%v", runID, used, err)
		return "", err
	}
	p.log.Printf("[info] run=%s op=answer strategy=%s took=%s", runID, used, time.Since(start).Round(time.Millisecond))
	return ans, nil
}

// Retrieve returns the k chunks most similar to query, refreshing the index
// from the data folder first. If k exceeds the number of chunks, all are
// returned. k <= 0 uses the configured default.
func (p *Pipeline) Retrieve(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	return p.retrieve(ctx, uuid.NewString(), query, k)
}

func (p *Pipeline) retrieve(ctx context.Context, runID, query string, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		k = p.opts.TopK
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.refresh(ctx, runID); err != nil {
		return nil, err
	}
	vecs, err := p.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors", len(vecs))
	}
	if isZero(vecs[0]) {
		p.log.Printf("[info] run=%s op=retrieve fallback=lexical reason=zero-query-vector", runID)
		return lexicalSearch(p.chunks, query, k), nil
	}
	res, err := p.store.Search(vecs[0], k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	if allZeroScores(res) {
		p.log.Printf("[info] run=%s op=retrieve fallback=lexical reason=zero-scores", runID)
		return lexicalSearch(p.chunks, query, k), nil
	}
	return res, nil
}

// refresh reloads the folder and rebuilds the index if the corpus changed.
func (p *Pipeline) refresh(ctx context.Context, runID string) error {
	docs, err := loader.LoadFolder(p.opts.DataDir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("%s: %w", p.opts.DataDir, ErrNoDocuments)
	}
	for _, d := range docs {
		fmt.Fprintf(p.trace, "Loaded %s, %d words\n", d.ID, loader.WordCount(d.Content))
	}

	fp := p.fingerprintOf(docs)
	if fp == p.fingerprint && p.store.Len() > 0 {
		p.log.Printf("[info] run=%s op=index cache=hit docs=%d chunks=%d", runID, len(docs), len(p.chunks))
		return nil
	}
	p.fingerprint = ""

	var chunks []domain.Chunk
	var texts []string
	for _, d := range docs {
		cs, err := p.chunker.Chunk(d)
		if err != nil {
			return fmt.Errorf("chunk %s: %w", d.ID, err)
		}
		for _, c := range cs {
			chunks = append(chunks, c)
			texts = append(texts, c.Text)
		}
	}
	if len(chunks) == 0 {
		return ErrEmptyCorpus
	}

	if err := p.embedder.Prepare(texts); err != nil {
		return fmt.Errorf("prepare embedder: %w", err)
	}
	vectors, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	// Remote embedders learn their dimension from the first response.
	if err := p.store.Init(p.embedder.Dimension()); err != nil {
		return err
	}
	if err := p.store.Clear(); err != nil {
		return err
	}
	if err := p.store.Upsert(chunks, vectors); err != nil {
		return fmt.Errorf("index chunks: %w", err)
	}
	p.chunks = chunks
	p.fingerprint = fp
	p.log.Printf("[info] run=%s op=index cache=miss docs=%d chunks=%d chunker=%s embedder=%s",
		runID, len(docs), len(chunks), p.chunker.Name(), p.embedder.Name())
	return nil
}

// fingerprintOf identifies a corpus together with the components that index it.
func (p *Pipeline) fingerprintOf(docs []domain.Document) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00", p.chunker.Name(), p.embedder.Name())
	for _, d := range docs {
		fmt.Fprintf(h, "%s\x00%d\x00%s\x00", d.ID, len(d.Content), d.Content)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func allZeroScores(res []domain.SearchResult) bool {
	for _, r := range res {
		if r.Score > 1e-9 {
			return false
		}
	}
	return true
}
