package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"rag/internal/chunker"
	"rag/internal/config"
	"rag/internal/domain"
	embopenai "rag/internal/embedding/openai"
	"rag/internal/embedding/tfidf"
	"rag/internal/generator/extractive"
	"rag/internal/generator/ollama"
	genopenai "rag/internal/generator/openai"
	"rag/internal/service"
	"rag/internal/vectorstore/memory"
)

func buildChunker(cfg *config.AppConfig) (domain.Chunker, error) {
	switch cfg.Chunker.Type {
	case "recursive", "":
		return chunker.NewRecursiveChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap), nil
	case "sentence":
		return chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences), nil
	default:
		return nil, fmt.Errorf("unknown chunker: %s", cfg.Chunker.Type)
	}
}

func buildEmbedder(cfg *config.AppConfig) (domain.Embedder, error) {
	switch cfg.Embedder.Type {
	case "tfidf", "":
		return tfidf.NewEmbedder(), nil
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			return nil, fmt.Errorf("openai embedder config missing")
		}
		c := cfg.Embedder.OpenAI
		client, err := embopenai.NewClient(embopenai.Config{
			BaseURL:   c.BaseURL,
			APIKeyEnv: c.APIKeyEnv,
			Model:     c.Model,
			Timeout:   time.Duration(c.TimeoutSecs) * time.Second,
			BatchSize: c.BatchSize,
		})
		if err != nil {
			return nil, fmt.Errorf("openai embedder init failed: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}
}

func buildGenerator(cfg *config.AppConfig) (domain.Generator, error) {
	switch cfg.Generator.Type {
	case "extractive", "":
		return extractive.New(), nil
	case "openai":
		if cfg.Generator.OpenAI == nil {
			return nil, fmt.Errorf("openai generator config missing")
		}
		c := cfg.Generator.OpenAI
		client, err := genopenai.NewClient(genopenai.Config{
			BaseURL:   c.BaseURL,
			APIKeyEnv: c.APIKeyEnv,
			Model:     c.Model,
			Timeout:   time.Duration(c.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("openai generator init failed: %w", err)
		}
		return client, nil
	case "ollama":
		if cfg.Generator.Ollama == nil {
			return nil, fmt.Errorf("ollama generator config missing")
		}
		c := cfg.Generator.Ollama
		return ollama.NewClient(c.BaseURL, c.Model, time.Duration(c.TimeoutSecs)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown generator: %s", cfg.Generator.Type)
	}
}

// buildPipeline assembles the answering pipeline. trace receives the run
// transcript and logger the operational log.
func buildPipeline(cfg *config.AppConfig, trace io.Writer, logger *log.Logger) (*service.Pipeline, error) {
	ch, err := buildChunker(cfg)
	if err != nil {
		return nil, err
	}
	emb, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	gen, err := buildGenerator(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewPipeline(ch, emb, memory.NewStorage(), gen, service.Options{
		DataDir:          cfg.DataDir,
		TopK:             cfg.Retrieval.TopK,
		MaxContextTokens: cfg.Generator.MaxContextTokens,
		MaxNewTokens:     cfg.Generator.MaxNewTokens,
		FactExtractor:    cfg.Answer.FactExtractor,
		Trace:            trace,
		Logger:           logger,
	}), nil
}
