package main

import (
	"context"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"rag/internal/tui"
	"rag/internal/watch"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the question form",
	Long: `Open a terminal form with a single question field and a scrolling
output log. Enter submits the question, Esc or Ctrl+C exits.

Set RAG_DEBUG=1 to write log output to rag-debug.log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		logger := log.New(io.Discard, "", 0)
		if os.Getenv("RAG_DEBUG") != "" {
			f, err := tea.LogToFile("rag-debug.log", "rag")
			if err != nil {
				log.Fatalf("failed to open debug log: %v", err)
			}
			defer f.Close()
			logger = log.Default()
		}

		p, err := buildPipeline(cfg, io.Discard, logger)
		if err != nil {
			log.Fatalf("failed to build pipeline: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		opts := tui.Options{Context: ctx}
		if w, err := watch.New(logger); err == nil {
			defer w.Close()
			if events, err := w.Watch(ctx, cfg.DataDir); err == nil {
				opts.Events = events
			} else {
				logger.Printf("[warn] op=watch dir=%s err=%v", cfg.DataDir, err)
			}
		}

		if _, err := tea.NewProgram(tui.New(p, opts), tea.WithAltScreen()).Run(); err != nil {
			log.Fatal(err)
		}
		return nil
	},
}
