package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"rag/internal/cli"
	"rag/internal/validate"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions in an interactive loop (type 'exit' to quit)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		p, err := buildPipeline(cfg, cmd.OutOrStdout(), log.New(io.Discard, "", 0))
		if err != nil {
			log.Fatalf("failed to build pipeline: %v", err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = cli.Loop(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), p)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

var askCmd = &cobra.Command{
	Use:   "ask QUESTION...",
	Short: "Answer a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		p, err := buildPipeline(cfg, cmd.OutOrStdout(), log.Default())
		if err != nil {
			log.Fatalf("failed to build pipeline: %v", err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = cli.AskOnce(ctx, cmd.OutOrStdout(), p, strings.Join(args, " "))
		var verr *validate.Error
		if errors.As(err, &verr) {
			os.Exit(2)
		}
		return err
	},
}
