package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"rag/internal/config"
)

var (
	cfgPath string
	dataDir string
	noFacts bool
)

var rootCmd = &cobra.Command{
	Use:   "rag",
	Short: "Answer questions about a folder of text documents",
	Long: `rag loads the .txt files of a folder, indexes their passages and answers
questions from the most relevant ones, either directly from a numeric fact
or with a generative model conditioned on the retrieved context.

Without a subcommand it starts the interactive question loop.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./config.yaml or ~/.config/rag/config.yaml if not provided)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Folder of .txt documents (overrides data_dir)")
	rootCmd.PersistentFlags().BoolVar(&noFacts, "no-facts", false, "Disable the numeric fact short-circuit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(formCmd)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return chatCmd.RunE(cmd, args)
	}
}

// loadConfig resolves the config file and applies command-line overrides.
func loadConfig() *config.AppConfig {
	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if noFacts {
		cfg.Answer.FactExtractor = false
	}
	return cfg
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
