package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avinashb/quizmind/internal/llm"
	"github.com/avinashb/quizmind/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizmind",
	Short: "Adaptive quiz engine with AI-generated questions and feedback",
	Long:  "QuizMind is an adaptive quiz engine that adjusts difficulty to your performance and generates novel questions and feedback with an LLM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZMIND_DB env var)")
	addQuizFlags(rootCmd)

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then QUIZMIND_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// newProvider builds the configured LLM provider. Without an API key it
// falls back to the mock provider so the quiz stays playable offline;
// the gateway's fallback paths cover the rest.
func newProvider(cmd *cobra.Command, events store.EventRepo) llm.Provider {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		} else {
			fmt.Fprintln(os.Stderr, "note: no LLM API key configured, AI content disabled")
			cfg.Provider = "mock"
		}
	}

	p, err := llm.NewProvider(cmd.Context(), cfg, events)
	if err != nil {
		fmt.Fprintf(os.Stderr, "note: LLM provider unavailable (%v), AI content disabled\n", err)
		p, _ = llm.NewProvider(cmd.Context(), llm.Config{Provider: "mock"}, events)
	}
	return p
}
