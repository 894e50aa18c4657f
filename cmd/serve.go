package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avinashb/quizmind/internal/aigen"
	"github.com/avinashb/quizmind/internal/bank"
	"github.com/avinashb/quizmind/internal/httpapi"
	"github.com/avinashb/quizmind/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz engine as an HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}

func runServe(cmd *cobra.Command) error {
	// Best effort: a missing .env file is fine.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	st := openStore(cmd)
	cfg := session.Config{Logger: logger}
	var gateway *aigen.Gateway
	if st != nil {
		defer st.Close()
		cfg.Attempts = st.AttemptRepo()
		gateway = aigen.New(newProvider(cmd, st.EventRepo()), aigen.DefaultConfig())
	} else {
		gateway = aigen.New(newProvider(cmd, nil), aigen.DefaultConfig())
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cfg.Strategy = bank.NewWeighted(rng)
	cfg.Profile = loadProfile().Context()

	b := bank.Builtin()
	manager := session.NewManager(b, gateway, cfg)

	addr, _ := cmd.Flags().GetString("addr")
	return httpapi.New(manager, b, logger).Run(addr)
}
