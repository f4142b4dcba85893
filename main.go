package main

import (
	"os"
	"sprout/internal/advisor"
	"sprout/internal/config"
	"sprout/internal/llm"
	"sprout/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	// Initialize logger
	debug := os.Getenv("DEBUG") == "true"
	logger.Initialize(debug)
	logger.Get().Debug().Bool("debug", debug).Msg("Logger initialized")

	if err := rootCmd().Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sprout",
		Short:         "Expert commentary on fruits, vegetables and houseplants from scripted LLM agents",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), "")
		},
	}
	root.AddCommand(serveCmd(), askCmd())
	return root
}

// loadConfig reads, defaults and validates the environment configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newAdvisor builds the model backend and the advisor on top of it
func newAdvisor(cfg *config.Config) (*advisor.Advisor, error) {
	model, err := llm.New(cfg)
	if err != nil {
		return nil, err
	}
	logger.Get().Info().
		Str("provider", cfg.Provider).
		Str("baseURL", cfg.BaseURL).
		Str("model", cfg.Model).
		Msg("Model backend configured")
	return advisor.New(model, cfg.Prompts), nil
}
