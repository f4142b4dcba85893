package main

import (
	"context"
	"encoding/json"
	"io"
	"sprout/internal/advisor"
	"strings"

	"github.com/spf13/cobra"
)

func askCmd() *cobra.Command {
	var fruitOnly bool
	cmd := &cobra.Command{
		Use:   "ask <name>",
		Short: "Ask the experts about one item and print the JSON answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			adv, err := newAdvisor(cfg)
			if err != nil {
				return err
			}

			// Each model call is bounded by cfg.Timeout on its own.
			return ask(cmd.Context(), adv, strings.Join(args, " "), fruitOnly, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&fruitOnly, "fruit", false, "skip classification and consult the botanist and meal planner")
	return cmd
}

func ask(ctx context.Context, adv *advisor.Advisor, name string, fruitOnly bool, out io.Writer) error {
	var (
		result any
		err    error
	)
	if fruitOnly {
		result, err = adv.FruitChat(ctx, name)
	} else {
		result, err = adv.Chat(ctx, name)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
