package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/aprende/internal/strategy"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session over a course file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		coursePath, _ := cmd.Flags().GetString("course")

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.loader.LoadFile(coursePath)
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}

		opts := strategy.Options{Stride: cfg.SpacedStride}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			opts = opts.WithSeed(seed)
		}
		s, err := a.sessions.Start(ctx, c, cfg.DefaultStrategy, opts)
		if err != nil {
			return err
		}
		return newPlayer(cmd.InOrStdin(), cmd.OutOrStdout(), a.sessions).Run(ctx, s)
	},
}

func init() {
	playCmd.Flags().String("course", "", "Path to a course JSON file")
	playCmd.Flags().String("strategy", "", "Question order: sequential, random or spaced")
	playCmd.Flags().Int64("seed", 0, "Seed for the random strategy")
	playCmd.Flags().Int("stride", 0, "Stride for the spaced strategy")
	_ = playCmd.MarkFlagRequired("course")
}
