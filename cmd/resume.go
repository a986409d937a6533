package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume SESSION_ID",
	Short: "Continue an unfinished session",
	Args:  cobra.ExactArgs(1),
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
		s, err := a.sessions.Resume(ctx, args[0], c)
		if err != nil {
			return err
		}
		if !s.IsActive() {
			return fmt.Errorf("session %s is already finished", s.ID())
		}
		return newPlayer(cmd.InOrStdin(), cmd.OutOrStdout(), a.sessions).Run(ctx, s)
	},
}

func init() {
	resumeCmd.Flags().String("course", "", "Path to the course JSON file the session was started with")
	_ = resumeCmd.MarkFlagRequired("course")
}
