package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-question accuracy across all sessions of a course",
	Args:  cobra.NoArgs,
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

		events := a.store.Events()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BLOCK\tQUESTION\tTYPE\tANSWERS\tACCURACY")
		for _, b := range c.Blocks() {
			for _, q := range b.Questions() {
				acc, n, err := events.QuestionAccuracy(ctx, q.ID())
				if err != nil {
					return err
				}
				accText := "-"
				if n > 0 {
					accText = fmt.Sprintf("%.0f%%", acc*100)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", b.ID, q.ID(), q.Type(), n, accText)
			}
		}
		return w.Flush()
	},
}

func init() {
	statsCmd.Flags().String("course", "", "Path to a course JSON file")
	_ = statsCmd.MarkFlagRequired("course")
}
