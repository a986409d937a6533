package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete stored sessions, keeping the most recent ones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "Delete all sessions except the %d most recent? [y/N] ", keep)
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if ok, _ := parseYesNo(strings.TrimSpace(line)); !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.Sessions().Prune(cmd.Context(), keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d session(s).\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Int("keep", 0, "Number of most recent sessions to keep")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
