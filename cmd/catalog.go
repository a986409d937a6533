package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/aprende/internal/content"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the question selection strategies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := newCatalog()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, m := range cat.strategies.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Icon, m.Name, m.DisplayName, m.Description)
		}
		return w.Flush()
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the question types a course may use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := newCatalog()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, tag := range cat.factory.SupportedTypes() {
			p, err := cat.factory.Provider(tag)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\n", tag, p.DisplayName())
		}
		return w.Flush()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Validate course files without starting a session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := newCatalog()
		if err != nil {
			return err
		}
		failed := 0
		for _, path := range args {
			c, err := cat.loader.LoadFile(path)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok   %s: %q, %d blocks, %d questions (format %s)\n",
				path, c.Title, len(c.Blocks()), c.QuestionCount(), content.SupportedMajor)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d course files failed validation", failed, len(args))
		}
		return nil
	},
}
