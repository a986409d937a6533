package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/aprende/internal/session"
	"github.com/abhisek/aprende/internal/store"
	"github.com/abhisek/aprende/internal/ui/components"
	"github.com/abhisek/aprende/internal/ui/theme"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List, inspect and delete stored sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := st.Sessions().List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCOURSE\tSTRATEGY\tSTARTED\tSTATUS\tDONE\tACCURACY\tSCORE")
		for _, s := range list {
			status := "finished"
			if s.Active() {
				status = "open"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.0f%%\t%.0f%%\t%d\n",
				s.ID, s.CourseID, s.Strategy, s.StartTime.Local().Format(time.DateTime),
				status, s.Completion, s.Accuracy, s.Score)
		}
		return w.Flush()
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show SESSION_ID",
	Short: "Show one session with its answer history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sn, err := st.Sessions().FindByID(ctx, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		lipgloss.Fprintln(out, snapshotCard(sn).View())

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tBLOCK\tQUESTION\tTYPE\tRESULT\tATTEMPTS\tHINTS\tTIME")
		for i, r := range sn.Records {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
				i+1, r.BlockID, r.QuestionID, r.QuestionType, r.Result, r.Attempts, r.HintsUsed,
				components.FormatDuration(r.TimeSpent))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if showEvents, _ := cmd.Flags().GetBool("events"); showEvents {
			events, err := st.Events().AnswerEvents(ctx, sn.ID, store.QueryOpts{})
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			lipgloss.Fprintln(out, theme.Label.Render("Answer events"))
			for _, ev := range events {
				fmt.Fprintf(out, "%6d  %s  %-10s %-9s attempt %d  %q\n",
					ev.Sequence, ev.At.Local().Format(time.TimeOnly), ev.QuestionID, ev.Result, ev.Attempt, ev.Answer)
			}
		}
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete SESSION_ID",
	Short: "Delete a session and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Sessions().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted", args[0])
		return nil
	},
}

func init() {
	sessionsListCmd.Flags().Int("limit", 20, "Maximum sessions to list (0 = all)")
	sessionsShowCmd.Flags().Bool("events", false, "Also print the answer event log")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}

func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(appLog))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func snapshotCard(sn session.Snapshot) components.SummaryCard {
	sum := session.Summarize(sn)
	status := "finished"
	if sum.Active() {
		status = "open"
	}
	return components.SummaryCard{
		Title:    "Session " + sn.ID,
		Progress: sn.Completion,
		Rows: []components.StatRow{
			{Label: "Course", Value: sn.CourseID},
			{Label: "Strategy", Value: sum.Strategy},
			{Label: "Status", Value: status},
			{Label: "Started", Value: sn.StartTime.Local().Format(time.DateTime)},
			{Label: "Answered", Value: fmt.Sprintf("%d of %d records", sum.Answered, sum.Records)},
			{Label: "Accuracy", Value: fmt.Sprintf("%.0f%%", sn.Accuracy)},
			{Label: "Best streak", Value: strconv.Itoa(sn.BestStreak)},
			{Label: "Score", Value: strconv.Itoa(sn.Score)},
			{Label: "Time", Value: components.FormatDuration(sum.Duration())},
		},
	}
}
