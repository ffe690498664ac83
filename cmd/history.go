package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/nudge/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent lesson events",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer d.Close()

		if d.events == nil {
			return fmt.Errorf("no event log in ephemeral mode")
		}

		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit, Kind: store.EventKind(kind)}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		events, err := d.events.RecentLessonEvents(d.ctx, opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		fmt.Printf("%-19s  %-9s  %-20s  %5s  %s\n", "Time", "Kind", "Lesson", "XP", "Context")
		fmt.Println(strings.Repeat("─", 90))
		for _, ev := range events {
			xp := ""
			if ev.XP > 0 {
				xp = fmt.Sprintf("+%d", ev.XP)
			}
			fmt.Printf("%-19s  %-9s  %-20s  %5s  %s\n",
				ev.Timestamp.Local().Format(time.DateTime), ev.Kind, ev.LessonID, xp, ev.Context)
		}
		fmt.Printf("\n%d events\n", len(events))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum events to show (0 = all)")
	historyCmd.Flags().String("kind", "", "Only show one kind (enqueued, opened, completed, reset)")
	historyCmd.Flags().Duration("since", 0, "Only show events newer than this (e.g. 24h)")
}
