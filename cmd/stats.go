package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/nudge/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show persisted ambient state and lesson counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer d.Close()

		s := d.engine.Snapshot()
		ambient := "off"
		if s.Ambient {
			ambient = "on"
		}
		fmt.Printf("Ambient mode:  %s\n", ambient)
		fmt.Printf("Env tags:      %s\n", strings.Join(s.EnvTags, ", "))

		fmt.Println()
		fmt.Printf("%-22s  %s\n", "Lesson", "Seen")
		fmt.Println(strings.Repeat("─", 30))
		ids := make([]string, 0, len(s.Seen))
		for id := range s.Seen {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Printf("%-22s  %4d\n", id, s.Seen[id])
		}
		if len(ids) == 0 {
			fmt.Println("(nothing opened yet)")
		}

		if d.events == nil {
			return nil
		}
		counts, err := d.events.CountByKind(d.ctx)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		fmt.Println()
		fmt.Printf("Queued %d · opened %d · completed %d · resets %d\n",
			counts[store.EventEnqueued], counts[store.EventOpened],
			counts[store.EventCompleted], counts[store.EventReset])
		return nil
	},
}
