package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/nudge/internal/engine"
)

var triggerCmd = &cobra.Command{
	Use:   "trigger <tag>",
	Short: "Queue a lesson for a tag right now, ignoring ambient mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer d.Close()

		item, queued, err := d.engine.Trigger(d.ctx, args[0])
		if errors.Is(err, engine.ErrEmptyTag) {
			return fmt.Errorf("%w: pass a tag such as one from `nudge tags`", err)
		}
		if err != nil {
			return err
		}

		l := item.Lesson
		if !queued {
			fmt.Printf("%s %s is already queued\n", l.Icon, l.Title)
			return nil
		}
		fmt.Printf("Queued %s %s (+%d XP)\n", l.Icon, l.Title, l.XP)
		fmt.Printf("  id: %s  mood: %s  tags: %v\n", l.ID, item.Context.Mood, item.Context.Tags)
		return nil
	},
}
