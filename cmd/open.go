package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/nudge/internal/engine"
)

var openCmd = &cobra.Command{
	Use:   "open <lesson-id>",
	Short: "Open a lesson directly and credit its XP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer d.Close()

		l, err := d.engine.Open(d.ctx, args[0])
		if errors.Is(err, engine.ErrUnknownLesson) {
			return fmt.Errorf("%w (see `nudge lessons`)", err)
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s\n", l.Icon, l.Title)
		fmt.Println(strings.Repeat("─", 60))
		fmt.Println(l.Body)
		fmt.Println()

		p := d.engine.Snapshot().Profile
		fmt.Printf("+%d XP  (total %d, streak %d)\n", l.XP, p.XP, p.Streak)

		if done, _ := cmd.Flags().GetBool("complete"); done {
			if _, err := d.engine.Complete(d.ctx); err != nil {
				return err
			}
			fmt.Println("Marked complete.")
		}
		return nil
	},
}

func init() {
	openCmd.Flags().Bool("complete", false, "Mark the lesson complete after showing it")
}
