package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List or edit environment tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer d.Close()

		printTags(d.engine.Snapshot().EnvTags)
		return nil
	},
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <tag>...",
	Short: "Add environment tags",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTags(cmd, args, true)
	},
}

var tagsRmCmd = &cobra.Command{
	Use:     "rm <tag>...",
	Aliases: []string{"remove"},
	Short:   "Remove environment tags",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTags(cmd, args, false)
	},
}

func editTags(cmd *cobra.Command, tags []string, add bool) error {
	d, err := openDeps(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer d.Close()

	for _, t := range tags {
		var changed bool
		if add {
			changed = d.engine.AddTag(d.ctx, t)
		} else {
			changed = d.engine.RemoveTag(d.ctx, t)
		}
		if !changed {
			fmt.Fprintf(os.Stderr, "skipped %q\n", t)
		}
	}
	printTags(d.engine.Snapshot().EnvTags)
	return nil
}

func printTags(tags []string) {
	if len(tags) == 0 {
		fmt.Println("(no environment tags)")
		return
	}
	fmt.Println(strings.Join(tags, ", "))
}

func init() {
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsRmCmd)
}
