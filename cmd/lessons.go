package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/nudge/internal/catalog"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List the lesson catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("tag")

		var lessons []catalog.Lesson
		for _, l := range catalog.Default().All() {
			if tag == "" || slices.Contains(l.Tags, tag) {
				lessons = append(lessons, l)
			}
		}
		if len(lessons) == 0 {
			return fmt.Errorf("no lessons tagged %q", tag)
		}

		fmt.Printf("%-20s  %-26s  %4s  %s\n", "ID", "Title", "XP", "Tags")
		fmt.Println(strings.Repeat("─", 90))
		for _, l := range lessons {
			title := l.Title
			if len(title) > 26 {
				title = title[:23] + "..."
			}
			fmt.Printf("%-20s  %-26s  %4d  %s\n", l.ID, title, l.XP, strings.Join(l.Tags, ", "))
		}

		fmt.Printf("\n%d lessons\n", len(lessons))
		return nil
	},
}

func init() {
	lessonsCmd.Flags().String("tag", "", "Only list lessons carrying this tag")
}
