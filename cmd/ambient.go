package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var ambientCmd = &cobra.Command{
	Use:       "ambient [on|off]",
	Short:     "Show or set ambient mode",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer d.Close()

		if len(args) == 1 {
			d.engine.SetAmbient(d.ctx, args[0] == "on")
		}

		if d.engine.Snapshot().Ambient {
			fmt.Println("Ambient mode is on")
		} else {
			fmt.Println("Ambient mode is off")
		}
		return nil
	},
}
