package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/nudge/internal/app"
	"github.com/abhisek/nudge/internal/geo"
	"github.com/abhisek/nudge/internal/logging"
	"github.com/abhisek/nudge/internal/scheduler"
	"github.com/abhisek/nudge/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the interactive dashboard (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI. Logs go
// to a file since the terminal belongs to the dashboard.
func runApp(cmd *cobra.Command) error {
	dir, err := store.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	logPath := filepath.Join(dir, "nudge.log")
	if err := store.EnsureDir(logPath); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := logging.OpenFile(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	d, err := openDeps(cmd, logFile)
	if err != nil {
		return err
	}
	defer d.Close()

	logging.FromCtx(d.ctx).Info().
		Dur("interval", d.cfg.TickInterval).
		Bool("ambient", d.engine.Snapshot().Ambient).
		Msg("dashboard starting")

	return app.Run(d.ctx, app.Options{
		Engine:    d.engine,
		Events:    d.events,
		Scheduler: scheduler.New(d.cfg.TickInterval),
		Locator:   geo.FromCoords(d.cfg.Coordinates()),
	})
}
