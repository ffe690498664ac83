package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/nudge/internal/engine"
	"github.com/abhisek/nudge/internal/geo"
	"github.com/abhisek/nudge/internal/logging"
	"github.com/abhisek/nudge/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the ambient loop headless and log every queued lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx, stop := signal.NotifyContext(d.ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger := logging.FromCtx(ctx)

		interval := d.cfg.TickInterval
		if cmd.Flags().Changed("interval") {
			interval, _ = cmd.Flags().GetDuration("interval")
		}
		if interval <= 0 {
			return fmt.Errorf("--interval must be positive, got %s", interval)
		}

		if force, _ := cmd.Flags().GetBool("force"); force {
			d.engine.SetAmbient(ctx, true)
		}
		if !d.engine.Snapshot().Ambient {
			logger.Warn().Msg("ambient mode is off; nothing will be queued until it is turned on (nudge ambient on)")
		}

		d.engine.Subscribe(func(ev engine.Event) {
			if ev.Type == engine.EventLocated && ev.State.Coords != nil {
				logger.Info().
					Float64("lat", ev.State.Coords.Lat).
					Float64("lon", ev.State.Coords.Lon).
					Msg("position known")
			}
		})

		addr, _ := cmd.Flags().GetString("metrics-addr")
		if addr == "" {
			addr = d.cfg.MetricsAddr
		}
		metricsDone := make(chan struct{})
		if addr != "" {
			go func() {
				defer close(metricsDone)
				logger.Info().Str("addr", addr).Msg("serving metrics")
				if err := d.metrics.Serve(ctx, addr); err != nil {
					logger.Error().Err(err).Msg("metrics server failed")
				}
			}()
		} else {
			close(metricsDone)
		}

		d.engine.Locate(ctx, geo.FromCoords(d.cfg.Coordinates()))
		detach := d.engine.Attach(ctx, scheduler.New(interval))

		logger.Info().Dur("interval", interval).Msg("watching")
		<-ctx.Done()

		detach()
		<-metricsDone
		logger.Info().Int("queued", d.engine.Snapshot().Queue.Len()).Msg("stopped")
		return nil
	},
}

func init() {
	watchCmd.Flags().Duration("interval", 0, "Tick interval (overrides NUDGE_TICK_INTERVAL)")
	watchCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (overrides NUDGE_METRICS_ADDR)")
	watchCmd.Flags().Bool("force", false, "Turn ambient mode on before watching")
}
