package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/nudge/internal/config"
	"github.com/abhisek/nudge/internal/engine"
	"github.com/abhisek/nudge/internal/logging"
	"github.com/abhisek/nudge/internal/metrics"
	"github.com/abhisek/nudge/internal/store"
)

// dotenvFile is read from the working directory if present.
const dotenvFile = ".env"

// deps bundles what every command needs: config, a logger-carrying
// context, the persistence backend and an engine restored from it.
type deps struct {
	ctx     context.Context
	cfg     *config.Config
	engine  *engine.Engine
	events  store.EventRepo
	metrics *metrics.Metrics

	closers []func()
}

// openDeps loads config, installs the logger writing to logOut and opens
// the configured backend. The caller must Close the deps.
func openDeps(cmd *cobra.Command, logOut io.Writer) (*deps, error) {
	cfg, err := config.Load(dotenvFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug, _ = cmd.Flags().GetBool("debug")
	}

	ctx, flush := logging.NewContextWithLogger(cmd.Context(), cfg.Debug, logOut)
	rt := &deps{ctx: ctx, cfg: cfg, metrics: metrics.New()}
	rt.closers = append(rt.closers, flush)

	kv, err := rt.openBackend(cmd)
	if err != nil {
		rt.Close()
		return nil, err
	}

	logger := logging.FromCtx(ctx)
	ambientCfg := cfg.AmbientBuilderConfig()
	rt.engine = engine.New(ctx, engine.Options{
		Prefs:   store.NewPrefs(kv, *logger),
		Events:  rt.events,
		Metrics: rt.metrics,
		Logger:  *logger,
		Ambient: &ambientCfg,
	})
	return rt, nil
}

// openBackend picks the KV store: memory when --ephemeral, Redis when
// NUDGE_REDIS_URL is set, SQLite otherwise. The event log always lives in
// SQLite unless running ephemeral.
func (rt *deps) openBackend(cmd *cobra.Command) (store.KV, error) {
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		logging.FromCtx(rt.ctx).Debug().Msg("using in-memory state")
		return store.NewMemoryKV(), nil
	}

	dbPath, err := resolveDBPath(cmd, rt.cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(rt.ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.closers = append(rt.closers, func() { st.Close() })
	rt.events = st.EventRepo()

	if rt.cfg.RedisURL == "" {
		logging.FromCtx(rt.ctx).Debug().Str("path", dbPath).Msg("using sqlite state")
		return st.KV(), nil
	}

	rkv, err := store.OpenRedis(rt.ctx, rt.cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("open redis: %w", err)
	}
	rt.closers = append(rt.closers, func() { rkv.Close() })
	logging.FromCtx(rt.ctx).Debug().Msg("using redis state")
	return rkv, nil
}

// Close releases resources in reverse order of acquisition.
func (rt *deps) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}
