package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Prefs stores JSON-encoded values on top of a KV. Every operation is best
// effort: failures are logged at debug level and never returned, so the
// caller's in-memory state stays authoritative.
type Prefs struct {
	kv     KV
	logger zerolog.Logger
}

// NewPrefs wraps kv.
func NewPrefs(kv KV, logger zerolog.Logger) *Prefs {
	return &Prefs{kv: kv, logger: logger}
}

// Get decodes the value stored under key, or returns fallback when the key
// is missing, unreadable or undecodable.
func Get[T any](ctx context.Context, p *Prefs, key string, fallback T) T {
	raw, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		p.logger.Debug().Err(err).Str("key", key).Msg("prefs read failed")
		return fallback
	}
	if !ok {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		p.logger.Debug().Err(err).Str("key", key).Msg("prefs decode failed")
		return fallback
	}
	return v
}

// Set encodes and stores value under key.
func (p *Prefs) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		p.logger.Debug().Err(err).Str("key", key).Msg("prefs encode failed")
		return
	}
	if err := p.kv.Set(ctx, key, raw); err != nil {
		p.logger.Debug().Err(err).Str("key", key).Msg("prefs write failed")
	}
}

// Clear removes keys.
func (p *Prefs) Clear(ctx context.Context, keys ...string) {
	if err := p.kv.Delete(ctx, keys...); err != nil {
		p.logger.Debug().Err(err).Strs("keys", keys).Msg("prefs clear failed")
	}
}
