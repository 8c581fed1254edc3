package storage

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

const probeKey = "__storage_test__"

// Adapter guards a KV backend behind an availability probe taken once at
// construction. When the probe fails every operation is a no-op.
type Adapter struct {
	kv        KV
	available bool
	logger    zerolog.Logger
}

func NewAdapter(ctx context.Context, kv KV, logger zerolog.Logger) *Adapter {
	a := &Adapter{kv: kv, logger: logger}
	a.available = a.probe(ctx)
	if !a.available {
		logger.Warn().Msg("local storage is not available, persistence disabled")
	}
	return a
}

func (a *Adapter) probe(ctx context.Context) bool {
	if a.kv == nil {
		return false
	}
	if err := a.kv.Set(ctx, probeKey, []byte(probeKey)); err != nil {
		a.logger.Debug().Err(err).Msg("storage probe write failed")
		return false
	}
	if err := a.kv.Delete(ctx, probeKey); err != nil {
		a.logger.Debug().Err(err).Msg("storage probe delete failed")
		return false
	}
	return true
}

func (a *Adapter) Available() bool {
	return a.available
}

// Get returns the stored value, or false when the key is absent, storage
// is unavailable or the read fails.
func (a *Adapter) Get(ctx context.Context, key string) ([]byte, bool) {
	if !a.available {
		return nil, false
	}
	v, err := a.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			a.logger.Error().Err(err).Str("key", key).Msg("failed to read local storage")
		}
		return nil, false
	}
	return v, true
}

func (a *Adapter) Set(ctx context.Context, key string, value []byte) bool {
	if !a.available {
		return false
	}
	if err := a.kv.Set(ctx, key, value); err != nil {
		a.logger.Error().Err(err).Str("key", key).Msg("failed to save to local storage")
		return false
	}
	return true
}

func (a *Adapter) Remove(ctx context.Context, key string) bool {
	if !a.available {
		return false
	}
	if err := a.kv.Delete(ctx, key); err != nil {
		a.logger.Error().Err(err).Str("key", key).Msg("failed to remove from local storage")
		return false
	}
	return true
}
