// Package dispatch routes resource operations either to the local services
// or to a remote gateway, with sequential remote-to-local fallback. The mode
// is fixed at composition time; individual calls never choose a backend.
package dispatch

import (
	"context"
	"time"

	"github.com/solara-studio/backoffice/internal/metrics"
	"github.com/solara-studio/backoffice/pkg/logger"
)

// Mode selects the primary backend.
type Mode string

const (
	// ModeLocal runs every operation against the local services.
	ModeLocal Mode = "local"
	// ModeRemote tries the gateway first, then falls back to the local
	// services when the gateway call fails.
	ModeRemote Mode = "remote"
)

// DefaultRemoteTimeout bounds a single gateway attempt.
const DefaultRemoteTimeout = 10 * time.Second

// Dispatcher holds the routing decision shared by all resource facades.
type Dispatcher struct {
	mode          Mode
	remoteTimeout time.Duration
	fallback      bool
	log           *logger.Logger
}

// New creates a dispatcher with fallback enabled. remoteTimeout <= 0 selects
// DefaultRemoteTimeout.
func New(mode Mode, remoteTimeout time.Duration, log *logger.Logger) *Dispatcher {
	if remoteTimeout <= 0 {
		remoteTimeout = DefaultRemoteTimeout
	}
	if log == nil {
		log = logger.NewDefault("dispatch")
	}
	return &Dispatcher{mode: mode, remoteTimeout: remoteTimeout, fallback: true, log: log}
}

// DisableFallback makes a remote failure the final outcome of a call; the
// local thunk never runs in remote mode.
func (d *Dispatcher) DisableFallback() { d.fallback = false }

// Mode reports the configured routing mode.
func (d *Dispatcher) Mode() Mode { return d.mode }

// Call runs one operation. In local mode only the local thunk runs. In
// remote mode the remote thunk runs exactly once under the remote timeout;
// if it fails the local thunk runs and its outcome is final, unless fallback
// is disabled, in which case the remote error is returned as-is.
func Call[T any](ctx context.Context, d *Dispatcher, operation string, remote, local func(ctx context.Context) (T, error)) (T, error) {
	if d.mode != ModeRemote || remote == nil {
		return local(ctx)
	}

	remoteCtx, cancel := context.WithTimeout(ctx, d.remoteTimeout)
	result, err := remote(remoteCtx)
	cancel()
	if err == nil {
		return result, nil
	}
	if !d.fallback {
		return result, err
	}

	metrics.RecordFallback(operation)
	d.log.WithError(err).WithField("operation", operation).Warn("gateway call failed, using local services")
	return local(ctx)
}

// CallErr is Call for operations that return only an error.
func CallErr(ctx context.Context, d *Dispatcher, operation string, remote, local func(ctx context.Context) error) error {
	_, err := Call(ctx, d, operation, wrap(remote), wrap(local))
	return err
}

func wrap(fn func(ctx context.Context) error) func(ctx context.Context) (struct{}, error) {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}
}
