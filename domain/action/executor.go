package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrUnsupported is returned by platforms without a key driver.
var ErrUnsupported = errors.New("action: platform not supported")

// Key names a keyboard key understood by the drivers ("space", "down", "a").
type Key string

const (
	KeySpace Key = "space"
	KeyDown  Key = "down"
	KeyUp    Key = "up"
)

// ParseKey normalizes a key token from configuration.
func ParseKey(s string) (Key, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	switch k {
	case "space", "down", "up":
		return Key(k), nil
	}
	if len(k) == 1 && k[0] >= 'a' && k[0] <= 'z' {
		return Key(k), nil
	}
	return "", fmt.Errorf("action: unknown key %q", s)
}

// KeyDriver injects raw key transitions into the OS.
type KeyDriver interface {
	KeyDown(Key) error
	KeyUp(Key) error
}

// Executor performs momentary and held key actions on top of a KeyDriver and
// guarantees that every key it pressed is released again.
// Not safe for concurrent use; the sampling loop owns it.
type Executor struct {
	driver   KeyDriver
	logger   *slog.Logger
	tapDelay time.Duration
	held     map[Key]struct{}
}

// NewExecutor wraps driver. tapDelay is the press duration used by Tap.
func NewExecutor(driver KeyDriver, tapDelay time.Duration, logger *slog.Logger) *Executor {
	return &Executor{driver: driver, logger: logger, tapDelay: tapDelay, held: make(map[Key]struct{})}
}

// Tap presses and releases k.
func (e *Executor) Tap(ctx context.Context, k Key) error {
	return e.Hold(ctx, k, e.tapDelay)
}

// Hold presses k, waits d (or until ctx is done) and releases k. The release
// happens even when the wait is cut short.
func (e *Executor) Hold(ctx context.Context, k Key, d time.Duration) (err error) {
	if e == nil || e.driver == nil {
		return ErrUnsupported
	}
	if err := e.driver.KeyDown(k); err != nil {
		return fmt.Errorf("key down %s: %w", k, err)
	}
	e.held[k] = struct{}{}
	defer func() {
		if rerr := e.release(k); rerr != nil && err == nil {
			err = rerr
		}
	}()
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		if e.logger != nil {
			e.logger.Debug("hold interrupted", "key", string(k), "after_cancel", true)
		}
		return ctx.Err()
	}
}

// Driver returns the wrapped key driver.
func (e *Executor) Driver() KeyDriver {
	if e == nil {
		return nil
	}
	return e.driver
}

// Held reports the keys currently pressed by the executor.
func (e *Executor) Held() []Key {
	if e == nil {
		return nil
	}
	out := make([]Key, 0, len(e.held))
	for k := range e.held {
		out = append(out, k)
	}
	return out
}

// ReleaseAll releases every key still marked as held.
func (e *Executor) ReleaseAll() error {
	if e == nil || e.driver == nil {
		return nil
	}
	var errs []error
	for k := range e.held {
		if err := e.release(k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// release keeps k in the held set until KeyUp succeeds so ReleaseAll can
// retry it.
func (e *Executor) release(k Key) error {
	if err := e.driver.KeyUp(k); err != nil {
		if e.logger != nil {
			e.logger.Error("key release failed", "key", string(k), "error", err)
		}
		return fmt.Errorf("key up %s: %w", k, err)
	}
	delete(e.held, k)
	return nil
}
