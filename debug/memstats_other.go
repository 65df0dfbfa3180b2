//go:build !windows && !linux

package debug

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var errRSSUnsupported = errors.New("debug: resident set size not supported on this platform")

// StartMemLogger logs Go heap stats every interval; rss is reported as 0.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	memLoop(ctx, interval, logger, func() (uint64, error) { return 0, errRSSUnsupported })
}
