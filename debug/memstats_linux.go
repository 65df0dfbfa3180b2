//go:build linux

package debug

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/procfs"
)

// StartMemLogger logs the resident set size with Go heap stats every interval.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	memLoop(ctx, interval, logger, residentSet)
}

func residentSet() (uint64, error) {
	p, err := procfs.Self()
	if err != nil {
		return 0, fmt.Errorf("procfs self: %w", err)
	}
	stat, err := p.Stat()
	if err != nil {
		return 0, fmt.Errorf("procfs stat: %w", err)
	}
	return uint64(stat.ResidentMemory()), nil
}
