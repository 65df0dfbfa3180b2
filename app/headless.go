package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/dino-bot-go/domain/runner"
)

const statsLogInterval = 30 * time.Second

// RunHeadless runs the loop without a window until ctx is done.
func RunHeadless(ctx context.Context, c *AppContainer) error {
	var lastLog time.Time
	c.Loop.AddRenderer(runner.RendererFunc(func(rep runner.TickReport) {
		if rep.Now.Sub(lastLog) < statsLogInterval {
			return
		}
		lastLog = rep.Now
		c.Session.OnTick(c.Active.Active(), rep.Now)
		st := c.Session.Stats()
		c.Logger.Info("run.stats",
			"session", st.Session.Round(time.Second).String(),
			"jumps", st.Jumps,
			"drops", st.Drops,
			"ticks", humanize.Comma(int64(st.Ticks)),
			"avg_tick", st.AvgTick.String(),
		)
	}))
	c.Start()
	c.Session.OnTick(true, time.Now())
	c.Logger.Info("headless loop started", "interval", c.Config.SampleInterval())

	err := c.Loop.Run(ctx)
	c.Active.SetActive(false)
	if cerr := c.Close(); cerr != nil {
		c.Logger.Error("shutdown", "error", cerr)
	}
	logSummary(c)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// logSummary writes the run counters at exit.
func logSummary(c *AppContainer) {
	c.Session.OnTick(false, time.Now())
	st := c.Session.Stats()
	c.Logger.Info("run.summary",
		slog.Duration("total", st.Total.Round(time.Second)),
		slog.String("ticks", humanize.Comma(int64(st.Ticks))),
		slog.Uint64("detections", st.Detections),
		slog.Uint64("jumps", st.Jumps),
		slog.Uint64("drops", st.Drops),
		slog.Uint64("stalls", st.Stalls),
		slog.Uint64("errors", st.Errors),
		slog.Duration("avg_tick", st.AvgTick),
		slog.Any("capture", c.Source.Stats()),
	)
}
