package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soocke/dino-bot-go/app"
	"github.com/soocke/dino-bot-go/config"
	"github.com/soocke/dino-bot-go/debug"
	"github.com/soocke/dino-bot-go/metrics"
)

func main() { os.Exit(run()) }

func run() int {
	cfgPath := flag.String("config", "dino-bot.json", "path to the JSON config file")
	profile := flag.String("profile", "", "built-in profile to apply (classic, lookahead, adaptive, night)")
	invert := flag.Bool("invert", false, "treat light pixels as obstacles (night mode)")
	headless := flag.Bool("headless", false, "run without the Tk window")
	debugLog := flag.Bool("debug", false, "debug logging and runtime loggers")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address")
	snapshot := flag.String("snapshot", "", "write one annotated frame to this PNG and exit")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	level := slog.LevelInfo
	if *debugLog {
		level = slog.LevelDebug
	}
	logger := NewSessionLogger(level)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Error("load config", "path", *cfgPath, "error", err)
		return 1
	}
	if *profile != "" {
		if err := cfg.ApplyProfile(*profile); err != nil {
			logger.Error("apply profile", "profile", *profile, "error", err)
			return 1
		}
	}
	if set["invert"] {
		cfg.Invert = *invert
	}
	if set["metrics-addr"] {
		cfg.MetricsAddr = *metricsAddr
	}
	if *debugLog {
		cfg.Debug = true
	}
	if cfg.Debug && !*debugLog {
		logger = NewSessionLogger(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		m = metrics.New()
		go func() {
			defer debug.RecoverLog(logger, "metrics server panic")
			if err := m.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("metrics server", "error", err)
			}
		}()
	}
	if cfg.Debug {
		debug.StartGoroutineLogger(ctx, 10*time.Second, logger)
		debug.StartMemLogger(ctx, 10*time.Second, logger)
	}

	c, err := app.BuildContainer(cfg, *cfgPath, logger, m)
	if err != nil {
		logger.Error("startup", "error", err)
		return 1
	}

	switch {
	case *snapshot != "":
		if !startDelay(ctx, cfg.StartDelay(), logger) {
			return 0
		}
		if err := app.Snapshot(ctx, c, *snapshot); err != nil {
			logger.Error("snapshot", "error", err)
			return 1
		}
	case *headless:
		if !startDelay(ctx, cfg.StartDelay(), logger) {
			return 0
		}
		if err := app.RunHeadless(ctx, c); err != nil {
			logger.Error("loop", "error", err)
			return 1
		}
	default:
		app.NewApp(ctx, "Dino Bot", 760, 900, c).Start()
	}
	return 0
}

// startDelay gives the user time to focus the game. It reports false when
// ctx ends first.
func startDelay(ctx context.Context, d time.Duration, logger *slog.Logger) bool {
	if d <= 0 {
		return true
	}
	logger.Info("starting soon, focus the game window", "delay", d)
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
