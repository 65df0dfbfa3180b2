package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/soocke/dino-bot-go/config"
	"github.com/soocke/dino-bot-go/domain/action"
	"github.com/soocke/dino-bot-go/domain/capture"
	"github.com/soocke/dino-bot-go/domain/runner"
	"github.com/soocke/dino-bot-go/metrics"
	"github.com/soocke/dino-bot-go/ui/model"
)

// AppContainer assembles the services and models shared by the Tk and
// headless front ends.
type AppContainer struct {
	Config   *config.Config
	CfgPath  string
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Source   *capture.ScreenSource
	Executor *action.Executor
	Stall    *capture.StallDetector
	Focus    *runner.FocusGate
	Loop     *runner.Loop
	Active   *model.ActiveModel
	Session  *model.SessionModel
}

// BuildContainer constructs all components. The loop starts paused; the
// front end resumes it. m may be nil.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, m *metrics.Metrics) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger, Metrics: m}
	c.Active = &model.ActiveModel{}
	c.Session = model.NewSessionModel()

	rect := cfg.GameRect()
	if err := capture.ValidateRect(rect); err != nil {
		return nil, err
	}
	src, err := capture.NewScreenSource(rect, logger)
	if err != nil {
		return nil, err
	}
	c.Source = src

	driver, err := action.DefaultDriver()
	switch {
	case errors.Is(err, action.ErrUnsupported):
		// preview and snapshots still work; every key action fails and is counted
		logger.Warn("no key driver on this platform", "error", err)
	case err != nil:
		return nil, fmt.Errorf("key driver: %w", err)
	}
	c.Executor = action.NewExecutor(driver, cfg.TapDuration(), logger)
	c.Stall = capture.NewStallDetector(cfg.StallTicks)
	c.Focus = runner.NewFocusGate(cfg.WindowTitle, nil, logger)

	params, err := runner.ParamsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	deps := runner.Deps{
		Source:    c.Source,
		Actions:   c.Executor,
		Renderers: []runner.Renderer{runner.RendererFunc(c.Session.Observe)},
		Gate:      c.Focus,
		Stall:     c.Stall,
		Logger:    logger,
	}
	if m != nil {
		deps.Metrics = m
	}
	c.Loop, err = runner.NewLoop(params, deps)
	if err != nil {
		return nil, err
	}
	c.Loop.Pause()
	logger.Info("container ready",
		"profile", cfg.Profile,
		"game_rect", rect.String(),
		"roi", params.ROI.Rect().String(),
		"window_title", cfg.WindowTitle,
	)
	return c, nil
}

// Reconfigure applies an edited config to the loop and the focus gate.
func (c *AppContainer) Reconfigure(cfg *config.Config) error {
	params, err := runner.ParamsFromConfig(cfg)
	if err != nil {
		return err
	}
	c.Loop.Reconfigure(params)
	c.Focus = runner.NewFocusGate(cfg.WindowTitle, nil, c.Logger)
	c.Loop.SetGate(c.Focus)
	return nil
}

// Start resumes acting.
func (c *AppContainer) Start() {
	c.Loop.Resume()
	c.Active.SetActive(true)
}

// Close releases held keys and closes the key driver when it supports it.
func (c *AppContainer) Close() error {
	err := c.Loop.Shutdown()
	if cl, ok := c.Executor.Driver().(interface{ Close() error }); ok {
		if cerr := cl.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
