package app

import (
	"context"
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/dino-bot-go/config"
	"github.com/soocke/dino-bot-go/ui/model"
	"github.com/soocke/dino-bot-go/ui/presenter"
	"github.com/soocke/dino-bot-go/ui/theme"
	"github.com/soocke/dino-bot-go/ui/view"
)

// app is the Tk debug window. The sampling loop runs on Tk's event thread:
// every tick is scheduled with TclAfter.
type app struct {
	c        *AppContainer
	ctx      context.Context
	cancel   context.CancelFunc
	interval time.Duration
	afterID  string
	closed   bool

	view    *view.RootView
	render  *presenter.RenderPresenter
	control *presenter.ControlPresenter
	loop    *presenter.Loop
}

func NewApp(ctx context.Context, title string, width, height int, c *AppContainer) *app {
	a := &app{c: c, interval: c.Config.SampleInterval()}
	a.ctx, a.cancel = context.WithCancel(ctx)
	if a.interval <= 0 {
		a.interval = time.Millisecond
	}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	theme.InitStyles(c.Config.Invert)
	return a
}

// Start builds the window, schedules the loop and blocks until the window is
// destroyed.
func (a *app) Start() {
	c := a.c
	a.view = view.NewRootView(c.Config, c.CfgPath, c.Logger)
	a.view.Build(config.ProfileNames(), view.Handlers{
		Toggle:  func() { a.control.Toggle() },
		Exit:    a.exitHandler,
		Apply:   a.applyConfig,
		Profile: a.applyProfile,
	})
	a.render = presenter.NewRenderPresenter(model.NewPreviewModel(c.Config.PreviewInterval()), a.view, a.view)
	c.Loop.AddRenderer(a.render)
	a.control = presenter.NewControlPresenter(c.Active, c.Loop, a.view)
	session := presenter.NewSessionPresenter(c.Session, c.Active, a.view)
	a.loop = presenter.NewLoop(func() { c.Loop.Step(a.ctx) }, a.render, session, a.scheduleUpdate)

	Bind(App, "<F1>", Command(func() { a.control.Toggle() }))
	Bind(App, "<Control-q>", Command(a.exitHandler))
	// plain q only while running; while paused it may be typed into the config panel
	Bind(App, "<KeyPress-q>", Command(func() {
		if a.c.Active.Active() {
			a.exitHandler()
		}
	}))
	Bind(App, "<Escape>", Command(func() { a.control.Disable() }))

	a.view.SetConfigEditable(true)
	a.scheduleUpdate()
	App.Wait()
}

func (a *app) update() {
	if a.closed {
		return
	}
	if a.ctx.Err() != nil {
		a.exitHandler()
		return
	}
	a.loop.Tick()
}

func (a *app) scheduleUpdate() {
	// TclAfter keeps the loop on Tk's event thread.
	a.afterID = TclAfter(a.interval, a.update)
}

func (a *app) applyConfig(cfg *config.Config) {
	if err := a.c.Reconfigure(cfg); err != nil {
		a.c.Logger.Error("apply config", "error", err)
		return
	}
	a.render.Reset()
}

func (a *app) applyProfile(name string) {
	if err := a.c.Config.ApplyProfile(name); err != nil {
		a.c.Logger.Error("apply profile", "profile", name, "error", err)
		return
	}
	a.c.Logger.Info("profile selected", "profile", name)
	a.applyConfig(a.c.Config)
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.cancel()
	a.c.Active.SetActive(false)
	if err := a.c.Close(); err != nil {
		a.c.Logger.Error("shutdown", "error", err)
	}
	logSummary(a.c)
	Destroy(App)
}
