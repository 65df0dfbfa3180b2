package presenter

// ActiveModel provides active state access.
type ActiveModel interface {
	Active() bool
	SetActive(bool) bool
}

// LoopControl narrows what the presenter needs from the sampling loop.
type LoopControl interface {
	Pause()
	Resume()
}

// ControlView updates UI elements affected by pausing and resuming.
type ControlView interface {
	PreviewReset()
	ConfigEditable(bool)
}

// ControlPresenter owns pause/resume. Resuming starts from a fresh Armed
// state; pausing releases held keys and unlocks the config panel.
type ControlPresenter struct {
	model ActiveModel
	loop  LoopControl
	view  ControlView
}

func NewControlPresenter(model ActiveModel, loop LoopControl, view ControlView) *ControlPresenter {
	return &ControlPresenter{model: model, loop: loop, view: view}
}

// Enable resumes the loop. Idempotent.
func (c *ControlPresenter) Enable() {
	if c == nil || c.model == nil || c.loop == nil || c.view == nil {
		return
	}
	if c.model.Active() {
		return
	}
	c.loop.Resume()
	c.model.SetActive(true)
	c.view.ConfigEditable(false)
}

// Disable pauses the loop and resets the preview. Idempotent.
func (c *ControlPresenter) Disable() {
	if c == nil || c.model == nil || c.loop == nil || c.view == nil {
		return
	}
	if !c.model.Active() {
		return
	}
	c.loop.Pause()
	c.model.SetActive(false)
	c.view.PreviewReset()
	c.view.ConfigEditable(true)
}

// Toggle flips the active state delegating to Enable/Disable.
func (c *ControlPresenter) Toggle() {
	if c == nil || c.model == nil {
		return
	}
	if c.model.Active() {
		c.Disable()
		return
	}
	c.Enable()
}
