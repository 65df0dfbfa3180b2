package presenter

import (
	"fmt"
	"image"
	"time"

	"github.com/soocke/dino-bot-go/domain/runner"
	"github.com/soocke/dino-bot-go/ui/images"
	"github.com/soocke/dino-bot-go/ui/model"
)

// Status classifies the state label.
type Status string

const (
	StatusArmed    Status = "armed"
	StatusDisarmed Status = "disarmed"
	StatusGated    Status = "gated"
	StatusStalled  Status = "stalled"
)

// PreviewView shows the annotated frame and the ROI strip.
type PreviewView interface {
	UpdateCapture(img image.Image)
	UpdateDetection(img image.Image)
}

// StateView shows the controller state.
type StateView interface {
	SetStateLabel(text string, status Status)
}

// RenderPresenter is the loop's Renderer for the Tk window. Render only
// records; Tick pushes to the views at the preview rate.
type RenderPresenter struct {
	preview   *model.PreviewModel
	view      PreviewView
	state     StateView
	label     string
	status    Status
	lastLabel string
}

var _ runner.Renderer = (*RenderPresenter)(nil)

func NewRenderPresenter(preview *model.PreviewModel, view PreviewView, state StateView) *RenderPresenter {
	return &RenderPresenter{preview: preview, view: view, state: state}
}

// Render records rep.
func (p *RenderPresenter) Render(rep runner.TickReport) {
	if p == nil {
		return
	}
	p.preview.Offer(rep)
	p.label, p.status = StatusText(rep)
}

// Tick updates the state label on change and the preview when due.
func (p *RenderPresenter) Tick(now time.Time) {
	if p == nil {
		return
	}
	if p.state != nil && p.label != "" && p.label != p.lastLabel {
		p.lastLabel = p.label
		p.state.SetStateLabel(p.label, p.status)
	}
	if p.view == nil {
		return
	}
	rep, ok := p.preview.Due(now)
	if !ok || rep.Frame.Empty() {
		return
	}
	o := OverlayFor(rep)
	annotated := images.Annotate(rep.Frame.Image, o)
	p.view.UpdateCapture(annotated)
	if strip := images.Crop(annotated, o.ROI); strip != nil {
		factor := 1
		if o.ROI.Dx() < 200 {
			factor = 2
		}
		p.view.UpdateDetection(images.Enlarge(strip, factor))
	}
}

// StatusText renders the one-line state summary for rep.
func StatusText(rep runner.TickReport) (string, Status) {
	switch {
	case rep.Stalled:
		return "State: feed stalled", StatusStalled
	case rep.Gated:
		return "State: waiting (paused or unfocused)", StatusGated
	}
	st := StatusDisarmed
	if rep.Timing.Armed {
		st = StatusArmed
	}
	text := "State: " + string(st)
	if rep.Timing.InAir {
		text += ", in air"
	}
	if rep.Tracking.Active {
		text += ", tracking"
	}
	return text, st
}

// OverlayFor maps a tick report onto preview annotations.
func OverlayFor(rep runner.TickReport) images.Overlay {
	var bounds image.Rectangle
	if !rep.Frame.Empty() {
		bounds = rep.Frame.Image.Bounds()
	}
	roi := rep.ROI.Clamp(bounds)
	o := images.Overlay{
		ROI:        roi,
		Acting:     rep.Jumped || rep.Dropped,
		TriggerX:   rep.TriggerX,
		SafeClearX: rep.SafeClearX,
	}
	status, _ := StatusText(rep)
	o.Lines = append(o.Lines, fmt.Sprintf("%s  tick=%s", status, rep.Elapsed.Round(10*time.Microsecond)))
	if rep.HasBlock {
		o.Block = image.Rect(rep.Block.LeadX, roi.Min.Y, rep.Block.TrailX+1, roi.Max.Y)
		o.Lines = append(o.Lines, fmt.Sprintf("lead=%d trail=%d w=%d trig=%d", rep.Block.LeadX, rep.Block.TrailX, rep.Block.WidthPx, rep.TriggerX))
	}
	if rep.Tracking.Active {
		o.Lines = append(o.Lines, fmt.Sprintf("track trail_x_last=%d drop_done=%t", rep.Tracking.TrailXLast, rep.Tracking.DropDone))
	}
	return o
}

// Reset clears pending preview and label state.
func (p *RenderPresenter) Reset() {
	if p == nil {
		return
	}
	p.preview.Reset()
	p.lastLabel = ""
}
