package app

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/soocke/dino-bot-go/domain/runner"
	"github.com/soocke/dino-bot-go/domain/vision"
	"github.com/soocke/dino-bot-go/ui/images"
	"github.com/soocke/dino-bot-go/ui/presenter"
)

// Snapshot grabs one frame, runs detection on it and writes the annotated
// frame to path. Used to calibrate the game rectangle and ROI.
func Snapshot(ctx context.Context, c *AppContainer, path string) error {
	frame, err := c.Source.Grab(ctx)
	if err != nil {
		return fmt.Errorf("snapshot grab: %w", err)
	}
	if frame.Empty() {
		return fmt.Errorf("snapshot grab: empty frame")
	}
	p := c.Loop.Params()
	rep := runner.TickReport{Frame: frame, ROI: p.ROI, SafeClearX: p.Timing.SafeClearX}
	rep.Block, rep.HasBlock = vision.Detect(frame.Image, p.ROI, p.Detect)
	if rep.HasBlock {
		rep.TriggerX = runner.TriggerX(rep.Block.WidthPx, p.Timing)
	} else {
		rep.TriggerX = p.Timing.LateThreshold
	}
	annotated := images.Annotate(frame.Image, presenter.OverlayFor(rep))
	if err := imaging.Save(annotated, path); err != nil {
		return fmt.Errorf("snapshot save: %w", err)
	}
	c.Logger.Info("snapshot written", "path", path, "detected", rep.HasBlock, "lead_x", rep.Block.LeadX, "width_px", rep.Block.WidthPx)
	return nil
}
