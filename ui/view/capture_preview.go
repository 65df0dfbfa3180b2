package view

import (
	"image"

	"github.com/soocke/dino-bot-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CapturePreview shows the annotated game frame and the lookahead strip.
type CapturePreview interface {
	UpdateCapture(img image.Image)
	UpdateDetection(img image.Image)
	Reset()
}

type capturePreview struct {
	captureLabel       *LabelWidget
	detectionLabel     *LabelWidget
	prevCapturePhoto   *Img
	prevDetectionPhoto *Img
}

// Old photos are deleted before replacement so Tk does not keep stale pixel
// buffers alive.

// NewCapturePreview grids the game preview at row and the ROI strip on the row
// below it.
func NewCapturePreview(row int) CapturePreview {
	capPhoto, detPhoto := placeholder(), placeholder()
	Grid(Label(Txt("Game"), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"))
	capture := Label(Image(capPhoto), Borderwidth(1), Relief("sunken"))
	Grid(capture, Row(row+1), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(Label(Txt("Lookahead ROI"), Anchor("w")), Row(row+2), Column(0), Sticky("w"), Padx("0.4m"))
	detection := Label(Image(detPhoto), Borderwidth(1), Relief("sunken"))
	Grid(detection, Row(row+3), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &capturePreview{captureLabel: capture, detectionLabel: detection, prevCapturePhoto: capPhoto, prevDetectionPhoto: detPhoto}
}

const (
	maxPreviewW = 600
	maxPreviewH = 200
)

func placeholder() *Img {
	return NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 300, 80)))))
}

func (v *capturePreview) UpdateCapture(img image.Image) {
	if v.captureLabel == nil || img == nil {
		return
	}
	v.prevCapturePhoto = swapPhoto(v.captureLabel, v.prevCapturePhoto, images.ScaleToFit(img, maxPreviewW, maxPreviewH))
}

func (v *capturePreview) UpdateDetection(img image.Image) {
	if v.detectionLabel == nil || img == nil {
		return
	}
	v.prevDetectionPhoto = swapPhoto(v.detectionLabel, v.prevDetectionPhoto, images.ScaleToFit(img, maxPreviewW, maxPreviewH))
}

func swapPhoto(lbl *LabelWidget, prev *Img, img image.Image) *Img {
	pngBytes := images.EncodePNG(img)
	if prev != nil {
		prev.Delete()
	}
	next := NewPhoto(Data(pngBytes))
	lbl.Configure(Image(next))
	return next
}

func (v *capturePreview) Reset() {
	if v.captureLabel != nil {
		if v.prevCapturePhoto != nil {
			v.prevCapturePhoto.Delete()
		}
		v.prevCapturePhoto = placeholder()
		v.captureLabel.Configure(Image(v.prevCapturePhoto))
	}
	if v.detectionLabel != nil {
		if v.prevDetectionPhoto != nil {
			v.prevDetectionPhoto.Delete()
		}
		v.prevDetectionPhoto = placeholder()
		v.detectionLabel.Configure(Image(v.prevDetectionPhoto))
	}
}
