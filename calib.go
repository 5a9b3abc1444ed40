package lightbox

import (
	"image"
	"image/color"
	"time"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	colorful "github.com/lucasb-eyer/go-colorful"
)

/*
CalibrationFrames generates a rig bring-up sweep: a lit column walks left
to right, then a lit row walks top to bottom, stepping around the hue
wheel as it goes. Playing it on a fresh build makes miswired rows, dead
pixels, and mirrored axes obvious at a glance. The result feeds into
NewAnimation like any decoded source.
*/
func CalibrationFrames(w, h int, delay time.Duration) []Frame {
	steps := w + h
	frames := make([]Frame, 0, steps)
	for s := 0; s < steps; s++ {
		dest := image.NewRGBA(image.Rect(0, 0, w, h))
		gc := draw2dimg.NewGraphicContext(dest)

		r, g, b := colorful.Hsv(float64(s)*360.0/float64(steps), 1, 1).RGB255()
		gc.SetFillColor(color.RGBA{R: r, G: g, B: b, A: 255})

		if s < w {
			draw2dkit.Rectangle(gc, float64(s), 0, float64(s+1), float64(h))
		} else {
			draw2dkit.Rectangle(gc, 0, float64(s-w), float64(w), float64(s-w+1))
		}
		gc.Fill()

		frames = append(frames, Frame{Image: toNRGBA(dest), Delay: delay, Timed: true})
	}
	return frames
}
