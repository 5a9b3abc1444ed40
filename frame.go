package lightbox

import (
	"image"
	"time"
)

// Frame is one decoded source frame: straight (non-premultiplied) RGBA
// samples, plus the display duration its container encoded for it. Timed
// is false for frames read from still images, which carry no timing of
// their own.
type Frame struct {
	Image *image.NRGBA
	Delay time.Duration
	Timed bool
}
