package lightbox

import (
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// renderedFrame is one precomputed strand buffer plus its timing.
type renderedFrame struct {
	pix   []byte
	delay time.Duration
	timed bool
}

/*
Animation is an ordered list of pre-rendered frames with a playback
cursor. All compositing happens up front, in NewAnimation, so Advance
does no work beyond handing out the next buffer. Stepping is constant
time and cannot fail, which keeps a timing-sensitive refresh loop free of
jitter. An Animation is not safe for concurrent use.
*/
type Animation struct {
	frames    []renderedFrame
	cursor    int
	completed bool
}

type Option func(o *renderOpts)

type renderOpts struct {
	offset     *image.Point
	bg         Color
	brightness uint8
}

// WithOffset pins source frames at (x,y) on the layout instead of
// centering them.
func WithOffset(x, y int) Option {
	return func(o *renderOpts) {
		o.offset = &image.Point{X: x, Y: y}
	}
}

// WithBackground sets the color behind transparent and uncovered pixels.
func WithBackground(c Color) Option {
	return func(o *renderOpts) {
		o.bg = c
	}
}

// WithBrightness scales every channel by b/255. At the default of 255 the
// layout's master brightness applies instead.
func WithBrightness(b uint8) Option {
	return func(o *renderOpts) {
		o.brightness = b
	}
}

/*
NewAnimation renders source frames against the layout and returns the
playable result. When no explicit offset is given, frames smaller than
the layout are centered. The centering is computed from the first frame
only and reused for every frame after it, so a mixed-size source keeps a
stable anchor.
*/
func NewAnimation(l Layout, frames []Frame, opts ...Option) (*Animation, error) {
	if len(frames) == 0 {
		return nil, ErrEmptySource
	}

	o := renderOpts{bg: Off, brightness: 255}
	for _, opt := range opts {
		opt(&o)
	}
	if o.brightness == 255 {
		o.brightness = l.MasterBrightness()
	}

	var offset image.Point
	if o.offset != nil {
		offset = *o.offset
	} else {
		var first image.Rectangle
		if frames[0].Image != nil {
			first = frames[0].Image.Bounds()
		}
		lw, lh := l.Size()
		if dx := (lw - first.Dx()) / 2; dx > 0 {
			offset.X = dx
		}
		if dy := (lh - first.Dy()) / 2; dy > 0 {
			offset.Y = dy
		}
	}

	anim := &Animation{frames: make([]renderedFrame, 0, len(frames))}
	for _, f := range frames {
		pix, err := Render(l, f, offset, o.bg, o.brightness)
		if err != nil {
			return nil, err
		}
		anim.frames = append(anim.frames, renderedFrame{pix: pix, delay: f.Delay, timed: f.Timed})
	}
	return anim, nil
}

// NewAnimationFromFiles decodes each listed still image into one frame of
// the animation. Paths are used in the order given; callers wanting a
// particular sequence sort before calling.
func NewAnimationFromFiles(l Layout, paths []string, opts ...Option) (*Animation, error) {
	frames := make([]Frame, 0, len(paths))
	for _, path := range paths {
		frame, err := decodeStillFile(path)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return NewAnimation(l, frames, opts...)
}

/*
LoadAnimation builds an Animation from a path on disk. A .gif file plays
with the timing embedded in it. A directory is treated as an ordered set
of stills: every .bmp inside becomes one frame, in lexical path order,
shown at whatever rate the player chooses. Any other file decodes as a
single still frame.
*/
func LoadAnimation(l Layout, path string, opts ...Option) (*Animation, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "stat source")
	}

	log.Printf("Loading %s ...", path)

	if info.IsDir() {
		paths, err := filepath.Glob(filepath.Join(path, "*.bmp"))
		if err != nil {
			return nil, errors.Wrap(err, "glob stills")
		}
		if len(paths) == 0 {
			return nil, ErrEmptySource
		}
		return NewAnimationFromFiles(l, paths, opts...)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open source")
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".gif") {
		frames, err := DecodeGIF(f)
		if err != nil {
			return nil, err
		}
		return NewAnimation(l, frames, opts...)
	}

	frame, err := DecodeStill(f)
	if err != nil {
		return nil, err
	}
	return NewAnimation(l, []Frame{frame}, opts...)
}

func decodeStillFile(path string) (Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Frame{}, errors.Wrap(err, "open still")
	}
	defer f.Close()
	return DecodeStill(f)
}

/*
Advance returns the frame under the cursor and steps past it. Returning
the final frame wraps the cursor back to 0 and makes Completed report
true until the next call. The buffer is owned by the Animation and must
not be modified.
*/
func (a *Animation) Advance() (pix []byte, delay time.Duration, timed bool) {
	a.completed = false
	f := a.frames[a.cursor]
	a.cursor++
	if a.cursor == len(a.frames) {
		a.cursor = 0
		a.completed = true
	}
	return f.pix, f.delay, f.timed
}

// Reset rewinds to the first frame for a fresh playback cycle.
func (a *Animation) Reset() {
	a.cursor = 0
	a.completed = false
}

// Completed reports whether the previous Advance returned the final
// frame.
func (a *Animation) Completed() bool {
	return a.completed
}

// Len returns the number of rendered frames.
func (a *Animation) Len() int {
	return len(a.frames)
}
