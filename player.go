package lightbox

import (
	"time"

	"github.com/fogleman/ease"
)

// Source is the playback surface shared by Animation and Playlist.
type Source interface {
	Advance() (pix []byte, delay time.Duration, timed bool)
	Reset()
	Completed() bool
	Len() int
}

// Display latches rendered buffers onto an output device.
type Display interface {
	Send(pix []byte) error
	Close() error
}

const defaultFPS = 30

/*
Player drives a Source into a Display. Frames that carry their own timing
are shown for that long; untimed frames fall back to the configured FPS,
or to Sleep when set. Playback loops until Stop is called, or, when
UntilComplete is set, until the source has completed MaxCycles full
loops.
*/
type Player struct {
	// FPS is the fallback rate for untimed frames.
	FPS int
	// Sleep is a fixed delay between untimed frames. Overrides FPS.
	Sleep time.Duration
	// UntilComplete stops playback after MaxCycles full loops of the
	// source.
	UntilComplete bool
	// MaxCycles is the loop count for UntilComplete. Counts below 1
	// mean 1.
	MaxCycles int
	// SoftStart ramps brightness up from black over this duration, so a
	// large panel coming on all at once does not slam the power supply.
	SoftStart time.Duration

	quit chan struct{}
}

func NewPlayer() *Player {
	return &Player{
		FPS:  defaultFPS,
		quit: make(chan struct{}, 1),
	}
}

// Play renders src to dst until a stop condition is met. It blocks; call
// Stop from another goroutine to interrupt.
func (p *Player) Play(src Source, dst Display) error {
	select {
	case <-p.quit:
	default:
	}

	src.Reset()
	start := time.Now()
	var cycles int

	for {
		pix, d, timed := src.Advance()
		if !timed {
			d = p.frameDelay()
		}
		delay := time.After(d)

		pix = p.softRamp(time.Since(start), pix)
		if err := dst.Send(pix); err != nil {
			return err
		}

		select {
		case <-p.quit:
			return nil
		case <-delay:
		}

		if src.Completed() {
			cycles++
			if p.UntilComplete && cycles >= p.maxCycles() {
				return nil
			}
		}
	}
}

// Stop interrupts a running Play once the current frame's delay elapses.
func (p *Player) Stop() {
	select {
	case p.quit <- struct{}{}:
	default:
	}
}

func (p *Player) frameDelay() time.Duration {
	if p.Sleep > 0 {
		return p.Sleep
	}
	fps := p.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

// softRamp dims pix into a scratch buffer while the soft-start window is
// open. Rendered buffers are shared with the source, so they are never
// scaled in place.
func (p *Player) softRamp(elapsed time.Duration, pix []byte) []byte {
	if p.SoftStart <= 0 || elapsed >= p.SoftStart {
		return pix
	}
	t := ease.InOutQuad(float64(elapsed) / float64(p.SoftStart))
	scaled := make([]byte, len(pix))
	for i, c := range pix {
		scaled[i] = uint8(float64(c) * t)
	}
	return scaled
}

func (p *Player) maxCycles() int {
	if p.MaxCycles < 1 {
		return 1
	}
	return p.MaxCycles
}
