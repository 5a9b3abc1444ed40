package lightbox

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

/*
Playlist chains several Animations into one playback surface. Each clip
plays some number of full cycles before the queue moves on. Once the last
clip finishes its cycles the queue wraps back to the first and Completed
reports true, mirroring the single-Animation contract so a Player can
drive either without knowing which it has.
*/
type Playlist struct {
	anims     []*Animation
	cycles    int
	current   int
	played    int
	completed bool
}

// NewPlaylist queues the given animations, playing each for cycles full
// loops before moving on. Cycle counts below 1 mean 1.
func NewPlaylist(anims []*Animation, cycles int) (*Playlist, error) {
	if len(anims) == 0 {
		return nil, ErrEmptySource
	}
	if cycles < 1 {
		cycles = 1
	}
	return &Playlist{anims: anims, cycles: cycles}, nil
}

// LoadPlaylist builds one Animation per .gif found in dir, in lexical
// path order. Rendering options apply to every clip.
func LoadPlaylist(l Layout, dir string, cycles int, opts ...Option) (*Playlist, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.gif"))
	if err != nil {
		return nil, errors.Wrap(err, "glob clips")
	}
	anims := make([]*Animation, 0, len(paths))
	for _, path := range paths {
		anim, err := LoadAnimation(l, path, opts...)
		if err != nil {
			return nil, err
		}
		anims = append(anims, anim)
	}
	return NewPlaylist(anims, cycles)
}

// Advance steps the current clip, rolling over to the next clip when it
// has played its share of cycles.
func (p *Playlist) Advance() (pix []byte, delay time.Duration, timed bool) {
	p.completed = false
	anim := p.anims[p.current]
	pix, delay, timed = anim.Advance()
	if anim.Completed() {
		p.played++
		if p.played == p.cycles {
			p.played = 0
			anim.Reset()
			p.current++
			if p.current == len(p.anims) {
				p.current = 0
				p.completed = true
			}
		}
	}
	return pix, delay, timed
}

// Reset rewinds the queue and every clip in it.
func (p *Playlist) Reset() {
	for _, anim := range p.anims {
		anim.Reset()
	}
	p.current = 0
	p.played = 0
	p.completed = false
}

// Completed reports whether the previous Advance finished the last cycle
// of the last clip.
func (p *Playlist) Completed() bool {
	return p.completed
}

// Len returns the total rendered frame count across all clips.
func (p *Playlist) Len() int {
	var n int
	for _, anim := range p.anims {
		n += anim.Len()
	}
	return n
}
