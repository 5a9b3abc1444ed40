package lightbox

import (
	"bytes"
	"fmt"
	"io"
)

type Terminal interface {
	ResetCursor(rows int)
	ShowCursor(show bool)
}

type Xterm struct {
	Writer io.Writer
}

// Move the cursor to the beginning of the line and up rows
func (term *Xterm) ResetCursor(rows int) {
	term.Writer.Write([]byte(fmt.Sprintf("\033[999D\033[%dA", rows)))
}

func (term *Xterm) ShowCursor(show bool) {
	if show {
		term.Writer.Write([]byte("\033[?12l\033[?25h"))
	} else {
		term.Writer.Write([]byte("\033[?25l"))
	}
}

/*
TermDisplay previews a layout in the terminal: two spaces per pixel,
colored with 24-bit background escapes, holes left blank. Each frame
redraws over the previous one by repositioning the cursor, so the
animation plays in place. Useful for checking an animation without a
strand attached.
*/
type TermDisplay struct {
	layout Layout
	w      io.Writer
	term   Terminal
	drawn  bool
}

// NewTermDisplay previews layout frames on w. If term is nil, an Xterm
// writing to w is assumed.
func NewTermDisplay(l Layout, w io.Writer, term Terminal) *TermDisplay {
	if term == nil {
		term = &Xterm{Writer: w}
	}
	return &TermDisplay{layout: l, w: w, term: term}
}

// Send draws one frame over the previous one.
func (d *TermDisplay) Send(pix []byte) error {
	lw, lh := d.layout.Size()
	if d.drawn {
		d.term.ResetCursor(lh)
	} else {
		d.term.ShowCursor(false)
		d.drawn = true
	}

	var buf bytes.Buffer
	for y := 0; y < lh; y++ {
		for x := 0; x < lw; x++ {
			i, ok := d.layout.PixelIndex(x, y)
			if !ok || 3*i+2 >= len(pix) {
				buf.WriteString("\033[0m  ")
				continue
			}
			fmt.Fprintf(&buf, "\033[48;2;%d;%d;%dm  ", pix[3*i], pix[3*i+1], pix[3*i+2])
		}
		buf.WriteString("\033[0m\n")
	}
	_, err := d.w.Write(buf.Bytes())
	return err
}

// Close restores the cursor.
func (d *TermDisplay) Close() error {
	if d.drawn {
		d.term.ShowCursor(true)
	}
	return nil
}
