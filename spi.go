package lightbox

import (
	"image"
	"log"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"
)

/*
SPIDisplay latches frames onto an NRZ strand (WS2812 and friends) through
the first available SPI port. On a machine without SPI hardware it falls
back to periph's console screen, so animations can still be eyeballed on
a dev box.
*/
type SPIDisplay struct {
	drawer display.Drawer
	count  int
}

// NewSPIDisplay opens the SPI port for a strand of count pixels.
func NewSPIDisplay(count int) (*SPIDisplay, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "init host")
	}
	d := &SPIDisplay{count: count}
	port, err := spireg.Open("")
	if err != nil {
		log.Printf("No SPI port (%v), drawing to the console instead", err)
		d.drawer = screen.New(count)
		return d, nil
	}
	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		// 3 SPI bits encode one 800kHz NRZ bit.
		Freq: 2500 * physic.KiloHertz,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open nrz device")
	}
	d.drawer = dev
	return d, nil
}

// Send draws one frame across the strand.
func (d *SPIDisplay) Send(pix []byte) error {
	img := image.NewNRGBA(image.Rect(0, 0, d.count, 1))
	for i := 0; i < d.count && 3*i+2 < len(pix); i++ {
		img.Pix[4*i+0] = pix[3*i+0]
		img.Pix[4*i+1] = pix[3*i+1]
		img.Pix[4*i+2] = pix[3*i+2]
		img.Pix[4*i+3] = 0xFF
	}
	return d.drawer.Draw(d.drawer.Bounds(), img, image.Point{})
}

// Close blanks the strand.
func (d *SPIDisplay) Close() error {
	return d.drawer.Halt()
}
