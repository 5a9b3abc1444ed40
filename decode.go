package lightbox

import (
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
)

/*
DecodeGIF decodes an animated GIF into full-canvas frames. Individual GIF
frames may cover only the damaged region of the canvas, so each one is
composited over the running canvas state and the disposal method recorded
for it is honored afterwards. Delays are converted from the container's
1/100s units.
*/
func DecodeGIF(r io.Reader) ([]Frame, error) {
	giff, err := gif.DecodeAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode gif")
	}

	bounds := image.Rect(0, 0, giff.Config.Width, giff.Config.Height)
	if bounds.Empty() && len(giff.Image) > 0 {
		bounds = giff.Image[0].Bounds()
	}
	canvas := image.NewNRGBA(bounds)

	frames := make([]Frame, 0, len(giff.Image))
	for i, src := range giff.Image {
		var previous *image.NRGBA
		if giff.Disposal[i] == gif.DisposalPrevious {
			previous = image.NewNRGBA(bounds)
			copy(previous.Pix, canvas.Pix)
		}

		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)

		flat := image.NewNRGBA(bounds)
		copy(flat.Pix, canvas.Pix)
		frames = append(frames, Frame{
			Image: flat,
			Delay: time.Duration(giff.Delay[i]) * time.Second / 100,
			Timed: true,
		})

		switch giff.Disposal[i] {
		case gif.DisposalBackground:
			draw.Draw(canvas, src.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return frames, nil
}

// DecodeStill decodes a single still image into one untimed frame.
func DecodeStill(r io.Reader) (Frame, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Frame{}, errors.Wrap(err, "decode image")
	}
	return Frame{Image: toNRGBA(img)}, nil
}

// toNRGBA flattens img into a zero-origin NRGBA raster.
func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Bounds().Min == (image.Point{}) {
		return nrgba
	}
	flat := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Src)
	return flat
}
