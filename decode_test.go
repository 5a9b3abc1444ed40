package lightbox_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/kevin-cantwell/lightbox"
)

var _ = Describe("DecodeGIF", func() {
	It("composites partial frames over the running canvas", func() {
		palette := color.Palette{
			color.RGBA{A: 255},
			color.RGBA{R: 255, A: 255},
			color.RGBA{G: 255, A: 255},
		}

		base := image.NewPaletted(image.Rect(0, 0, 3, 1), palette)
		for i := range base.Pix {
			base.Pix[i] = 1
		}
		patch := image.NewPaletted(image.Rect(1, 0, 2, 1), palette)
		patch.Pix[0] = 2

		var buf bytes.Buffer
		err := gif.EncodeAll(&buf, &gif.GIF{
			Image: []*image.Paletted{base, patch},
			Delay: []int{7, 12},
			Config: image.Config{
				Width:  3,
				Height: 1,
			},
		})
		Expect(err).NotTo(HaveOccurred())

		frames, err := lightbox.DecodeGIF(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(HaveLen(2))

		first := frames[0]
		Expect(first.Timed).To(BeTrue())
		Expect(first.Delay.Milliseconds()).To(Equal(int64(70)))
		Expect(first.Image.NRGBAAt(1, 0)).To(Equal(color.NRGBA{R: 255, A: 255}))

		// The second frame only damages the middle pixel, so its
		// neighbors keep the colors laid down by the first frame.
		second := frames[1]
		Expect(second.Delay.Milliseconds()).To(Equal(int64(120)))
		Expect(second.Image.NRGBAAt(0, 0)).To(Equal(color.NRGBA{R: 255, A: 255}))
		Expect(second.Image.NRGBAAt(1, 0)).To(Equal(color.NRGBA{G: 255, A: 255}))
		Expect(second.Image.NRGBAAt(2, 0)).To(Equal(color.NRGBA{R: 255, A: 255}))
	})

	It("rejects input that is not a gif", func() {
		_, err := lightbox.DecodeGIF(strings.NewReader("not a gif"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("decode gif"))
	})
})

var _ = Describe("DecodeStill", func() {
	It("flattens a still image into one untimed frame", func() {
		img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
		img.SetNRGBA(2, 1, color.NRGBA{R: 9, G: 8, B: 7, A: 255})

		var buf bytes.Buffer
		Expect(png.Encode(&buf, img)).To(Succeed())

		frame, err := lightbox.DecodeStill(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(frame.Timed).To(BeFalse())
		Expect(frame.Delay).To(BeZero())
		Expect(frame.Image.Bounds().Dx()).To(Equal(4))
		Expect(frame.Image.Bounds().Dy()).To(Equal(2))
		Expect(frame.Image.NRGBAAt(2, 1)).To(Equal(color.NRGBA{R: 9, G: 8, B: 7, A: 255}))
	})

	It("reports what failed to decode", func() {
		_, err := lightbox.DecodeStill(strings.NewReader("garbage"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("decode image"))
	})
})
