package lightbox_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/kevin-cantwell/lightbox"
)

var _ = Describe("CalibrationFrames", func() {
	It("sweeps every column, then every row", func() {
		frames := lightbox.CalibrationFrames(4, 3, 50*time.Millisecond)
		Expect(frames).To(HaveLen(7))

		for _, f := range frames {
			Expect(f.Timed).To(BeTrue())
			Expect(f.Delay).To(Equal(50 * time.Millisecond))
			Expect(f.Image.Bounds().Dx()).To(Equal(4))
			Expect(f.Image.Bounds().Dy()).To(Equal(3))
		}

		// Frame 0 lights column 0 and nothing else.
		first := frames[0].Image
		Expect(first.NRGBAAt(0, 0).A).To(Equal(uint8(255)))
		Expect(first.NRGBAAt(0, 2).A).To(Equal(uint8(255)))
		Expect(first.NRGBAAt(1, 0).A).To(Equal(uint8(0)))

		// Frame 4 is the first row sweep.
		row := frames[4].Image
		Expect(row.NRGBAAt(0, 0).A).To(Equal(uint8(255)))
		Expect(row.NRGBAAt(3, 0).A).To(Equal(uint8(255)))
		Expect(row.NRGBAAt(0, 1).A).To(Equal(uint8(0)))
	})

	It("feeds straight into an animation", func() {
		anim, err := lightbox.NewAnimation(
			lightbox.NewMatrix(2, 2),
			lightbox.CalibrationFrames(2, 2, time.Millisecond),
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(anim.Len()).To(Equal(4))

		// The first step lights the left column only.
		pix, delay, timed := anim.Advance()
		Expect(timed).To(BeTrue())
		Expect(delay).To(Equal(time.Millisecond))
		Expect(pix[3*1+0] | pix[3*1+1] | pix[3*1+2]).To(Equal(uint8(0)))
		lit := int(pix[3*0+0]) + int(pix[3*0+1]) + int(pix[3*0+2])
		Expect(lit).To(BeNumerically(">", 0))
	})
})
