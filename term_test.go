package lightbox_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/kevin-cantwell/lightbox"
)

var _ = Describe("TermDisplay", func() {
	It("paints pixels as truecolor cells", func() {
		var out bytes.Buffer
		d := lightbox.NewTermDisplay(lightbox.NewMatrix(2, 1), &out, nil)

		Expect(d.Send([]byte{255, 0, 0, 0, 0, 255})).To(Succeed())

		s := out.String()
		Expect(s).To(ContainSubstring("\033[?25l"))
		Expect(s).To(ContainSubstring("\033[48;2;255;0;0m  "))
		Expect(s).To(ContainSubstring("\033[48;2;0;0;255m  "))
		Expect(strings.Count(s, "\n")).To(Equal(1))
	})

	It("redraws in place on later frames", func() {
		var out bytes.Buffer
		d := lightbox.NewTermDisplay(lightbox.NewMatrix(1, 2), &out, nil)

		Expect(d.Send(make([]byte, 6))).To(Succeed())
		Expect(out.String()).NotTo(ContainSubstring("\033[999D"))

		Expect(d.Send(make([]byte, 6))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("\033[999D\033[2A"))
	})

	It("leaves holes blank", func() {
		var out bytes.Buffer
		layout := lightbox.NewMatrix(2, 1, lightbox.WithPixelMap([][]int{{-1, 0}}))
		d := lightbox.NewTermDisplay(layout, &out, nil)

		Expect(d.Send([]byte{9, 9, 9})).To(Succeed())

		s := out.String()
		Expect(s).To(ContainSubstring("\033[0m  \033[48;2;9;9;9m  "))
	})

	It("restores the cursor on close", func() {
		var out bytes.Buffer
		d := lightbox.NewTermDisplay(lightbox.NewMatrix(1, 1), &out, nil)

		// Nothing drawn yet, nothing to restore.
		Expect(d.Close()).To(Succeed())
		Expect(out.Len()).To(BeZero())

		Expect(d.Send([]byte{1, 2, 3})).To(Succeed())
		Expect(d.Close()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("\033[?25h"))
	})
})
