package lightbox_test

import (
	"io/ioutil"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/kevin-cantwell/lightbox"
)

var _ = Describe("ReadConfig", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "lightbox")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		Expect(ioutil.WriteFile(path, []byte(body), 0644)).To(Succeed())
		return path
	}

	It("reads a full rig description", func() {
		path := write("rig.yml", `
layout:
  width: 8
  height: 4
  serpentine: true
  gamma: 2.2
  brightness: 200
play:
  fps: 20
  untilComplete: true
  cycles: 3
mqtt:
  url: tcp://lights.local:1883
  topic: home/lightbox/stream
  qos: 1
`)
		c, err := lightbox.ReadConfig(path)
		Expect(err).NotTo(HaveOccurred())

		Expect(c.Play.FPS).To(Equal(20))
		Expect(c.Play.UntilComplete).To(BeTrue())
		Expect(c.Play.Cycles).To(Equal(3))
		Expect(c.MQTT.URL).To(Equal("tcp://lights.local:1883"))
		Expect(c.MQTT.Topic).To(Equal("home/lightbox/stream"))
		Expect(c.MQTT.QOS).To(Equal(byte(1)))

		m := c.Matrix()
		Expect(m.PixelCount()).To(Equal(32))
		Expect(m.MasterBrightness()).To(Equal(uint8(200)))

		// Serpentine wiring folds the second row.
		i, ok := m.PixelIndex(0, 1)
		Expect(ok).To(BeTrue())
		Expect(i).To(Equal(15))

		// A 2.2 gamma curve pulls the midtones down.
		Expect(m.Gamma()[128]).To(BeNumerically("<", 128))
	})

	It("builds a pixel-mapped layout", func() {
		path := write("mapped.yml", `
layout:
  width: 2
  height: 1
  pixelMap:
    - [4, 0]
`)
		c, err := lightbox.ReadConfig(path)
		Expect(err).NotTo(HaveOccurred())

		m := c.Matrix()
		Expect(m.PixelCount()).To(Equal(5))
		i, ok := m.PixelIndex(0, 0)
		Expect(ok).To(BeTrue())
		Expect(i).To(Equal(4))
	})

	It("reports a missing file", func() {
		_, err := lightbox.ReadConfig(filepath.Join(dir, "nope.yml"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("open config"))
	})

	It("reports malformed yaml", func() {
		path := write("bad.yml", "layout: [not: a map")
		_, err := lightbox.ReadConfig(path)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("parse config"))
	})
})
