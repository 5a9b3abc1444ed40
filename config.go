package lightbox

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

/*
Config describes a display rig: the logical layout of its pixels, how
playback should be paced, and the sinks frames can be latched to. It is
usually read from a YAML file kept next to the animations:

	layout:
	  width: 32
	  height: 16
	  serpentine: true
	  gamma: 2.2
	mqtt:
	  url: tcp://lights.local:1883
	  topic: home/lightbox/stream
*/
type Config struct {
	Layout struct {
		Width      int     `yaml:"width"`
		Height     int     `yaml:"height"`
		Serpentine bool    `yaml:"serpentine"`
		PixelMap   [][]int `yaml:"pixelMap"`
		Gamma      float64 `yaml:"gamma"`
		Brightness *uint8  `yaml:"brightness"`
	} `yaml:"layout"`
	Play struct {
		FPS             int  `yaml:"fps"`
		SleepMillis     int  `yaml:"sleepMillis"`
		UntilComplete   bool `yaml:"untilComplete"`
		Cycles          int  `yaml:"cycles"`
		SoftStartMillis int  `yaml:"softStartMillis"`
	} `yaml:"play"`
	OPC struct {
		Server  string `yaml:"server"`
		Channel uint8  `yaml:"channel"`
	} `yaml:"opc"`
	MQTT struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientId"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topic    string `yaml:"topic"`
		QOS      byte   `yaml:"qos"`
	} `yaml:"mqtt"`
	SPI struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"spi"`
}

// ReadConfig loads a YAML rig description from path.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	var c Config
	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return &c, nil
}

// Matrix builds the layout the config describes.
func (c *Config) Matrix() *Matrix {
	var opts []MatrixOpt
	if c.Layout.Serpentine {
		opts = append(opts, WithSerpentine())
	}
	if len(c.Layout.PixelMap) > 0 {
		opts = append(opts, WithPixelMap(c.Layout.PixelMap))
	}
	if c.Layout.Gamma > 0 {
		opts = append(opts, WithGammaTable(GammaTable(c.Layout.Gamma)))
	}
	if c.Layout.Brightness != nil {
		opts = append(opts, WithMasterBrightness(*c.Layout.Brightness))
	}
	return NewMatrix(c.Layout.Width, c.Layout.Height, opts...)
}
