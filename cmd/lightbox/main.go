package main

import (
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/codegangsta/cli"
	"github.com/disintegration/imaging"
	"github.com/kevin-cantwell/lightbox"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/crypto/ssh/terminal"
)

func main() {
	app := cli.NewApp()
	app.Version = "0.0.1"
	app.Name = "lightbox"
	app.Usage = "A command-line tool for playing image animations on addressable LED displays."
	app.UsageText = "1) lightbox [options] [file|dir]\n" +
		/*      */ "   2) lightbox [options] < [file.gif]"
	app.Author = "Kevin Cantwell"
	app.Email = "kevin.cantwell@gmail.com"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config,C",
			Usage: "`FILE` is a YAML rig description. Flags override it.",
		},
		cli.StringFlag{
			Name:  "size,d",
			Usage: "`SIZE` = 32,16 lays out a 32 wide by 16 high matrix.",
			Value: "32,16",
		},
		cli.BoolFlag{
			Name:  "serpentine",
			Usage: "Folds the strand back and forth instead of row by row.",
		},
		cli.Float64Flag{
			Name:  "led-gamma",
			Usage: "`GAMMA` corrects strand output. 0 leaves it uncorrected, typical strands want 2.2 to 2.5.",
		},
		cli.IntFlag{
			Name:  "level,l",
			Usage: "`LEVEL` = 255 shows frames at full brightness, lower values dim them.",
			Value: 255,
		},
		cli.StringFlag{
			Name:  "bg",
			Usage: "`BG` is the hex color shown behind transparent pixels, eg '#202000'.",
			Value: "#000000",
		},
		cli.StringFlag{
			Name:  "offset,o",
			Usage: "`OFFSET` = 4,2 pins frames at that position instead of centering them.",
		},
		cli.BoolFlag{
			Name:  "fit,f",
			Usage: "Scales frames down to fit the layout. Never scales up.",
		},
		cli.Float64Flag{
			Name:  "gamma,g",
			Usage: "`GAMMA` = 1.0 gives the original image. GAMMA less than 1.0 darkens the image and GAMMA greater than 1.0 lightens it.",
			Value: 1.0,
		},
		cli.Float64Flag{
			Name:  "brightness,b",
			Usage: "`BRIGHTNESS` = 0 gives the original image. BRIGHTNESS = -100 gives solid black image. BRIGHTNESS = 100 gives solid white image.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "contrast,c",
			Usage: "`CONTRAST` = 0 gives the original image. CONTRAST = -100 gives solid grey image. CONTRAST = 100 gives maximum contrast.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "sharpen,s",
			Usage: "`SHARPEN` = 0 gives the original image. SHARPEN greater than 0 sharpens the image.",
			Value: 0.0,
		},
		cli.BoolFlag{
			Name:  "invert,i",
			Usage: "Inverts the image.",
		},
		cli.IntFlag{
			Name:  "fps",
			Usage: "`FPS` paces frames that carry no timing of their own.",
			Value: 30,
		},
		cli.DurationFlag{
			Name:  "sleep",
			Usage: "`SLEEP` = 250ms is a fixed delay between untimed frames. Overrides fps.",
		},
		cli.IntFlag{
			Name:  "cycles,n",
			Usage: "`CYCLES` = 3 plays the animation three times through and exits. 0 loops until interrupted.",
		},
		cli.DurationFlag{
			Name:  "soft-start",
			Usage: "`RAMP` = 2s fades brightness in over two seconds.",
		},
		cli.StringFlag{
			Name:  "opc",
			Usage: "`SERVER` = localhost:7890 latches frames to an Open Pixel Control server.",
		},
		cli.StringFlag{
			Name:  "mqtt",
			Usage: "`URL` = tcp://broker:1883 publishes frames to an MQTT broker.",
		},
		cli.StringFlag{
			Name:  "topic",
			Usage: "`TOPIC` for mqtt frames.",
			Value: "lightbox/stream",
		},
		cli.BoolFlag{
			Name:  "spi",
			Usage: "Latches frames to an NRZ strand on the first SPI port.",
		},
		cli.BoolFlag{
			Name:  "calibrate",
			Usage: "Sweeps every column and row of the layout to check the wiring. ESC or CTRL-C to quit.",
		},
	}
	app.Action = func(c *cli.Context) {
		cfg := &lightbox.Config{}
		if c.IsSet("config") {
			var err error
			cfg, err = lightbox.ReadConfig(c.String("config"))
			if err != nil {
				exit(err.Error(), 1)
			}
		}
		layout := buildLayout(c, cfg)

		src, err := loadSource(c, layout)
		if err != nil {
			exit(err.Error(), 1)
		}

		dst, err := openDisplay(c, cfg, layout)
		if err != nil {
			exit(err.Error(), 1)
		}

		play(c, cfg, src, dst)
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func buildLayout(c *cli.Context, cfg *lightbox.Config) *lightbox.Matrix {
	if cfg.Layout.Width > 0 && !c.IsSet("size") {
		return cfg.Matrix()
	}

	parts := strings.Split(c.String("size"), ",")
	if len(parts) != 2 {
		exit("size option must be comma separated", 1)
	}
	w, _ := strconv.Atoi(strings.Trim(parts[0], " "))
	h, _ := strconv.Atoi(strings.Trim(parts[1], " "))

	var opts []lightbox.MatrixOpt
	if c.Bool("serpentine") {
		opts = append(opts, lightbox.WithSerpentine())
	}
	if g := c.Float64("led-gamma"); g > 0 {
		opts = append(opts, lightbox.WithGammaTable(lightbox.GammaTable(g)))
	}
	return lightbox.NewMatrix(w, h, opts...)
}

func loadSource(c *cli.Context, layout lightbox.Layout) (lightbox.Source, error) {
	opts := renderOpts(c)

	if c.Bool("calibrate") {
		w, h := layout.Size()
		return lightbox.NewAnimation(layout, lightbox.CalibrationFrames(w, h, 100*time.Millisecond), opts...)
	}

	input := c.Args().First()
	if input == "" {
		// Piped input. Only gifs make sense on stdin.
		frames, err := lightbox.DecodeGIF(os.Stdin)
		if err != nil {
			return nil, err
		}
		return lightbox.NewAnimation(layout, preprocess(c, layout, frames), opts...)
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		// A directory of gifs queues up as a playlist. Anything else is
		// treated as a folder of still frames.
		if gifs, _ := filepath.Glob(filepath.Join(input, "*.gif")); len(gifs) > 0 {
			return lightbox.LoadPlaylist(layout, input, c.Int("cycles"), opts...)
		}
		return lightbox.LoadAnimation(layout, input, opts...)
	}

	if !adjusting(c) {
		return lightbox.LoadAnimation(layout, input, opts...)
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var frames []lightbox.Frame
	if strings.EqualFold(filepath.Ext(input), ".gif") {
		frames, err = lightbox.DecodeGIF(f)
	} else {
		var frame lightbox.Frame
		frame, err = lightbox.DecodeStill(f)
		frames = []lightbox.Frame{frame}
	}
	if err != nil {
		return nil, err
	}
	return lightbox.NewAnimation(layout, preprocess(c, layout, frames), opts...)
}

func renderOpts(c *cli.Context) []lightbox.Option {
	var opts []lightbox.Option
	if c.IsSet("bg") {
		bg, err := colorful.Hex(c.String("bg"))
		if err != nil {
			exit(fmt.Sprintf("bg must be a hex color: %v", err), 1)
		}
		r, g, b := bg.RGB255()
		opts = append(opts, lightbox.WithBackground(lightbox.Color{R: r, G: g, B: b}))
	}
	if c.IsSet("offset") {
		parts := strings.Split(c.String("offset"), ",")
		if len(parts) != 2 {
			exit("offset option must be comma separated", 1)
		}
		x, _ := strconv.Atoi(strings.Trim(parts[0], " "))
		y, _ := strconv.Atoi(strings.Trim(parts[1], " "))
		opts = append(opts, lightbox.WithOffset(x, y))
	}
	if c.IsSet("level") {
		opts = append(opts, lightbox.WithBrightness(uint8(c.Int("level"))))
	}
	return opts
}

// adjusting reports whether any source-image adjustment was requested.
func adjusting(c *cli.Context) bool {
	return c.Bool("fit") || c.IsSet("gamma") || c.IsSet("brightness") ||
		c.IsSet("contrast") || c.IsSet("sharpen") || c.Bool("invert")
}

func preprocess(c *cli.Context, layout lightbox.Layout, frames []lightbox.Frame) []lightbox.Frame {
	if !adjusting(c) {
		return frames
	}
	for i := range frames {
		frames[i].Image = adjustImage(c, layout, frames[i].Image)
	}
	return frames
}

func adjustImage(c *cli.Context, layout lightbox.Layout, img *image.NRGBA) *image.NRGBA {
	var adjusted image.Image = img
	if c.Bool("fit") {
		w, h := layout.Size()
		adjusted = resize.Thumbnail(uint(w), uint(h), adjusted, resize.NearestNeighbor)
	}
	if c.IsSet("gamma") {
		adjusted = imaging.AdjustGamma(adjusted, c.Float64("gamma"))
	}
	if c.IsSet("brightness") {
		adjusted = imaging.AdjustBrightness(adjusted, c.Float64("brightness"))
	}
	if c.IsSet("sharpen") {
		adjusted = imaging.Sharpen(adjusted, c.Float64("sharpen"))
	}
	if c.IsSet("contrast") {
		adjusted = imaging.AdjustContrast(adjusted, c.Float64("contrast"))
	}
	if c.Bool("invert") {
		adjusted = imaging.Invert(adjusted)
	}
	return imaging.Clone(adjusted)
}

func openDisplay(c *cli.Context, cfg *lightbox.Config, layout lightbox.Layout) (lightbox.Display, error) {
	switch {
	case c.IsSet("opc") || cfg.OPC.Server != "":
		addr := cfg.OPC.Server
		if c.IsSet("opc") {
			addr = c.String("opc")
		}
		return lightbox.DialOPC(addr, cfg.OPC.Channel)
	case c.IsSet("mqtt") || cfg.MQTT.URL != "":
		o := lightbox.MQTTOptions{
			URL:      cfg.MQTT.URL,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			Topic:    cfg.MQTT.Topic,
			QOS:      cfg.MQTT.QOS,
		}
		if c.IsSet("mqtt") {
			o.URL = c.String("mqtt")
		}
		if o.Topic == "" || c.IsSet("topic") {
			o.Topic = c.String("topic")
		}
		return lightbox.DialMQTT(o)
	case c.Bool("spi") || cfg.SPI.Enabled:
		return lightbox.NewSPIDisplay(layout.PixelCount())
	default:
		return lightbox.NewTermDisplay(layout, os.Stdout, nil), nil
	}
}

func play(c *cli.Context, cfg *lightbox.Config, src lightbox.Source, dst lightbox.Display) {
	player := lightbox.NewPlayer()
	if cfg.Play.FPS > 0 {
		player.FPS = cfg.Play.FPS
	}
	if c.IsSet("fps") {
		player.FPS = c.Int("fps")
	}
	if cfg.Play.SleepMillis > 0 {
		player.Sleep = time.Duration(cfg.Play.SleepMillis) * time.Millisecond
	}
	if c.IsSet("sleep") {
		player.Sleep = c.Duration("sleep")
	}
	cycles := cfg.Play.Cycles
	if c.IsSet("cycles") {
		cycles = c.Int("cycles")
	}
	if cycles > 0 || cfg.Play.UntilComplete {
		player.UntilComplete = true
		player.MaxCycles = cycles
	}
	if cfg.Play.SoftStartMillis > 0 {
		player.SoftStart = time.Duration(cfg.Play.SoftStartMillis) * time.Millisecond
	}
	if c.IsSet("soft-start") {
		player.SoftStart = c.Duration("soft-start")
	}

	restore := rawMode()
	defer restore()
	restoreOnInterrupt(restore, dst)
	go stopOnKeypress(player)

	err := player.Play(src, dst)
	dst.Close()
	if err != nil {
		restore()
		exit(err.Error(), 1)
	}
}

// rawMode switches stdin to raw input so single keypresses arrive
// unbuffered, and returns the undo. A piped stdin is left alone.
func rawMode() func() {
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		return func() {}
	}
	state, err := terminal.MakeRaw(fd)
	if err != nil {
		return func() {}
	}
	return func() { terminal.Restore(fd, state) }
}

func stopOnKeypress(player *lightbox.Player) {
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}
		switch buf[0] {
		case 27, 'q', 3: // ESC, q, CTRL-C
			player.Stop()
			return
		}
	}
}

func restoreOnInterrupt(restore func(), dst lightbox.Display) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-signals
		restore()
		dst.Close()
		// Stop notifying this channel
		signal.Stop(signals)
		// All Signals returned by the signal package should be of type syscall.Signal
		if signum, ok := s.(syscall.Signal); ok {
			// Calling os.Exit here would be a bad idea if there are other goroutines
			// waiting to catch the same signal.
			syscall.Kill(syscall.Getpid(), signum)
		} else {
			panic(fmt.Sprintf("unexpected signal: %v", s))
		}
	}()
}

func exit(msg string, code int) {
	fmt.Println(msg)
	os.Exit(code)
}
