// neotx-host streams LED frames to a strip: over a serial port to a
// bridge firmware speaking the Adalight wire format, or into the
// simulator target for an in-terminal preview.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/shlex"
	"github.com/rs/zerolog"

	"neotx/core"
	"neotx/host/serial"
	"neotx/host/stream"
	"neotx/targets/sim"
)

var (
	device      = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud        = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	count       = flag.Int("count", 60, "Number of LEDs on the strip")
	fps         = flag.Int("fps", 30, "Target frame rate (0 = unpaced)")
	effect      = flag.String("effect", "rainbow", "Effect to run: solid or rainbow")
	colorHex    = flag.String("color", "ffffff", "Color for the solid effect (RRGGBB)")
	preview     = flag.Bool("preview", false, "Render frames to the terminal instead of a serial port")
	interactive = flag.Bool("interactive", false, "Read commands from stdin instead of running an effect")
	verbose     = flag.Bool("v", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	if *count <= 0 {
		log.Fatal().Int("count", *count).Msg("strip needs at least one LED")
	}

	if *preview {
		if err := runPreview(log); err != nil {
			log.Fatal().Err(err).Msg("preview failed")
		}
		return
	}

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	port, err := serial.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("device", *device).Msg("failed to open serial port")
	}
	defer port.Close()
	log.Info().Str("device", *device).Int("baud", *baud).Msg("connected")

	s := stream.New(port, *fps, log)
	if *interactive {
		err = runInteractive(s, log)
	} else {
		err = runEffect(s, log)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("streaming failed")
	}
}

func runEffect(s *stream.Streamer, log zerolog.Logger) error {
	buf := make([]byte, *count*3)

	switch *effect {
	case "solid":
		r, g, b, err := parseColor(*colorHex)
		if err != nil {
			return err
		}
		stream.Solid(buf, r, g, b)
		log.Info().Str("color", *colorHex).Msg("holding solid color")
		for {
			if err := s.Send(buf); err != nil {
				return err
			}
		}
	case "rainbow":
		log.Info().Int("fps", *fps).Msg("running rainbow")
		for phase := uint8(0); ; phase++ {
			stream.Rainbow(buf, phase)
			if err := s.Send(buf); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown effect %q", *effect)
	}
}

// runPreview drives the simulator target instead of a serial port: the
// same effects, rendered as truecolor swatches in the terminal.
func runPreview(log zerolog.Logger) error {
	dev, strip, err := sim.Configure(sim.Config{Order: core.OrderGRB})
	if err != nil {
		return err
	}
	log.Info().Int("count", *count).Msg("previewing in terminal, ^C to stop")

	buf := make([]byte, *count*3)
	px := make([]core.Pixel, *count)
	interval := time.Duration(0)
	if *fps > 0 {
		interval = time.Second / time.Duration(*fps)
	}

	for phase := uint8(0); ; phase++ {
		switch *effect {
		case "solid":
			r, g, b, err := parseColor(*colorHex)
			if err != nil {
				return err
			}
			stream.Solid(buf, r, g, b)
		default:
			stream.Rainbow(buf, phase)
		}
		for i := range px {
			px[i] = core.Pixel{R: buf[i*3], G: buf[i*3+1], B: buf[i*3+2]}
		}

		strip.Reset()
		dev.Prepare()
		dev.Transmit(px)
		if err := dev.Close(); err != nil {
			return err
		}
		fmt.Print("\r")
		strip.RenderANSI(os.Stdout)
		fmt.Print("\x1b[1A")
		if interval > 0 {
			time.Sleep(interval)
		}
	}
}

func runInteractive(s *stream.Streamer, log zerolog.Logger) error {
	buf := make([]byte, *count*3)
	fmt.Println("Commands: fill RRGGBB | set INDEX RRGGBB | show | help | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		tokens, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Printf("parse error: %v\n", err)
			continue
		}
		if len(tokens) == 0 {
			continue
		}

		switch tokens[0] {
		case "quit", "exit", "q":
			return nil

		case "help", "?":
			fmt.Println("  fill RRGGBB   - set every LED to a color")
			fmt.Println("  set I RRGGBB  - set LED I to a color")
			fmt.Println("  show          - send the current buffer to the strip")
			fmt.Println("  quit          - exit")

		case "fill":
			if len(tokens) != 2 {
				fmt.Println("usage: fill RRGGBB")
				continue
			}
			r, g, b, err := parseColor(tokens[1])
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			stream.Solid(buf, r, g, b)

		case "set":
			if len(tokens) != 3 {
				fmt.Println("usage: set INDEX RRGGBB")
				continue
			}
			idx, err := strconv.Atoi(tokens[1])
			if err != nil || idx < 0 || idx >= *count {
				fmt.Printf("index must be 0..%d\n", *count-1)
				continue
			}
			r, g, b, err := parseColor(tokens[2])
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			buf[idx*3], buf[idx*3+1], buf[idx*3+2] = r, g, b

		case "show":
			if err := s.Send(buf); err != nil {
				log.Error().Err(err).Msg("send failed")
			}

		default:
			fmt.Printf("unknown command: %s (type 'help')\n", tokens[0])
		}
	}
	return scanner.Err()
}

func parseColor(hex string) (r, g, b uint8, err error) {
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("color %q is not RRGGBB", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("color %q is not RRGGBB", hex)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
