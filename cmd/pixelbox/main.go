// Command pixelbox inspects and previews images for the pixelbox LED matrix.
//
// Usage:
//
//	pixelbox info <image>                  Decode an image and describe its frames
//	pixelbox preview [options] <image>     Render a frame as the matrix would show it
//	pixelbox list [options] <root>         List the images a storage root would play
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/32bitkid/pixelbox"
	"github.com/32bitkid/pixelbox/anim"
	"github.com/32bitkid/pixelbox/codec"
	"github.com/32bitkid/pixelbox/resource"
	"github.com/32bitkid/pixelbox/screen"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:], os.Stdout)
	case "preview":
		err = runPreview(os.Args[2:], os.Stdout)
	case "list":
		err = runList(os.Args[2:], os.Stdout, os.Stderr)
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "pixelbox: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pixelbox: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  pixelbox info <image>                Decode an image and describe its frames
  pixelbox preview [options] <image>   Render a frame as the matrix would show it
  pixelbox list [options] <root>       List the images a storage root would play

Use "-" as image to read from stdin.

Run "pixelbox <command> -h" for command-specific options.
`)
}

// readInput reads the whole image. If path is "-", stdin is read.
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// decodeInput sniffs the image format from its content and decodes it.
func decodeInput(b []byte, maxPixels int) (resource.Info, []codec.Frame, error) {
	info, err := resource.Probe(bytes.NewReader(b))
	if err != nil {
		return info, nil, err
	}
	lut := resource.Decoders
	if maxPixels > 0 {
		lut = resource.Limited(maxPixels)
	}
	frames, err := resource.Decode(resource.NewResource("", info.Type, b), lut)
	return info, frames, err
}

// --- info ---

func runInfo(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	maxPixels := fs.Int("max-pixels", 0, "refuse images larger than this many pixels (0=decoder default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("info: missing input file\nUsage: pixelbox info <image>")
	}
	inputPath := fs.Arg(0)

	b, err := readInput(inputPath)
	if err != nil {
		return err
	}
	info, frames, err := decodeInput(b, *maxPixels)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	name := inputPath
	if inputPath == "-" {
		name = "<stdin>"
	}
	a := anim.FromFrames(frames)

	fmt.Fprintf(stdout, "File:       %s\n", name)
	fmt.Fprintf(stdout, "Format:     %s\n", strings.TrimPrefix(info.Type.Ext(), "."))
	fmt.Fprintf(stdout, "Dimensions: %d x %d\n", info.Width, info.Height)
	fmt.Fprintf(stdout, "Frames:     %d\n", len(frames))
	fmt.Fprintf(stdout, "Matrix:     %v\n", resource.CheckDimensions(frames, screen.Width, screen.Height) == nil)
	if !a.Static() {
		fmt.Fprintf(stdout, "Playable:   %d\n", a.Len())
		fmt.Fprintf(stdout, "Duration:   %v\n", a.Duration())
		for i, f := range a.Frames {
			fmt.Fprintf(stdout, "  frame %d: %v at (%d,%d)\n", i, f.Delay, f.X, f.Y)
		}
	}
	fmt.Fprintf(stdout, "File size:  %d bytes\n", len(b))
	return nil
}

// --- preview ---

func runPreview(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	scale := fs.Int("scale", 32, "size of one LED in output pixels")
	brightness := fs.Uint("brightness", 0xFF, "matrix brightness 0-255")
	frame := fs.Int("frame", 0, "frame of an animation to render")
	output := fs.String("o", "", `output path (default: <input>.preview.png, "-" for stdout)`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("preview: missing input file\nUsage: pixelbox preview [options] <image>")
	}
	if *brightness > 0xFF {
		return fmt.Errorf("preview: brightness %d out of range 0-255", *brightness)
	}
	inputPath := fs.Arg(0)

	b, err := readInput(inputPath)
	if err != nil {
		return err
	}
	_, frames, err := decodeInput(b, 0)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := resource.CheckDimensions(frames, screen.Width, screen.Height); err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	a := anim.FromFrames(frames)
	if *frame < 0 || *frame >= a.Len() {
		return fmt.Errorf("preview: frame %d out of range, image has %d", *frame, a.Len())
	}
	var f anim.Frame
	for i := 0; i <= *frame; i++ {
		f, _ = a.Next()
	}

	m := screen.NewMatrix()
	m.SetBrightness(uint8(*brightness))
	m.Set(f.Pixels)
	img := screen.RenderPreview(m.Image(), *scale)

	outPath := *output
	if outPath == "" {
		if inputPath == "-" {
			outPath = "-"
		} else {
			outPath = strings.TrimSuffix(inputPath, ".gif")
			outPath = strings.TrimSuffix(outPath, ".png") + ".preview.png"
		}
	}

	if outPath == "-" {
		return png.Encode(stdout, img)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// --- list ---

func runList(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "log skipped files")
	anySize := fs.Bool("any-size", false, "accept images of any size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("list: missing root directory\nUsage: pixelbox list [options] <root>")
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}

	root := pixelbox.NewRoot(fs.Arg(0))
	root.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if *anySize {
		root.Width, root.Height = 0, 0
	}
	if err := root.LoadMapping(); err != nil {
		return fmt.Errorf("list: %w", err)
	}

	for _, m := range root.Mapping {
		a, err := root.Load(m.Name())
		if err != nil {
			fmt.Fprintf(stdout, "%-24s %-4s error: %v\n", m.Name(), strings.TrimPrefix(m.Type().Ext(), "."), err)
			continue
		}
		fmt.Fprintf(stdout, "%-24s %-4s %d frame(s) %v\n", m.Name(), strings.TrimPrefix(m.Type().Ext(), "."), a.Len(), a.Duration())
	}
	return nil
}
