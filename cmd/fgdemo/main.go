// Command fgdemo renders one frame through a framegraph on the headless
// platform and saves the presented colour output as a PNG.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/backend/headless"
	"github.com/gogpu/framegraph/passes"
)

func main() {
	var (
		width   = flag.Int("width", 800, "surface width")
		height  = flag.Int("height", 600, "surface height")
		output  = flag.String("output", "frame.png", "output file")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		framegraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	//nolint:gosec // G115: flag values are small positive sizes
	platform := headless.New(uint32(*width), uint32(*height), 1)

	graph, err := buildGraph()
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}
	defer graph.Destroy()

	if err := graph.Finalize(platform); err != nil {
		log.Fatalf("Failed to finalize graph: %v", err)
	}
	if err := graph.ExecuteFrame(&framegraph.Frame{Index: 0, Number: 1}); err != nil {
		log.Fatalf("Failed to execute frame: %v", err)
	}

	img := platform.ColorImages()[0].(*headless.ColorImage).RGBA()
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Frame saved to %s (%dx%d), presented source %q\n",
		*output, *width, *height, graph.PresentationSource().Name())
}

// buildGraph assembles a two-pass chain: clear the screen to a deep blue,
// then blit a procedurally generated plasma image over it.
func buildGraph() (*framegraph.Graph, error) {
	g := framegraph.New("fgdemo")
	if err := g.AddGlobalSource("screen", framegraph.SourceTypeColor, framegraph.SourceOriginGlobal); err != nil {
		return nil, err
	}
	if err := g.AddGlobalSource("screen_depth", framegraph.SourceTypeDepthStencil, framegraph.SourceOriginGlobal); err != nil {
		return nil, err
	}

	clear := passes.NewClear(gputypes.Color{R: 0.06, G: 0.08, B: 0.25, A: 1})
	clear.WithDepth = true
	if _, err := g.AddPass("clear", clear); err != nil {
		return nil, err
	}

	blit := passes.NewBlit()
	blit.Source = plasmaImage(256, 256)
	if _, err := g.AddPass("blit", blit); err != nil {
		return nil, err
	}

	if err := g.SetSinkLinkage("clear", "input", "", "screen"); err != nil {
		return nil, err
	}
	if err := g.SetSinkLinkage("blit", "input", "clear", "out"); err != nil {
		return nil, err
	}
	return g, nil
}

// plasmaImage generates a small test card with overlapping sine waves.
func plasmaImage(w, h int) framegraph.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx := float64(x) / float64(w)
			fy := float64(y) / float64(h)
			v := math.Sin(fx*8) + math.Sin(fy*11) + math.Sin((fx+fy)*6)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = wave(v, 0)
			img.Pix[i+1] = wave(v, 2)
			img.Pix[i+2] = wave(v, 4)
			img.Pix[i+3] = 255
		}
	}
	return &demoImage{img: img}
}

// wave maps the plasma value to a byte with a phase offset per channel.
func wave(v, phase float64) byte {
	return byte((math.Sin(v+phase) + 1) * 127.5)
}

// demoImage adapts an *image.RGBA to framegraph.PixelImage.
type demoImage struct {
	img *image.RGBA
}

func (d *demoImage) Width() uint32 {
	//nolint:gosec // G115: bounds come from small positive constants
	return uint32(d.img.Bounds().Dx())
}

func (d *demoImage) Height() uint32 {
	//nolint:gosec // G115: bounds come from small positive constants
	return uint32(d.img.Bounds().Dy())
}

func (d *demoImage) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (d *demoImage) Pixels() []byte                 { return d.img.Pix }
func (d *demoImage) Stride() int                    { return d.img.Stride }

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
