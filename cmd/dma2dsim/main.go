// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command dma2dsim renders a demo scene through the draw pipeline with a
// DMA2D unit driving a simulated peripheral, and writes the layer as PNG.
//
//	dma2dsim -out scene.png -format argb8888 -fill "#203040"
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/dma2d"
	"github.com/gogpu/dma2d/config"
	"github.com/gogpu/dma2d/draw"
	"github.com/gogpu/dma2d/imagedec"
	"github.com/gogpu/dma2d/sim"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type flags struct {
	config  string
	out     string
	fill    string
	image   string
	width   int
	height  int
	format  string
	verbose bool
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("dma2dsim", flag.ContinueOnError)
	fs.StringVar(&f.config, "config", "", "TOML config file (default: user config, then ./dma2d.toml)")
	fs.StringVar(&f.out, "out", "dma2d.png", "output PNG file")
	fs.StringVar(&f.fill, "fill", "#1e2a38", "background color")
	fs.StringVar(&f.image, "image", "", "image file to blit (default: generated)")
	fs.IntVar(&f.width, "width", 0, "layer width, overrides config")
	fs.IntVar(&f.height, "height", 0, "layer height, overrides config")
	fs.StringVar(&f.format, "format", "", "layer color format, overrides config")
	fs.BoolVar(&f.verbose, "v", false, "log pipeline events to stderr")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func loadConfig(f *flags) (*config.Config, error) {
	paths := config.DefaultPaths()
	if f.config != "" {
		if _, err := os.Stat(f.config); err != nil {
			return nil, err
		}
		paths = []string{f.config}
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}
	if f.width > 0 {
		cfg.Display.Width = f.width
	}
	if f.height > 0 {
		cfg.Display.Height = f.height
	}
	if f.format != "" {
		if err := cfg.Display.Format.UnmarshalText([]byte(f.format)); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

func parseColor(s string) (draw.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return draw.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return draw.Color{R: r, G: g, B: b}, nil
}

func toColor(c colorful.Color) draw.Color {
	r, g, b := c.Clamped().RGB255()
	return draw.Color{R: r, G: g, B: b}
}

func run(args []string, stdout io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if f.verbose {
		dma2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer dma2d.SetLogger(nil)
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	bg, err := parseColor(f.fill)
	if err != nil {
		return err
	}
	size, err := cfg.MemoryBytes()
	if err != nil {
		return err
	}
	cacheLimit, err := cfg.ImageCacheBytes()
	if err != nil {
		return err
	}

	mem := sim.NewMemory(cfg.Sim.Base, size)
	rcc := sim.NewRCC()
	dev := sim.NewDMA2D(mem, append(cfg.SimOptions(), sim.WithClock(rcc))...)

	dec := imagedec.New(mem, imagedec.WithCacheLimit(cacheLimit))
	defer dec.Close()

	p := draw.NewPipeline(dec)
	p.Register(draw.NewSoftwareUnit(p))
	defer p.Close()

	opts := append(cfg.UnitOptions(), dma2d.WithClock(rcc), dma2d.WithCache(mem))
	u := dma2d.New(p, dev, opts...)
	if err := u.Init(); err != nil {
		return err
	}
	defer u.Shutdown()

	var src any = demoImage(96, 64)
	if f.image != "" {
		src = f.image
	}

	area := image.Rect(0, 0, cfg.Display.Width, cfg.Display.Height)
	layer := p.NewLayer(area, cfg.Display.Format, mem)
	defer layer.Release()

	if err := buildScene(p, layer, area, bg, src); err != nil {
		return err
	}
	if err := p.Finish(layer); err != nil {
		return err
	}

	buf := layer.Buffer()
	if buf == nil {
		return errors.New("layer buffer was never allocated")
	}
	if err := writePNG(f.out, buf.Image()); err != nil {
		return err
	}

	report(stdout, p, layer, mem, dev, dec, buf)
	return nil
}

// buildScene queues a background, opaque and translucent bars, rounded
// corners and the image at 1:1, translucent and scaled.
func buildScene(p *draw.Pipeline, layer *draw.Layer, area image.Rectangle, bg draw.Color, src any) error {
	layer.AddFill(area, area, draw.FillDesc{Color: bg, Opa: draw.OpaCover})

	w, h := area.Dx(), area.Dy()
	barW := max(w/12, 1)
	barH := max(h/4, 1)

	for i := range 4 {
		c := colorful.Hsv(float64(i)*90, 0.7, 0.9)
		r := image.Rect(8+i*(barW+4), 8, 8+i*(barW+4)+barW, 8+barH)
		layer.AddFill(r, area, draw.FillDesc{Color: toColor(c), Opa: draw.OpaCover})
	}

	from, _ := colorful.Hex("#ff6f3c")
	to, _ := colorful.Hex("#3cc4ff")
	steps := 6
	for i := range steps {
		c := from.BlendLab(to, float64(i)/float64(steps-1))
		r := image.Rect(0, barH/2+i*barH/steps, w, barH/2+(i+1)*barH/steps).Add(image.Pt(0, barH))
		layer.AddFill(r, area, draw.FillDesc{Color: toColor(c), Opa: draw.Opa(60 + i*30)})
	}

	round := image.Rect(w-barW*3, 8, w-8, 8+barH)
	layer.AddFill(round, area, draw.FillDesc{Color: draw.ColorHex(0xF0F0F0), Opa: draw.OpaCover, Radius: 12})

	hdr, err := p.DecodeImageHeader(src)
	if err != nil {
		return err
	}
	y := h - hdr.Height - 8
	at := image.Rect(8, y, 8+hdr.Width, y+hdr.Height)
	layer.AddImage(at, area, draw.ImageDesc{Src: src, Opa: draw.OpaCover})

	at = at.Add(image.Pt(hdr.Width+16, 0))
	layer.AddImage(at, area, draw.ImageDesc{Src: src, Opa: draw.Opa50})

	at = at.Add(image.Pt(hdr.Width+16, 0))
	layer.AddImage(at, area, draw.ImageDesc{Src: src, Opa: draw.OpaCover, Scale: draw.ScaleNone * 3 / 4})
	return nil
}

// demoImage encodes a gradient with a translucent border as PNG.
func demoImage(w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	a, _ := colorful.Hex("#ffd166")
	b, _ := colorful.Hex("#7b2cbf")
	for y := range h {
		for x := range w {
			r, g, bl := a.BlendHcl(b, float64(x)/float64(w-1)).Clamped().RGB255()
			off := img.PixOffset(x, y)
			img.Pix[off+0] = r
			img.Pix[off+1] = g
			img.Pix[off+2] = bl
			img.Pix[off+3] = 0xFF
			if x < 4 || y < 4 || x >= w-4 || y >= h-4 {
				img.Pix[off+3] = 0x80
			}
		}
	}
	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		panic(err)
	}
	return out.Bytes()
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func report(w io.Writer, p *draw.Pipeline, layer *draw.Layer, mem *sim.Memory, dev *sim.DMA2D, dec *imagedec.Decoder, buf *draw.Buffer) {
	names := make(map[draw.UnitID]string)
	for _, u := range p.Units() {
		names[u.ID()] = u.Name()
	}
	counts := make(map[string]int)
	for _, t := range layer.Tasks() {
		name, ok := names[t.PreferredUnit]
		if !ok {
			name = fmt.Sprintf("unit %d", t.PreferredUnit)
		}
		counts[name]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "layer %dx%d %s (texture %v)\n", buf.Width, buf.Height, buf.Format, buf.TextureFormat())
	for _, k := range keys {
		fmt.Fprintf(w, "  %-9s %d task(s)\n", k, counts[k])
	}
	fmt.Fprintf(w, "dma2d transfers: %d\n", dev.Transfers())
	cs := dec.Stats()
	fmt.Fprintf(w, "image cache: %d image(s), %s, %.0f%% hits\n",
		cs.Len, humanize.IBytes(uint64(cs.Size)), cs.HitRate()*100)
	fmt.Fprintf(w, "memory: %s of %s used\n",
		humanize.IBytes(uint64(mem.Used())), humanize.IBytes(uint64(mem.Size())))
}
