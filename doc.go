// Package dma2d is a draw unit that runs fill and image-copy tasks on the
// STM32 Chrom-ART (DMA2D) 2-D blitter.
//
// # Overview
//
// A rendering pipeline built on package draw holds several units that
// compete for queued tasks. Each unit evaluates every task and claims it
// with a score; the lowest score wins. The DMA2D unit claims solid
// rectangles and unscaled images whose source and destination formats the
// peripheral can read and write, and leaves everything else to the
// software unit.
//
// # Quick Start
//
//	p := draw.NewPipeline(imagedec.New(mem))
//	p.Register(draw.NewSoftwareUnit(p))
//
//	u := dma2d.New(p, hal.NewMMIO(unsafe.Pointer(uintptr(0x4002B000))),
//		dma2d.WithClock(rcc),
//		dma2d.WithCache(dcache),
//	)
//	if err := u.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer u.Shutdown()
//
//	layer := p.NewLayer(image.Rect(0, 0, 480, 272), draw.FormatRGB565, mem)
//	layer.AddFill(layer.Area, layer.Area, draw.FillDesc{Color: draw.ColorHex(0x2060C0), Opa: draw.OpaCover})
//	if err := p.Finish(layer); err != nil {
//		log.Fatal(err)
//	}
//
// # Hardware programs
//
// A fill at or above [draw.OpaMax] is a register-to-memory transfer. A
// translucent fill blends a constant A8 foreground at the requested
// opacity over the destination in place. Image copies follow the same
// rule: opaque copies use memory-to-memory transfers (with pixel format
// conversion when the formats differ) and translucent copies blend the
// source over the destination.
//
// Every transfer waits for the previous one, cleans the data cache for
// the regions the peripheral reads, starts the engine, polls for
// completion within a timeout and invalidates the destination region.
// A timeout aborts the transfer and leaves the unit [HealthDegraded]
// until the next [Unit.Init].
package dma2d
