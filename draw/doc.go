// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package draw is the host side of the asynchronous rendering pipeline:
// layers collect draw tasks, every registered draw unit evaluates each task
// as it is added, and the dispatch loop lets each unit claim and execute
// the tasks it won.
//
// # Units
//
// A Unit is one rendering backend (the software renderer, a blitter, a
// GPU). Units compete for tasks through Evaluate, which returns an
// Evaluation and may lower the task's score and claim it:
//
//	p := draw.NewPipeline(decoder)
//	p.Register(draw.NewSoftwareUnit(p))
//	p.Register(myAccelerator)
//
// Lower scores win. Every new task starts at ScoreBaseline with no
// preferred unit; a unit claims a task by writing a lower score and its
// own ID.
//
// # Dispatch
//
// Finish drives a layer to completion:
//
//	layer := p.NewLayer(image.Rect(0, 0, 320, 240), draw.FormatRGB565, alloc)
//	layer.AddFill(area, area, draw.FillDesc{Color: draw.ColorHex(0x3366ff), Opa: draw.OpaCover})
//	if err := p.Finish(layer); err != nil {
//		log.Fatal(err)
//	}
//
// Each dispatch pass offers the layer to every unit once. A unit that
// executes a task calls RequestDispatch so the loop runs another pass.
package draw
