// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import "github.com/gogpu/dma2d/draw"

// DefaultScore is the score the unit claims tasks with unless configured
// otherwise. It beats draw.ScoreBaseline, which the software unit keeps.
const DefaultScore = 80

// ScoreStrategy decides the score the unit offers for a task it can draw.
// Returning draw.ScoreBaseline or higher leaves the task to other units.
type ScoreStrategy interface {
	Score(t *draw.Task) int
}

// FixedScore offers the same score for every task.
type FixedScore int

// Score returns s.
func (s FixedScore) Score(*draw.Task) int { return int(s) }

// AreaScore offers score for tasks whose draw area covers at least
// minPixels pixels and declines smaller ones, where the cost of
// programming the peripheral outweighs the CPU work.
func AreaScore(score, minPixels int) ScoreStrategy {
	return areaScore{score: score, minPixels: minPixels}
}

type areaScore struct {
	score     int
	minPixels int
}

func (s areaScore) Score(t *draw.Task) int {
	r := t.DrawArea()
	if r.Dx()*r.Dy() < s.minPixels {
		return draw.ScoreBaseline
	}
	return s.score
}
