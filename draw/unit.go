// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw

// UnitID identifies a draw unit in the pipeline.
type UnitID int

// Well-known unit IDs.
const (
	UnitNone     UnitID = 0
	UnitSoftware UnitID = 1
)

// Evaluation is a unit's answer to "can you draw this task?".
type Evaluation int

const (
	// EvalHardReject: the unit can never draw into this task's layer.
	// The pipeline stops asking the unit about the layer.
	EvalHardReject Evaluation = -1
	// EvalSoftReject: the unit cannot draw this task, siblings may still fit.
	EvalSoftReject Evaluation = 0
	// EvalAccept: the unit can draw the task.
	EvalAccept Evaluation = 1
)

// String returns the evaluation name.
func (e Evaluation) String() string {
	switch e {
	case EvalHardReject:
		return "hard-reject"
	case EvalSoftReject:
		return "soft-reject"
	case EvalAccept:
		return "accept"
	default:
		return "invalid"
	}
}

// DispatchResult is the outcome of one scheduling quantum.
type DispatchResult int

const (
	// DispatchIdle: nothing for this unit to do on the layer now.
	DispatchIdle DispatchResult = -1
	// DispatchNoProgress: the unit is busy and did not look at the queue.
	DispatchNoProgress DispatchResult = 0
	// DispatchDone: the unit claimed and finished one task.
	DispatchDone DispatchResult = 1
)

// String returns the result name.
func (r DispatchResult) String() string {
	switch r {
	case DispatchIdle:
		return "idle"
	case DispatchNoProgress:
		return "no-progress"
	case DispatchDone:
		return "done"
	default:
		return "invalid"
	}
}

// Unit is a rendering backend competing for draw tasks.
type Unit interface {
	// ID returns the unit's pipeline identifier.
	ID() UnitID

	// Name returns a short human-readable name.
	Name() string

	// Evaluate decides whether the unit can draw t. On acceptance it may
	// claim the task with Task.Claim.
	Evaluate(t *Task) Evaluation

	// Dispatch claims and executes at most one task of layer.
	Dispatch(layer *Layer) DispatchResult

	// Delete releases unit-private resources at pipeline teardown.
	Delete() error
}
