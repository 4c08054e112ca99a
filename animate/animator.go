// Package animate maps global render time onto eased, time-windowed
// animation progress.
package animate

import (
	"fmt"
	"strings"
)

// Easing shapes local progress in [0, 1].
type Easing func(t float64) float64

// FinishAction decides what an Animator does once time passes its window.
type FinishAction int

const (
	// Stop draws nothing after the window ends.
	Stop FinishAction = iota

	// RepeatEnd keeps drawing the final pose.
	RepeatEnd

	// StartOver restarts the window at the current time.
	StartOver

	// Rewind plays the window backwards, then restarts it.
	Rewind
)

var finishActionNames = [...]string{
	Stop:      "stop",
	RepeatEnd: "repeat-end",
	StartOver: "start-over",
	Rewind:    "rewind",
}

func (a FinishAction) String() string {
	if a < 0 || int(a) >= len(finishActionNames) {
		return fmt.Sprintf("FinishAction(%d)", int(a))
	}
	return finishActionNames[a]
}

// ParseFinishAction is the inverse of FinishAction.String.
func ParseFinishAction(s string) (FinishAction, error) {
	for i, name := range finishActionNames {
		if strings.EqualFold(name, s) {
			return FinishAction(i), nil
		}
	}
	return Stop, fmt.Errorf("animate: unknown finish action %q", s)
}

// Animator is a windowed easing state machine. It is a small value type:
// Step returns the successor state instead of modifying the receiver.
type Animator struct {
	start  float64
	end    float64
	length float64
	easing Easing
	action FinishAction
}

// New creates an Animator active over [start, end). It panics if the
// window is empty.
func New(start, end float64, easing Easing, action FinishAction) Animator {
	if end <= start {
		panic(fmt.Sprintf("animate: empty window [%g, %g)", start, end))
	}
	if easing == nil {
		easing = Linear
	}
	return Animator{
		start:  start,
		end:    end,
		length: end - start,
		easing: easing,
		action: action,
	}
}

// Window returns the current window. StartOver and Rewind move it forward.
func (a Animator) Window() (start, end float64) {
	return a.start, a.end
}

// Length returns the window length, which never changes.
func (a Animator) Length() float64 {
	return a.length
}

// Action returns the finish action.
func (a Animator) Action() FinishAction {
	return a.action
}

// Step evaluates the animator at global time t. It returns the next state,
// the eased progress and whether anything should be drawn.
func (a Animator) Step(t float64) (next Animator, progress float64, ok bool) {
	next = a
	if t < a.start {
		return next, 0, false
	}
	if t < a.end {
		return next, a.easing((t - a.start) / a.length), true
	}

	switch a.action {
	case Stop:
		return next, 0, false

	case RepeatEnd:
		return next, a.easing(1), true

	case StartOver:
		next.start = t
		next.end = t + a.length
		return next, a.easing(0), true

	case Rewind:
		overshoot := t - a.end
		if overshoot < a.length {
			return next, a.easing(1 - overshoot/a.length), true
		}
		next.start = t
		next.end = t + a.length
		return next, a.easing(0), true
	}

	panic(fmt.Sprintf("animate: invalid finish action %d", int(a.action)))
}

// Draw advances a to time t and calls fn with the eased progress when the
// animation is visible.
func (a *Animator) Draw(t float64, fn func(progress float64)) {
	next, p, ok := a.Step(t)
	*a = next
	if ok {
		fn(p)
	}
}

// IsFinished reports whether the animator has reached a terminal state.
// Looping animators never finish.
func (a Animator) IsFinished(t float64) bool {
	return (a.action == Stop || a.action == RepeatEnd) && t >= a.end
}
