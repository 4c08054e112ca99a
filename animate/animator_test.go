package animate

import (
	"testing"

	"github.com/fogleman/ease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect runs a over ts and records the progress of every draw call, or
// -1 when nothing was drawn.
func collect(a *Animator, ts ...float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = -1
		a.Draw(t, func(p float64) { out[i] = p })
	}
	return out
}

func TestStopDrawsOnlyInsideWindow(t *testing.T) {
	a := New(0.2, 0.5, ease.InOutCubic, Stop)

	for _, tt := range []float64{0, 0.1, 0.19} {
		_, _, ok := a.Step(tt)
		assert.False(t, ok, "t=%g", tt)
	}
	for _, tt := range []float64{0.2, 0.3, 0.35, 0.49} {
		_, p, ok := a.Step(tt)
		require.True(t, ok, "t=%g", tt)
		assert.InDelta(t, ease.InOutCubic((tt-0.2)/0.3), p, 1e-12)
	}
	for _, tt := range []float64{0.5, 0.7, 1} {
		_, _, ok := a.Step(tt)
		assert.False(t, ok, "t=%g", tt)
		assert.True(t, a.IsFinished(tt))
	}
	assert.False(t, a.IsFinished(0.3))
}

func TestRepeatEndHoldsFinalPose(t *testing.T) {
	a := New(0, 0.25, ease.OutBounce, RepeatEnd)
	for _, tt := range []float64{0.25, 0.5, 0.9, 1} {
		_, p, ok := a.Step(tt)
		require.True(t, ok)
		assert.Equal(t, ease.OutBounce(1), p)
		assert.True(t, a.IsFinished(tt))
	}
}

func TestStartOverSlidesWindow(t *testing.T) {
	a := New(0, 0.1, Linear, StartOver)

	next, p, ok := a.Step(0.1)
	require.True(t, ok)
	assert.Equal(t, 0.0, p)

	start, end := next.Window()
	assert.Equal(t, 0.1, start)
	assert.InDelta(t, 0.2, end, 1e-12)
	assert.Equal(t, 0.1, next.Length())
	assert.False(t, next.IsFinished(0.5))

	_, p, ok = next.Step(0.15)
	require.True(t, ok)
	assert.InDelta(t, 0.5, p, 1e-9)
}

func TestStepDoesNotMutateReceiver(t *testing.T) {
	a := New(0, 0.1, Linear, StartOver)
	_, _, _ = a.Step(0.3)
	start, end := a.Window()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 0.1, end)
}

func TestRewindPingPong(t *testing.T) {
	a := New(0, 0.25, Linear, Rewind)

	got := collect(&a, 0.125, 0.25, 0.375)
	assert.Equal(t, []float64{0.5, 1, 0.5}, got)

	// exactly one window length past the end restarts forwards
	got = collect(&a, 0.5)
	assert.Equal(t, []float64{0}, got)
	start, end := a.Window()
	assert.Equal(t, 0.5, start)
	assert.Equal(t, 0.75, end)

	got = collect(&a, 0.625, 0.875, 1)
	assert.Equal(t, []float64{0.5, 0.5, 0}, got)
	assert.False(t, a.IsFinished(1))
}

func TestRewindJustBeforeBoundaryStillPlaysBackwards(t *testing.T) {
	a := New(0, 0.25, Linear, Rewind)
	_, p, ok := a.Step(0.49)
	require.True(t, ok)
	assert.InDelta(t, 0.04, p, 1e-9)
}

func TestDrawSkipsBeforeStart(t *testing.T) {
	a := New(0.5, 0.75, Linear, RepeatEnd)
	called := false
	a.Draw(0.25, func(float64) { called = true })
	assert.False(t, called)
}

func TestNewRejectsEmptyWindow(t *testing.T) {
	assert.Panics(t, func() { New(0.5, 0.5, Linear, Stop) })
	assert.Panics(t, func() { New(0.5, 0.2, Linear, Stop) })
}

func TestNilEasingIsLinear(t *testing.T) {
	a := New(0, 1, nil, Stop)
	_, p, ok := a.Step(0.25)
	require.True(t, ok)
	assert.Equal(t, 0.25, p)
}

func TestFinishActionNames(t *testing.T) {
	for _, action := range []FinishAction{Stop, RepeatEnd, StartOver, Rewind} {
		parsed, err := ParseFinishAction(action.String())
		require.NoError(t, err)
		assert.Equal(t, action, parsed)
	}
	_, err := ParseFinishAction("loop")
	assert.Error(t, err)
	assert.Equal(t, "FinishAction(9)", FinishAction(9).String())
}

func TestEasingByName(t *testing.T) {
	e, err := EasingByName("cubic-inout")
	require.NoError(t, err)
	assert.Equal(t, ease.InOutCubic(0.3), e(0.3))

	_, err = EasingByName("wobble")
	assert.Error(t, err)

	for _, name := range EasingNames() {
		e, err := EasingByName(name)
		require.NoError(t, err)
		assert.InDelta(t, 0, e(0), 0.01, name)
		assert.InDelta(t, 1, e(1), 0.01, name)
	}
}
