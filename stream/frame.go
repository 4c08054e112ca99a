package stream

import (
	"runtime"

	"github.com/gogpu/gg"
)

// Frame is the drawing handle for one tick of a Renderer. It is valid from
// GetFrame until it is passed to Submit and must be submitted exactly once.
type Frame struct {
	dc        *gg.Context
	index     int
	submitted bool
}

func newFrame(dc *gg.Context, index int) *Frame {
	f := &Frame{dc: dc, index: index}
	runtime.SetFinalizer(f, (*Frame).leaked)
	return f
}

// Context returns the paint context bound to the renderer's pixel buffer.
func (f *Frame) Context() *gg.Context {
	if f.submitted {
		panic("stream: drawing on a frame that was already submitted")
	}
	return f.dc
}

// Index returns the zero-based position of the frame in the video.
func (f *Frame) Index() int {
	return f.index
}

// Submitted reports whether the frame has been handed back to its Renderer.
func (f *Frame) Submitted() bool {
	return f.submitted
}

// release drops the paint context so nothing else can draw through f.
func (f *Frame) release() {
	runtime.SetFinalizer(f, nil)
	f.submitted = true
	if f.dc != nil {
		_ = f.dc.Close()
		f.dc = nil
	}
}

func (f *Frame) leaked() {
	if !f.submitted {
		Logger().Error("frame created but never submitted", "frame", f.index)
	}
}
