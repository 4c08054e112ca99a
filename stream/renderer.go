package stream

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"
)

// DefaultQueueSize is the number of frames that may wait for the encoder
// before Submit blocks.
const DefaultQueueSize = 8

var (
	// ErrFractionalFrameCount is returned when duration * fps is not a whole
	// number of frames.
	ErrFractionalFrameCount = errors.New("stream: duration * fps is not a whole number of frames")

	// ErrIncompleteRender is returned by Close when not every frame was submitted.
	ErrIncompleteRender = errors.New("stream: render closed before all frames were submitted")
)

// Options configure a Renderer.
type Options struct {
	DurationSecs float64
	FPS          int
	Width        int
	Height       int
	OutputPath   string

	// QueueSize bounds the frames buffered for the encoder. Zero means
	// DefaultQueueSize.
	QueueSize int

	// Encoder receives the frames. Nil means an ffmpeg process.
	Encoder VideoEncoder

	Reporters []ProgressReporter
}

// Renderer owns the pixel buffer and the frame clock, and streams every
// submitted frame to a VideoEncoder from a background goroutine.
//
// Frames are produced with GetFrame and handed back with Submit, one at a
// time. Once GetFrame reports no more frames, Finish flushes the encoder.
type Renderer struct {
	pixmap *gg.Pixmap
	width  int
	height int

	durationSecs float64
	fps          int
	totalFrames  int
	frameCounter int
	current      *Frame

	encoder   VideoEncoder
	writer    *frameWriter
	reporters []ProgressReporter

	finished  bool
	result    bool
	resultErr error
}

// NewRenderer validates opts, starts the encoder and the writer goroutine.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("stream: invalid frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 || opts.DurationSecs <= 0 {
		return nil, fmt.Errorf("stream: invalid duration %gs at %d fps", opts.DurationSecs, opts.FPS)
	}

	total := opts.DurationSecs * float64(opts.FPS)
	if total != math.Trunc(total) {
		return nil, fmt.Errorf("%w: %gs at %d fps is %g frames", ErrFractionalFrameCount, opts.DurationSecs, opts.FPS, total)
	}

	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	encoder := opts.Encoder
	if encoder == nil {
		encoder = NewFFmpeg()
	}

	r := &Renderer{
		pixmap:       gg.NewPixmap(opts.Width, opts.Height),
		width:        opts.Width,
		height:       opts.Height,
		durationSecs: opts.DurationSecs,
		fps:          opts.FPS,
		totalFrames:  int(total),
		encoder:      encoder,
		reporters:    opts.Reporters,
	}

	spec := VideoSpec{
		Width:      opts.Width,
		Height:     opts.Height,
		FPS:        opts.FPS,
		OutputPath: opts.OutputPath,
	}
	if err := encoder.Start(spec); err != nil {
		return nil, err
	}
	r.writer = newFrameWriter(encoder, queueSize)

	Logger().Info("renderer started",
		"size", fmt.Sprintf("%dx%d", r.width, r.height),
		"fps", r.fps,
		"frames", r.totalFrames,
		"output", opts.OutputPath)

	return r, nil
}

// FrameSize returns the raster dimensions.
func (r *Renderer) FrameSize() (int, int) {
	return r.width, r.height
}

// FPS returns the frame rate.
func (r *Renderer) FPS() int {
	return r.fps
}

// Duration returns the length of the video in seconds.
func (r *Renderer) Duration() float64 {
	return r.durationSecs
}

// TotalFrameCount returns duration * fps.
func (r *Renderer) TotalFrameCount() int {
	return r.totalFrames
}

// FrameCount returns the number of frames submitted so far.
func (r *Renderer) FrameCount() int {
	return r.frameCounter
}

// T returns normalised progress through the video. While a frame is being
// drawn it is the start time of that frame, so the last frame sees
// (N-1)/N and 1 is only observed after the final Submit.
func (r *Renderer) T() float64 {
	return float64(r.frameCounter) / float64(r.totalFrames)
}

// DurationParameter converts seconds into normalised time. It panics if
// seconds is longer than the video.
func (r *Renderer) DurationParameter(seconds float64) float64 {
	if seconds > r.durationSecs {
		panic(fmt.Sprintf("stream: %gs is longer than the %gs render", seconds, r.durationSecs))
	}
	return seconds * float64(r.fps) / float64(r.totalFrames)
}

// GetFrame returns the next frame to draw, or false once every frame has
// been produced. It panics if the previous frame was not submitted.
func (r *Renderer) GetFrame() (*Frame, bool) {
	if r.current != nil {
		panic(fmt.Sprintf("stream: frame %d is still outstanding", r.current.index))
	}
	if r.finished || r.frameCounter >= r.totalFrames {
		return nil, false
	}

	dc := gg.NewContext(r.width, r.height, gg.WithPixmap(r.pixmap))
	r.current = newFrame(dc, r.frameCounter)
	return r.current, true
}

// Submit hands f back, queues a copy of the pixel buffer for encoding and
// advances the clock. It blocks only while the encoder queue is full.
func (r *Renderer) Submit(f *Frame) {
	if f == nil || f != r.current {
		panic("stream: submitted frame is not the outstanding frame")
	}

	_ = f.dc.FlushGPU()
	f.release()
	r.current = nil

	pix := make([]byte, len(r.pixmap.Data()))
	copy(pix, r.pixmap.Data())
	r.writer.push(pix)

	r.frameCounter++
	r.report(false)
}

// Run draws every remaining frame with draw. The frame is submitted when
// draw returns nil; an error abandons the frame and stops the loop.
func (r *Renderer) Run(draw func(f *Frame, t float64) error) error {
	for {
		f, ok := r.GetFrame()
		if !ok {
			return nil
		}
		if err := draw(f, r.T()); err != nil {
			r.discard(f)
			return fmt.Errorf("frame %d: %w", f.index, err)
		}
		r.Submit(f)
	}
}

// Finish waits for every frame to reach the encoder and for the encoder to
// exit. It returns true if the video was produced successfully. It panics if
// frames are still missing.
func (r *Renderer) Finish() (bool, error) {
	if r.finished {
		return r.result, r.resultErr
	}
	if r.frameCounter != r.totalFrames {
		panic(fmt.Sprintf("stream: finish after %d of %d frames", r.frameCounter, r.totalFrames))
	}
	return r.shutdown()
}

// Close finishes the render if Finish has not been called. A render that
// is missing frames is still shut down, and ErrIncompleteRender returned.
// After Finish it returns the error Finish reported.
func (r *Renderer) Close() error {
	if r.finished {
		return r.resultErr
	}
	if r.current != nil {
		Logger().Error("frame created but never submitted", "frame", r.current.index)
		r.discard(r.current)
	}
	if r.frameCounter == r.totalFrames {
		_, err := r.Finish()
		return err
	}

	Logger().Warn("closing incomplete render", "frames", r.frameCounter, "total", r.totalFrames)
	_, err := r.shutdown()
	return errors.Join(ErrIncompleteRender, err)
}

func (r *Renderer) discard(f *Frame) {
	f.release()
	if r.current == f {
		r.current = nil
	}
}

func (r *Renderer) shutdown() (bool, error) {
	r.finished = true

	written, writeErr := r.writer.close()
	ok, encErr := r.encoder.Close()

	r.result = ok && writeErr == nil
	r.resultErr = errors.Join(writeErr, encErr)
	r.report(true)

	Logger().Info("renderer finished", "frames", written, "ok", r.result)
	return r.result, r.resultErr
}

func (r *Renderer) report(done bool) {
	if len(r.reporters) == 0 {
		return
	}
	p := Progress{
		Frame: r.frameCounter,
		Total: r.totalFrames,
		T:     r.T(),
		Done:  done,
	}
	for _, rep := range r.reporters {
		rep.Report(p)
	}
}
