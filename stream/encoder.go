package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// VideoSpec describes the raw frames handed to a VideoEncoder.
type VideoSpec struct {
	Width      int
	Height     int
	FPS        int
	OutputPath string
}

// FrameBytes returns the size of one raw RGBA frame.
func (s VideoSpec) FrameBytes() int {
	return s.Width * s.Height * 4
}

// A VideoEncoder consumes raw RGBA frames in order and produces a video.
type VideoEncoder interface {
	// Start prepares the encoder for frames matching spec.
	Start(spec VideoSpec) error

	// WriteFrame writes exactly spec.FrameBytes() bytes.
	WriteFrame(pix []byte) error

	// Close ends the input stream, waits for the encoder to finish and
	// reports whether it succeeded.
	Close() (bool, error)
}

// FFmpeg is a VideoEncoder that pipes raw frames into an ffmpeg process.
type FFmpeg struct {
	// Path of the ffmpeg binary. Defaults to "ffmpeg".
	Path string

	// Codec and PixelFormat of the output stream.
	Codec       string
	PixelFormat string

	// ShowOutput forwards ffmpeg's stdout and stderr to ours.
	ShowOutput bool

	spec    VideoSpec
	encoder *exec.Cmd
	pipe    io.WriteCloser
	buf     *bufio.Writer
}

// NewFFmpeg creates an FFmpeg encoder producing yuv420p H.264.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{
		Path:        "ffmpeg",
		Codec:       "libx264",
		PixelFormat: "yuv420p",
	}
}

// Args returns the ffmpeg command line for spec.
func (vid *FFmpeg) Args(spec VideoSpec) []string {
	return []string{
		"-y", // overwrite output without asking
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-r", strconv.Itoa(spec.FPS),
		"-video_size", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"-i", "-", // frames arrive on stdin
		"-vcodec", vid.Codec,
		"-pix_fmt", vid.PixelFormat,
		spec.OutputPath,
	}
}

// Start spawns the ffmpeg process.
func (vid *FFmpeg) Start(spec VideoSpec) error {
	if vid.encoder != nil {
		return fmt.Errorf("ffmpeg: already started")
	}

	vid.spec = spec
	vid.encoder = exec.Command(vid.Path, vid.Args(spec)...)

	var err error
	vid.pipe, err = vid.encoder.StdinPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}

	if vid.ShowOutput {
		vid.encoder.Stdout = os.Stdout
		vid.encoder.Stderr = os.Stderr
	}

	if err := vid.encoder.Start(); err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}

	vid.buf = bufio.NewWriterSize(vid.pipe, spec.FrameBytes())
	Logger().Debug("ffmpeg started", "path", vid.Path, "output", spec.OutputPath)

	return nil
}

// WriteFrame writes one raw frame to ffmpeg's stdin.
func (vid *FFmpeg) WriteFrame(pix []byte) error {
	if len(pix) != vid.spec.FrameBytes() {
		return fmt.Errorf("ffmpeg: frame is %d bytes, expected %d", len(pix), vid.spec.FrameBytes())
	}
	if _, err := vid.buf.Write(pix); err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// Close flushes and closes stdin, then waits for ffmpeg to exit.
func (vid *FFmpeg) Close() (bool, error) {
	if vid.encoder == nil {
		return false, fmt.Errorf("ffmpeg: not started")
	}

	flushErr := vid.buf.Flush()
	closeErr := vid.pipe.Close()
	waitErr := vid.encoder.Wait()

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return false, fmt.Errorf("ffmpeg: exited with status %d", exitErr.ExitCode())
		}
		return false, fmt.Errorf("ffmpeg: %w", waitErr)
	}
	if flushErr != nil {
		return false, fmt.Errorf("ffmpeg: %w", flushErr)
	}
	if closeErr != nil {
		return false, fmt.Errorf("ffmpeg: %w", closeErr)
	}

	return true, nil
}
