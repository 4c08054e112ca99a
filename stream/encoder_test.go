package stream

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFFmpegArgs(t *testing.T) {
	spec := VideoSpec{Width: 1800, Height: 1000, FPS: 60, OutputPath: "output.mp4"}
	want := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-r", "60",
		"-video_size", "1800x1000",
		"-i", "-",
		"-vcodec", "libx264",
		"-pix_fmt", "yuv420p",
		"output.mp4",
	}
	assert.Equal(t, want, NewFFmpeg().Args(spec))
	assert.Equal(t, 1800*1000*4, spec.FrameBytes())
}

func lookPath(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return path
}

func TestFFmpegExitStatus(t *testing.T) {
	spec := VideoSpec{Width: 2, Height: 2, FPS: 1, OutputPath: "unused.mp4"}

	ok := NewFFmpeg()
	ok.Path = lookPath(t, "true")
	require.NoError(t, ok.Start(spec))
	done, err := ok.Close()
	assert.True(t, done)
	assert.NoError(t, err)

	fail := NewFFmpeg()
	fail.Path = lookPath(t, "false")
	require.NoError(t, fail.Start(spec))
	done, err = fail.Close()
	assert.False(t, done)
	assert.ErrorContains(t, err, "exited with status 1")
}

func TestFFmpegMissingBinary(t *testing.T) {
	e := NewFFmpeg()
	e.Path = "/nonexistent/ffmpeg"
	assert.Error(t, e.Start(VideoSpec{Width: 2, Height: 2, FPS: 1}))
}

func TestFFmpegRejectsShortFrame(t *testing.T) {
	e := NewFFmpeg()
	e.Path = lookPath(t, "true")
	require.NoError(t, e.Start(VideoSpec{Width: 2, Height: 2, FPS: 1}))
	assert.Error(t, e.WriteFrame(make([]byte, 3)))
	_, _ = e.Close()
}
