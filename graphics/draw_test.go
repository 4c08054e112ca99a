package graphics

import (
	"image/color"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pixel(dc *gg.Context, x, y int) color.RGBA {
	r, g, b, a := dc.Image().At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestClear(t *testing.T) {
	dc := gg.NewContext(4, 4)
	Clear(dc, White)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, pixel(dc, 3, 3))
}

func TestDrawCircleFill(t *testing.T) {
	dc := gg.NewContext(32, 32)
	Clear(dc, Black)

	fill := Yellow
	require.NoError(t, DrawCircle(dc, 16, 16, 8, 2, Yellow, &fill))

	c := pixel(dc, 16, 16)
	assert.Greater(t, c.R, uint8(200))
	assert.Greater(t, c.G, uint8(200))
	assert.Less(t, c.B, uint8(50))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, pixel(dc, 1, 1))
}

func TestDrawLine(t *testing.T) {
	dc := gg.NewContext(32, 32)
	Clear(dc, Black)
	require.NoError(t, DrawLine(dc, 0, 16, 32, 16, 4, Red))

	c := pixel(dc, 10, 16)
	assert.Greater(t, c.R, uint8(200))
	assert.Less(t, c.G, uint8(50))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, pixel(dc, 10, 2))
}

func TestDrawArcEmpty(t *testing.T) {
	dc := gg.NewContext(8, 8)
	assert.NoError(t, DrawArc(dc, 4, 4, 2, 1, 1, 1, White))
}

func TestFace(t *testing.T) {
	face, err := Face(24)
	require.NoError(t, err)
	assert.NotNil(t, face)

	dc := gg.NewContext(64, 64)
	assert.NoError(t, DrawText(dc, "x", 10, 10, 24, White))
}

func TestHex(t *testing.T) {
	c := Hex("#ff0000")
	assert.InDelta(t, 1, c.R, 1e-9)
	assert.Equal(t, 1.0, c.A)
	assert.Equal(t, Black, Hex("nope"))
}

func TestBlend(t *testing.T) {
	c := Black.WithAlpha(0).Blend(White, 1)
	assert.InDelta(t, 1, c.R, 1e-6)
	assert.Equal(t, 1.0, c.A)
}

func TestGradientAt(t *testing.T) {
	start := Rainbow.At(0, 1, 0.5)
	end := Rainbow.At(1, 1, 0.5)
	past := Rainbow.At(2, 1, 0.5)
	assert.Equal(t, 1.0, start.A)
	assert.InDelta(t, start.R, end.R, 1e-6)
	assert.Equal(t, end, past)
}
