package typst

import (
	"os"
	"strings"
	"testing"

	"github.com/gogpu/gg"
	"github.com/matt-g-everett/framecast/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEquation(t *testing.T) []byte {
	t.Helper()
	svg, err := os.ReadFile("testdata/equation.svg")
	require.NoError(t, err)
	return svg
}

func TestFlattenExpandsGlyphUses(t *testing.T) {
	root, err := parseSVG(readEquation(t))
	require.NoError(t, err)

	out := string(flatten(root))
	assert.NotContains(t, out, "<use")
	assert.NotContains(t, out, "<symbol")
	assert.NotContains(t, out, "<defs")
	assert.Equal(t, 3, strings.Count(out, "<path"))
	assert.Contains(t, out, `<g transform="translate(0 0)" fill="#000000" fill-rule="nonzero">`)
	assert.Contains(t, out, `<g transform="translate(11 0)" fill="#000000" fill-rule="nonzero">`)

	// size attributes are dropped, the viewBox stays
	assert.NotContains(t, out, `width="17.2pt"`)
	assert.Contains(t, out, `viewBox="0 0 17.2 11.2"`)
	assert.Contains(t, out, `xmlns:xlink="http://www.w3.org/1999/xlink"`)
}

func TestFlattenUseOfPlainElement(t *testing.T) {
	root, err := parseSVG([]byte(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 10 10">
<defs><linearGradient id="fade"/><rect id="dot" width="1" height="1"/></defs>
<use xlink:href="#dot" x="2" y="3" transform="scale(2)"/>
<use xlink:href="#missing"/>
<use href="dot"/>
</svg>`))
	require.NoError(t, err)

	out := string(flatten(root))
	assert.Contains(t, out, `<g transform="scale(2) translate(2 3)"><rect width="1" height="1"></rect></g>`)
	assert.Equal(t, 1, strings.Count(out, "<g "))
	// defs holding more than symbols are kept for the rasterizer
	assert.Contains(t, out, `<linearGradient id="fade">`)
}

func TestFlattenStopsSelfReference(t *testing.T) {
	root, err := parseSVG([]byte(`<svg viewBox="0 0 1 1"><symbol id="a"><use href="#a"/></symbol><use href="#a"/></svg>`))
	require.NoError(t, err)

	out := string(flatten(root))
	assert.Equal(t, maxUseDepth, strings.Count(out, "<g "))
}

func TestParseSVGErrors(t *testing.T) {
	_, err := parseSVG([]byte("plain text"))
	assert.ErrorIs(t, err, errNoSVG)

	_, err = parseSVG([]byte(`<svg><g>`))
	assert.Error(t, err)
}

func TestLength(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want float64
		ok   bool
	}{
		{"20", 20, true},
		{"12px", 12, true},
		{"30pt", 40, true},
		{"1in", 96, true},
		{"25.4mm", 96, true},
		{" 3pc ", 48, true},
		{"auto", 0, false},
		{"-4pt", 0, false},
		{"", 0, false},
	} {
		got, ok := length(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.InDelta(t, tc.want, got, 1e-9, tc.in)
	}
}

func TestParseSizeInPixels(t *testing.T) {
	d, err := Parse(readEquation(t))
	require.NoError(t, err)

	w, h := d.Size()
	assert.InDelta(t, 17.2*4/3, w, 1e-9)
	assert.InDelta(t, 11.2*4/3, h, 1e-9)
}

func TestParseViewBoxFromSize(t *testing.T) {
	d, err := Parse([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="15pt" height="6pt"><rect width="20" height="8"/></svg>`))
	require.NoError(t, err)

	w, h := d.Size()
	assert.Equal(t, 20.0, w)
	assert.Equal(t, 8.0, h)
}

func TestBuildDrawsGlyphs(t *testing.T) {
	d, err := Parse(readEquation(t))
	require.NoError(t, err)
	require.NoError(t, d.Scale(3, 3).Build())

	// 3x of 4/3 px per pt is 4 px per pt
	img := d.Image()
	require.Equal(t, 68, img.Bounds().Dx())
	require.Equal(t, 44, img.Bounds().Dy())

	covered := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			covered++
		}
	}
	assert.Greater(t, covered, 200)

	// the centre of both x glyphs and the base of the superscript
	assert.Equal(t, uint8(255), img.NRGBAAt(12, 22).A)
	assert.Equal(t, uint8(255), img.NRGBAAt(56, 22).A)
	assert.Equal(t, uint8(255), img.NRGBAAt(33, 16).A)
	assert.Equal(t, uint8(0), img.NRGBAAt(2, 2).A)
}

func TestRenderDrawsGlyphsIntoFrame(t *testing.T) {
	r, err := stream.NewRenderer(stream.Options{
		DurationSecs: 1,
		FPS:          1,
		Width:        96,
		Height:       64,
		Encoder:      discard{},
	})
	require.NoError(t, err)
	defer r.Close()

	d, err := Parse(readEquation(t))
	require.NoError(t, err)
	require.NoError(t, d.Translate(10, 5).Scale(3, 3).Build())

	f, ok := r.GetFrame()
	require.True(t, ok)
	f.Context().ClearWithColor(gg.White)
	d.Render(f)

	img := f.Context().Image()
	changed := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 96; x++ {
			if cr, _, _, _ := img.At(x, y).RGBA(); cr != 0xffff {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 200)

	cr, cg, cb, _ := img.At(22, 27).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{cr, cg, cb})

	r.Submit(f)
}
