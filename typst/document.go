package typst

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/matt-g-everett/framecast/stream"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// ErrEmptyDocument is returned for SVG output without a usable size.
var ErrEmptyDocument = errors.New("typst: document has no size")

// Document is a typeset vector graphic that can be rasterized and
// composited into frames.
//
// Translate and Scale only record placement. Build rasterizes at the
// current scale and must be called again whenever the scale changes; the
// translation is applied by Render.
type Document struct {
	icon   *oksvg.SvgIcon
	width  float64
	height float64

	tx, ty float64
	sx, sy float64

	raster *image.NRGBA
	buf    *gg.ImageBuf
}

// Load compiles markup with compiler and parses the result.
func Load(ctx context.Context, compiler VectorCompiler, markup string) (*Document, error) {
	out, err := compiler.Compile(ctx, Source(markup))
	if err != nil {
		return nil, err
	}
	return Parse(out)
}

// Parse reads an SVG document. References made with <use>, which is how
// typst places glyphs, are expanded inline before rasterizing.
//
// The size is taken from the width and height attributes converted to px,
// falling back to the viewBox when they are missing.
func Parse(svg []byte) (*Document, error) {
	root, err := parseSVG(svg)
	if err != nil {
		return nil, fmt.Errorf("typst: parsing svg: %w", err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(flatten(root)), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("typst: parsing svg: %w", err)
	}

	w, h, ok := documentSize(root)
	if !ok {
		w, h = icon.ViewBox.W, icon.ViewBox.H
	}
	if w <= 0 || h <= 0 || icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, ErrEmptyDocument
	}

	stream.Logger().Debug("typst document loaded", "width", w, "height", h, "paths", len(icon.SVGPaths))

	return &Document{
		icon:   icon,
		width:  w,
		height: h,
		sx:     1,
		sy:     1,
	}, nil
}

// Size returns the unscaled size of the document in px.
func (d *Document) Size() (w, h float64) {
	return d.width, d.height
}

// Translate sets where Render places the top-left corner.
func (d *Document) Translate(x, y float64) *Document {
	d.tx, d.ty = x, y
	return d
}

// Scale sets the rasterization scale used by the next Build.
func (d *Document) Scale(sx, sy float64) *Document {
	d.sx, d.sy = sx, sy
	return d
}

// Build rasterizes the document at the current scale, replacing any
// previous bitmap.
func (d *Document) Build() error {
	tw, th := d.width*d.sx, d.height*d.sy
	w, h := int(tw), int(th)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("typst: cannot rasterize at %dx%d", w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d.icon.SetTarget(0, 0, tw, th)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	d.icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	// rasterx writes premultiplied colour; the frame wants straight alpha.
	out := image.NewNRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, image.Point{}, draw.Src)

	d.raster = out
	d.buf = gg.ImageBufFromImage(out)
	return nil
}

// Image returns the bitmap from the last Build, or nil.
func (d *Document) Image() *image.NRGBA {
	return d.raster
}

// Render alpha-blends the built bitmap onto f at the translation offset.
// It panics if Build has not been called.
func (d *Document) Render(f *stream.Frame) {
	if d.buf == nil {
		panic("typst: Render called before Build")
	}
	f.Context().DrawImage(d.buf, d.tx, d.ty)
}
