package typst

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxUseDepth bounds nested <use> expansion.
const maxUseDepth = 8

var errNoSVG = errors.New("typst: no <svg> element")

// element is a parsed XML element. Text nodes have an empty name.
type element struct {
	name     xml.Name
	attr     []xml.Attr
	children []*element
	text     string
}

func (e *element) is(local string) bool {
	return e.text == "" && e.name.Local == local
}

func (e *element) get(local string) (string, bool) {
	for _, a := range e.attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// parseSVG reads svg into a tree rooted at the <svg> element. Namespace
// prefixes are kept as written.
func parseSVG(svg []byte) (*element, error) {
	d := xml.NewDecoder(bytes.NewReader(svg))
	doc := &element{}
	stack := []*element{doc}
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			e := &element{name: t.Name, attr: append([]xml.Attr(nil), t.Attr...)}
			top.children = append(top.children, e)
			stack = append(stack, e)
		case xml.EndElement:
			if len(stack) == 1 {
				return nil, fmt.Errorf("unexpected </%s>", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 1 && len(bytes.TrimSpace(t)) > 0 {
				top.children = append(top.children, &element{text: string(t)})
			}
		}
	}
	if len(stack) != 1 {
		return nil, io.ErrUnexpectedEOF
	}

	for _, c := range doc.children {
		if c.is("svg") {
			return c, nil
		}
	}
	return nil, errNoSVG
}

// flattener writes an SVG tree with every <use> replaced by a copy of what
// it references, so the rasterizer never has to resolve references.
type flattener struct {
	buf bytes.Buffer
	ids map[string]*element
}

func flatten(root *element) []byte {
	f := &flattener{ids: map[string]*element{}}
	f.index(root)
	f.write(root, 0, true)
	return f.buf.Bytes()
}

func (f *flattener) index(e *element) {
	if id, ok := e.get("id"); ok && id != "" {
		f.ids[id] = e
	}
	for _, c := range e.children {
		f.index(c)
	}
}

func (f *flattener) write(e *element, depth int, root bool) {
	switch {
	case e.text != "":
		_ = xml.EscapeText(&f.buf, []byte(e.text))
		return
	case e.is("symbol"):
		return
	case e.is("use"):
		f.writeUse(e, depth)
		return
	case e.is("defs") && !f.keepDefs(e):
		return
	}

	attrs := e.attr
	if root {
		// the document size is taken from these, the rasterizer only
		// understands unitless numbers
		attrs = without(attrs, "width", "height")
		if _, ok := e.get("viewBox"); !ok {
			if w, h, ok := documentSize(e); ok {
				attrs = append(attrs, xml.Attr{
					Name:  xml.Name{Local: "viewBox"},
					Value: fmt.Sprintf("0 0 %g %g", w, h),
				})
			}
		}
	}
	f.open(e.name, attrs)
	for _, c := range e.children {
		f.write(c, depth, false)
	}
	f.close(e.name)
}

// keepDefs reports whether a <defs> holds anything besides symbols.
func (f *flattener) keepDefs(e *element) bool {
	for _, c := range e.children {
		if c.text == "" && !c.is("symbol") {
			return true
		}
	}
	return false
}

func (f *flattener) writeUse(e *element, depth int) {
	href, _ := e.get("href")
	target, ok := f.ids[strings.TrimPrefix(href, "#")]
	if !ok || !strings.HasPrefix(href, "#") || depth >= maxUseDepth {
		return
	}

	x, _ := e.get("x")
	y, _ := e.get("y")
	transform := fmt.Sprintf("translate(%s %s)", number(x), number(y))
	if t, ok := e.get("transform"); ok {
		transform = t + " " + transform
	}

	g := xml.Name{Local: "g"}
	attrs := append([]xml.Attr{{Name: xml.Name{Local: "transform"}, Value: transform}},
		without(e.attr, "href", "x", "y", "width", "height", "transform", "id")...)
	f.open(g, attrs)
	if target.is("symbol") {
		for _, c := range target.children {
			f.write(c, depth+1, false)
		}
	} else {
		copied := *target
		copied.attr = without(target.attr, "id")
		f.write(&copied, depth+1, false)
	}
	f.close(g)
}

func (f *flattener) open(name xml.Name, attrs []xml.Attr) {
	f.buf.WriteByte('<')
	f.buf.WriteString(qualified(name))
	for _, a := range attrs {
		f.buf.WriteByte(' ')
		f.buf.WriteString(qualified(a.Name))
		f.buf.WriteString(`="`)
		_ = xml.EscapeText(&f.buf, []byte(a.Value))
		f.buf.WriteByte('"')
	}
	f.buf.WriteByte('>')
}

func (f *flattener) close(name xml.Name) {
	f.buf.WriteString("</")
	f.buf.WriteString(qualified(name))
	f.buf.WriteByte('>')
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func without(attrs []xml.Attr, locals ...string) []xml.Attr {
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		if !contains(locals, a.Name.Local) {
			out = append(out, a)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}

func number(s string) string {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return "0"
	}
	return strings.TrimSpace(s)
}

// documentSize returns the size given by the width and height attributes of
// the root element in px.
func documentSize(root *element) (w, h float64, ok bool) {
	ws, wok := root.get("width")
	hs, hok := root.get("height")
	if !wok || !hok {
		return 0, 0, false
	}
	w, wok = length(ws)
	h, hok = length(hs)
	return w, h, wok && hok
}

// length converts an SVG length to px. Unitless values are px already.
func length(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	scale := 1.0
	for unit, px := range map[string]float64{
		"px": 1,
		"pt": 4.0 / 3.0,
		"pc": 16,
		"mm": 96 / 25.4,
		"cm": 96 / 2.54,
		"in": 96,
	} {
		if strings.HasSuffix(s, unit) {
			s = strings.TrimSuffix(s, unit)
			scale = px
			break
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * scale, true
}
