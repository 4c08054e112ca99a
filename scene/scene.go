// Package scene contains the animations framecast can render.
package scene

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/matt-g-everett/framecast/stream"
	"github.com/matt-g-everett/framecast/typst"
)

// A Scene draws one frame at normalised time t.
type Scene interface {
	Draw(f *stream.Frame, t float64) error
}

// Options carry what scenes may need beyond the renderer.
type Options struct {
	Ctx      context.Context
	Compiler typst.VectorCompiler
	Seed     int64
}

type factory func(r *stream.Renderer, opts Options) (Scene, error)

var factories = map[string]factory{
	"axes": func(r *stream.Renderer, _ Options) (Scene, error) {
		return NewAxes(r)
	},
	"equation": func(r *stream.Renderer, opts Options) (Scene, error) {
		return NewEquation(opts.Ctx, r, opts.Compiler)
	},
	"streak": func(r *stream.Renderer, opts Options) (Scene, error) {
		return NewStreak(r, opts.Seed), nil
	},
	"stripes": func(r *stream.Renderer, opts Options) (Scene, error) {
		return NewStripes(r, opts.Seed), nil
	},
	"twinkle": func(r *stream.Renderer, opts Options) (Scene, error) {
		return NewTwinkle(r, opts.Seed), nil
	},
}

// Names lists the available scenes.
func Names() []string {
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New builds the scene called name. Names joined with "+" are layered
// bottom to top, e.g. "twinkle+equation".
func New(name string, r *stream.Renderer, opts Options) (Scene, error) {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.Compiler == nil {
		opts.Compiler = typst.NewCompiler()
	}

	var layers Stack
	for _, part := range strings.Split(name, "+") {
		part = strings.TrimSpace(part)
		fn, ok := factories[part]
		if !ok {
			return nil, fmt.Errorf("scene: unknown scene %q (have %s)", part, strings.Join(Names(), ", "))
		}
		s, err := fn(r, opts)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", part, err)
		}
		layers = append(layers, s)
	}

	if len(layers) == 1 {
		return layers[0], nil
	}
	return layers, nil
}

// Stack draws its scenes in order, so later scenes appear on top.
type Stack []Scene

// Draw draws every layer.
func (s Stack) Draw(f *stream.Frame, t float64) error {
	for _, layer := range s {
		if err := layer.Draw(f, t); err != nil {
			return err
		}
	}
	return nil
}

// seconds converts a time from a script written for a 15 second video into
// normalised time for r, so every scene fits any configured duration.
func seconds(r *stream.Renderer, s float64) float64 {
	return r.DurationParameter(s * r.Duration() / 15)
}
