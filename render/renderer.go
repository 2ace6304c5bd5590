// Package render paints the pad surface from the stroke store.
package render

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/pkg/errors"

	"github.com/ubfsw/digitpad/drawing"
	"github.com/ubfsw/digitpad/log"
)

// Options configures the surface. Live and redraw ink widths are
// independent: segments drawn during a gesture are wider than the strokes
// repainted on redraw.
type Options struct {
	Size        int
	LiveWidth   float64
	RedrawWidth float64
	Background  color.Color
	Ink         color.Color
}

func DefaultOptions() Options {
	return Options{
		Size:        280,
		LiveWidth:   18,
		RedrawWidth: 5,
		Background:  color.White,
		Ink:         color.Black,
	}
}

// Renderer owns the square drawing surface. It is not safe for concurrent
// use; the pad serialises access.
type Renderer struct {
	dc   *gg.Context
	opts Options
}

// New creates a surface cleared to the background colour.
func New(opts Options) *Renderer {
	r := &Renderer{
		dc:   gg.NewContext(opts.Size, opts.Size),
		opts: opts,
	}
	r.dc.SetLineCap(gg.LineCapRound)
	r.dc.SetLineJoin(gg.LineJoinRound)
	r.Redraw(nil)
	return r
}

func (r *Renderer) Size() int {
	return r.opts.Size
}

func (r *Renderer) Background() color.Color {
	return r.opts.Background
}

// DrawSegment paints a live-ink segment over the current surface without
// clearing it.
func (r *Renderer) DrawSegment(a, b drawing.Point) {
	if r.dc == nil {
		return
	}
	r.dc.SetColor(r.opts.Ink)
	r.dc.SetLineWidth(r.opts.LiveWidth)
	r.dc.MoveTo(a.X, a.Y)
	r.dc.LineTo(b.X, b.Y)
	if err := r.dc.Stroke(); err != nil {
		log.Warning.Printf("segment stroke failed: %v", err)
	}
}

// Redraw clears the surface and repaints every stroke with at least two
// points as one polyline.
func (r *Renderer) Redraw(strokes []drawing.Stroke) {
	if r.dc == nil {
		return
	}
	r.dc.ClearWithColor(gg.FromColor(r.opts.Background))
	r.dc.SetColor(r.opts.Ink)
	r.dc.SetLineWidth(r.opts.RedrawWidth)

	for _, s := range strokes {
		if len(s) < 2 {
			continue
		}
		r.dc.MoveTo(s[0].X, s[0].Y)
		for _, p := range s[1:] {
			r.dc.LineTo(p.X, p.Y)
		}
		if err := r.dc.Stroke(); err != nil {
			log.Warning.Printf("redraw stroke failed: %v", err)
		}
	}
}

// Snapshot returns a copy of the surface.
func (r *Renderer) Snapshot() (image.Image, error) {
	if r.dc == nil {
		return nil, errors.New("surface released")
	}
	return r.dc.Image(), nil
}

// EncodePNG writes the full-size surface.
func (r *Renderer) EncodePNG(w io.Writer) error {
	if r.dc == nil {
		return errors.New("surface released")
	}
	return r.dc.EncodePNG(w)
}

// Close releases the surface. Later snapshots fail.
func (r *Renderer) Close() error {
	if r.dc == nil {
		return nil
	}
	err := r.dc.Close()
	r.dc = nil
	return err
}
