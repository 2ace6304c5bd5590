// Package raster turns the pad surface into the small grayscale image the
// classifier expects.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/ubfsw/digitpad/log"
)

// Source is anything that can hand out a copy of a drawing surface.
type Source interface {
	Snapshot() (image.Image, error)
}

// ImageSource wraps a decoded image.
type ImageSource struct {
	Image image.Image
}

func (s ImageSource) Snapshot() (image.Image, error) {
	return s.Image, nil
}

// ExportError reports a surface that could not be read or encoded.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed: %v", e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Exporter downsamples a square surface to Size×Size.
type Exporter struct {
	Size       int
	Background color.Color
}

func NewExporter(size int) Exporter {
	return Exporter{Size: size, Background: color.White}
}

// Raster is an exported image together with its PNG encoding.
type Raster struct {
	Gray *image.Gray
	PNG  []byte
}

// Export snapshots src, scales the whole surface onto a background-filled
// Size×Size image, converts it to grayscale and encodes it as PNG.
func (e Exporter) Export(src Source) (*Raster, error) {
	if src == nil {
		return nil, &ExportError{Err: fmt.Errorf("no surface")}
	}
	img, err := src.Snapshot()
	if err != nil {
		return nil, &ExportError{Err: err}
	}
	if img == nil || img.Bounds().Empty() {
		return nil, &ExportError{Err: fmt.Errorf("surface is empty")}
	}

	bg := e.Background
	if bg == nil {
		bg = color.White
	}
	size := uint(e.Size)

	scaled := resize.Resize(size, size, img, resize.Bilinear)
	dst := imaging.New(e.Size, e.Size, bg)
	dst = imaging.Overlay(dst, scaled, image.Pt(0, 0), 1.0)
	dst = imaging.Grayscale(dst)

	gray := image.NewGray(dst.Bounds())
	draw.Draw(gray, gray.Bounds(), dst, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, gray, imaging.PNG); err != nil {
		return nil, &ExportError{Err: err}
	}
	log.Trace.Printf("exported %dx%d surface to %dx%d png (%d bytes)",
		img.Bounds().Dx(), img.Bounds().Dy(), e.Size, e.Size, buf.Len())

	return &Raster{Gray: gray, PNG: buf.Bytes()}, nil
}
