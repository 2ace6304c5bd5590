package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubfsw/digitpad/drawing"
)

func gray(img image.Image, x, y int) uint32 {
	r, _, _, _ := img.At(x, y).RGBA()
	return r >> 8
}

func TestNewIsBlank(t *testing.T) {
	r := New(DefaultOptions())
	img, err := r.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 280, 280), img.Bounds())
	for _, pt := range []image.Point{{0, 0}, {140, 140}, {279, 279}} {
		assert.Equal(t, uint32(255), gray(img, pt.X, pt.Y))
	}
}

func TestRedrawPaintsPolyline(t *testing.T) {
	r := New(DefaultOptions())
	r.Redraw([]drawing.Stroke{
		{{X: 40, Y: 140}, {X: 140, Y: 140}, {X: 240, Y: 140}},
	})

	img, err := r.Snapshot()
	require.NoError(t, err)
	assert.Less(t, gray(img, 140, 140), uint32(64))
	assert.Equal(t, uint32(255), gray(img, 140, 40))
}

func TestRedrawSkipsSinglePoints(t *testing.T) {
	r := New(DefaultOptions())
	r.Redraw([]drawing.Stroke{{{X: 140, Y: 140}}})

	img, err := r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint32(255), gray(img, 140, 140))
}

func TestLiveInkIsWiderThanRedraw(t *testing.T) {
	r := New(DefaultOptions())
	a, b := drawing.Point{X: 40, Y: 140}, drawing.Point{X: 240, Y: 140}

	r.DrawSegment(a, b)
	live, err := r.Snapshot()
	require.NoError(t, err)
	// 6px off the centre line is inside the 18px live ink but outside the
	// 5px redraw ink.
	assert.Less(t, gray(live, 140, 146), uint32(64))

	r.Redraw([]drawing.Stroke{{a, b}})
	redrawn, err := r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint32(255), gray(redrawn, 140, 146))
}

func TestSnapshotIsACopy(t *testing.T) {
	r := New(DefaultOptions())
	before, err := r.Snapshot()
	require.NoError(t, err)

	r.DrawSegment(drawing.Point{X: 0, Y: 0}, drawing.Point{X: 280, Y: 280})
	assert.Equal(t, uint32(255), gray(before, 140, 140))
}

func TestEncodePNGAndClose(t *testing.T) {
	r := New(DefaultOptions())
	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 280, img.Bounds().Dx())

	require.NoError(t, r.Close())
	_, err = r.Snapshot()
	assert.Error(t, err)
	assert.NoError(t, r.Close())
}

func TestDrawAfterCloseIsIgnored(t *testing.T) {
	r := New(DefaultOptions())
	require.NoError(t, r.Close())

	assert.NotPanics(t, func() {
		r.DrawSegment(drawing.Point{X: 10, Y: 10}, drawing.Point{X: 20, Y: 20})
		r.Redraw([]drawing.Stroke{{{X: 10, Y: 10}, {X: 20, Y: 20}}})
	})
}
