package shell

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubfsw/digitpad/config"
	"github.com/ubfsw/digitpad/pad"
	"github.com/ubfsw/digitpad/session"
)

func TestParsePointerArgs(t *testing.T) {
	id, x, y, err := parsePointerArgs("down", []string{"10", "20.5"}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.5, y)

	id, _, _, err = parsePointerArgs("move", []string{"--pointer", "3", "1", "2"}, true)
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	id, _, _, err = parsePointerArgs("up", []string{"-p", "2"}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	_, _, _, err = parsePointerArgs("down", []string{"10"}, true)
	assert.Error(t, err)

	_, _, _, err = parsePointerArgs("down", []string{"ten", "20"}, true)
	assert.EqualError(t, err, `invalid x "ten"`)
}

func TestParseStroke(t *testing.T) {
	points, err := parseStroke([]string{"1,2", "3.5,4"})
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{1, 2}, {3.5, 4}}, points)

	_, err = parseStroke(nil)
	assert.Error(t, err)

	_, err = parseStroke([]string{"1;2"})
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(1, 0, color.Gray{Y: 0})

	assert.Equal(t, "  @@\n", preview(img))
}

func newTestCtxt(t *testing.T) *ShellCtxt {
	p := pad.New(pad.Options{Config: config.Default()})
	t.Cleanup(func() { p.Close() })
	store, err := session.Open(filepath.Join(t.TempDir(), "session.yaml"))
	require.NoError(t, err)
	return &ShellCtxt{Pad: p, Session: store}
}

func TestPrompt(t *testing.T) {
	ctx := newTestCtxt(t)
	assert.Equal(t, "[anonymous label:0 strokes:0]>", ctx.prompt())

	require.NoError(t, ctx.Session.Login("ann", ""))
	require.NoError(t, ctx.Pad.SetGroundTruth(5))
	ctx.Pad.PointerDown(1, 10, 10)
	ctx.Pad.PointerMove(1, 20, 20)
	ctx.Pad.PointerUp(1)
	assert.Equal(t, "[ann label:5 strokes:1]>", ctx.prompt())
}

func TestExport(t *testing.T) {
	ctx := newTestCtxt(t)
	dir := t.TempDir()

	small := filepath.Join(dir, "digit.png")
	require.NoError(t, export(ctx, small, false))
	full := filepath.Join(dir, "canvas.png")
	require.NoError(t, export(ctx, full, true))

	for name, size := range map[string]int{small: 28, full: 280} {
		data, err := os.ReadFile(name)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, size, img.Bounds().Dx(), name)
	}
}

func TestCompleter(t *testing.T) {
	s := shellPathCompleter{cmdToCompleter{
		"label":  func([]string) []string { return []string{"1", "7"} },
		"logout": nil,
	}}

	line, n := s.Do([]rune("lab"), 3)
	assert.Equal(t, 3, n)
	assert.Equal(t, [][]rune{[]rune("el ")}, line)

	line, _ = s.Do([]rune("label 7"), 7)
	require.Len(t, line, 1)
	assert.True(t, strings.HasPrefix(string(line[0]), " "))
}
