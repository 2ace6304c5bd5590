package tui

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubfsw/digitpad/classify"
	"github.com/ubfsw/digitpad/config"
	"github.com/ubfsw/digitpad/pad"
	"github.com/ubfsw/digitpad/session"
)

type fixedClassifier struct {
	res *classify.Result
	err error
}

func (f fixedClassifier) Classify(ctx context.Context, req classify.Request) (*classify.Result, error) {
	return f.res, f.err
}

func newModel(t *testing.T, c classify.Classifier) Model {
	p := pad.New(pad.Options{Config: config.Default(), Classifier: c})
	t.Cleanup(func() { p.Close() })
	return New(p, session.Static{Username: "ann"})
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func drag(m Model) Model {
	m, _ = update(m, mouse(tea.MouseActionPress, canvasLeft+10, canvasTop+5))
	m, _ = update(m, mouse(tea.MouseActionMotion, canvasLeft+20, canvasTop+15))
	m, _ = update(m, mouse(tea.MouseActionRelease, canvasLeft+20, canvasTop+15))
	return m
}

func TestMouseDragCommitsStroke(t *testing.T) {
	m := newModel(t, fixedClassifier{})
	m = drag(m)

	strokes := m.pad.Strokes()
	require.Len(t, strokes, 1)
	require.Len(t, strokes[0], 2)
	assert.InDelta(t, 52.5, strokes[0][0].X, 1e-9)
	assert.InDelta(t, 55, strokes[0][0].Y, 1e-9)
	assert.False(t, m.pad.Drawing())
}

func TestPressOutsideCanvasIgnored(t *testing.T) {
	m := newModel(t, fixedClassifier{})
	m, _ = update(m, mouse(tea.MouseActionPress, 0, 0))
	assert.False(t, m.pad.Drawing())
	m, _ = update(m, mouse(tea.MouseActionRelease, 0, 0))
	assert.Empty(t, m.pad.Strokes())
}

func TestKeysEditDrawing(t *testing.T) {
	m := newModel(t, fixedClassifier{})
	m = drag(m)
	m = drag(m)
	require.Len(t, m.pad.Strokes(), 2)

	m, _ = update(m, key("u"))
	assert.Len(t, m.pad.Strokes(), 1)

	m, _ = update(m, key("c"))
	assert.Empty(t, m.pad.Strokes())

	m, _ = update(m, key("4"))
	assert.Equal(t, 4, m.pad.GroundTruth())
}

func TestPredictKeyRunsCommand(t *testing.T) {
	conf := 0.5
	m := newModel(t, fixedClassifier{res: &classify.Result{Label: 3, Confidence: &conf}})
	m = drag(m)

	m, cmd := update(m, key("enter"))
	require.NotNil(t, cmd)
	msg := cmd()
	m, _ = update(m, msg)

	assert.Equal(t, classify.Succeeded, m.pad.Prediction().State)
	assert.Contains(t, m.View(), "Prediction: 3 (50.0%)")
}

func TestViewShowsError(t *testing.T) {
	m := newModel(t, fixedClassifier{err: &classify.HTTPError{StatusCode: 500, Body: "server error"}})
	_, cmd := update(m, key("p"))
	require.NotNil(t, cmd)
	cmd()

	assert.Contains(t, m.View(), "Error: server error")
	assert.Contains(t, m.View(), "user: ann")
}

func TestQuit(t *testing.T) {
	m := newModel(t, fixedClassifier{})
	_, cmd := update(m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBraillePlot(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	// dark left half
	draw.Draw(img, image.Rect(0, 0, 20, 40), image.NewUniform(color.Black), image.Point{}, draw.Src)

	br := newBrailleBuf(2, 1)
	br.plot(img)
	lines := br.toLines()
	require.Len(t, lines, 1)
	assert.Equal(t, string(rune(0x28FF))+" ", lines[0])
}

func TestBlankCanvasView(t *testing.T) {
	m := newModel(t, fixedClassifier{})
	view := m.canvasView()
	assert.NotContains(t, view, string(rune(0x28FF)))
	assert.True(t, strings.Contains(m.View(), "Draw a digit"))
}
