// Package pad is the drawing canvas component. It wires pointer input, the
// stroke store, the renderer and the submission pipeline, and couples the
// drawing lifecycle with the prediction lifecycle: editing the drawing
// invalidates a stale prediction.
package pad

import (
	"context"
	"image"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/ubfsw/digitpad/classify"
	"github.com/ubfsw/digitpad/config"
	"github.com/ubfsw/digitpad/drawing"
	"github.com/ubfsw/digitpad/log"
	"github.com/ubfsw/digitpad/raster"
	"github.com/ubfsw/digitpad/render"
	"github.com/ubfsw/digitpad/session"
)

var ErrInvalidDigit = errors.New("ground truth must be a digit between 0 and 9")

// Pad is safe for concurrent use. Drawing is never blocked by a pending
// prediction.
type Pad struct {
	mu       sync.Mutex
	store    *drawing.Store
	renderer *render.Renderer
	machine  *drawing.Machine
	truth    int

	exporter raster.Exporter
	pipeline *classify.Pipeline
	session  session.Provider
}

// Options assemble a pad. Session and Capturer may be nil.
type Options struct {
	Config     config.Config
	Classifier classify.Classifier
	Session    session.Provider
	Capturer   drawing.Capturer
}

// New mounts an empty pad and paints the blank surface.
func New(opts Options) *Pad {
	cfg := opts.Config
	ro := render.DefaultOptions()
	ro.Size = cfg.CanvasSize
	ro.LiveWidth = cfg.LiveInkWidth
	ro.RedrawWidth = cfg.RedrawInkWidth

	classifier := opts.Classifier
	if classifier == nil {
		classifier = classify.NewClient(cfg.APIURL, cfg.Timeout)
	}
	provider := opts.Session
	if provider == nil {
		provider = session.Static{}
	}

	p := &Pad{
		store:    drawing.NewStore(),
		renderer: render.New(ro),
		session:  provider,
	}
	p.exporter = raster.Exporter{Size: cfg.RasterSize, Background: p.renderer.Background()}
	p.pipeline = classify.NewPipeline(classifier, p.exporter)
	size := float64(cfg.CanvasSize)
	p.machine = drawing.NewMachine(p.store, p.renderer, opts.Capturer, size, size)
	return p
}

func (p *Pad) Size() int {
	return p.renderer.Size()
}

func (p *Pad) PointerDown(pointerID int, x, y float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.machine.PointerDown(pointerID, drawing.Point{X: x, Y: y})
}

func (p *Pad) PointerMove(pointerID int, x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.machine.PointerMove(pointerID, drawing.Point{X: x, Y: y})
}

func (p *Pad) PointerUp(pointerID int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.machine.PointerUp(pointerID)
}

func (p *Pad) PointerCancel(pointerID int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.machine.PointerCancel(pointerID)
}

// Clear empties the drawing and forgets the last prediction.
func (p *Pad) Clear() {
	p.mu.Lock()
	p.store.Clear()
	p.renderer.Redraw(nil)
	p.mu.Unlock()

	p.pipeline.Reset()
}

// Undo drops the last completed stroke and forgets the last prediction.
// A stroke in progress is never undone.
func (p *Pad) Undo() {
	p.mu.Lock()
	if p.store.Undo() {
		p.renderer.Redraw(p.store.Strokes())
	}
	p.mu.Unlock()

	p.pipeline.Reset()
}

// CanUndo reports whether Undo would remove a stroke.
func (p *Pad) CanUndo() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Len() > 0 && !p.store.Drawing()
}

func (p *Pad) SetGroundTruth(d int) error {
	if d < 0 || d > 9 {
		return ErrInvalidDigit
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.truth = d
	return nil
}

func (p *Pad) GroundTruth() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.truth
}

func (p *Pad) Strokes() []drawing.Stroke {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Strokes()
}

func (p *Pad) Drawing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.machine.State() == drawing.Drawing
}

// Snapshot copies the full-size surface.
func (p *Pad) Snapshot() (image.Image, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderer.Snapshot()
}

// EncodePNG writes the full-size surface.
func (p *Pad) EncodePNG(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderer.EncodePNG(w)
}

// Raster exports the image a prediction would submit right now.
func (p *Pad) Raster() (*raster.Raster, error) {
	return p.exporter.Export(p)
}

// Predict submits the current drawing with the ground truth and session.
// The surface is copied before the request goes out, so drawing may go on
// while it is pending.
func (p *Pad) Predict(ctx context.Context) (*classify.Result, error) {
	p.mu.Lock()
	meta := p.metadata()
	p.mu.Unlock()

	log.Trace.Printf("predicting with true_label=%d user=%q", meta.GroundTruth, meta.Username)
	return p.pipeline.Predict(ctx, p, meta)
}

func (p *Pad) metadata() classify.Metadata {
	s := p.session.Session()
	return classify.Metadata{
		GroundTruth: p.truth,
		Username:    s.Username,
		DeviceID:    s.DeviceID,
		AuthToken:   s.AuthToken,
	}
}

// Prediction reports the pipeline state, result and error message.
func (p *Pad) Prediction() classify.Status {
	return p.pipeline.Status()
}

// Status is a serialisable summary of the pad.
type Status struct {
	Strokes     int             `json:"strokes"`
	Drawing     bool            `json:"drawing"`
	GroundTruth int             `json:"ground_truth"`
	Prediction  classify.Status `json:"prediction"`
}

func (p *Pad) Status() Status {
	p.mu.Lock()
	st := Status{
		Strokes:     p.store.Len(),
		Drawing:     p.machine.State() == drawing.Drawing,
		GroundTruth: p.truth,
	}
	p.mu.Unlock()
	st.Prediction = p.pipeline.Status()
	return st
}

// Close releases the surface.
func (p *Pad) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderer.Close()
}
