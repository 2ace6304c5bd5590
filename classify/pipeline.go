package classify

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/ubfsw/digitpad/log"
	"github.com/ubfsw/digitpad/raster"
)

type State int

const (
	Ready State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "ready"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classifier is the remote side of the pipeline.
type Classifier interface {
	Classify(ctx context.Context, req Request) (*Result, error)
}

// Status is a consistent view of the pipeline.
type Status struct {
	State   State   `json:"state"`
	Result  *Result `json:"result,omitempty"`
	Message string  `json:"error,omitempty"`
}

// Pipeline runs one prediction at a time: export, submit, normalise. Every
// failure is kept as the pipeline error; nothing escapes as a panic.
type Pipeline struct {
	classifier Classifier
	exporter   raster.Exporter
	inflight   *semaphore.Weighted

	mu     sync.Mutex
	state  State
	result *Result
	err    error
}

func NewPipeline(classifier Classifier, exporter raster.Exporter) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		exporter:   exporter,
		inflight:   semaphore.NewWeighted(1),
	}
}

// Predict exports src and submits it with meta. It returns ErrBusy without
// touching the pipeline state while another prediction is in flight;
// otherwise the returned values are the ones the pipeline settles on.
func (p *Pipeline) Predict(ctx context.Context, src raster.Source, meta Metadata) (*Result, error) {
	if !p.inflight.TryAcquire(1) {
		log.Trace.Printf("predict rejected, request in flight")
		return nil, ErrBusy
	}
	defer p.inflight.Release(1)

	p.mu.Lock()
	p.state = Submitting
	p.result = nil
	p.err = nil
	p.mu.Unlock()

	res, err := p.run(ctx, src, meta)
	p.settle(res, err)
	return res, err
}

func (p *Pipeline) run(ctx context.Context, src raster.Source, meta Metadata) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("prediction aborted: %v", r)
		}
	}()

	rast, err := p.exporter.Export(src)
	if err != nil {
		return nil, err
	}
	return p.classifier.Classify(ctx, Request{Image: rast.PNG, Metadata: meta})
}

func (p *Pipeline) settle(res *Result, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err == nil && res == nil {
		err = &ResponseShapeError{}
	}
	if err != nil {
		log.Error.Printf("prediction failed: %v", err)
		p.state = Failed
		p.result = nil
		p.err = err
		return
	}
	log.Info.Printf("predicted %d", res.Label)
	p.state = Succeeded
	p.result = res
	p.err = nil
}

// Reset drops the result and error of a settled prediction and returns to
// Ready. A prediction still in flight keeps its state and will settle later.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.result = nil
	p.err = nil
	if p.state != Submitting {
		p.state = Ready
	}
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) Result() *Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Message is the human-readable error of a failed prediction.
func (p *Pipeline) Message() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err == nil {
		return ""
	}
	return p.err.Error()
}

func (p *Pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := Status{State: p.state, Result: p.result}
	if p.err != nil {
		st.Message = p.err.Error()
	}
	return st
}
