package drawing

import (
	"errors"
	"math"

	"github.com/ubfsw/digitpad/log"
)

// ErrConcurrentPointer is returned when a second pointer goes down during a
// gesture. Multi-touch is not supported; the event is dropped.
var ErrConcurrentPointer = errors.New("another pointer is already drawing")

type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// Surface receives the visual side effects of input transitions.
type Surface interface {
	DrawSegment(a, b Point)
	Redraw(strokes []Stroke)
}

// Capturer grabs a pointer for the length of a gesture so moves outside the
// canvas keep arriving. Front-ends without such a notion pass nil.
type Capturer interface {
	Capture(pointerID int)
	Release(pointerID int)
}

// Machine converts raw pointer events into Store mutations.
type Machine struct {
	store    *Store
	surface  Surface
	capturer Capturer

	width, height float64

	state   State
	pointer int
}

// NewMachine creates an idle machine over a width×height canvas.
// capturer may be nil.
func NewMachine(store *Store, surface Surface, capturer Capturer, width, height float64) *Machine {
	return &Machine{
		store:    store,
		surface:  surface,
		capturer: capturer,
		width:    width,
		height:   height,
	}
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) clamp(p Point) Point {
	return Point{
		X: math.Max(0, math.Min(m.width, p.X)),
		Y: math.Max(0, math.Min(m.height, p.Y)),
	}
}

func (m *Machine) PointerDown(pointerID int, p Point) error {
	if m.state == Drawing {
		log.Trace.Printf("pointer %d down while %d is drawing, ignored", pointerID, m.pointer)
		return ErrConcurrentPointer
	}
	if m.capturer != nil {
		m.capturer.Capture(pointerID)
	}
	m.state = Drawing
	m.pointer = pointerID
	m.store.Begin(m.clamp(p))
	return nil
}

func (m *Machine) PointerMove(pointerID int, p Point) {
	if m.state != Drawing || pointerID != m.pointer {
		return
	}
	p = m.clamp(p)
	prev, ok := m.store.Extend(p)
	if !ok {
		// the stroke was cleared under us
		return
	}
	m.surface.DrawSegment(prev, p)
}

func (m *Machine) PointerUp(pointerID int) {
	m.finish(pointerID)
}

// PointerCancel ends the gesture exactly like PointerUp.
func (m *Machine) PointerCancel(pointerID int) {
	m.finish(pointerID)
}

func (m *Machine) finish(pointerID int) {
	if m.state != Drawing || pointerID != m.pointer {
		return
	}
	m.store.Commit()
	m.state = Idle
	if m.capturer != nil {
		m.capturer.Release(pointerID)
	}
	m.surface.Redraw(m.store.Strokes())
}
