// Package drawing holds the stroke model of the pad and the state machine
// turning pointer events into stroke lifecycle transitions.
package drawing

// Point is a canvas-local position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one pointer-down to pointer-up gesture. Point order defines the
// polyline.
type Stroke []Point

func (s Stroke) clone() Stroke {
	if s == nil {
		return nil
	}
	c := make(Stroke, len(s))
	copy(c, s)
	return c
}

// Store is the drawing state: completed strokes plus at most one active
// stroke. The active stroke is never part of the completed list.
type Store struct {
	completed []Stroke
	active    Stroke
}

func NewStore() *Store {
	return &Store{}
}

// Begin starts a new active stroke at p, replacing any active one.
func (s *Store) Begin(p Point) {
	s.active = Stroke{p}
}

// Extend appends p to the active stroke and returns the point it connects
// to. ok is false when there is no active stroke.
func (s *Store) Extend(p Point) (prev Point, ok bool) {
	if len(s.active) == 0 {
		return Point{}, false
	}
	prev = s.active[len(s.active)-1]
	s.active = append(s.active, p)
	return prev, true
}

// Commit moves the active stroke into the completed list.
func (s *Store) Commit() bool {
	if len(s.active) == 0 {
		s.active = nil
		return false
	}
	s.completed = append(s.completed, s.active)
	s.active = nil
	return true
}

// Undo drops the most recent completed stroke. It does nothing while a
// stroke is being drawn or when there is nothing to undo.
func (s *Store) Undo() bool {
	if s.active != nil || len(s.completed) == 0 {
		return false
	}
	s.completed[len(s.completed)-1] = nil
	s.completed = s.completed[:len(s.completed)-1]
	return true
}

// Clear drops every stroke, active one included.
func (s *Store) Clear() {
	s.completed = nil
	s.active = nil
}

// Len is the number of completed strokes.
func (s *Store) Len() int {
	return len(s.completed)
}

func (s *Store) Drawing() bool {
	return s.active != nil
}

// Strokes returns a copy of the completed strokes.
func (s *Store) Strokes() []Stroke {
	out := make([]Stroke, len(s.completed))
	for i, st := range s.completed {
		out[i] = st.clone()
	}
	return out
}

// Active returns a copy of the stroke in progress, nil when idle.
func (s *Store) Active() Stroke {
	return s.active.clone()
}
