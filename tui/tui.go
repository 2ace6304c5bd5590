// Package tui draws on the pad with the mouse inside a terminal. The canvas
// is shown as braille dots, each cell covering a 2x4 block of the surface.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ubfsw/digitpad/classify"
	"github.com/ubfsw/digitpad/log"
	"github.com/ubfsw/digitpad/pad"
	"github.com/ubfsw/digitpad/session"
)

const (
	canvasCols = 56
	canvasRows = 28

	// screen position of the first canvas cell: title line plus border
	canvasLeft = 1
	canvasTop  = 2

	mousePointer = 1
)

type predictedMsg struct {
	res *classify.Result
	err error
}

type Model struct {
	pad     *pad.Pad
	session session.Provider

	width  int
	height int
	status string
}

func New(p *pad.Pad, provider session.Provider) Model {
	if provider == nil {
		provider = session.Static{}
	}
	return Model{pad: p, session: provider}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// toCanvas maps a terminal cell to the centre of the surface area it covers.
func (m Model) toCanvas(x, y int) (float64, float64, bool) {
	cx, cy := x-canvasLeft, y-canvasTop
	inside := cx >= 0 && cx < canvasCols && cy >= 0 && cy < canvasRows
	size := float64(m.pad.Size())
	return (float64(cx) + 0.5) * size / canvasCols, (float64(cy) + 0.5) * size / canvasRows, inside
}

func (m Model) predict() tea.Cmd {
	return func() tea.Msg {
		res, err := m.pad.Predict(context.Background())
		return predictedMsg{res: res, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "u":
			m.pad.Undo()
			m.status = ""
		case "c":
			m.pad.Clear()
			m.status = ""
		case "p", "enter":
			if m.pad.Prediction().State == classify.Submitting {
				m.status = classify.ErrBusy.Error()
				return m, nil
			}
			m.status = ""
			return m, m.predict()
		case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if err := m.pad.SetGroundTruth(int(key[0] - '0')); err != nil {
				m.status = err.Error()
			}
		}

	case tea.MouseMsg:
		x, y, inside := m.toCanvas(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button != tea.MouseButtonLeft || !inside {
				return m, nil
			}
			if err := m.pad.PointerDown(mousePointer, x, y); err != nil {
				log.Trace.Println(err)
			}
		case tea.MouseActionMotion:
			m.pad.PointerMove(mousePointer, x, y)
		case tea.MouseActionRelease:
			m.pad.PointerUp(mousePointer)
		}

	case predictedMsg:
		if msg.err == classify.ErrBusy {
			m.status = msg.err.Error()
		}
	}
	return m, nil
}

func (m Model) canvasView() string {
	br := newBrailleBuf(canvasCols, canvasRows)
	img, err := m.pad.Snapshot()
	if err != nil {
		log.Error.Printf("snapshot: %v", err)
	} else {
		br.plot(img)
	}
	return canvasStyle.Render(strings.Join(br.toLines(), "\n"))
}

func (m Model) predictionView() string {
	st := m.pad.Prediction()
	switch st.State {
	case classify.Submitting:
		return dimStyle.Render("Predicting...")
	case classify.Succeeded:
		if st.Result != nil {
			return okStyle.Render(st.Result.String())
		}
	case classify.Failed:
		return errStyle.Render("Error: " + st.Message)
	}
	return dimStyle.Render("Draw a digit, then press p")
}

func (m Model) View() string {
	st := m.pad.Status()
	user := m.session.Session().Username
	if user == "" {
		user = "anonymous"
	}
	header := titleStyle.Render("digitpad") + dimStyle.Render(
		fmt.Sprintf("  actual digit: %d  strokes: %d  user: %s", st.GroundTruth, st.Strokes, user))

	lines := []string{header, m.canvasView(), m.predictionView()}
	if m.status != "" {
		lines = append(lines, errStyle.Render(m.status))
	}
	lines = append(lines, dimStyle.Render("mouse draw  0-9 actual digit  p predict  u undo  c clear  q quit"))
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Run blocks until the user quits. Log output is muted meanwhile so it
// does not tear the screen.
func Run(p *pad.Pad, provider session.Provider) error {
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	prog := tea.NewProgram(New(p, provider), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
