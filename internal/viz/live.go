package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/sim"
)

const historyCapacity = 600

type TickMsg time.Time

// Model steps a simulator on a timer and shows its energies.
type Model struct {
	sim           *sim.Simulator
	title         string
	nsteps        int
	dt            float64
	stepsPerFrame int
	frameRate     int

	running bool
	canvas  *Canvas
	last    dynamo.StepReport
	total   []float64
	reports []dynamo.StepReport
	err     error
}

func NewModel(s *sim.Simulator, title string, nsteps int, dt float64, stepsPerFrame, frameRate int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if frameRate < 1 {
		frameRate = 30
	}
	return Model{
		sim:           s,
		title:         title,
		nsteps:        nsteps,
		dt:            dt,
		stepsPerFrame: stepsPerFrame,
		frameRate:     frameRate,
		running:       true,
		canvas:        NewCanvas(24, 12),
		total:         make([]float64, 0, historyCapacity),
		reports:       make([]dynamo.StepReport, 0, nsteps),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles key presses and advances the simulation on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.stepsPerFrame *= 2
		case "-", "_":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		}
	case TickMsg:
		if m.running && !m.Done() {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.stepsPerFrame && len(m.reports) < m.nsteps; i++ {
		r, err := m.sim.Step(m.dt)
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		m.last = r
		m.reports = append(m.reports, r)
		m.total = append(m.total, r.Total)
		if len(m.total) > historyCapacity {
			m.total = m.total[1:]
		}
	}
}

// Done reports whether all steps ran or a step failed.
func (m Model) Done() bool {
	return m.err != nil || len(m.reports) >= m.nsteps
}

// Reports returns the step reports produced so far.
func (m Model) Reports() []dynamo.StepReport { return m.reports }

func (m Model) Err() error { return m.err }

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(statusFailed.Render("FAILED: "+m.err.Error()) + "\n\n")
	case m.Done():
		s.WriteString(statusRunning.Render("COMPLETED") + "\n\n")
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.total) > 1 {
		chart := asciigraph.Plot(m.total, asciigraph.Height(8), asciigraph.Width(50), asciigraph.Caption("Total energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	st := m.sim.State()
	m.canvas.Project(st)
	s.WriteString(graphStyle.Render(m.canvas.String()) + "\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Step", fmt.Sprintf("%d / %d", len(m.reports), m.nsteps))
	row("Particles", fmt.Sprintf("%d", st.NParticles()))
	row("Box", fmt.Sprintf("%.3f", st.BoxSize))
	row("Potential", fmt.Sprintf("%.6g", m.last.Potential))
	row("Kinetic", fmt.Sprintf("%.6g", m.last.Kinetic))
	row("Total", fmt.Sprintf("%.6g", m.last.Total))
	row("Steps/frame", fmt.Sprintf("%d", m.stepsPerFrame))

	s.WriteString(helpStyle.Render("SPACE:Pause  +/-:Speed  Q:Quit"))
	return panelStyle.Render(s.String())
}

// Run starts the interactive view and returns the final model state.
func Run(m Model) (Model, error) {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return m, err
	}
	return final.(Model), nil
}
