package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Technologicat/materials/internal/config"
	"github.com/Technologicat/materials/internal/experiment"
	"github.com/Technologicat/materials/internal/loading"
	"github.com/Technologicat/materials/internal/material"
)

const (
	width           = 60
	height          = 16
	historyCapacity = 600
	frameRate       = time.Second / 20
	maxStepsPerTick = 50
)

type TickMsg time.Time

// LiveModel steps a material point through its load path, one or more
// increments per frame.
type LiveModel struct {
	title        string
	cfg          *config.Config
	exp          *experiment.Experiment
	next         int
	records      []loading.Record
	iterations   []float64
	running      bool
	err          error
	stepsPerTick int
	canvas       *Canvas
	showHelp     bool
}

func NewLiveModel(title string, cfg *config.Config) (LiveModel, error) {
	m := LiveModel{
		title:        title,
		cfg:          cfg,
		running:      true,
		stepsPerTick: 1,
		canvas:       NewCanvas(width, height),
	}
	if err := m.reset(); err != nil {
		return LiveModel{}, err
	}
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd { return tick() }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "n":
			if !m.running {
				m.advance()
			}
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
			m.running = true
		case "+", "=":
			m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerTick = max(m.stepsPerTick/2, 1)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerTick && m.running; i++ {
				m.advance()
			}
		}
		return m, tick()
	}
	return m, nil
}

// advance solves and commits the next step. A failed step stops the run.
func (m *LiveModel) advance() {
	if m.Done() {
		m.running = false
		return
	}
	path := m.exp.Path()
	rec, err := m.exp.Driver().Step(m.exp.Model(), path[m.next], m.next+1)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.next++
	m.records = append(m.records, rec)
	m.iterations = append(m.iterations, float64(rec.Iterations))
	if len(m.records) > historyCapacity {
		m.records = m.records[1:]
		m.iterations = m.iterations[1:]
	}
}

// reset rebuilds the material point in its unloaded state.
func (m *LiveModel) reset() error {
	exp, err := experiment.New(m.cfg)
	if err != nil {
		return err
	}
	m.exp = exp
	m.next = 0
	m.err = nil
	m.records = []loading.Record{exp.Driver().Begin(exp.Model())}
	m.iterations = m.iterations[:0]
	return nil
}

func (m LiveModel) Done() bool {
	return m.err != nil || m.next >= len(m.exp.Path())
}

func (m LiveModel) Err() error { return m.err }

func (m LiveModel) Records() []loading.Record { return m.records }

func (m LiveModel) status() string {
	switch {
	case m.err != nil:
		return StatusFailed.Render("FAILED")
	case m.next >= len(m.exp.Path()):
		return StatusPaused.Render("DONE")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

func (m LiveModel) View() string {
	strain := make([]float64, len(m.records))
	stress := make([]float64, len(m.records))
	for i, r := range m.records {
		strain[i], stress[i] = r.Strain[0], r.Stress[0]
	}

	m.canvas.Clear()
	m.canvas.Plot(strain, stress)
	loop := canvasStyle.Render("σ11 vs ε11\n" + m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	total := len(m.exp.Path())
	s.WriteString(fmt.Sprintf("%s  %d/%d  x%d\n", m.status(), m.next, total, m.stepsPerTick))
	s.WriteString(ProgressBar(float64(m.next)/float64(total), 30) + "\n")

	if len(stress) > 1 {
		chart := asciigraph.Plot(stress, asciigraph.Height(6), asciigraph.Width(36), asciigraph.Caption("σ11 history"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	last := m.records[len(m.records)-1]
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Model", m.exp.Model().Name())
	row("Time", fmt.Sprintf("%.3f", last.Time))
	row("ε11", fmt.Sprintf("%.4e", last.Strain[0]))
	row("σ11", fmt.Sprintf("%.3f", last.Stress[0]))
	row("σ eq", fmt.Sprintf("%.3f", material.Equivalent(last.Stress.Deviator())))
	row("Iterations", fmt.Sprintf("%d", last.Iterations))
	row("Residual", fmt.Sprintf("%.2e", last.Residual))
	row("Iter trend", Sparkline(m.iterations, 30))

	if m.err != nil {
		s.WriteString("\n" + StatusFailed.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause N:Step R:Restart +/-:Speed ?:Help Q:Quit"))

	view := lipgloss.JoinHorizontal(lipgloss.Top, loop, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `
  Space    Pause/Resume
  N        Single step while paused
  R        Restart from the unloaded state
  + / -    Double/halve steps per frame
  ?        Toggle this help
  Q        Quit
`

// RunLive opens the live view for one configuration.
func RunLive(title string, cfg *config.Config) error {
	m, err := NewLiveModel(title, cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
