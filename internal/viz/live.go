package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/metrics"
	"github.com/san-kum/plife/internal/scenario"
)

const (
	canvasWidth     = 80
	canvasHeight    = 28
	historyCapacity = 240
)

type TickMsg time.Time

// Model is the live terminal view: it owns the registry and steps it
// on every frame tick with the real elapsed delta.
type Model struct {
	cfg      *config.Config
	reg      *life.Registry
	canvas   *Canvas
	kinetic  *metrics.KineticEnergy
	history  []float64
	rng      *rand.Rand
	running  bool
	showHelp bool
	selected int
	t        float64
	fps      int
	lastTick time.Time
	err      error
}

func NewModel(cfg *config.Config, fps int) (Model, error) {
	reg, err := cfg.Build()
	if err != nil {
		return Model{}, err
	}
	if fps <= 0 {
		fps = 60
	}
	return Model{
		cfg:     cfg,
		reg:     reg,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		kinetic: metrics.NewKineticEnergy(),
		history: make([]float64, 0, historyCapacity),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		running: true,
		fps:     fps,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.rebuild()
		case "n":
			m.randomize()
		case "m":
			scenario.Mutate(m.cfg, m.rng, 0.15)
			m.rebuild()
		case "tab":
			if n := m.reg.Len(); n > 0 {
				m.selected = (m.selected + 1) % n
			}
		case "+", "=":
			m.adjustCount(50)
		case "-", "_":
			m.adjustCount(-50)
		case "s":
			if g := m.reg.At(m.selected); g != nil {
				g.Running = !g.Running
			}
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		now := time.Time(msg)
		if m.running && !m.lastTick.IsZero() {
			// One time unit per nominal frame; stalls are capped by the
			// registry's frame-delta clamp.
			dt := now.Sub(m.lastTick).Seconds() * float64(m.fps)
			m.reg.Step(dt)
			m.t += dt
			m.kinetic.Observe(m.reg, m.t)
			m.history = append(m.history, m.kinetic.Last())
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		m.lastTick = now
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) rebuild() {
	reg, err := m.cfg.Build()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.reg = reg
	m.t = 0
	m.kinetic.Reset()
	m.history = m.history[:0]
	if m.selected >= reg.Len() {
		m.selected = 0
	}
}

func (m *Model) randomize() {
	opts := scenario.DefaultOptions()
	opts.Groups = len(m.cfg.Groups)
	if opts.Groups == 0 {
		opts.Groups = 4
	}
	cfg, err := scenario.Random(m.rng, opts)
	if err != nil {
		m.err = err
		return
	}
	cfg.World = m.cfg.World
	m.cfg = cfg
	m.rebuild()
}

func (m *Model) adjustCount(delta int) {
	ids := m.reg.IDs()
	if m.selected >= len(ids) {
		return
	}
	g := m.reg.At(m.selected)
	g.Count += delta
	if g.Count < 0 {
		g.Count = 0
	}
	m.cfg.Groups[m.selected].Count = g.Count
	m.reg.Reconcile(ids[m.selected])
}

func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.DrawRegistry(m.reg)

	colors := make([]string, m.reg.Len())
	for i := range colors {
		colors[i] = m.reg.At(i).Color
	}
	left := canvasStyle().Render(m.canvas.Render(GroupPalette(colors, CurrentTheme)))

	view := lipgloss.JoinHorizontal(lipgloss.Top, left, m.statsPanel())
	if m.showHelp {
		view += "\n" + helpStyle().Render(helpText)
	}
	return view
}

const helpText = `space pause · r reset · n random scenario · m mutate
tab select group · +/- count · s stop group · t theme · q quit`

func (m Model) statsPanel() string {
	var b strings.Builder

	b.WriteString(headerStyle().Render("particle life"))
	b.WriteByte('\n')

	row := func(label, value string) {
		b.WriteString(labelStyle().Render(label))
		b.WriteString(valueStyle().Render(value))
		b.WriteByte('\n')
	}

	state := "running"
	if !m.running {
		state = "paused"
	}
	row("state", state)
	row("time", fmt.Sprintf("%.1f", m.t))
	row("pairs/frame", fmt.Sprintf("%d", m.reg.ComputationsPerFrame()))
	row("energy", fmt.Sprintf("%.2f", m.kinetic.Last()))

	b.WriteByte('\n')
	for i := 0; i < m.reg.Len(); i++ {
		g := m.reg.At(i)
		line := fmt.Sprintf("%s %d", g.Name, len(g.Particles))
		if !g.Running {
			line += " (stopped)"
		}
		if i == m.selected {
			b.WriteString(selectedStyle().Render("> " + line))
		} else {
			b.WriteString(valueStyle().Render("  " + line))
		}
		b.WriteByte('\n')
	}

	if len(m.history) > 2 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(32),
			asciigraph.Precision(1),
		)
		b.WriteByte('\n')
		b.WriteString(graphStyle().Render(graph))
	}

	if m.err != nil {
		b.WriteByte('\n')
		b.WriteString(helpStyle().Render("error: " + m.err.Error()))
	}

	return statsStyle().Render(b.String())
}

// RunLive starts the interactive view and blocks until quit.
func RunLive(cfg *config.Config, fps int) error {
	m, err := NewModel(cfg, fps)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
