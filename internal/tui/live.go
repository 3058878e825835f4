// Package tui renders a running multibody simulation in the terminal:
// per-joint coordinates and speeds, total energy and its drift,
// refreshed as the stepper advances on a background goroutine.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/multibody/internal/sim"
	"github.com/san-kum/multibody/internal/tree"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// snapshot is one rendered frame's worth of data, copied out of the
// state while the observer holds it.
type snapshot struct {
	t      float64
	q, u   []float64
	energy float64
}

type doneMsg struct{ err error }

// channelObserver downsamples the step stream into a 1-deep channel;
// frames the renderer is too slow for are dropped.
type channelObserver struct {
	stepper *sim.Stepper
	every   int
	n       int
	frames  chan snapshot
}

func (c *channelObserver) OnStep(s *tree.State, t float64) {
	c.n++
	if c.n%c.every != 0 {
		return
	}
	snap := snapshot{
		t:      t,
		q:      append([]float64(nil), s.Q()...),
		u:      append([]float64(nil), s.U()...),
		energy: c.stepper.Energy(),
	}
	select {
	case c.frames <- snap:
	default:
	}
}

type model struct {
	name    string
	tree    *tree.Tree
	frames  chan snapshot
	cancel  context.CancelFunc
	current snapshot
	e0      float64
	haveE0  bool
	done    bool
	err     error
}

func (m *model) Init() tea.Cmd { return m.waitFrame() }

func (m *model) waitFrame() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.frames
		if !ok {
			return nil
		}
		return snap
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case snapshot:
		m.current = msg
		if !m.haveE0 {
			m.e0, m.haveE0 = msg.energy, true
		}
		return m, m.waitFrame()
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(cyan.Render(m.name))
	b.WriteString(dim.Render(fmt.Sprintf("  t=%.3fs", m.current.t)))
	b.WriteString("\n\n")

	b.WriteString(dim.Render(fmt.Sprintf("  %-12s %-16s %-24s %-24s", "BODY", "JOINT", "Q", "U")))
	b.WriteString("\n")
	for i := 1; i < m.tree.NumBodies(); i++ {
		id := tree.BodyID(i)
		qs := formatSlice(m.current.q, m.tree.QIndex(id), m.tree.QWidth(id))
		us := formatSlice(m.current.u, m.tree.UIndex(id), m.tree.UWidth(id))
		b.WriteString(fmt.Sprintf("  %-12s %-16s %-24s %-24s\n",
			white.Render(m.tree.Name(id)),
			dim.Render(m.tree.JointType(id).String()),
			yellow.Render(qs),
			yellow.Render(us)))
	}

	b.WriteString("\n")
	b.WriteString(green.Render(fmt.Sprintf("  E=%.6g", m.current.energy)))
	if m.haveE0 && m.e0 != 0 {
		drift := (m.current.energy - m.e0) / m.e0
		b.WriteString(dim.Render(fmt.Sprintf("  drift=%.2e", drift)))
	}
	b.WriteString("\n\n")
	b.WriteString(dim.Render("  q to quit"))
	b.WriteString("\n")
	return b.String()
}

func formatSlice(v []float64, start, n int) string {
	if n == 0 || start+n > len(v) {
		return "-"
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%.3f", v[start+i])
	}
	return strings.Join(parts, " ")
}

// Run drives the stepper on a goroutine and renders frames until the
// run finishes or the user quits.
func Run(name string, t *tree.Tree, stepper *sim.Stepper, cfg sim.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	every := int(1.0 / (30 * cfg.Dt)) // ~30 fps worth of steps
	if every < 1 {
		every = 1
	}
	obs := &channelObserver{
		stepper: stepper,
		every:   every,
		frames:  make(chan snapshot, 1),
	}
	stepper.AddObserver(obs)

	m := &model{name: name, tree: t, frames: obs.frames, cancel: cancel}
	p := tea.NewProgram(m)

	go func() {
		_, err := stepper.Run(ctx, cfg)
		if err == context.Canceled {
			err = nil
		}
		p.Send(doneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}
