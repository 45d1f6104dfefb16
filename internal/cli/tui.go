package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
	"github.com/matzehuels/jsoncanvas/pkg/layout/force"
	"github.com/matzehuels/jsoncanvas/pkg/linkpath"
	"github.com/matzehuels/jsoncanvas/pkg/pipeline"
)

// watchFrameRate is how often the watch view advances the simulation.
const watchFrameRate = time.Second / 30

// =============================================================================
// WatchModel - Live force simulation view
// =============================================================================

// watchTickMsg advances the simulation by one step.
type watchTickMsg time.Time

// watchModel is the bubbletea model that drives a force simulation one step
// per frame and displays convergence progress.
type watchModel struct {
	sim     *force.Simulation
	maxIter int
	stats   force.Stats
	done    bool
	aborted bool
}

func newWatchModel(sim *force.Simulation, maxIter int) watchModel {
	return watchModel{sim: sim, maxIter: maxIter}
}

func watchTick() tea.Cmd {
	return tea.Tick(watchFrameRate, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return watchTick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case watchTickMsg:
		if m.done {
			return m, tea.Quit
		}
		active := m.sim.Step()
		m.stats = m.sim.Stats()
		if !active {
			m.done = true
			return m, tea.Quit
		}
		return m, watchTick()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Force Simulation"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.sim.Preset().Name + " preset"))
	b.WriteString("\n\n")

	b.WriteString("  " + watchProgressBar(m.stats.Iterations, m.maxIter, 30))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d iterations", m.stats.Iterations, m.maxIter)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s %s\n",
		StyleDim.Render("alpha        "), StyleNumber.Render(fmt.Sprintf("%.4f", m.stats.Alpha))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		StyleDim.Render("avg velocity "), StyleNumber.Render(fmt.Sprintf("%.4f", m.stats.AvgVelocity))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		StyleDim.Render("max velocity "), StyleNumber.Render(fmt.Sprintf("%.4f", m.stats.MaxVelocity))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		StyleDim.Render("frame rate   "), StyleNumber.Render(fmt.Sprintf("%.1f/s", m.stats.FrameRate))))

	b.WriteString("\n")
	if m.stats.Converged {
		b.WriteString("  " + StyleSuccess.Render(iconSuccess+" converged"))
	} else {
		b.WriteString("  " + StyleDim.Render("q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// watchProgressBar renders a fixed-width bar of filled and empty cells.
func watchProgressBar(current, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := current * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return StyleHighlight.Render(bar)
}

// =============================================================================
// Watch Runner
// =============================================================================

// runWatch positions a graph with the force engine while showing the
// simulation converge in an interactive view. Quitting early keeps the
// positions reached so far.
func runWatch(ctx context.Context, g graph.Graph, opts pipeline.Options) (layout.Document, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Document{}, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return layout.Document{}, err
	}

	sim, err := force.New(opts.Sim)
	if err != nil {
		return layout.Document{}, err
	}
	defer sim.Dispose()

	sim.InitializeGraph(g)
	sim.Start()

	p := tea.NewProgram(newWatchModel(sim, opts.Sim.MaxIterations), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return layout.Document{}, fmt.Errorf("watch simulation: %w", err)
	}

	positioned := sim.Nodes()
	calc := linkpath.New(opts.Geometry, opts.Curvature)
	doc := layout.Document{
		Engine: layout.EngineForce,
		Width:  opts.Sim.Width,
		Height: opts.Sim.Height,
		Nodes:  make([]layout.PositionedNode, len(positioned)),
		Paths:  calc.LinkPaths(g.Links, positioned),
	}
	for i, n := range positioned {
		doc.Nodes[i] = *n
	}
	return doc, nil
}
