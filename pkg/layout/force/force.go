// Package force implements the physics-based layout engine: an iterative
// spring / repulsion / collision simulation with structure-adaptive tuning
// and convergence detection.
//
// The simulation is externally driven: each [Simulation.Step] call advances
// exactly one tick, so the caller (a CLI loop, a TUI frame handler, or
// [Simulation.Run]) owns the pacing. A Simulation must not be ticked
// concurrently; ownership of its state belongs to the loop driver, which
// publishes [Stats] snapshots to subscribers at tick boundaries.
package force

import (
	"context"
	"math"
	"math/rand"

	"github.com/matzehuels/jsoncanvas/pkg/errors"
	"github.com/matzehuels/jsoncanvas/pkg/graph"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
)

// =============================================================================
// Options
// =============================================================================

// Simulation defaults.
const (
	DefaultWidth                = 1200.0
	DefaultHeight               = 800.0
	DefaultAlpha                = 1.0
	DefaultAlphaMin             = 0.001
	DefaultConvergenceThreshold = 0.01
	DefaultMaxIterations        = 300
	DefaultSeed                 = 1

	// restartAlpha is the temperature a live reconfigure resumes at.
	restartAlpha = 0.3

	// warmupIterations is the tick count below which velocity-based
	// convergence is ignored, so a cold start cannot halt immediately.
	warmupIterations = 10
)

// Options configures a force simulation.
type Options struct {
	// Canvas dimensions; the center force pulls toward their midpoint.
	Width  float64
	Height float64

	Alpha                float64 // Initial temperature
	AlphaMin             float64 // Halt when temperature drops below this
	ConvergenceThreshold float64 // Halt when average velocity drops below this
	MaxIterations        int     // Hard tick cap

	// Seed drives the placement of nodes that arrive without coordinates.
	// A fixed seed keeps runs reproducible.
	Seed int64

	// Geometry used to measure node boxes for the downstream path layer.
	Geometry layout.Options

	validated bool
}

// DefaultSimOptions returns simulation options with all defaults applied.
func DefaultSimOptions() Options {
	opts := Options{}
	_ = opts.ValidateAndSetDefaults()
	return opts
}

// ValidateAndSetDefaults fills zero fields with defaults and validates the
// rest. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Alpha == 0 {
		o.Alpha = DefaultAlpha
	}
	if o.AlphaMin == 0 {
		o.AlphaMin = DefaultAlphaMin
	}
	if o.ConvergenceThreshold == 0 {
		o.ConvergenceThreshold = DefaultConvergenceThreshold
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Geometry == (layout.Options{}) {
		o.Geometry = layout.DefaultOptions()
	}

	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas dimensions must be non-negative")
	}
	if o.MaxIterations < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max iterations must be positive")
	}

	o.validated = true
	return nil
}

// =============================================================================
// Simulation
// =============================================================================

// Simulation relaxes node positions over discrete ticks. Create one with
// [New], feed it a graph via [Simulation.Initialize], then drive it with
// [Simulation.Step] or [Simulation.Run].
type Simulation struct {
	opts      Options
	preset    Preset
	overrides Overrides

	nodes []*layout.PositionedNode
	links []graph.Link
	byID  map[string]*layout.PositionedNode

	alpha      float64
	iterations int
	running    bool
	converged  bool
	ended      bool

	stats  Stats
	frames *frameClock

	onTick []func(Stats)
	onEnd  []func(Stats)
}

// New creates a simulation. Invalid options return an error.
func New(opts Options) (*Simulation, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Simulation{opts: opts, frames: newFrameClock()}, nil
}

// Initialize resets the simulation for a fresh graph: classifies the
// structure, selects a preset, and scatters any node without coordinates
// near the canvas center. Nodes that arrive with non-zero coordinates keep
// them, so externally restored layouts seed the simulation.
//
// An empty node list is a no-op; no simulation state is created and
// IsRunning reports false.
func (s *Simulation) Initialize(nodes []*layout.PositionedNode, links []graph.Link) {
	s.release()
	if len(nodes) == 0 {
		return
	}

	s.nodes = nodes
	s.links = links
	s.byID = layout.ByID(s.nodes)
	s.preset = s.overrides.apply(PresetFor(Classify(s.nodes)))

	s.scatter()
	s.alpha = s.opts.Alpha
}

// InitializeGraph measures a graph's nodes with the configured geometry and
// initializes the simulation from the result.
func (s *Simulation) InitializeGraph(g graph.Graph) {
	s.Initialize(layout.Measure(g.Nodes, s.opts.Geometry), g.Links)
}

// scatter assigns pseudo-random positions near the canvas center to nodes
// that arrived without coordinates.
func (s *Simulation) scatter() {
	rng := rand.New(rand.NewSource(s.opts.Seed))
	cx, cy := s.opts.Width/2, s.opts.Height/2
	spread := math.Min(s.opts.Width, s.opts.Height) / 4

	for _, n := range s.nodes {
		if n.X != 0 || n.Y != 0 {
			continue
		}
		n.X = cx + (rng.Float64()-0.5)*spread
		n.Y = cy + (rng.Float64()-0.5)*spread
	}
}

// Start begins a tick sequence. It has no effect without an initialized
// graph or after convergence.
func (s *Simulation) Start() {
	if len(s.nodes) == 0 || s.ended {
		return
	}
	s.running = true
	s.frames.reset()
}

// Stop halts the simulation without firing end subscribers. Idempotent;
// an in-flight Step finishes but no further ticks advance.
func (s *Simulation) Stop() {
	s.running = false
}

// Step advances the simulation by exactly one tick: applies all forces,
// integrates velocities, decays alpha, publishes stats, and checks the
// halt conditions. It returns true while the simulation should keep
// ticking and false once halted (or when not running at all).
func (s *Simulation) Step() bool {
	if !s.running || s.ended || len(s.nodes) == 0 {
		return false
	}

	s.applySprings()
	s.applyCharge()
	s.applyCenter()
	s.applyCollision()
	s.integrate()

	s.alpha -= s.preset.AlphaDecay
	if s.alpha < 0 {
		s.alpha = 0
	}
	s.iterations++

	s.snapshot()
	for _, cb := range s.onTick {
		cb(s.stats)
	}

	if s.shouldHalt() {
		s.halt()
		return false
	}
	return true
}

// shouldHalt evaluates the three termination conditions: settled velocity
// after warm-up, exhausted temperature, or the hard iteration cap.
func (s *Simulation) shouldHalt() bool {
	if s.stats.AvgVelocity < s.opts.ConvergenceThreshold && s.iterations > warmupIterations {
		s.converged = true
		return true
	}
	if s.alpha < s.opts.AlphaMin {
		return true
	}
	return s.iterations >= s.opts.MaxIterations
}

// halt finishes the tick sequence and fires end subscribers exactly once.
func (s *Simulation) halt() {
	s.running = false
	if s.ended {
		return
	}
	s.ended = true
	s.stats.Converged = s.converged

	for _, cb := range s.onEnd {
		cb(s.stats)
	}
}

// Run starts the simulation and drives it to completion, checking the
// context between ticks. It returns the final stats.
func (s *Simulation) Run(ctx context.Context) (Stats, error) {
	s.Start()
	for s.Step() {
		if err := ctx.Err(); err != nil {
			s.Stop()
			return s.stats, err
		}
	}
	return s.stats, nil
}

// UpdateForces reconfigures the force parameters. With an active
// simulation the new tuning takes effect immediately and the temperature
// restarts at 0.3 so the graph can re-settle; without one, the overrides
// are stored and applied on the next Initialize.
func (s *Simulation) UpdateForces(ov Overrides) {
	s.overrides = ov
	if len(s.nodes) == 0 {
		return
	}

	s.preset = ov.apply(s.preset)
	s.alpha = restartAlpha
	s.converged = false
	s.ended = false
	s.running = true
}

// UpdateDimensions changes the canvas size; the center force pulls toward
// the new midpoint from the next tick on.
func (s *Simulation) UpdateDimensions(width, height float64) {
	s.opts.Width = width
	s.opts.Height = height
}

// OnTick subscribes to per-tick stats snapshots.
func (s *Simulation) OnTick(cb func(Stats)) {
	s.onTick = append(s.onTick, cb)
}

// OnEnd subscribes to the halt notification. Fires exactly once per tick
// sequence.
func (s *Simulation) OnEnd(cb func(Stats)) {
	s.onEnd = append(s.onEnd, cb)
}

// Dispose stops the simulation, clears all subscribers, and releases the
// node state. Idempotent.
func (s *Simulation) Dispose() {
	s.release()
	s.onTick = nil
	s.onEnd = nil
}

// release drops the current tick sequence and its graph.
func (s *Simulation) release() {
	s.running = false
	s.converged = false
	s.ended = false
	s.iterations = 0
	s.alpha = 0
	s.nodes = nil
	s.links = nil
	s.byID = nil
	s.stats = Stats{}
	s.frames.reset()
}

// IsRunning reports whether the simulation is actively ticking: true only
// while a graph is loaded, alpha is above the minimum, and the sequence
// has neither converged nor been stopped.
func (s *Simulation) IsRunning() bool {
	return s.running && len(s.nodes) > 0 && s.alpha > s.opts.AlphaMin && !s.converged
}

// Stats returns the latest per-tick snapshot.
func (s *Simulation) Stats() Stats {
	return s.stats
}

// Nodes returns the simulation's positioned nodes. The slice is live:
// positions update as the simulation ticks.
func (s *Simulation) Nodes() []*layout.PositionedNode {
	return s.nodes
}

// Preset returns the active tuning preset.
func (s *Simulation) Preset() Preset {
	return s.preset
}
