package force

import (
	"math"
	"time"
)

// frameWindow is the number of inter-tick durations the rolling frame
// rate averages over.
const frameWindow = 10

// Stats is a per-tick snapshot of the simulation state, published to tick
// and end subscribers.
type Stats struct {
	Iterations  int       `json:"iterations"`
	Alpha       float64   `json:"alpha"`
	Converged   bool      `json:"converged"`
	AvgVelocity float64   `json:"avg_velocity"`
	MaxVelocity float64   `json:"max_velocity"`
	FrameRate   float64   `json:"frame_rate"` // Ticks per second, rolling
	LastTick    time.Time `json:"last_tick"`
}

// snapshot recomputes the stats from the current node state.
func (s *Simulation) snapshot() {
	var sum, max float64
	for _, n := range s.nodes {
		v := math.Hypot(n.VX, n.VY)
		sum += v
		if v > max {
			max = v
		}
	}

	s.stats = Stats{
		Iterations:  s.iterations,
		Alpha:       s.alpha,
		Converged:   s.converged,
		AvgVelocity: sum / float64(len(s.nodes)),
		MaxVelocity: max,
		FrameRate:   s.frames.tick(time.Now()),
		LastTick:    time.Now(),
	}
}

// frameClock tracks a moving average of inter-tick durations.
type frameClock struct {
	last      time.Time
	durations []time.Duration
}

func newFrameClock() *frameClock {
	return &frameClock{}
}

func (f *frameClock) reset() {
	f.last = time.Time{}
	f.durations = f.durations[:0]
}

// tick records one tick and returns the rolling frame rate in ticks per
// second. The first tick of a sequence has no interval and reports zero.
func (f *frameClock) tick(now time.Time) float64 {
	if !f.last.IsZero() {
		f.durations = append(f.durations, now.Sub(f.last))
		if len(f.durations) > frameWindow {
			f.durations = f.durations[1:]
		}
	}
	f.last = now

	if len(f.durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range f.durations {
		total += d
	}
	avg := total / time.Duration(len(f.durations))
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
