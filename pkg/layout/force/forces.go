package force

import "math"

// minDistance guards the distance terms against division by zero when two
// nodes occupy the same point.
const minDistance = 1e-6

// applySprings pulls linked nodes toward the preset's resting link
// distance. Per-link strength (derived from edge type and target depth)
// scales the preset strength, so deep edges tug more gently. Dangling
// links are skipped.
func (s *Simulation) applySprings() {
	for _, l := range s.links {
		src, ok := s.byID[l.Source]
		if !ok {
			continue
		}
		dst, ok := s.byID[l.Target]
		if !ok {
			continue
		}

		dx := dst.CenterX() - src.CenterX()
		dy := dst.CenterY() - src.CenterY()
		dist := math.Hypot(dx, dy)
		if dist < minDistance {
			dist = minDistance
		}

		strength := s.preset.LinkStrength * l.Strength
		f := (dist - s.preset.LinkDistance) / dist * strength * s.alpha

		fx, fy := dx*f/2, dy*f/2
		src.VX += fx
		src.VY += fy
		dst.VX -= fx
		dst.VY -= fy
	}
}

// applyCharge applies inverse-square many-body repulsion between all node
// pairs. O(n²); fine for the few hundred nodes a JSON document yields.
func (s *Simulation) applyCharge() {
	for i, a := range s.nodes {
		for _, b := range s.nodes[i+1:] {
			dx := b.CenterX() - a.CenterX()
			dy := b.CenterY() - a.CenterY()
			distSq := dx*dx + dy*dy
			if distSq < minDistance {
				distSq = minDistance
			}
			dist := math.Sqrt(distSq)

			f := s.preset.ChargeStrength * s.alpha / distSq
			fx, fy := dx/dist*f, dy/dist*f

			// Negative charge pushes the pair apart.
			a.VX += fx
			a.VY += fy
			b.VX -= fx
			b.VY -= fy
		}
	}
}

// applyCenter drifts every node weakly toward the canvas midpoint so
// disconnected fragments do not fly off.
func (s *Simulation) applyCenter() {
	cx, cy := s.opts.Width/2, s.opts.Height/2
	for _, n := range s.nodes {
		n.VX += (cx - n.CenterX()) * s.preset.CenterStrength * s.alpha
		n.VY += (cy - n.CenterY()) * s.preset.CenterStrength * s.alpha
	}
}

// applyCollision separates overlapping node circles. Each node's radius is
// its visual size plus the preset's collision padding; overlapping pairs
// are pushed apart along their axis by half the overlap each.
func (s *Simulation) applyCollision() {
	for i, a := range s.nodes {
		ra := a.Size + s.preset.CollisionRadius
		for _, b := range s.nodes[i+1:] {
			rb := b.Size + s.preset.CollisionRadius

			dx := b.CenterX() - a.CenterX()
			dy := b.CenterY() - a.CenterY()
			dist := math.Hypot(dx, dy)
			if dist < minDistance {
				dist = minDistance
				dx = minDistance
			}

			overlap := ra + rb - dist
			if overlap <= 0 {
				continue
			}

			push := overlap / 2 / dist
			a.VX -= dx * push
			a.VY -= dy * push
			b.VX += dx * push
			b.VY += dy * push
		}
	}
}

// integrate applies velocity damping and moves every node by its damped
// velocity.
func (s *Simulation) integrate() {
	retain := 1 - s.preset.VelocityDecay
	for _, n := range s.nodes {
		n.VX *= retain
		n.VY *= retain
		n.X += n.VX
		n.Y += n.VY
	}
}
