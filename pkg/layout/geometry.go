package layout

// Overlap buffers for the hierarchical placement scan and the diagnostic
// overlap report. Boxes closer than these margins count as intersecting.
const (
	HorizontalBuffer = 25.0
	VerticalBuffer   = 10.0
)

// Overlaps reports whether the boxes of a and b intersect when each is
// expanded by the given horizontal and vertical buffers.
func Overlaps(a, b *PositionedNode, hbuf, vbuf float64) bool {
	if a.X+a.Width+hbuf <= b.X || b.X+b.Width+hbuf <= a.X {
		return false
	}
	if a.Y+a.Height+vbuf <= b.Y || b.Y+b.Height+vbuf <= a.Y {
		return false
	}
	return true
}
