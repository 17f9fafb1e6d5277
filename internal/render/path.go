// Package render holds the drawing rules shared by every presentation
// layer: which stroke samples are drawn and how they are smoothed, and
// where a text element can be tapped.
package render

import (
	"math"

	"CanvasBoard/internal/state"
)

// SmoothThreshold is the distance, on both axes, below which a sample is
// too close to its predecessor to be drawn.
const SmoothThreshold = float32(5)

// Segment is a quadratic Bézier piece from the end of the previous segment
// (or the path start) through Control to End.
type Segment struct {
	Control state.Point
	End     state.Point
}

// Path is a smoothed stroke: a start point and a chain of quadratic
// segments.
type Path struct {
	Start    state.Point
	Segments []Segment
	Empty    bool
}

// Smooth builds the path drawn for a list of samples. Each sample is
// compared with the sample right before it; when it moved less than
// SmoothThreshold on both axes it is skipped, otherwise a quadratic segment
// through the midpoint of the two samples ends on it.
func Smooth(points []state.Point) Path {
	if len(points) == 0 {
		return Path{Empty: true}
	}
	p := Path{Start: points[0]}
	for i := 1; i < len(points); i++ {
		from, to := points[i-1], points[i]
		dx := abs(from.X - to.X)
		dy := abs(from.Y - to.Y)
		if dx < SmoothThreshold && dy < SmoothThreshold {
			continue
		}
		p.Segments = append(p.Segments, Segment{
			Control: state.Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2},
			End:     to,
		})
	}
	return p
}

// Flatten samples every quadratic segment with steps line pieces and
// returns the resulting polyline, starting at p.Start.
func Flatten(p Path, steps int) []state.Point {
	if p.Empty {
		return nil
	}
	if steps < 1 {
		steps = 1
	}
	out := make([]state.Point, 0, 1+len(p.Segments)*steps)
	out = append(out, p.Start)
	cur := p.Start
	for _, seg := range p.Segments {
		for i := 1; i <= steps; i++ {
			t := float32(i) / float32(steps)
			out = append(out, quad(cur, seg.Control, seg.End, t))
		}
		cur = seg.End
	}
	return out
}

func quad(p0, p1, p2 state.Point, t float32) state.Point {
	u := 1 - t
	return state.Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
