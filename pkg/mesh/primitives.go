package mesh

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/spatial/r3"
)

// ---- edges ----

// MoveEdge moves both endpoints of e by delta.
func (m *MultiBlock) MoveEdge(e *Edge, delta v3.Vec) error {
	for _, id := range [2]int{e.Start, e.End} {
		if err := m.verts.Move(id, By(delta)); err != nil {
			return fmt.Errorf("mesh: move edge %s: %w", e.Position, err)
		}
	}
	return nil
}

// CollapseEdge collapses e's start onto target's start and e's end onto
// target's end.
func (m *MultiBlock) CollapseEdge(e, target *Edge) error {
	if err := m.verts.Collapse(e.Start, target.Start); err != nil {
		return fmt.Errorf("mesh: collapse edge %s: %w", e.Position, err)
	}
	if err := m.verts.Collapse(e.End, target.End); err != nil {
		return fmt.Errorf("mesh: collapse edge %s: %w", e.Position, err)
	}
	return nil
}

// MoveCollapseEdge moves target by delta, then collapses e onto it, pairing
// start with start and end with end.
func (m *MultiBlock) MoveCollapseEdge(e, target *Edge, delta v3.Vec) error {
	if err := m.verts.MoveCollapse(e.Start, target.Start, By(delta)); err != nil {
		return fmt.Errorf("mesh: move-collapse edge %s: %w", e.Position, err)
	}
	if err := m.verts.MoveCollapse(e.End, target.End, By(delta)); err != nil {
		return fmt.Errorf("mesh: move-collapse edge %s: %w", e.Position, err)
	}
	return nil
}

// ScaleEdge scales both endpoints of e about the edge's current midpoint.
func (m *MultiBlock) ScaleEdge(e *Edge, ratio float64) error {
	center := m.verts.Center(e.Start, e.End)
	for _, id := range [2]int{e.Start, e.End} {
		if err := m.verts.Scale(id, ratio, center); err != nil {
			return fmt.Errorf("mesh: scale edge %s: %w", e.Position, err)
		}
	}
	return nil
}

// Arc selects how an arc edge's mid point is computed: either an explicit
// Point, or by rotating the edge start about Center by Angle degrees.
type Arc struct {
	Point  *v3.Vec
	Center *v3.Vec
	Angle  float64
}

// ArcThrough returns an Arc passing through p.
func ArcThrough(p v3.Vec) Arc { return Arc{Point: &p} }

// ArcAbout returns an Arc built by rotating the edge start about center.
func ArcAbout(center v3.Vec, angle float64) Arc { return Arc{Center: &center, Angle: angle} }

// ArcEdge turns e into an arc edge.
//
// With a center, the rotation axis is the unit normal of the plane through
// the edge's endpoints and the center, and passes through the center.
func (m *MultiBlock) ArcEdge(e *Edge, arc Arc) error {
	switch {
	case arc.Point != nil && arc.Center != nil:
		return fmt.Errorf("mesh: arc edge %s: %w: both arc point and center given", e.Position, ErrInvalidInput)
	case arc.Point != nil:
		e.Curve = CurveArc
		e.Points = []v3.Vec{*arc.Point}
		return nil
	case arc.Center == nil:
		return fmt.Errorf("mesh: arc edge %s: %w: neither arc point nor center given", e.Position, ErrInvalidInput)
	}

	p, err := rotateAbout(m.verts.Pos(e.Start), m.verts.Pos(e.End), *arc.Center, arc.Angle)
	if err != nil {
		return fmt.Errorf("mesh: arc edge %s: %w", e.Position, err)
	}
	e.Curve = CurveArc
	e.Points = []v3.Vec{p}
	return nil
}

// rotateAbout rotates start by deg degrees about the axis through center
// perpendicular to the plane (start, end, center).
func rotateAbout(start, end, center v3.Vec, deg float64) (v3.Vec, error) {
	s, e, c := toR3(start), toR3(end), toR3(center)
	n := r3.Cross(r3.Sub(e, s), r3.Sub(c, s))
	if r3.Norm(n) == 0 {
		return v3.Vec{}, fmt.Errorf("%w: edge endpoints and arc center are collinear", ErrInvalidInput)
	}
	rel := r3.Rotate(r3.Sub(s, c), deg*math.Pi/180, r3.Unit(n))
	return fromR3(r3.Add(c, rel)), nil
}

func toR3(v v3.Vec) r3.Vec   { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
func fromR3(v r3.Vec) v3.Vec { return v3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// SplineEdge turns e into a spline edge through the given interior points.
func (m *MultiBlock) SplineEdge(e *Edge, points []v3.Vec) error {
	if len(points) == 0 {
		return fmt.Errorf("mesh: spline edge %s: %w: no spline points", e.Position, ErrInvalidInput)
	}
	e.Curve = CurveSpline
	e.Points = append([]v3.Vec(nil), points...)
	return nil
}

// ---- faces ----

// MoveFace moves the four vertices of f by delta.
func (m *MultiBlock) MoveFace(f Face, delta v3.Vec) error {
	for _, id := range f.Vertices {
		if err := m.verts.Move(id, By(delta)); err != nil {
			return fmt.Errorf("mesh: move face %d/%s: %w", f.Block, f.Side, err)
		}
	}
	return nil
}

// ScaleFace scales the four vertices of f about their centroid.
func (m *MultiBlock) ScaleFace(f Face, ratio float64) error {
	center := m.verts.Center(f.Vertices[:]...)
	for _, id := range f.Vertices {
		if err := m.verts.Scale(id, ratio, center); err != nil {
			return fmt.Errorf("mesh: scale face %d/%s: %w", f.Block, f.Side, err)
		}
	}
	return nil
}

// ---- blocks ----

// MoveBlock moves the eight vertices of b by delta.
func (m *MultiBlock) MoveBlock(b *Block, delta v3.Vec) error {
	for _, id := range b.Vertices {
		if err := m.verts.Move(id, By(delta)); err != nil {
			return fmt.Errorf("mesh: move block %d: %w", b.ID, err)
		}
	}
	return nil
}

// ScaleBlock2D scales b about its centroid on the two axes of plane p.
func (m *MultiBlock) ScaleBlock2D(b *Block, p Plane, ratio float64) error {
	center := m.verts.Center(b.Vertices[:]...)
	a1, a2 := p.Axes()
	for _, id := range b.Vertices {
		m.verts.scaleAxes(id, ratio, center, a1, a2)
	}
	return nil
}

// ScaleBlock3D scales b about its centroid on all three axes.
func (m *MultiBlock) ScaleBlock3D(b *Block, ratio float64) error {
	center := m.verts.Center(b.Vertices[:]...)
	for _, id := range b.Vertices {
		if err := m.verts.Scale(id, ratio, center); err != nil {
			return fmt.Errorf("mesh: scale block %d: %w", b.ID, err)
		}
	}
	return nil
}

// ScaleBlocks2D scales a group of blocks together on the two axes of plane
// p. Each shared vertex moves once. The reference on each axis is the mean
// of the distinct coordinate values the group's vertices take on it.
func (m *MultiBlock) ScaleBlocks2D(ids []int, p Plane, ratio float64) error {
	a1, a2 := p.Axes()
	return m.scaleGroup(ids, ratio, a1, a2)
}

// ScaleBlocks3D is ScaleBlocks2D on all three axes.
func (m *MultiBlock) ScaleBlocks3D(ids []int, ratio float64) error {
	return m.scaleGroup(ids, ratio, Axes[:]...)
}

func (m *MultiBlock) scaleGroup(ids []int, ratio float64, axes ...Axis) error {
	if len(ids) == 0 {
		return fmt.Errorf("mesh: scale blocks: %w: no blocks given", ErrInvalidSelection)
	}
	var verts []int
	for _, id := range ids {
		b, err := m.Block(id)
		if err != nil {
			return err
		}
		verts = append(verts, b.Vertices[:]...)
	}
	verts = lo.Uniq(verts)

	var ref v3.Vec
	for _, a := range axes {
		vals := lo.Uniq(lo.Map(verts, func(id int, _ int) float64 {
			return component(m.verts.Pos(id), a)
		}))
		ref = withComponent(ref, a, lo.Sum(vals)/float64(len(vals)))
	}
	for _, id := range verts {
		m.verts.scaleAxes(id, ratio, ref, axes...)
	}
	return nil
}
