package mesh

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// SelectionPlane infers the plane of a block pair from the one axis on
// which their multi-indices agree: equal x gives yz, equal y gives zx and
// equal z gives xy.
func SelectionPlane(a, b MultiIndex) (Plane, error) {
	var equal []Axis
	for _, ax := range Axes {
		if a.At(ax) == b.At(ax) {
			equal = append(equal, ax)
		}
	}
	if len(equal) != 1 {
		return 0, fmt.Errorf("%w: blocks %s and %s must share exactly one grid index, share %d", ErrInvalidSelection, a, b, len(equal))
	}
	switch equal[0] {
	case AxisX:
		return PlaneYZ, nil
	case AxisY:
		return PlaneZX, nil
	}
	return PlaneXY, nil
}

// QuadrantNumber returns which quadrant (1..4) around center the corner
// block lies in, from the signs of corner - center on the plane's two
// axes: (+,+) is 1, (-,+) is 2, (-,-) is 3 and (+,-) is 4.
func QuadrantNumber(center, corner MultiIndex, p Plane) (int, error) {
	a1, a2 := p.Axes()
	d1 := corner.At(a1) - center.At(a1)
	d2 := corner.At(a2) - center.At(a2)
	switch {
	case d1 > 0 && d2 > 0:
		return 1, nil
	case d1 < 0 && d2 > 0:
		return 2, nil
	case d1 < 0 && d2 < 0:
		return 3, nil
	case d1 > 0 && d2 < 0:
		return 4, nil
	}
	return 0, fmt.Errorf("%w: corner %s is not diagonal to center %s in the %s plane", ErrInvalidSelection, corner, center, p)
}

// MakeQuadrant replaces the corner block with a curved wedge of the given
// radius around the center block's pivot edge. The corner block is
// deactivated. On failure the multi-block is left unchanged.
func (m *MultiBlock) MakeQuadrant(centerID, cornerID int, radius float64) error {
	center, err := m.Block(centerID)
	if err != nil {
		return fmt.Errorf("mesh: quadrant: %w", err)
	}
	corner, err := m.Block(cornerID)
	if err != nil {
		return fmt.Errorf("mesh: quadrant: %w", err)
	}
	return m.atomically(func() error {
		return m.quadrant(center, corner, radius)
	})
}

// MakeSemicircle builds two quadrants from the diagonal pair (start, end),
// where start must precede end on both plane axes.
func (m *MultiBlock) MakeSemicircle(startID, endID int, radius float64) error {
	return m.composite("semicircle", startID, endID, radius, func(s, e MultiIndex, a1, a2 Axis) [][2]MultiIndex {
		return [][2]MultiIndex{
			{s.Shift(a1, 2), e},
			{s.Shift(a1, 1), s.Shift(a2, 1)},
		}
	})
}

// MakeCircle builds four quadrants from the diagonal pair (start, end),
// where start must precede end on both plane axes.
func (m *MultiBlock) MakeCircle(startID, endID int, radius float64) error {
	return m.composite("circle", startID, endID, radius, func(s, e MultiIndex, a1, a2 Axis) [][2]MultiIndex {
		return [][2]MultiIndex{
			{s.Shift(a1, 2).Shift(a2, 2), e},
			{s.Shift(a1, 1).Shift(a2, 2), s.Shift(a2, 3)},
			{s.Shift(a1, 1).Shift(a2, 1), s},
			{s.Shift(a1, 2).Shift(a2, 1), s.Shift(a1, 3)},
		}
	})
}

// composite validates the user-chosen pair once, then runs one quadrant
// per (center, corner) pair produced by layout. The whole composite is
// rolled back if any quadrant fails.
func (m *MultiBlock) composite(
	name string,
	startID, endID int,
	radius float64,
	layout func(s, e MultiIndex, a1, a2 Axis) [][2]MultiIndex,
) error {
	start, err := m.Block(startID)
	if err != nil {
		return fmt.Errorf("mesh: %s: %w", name, err)
	}
	end, err := m.Block(endID)
	if err != nil {
		return fmt.Errorf("mesh: %s: %w", name, err)
	}
	p, err := SelectionPlane(start.Index, end.Index)
	if err != nil {
		return fmt.Errorf("mesh: %s: %w", name, err)
	}
	a1, a2 := p.Axes()
	if !(start.Index.At(a1) < end.Index.At(a1) && start.Index.At(a2) < end.Index.At(a2)) {
		return fmt.Errorf("mesh: %s: %w: start block %d %s must precede end block %d %s on %s and %s",
			name, ErrInvalidSelection, start.ID, start.Index, end.ID, end.Index, a1, a2)
	}

	return m.atomically(func() error {
		for i, pair := range layout(start.Index, end.Index, a1, a2) {
			center, err := m.blockAt(pair[0])
			if err != nil {
				return fmt.Errorf("mesh: %s: quadrant %d: %w", name, i+1, err)
			}
			corner, err := m.blockAt(pair[1])
			if err != nil {
				return fmt.Errorf("mesh: %s: quadrant %d: %w", name, i+1, err)
			}
			if err := m.quadrant(center, corner, radius); err != nil {
				return fmt.Errorf("mesh: %s: quadrant %d: %w", name, i+1, err)
			}
		}
		return nil
	})
}

// quadrant performs the wedge construction without rollback.
func (m *MultiBlock) quadrant(center, corner *Block, radius float64) error {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return fmt.Errorf("mesh: quadrant: %w: radius %v must be positive", ErrInvalidInput, radius)
	}
	plane, err := SelectionPlane(center.Index, corner.Index)
	if err != nil {
		return fmt.Errorf("mesh: quadrant: %w", err)
	}
	q, err := QuadrantNumber(center.Index, corner.Index, plane)
	if err != nil {
		return fmt.Errorf("mesh: quadrant: %w", err)
	}
	rule := quadrantRules[plane][q-1]
	a1, a2 := plane.Axes()

	shift := blockShift[q-1]
	top, err := m.blockAt(center.Index.Shift(a2, shift.top))
	if err != nil {
		return fmt.Errorf("mesh: quadrant: top block: %w", err)
	}
	side, err := m.blockAt(center.Index.Shift(a1, shift.side))
	if err != nil {
		return fmt.Errorf("mesh: quadrant: side block: %w", err)
	}

	corner.Active = false

	find := func(b *Block, loc edgeLoc) *Edge {
		p, err := FindEdgePosition(loc[0], loc[1])
		if err != nil {
			panic(fmt.Sprintf("mesh: bad quadrant rule %v: %v", loc, err))
		}
		return b.Edges[p]
	}
	topCollapse := find(top, rule.collapse)
	sideCollapse := find(side, rule.collapse)
	axis := find(center, rule.axis)
	topRadial := find(top, rule.topRadial)
	sideRadial := find(side, rule.sideRadial)

	// Put the outer ends of the radial edges on the circle.
	pairs := [4][2]int{
		{axis.Start, topRadial.Start},
		{axis.End, topRadial.End},
		{axis.Start, sideRadial.Start},
		{axis.End, sideRadial.End},
	}
	for _, pr := range pairs {
		ref := m.verts.Pos(pr[0])
		dist := m.verts.Pos(pr[1]).Sub(ref).Length()
		if dist == 0 {
			return fmt.Errorf("mesh: quadrant: %w: radial vertex %d coincides with pivot vertex %d", ErrInvalidSelection, pr[1], pr[0])
		}
		if err := m.verts.Scale(pr[1], radius/dist, ref); err != nil {
			return fmt.Errorf("mesh: quadrant: %w", err)
		}
	}

	pivot := m.verts.Pos(axis.Start)
	onCircle := func(deg float64) v3.Vec {
		rad := deg * math.Pi / 180
		p := withComponent(pivot, a1, component(pivot, a1)+radius*math.Cos(rad))
		return withComponent(p, a2, component(pivot, a2)+radius*math.Sin(rad))
	}
	angles := quadrantAngles[q-1]

	// Fold the corner: move the side collapse edge onto the circle and
	// collapse the top one onto it.
	cornerPos := onCircle(angles.corner)
	sideStart := m.verts.Pos(sideCollapse.Start)
	var delta v3.Vec
	delta = withComponent(delta, a1, component(cornerPos, a1)-component(sideStart, a1))
	delta = withComponent(delta, a2, component(cornerPos, a2)-component(sideStart, a2))
	if err := m.MoveCollapseEdge(topCollapse, sideCollapse, delta); err != nil {
		return fmt.Errorf("mesh: quadrant: %w", err)
	}

	// Pull the inner corner edge toward the pivot.
	var inner *Edge
	for _, e := range center.Edges {
		if top.HasEdge(e) && side.HasEdge(e) {
			inner = e
			break
		}
	}
	if inner == nil {
		return fmt.Errorf("mesh: quadrant: %w: blocks %d, %d and %d share no edge", ErrInvalidSelection, center.ID, top.ID, side.ID)
	}
	nudge := radius / 2 * CompressionFactor
	var shiftInner v3.Vec
	shiftInner = withComponent(shiftInner, a1, innerShift[q-1][0]*nudge)
	shiftInner = withComponent(shiftInner, a2, innerShift[q-1][1]*nudge)
	if err := m.MoveEdge(inner, shiftInner); err != nil {
		return fmt.Errorf("mesh: quadrant: %w", err)
	}

	// Bow the outer edges of both neighbours onto the circle.
	out := plane.Normal()
	curve := func(b *Block, locs [2]edgeLoc, deg float64) {
		target := onCircle(deg)
		for _, loc := range locs {
			e := find(b, loc)
			p := withComponent(target, out, component(m.verts.Pos(e.Start), out))
			e.Curve = CurveArc
			e.Points = []v3.Vec{p}
		}
	}
	curve(top, rule.topArc, angles.topArc)
	curve(side, rule.sideArc, angles.sideArc)
	return nil
}
