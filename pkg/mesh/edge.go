package mesh

import (
	"fmt"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// CurveKind tells how an edge is bowed between its endpoints.
type CurveKind int

const (
	CurveNone CurveKind = iota
	CurveArc
	CurveSpline
)

func (k CurveKind) String() string {
	switch k {
	case CurveNone:
		return "none"
	case CurveArc:
		return "arc"
	case CurveSpline:
		return "spline"
	}
	return fmt.Sprintf("CurveKind(%d)", int(k))
}

// Edge is one of the twelve edges of a block. Start and End are vertex
// ids; two blocks sharing vertices produce equal edges without sharing
// Edge records.
type Edge struct {
	Position EdgePosition
	Start    int
	End      int

	Curve  CurveKind
	Points []v3.Vec
}

// Direction returns the axis the edge was built along.
func (e *Edge) Direction() Axis { return e.Position.Direction() }

// Equal reports whether both edges run between the same two vertices in
// the same direction.
func (e *Edge) Equal(o *Edge) bool {
	return e.Start == o.Start && e.End == o.End
}

// Link reports whether both edges connect the same two vertices,
// regardless of direction.
func (e *Edge) Link(o *Edge) bool {
	return e.Equal(o) || (e.Start == o.End && e.End == o.Start)
}

// Curved reports whether the edge carries an arc or spline.
func (e *Edge) Curved() bool { return e.Curve != CurveNone }

// Definition renders the edge entry of a blockMeshDict edges section, or
// "" for a straight edge.
func (e *Edge) Definition() string {
	switch e.Curve {
	case CurveArc:
		return fmt.Sprintf("arc %d %d %s", e.Start, e.End, FormatPoint(e.Points[0]))
	case CurveSpline:
		var b strings.Builder
		fmt.Fprintf(&b, "spline %d %d (", e.Start, e.End)
		for _, p := range e.Points {
			b.WriteString(" ")
			b.WriteString(FormatPoint(p))
		}
		b.WriteString(" )")
		return b.String()
	}
	return ""
}

func (e *Edge) String() string {
	s := fmt.Sprintf("%d -> %d - %s", e.Start, e.End, e.Position)
	if def := e.Definition(); def != "" {
		s += " - " + def
	}
	return s
}

func (e *Edge) clone() *Edge {
	c := *e
	c.Points = append([]v3.Vec(nil), e.Points...)
	return &c
}

// FormatPoint renders p as "(x y z)" using the shortest exact float form.
func FormatPoint(p v3.Vec) string {
	return fmt.Sprintf("(%s %s %s)", FormatFloat(p.X), FormatFloat(p.Y), FormatFloat(p.Z))
}

// FormatFloat renders f in its shortest exact form.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
