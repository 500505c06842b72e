package mesh

import "fmt"

// Side names one of the six faces of a block. Back/front are the low/high
// z sides, bottom/top the low/high y sides and left/right the low/high x
// sides.
type Side int

const (
	Front Side = iota
	Back
	Left
	Right
	Bottom
	Top
)

// Sides lists the faces in the order they are reported.
var Sides = [6]Side{Front, Back, Left, Right, Bottom, Top}

var sideNames = [6]string{"front", "back", "left", "right", "bottom", "top"}

func (s Side) String() string {
	if s < 0 || int(s) >= len(sideNames) {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

// ParseSide converts a face name to a Side.
func ParseSide(name string) (Side, error) {
	for i, n := range sideNames {
		if n == name {
			return Side(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown face %q, expected front/back/left/right/bottom/top", ErrInvalidSelection, name)
}

// Block-local vertex slots, in hex convention order.
const (
	backBottomLeft = iota
	backBottomRight
	backTopRight
	backTopLeft
	frontBottomLeft
	frontBottomRight
	frontTopRight
	frontTopLeft
)

// faceSlots gives each face's vertex loop as block-local slots. The
// winding matches what blockMesh expects for outward-facing patches.
var faceSlots = [6][4]int{
	Front:  {frontBottomLeft, frontTopLeft, frontTopRight, frontBottomRight},
	Back:   {backBottomLeft, backBottomRight, backTopRight, backTopLeft},
	Left:   {backBottomLeft, backTopLeft, frontTopLeft, frontBottomLeft},
	Right:  {frontBottomRight, frontTopRight, backTopRight, backBottomRight},
	Bottom: {backBottomLeft, frontBottomLeft, frontBottomRight, backBottomRight},
	Top:    {backTopLeft, backTopRight, frontTopRight, frontTopLeft},
}

// EdgePosition is the block-local index (0..11) of an edge.
type EdgePosition int

type edgeSpec struct {
	dir        Axis
	a, b       Side
	start, end int
}

// edgeSpecs is the fixed edge convention: four x edges, four y edges and
// four z edges, each running from the lower to the higher coordinate.
var edgeSpecs = [12]edgeSpec{
	{AxisX, Back, Bottom, backBottomLeft, backBottomRight},
	{AxisX, Back, Top, backTopLeft, backTopRight},
	{AxisX, Front, Bottom, frontBottomLeft, frontBottomRight},
	{AxisX, Front, Top, frontTopLeft, frontTopRight},
	{AxisY, Back, Left, backBottomLeft, backTopLeft},
	{AxisY, Back, Right, backBottomRight, backTopRight},
	{AxisY, Front, Left, frontBottomLeft, frontTopLeft},
	{AxisY, Front, Right, frontBottomRight, frontTopRight},
	{AxisZ, Left, Bottom, backBottomLeft, frontBottomLeft},
	{AxisZ, Left, Top, backTopLeft, frontTopLeft},
	{AxisZ, Right, Bottom, backBottomRight, frontBottomRight},
	{AxisZ, Right, Top, backTopRight, frontTopRight},
}

// Direction returns the axis the edge runs along.
func (p EdgePosition) Direction() Axis { return edgeSpecs[p].dir }

// Sides returns the two faces that meet at the edge.
func (p EdgePosition) Sides() (Side, Side) { return edgeSpecs[p].a, edgeSpecs[p].b }

func (p EdgePosition) String() string {
	if p < 0 || int(p) >= len(edgeSpecs) {
		return fmt.Sprintf("EdgePosition(%d)", int(p))
	}
	s := edgeSpecs[p]
	return s.a.String() + "-" + s.b.String()
}

// FindEdgePosition returns the edge where faces a and b meet. The pair is
// order-insensitive; opposite or identical faces are an invalid selection.
func FindEdgePosition(a, b Side) (EdgePosition, error) {
	for i, s := range edgeSpecs {
		if (s.a == a && s.b == b) || (s.a == b && s.b == a) {
			return EdgePosition(i), nil
		}
	}
	return 0, fmt.Errorf("%w: faces %s and %s do not share an edge", ErrInvalidSelection, a, b)
}

// ParseEdgePosition accepts "a-b" in either order, e.g. "bottom-back".
func ParseEdgePosition(label string) (EdgePosition, error) {
	for i := 0; i < len(label); i++ {
		if label[i] != '-' {
			continue
		}
		a, errA := ParseSide(label[:i])
		b, errB := ParseSide(label[i+1:])
		if errA == nil && errB == nil {
			return FindEdgePosition(a, b)
		}
	}
	return 0, fmt.Errorf("%w: unknown edge position %q", ErrInvalidSelection, label)
}
