package mesh

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Axis identifies one of the three cardinal axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists the cardinal axes in index order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Plane identifies one of the three cardinal slice planes.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneYZ
	PlaneZX
)

// Planes lists the slice planes in report order.
var Planes = [3]Plane{PlaneXY, PlaneYZ, PlaneZX}

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneYZ:
		return "yz"
	case PlaneZX:
		return "zx"
	}
	return fmt.Sprintf("Plane(%d)", int(p))
}

// ParsePlane converts "xy", "yz" or "zx" to a Plane.
func ParsePlane(s string) (Plane, error) {
	switch s {
	case "xy":
		return PlaneXY, nil
	case "yz":
		return PlaneYZ, nil
	case "zx":
		return PlaneZX, nil
	}
	return 0, fmt.Errorf("%w: unknown plane %q, expected xy, yz or zx", ErrInvalidInput, s)
}

// Axes returns the plane's two in-plane axes in rule-table order:
// xy is (x, y), yz is (y, z) and zx is (z, x). The first axis carries the
// cosine term of quadrant angles, the second the sine term.
func (p Plane) Axes() (Axis, Axis) {
	switch p {
	case PlaneYZ:
		return AxisY, AxisZ
	case PlaneZX:
		return AxisZ, AxisX
	}
	return AxisX, AxisY
}

// Normal returns the axis perpendicular to the plane.
func (p Plane) Normal() Axis {
	switch p {
	case PlaneYZ:
		return AxisX
	case PlaneZX:
		return AxisY
	}
	return AxisZ
}

// Point builds a coordinate from untyped numeric input. It fails with
// ErrMalformedCoordinate unless exactly three finite values are given.
func Point(vals ...float64) (v3.Vec, error) {
	if len(vals) != 3 {
		return v3.Vec{}, fmt.Errorf("%w: want 3 components, got %d", ErrMalformedCoordinate, len(vals))
	}
	for i, f := range vals {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return v3.Vec{}, fmt.Errorf("%w: component %d is %v", ErrMalformedCoordinate, i, f)
		}
	}
	return v3.Vec{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// component returns the coordinate of v on axis a.
func component(v v3.Vec, a Axis) float64 {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	return v.X
}

// withComponent returns v with its coordinate on axis a replaced by f.
func withComponent(v v3.Vec, a Axis, f float64) v3.Vec {
	switch a {
	case AxisY:
		v.Y = f
	case AxisZ:
		v.Z = f
	default:
		v.X = f
	}
	return v
}

// mean returns the arithmetic mean of the given points.
func mean(pts []v3.Vec) v3.Vec {
	var sum v3.Vec
	for _, p := range pts {
		sum = sum.Add(p)
	}
	if len(pts) == 0 {
		return sum
	}
	return sum.MulScalar(1 / float64(len(pts)))
}
