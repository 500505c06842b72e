// Package kernel defines the geometry kernel used for mesh previews.
// A backend turns hexahedral blocks into solids and solids into triangle
// meshes, so the preview path does not depend on one library.
package kernel

import v3 "github.com/deadsy/sdfx/vec/v3"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Hex builds a hexahedron from eight corners in block vertex order:
	// the back face (low z) counterclockwise from the low corner, then
	// the front face in the same order. Corners may coincide.
	Hex(corners [8]v3.Vec) Solid

	// Union returns a solid holding both a and b.
	Union(a, b Solid) Solid

	// ToMesh converts a solid to a flat triangle mesh.
	ToMesh(s Solid) (*Mesh, error)

	// SaveSTL writes a solid to an STL file.
	SaveSTL(path string, s Solid) error
}
