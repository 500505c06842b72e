// Package sdfx implements the kernel.Kernel interface on top of the
// github.com/deadsy/sdfx CAD library. Hexahedra are triangulated face by
// face rather than sampled, so collapsed and skewed blocks keep their
// exact corners.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/multiblock/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// degenerateArea is the smallest triangle area kept in a mesh.
const degenerateArea = 1e-12

// hexFaces lists each face as corner slots wound counterclockwise seen
// from outside, so triangle normals point out of the block.
var hexFaces = [6][4]int{
	{0, 3, 2, 1}, // back
	{4, 5, 6, 7}, // front
	{0, 4, 7, 3}, // left
	{1, 2, 6, 5}, // right
	{0, 1, 5, 4}, // bottom
	{3, 7, 6, 2}, // top
}

// sdfxSolid is a set of surface triangles with their bounding box.
type sdfxSolid struct {
	tris []*sdf.Triangle3
	bb   sdf.Box3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	min = [3]float64{s.bb.Min.X, s.bb.Min.Y, s.bb.Min.Z}
	max = [3]float64{s.bb.Max.X, s.bb.Max.Y, s.bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the triangle set from a kernel.Solid.
func unwrap(s kernel.Solid) *sdfxSolid {
	return s.(*sdfxSolid)
}

// Hex triangulates the six faces of a hexahedron into two triangles each.
// Triangles flattened by coincident corners are dropped.
func (k *SdfxKernel) Hex(c [8]v3.Vec) kernel.Solid {
	s := &sdfxSolid{bb: bounds(c[:])}
	for _, f := range hexFaces {
		a, b, cc, d := c[f[0]], c[f[1]], c[f[2]], c[f[3]]
		for _, t := range [2]sdf.Triangle3{{a, b, cc}, {a, cc, d}} {
			if area(t) <= degenerateArea {
				continue
			}
			s.tris = append(s.tris, &t)
		}
	}
	return s
}

func area(t sdf.Triangle3) float64 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Length() / 2
}

func bounds(pts []v3.Vec) sdf.Box3 {
	bb := sdf.Box3{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		bb.Min = v3.Vec{X: math.Min(bb.Min.X, p.X), Y: math.Min(bb.Min.Y, p.Y), Z: math.Min(bb.Min.Z, p.Z)}
		bb.Max = v3.Vec{X: math.Max(bb.Max.X, p.X), Y: math.Max(bb.Max.Y, p.Y), Z: math.Max(bb.Max.Z, p.Z)}
	}
	return bb
}

// Union returns a solid holding the triangles of both solids. Shared
// internal faces are kept; the preview shows block boundaries.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	sa, sb := unwrap(a), unwrap(b)
	tris := make([]*sdf.Triangle3, 0, len(sa.tris)+len(sb.tris))
	tris = append(tris, sa.tris...)
	tris = append(tris, sb.tris...)
	return &sdfxSolid{
		tris: tris,
		bb:   bounds([]v3.Vec{sa.bb.Min, sa.bb.Max, sb.bb.Min, sb.bb.Max}),
	}
}

// ToMesh flattens the solid's triangles into a mesh with per-face normals.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	triangles := unwrap(s).tris

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

// SaveSTL writes the solid's triangles as a binary STL file.
func (k *SdfxKernel) SaveSTL(path string, s kernel.Solid) error {
	tris := unwrap(s).tris
	if len(tris) == 0 {
		return fmt.Errorf("sdfx: %s: no triangles to write", path)
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("sdfx: %w", err)
	}
	return nil
}
