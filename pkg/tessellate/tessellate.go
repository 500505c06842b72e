// Package tessellate turns the active blocks of a multi-block mesh into
// triangle meshes using a geometry kernel. One mesh is produced per block.
package tessellate

import (
	"fmt"

	"github.com/chazu/multiblock/pkg/kernel"
	"github.com/chazu/multiblock/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// corners returns the positions of a block's eight vertices in slot order.
func corners(m *mesh.MultiBlock, b *mesh.Block) [8]v3.Vec {
	var c [8]v3.Vec
	verts := m.Vertices()
	for i, id := range b.Vertices {
		c[i] = verts.Pos(id)
	}
	return c
}

// Tessellate produces one triangle mesh per active block, named by the
// block's lattice label. The tessellator never mutates the mesh.
func Tessellate(m *mesh.MultiBlock, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if m == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, b := range m.ActiveBlocks() {
		out, err := k.ToMesh(k.Hex(corners(m, b)))
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for block %d: %w", b.ID, err)
		}
		out.Name = b.Label()
		meshes = append(meshes, out)
	}
	return meshes, nil
}

// Solid returns the union of every active block.
func Solid(m *mesh.MultiBlock, k kernel.Kernel) (kernel.Solid, error) {
	var s kernel.Solid
	for _, b := range m.ActiveBlocks() {
		hex := k.Hex(corners(m, b))
		if s == nil {
			s = hex
			continue
		}
		s = k.Union(s, hex)
	}
	if s == nil {
		return nil, fmt.Errorf("tessellate: %w: no active blocks", mesh.ErrInvalidInput)
	}
	return s, nil
}

// SaveSTL writes the union of every active block to path.
func SaveSTL(path string, m *mesh.MultiBlock, k kernel.Kernel) error {
	s, err := Solid(m, k)
	if err != nil {
		return err
	}
	if err := k.SaveSTL(path, s); err != nil {
		return fmt.Errorf("tessellate: %w", err)
	}
	return nil
}
