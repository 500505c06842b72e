package mesh

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// MultiIndex is a block's coordinate in the block lattice.
type MultiIndex struct {
	X, Y, Z int
}

// At returns the index component on axis a.
func (m MultiIndex) At(a Axis) int {
	switch a {
	case AxisY:
		return m.Y
	case AxisZ:
		return m.Z
	}
	return m.X
}

// Shift returns m moved by n steps along axis a.
func (m MultiIndex) Shift(a Axis, n int) MultiIndex {
	switch a {
	case AxisY:
		m.Y += n
	case AxisZ:
		m.Z += n
	default:
		m.X += n
	}
	return m
}

func (m MultiIndex) String() string {
	return fmt.Sprintf("(%d, %d, %d)", m.X, m.Y, m.Z)
}

// Face is one side of a block: four vertex ids in fixed winding order.
type Face struct {
	Block    int
	Side     Side
	Vertices [4]int
}

// Block is one hexahedral cell of the multi-block grid.
type Block struct {
	ID       int
	Index    MultiIndex
	Active   bool
	Vertices [8]int
	Faces    [6]Face
	Edges    [12]*Edge
	Grading  v3.Vec
}

func newBlock(id int, verts [8]int) *Block {
	b := &Block{
		ID:       id,
		Active:   true,
		Vertices: verts,
		Grading:  v3.Vec{X: 1, Y: 1, Z: 1},
	}
	for _, s := range Sides {
		f := Face{Block: id, Side: s}
		for i, slot := range faceSlots[s] {
			f.Vertices[i] = verts[slot]
		}
		b.Faces[s] = f
	}
	b.Edges = b.DeriveEdges()
	return b
}

// DeriveEdges computes fresh straight edges from the block's vertices.
func (b *Block) DeriveEdges() [12]*Edge {
	var edges [12]*Edge
	for i, s := range edgeSpecs {
		edges[i] = &Edge{
			Position: EdgePosition(i),
			Start:    b.Vertices[s.start],
			End:      b.Vertices[s.end],
		}
	}
	return edges
}

// Label returns the block's grid label, e.g. "x-0_y-1_z-0".
func (b *Block) Label() string {
	return fmt.Sprintf("x-%d_y-%d_z-%d", b.Index.X, b.Index.Y, b.Index.Z)
}

// Face returns the face on side s.
func (b *Block) Face(s Side) Face { return b.Faces[s] }

// Edge returns the edge at position p.
func (b *Block) Edge(p EdgePosition) *Edge { return b.Edges[p] }

// FindEdge returns the edge where faces a and c meet, in either order.
func (b *Block) FindEdge(a, c Side) (*Edge, error) {
	p, err := FindEdgePosition(a, c)
	if err != nil {
		return nil, fmt.Errorf("block %d: %w", b.ID, err)
	}
	return b.Edges[p], nil
}

// HasEdge reports whether one of the block's edges equals e.
func (b *Block) HasEdge(e *Edge) bool {
	for _, own := range b.Edges {
		if own.Equal(e) {
			return true
		}
	}
	return false
}

// hasLink is HasEdge ignoring direction.
func (b *Block) hasLink(e *Edge) bool {
	for _, own := range b.Edges {
		if own.Link(e) {
			return true
		}
	}
	return false
}
