package mesh

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vertex is a mesh point with a stable identity. Ids are assigned in
// creation order and never reused.
type Vertex struct {
	ID  int
	Pos v3.Vec
}

// Move describes a vertex relocation: exactly one of Location (absolute)
// or Delta (relative) must be set.
type Move struct {
	Location *v3.Vec
	Delta    *v3.Vec
}

// To returns a Move to an absolute location.
func To(p v3.Vec) Move { return Move{Location: &p} }

// By returns a Move by a relative delta.
func By(d v3.Vec) Move { return Move{Delta: &d} }

// Validate reports ErrAmbiguousMove unless exactly one of Location and
// Delta is set.
func (m Move) Validate() error {
	switch {
	case m.Location != nil && m.Delta != nil:
		return fmt.Errorf("%w: both location and delta given", ErrAmbiguousMove)
	case m.Location == nil && m.Delta == nil:
		return fmt.Errorf("%w: neither location nor delta given", ErrAmbiguousMove)
	}
	return nil
}

// apply returns the position p relocated by m. m must be valid.
func (m Move) apply(p v3.Vec) v3.Vec {
	if m.Location != nil {
		return *m.Location
	}
	return p.Add(*m.Delta)
}

// Arena owns every vertex of a mesh. Other entities refer to vertices by
// id and mutate them only through the arena.
type Arena struct {
	verts []Vertex
}

// Add appends a vertex at p and returns its id.
func (a *Arena) Add(p v3.Vec) int {
	id := len(a.verts)
	a.verts = append(a.verts, Vertex{ID: id, Pos: p})
	return id
}

// Len returns the number of vertices.
func (a *Arena) Len() int { return len(a.verts) }

// Has reports whether id names a vertex in the arena.
func (a *Arena) Has(id int) bool { return id >= 0 && id < len(a.verts) }

// Vertex returns a copy of the vertex with the given id.
func (a *Arena) Vertex(id int) (Vertex, error) {
	if !a.Has(id) {
		return Vertex{}, fmt.Errorf("%w: vertex %d does not exist", ErrInvalidSelection, id)
	}
	return a.verts[id], nil
}

// Pos returns the position of vertex id. It panics on an unknown id; ids
// held by blocks, faces and edges are always valid.
func (a *Arena) Pos(id int) v3.Vec { return a.verts[id].Pos }

// All returns the vertices in id order. The slice must not be modified.
func (a *Arena) All() []Vertex { return a.verts }

// Center returns the mean position of the given vertices.
func (a *Arena) Center(ids ...int) v3.Vec {
	pts := make([]v3.Vec, len(ids))
	for i, id := range ids {
		pts[i] = a.verts[id].Pos
	}
	return mean(pts)
}

func (a *Arena) check(ids ...int) error {
	for _, id := range ids {
		if !a.Has(id) {
			return fmt.Errorf("%w: vertex %d does not exist", ErrInvalidSelection, id)
		}
	}
	return nil
}

// Move relocates vertex id. The vertex is left untouched when m is
// ambiguous.
func (a *Arena) Move(id int, m Move) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := a.check(id); err != nil {
		return err
	}
	a.verts[id].Pos = m.apply(a.verts[id].Pos)
	return nil
}

// Collapse copies the position of target onto vertex id. The two vertices
// keep their own identities.
func (a *Arena) Collapse(id, target int) error {
	if err := a.check(id, target); err != nil {
		return err
	}
	a.verts[id].Pos = a.verts[target].Pos
	return nil
}

// MoveCollapse relocates target by m, then collapses vertex id onto the
// new position.
func (a *Arena) MoveCollapse(id, target int, m Move) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := a.check(id, target); err != nil {
		return err
	}
	a.verts[target].Pos = m.apply(a.verts[target].Pos)
	a.verts[id].Pos = a.verts[target].Pos
	return nil
}

// Scale moves vertex id to ref + ratio*(pos - ref).
func (a *Arena) Scale(id int, ratio float64, ref v3.Vec) error {
	if err := a.check(id); err != nil {
		return err
	}
	p := a.verts[id].Pos
	return a.Move(id, To(ref.Add(p.Sub(ref).MulScalar(ratio))))
}

// scaleAxes scales vertex id about ref on the given axes only.
func (a *Arena) scaleAxes(id int, ratio float64, ref v3.Vec, axes ...Axis) {
	p := a.verts[id].Pos
	for _, ax := range axes {
		r := component(ref, ax)
		p = withComponent(p, ax, r+ratio*(component(p, ax)-r))
	}
	a.verts[id].Pos = p
}
