package mesh

import v3 "github.com/deadsy/sdfx/vec/v3"

// snapshot captures the mutable state of a MultiBlock: vertex positions,
// block activity and edge curves.
type snapshot struct {
	pos    []v3.Vec
	active []bool
	edges  [][12]*Edge
}

func (m *MultiBlock) snapshot() *snapshot {
	s := &snapshot{
		pos:    make([]v3.Vec, len(m.verts.verts)),
		active: make([]bool, len(m.blocks)),
		edges:  make([][12]*Edge, len(m.blocks)),
	}
	for i, v := range m.verts.verts {
		s.pos[i] = v.Pos
	}
	for i, b := range m.blocks {
		s.active[i] = b.Active
		for j, e := range b.Edges {
			s.edges[i][j] = e.clone()
		}
	}
	return s
}

// restore puts back the state captured by s. Edge records are updated in
// place so pointers held by callers stay valid.
func (m *MultiBlock) restore(s *snapshot) {
	for i := range m.verts.verts {
		m.verts.verts[i].Pos = s.pos[i]
	}
	for i, b := range m.blocks {
		b.Active = s.active[i]
		for j, e := range b.Edges {
			*e = *s.edges[i][j]
		}
	}
}

// atomically runs fn and rolls every change back if it fails.
func (m *MultiBlock) atomically(fn func() error) error {
	s := m.snapshot()
	if err := fn(); err != nil {
		m.restore(s)
		return err
	}
	return nil
}
