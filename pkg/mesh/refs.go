package mesh

import "fmt"

// EdgeRef addresses an edge by block id and the two faces meeting at it.
type EdgeRef struct {
	Block int
	Sides [2]Side
}

func (r EdgeRef) String() string {
	return fmt.Sprintf("%d/%s-%s", r.Block, r.Sides[0], r.Sides[1])
}

// FaceRef addresses a face by block id and side.
type FaceRef struct {
	Block int
	Side  Side
}

func (r FaceRef) String() string {
	return fmt.Sprintf("%d/%s", r.Block, r.Side)
}

// Edge resolves r to the block's own edge record.
func (m *MultiBlock) Edge(r EdgeRef) (*Edge, error) {
	b, err := m.Block(r.Block)
	if err != nil {
		return nil, err
	}
	e, err := b.FindEdge(r.Sides[0], r.Sides[1])
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	return e, nil
}

// Face resolves r to the block's face.
func (m *MultiBlock) Face(r FaceRef) (Face, error) {
	b, err := m.Block(r.Block)
	if err != nil {
		return Face{}, err
	}
	if r.Side < 0 || int(r.Side) >= len(b.Faces) {
		return Face{}, fmt.Errorf("mesh: %w: unknown side %d", ErrInvalidSelection, int(r.Side))
	}
	return b.Faces[r.Side], nil
}

// Patch is a named boundary made of block faces.
type Patch struct {
	Name  string
	Type  string
	Faces []Face
}

// Patch resolves a boundary declaration into face vertex loops.
func (m *MultiBlock) Patch(name, typ string, refs []FaceRef) (Patch, error) {
	if name == "" {
		return Patch{}, fmt.Errorf("mesh: boundary: %w: empty name", ErrInvalidInput)
	}
	if typ == "" {
		return Patch{}, fmt.Errorf("mesh: boundary %q: %w: empty type", name, ErrInvalidInput)
	}
	p := Patch{Name: name, Type: typ}
	for _, r := range refs {
		f, err := m.Face(r)
		if err != nil {
			return Patch{}, fmt.Errorf("mesh: boundary %q: %w", name, err)
		}
		p.Faces = append(p.Faces, f)
	}
	return p, nil
}
