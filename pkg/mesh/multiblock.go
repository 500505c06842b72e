package mesh

import (
	"fmt"
	"math"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max v3.Vec
}

// Config is the input of grid construction.
type Config struct {
	Bounds Bounds
	// Splits holds the internal split coordinates per axis, indexed by Axis.
	Splits [3][]float64
	// Spacing is the target cell size per axis.
	Spacing v3.Vec
	// Exclude lists block ids created inactive.
	Exclude []int
}

// Counts is the number of blocks along each axis.
type Counts struct {
	X, Y, Z int
}

// At returns the count on axis a.
func (c Counts) At(a Axis) int {
	switch a {
	case AxisY:
		return c.Y
	case AxisZ:
		return c.Z
	}
	return c.X
}

// Total returns the number of blocks in the grid.
func (c Counts) Total() int { return c.X * c.Y * c.Z }

// MultiBlock owns the vertex arena and the block grid.
type MultiBlock struct {
	cfg     Config
	verts   Arena
	lattice [3][]float64
	counts  Counts
	blocks  []*Block
	grid    []*Block
	slices  [3][]Slice
}

// New validates cfg and builds the grid. Any invalid input aborts
// construction with an error wrapping ErrInvalidInput.
func New(cfg Config) (*MultiBlock, error) {
	m := &MultiBlock{cfg: cfg}
	if err := m.splitLocations(); err != nil {
		return nil, err
	}
	m.createVertices()
	if err := m.createBlocks(); err != nil {
		return nil, err
	}
	m.slices = buildSlices(m.counts)
	m.assignMultiIndex()
	m.buildGrid()
	return m, nil
}

// splitLocations validates the split planes and derives the lattice
// coordinates per axis.
func (m *MultiBlock) splitLocations() error {
	for _, a := range Axes {
		lo, hi := component(m.cfg.Bounds.Min, a), component(m.cfg.Bounds.Max, a)
		if !(lo < hi) {
			return fmt.Errorf("mesh: %w: %s bounds [%v, %v] are empty", ErrInvalidInput, a, lo, hi)
		}
		if d := component(m.cfg.Spacing, a); !(d > 0) || math.IsInf(d, 0) {
			return fmt.Errorf("mesh: %w: %s spacing %v must be positive", ErrInvalidInput, a, d)
		}
		splits := append([]float64(nil), m.cfg.Splits[a]...)
		sort.Float64s(splits)
		for i, s := range splits {
			if !(s > lo && s < hi) {
				return fmt.Errorf("mesh: %w: %s split plane %v lies outside (%v, %v)", ErrInvalidInput, a, s, lo, hi)
			}
			if i > 0 && s == splits[i-1] {
				return fmt.Errorf("mesh: %w: duplicate %s split plane %v", ErrInvalidInput, a, s)
			}
		}
		pts := make([]float64, 0, len(splits)+2)
		pts = append(pts, lo)
		pts = append(pts, splits...)
		pts = append(pts, hi)
		m.lattice[a] = pts
	}
	m.counts = Counts{
		X: len(m.lattice[AxisX]) - 1,
		Y: len(m.lattice[AxisY]) - 1,
		Z: len(m.lattice[AxisZ]) - 1,
	}
	return nil
}

// vertexID returns the id of the lattice vertex at (ix, iy, iz). Vertices
// are created z outermost, then y, then x.
func (m *MultiBlock) vertexID(ix, iy, iz int) int {
	nx, ny := len(m.lattice[AxisX]), len(m.lattice[AxisY])
	return ix + nx*(iy+ny*iz)
}

func (m *MultiBlock) createVertices() {
	for _, z := range m.lattice[AxisZ] {
		for _, y := range m.lattice[AxisY] {
			for _, x := range m.lattice[AxisX] {
				m.verts.Add(v3.Vec{X: x, Y: y, Z: z})
			}
		}
	}
}

func (m *MultiBlock) createBlocks() error {
	total := m.counts.Total()
	excluded := make(map[int]bool, len(m.cfg.Exclude))
	for _, id := range m.cfg.Exclude {
		if id < 0 || id >= total {
			return fmt.Errorf("mesh: %w: excluded block %d outside 0..%d", ErrInvalidInput, id, total-1)
		}
		excluded[id] = true
	}

	m.blocks = make([]*Block, 0, total)
	for iz := 0; iz < m.counts.Z; iz++ {
		for iy := 0; iy < m.counts.Y; iy++ {
			for ix := 0; ix < m.counts.X; ix++ {
				zb, zf := iz, iz+1
				yb, yt := iy, iy+1
				verts := [8]int{
					m.vertexID(ix, yb, zb),
					m.vertexID(ix+1, yb, zb),
					m.vertexID(ix+1, yt, zb),
					m.vertexID(ix, yt, zb),
					m.vertexID(ix, yb, zf),
					m.vertexID(ix+1, yb, zf),
					m.vertexID(ix+1, yt, zf),
					m.vertexID(ix, yt, zf),
				}
				b := newBlock(len(m.blocks), verts)
				b.Active = !excluded[b.ID]
				m.blocks = append(m.blocks, b)
			}
		}
	}
	return nil
}

// assignMultiIndex walks blocks in creation order with x varying fastest.
func (m *MultiBlock) assignMultiIndex() {
	var idx MultiIndex
	for _, b := range m.blocks {
		b.Index = idx
		idx.X++
		if idx.X == m.counts.X {
			idx.X = 0
			idx.Y++
			if idx.Y == m.counts.Y {
				idx.Y = 0
				idx.Z++
			}
		}
	}
}

func (m *MultiBlock) buildGrid() {
	m.grid = make([]*Block, m.counts.Total())
	for _, b := range m.blocks {
		m.grid[m.offset(b.Index)] = b
	}
}

func (m *MultiBlock) offset(i MultiIndex) int {
	return i.X + m.counts.X*(i.Y+m.counts.Y*i.Z)
}

func (m *MultiBlock) inGrid(i MultiIndex) bool {
	return i.X >= 0 && i.X < m.counts.X &&
		i.Y >= 0 && i.Y < m.counts.Y &&
		i.Z >= 0 && i.Z < m.counts.Z
}

// Config returns the construction input.
func (m *MultiBlock) Config() Config { return m.cfg }

// Counts returns the number of blocks per axis.
func (m *MultiBlock) Counts() Counts { return m.counts }

// Lattice returns the ordered lattice coordinates on axis a, bounding box
// limits included.
func (m *MultiBlock) Lattice(a Axis) []float64 {
	return append([]float64(nil), m.lattice[a]...)
}

// Vertices returns the vertex arena.
func (m *MultiBlock) Vertices() *Arena { return &m.verts }

// Blocks returns every block in id order, active or not.
func (m *MultiBlock) Blocks() []*Block { return m.blocks }

// Block returns the block with the given id.
func (m *MultiBlock) Block(id int) (*Block, error) {
	if id < 0 || id >= len(m.blocks) {
		return nil, fmt.Errorf("mesh: %w: block %d does not exist", ErrInvalidSelection, id)
	}
	return m.blocks[id], nil
}

// BlockAt returns the block at grid coordinate (ix, iy, iz).
func (m *MultiBlock) BlockAt(ix, iy, iz int) (*Block, error) {
	return m.blockAt(MultiIndex{X: ix, Y: iy, Z: iz})
}

func (m *MultiBlock) blockAt(i MultiIndex) (*Block, error) {
	if !m.inGrid(i) {
		return nil, fmt.Errorf("mesh: %w: grid index %s outside %d x %d x %d", ErrInvalidSelection, i, m.counts.X, m.counts.Y, m.counts.Z)
	}
	return m.grid[m.offset(i)], nil
}

// Slices returns the block layers of plane p.
func (m *MultiBlock) Slices(p Plane) []Slice { return m.slices[p] }

// Spacing returns the cell count per axis for block b: the block's
// current extent divided by the configured spacing, truncated, and never
// less than one.
func (m *MultiBlock) Spacing(b *Block) [3]int {
	var n [3]int
	for _, a := range Axes {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, id := range b.Vertices {
			c := component(m.verts.Pos(id), a)
			lo = math.Min(lo, c)
			hi = math.Max(hi, c)
		}
		n[a] = int((hi - lo) / component(m.cfg.Spacing, a))
		if n[a] < 1 {
			n[a] = 1
		}
	}
	return n
}

// UniqueEdges returns one edge per distinct (start, end) pair across all
// blocks, in block then position order.
func (m *MultiBlock) UniqueEdges() []*Edge {
	var out []*Edge
	seen := make(map[[2]int]bool)
	for _, b := range m.blocks {
		for _, e := range b.Edges {
			key := [2]int{e.Start, e.End}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, e)
		}
	}
	return out
}

// CurvedEdges returns the distinct curved edges still referenced by an
// active block. When several blocks curve the same vertex pair the first
// in block order wins.
func (m *MultiBlock) CurvedEdges() []*Edge {
	var out []*Edge
	seen := make(map[[2]int]bool)
	for _, b := range m.blocks {
		for _, e := range b.Edges {
			if !e.Curved() {
				continue
			}
			lo, hi := e.Start, e.End
			if lo > hi {
				lo, hi = hi, lo
			}
			key := [2]int{lo, hi}
			if seen[key] || !m.activeLink(e) {
				continue
			}
			seen[key] = true
			out = append(out, e)
		}
	}
	return out
}

func (m *MultiBlock) activeLink(e *Edge) bool {
	for _, b := range m.blocks {
		if b.Active && b.hasLink(e) {
			return true
		}
	}
	return false
}

// ActiveBlocks returns the active blocks in id order.
func (m *MultiBlock) ActiveBlocks() []*Block {
	var out []*Block
	for _, b := range m.blocks {
		if b.Active {
			out = append(out, b)
		}
	}
	return out
}
