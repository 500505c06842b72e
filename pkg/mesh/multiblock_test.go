package mesh

import (
	"errors"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// scenarioA is a 2 x 2 x 1 grid over [0,2] x [0,2] x [0,0.4].
func scenarioA() Config {
	return Config{
		Bounds: Bounds{
			Min: v3.Vec{X: 0, Y: 0, Z: 0},
			Max: v3.Vec{X: 2, Y: 2, Z: 0.4},
		},
		Splits:  [3][]float64{{1}, {1}, nil},
		Spacing: v3.Vec{X: 1, Y: 1, Z: 0.4},
	}
}

func mustNew(t *testing.T, cfg Config) *MultiBlock {
	t.Helper()
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

// ---------------------------------------------------------------------------
// Grid construction
// ---------------------------------------------------------------------------

func TestScenarioA(t *testing.T) {
	m := mustNew(t, scenarioA())

	if got := m.Counts(); got != (Counts{X: 2, Y: 2, Z: 1}) {
		t.Fatalf("Counts() = %+v, want 2x2x1", got)
	}
	if n := len(m.Blocks()); n != 4 {
		t.Fatalf("len(Blocks()) = %d, want 4", n)
	}
	if n := m.Vertices().Len(); n != 18 {
		t.Fatalf("vertex count = %d, want 18", n)
	}

	want := []MultiIndex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}
	for i, b := range m.Blocks() {
		if b.Index != want[i] {
			t.Errorf("block %d index = %s, want %s", i, b.Index, want[i])
		}
		if !b.Active {
			t.Errorf("block %d inactive", i)
		}
	}
}

func TestGridCardinality(t *testing.T) {
	tests := []struct {
		name   string
		splits [3][]float64
	}{
		{"no splits", [3][]float64{}},
		{"x only", [3][]float64{{0.5, 1.5}, nil, nil}},
		{"all axes", [3][]float64{{1}, {0.5, 1, 1.5}, {0.1, 0.2}}},
		{"unsorted", [3][]float64{{1.5, 0.5, 1}, {1}, nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scenarioA()
			cfg.Splits = tt.splits
			m := mustNew(t, cfg)

			c := m.Counts()
			want := (len(tt.splits[0]) + 1) * (len(tt.splits[1]) + 1) * (len(tt.splits[2]) + 1)
			if c.Total() != c.X*c.Y*c.Z || c.Total() != want {
				t.Errorf("Total() = %d (%d x %d x %d), want %d", c.Total(), c.X, c.Y, c.Z, want)
			}
			if len(m.Blocks()) != want {
				t.Errorf("len(Blocks()) = %d, want %d", len(m.Blocks()), want)
			}
			wantVerts := (c.X + 1) * (c.Y + 1) * (c.Z + 1)
			if m.Vertices().Len() != wantVerts {
				t.Errorf("vertex count = %d, want %d", m.Vertices().Len(), wantVerts)
			}
		})
	}
}

func TestLatticeSorted(t *testing.T) {
	cfg := scenarioA()
	cfg.Splits[AxisX] = []float64{1.5, 0.5}
	m := mustNew(t, cfg)

	got := m.Lattice(AxisX)
	want := []float64{0, 0.5, 1.5, 2}
	if len(got) != len(want) {
		t.Fatalf("Lattice(x) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lattice(x) = %v, want %v", got, want)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"split below min", func(c *Config) { c.Splits[AxisX] = []float64{-0.1} }},
		{"split above max", func(c *Config) { c.Splits[AxisY] = []float64{2.5} }},
		{"split on boundary", func(c *Config) { c.Splits[AxisZ] = []float64{0.4} }},
		{"duplicate split", func(c *Config) { c.Splits[AxisX] = []float64{1, 1} }},
		{"empty bounds", func(c *Config) { c.Bounds.Max.X = 0 }},
		{"zero spacing", func(c *Config) { c.Spacing.Y = 0 }},
		{"exclude out of range", func(c *Config) { c.Exclude = []int{4} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scenarioA()
			tt.mutate(&cfg)
			m, err := New(cfg)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("New() error = %v, want ErrInvalidInput", err)
			}
			if m != nil {
				t.Fatal("New() returned a partial multi-block")
			}
		})
	}
}

func TestVertexOrder(t *testing.T) {
	m := mustNew(t, scenarioA())
	a := m.Vertices()

	// z outermost, then y, then x.
	checks := map[int]v3.Vec{
		0:  {X: 0, Y: 0, Z: 0},
		1:  {X: 1, Y: 0, Z: 0},
		3:  {X: 0, Y: 1, Z: 0},
		8:  {X: 2, Y: 2, Z: 0},
		9:  {X: 0, Y: 0, Z: 0.4},
		17: {X: 2, Y: 2, Z: 0.4},
	}
	for id, want := range checks {
		if got := a.Pos(id); got != want {
			t.Errorf("vertex %d at %v, want %v", id, got, want)
		}
	}
}

func TestBlockVertexConvention(t *testing.T) {
	m := mustNew(t, scenarioA())
	b, err := m.BlockAt(1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	a := m.Vertices()
	want := [8]v3.Vec{
		{X: 1, Y: 1, Z: 0}, {X: 2, Y: 1, Z: 0}, {X: 2, Y: 2, Z: 0}, {X: 1, Y: 2, Z: 0},
		{X: 1, Y: 1, Z: 0.4}, {X: 2, Y: 1, Z: 0.4}, {X: 2, Y: 2, Z: 0.4}, {X: 1, Y: 2, Z: 0.4},
	}
	for i, id := range b.Vertices {
		if got := a.Pos(id); got != want[i] {
			t.Errorf("slot %d at %v, want %v", i, got, want[i])
		}
	}
	if b.Label() != "x-1_y-1_z-0" {
		t.Errorf("Label() = %q", b.Label())
	}
}

func TestExclude(t *testing.T) {
	cfg := scenarioA()
	cfg.Splits[AxisZ] = []float64{0.2}
	cfg.Exclude = []int{5}
	m := mustNew(t, cfg)

	if len(m.Blocks()) != 8 {
		t.Fatalf("len(Blocks()) = %d, want 8", len(m.Blocks()))
	}
	for _, b := range m.Blocks() {
		if want := b.ID != 5; b.Active != want {
			t.Errorf("block %d Active = %v, want %v", b.ID, b.Active, want)
		}
	}
	if n := len(m.ActiveBlocks()); n != 7 {
		t.Errorf("len(ActiveBlocks()) = %d, want 7", n)
	}
}

// ---------------------------------------------------------------------------
// Addressing
// ---------------------------------------------------------------------------

func TestMultiIndexBijection(t *testing.T) {
	cfg := scenarioA()
	cfg.Splits = [3][]float64{{0.5, 1}, {1}, {0.1, 0.2, 0.3}}
	m := mustNew(t, cfg)

	seen := make(map[MultiIndex]int)
	for _, b := range m.Blocks() {
		if prev, ok := seen[b.Index]; ok {
			t.Fatalf("blocks %d and %d share index %s", prev, b.ID, b.Index)
		}
		seen[b.Index] = b.ID

		got, err := m.BlockAt(b.Index.X, b.Index.Y, b.Index.Z)
		if err != nil {
			t.Fatalf("BlockAt(%s): %v", b.Index, err)
		}
		if got != b {
			t.Errorf("BlockAt(%s) = block %d, want %d", b.Index, got.ID, b.ID)
		}
	}
}

func TestBlockAtOutOfRange(t *testing.T) {
	m := mustNew(t, scenarioA())
	for _, idx := range []MultiIndex{{-1, 0, 0}, {2, 0, 0}, {0, 2, 0}, {0, 0, 1}} {
		if _, err := m.BlockAt(idx.X, idx.Y, idx.Z); !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("BlockAt(%s) error = %v, want ErrInvalidSelection", idx, err)
		}
	}
	if _, err := m.Block(4); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("Block(4) error = %v, want ErrInvalidSelection", err)
	}
}

func TestFindEdgeOrderInsensitive(t *testing.T) {
	m := mustNew(t, scenarioA())
	b := m.Blocks()[0]

	e1, err := b.FindEdge(Back, Bottom)
	if err != nil {
		t.Fatal(err)
	}
	e2, err := b.FindEdge(Bottom, Back)
	if err != nil {
		t.Fatal(err)
	}
	if e1 != e2 {
		t.Error("FindEdge(back, bottom) and FindEdge(bottom, back) differ")
	}
	if _, err := b.FindEdge(Top, Bottom); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("FindEdge(top, bottom) error = %v, want ErrInvalidSelection", err)
	}
}

// ---------------------------------------------------------------------------
// Shared identity
// ---------------------------------------------------------------------------

func TestVertexSharing(t *testing.T) {
	m := mustNew(t, scenarioA())
	a, b := m.Blocks()[0], m.Blocks()[1]

	// Block 0's right face and block 1's back-left edge share vertex
	// (1, 0, 0).
	face := a.Face(Right)
	edge, err := b.FindEdge(Back, Left)
	if err != nil {
		t.Fatal(err)
	}
	shared := edge.Start
	found := false
	for _, id := range face.Vertices {
		if id == shared {
			found = true
		}
	}
	if !found {
		t.Fatalf("face %v does not contain vertex %d", face.Vertices, shared)
	}

	if err := m.Vertices().Move(shared, By(v3.Vec{X: 0.25})); err != nil {
		t.Fatal(err)
	}
	want := v3.Vec{X: 1.25, Y: 0, Z: 0}
	if got := m.Vertices().Pos(edge.Start); got != want {
		t.Errorf("edge start at %v, want %v", got, want)
	}
	for _, id := range face.Vertices {
		if id == shared && m.Vertices().Pos(id) != want {
			t.Errorf("face vertex at %v, want %v", m.Vertices().Pos(id), want)
		}
	}
}

func TestEdgeDerivationDeterministic(t *testing.T) {
	m := mustNew(t, scenarioA())
	for _, b := range m.Blocks() {
		first, second := b.DeriveEdges(), b.DeriveEdges()
		for i := range first {
			if !first[i].Equal(second[i]) || !first[i].Equal(b.Edges[i]) {
				t.Errorf("block %d edge %d differs between derivations", b.ID, i)
			}
		}
	}
}

func TestSharedEdgesAreEqual(t *testing.T) {
	m := mustNew(t, scenarioA())
	a, b := m.Blocks()[0], m.Blocks()[1]

	right, _ := a.FindEdge(Right, Bottom)
	left, _ := b.FindEdge(Left, Bottom)
	if right == left {
		t.Fatal("blocks share an Edge record")
	}
	if !right.Equal(left) {
		t.Errorf("edge %v != %v", right, left)
	}
	if !b.HasEdge(right) {
		t.Error("HasEdge returned false for a shared edge")
	}
}

func TestUniqueEdges(t *testing.T) {
	m := mustNew(t, scenarioA())
	// 3x3x2 lattice: x edges 2*3*2, y edges 3*2*2, z edges 3*3*1.
	if n := len(m.UniqueEdges()); n != 12+12+9 {
		t.Errorf("len(UniqueEdges()) = %d, want 33", n)
	}
}

// ---------------------------------------------------------------------------
// Spacing and slices
// ---------------------------------------------------------------------------

func TestSpacing(t *testing.T) {
	cfg := scenarioA()
	cfg.Spacing = v3.Vec{X: 0.3, Y: 5, Z: 0.1}
	m := mustNew(t, cfg)

	got := m.Spacing(m.Blocks()[0])
	want := [3]int{3, 1, 4}
	if got != want {
		t.Errorf("Spacing() = %v, want %v", got, want)
	}
}

func TestSpacingFloorAfterCollapse(t *testing.T) {
	m := mustNew(t, scenarioA())
	b := m.Blocks()[0]
	a := m.Vertices()

	// Flatten the block onto its left face.
	for _, slot := range []int{backBottomRight, backTopRight, frontBottomRight, frontTopRight} {
		id := b.Vertices[slot]
		p := a.Pos(id)
		if err := a.Move(id, To(v3.Vec{X: 0, Y: p.Y, Z: p.Z})); err != nil {
			t.Fatal(err)
		}
	}
	for axis, n := range m.Spacing(b) {
		if n < 1 {
			t.Errorf("Spacing()[%d] = %d, want >= 1", axis, n)
		}
	}
}

func TestSlices(t *testing.T) {
	cfg := scenarioA()
	cfg.Splits = [3][]float64{{0.5, 1}, {1}, {0.2}}
	m := mustNew(t, cfg)
	c := m.Counts() // 3 x 2 x 2

	tests := []struct {
		plane  Plane
		layers int
		first  []int
	}{
		{PlaneXY, c.Z, []int{0, 1, 2, 3, 4, 5}},
		{PlaneYZ, c.X, []int{0, 3, 6, 9}},
		{PlaneZX, c.Y, []int{0, 6, 1, 7, 2, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.plane.String(), func(t *testing.T) {
			slices := m.Slices(tt.plane)
			if len(slices) != tt.layers {
				t.Fatalf("len(Slices) = %d, want %d", len(slices), tt.layers)
			}
			for i, s := range slices {
				if s.Index != i || s.Plane != tt.plane {
					t.Errorf("slice %d has index %d plane %s", i, s.Index, s.Plane)
				}
				if len(s.Blocks) != c.PlaneBlockCount(tt.plane) {
					t.Errorf("slice %d has %d blocks, want %d", i, len(s.Blocks), c.PlaneBlockCount(tt.plane))
				}
			}
			got := slices[0].Blocks
			for i := range tt.first {
				if got[i] != tt.first[i] {
					t.Fatalf("slice 0 = %v, want %v", got, tt.first)
				}
			}
		})
	}
}
