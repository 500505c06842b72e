package tessellate_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/multiblock/pkg/kernel"
	"github.com/chazu/multiblock/pkg/kernel/sdfx"
	"github.com/chazu/multiblock/pkg/mesh"
	"github.com/chazu/multiblock/pkg/tessellate"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// newKernel returns a fresh sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return sdfx.New()
}

// makeGrid builds the 2 x 2 x 1 grid over [0,2] x [0,2] x [0,0.4].
func makeGrid(t *testing.T, exclude ...int) *mesh.MultiBlock {
	t.Helper()
	m, err := mesh.New(mesh.Config{
		Bounds:  mesh.Bounds{Max: v3.Vec{X: 2, Y: 2, Z: 0.4}},
		Splits:  [3][]float64{{1}, {1}, nil},
		Spacing: v3.Vec{X: 1, Y: 1, Z: 0.4},
		Exclude: exclude,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestNilMesh(t *testing.T) {
	meshes, err := tessellate.Tessellate(nil, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 0 {
		t.Errorf("expected no meshes, got %d", len(meshes))
	}
}

func TestOneMeshPerBlock(t *testing.T) {
	meshes, err := tessellate.Tessellate(makeGrid(t), newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 4 {
		t.Fatalf("expected 4 meshes, got %d", len(meshes))
	}

	names := map[string]bool{}
	for _, m := range meshes {
		if m.IsEmpty() {
			t.Error("mesh should not be empty")
		}
		if m.TriangleCount() != 12 {
			t.Errorf("mesh %s has %d triangles, want 12", m.Name, m.TriangleCount())
		}
		names[m.Name] = true
	}
	for _, want := range []string{"x-0_y-0_z-0", "x-1_y-0_z-0", "x-0_y-1_z-0", "x-1_y-1_z-0"} {
		if !names[want] {
			t.Errorf("missing mesh for block %s", want)
		}
	}
}

func TestExcludedBlocksSkipped(t *testing.T) {
	meshes, err := tessellate.Tessellate(makeGrid(t, 3), newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 3 {
		t.Fatalf("expected 3 meshes, got %d", len(meshes))
	}
	for _, m := range meshes {
		if m.Name == "x-1_y-1_z-0" {
			t.Error("excluded block was tessellated")
		}
	}
}

func TestMovedVertexFollows(t *testing.T) {
	g := makeGrid(t)
	b, err := g.Block(3)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.MoveBlock(b, v3.Vec{X: 10, Y: 10}); err != nil {
		t.Fatal(err)
	}

	meshes, err := tessellate.Tessellate(g, newKernel())
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, m := range meshes {
		if m.Name != "x-1_y-1_z-0" {
			continue
		}
		found = true
		_, max := m.Bounds()
		if abs(float64(max[0])-12) > 1e-6 || abs(float64(max[1])-12) > 1e-6 {
			t.Errorf("moved block max = %v, want (12 12 _)", max)
		}
	}
	if !found {
		t.Fatal("moved block missing")
	}
}

func TestSolidBounds(t *testing.T) {
	s, err := tessellate.Solid(makeGrid(t), newKernel())
	if err != nil {
		t.Fatal(err)
	}
	min, max := s.BoundingBox()
	if min != [3]float64{0, 0, 0} || max != [3]float64{2, 2, 0.4} {
		t.Errorf("bounds = %v %v", min, max)
	}
}

func TestSaveSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.stl")
	if err := tessellate.SaveSTL(path, makeGrid(t), newKernel()); err != nil {
		t.Fatalf("SaveSTL: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("STL not written: %v", err)
	}
}

func TestSaveSTLNoActiveBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.stl")
	err := tessellate.SaveSTL(path, makeGrid(t, 0, 1, 2, 3), newKernel())
	if !errors.Is(err, mesh.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
