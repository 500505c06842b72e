package mesh

import (
	"errors"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func vecNear(a, b v3.Vec) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Z, b.Z, tol)
}

func newArena(pts ...v3.Vec) *Arena {
	a := &Arena{}
	for _, p := range pts {
		a.Add(p)
	}
	return a
}

func TestArenaIDs(t *testing.T) {
	a := newArena(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	for i, v := range a.All() {
		if v.ID != i {
			t.Errorf("vertex %d has id %d", i, v.ID)
		}
	}
	if _, err := a.Vertex(3); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("Vertex(3) error = %v, want ErrInvalidSelection", err)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name string
		move Move
		want v3.Vec
	}{
		{"location", To(v3.Vec{X: 5, Y: 5, Z: 5}), v3.Vec{X: 5, Y: 5, Z: 5}},
		{"delta", By(v3.Vec{X: 0.5, Z: -1}), v3.Vec{X: 1.5, Y: 1, Z: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena(v3.Vec{X: 1, Y: 1, Z: 1})
			if err := a.Move(0, tt.move); err != nil {
				t.Fatal(err)
			}
			if got := a.Pos(0); got != tt.want {
				t.Errorf("Pos(0) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoveAmbiguous(t *testing.T) {
	start := v3.Vec{X: 1, Y: 1, Z: 1}
	loc, delta := v3.Vec{X: 5}, v3.Vec{X: 1}

	tests := []struct {
		name string
		move Move
	}{
		{"both", Move{Location: &loc, Delta: &delta}},
		{"neither", Move{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena(start)
			if err := a.Move(0, tt.move); !errors.Is(err, ErrAmbiguousMove) {
				t.Fatalf("Move error = %v, want ErrAmbiguousMove", err)
			}
			if got := a.Pos(0); got != start {
				t.Errorf("vertex moved to %v", got)
			}
			if err := a.MoveCollapse(0, 0, tt.move); !errors.Is(err, ErrAmbiguousMove) {
				t.Errorf("MoveCollapse error = %v, want ErrAmbiguousMove", err)
			}
		})
	}
}

func TestMoveUnknownVertex(t *testing.T) {
	a := newArena(v3.Vec{})
	if err := a.Move(1, By(v3.Vec{X: 1})); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("Move error = %v, want ErrInvalidSelection", err)
	}
}

func TestCollapseKeepsIdentity(t *testing.T) {
	a := newArena(v3.Vec{}, v3.Vec{X: 2, Y: 3, Z: 4})
	if err := a.Collapse(0, 1); err != nil {
		t.Fatal(err)
	}
	if a.Pos(0) != a.Pos(1) {
		t.Errorf("Pos(0) = %v, want %v", a.Pos(0), a.Pos(1))
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d after collapse, want 2", a.Len())
	}

	// Moving one afterwards leaves the other in place.
	if err := a.Move(0, By(v3.Vec{X: 1})); err != nil {
		t.Fatal(err)
	}
	if a.Pos(1) != (v3.Vec{X: 2, Y: 3, Z: 4}) {
		t.Errorf("collapse target moved to %v", a.Pos(1))
	}
}

func TestMoveCollapseOrder(t *testing.T) {
	a := newArena(v3.Vec{}, v3.Vec{X: 1, Y: 1, Z: 1})
	if err := a.MoveCollapse(0, 1, By(v3.Vec{X: 1})); err != nil {
		t.Fatal(err)
	}
	want := v3.Vec{X: 2, Y: 1, Z: 1}
	if a.Pos(1) != want || a.Pos(0) != want {
		t.Errorf("positions %v, %v; want both %v", a.Pos(0), a.Pos(1), want)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		ref   v3.Vec
		want  v3.Vec
	}{
		{"double about origin", 2, v3.Vec{}, v3.Vec{X: 2, Y: 4, Z: 6}},
		{"half about self", 0.5, v3.Vec{X: 1, Y: 2, Z: 3}, v3.Vec{X: 1, Y: 2, Z: 3}},
		{"zero collapses to ref", 0, v3.Vec{X: 9}, v3.Vec{X: 9}},
		{"mirror", -1, v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{X: 1, Y: 0, Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena(v3.Vec{X: 1, Y: 2, Z: 3})
			if err := a.Scale(0, tt.ratio, tt.ref); err != nil {
				t.Fatal(err)
			}
			if got := a.Pos(0); !vecNear(got, tt.want) {
				t.Errorf("Pos(0) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPoint(t *testing.T) {
	if p, err := Point(1, 2, 3); err != nil || p != (v3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Point(1, 2, 3) = %v, %v", p, err)
	}
	for _, vals := range [][]float64{{1, 2}, {1, 2, 3, 4}, nil} {
		if _, err := Point(vals...); !errors.Is(err, ErrMalformedCoordinate) {
			t.Errorf("Point(%v) error = %v, want ErrMalformedCoordinate", vals, err)
		}
	}
}
