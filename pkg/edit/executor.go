package edit

import (
	"fmt"
	"io"

	"github.com/chazu/multiblock/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/sirupsen/logrus"
)

// Result is what a successful run leaves besides the mutated grid.
type Result struct {
	Applied int
	Patches []mesh.Patch
}

// Executor applies a List to a MultiBlock.
type Executor struct {
	log logrus.FieldLogger
}

// NewExecutor returns an Executor logging to log. A nil log discards
// output.
func NewExecutor(log logrus.FieldLogger) *Executor {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Executor{log: log}
}

// Run executes vertex, edge, face and block tasks in that order, then
// resolves the boundary declarations. It stops at the first failing task;
// tasks already applied stay applied.
func (x *Executor) Run(m *mesh.MultiBlock, l *List) (*Result, error) {
	res := &Result{}
	step := func(t Task, fn func() error) error {
		x.log.WithFields(logrus.Fields{"task": t.TaskName(), "kind": t.Kind()}).Debug("applying edit task")
		if err := fn(); err != nil {
			return fmt.Errorf("edit: task %q (%s): %w", t.TaskName(), t.Kind(), err)
		}
		res.Applied++
		return nil
	}

	for _, t := range l.Vertex {
		if err := step(t, func() error { return vertex(m, t) }); err != nil {
			return nil, err
		}
	}
	for _, t := range l.Edge {
		if err := step(t, func() error { return edge(m, t) }); err != nil {
			return nil, err
		}
	}
	for _, t := range l.Face {
		if err := step(t, func() error { return face(m, t) }); err != nil {
			return nil, err
		}
	}
	for _, t := range l.Block {
		if err := step(t, func() error { return block(m, t) }); err != nil {
			return nil, err
		}
	}
	for _, b := range l.Boundaries {
		var p mesh.Patch
		err := step(b, func() error {
			var err error
			p, err = m.Patch(b.Name, b.Type, b.Faces)
			return err
		})
		if err != nil {
			return nil, err
		}
		res.Patches = append(res.Patches, p)
	}

	x.log.WithField("tasks", res.Applied).Debug("edit tasks applied")
	return res, nil
}

func move(loc, delta *v3.Vec) mesh.Move {
	return mesh.Move{Location: loc, Delta: delta}
}

func vertex(m *mesh.MultiBlock, t VertexTask) error {
	a := m.Vertices()
	switch t := t.(type) {
	case *VertexMove:
		return a.Move(t.ID, move(t.Location, t.Delta))
	case *VertexCollapse:
		return a.Collapse(t.ID, t.Target)
	case *VertexMoveCollapse:
		return a.MoveCollapse(t.ID, t.Target, move(t.Location, t.Delta))
	case *VertexScale:
		return a.Scale(t.ID, t.Ratio, t.Reference)
	}
	panic(fmt.Sprintf("edit: unhandled vertex task %T", t))
}

func edge(m *mesh.MultiBlock, t EdgeTask) error {
	switch t := t.(type) {
	case *EdgeMove:
		e, err := m.Edge(t.Edge)
		if err != nil {
			return err
		}
		return m.MoveEdge(e, t.Delta)
	case *EdgeCollapse:
		e, target, err := edgePair(m, t.Edge, t.Target)
		if err != nil {
			return err
		}
		return m.CollapseEdge(e, target)
	case *EdgeMoveCollapse:
		e, target, err := edgePair(m, t.Edge, t.Target)
		if err != nil {
			return err
		}
		return m.MoveCollapseEdge(e, target, t.Delta)
	case *EdgeScale:
		e, err := m.Edge(t.Edge)
		if err != nil {
			return err
		}
		return m.ScaleEdge(e, t.Ratio)
	case *EdgeArc:
		e, err := m.Edge(t.Edge)
		if err != nil {
			return err
		}
		return m.ArcEdge(e, mesh.Arc{Point: t.Point, Center: t.Center, Angle: t.Angle})
	case *EdgeSpline:
		e, err := m.Edge(t.Edge)
		if err != nil {
			return err
		}
		return m.SplineEdge(e, t.Points)
	}
	panic(fmt.Sprintf("edit: unhandled edge task %T", t))
}

func edgePair(m *mesh.MultiBlock, a, b mesh.EdgeRef) (*mesh.Edge, *mesh.Edge, error) {
	e, err := m.Edge(a)
	if err != nil {
		return nil, nil, err
	}
	target, err := m.Edge(b)
	if err != nil {
		return nil, nil, fmt.Errorf("target: %w", err)
	}
	return e, target, nil
}

func face(m *mesh.MultiBlock, t FaceTask) error {
	switch t := t.(type) {
	case *FaceMove:
		f, err := m.Face(t.Face)
		if err != nil {
			return err
		}
		return m.MoveFace(f, t.Delta)
	case *FaceScale:
		f, err := m.Face(t.Face)
		if err != nil {
			return err
		}
		return m.ScaleFace(f, t.Ratio)
	}
	panic(fmt.Sprintf("edit: unhandled face task %T", t))
}

func block(m *mesh.MultiBlock, t BlockTask) error {
	switch t := t.(type) {
	case *BlockMove:
		b, err := m.Block(t.Block)
		if err != nil {
			return err
		}
		return m.MoveBlock(b, t.Delta)
	case *BlockScale2D:
		if len(t.Blocks) == 1 {
			b, err := m.Block(t.Blocks[0])
			if err != nil {
				return err
			}
			return m.ScaleBlock2D(b, t.Plane, t.Ratio)
		}
		return m.ScaleBlocks2D(t.Blocks, t.Plane, t.Ratio)
	case *BlockScale3D:
		if len(t.Blocks) == 1 {
			b, err := m.Block(t.Blocks[0])
			if err != nil {
				return err
			}
			return m.ScaleBlock3D(b, t.Ratio)
		}
		return m.ScaleBlocks3D(t.Blocks, t.Ratio)
	case *Quadrant:
		return m.MakeQuadrant(t.Start, t.End, t.Radius)
	case *Semicircle:
		return m.MakeSemicircle(t.Start, t.End, t.Radius)
	case *Circle:
		return m.MakeCircle(t.Start, t.End, t.Radius)
	}
	panic(fmt.Sprintf("edit: unhandled block task %T", t))
}
