package edit

import (
	"fmt"

	"github.com/samber/lo"
)

// List is an edit script's tasks grouped by category. Each category keeps
// script order.
type List struct {
	Vertex     []VertexTask
	Edge       []EdgeTask
	Face       []FaceTask
	Block      []BlockTask
	Boundaries []*Boundary
}

// Add appends t to its category.
func (l *List) Add(t Task) error {
	switch t := t.(type) {
	case VertexTask:
		l.Vertex = append(l.Vertex, t)
	case EdgeTask:
		l.Edge = append(l.Edge, t)
	case FaceTask:
		l.Face = append(l.Face, t)
	case BlockTask:
		l.Block = append(l.Block, t)
	case *Boundary:
		l.Boundaries = append(l.Boundaries, t)
	default:
		return fmt.Errorf("edit: task %q: unsupported kind %q", t.TaskName(), t.Kind())
	}
	return nil
}

// All returns every task in execution order.
func (l *List) All() []Task {
	out := make([]Task, 0, l.Len())
	for _, t := range l.Vertex {
		out = append(out, t)
	}
	for _, t := range l.Edge {
		out = append(out, t)
	}
	for _, t := range l.Face {
		out = append(out, t)
	}
	for _, t := range l.Block {
		out = append(out, t)
	}
	for _, t := range l.Boundaries {
		out = append(out, t)
	}
	return out
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.Vertex) + len(l.Edge) + len(l.Face) + len(l.Block) + len(l.Boundaries)
}

// Kinds counts tasks per kind.
func (l *List) Kinds() map[string]int {
	return lo.CountValuesBy(l.All(), Task.Kind)
}
