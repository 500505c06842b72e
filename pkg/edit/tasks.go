// Package edit holds the typed edit tasks applied to a multi-block grid and
// the executor that runs them phase by phase.
//
// Tasks form one closed set per category. Each category interface carries
// an unexported marker, so the executor's switch over a category covers
// every variant that can exist.
package edit

import (
	"github.com/chazu/multiblock/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Task is the part every edit task shares.
type Task interface {
	// TaskName returns the script-assigned or generated task name.
	TaskName() string
	// Kind returns the task kind, which is also the script builtin name.
	Kind() string
}

// VertexTask is a vertex edit.
type VertexTask interface {
	Task
	vertexTask()
}

// EdgeTask is an edge edit.
type EdgeTask interface {
	Task
	edgeTask()
}

// FaceTask is a face edit.
type FaceTask interface {
	Task
	faceTask()
}

// BlockTask is a block edit.
type BlockTask interface {
	Task
	blockTask()
}

// ---------------------------------------------------------------------------
// Vertex tasks
// ---------------------------------------------------------------------------

// VertexMove moves a vertex. Exactly one of Location and Delta must be set.
type VertexMove struct {
	Name     string
	ID       int
	Location *v3.Vec
	Delta    *v3.Vec
}

// VertexCollapse puts vertex ID on Target's position.
type VertexCollapse struct {
	Name   string
	ID     int
	Target int
}

// VertexMoveCollapse moves Target, then collapses ID onto it.
type VertexMoveCollapse struct {
	Name     string
	ID       int
	Target   int
	Location *v3.Vec
	Delta    *v3.Vec
}

// VertexScale scales a vertex about Reference.
type VertexScale struct {
	Name      string
	ID        int
	Ratio     float64
	Reference v3.Vec
}

func (t *VertexMove) TaskName() string         { return t.Name }
func (t *VertexCollapse) TaskName() string     { return t.Name }
func (t *VertexMoveCollapse) TaskName() string { return t.Name }
func (t *VertexScale) TaskName() string        { return t.Name }

func (t *VertexMove) Kind() string         { return "vertex-move" }
func (t *VertexCollapse) Kind() string     { return "vertex-collapse" }
func (t *VertexMoveCollapse) Kind() string { return "vertex-move-collapse" }
func (t *VertexScale) Kind() string        { return "vertex-scale" }

func (*VertexMove) vertexTask()         {}
func (*VertexCollapse) vertexTask()     {}
func (*VertexMoveCollapse) vertexTask() {}
func (*VertexScale) vertexTask()        {}

// ---------------------------------------------------------------------------
// Edge tasks
// ---------------------------------------------------------------------------

// EdgeMove moves both endpoints of an edge by Delta.
type EdgeMove struct {
	Name  string
	Edge  mesh.EdgeRef
	Delta v3.Vec
}

// EdgeCollapse collapses an edge onto Target, endpoint by endpoint.
type EdgeCollapse struct {
	Name   string
	Edge   mesh.EdgeRef
	Target mesh.EdgeRef
}

// EdgeMoveCollapse moves Target by Delta, then collapses the edge onto it.
type EdgeMoveCollapse struct {
	Name   string
	Edge   mesh.EdgeRef
	Target mesh.EdgeRef
	Delta  v3.Vec
}

// EdgeScale scales an edge about its midpoint.
type EdgeScale struct {
	Name  string
	Edge  mesh.EdgeRef
	Ratio float64
}

// EdgeArc bows an edge through Point, or through the edge start rotated
// about Center by Angle degrees. Exactly one of Point and Center is set.
type EdgeArc struct {
	Name   string
	Edge   mesh.EdgeRef
	Point  *v3.Vec
	Center *v3.Vec
	Angle  float64
}

// EdgeSpline curves an edge through Points.
type EdgeSpline struct {
	Name   string
	Edge   mesh.EdgeRef
	Points []v3.Vec
}

func (t *EdgeMove) TaskName() string         { return t.Name }
func (t *EdgeCollapse) TaskName() string     { return t.Name }
func (t *EdgeMoveCollapse) TaskName() string { return t.Name }
func (t *EdgeScale) TaskName() string        { return t.Name }
func (t *EdgeArc) TaskName() string          { return t.Name }
func (t *EdgeSpline) TaskName() string       { return t.Name }

func (t *EdgeMove) Kind() string         { return "edge-move" }
func (t *EdgeCollapse) Kind() string     { return "edge-collapse" }
func (t *EdgeMoveCollapse) Kind() string { return "edge-move-collapse" }
func (t *EdgeScale) Kind() string        { return "edge-scale" }
func (t *EdgeArc) Kind() string          { return "edge-arc" }
func (t *EdgeSpline) Kind() string       { return "edge-spline" }

func (*EdgeMove) edgeTask()         {}
func (*EdgeCollapse) edgeTask()     {}
func (*EdgeMoveCollapse) edgeTask() {}
func (*EdgeScale) edgeTask()        {}
func (*EdgeArc) edgeTask()          {}
func (*EdgeSpline) edgeTask()       {}

// ---------------------------------------------------------------------------
// Face tasks
// ---------------------------------------------------------------------------

// FaceMove moves the four vertices of a face by Delta.
type FaceMove struct {
	Name  string
	Face  mesh.FaceRef
	Delta v3.Vec
}

// FaceScale scales a face about its centroid.
type FaceScale struct {
	Name  string
	Face  mesh.FaceRef
	Ratio float64
}

func (t *FaceMove) TaskName() string  { return t.Name }
func (t *FaceScale) TaskName() string { return t.Name }

func (t *FaceMove) Kind() string  { return "face-move" }
func (t *FaceScale) Kind() string { return "face-scale" }

func (*FaceMove) faceTask()  {}
func (*FaceScale) faceTask() {}

// ---------------------------------------------------------------------------
// Block tasks
// ---------------------------------------------------------------------------

// BlockMove moves the eight vertices of a block by Delta.
type BlockMove struct {
	Name  string
	Block int
	Delta v3.Vec
}

// BlockScale2D scales one block, or a group of blocks together, on the two
// axes of Plane.
type BlockScale2D struct {
	Name   string
	Blocks []int
	Plane  mesh.Plane
	Ratio  float64
}

// BlockScale3D scales one block about its centroid, or a group of blocks
// together, on all three axes.
type BlockScale3D struct {
	Name   string
	Blocks []int
	Ratio  float64
}

// Quadrant replaces corner block End with a curved wedge around center
// block Start.
type Quadrant struct {
	Name   string
	Start  int
	End    int
	Radius float64
}

// Semicircle builds two quadrants from the diagonal block pair Start, End.
type Semicircle struct {
	Name   string
	Start  int
	End    int
	Radius float64
}

// Circle builds four quadrants from the diagonal block pair Start, End.
type Circle struct {
	Name   string
	Start  int
	End    int
	Radius float64
}

func (t *BlockMove) TaskName() string    { return t.Name }
func (t *BlockScale2D) TaskName() string { return t.Name }
func (t *BlockScale3D) TaskName() string { return t.Name }
func (t *Quadrant) TaskName() string     { return t.Name }
func (t *Semicircle) TaskName() string   { return t.Name }
func (t *Circle) TaskName() string       { return t.Name }

func (t *BlockMove) Kind() string    { return "block-move" }
func (t *BlockScale2D) Kind() string { return "block-scale-2d" }
func (t *BlockScale3D) Kind() string { return "block-scale-3d" }
func (t *Quadrant) Kind() string     { return "make-quadrant" }
func (t *Semicircle) Kind() string   { return "make-semicircle" }
func (t *Circle) Kind() string       { return "make-circle" }

func (*BlockMove) blockTask()    {}
func (*BlockScale2D) blockTask() {}
func (*BlockScale3D) blockTask() {}
func (*Quadrant) blockTask()     {}
func (*Semicircle) blockTask()   {}
func (*Circle) blockTask()       {}

// ---------------------------------------------------------------------------
// Boundaries
// ---------------------------------------------------------------------------

// Boundary declares a named patch made of block faces.
type Boundary struct {
	Name  string
	Type  string
	Faces []mesh.FaceRef
}

func (t *Boundary) TaskName() string { return t.Name }
func (t *Boundary) Kind() string     { return "boundary" }
