package engine

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chazu/multiblock/pkg/edit"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const moveScript = `(vertex-move :id 0 :delta (vec3 1 0 0))`

func taskNames(l *edit.List) string {
	var names []string
	for _, task := range l.All() {
		names = append(names, task.TaskName())
	}
	return strings.Join(names, ",")
}

// ---------------------------------------------------------------------------
// Evaluation
// ---------------------------------------------------------------------------

func TestEvaluateEmptyScript(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t  \n  "},
		{"bindings only", ";; radius for later\n(def r (* 0.5 3))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := evaluate(t, tt.source)
			if l == nil {
				t.Fatal("expected non-nil task list")
			}
			if l.Len() != 0 {
				t.Errorf("expected no tasks, got %d", l.Len())
			}
		})
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	eng := NewEngine()

	// Default names restart on every evaluation.
	for i := 0; i < 3; i++ {
		l, evalErrs, err := eng.Evaluate(moveScript)
		if err != nil {
			t.Fatalf("iteration %d: unexpected fatal error: %v", i, err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("iteration %d: unexpected eval errors: %v", i, evalErrs)
		}
		if l.Len() != 1 {
			t.Fatalf("iteration %d: expected 1 task, got %d", i, l.Len())
		}
		mv, ok := l.Vertex[0].(*edit.VertexMove)
		if !ok {
			t.Fatalf("iteration %d: expected VertexMove, got %T", i, l.Vertex[0])
		}
		if mv.Name != "vertex-move-1" {
			t.Errorf("iteration %d: name = %q, want vertex-move-1", i, mv.Name)
		}
		if mv.ID != 0 || mv.Delta == nil || *mv.Delta != (v3.Vec{X: 1}) || mv.Location != nil {
			t.Errorf("iteration %d: task = %+v", i, mv)
		}
	}
}

func TestEvaluateMultipleExpressions(t *testing.T) {
	source := `
(def r 1.1)
(block-move :name "b1" :block 0 :delta (vec3 0 1 0))
(vertex-move :name "v1" :id 0 :delta (vec3 1 0 0))
(face-scale :name "f1" :face (face 1 :top) :ratio 1.2)
(vertex-collapse :name "v2" :id 1 :target 4)
(block-scale-3d :name "b2" :block (list 0 1) :ratio r)
(edge-scale :name "e1" :edge (edge 0 :bottom :back) :ratio 0.5)
(vertex-scale :name "v3" :id 2 :ratio 2 :reference (vec3 0 0 0))
`
	l := evaluate(t, source)

	if got, want := taskNames(l), "v1,v2,v3,e1,f1,b1,b2"; got != want {
		t.Errorf("execution order = %s, want %s", got, want)
	}
	if len(l.Vertex) != 3 || len(l.Edge) != 1 || len(l.Face) != 1 || len(l.Block) != 2 {
		t.Fatalf("category sizes %d/%d/%d/%d", len(l.Vertex), len(l.Edge), len(l.Face), len(l.Block))
	}
	if _, ok := l.Vertex[1].(*edit.VertexCollapse); !ok {
		t.Errorf("vertex task 2 is %T, want VertexCollapse", l.Vertex[1])
	}
	if s, ok := l.Block[1].(*edit.BlockScale3D); !ok || s.Ratio != 1.1 {
		t.Errorf("block task 2 = %+v", l.Block[1])
	}
}

func TestEvaluateRejectsUnknownTask(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"misspelled builtin", `(vertex-mvoe :id 0)`},
		{"after a valid task", moveScript + "\n(edge-bend :edge (edge 0 :bottom :back))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := evalFails(t, tt.source)
			if errs[0].Message == "" {
				t.Error("eval error message should not be empty")
			}
		})
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	// The unclosed form is on line 2; the valid task before it is discarded.
	errs := evalFails(t, moveScript+"\n(vertex-move :id 1 :delta (vec3 1 0 0)")
	e := errs[0]
	if e.Message == "" {
		t.Error("eval error message should not be empty")
	}
	if e.Line > 0 {
		t.Logf("extracted line info: line=%d, message=%q", e.Line, e.Message)
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	e := EvalError{Line: 5, Col: 0, Message: "vertex_move: missing :id"}
	s := e.Error()
	if !strings.Contains(s, "line 5") {
		t.Errorf("Error() should contain line info, got: %s", s)
	}
	if !strings.Contains(s, "missing :id") {
		t.Errorf("Error() should contain message, got: %s", s)
	}

	e2 := EvalError{Message: "no location"}
	if s2 := e2.Error(); strings.Contains(s2, "line") {
		t.Errorf("Error() with no line should not contain 'line', got: %s", s2)
	}
}

// ---------------------------------------------------------------------------
// Timeout and generations
// ---------------------------------------------------------------------------

// scriptResult evaluates source directly, without the timeout wrapper.
func scriptResult(t *testing.T, source string) evalResult {
	t.Helper()
	l, evalErrs, err := (&Engine{}).evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("evaluate: %v %v", err, evalErrs)
	}
	return evalResult{list: l}
}

func TestEngineTimeoutDefault(t *testing.T) {
	if got := NewEngine().Timeout; got != EvalTimeout {
		t.Errorf("Timeout = %s, want %s", got, EvalTimeout)
	}
	// A zero Engine falls back to the default instead of timing out at once.
	l, evalErrs, err := (&Engine{}).Evaluate(moveScript)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", err, evalErrs)
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 task, got %d", l.Len())
	}
}

func TestWaitDeliversTasks(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(1)
	ch := make(chan evalResult, 1)
	ch <- scriptResult(t, moveScript)

	l, _, err := waitWithTimeout(ch, 1, time.Second, &mu, &gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := taskNames(l); got != "vertex-move-1" {
		t.Errorf("tasks = %q", got)
	}
}

func TestWaitTimesOut(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(1)
	ch := make(chan evalResult, 1)
	res := scriptResult(t, moveScript)

	// The tasks arrive well after the deadline.
	go func() {
		time.Sleep(200 * time.Millisecond)
		ch <- res
	}()

	l, _, err := waitWithTimeout(ch, 1, 20*time.Millisecond, &mu, &gen)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout error message, got: %v", err)
	}
	if l != nil {
		t.Errorf("late tasks were returned: %d", l.Len())
	}
}

func TestWaitDiscardsStaleGeneration(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(2) // a newer script was submitted

	ch := make(chan evalResult, 1)
	ch <- scriptResult(t, moveScript)

	l, _, err := waitWithTimeout(ch, 1, time.Second, &mu, &gen)
	if err == nil {
		t.Fatal("expected error for stale generation")
	}
	if !strings.Contains(err.Error(), "superseded") {
		t.Errorf("expected superseded error, got: %v", err)
	}
	if l != nil {
		t.Error("stale tasks were returned")
	}
}

// ---------------------------------------------------------------------------
// Error parsing
// ---------------------------------------------------------------------------

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "error on line format",
			msg:      "Error on line 5: vertex_move: missing :id\n",
			wantLine: 5,
			wantMsg:  "missing :id",
		},
		{
			name:     "no line info",
			msg:      "block_scale_2d: plane: invalid input",
			wantLine: 0,
			wantMsg:  "plane: invalid input",
		},
		{
			name:     "line format lowercase",
			msg:      "error on line 12: missing paren",
			wantLine: 12,
			wantMsg:  "missing paren",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) == 0 {
				t.Fatal("expected at least one error")
			}
			e := errs[0]
			if e.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", e.Line, tt.wantLine)
			}
			if !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", e.Message, tt.wantMsg)
			}
		})
	}
}

// errString is a simple error type for testing.
type errString string

func (e errString) Error() string { return string(e) }
