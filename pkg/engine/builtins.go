package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/multiblock/pkg/edit"
	"github.com/chazu/multiblock/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites edit script source before zygomys sees it:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     Keywords then need no global registration and cannot clash with
//     user variables.
//
//  2. Kebab-case to underscore: vertex-move -> vertex_move,
//     block-scale-2d -> block_scale_2d. zygomys reads a bare hyphen as
//     subtraction, so a hyphen between a letter and an identifier
//     character is rewritten outside strings and comments.
//
//  3. ; line comments become // comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Double-quoted strings pass through untouched.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// So do backtick strings.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) {
			// := stays an assignment.
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, kwPrefix...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		if b[i] == '-' && i > 0 && i+1 < len(b) && kebab(b[i-1], b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

// kebab reports whether a hyphen between prev and next joins an identifier
// rather than subtracting.
func kebab(prev, next byte) bool {
	return (isIdentChar(prev) && isLetter(next)) || (isLetter(prev) && isDigit(next))
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a coordinate built by `vec3`.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %s %s %s)", mesh.FormatFloat(v.vec.X), mesh.FormatFloat(v.vec.Y), mesh.FormatFloat(v.vec.Z))
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpEdge wraps an edge reference built by `edge`.
type sexpEdge struct {
	ref mesh.EdgeRef
}

func (e *sexpEdge) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(edge %d :%s :%s)", e.ref.Block, e.ref.Sides[0], e.ref.Sides[1])
}
func (e *sexpEdge) Type() *zygo.RegisteredType { return nil }

// sexpFace wraps a face reference built by `face`.
type sexpFace struct {
	ref mesh.FaceRef
}

func (f *sexpFace) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(face %d :%s)", f.ref.Block, f.ref.Side)
}
func (f *sexpFace) Type() *zygo.RegisteredType { return nil }

// sexpTask is the value every task builtin returns.
type sexpTask struct {
	task edit.Task
}

func (t *sexpTask) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q)", t.task.Kind(), t.task.TaskName())
}
func (t *sexpTask) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Trailing keyword: a flag with no value.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

func (pa kwArgs) need(key string) (zygo.Sexp, error) {
	v, ok := pa.kw[key]
	if !ok {
		return nil, fmt.Errorf("missing :%s", key)
	}
	return v, nil
}

func (pa kwArgs) number(key string) (float64, error) {
	v, err := pa.need(key)
	if err != nil {
		return 0, err
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func (pa kwArgs) id(key string) (int, error) {
	v, err := pa.need(key)
	if err != nil {
		return 0, err
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func (pa kwArgs) point(key string) (v3.Vec, error) {
	v, err := pa.need(key)
	if err != nil {
		return v3.Vec{}, err
	}
	p, err := toVec3(v)
	if err != nil {
		return v3.Vec{}, fmt.Errorf("%s: %w", key, err)
	}
	return p, nil
}

// optPoint returns nil when key is absent.
func (pa kwArgs) optPoint(key string) (*v3.Vec, error) {
	if _, ok := pa.kw[key]; !ok {
		return nil, nil
	}
	p, err := pa.point(key)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (pa kwArgs) edge(key string) (mesh.EdgeRef, error) {
	v, err := pa.need(key)
	if err != nil {
		return mesh.EdgeRef{}, err
	}
	e, ok := v.(*sexpEdge)
	if !ok {
		return mesh.EdgeRef{}, fmt.Errorf("%s: expected edge, got %T (%s)", key, v, v.SexpString(nil))
	}
	return e.ref, nil
}

func (pa kwArgs) face(key string) (mesh.FaceRef, error) {
	v, err := pa.need(key)
	if err != nil {
		return mesh.FaceRef{}, err
	}
	f, err := toFace(v)
	if err != nil {
		return mesh.FaceRef{}, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an id. Floats are accepted when integral.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == float64(int(v.Val)) {
			return int(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_left) and plain strings ("left").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

func toSide(s zygo.Sexp) (mesh.Side, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected face keyword: %w", err)
	}
	return mesh.ParseSide(name)
}

func toPlane(s zygo.Sexp) (mesh.Plane, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected plane keyword (:xy, :yz, :zx): %w", err)
	}
	return mesh.ParsePlane(name)
}

// toVec3 accepts a vec3 value or a list or array of three numbers.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return v3.Vec{}, fmt.Errorf("%w: expected vec3 or list of 3 numbers, got %T", mesh.ErrMalformedCoordinate, s)
	}
	vals := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat64(item)
		if err != nil {
			return v3.Vec{}, fmt.Errorf("%w: component %d: %v", mesh.ErrMalformedCoordinate, i, err)
		}
		vals[i] = f
	}
	return mesh.Point(vals...)
}

func toFace(s zygo.Sexp) (mesh.FaceRef, error) {
	if f, ok := s.(*sexpFace); ok {
		return f.ref, nil
	}
	return mesh.FaceRef{}, fmt.Errorf("expected face, got %T (%s)", s, s.SexpString(nil))
}

// toIDs accepts a single id or a list of ids.
func toIDs(s zygo.Sexp) ([]int, error) {
	switch s.(type) {
	case *zygo.SexpInt, *zygo.SexpFloat:
		n, err := toInt(s)
		if err != nil {
			return nil, err
		}
		return []int{n}, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, fmt.Errorf("expected block id or list of ids, got %T", s)
	}
	ids := make([]int, len(items))
	for i, item := range items {
		if ids[i], err = toInt(item); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return ids, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builder collects the tasks of one evaluation.
type builder struct {
	list  *edit.List
	count map[string]int
}

func newBuilder() *builder {
	return &builder{list: &edit.List{}, count: make(map[string]int)}
}

// taskName returns :name if given, else "<kind>-<n>" with n counting tasks
// of that kind.
func (b *builder) taskName(kind string, pa kwArgs) (string, error) {
	b.count[kind]++
	v, ok := pa.kw["name"]
	if !ok {
		return fmt.Sprintf("%s-%d", kind, b.count[kind]), nil
	}
	name, err := toString(v)
	if err != nil {
		return "", fmt.Errorf("name: %w", err)
	}
	return name, nil
}

// defTask registers the task builtin for kind. The builtin name is kind
// with hyphens replaced, matching what preprocessSource produces.
func (b *builder) defTask(env *zygo.Zlisp, kind string, build func(name string, pa kwArgs) (edit.Task, error)) {
	env.AddFunction(strings.ReplaceAll(kind, "-", "_"), func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		name, err := b.taskName(kind, pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
		}
		t, err := build(name, pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
		}
		if err := b.list.Add(t); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTask{task: t}, nil
	})
}

// registerBuiltins installs the edit DSL into a zygomys environment. Source
// must go through preprocessSource first so keywords are recognizable.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3: %w: want 3 arguments, got %d", mesh.ErrMalformedCoordinate, len(args))
		}
		vals := make([]float64, 3)
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", mesh.Axes[i], err)
			}
			vals[i] = f
		}
		p, err := mesh.Point(vals...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
		}
		return &sexpVec3{vec: p}, nil
	})

	// -----------------------------------------------------------------------
	// (edge 3 :bottom :back)
	// -----------------------------------------------------------------------
	env.AddFunction("edge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("edge requires a block id and two faces, got %d arguments", len(args))
		}
		blk, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: block: %w", err)
		}
		var sides [2]mesh.Side
		for i := range sides {
			if sides[i], err = toSide(args[i+1]); err != nil {
				return zygo.SexpNull, fmt.Errorf("edge: %w", err)
			}
		}
		if _, err := mesh.FindEdgePosition(sides[0], sides[1]); err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: %w", err)
		}
		return &sexpEdge{ref: mesh.EdgeRef{Block: blk, Sides: sides}}, nil
	})

	// -----------------------------------------------------------------------
	// (face 3 :left)
	// -----------------------------------------------------------------------
	env.AddFunction("face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("face requires a block id and a side, got %d arguments", len(args))
		}
		blk, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: block: %w", err)
		}
		side, err := toSide(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: %w", err)
		}
		return &sexpFace{ref: mesh.FaceRef{Block: blk, Side: side}}, nil
	})

	// ---- vertex tasks ----

	b.defTask(env, "vertex-move", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.VertexMove{Name: name}
		var err error
		if t.ID, err = pa.id("id"); err != nil {
			return nil, err
		}
		if t.Location, err = pa.optPoint("location"); err != nil {
			return nil, err
		}
		if t.Delta, err = pa.optPoint("delta"); err != nil {
			return nil, err
		}
		return t, nil
	})

	b.defTask(env, "vertex-collapse", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.VertexCollapse{Name: name}
		var err error
		if t.ID, err = pa.id("id"); err != nil {
			return nil, err
		}
		if t.Target, err = pa.id("target"); err != nil {
			return nil, err
		}
		return t, nil
	})

	b.defTask(env, "vertex-move-collapse", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.VertexMoveCollapse{Name: name}
		var err error
		if t.ID, err = pa.id("id"); err != nil {
			return nil, err
		}
		if t.Target, err = pa.id("target"); err != nil {
			return nil, err
		}
		if t.Location, err = pa.optPoint("location"); err != nil {
			return nil, err
		}
		if t.Delta, err = pa.optPoint("delta"); err != nil {
			return nil, err
		}
		return t, nil
	})

	b.defTask(env, "vertex-scale", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.VertexScale{Name: name}
		var err error
		if t.ID, err = pa.id("id"); err != nil {
			return nil, err
		}
		if t.Ratio, err = pa.number("ratio"); err != nil {
			return nil, err
		}
		if t.Reference, err = pa.point("reference"); err != nil {
			return nil, err
		}
		return t, nil
	})

	// ---- edge tasks ----

	b.defTask(env, "edge-move", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.EdgeMove{Name: name}
		var err error
		if t.Edge, err = pa.edge("edge"); err != nil {
			return nil, err
		}
		if t.Delta, err = pa.point("delta"); err != nil {
			return nil, err
		}
		return t, nil
	})

	b.defTask(env, "edge-collapse", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.EdgeCollapse{Name: name}
		var err error
		if t.Edge, err = pa.edge("edge"); err != nil {
			return nil, err
		}
		if t.Target, err = pa.edge("target"); err != nil {
			return nil, err
		}
		return t, nil
	})

	b.defTask(env, "edge-move-collapse", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.EdgeMoveCollapse{Name: name}
		var err error
		if t.Edge, err = pa.edge("edge"); err != nil {
			return nil, err
		}
		if t.Target, err = pa.edge("target"); err != nil {
			return nil, err
		}
		if t.Delta, err = pa.point("delta"); err != nil {
			return nil, err
		}
		return t, nil
	})

	b.defTask(env, "edge-scale", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.EdgeScale{Name: name}
		var err error
		if t.Edge, err = pa.edge("edge"); err != nil {
			return nil, err
		}
		if t.Ratio, err = pa.number("ratio"); err != nil {
			return nil, err
		}
		return t, nil
	})

	b.defTask(env, "edge-arc", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.EdgeArc{Name: name}
		var err error
		if t.Edge, err = pa.edge("edge"); err != nil {
			return nil, err
		}
		if t.Point, err = pa.optPoint("point"); err != nil {
			return nil, err
		}
		if t.Center, err = pa.optPoint("center"); err != nil {
			return nil, err
		}
		if t.Center != nil {
			if t.Angle, err = pa.number("angle"); err != nil {
				return nil, err
			}
		}
		return t, nil
	})

	b.defTask(env, "edge-spline", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.EdgeSpline{Name: name}
		var err error
		if t.Edge, err = pa.edge("edge"); err != nil {
			return nil, err
		}
		v, err := pa.need("points")
		if err != nil {
			return nil, err
		}
		items, err := sexpListToSlice(v)
		if err != nil {
			return nil, fmt.Errorf("points: %w", err)
		}
		for i, item := range items {
			p, err := toVec3(item)
			if err != nil {
				return nil, fmt.Errorf("points: entry %d: %w", i, err)
			}
			t.Points = append(t.Points, p)
		}
		return t, nil
	})

	// ---- face tasks ----

	b.defTask(env, "face-move", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.FaceMove{Name: name}
		var err error
		if t.Face, err = pa.face("face"); err != nil {
			return nil, err
		}
		if t.Delta, err = pa.point("delta"); err != nil {
			return nil, err
		}
		return t, nil
	})

	b.defTask(env, "face-scale", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.FaceScale{Name: name}
		var err error
		if t.Face, err = pa.face("face"); err != nil {
			return nil, err
		}
		if t.Ratio, err = pa.number("ratio"); err != nil {
			return nil, err
		}
		return t, nil
	})

	// ---- block tasks ----

	b.defTask(env, "block-move", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.BlockMove{Name: name}
		var err error
		if t.Block, err = pa.id("block"); err != nil {
			return nil, err
		}
		if t.Delta, err = pa.point("delta"); err != nil {
			return nil, err
		}
		return t, nil
	})

	b.defTask(env, "block-scale-2d", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.BlockScale2D{Name: name}
		v, err := pa.need("block")
		if err != nil {
			return nil, err
		}
		if t.Blocks, err = toIDs(v); err != nil {
			return nil, fmt.Errorf("block: %w", err)
		}
		if len(t.Blocks) == 0 {
			return nil, fmt.Errorf("block: empty block list")
		}
		if v, err = pa.need("plane"); err != nil {
			return nil, err
		}
		if t.Plane, err = toPlane(v); err != nil {
			return nil, fmt.Errorf("plane: %w", err)
		}
		if t.Ratio, err = pa.number("ratio"); err != nil {
			return nil, err
		}
		return t, nil
	})

	b.defTask(env, "block-scale-3d", func(name string, pa kwArgs) (edit.Task, error) {
		t := &edit.BlockScale3D{Name: name}
		v, err := pa.need("block")
		if err != nil {
			return nil, err
		}
		if t.Blocks, err = toIDs(v); err != nil {
			return nil, fmt.Errorf("block: %w", err)
		}
		if len(t.Blocks) == 0 {
			return nil, fmt.Errorf("block: empty block list")
		}
		if t.Ratio, err = pa.number("ratio"); err != nil {
			return nil, err
		}
		return t, nil
	})

	// (make-quadrant :start center :end corner :radius r), and the same
	// arguments for make-semicircle and make-circle.
	curve := func(pa kwArgs) (start, end int, radius float64, err error) {
		if start, err = pa.id("start"); err != nil {
			return
		}
		if end, err = pa.id("end"); err != nil {
			return
		}
		radius, err = pa.number("radius")
		return
	}
	b.defTask(env, "make-quadrant", func(name string, pa kwArgs) (edit.Task, error) {
		s, e, r, err := curve(pa)
		if err != nil {
			return nil, err
		}
		return &edit.Quadrant{Name: name, Start: s, End: e, Radius: r}, nil
	})
	b.defTask(env, "make-semicircle", func(name string, pa kwArgs) (edit.Task, error) {
		s, e, r, err := curve(pa)
		if err != nil {
			return nil, err
		}
		return &edit.Semicircle{Name: name, Start: s, End: e, Radius: r}, nil
	})
	b.defTask(env, "make-circle", func(name string, pa kwArgs) (edit.Task, error) {
		s, e, r, err := curve(pa)
		if err != nil {
			return nil, err
		}
		return &edit.Circle{Name: name, Start: s, End: e, Radius: r}, nil
	})

	// -----------------------------------------------------------------------
	// (boundary "inlet" :type "patch" :faces (list (face 0 :left) ...))
	// -----------------------------------------------------------------------
	env.AddFunction("boundary", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("boundary requires a name argument")
		}
		bName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("boundary: name: %w", err)
		}
		bd := &edit.Boundary{Name: bName}

		v, err := pa.need("type")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("boundary %q: %w", bName, err)
		}
		if bd.Type, err = toKeywordString(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("boundary %q: type: %w", bName, err)
		}

		if v, ok := pa.kw["faces"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("boundary %q: faces: %w", bName, err)
			}
			for i, item := range items {
				f, err := toFace(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("boundary %q: face entry %d: %w", bName, i, err)
				}
				bd.Faces = append(bd.Faces, f)
			}
		}

		if err := b.list.Add(bd); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTask{task: bd}, nil
	})
}
