package foam

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/multiblock/pkg/mesh"
	"github.com/samber/lo"
)

// Report file names, written next to the case directory.
const (
	FaceInfoFile  = "face_information.txt"
	SliceInfoFile = "slice_information.txt"
	EdgeInfoFile  = "edge_information.txt"
	LocationsFile = "xyz_locations.txt"
)

var rule = strings.Repeat("-", 40)

// WriteFaceInfo lists the vertex loop of every face of every block.
func WriteFaceInfo(w io.Writer, m *mesh.MultiBlock) error {
	var b strings.Builder
	b.WriteString("FACE INFO\n" + rule + "\n\n")
	for _, blk := range m.Blocks() {
		fmt.Fprintf(&b, "Block-%d : %s\n\n", blk.ID, blk.Label())
		for _, s := range mesh.Sides {
			v := blk.Face(s).Vertices
			fmt.Fprintf(&b, "%s%-6s : (%d %d %d %d)\n", indent, s, v[0], v[1], v[2], v[3])
		}
		b.WriteString("\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// SliceInfo renders the per-plane block counts and slice membership.
func SliceInfo(m *mesh.MultiBlock) string {
	c := m.Counts()
	var b strings.Builder
	for _, p := range mesh.Planes {
		fmt.Fprintf(&b, "Number of blocks in each %s plane : %d\n", strings.ToUpper(p.String()), c.PlaneBlockCount(p))
	}
	b.WriteString("\n" + rule + "\n")

	// Ids are padded to the width of the largest one.
	width := len(strconv.Itoa(c.Total() - 1))
	b.WriteString("### SLICE INFO ###\n" + rule + "\n")
	for i, p := range mesh.Planes {
		if i > 0 {
			b.WriteString(rule + "\n")
		}
		fmt.Fprintf(&b, "SLICE PLANE - %s\n%s\n", strings.ToUpper(p.String()), rule)
		for _, s := range m.Slices(p) {
			ids := lo.Map(s.Blocks, func(id int, _ int) string { return fmt.Sprintf("%*d", width, id) })
			fmt.Fprintf(&b, "Slice Index - %4d | Blocks : %s\n", s.Index, strings.Join(ids, ", "))
		}
	}
	return b.String()
}

// WriteSliceInfo writes SliceInfo to w.
func WriteSliceInfo(w io.Writer, m *mesh.MultiBlock) error {
	_, err := io.WriteString(w, SliceInfo(m))
	return err
}

// WriteEdgeInfo lists each block's twelve edges with their direction,
// position label and curve definition.
func WriteEdgeInfo(w io.Writer, m *mesh.MultiBlock) error {
	var b strings.Builder
	b.WriteString("### EDGE INFO ###\n" + rule + "\n")
	for _, blk := range m.Blocks() {
		fmt.Fprintf(&b, "\n\n%s\nBlock ID - %d\n%s\n", rule, blk.ID, rule)
		b.WriteString("Index | Axis | ->  - Position     - Definition\n" + rule + "\n")
		for _, e := range blk.Edges {
			fmt.Fprintf(&b, "%5d | %4s | %s\n", int(e.Position), e.Direction(), e)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteLocations writes the lattice coordinates along each axis followed
// by the block counts.
func WriteLocations(w io.Writer, m *mesh.MultiBlock) error {
	c := m.Counts()
	var b strings.Builder
	b.WriteString(rule + "\n")
	for _, a := range mesh.Axes {
		vals := lo.Map(m.Lattice(a), func(f float64, _ int) string { return mesh.FormatFloat(f) })
		fmt.Fprintf(&b, "[*] Split plane(s) along %s:%s%s\n", strings.ToUpper(a.String()), indent, strings.Join(vals, ", "))
	}
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Blocks along X : %d\n", c.X)
	fmt.Fprintf(&b, "Blocks along Y : %d\n", c.Y)
	fmt.Fprintf(&b, "Blocks along Z : %d\n\n", c.Z)
	fmt.Fprintf(&b, "Total blocks   : %d\n", c.Total())
	_, err := io.WriteString(w, b.String())
	return err
}
