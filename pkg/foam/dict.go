// Package foam writes a multi-block grid as an OpenFOAM case: the
// blockMeshDict, the system dictionaries blockMesh needs, and plain-text
// reports describing faces, slices, edges and lattice locations.
package foam

import (
	"fmt"
	"io"
	"strings"

	"github.com/chazu/multiblock/pkg/mesh"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasttemplate"
)

// DefaultVersion is the OpenFOAM version named in file banners.
const DefaultVersion = "v2412"

const indent = "    "

// header is the banner and FoamFile block opening every dictionary.
const header = `/*--------------------------------*- C++ -*----------------------------------*\
| =========                 |                                                 |
| \\      /  F ield         | OpenFOAM: The Open Source CFD Toolbox           |
|  \\    /   O peration     | Version:  {{version}}|
|   \\  /    A nd           | Website:  www.openfoam.com                      |
|    \\/     M anipulation  |                                                 |
\*---------------------------------------------------------------------------*/

FoamFile
{
    version     2.0;
    format      ascii;
    class       dictionary;
    location    "{{location}}";
    object      {{object}};
}

// * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * //

`

const footer = `
// ************************************************************************* //
`

var headerTemplate = fasttemplate.New(header, "{{", "}}")

// Options controls dictionary output.
type Options struct {
	// ConvertToMeters scales every coordinate when blockMesh runs.
	ConvertToMeters float64
	// Version is printed in the banner; DefaultVersion when empty.
	Version string
	// Log receives one debug entry per written file. Nil discards.
	Log logrus.FieldLogger
}

func (o Options) version() string {
	if o.Version == "" {
		return DefaultVersion
	}
	return o.Version
}

func (o Options) log() logrus.FieldLogger {
	if o.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return o.Log
}

// writeHeader renders the banner for object in location. The version
// column is padded so the banner's right edge lines up.
func writeHeader(w io.Writer, object, location string, o Options) error {
	_, err := headerTemplate.Execute(w, map[string]interface{}{
		"version":  fmt.Sprintf("%-38s", o.version()),
		"location": location,
		"object":   object,
	})
	return err
}

// WriteBlockMeshDict writes the blockMeshDict for m. Only active blocks
// get a hex entry, and only curved edges that an active block still uses
// get an edges entry. patches come from the boundary declarations.
func WriteBlockMeshDict(w io.Writer, m *mesh.MultiBlock, patches []mesh.Patch, o Options) error {
	if o.ConvertToMeters <= 0 {
		return fmt.Errorf("foam: %w: convertToMeters must be positive, got %v", mesh.ErrInvalidInput, o.ConvertToMeters)
	}
	if err := writeHeader(w, "blockMeshDict", "system", o); err != nil {
		return fmt.Errorf("foam: header: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "convertToMeters=%s;\n\n", mesh.FormatFloat(o.ConvertToMeters))

	writeVertices(&b, m)
	writeBlocks(&b, m)

	b.WriteString("edges\n(\n")
	for _, e := range m.CurvedEdges() {
		b.WriteString(indent + e.Definition() + "\n\n")
	}
	b.WriteString(");\n\n")

	b.WriteString("boundary\n(\n")
	for _, p := range patches {
		writePatch(&b, p)
	}
	b.WriteString(");\n\n")

	b.WriteString("mergePatchPairs\n(\n);\n")
	b.WriteString(footer)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("foam: blockMeshDict: %w", err)
	}
	return nil
}

// writeVertices lists vertices in id order, one commented group per
// (y, z) row of the lattice.
func writeVertices(b *strings.Builder, m *mesh.MultiBlock) {
	c := m.Counts()
	row := c.X + 1
	layer := row * (c.Y + 1)

	b.WriteString("vertices\n(\n")
	for _, v := range m.Vertices().All() {
		if v.ID%row == 0 {
			if v.ID > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(b, "%s// ==== y-%d, z-%d ==== //\n\n", indent, (v.ID%layer)/row, v.ID/layer)
		}
		fmt.Fprintf(b, "%s%s    // vertex-%d\n", indent, mesh.FormatPoint(v.Pos), v.ID)
	}
	b.WriteString(");\n\n")
}

func writeBlocks(b *strings.Builder, m *mesh.MultiBlock) {
	b.WriteString("blocks\n(\n")
	for _, blk := range m.ActiveBlocks() {
		n := m.Spacing(blk)
		ids := make([]string, len(blk.Vertices))
		for i, id := range blk.Vertices {
			ids[i] = fmt.Sprintf("%3d", id)
		}
		fmt.Fprintf(b, "%s// ==== Block-%d, Index : %s ==== //\n", indent, blk.ID, blk.Label())
		fmt.Fprintf(b, "%shex (%s) (%d %d %d) simpleGrading %s\n\n",
			indent, strings.Join(ids, " "), n[0], n[1], n[2], grading(blk))
	}
	b.WriteString(");\n\n")
}

func grading(blk *mesh.Block) string {
	g := blk.Grading
	return fmt.Sprintf("(%s %s %s)", mesh.FormatFloat(g.X), mesh.FormatFloat(g.Y), mesh.FormatFloat(g.Z))
}

func writePatch(b *strings.Builder, p mesh.Patch) {
	fmt.Fprintf(b, "%s%s\n%s{\n", indent, p.Name, indent)
	fmt.Fprintf(b, "%stype %s;\n", indent+indent, p.Type)
	fmt.Fprintf(b, "%sfaces\n%s(\n", indent+indent, indent+indent)
	for _, f := range p.Faces {
		v := f.Vertices
		fmt.Fprintf(b, "%s(%d %d %d %d)\n", indent+indent+indent, v[0], v[1], v[2], v[3])
	}
	fmt.Fprintf(b, "%s);\n%s}\n\n", indent+indent, indent)
}
