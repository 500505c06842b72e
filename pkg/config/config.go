// Package config loads a multiblock case: the bounding box, split planes,
// grid spacing and excluded blocks from a TOML file, with the scalar
// settings overridable from the environment and the command line.
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chazu/multiblock/pkg/edit"
	"github.com/chazu/multiblock/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Keys of the settings that viper may override.
const (
	KeyConvertToMeters = "convert-to-meters"
	KeyExportDir       = "export-dir"
	KeyEditScript      = "edit-script"
)

// EnvPrefix prefixes every environment override, e.g. MULTIBLOCK_EXPORT_DIR.
const EnvPrefix = "MULTIBLOCK"

// Box is the [bounding-box] table.
type Box struct {
	XMin float64 `toml:"x-min"`
	XMax float64 `toml:"x-max"`
	YMin float64 `toml:"y-min"`
	YMax float64 `toml:"y-max"`
	ZMin float64 `toml:"z-min"`
	ZMax float64 `toml:"z-max"`
}

// Splits is the [split-planes] table.
type Splits struct {
	X []float64 `toml:"x"`
	Y []float64 `toml:"y"`
	Z []float64 `toml:"z"`
}

// Spacing is the [grid-spacing] table.
type Spacing struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
	Z float64 `toml:"z"`
}

// Exclude is the [exclude] table.
type Exclude struct {
	Blocks []int `toml:"blocks"`
}

// Boundary is one [[boundary]] entry. Faces holds (block id, side name)
// pairs, e.g. [[0, "left"], [2, "left"]].
type Boundary struct {
	Name  string  `toml:"name"`
	Type  string  `toml:"type"`
	Faces [][]any `toml:"faces"`
}

// Case is a complete case configuration.
type Case struct {
	ConvertToMeters float64    `toml:"convert-to-meters"`
	ExportDir       string     `toml:"export-dir"`
	EditScript      string     `toml:"edit-script"`
	BoundingBox     Box        `toml:"bounding-box"`
	SplitPlanes     Splits     `toml:"split-planes"`
	GridSpacing     Spacing    `toml:"grid-spacing"`
	Exclude         Exclude    `toml:"exclude"`
	Boundaries      []Boundary `toml:"boundary"`
}

// Default returns the settings used for keys a case file leaves out.
func Default() Case {
	return Case{
		ConvertToMeters: 1,
		ExportDir:       ".",
	}
}

// NewViper returns a viper instance reading MULTIBLOCK_* environment
// variables. The variable names of the original tool are bound as aliases.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyConvertToMeters, EnvPrefix+"_CONVERT_TO_METERS", "convert_to_meters")
	_ = v.BindEnv(KeyExportDir, EnvPrefix+"_EXPORT_DIR", "export_directory")
	_ = v.BindEnv(KeyEditScript, EnvPrefix+"_EDIT_SCRIPT")
	return v
}

// Load reads the case file at path. Relative paths in the file are taken
// relative to the file's directory. Settings that v holds (environment or
// bound flags) replace the file's values; v may be nil.
func Load(path string, v *viper.Viper) (*Case, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("config: %s: %w: unknown keys %s", path, mesh.ErrInvalidInput, strings.Join(keys, ", "))
	}

	dir := filepath.Dir(path)
	c.ExportDir = resolve(dir, c.ExportDir)
	c.EditScript = resolve(dir, c.EditScript)

	if v != nil {
		if err := c.override(v); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	return &c, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func (c *Case) override(v *viper.Viper) error {
	if v.IsSet(KeyConvertToMeters) {
		f, err := cast.ToFloat64E(v.Get(KeyConvertToMeters))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", mesh.ErrInvalidInput, KeyConvertToMeters, err)
		}
		c.ConvertToMeters = f
	}
	if v.IsSet(KeyExportDir) {
		s, err := cast.ToStringE(v.Get(KeyExportDir))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", mesh.ErrInvalidInput, KeyExportDir, err)
		}
		c.ExportDir = s
	}
	if v.IsSet(KeyEditScript) {
		s, err := cast.ToStringE(v.Get(KeyEditScript))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", mesh.ErrInvalidInput, KeyEditScript, err)
		}
		c.EditScript = s
	}
	return nil
}

// Validate checks what the grid constructor does not: ordered bounds,
// positive spacing and a positive unit conversion. Split planes and
// excluded ids are checked by mesh.New.
func (c *Case) Validate() error {
	b := c.BoundingBox
	axes := []struct {
		name     string
		min, max float64
		spacing  float64
	}{
		{"x", b.XMin, b.XMax, c.GridSpacing.X},
		{"y", b.YMin, b.YMax, c.GridSpacing.Y},
		{"z", b.ZMin, b.ZMax, c.GridSpacing.Z},
	}
	for _, a := range axes {
		if a.min >= a.max {
			return fmt.Errorf("config: %w: bounding-box %s-min %v is not below %s-max %v", mesh.ErrInvalidInput, a.name, a.min, a.name, a.max)
		}
		if a.spacing <= 0 {
			return fmt.Errorf("config: %w: grid-spacing %s must be positive, got %v", mesh.ErrInvalidInput, a.name, a.spacing)
		}
	}
	if c.ConvertToMeters <= 0 {
		return fmt.Errorf("config: %w: %s must be positive, got %v", mesh.ErrInvalidInput, KeyConvertToMeters, c.ConvertToMeters)
	}
	if _, err := c.BoundaryTasks(); err != nil {
		return err
	}
	return nil
}

// MeshConfig returns the grid construction parameters.
func (c *Case) MeshConfig() mesh.Config {
	b := c.BoundingBox
	return mesh.Config{
		Bounds: mesh.Bounds{
			Min: v3.Vec{X: b.XMin, Y: b.YMin, Z: b.ZMin},
			Max: v3.Vec{X: b.XMax, Y: b.YMax, Z: b.ZMax},
		},
		Splits:  [3][]float64{c.SplitPlanes.X, c.SplitPlanes.Y, c.SplitPlanes.Z},
		Spacing: v3.Vec{X: c.GridSpacing.X, Y: c.GridSpacing.Y, Z: c.GridSpacing.Z},
		Exclude: c.Exclude.Blocks,
	}
}

// BoundaryTasks converts the [[boundary]] entries to boundary declarations.
func (c *Case) BoundaryTasks() ([]*edit.Boundary, error) {
	out := make([]*edit.Boundary, 0, len(c.Boundaries))
	for i, b := range c.Boundaries {
		if b.Name == "" {
			return nil, fmt.Errorf("config: boundary %d: %w: missing name", i, mesh.ErrInvalidInput)
		}
		bd := &edit.Boundary{Name: b.Name, Type: b.Type}
		for j, pair := range b.Faces {
			ref, err := faceRef(pair)
			if err != nil {
				return nil, fmt.Errorf("config: boundary %q: face %d: %w", b.Name, j, err)
			}
			bd.Faces = append(bd.Faces, ref)
		}
		out = append(out, bd)
	}
	return out, nil
}

func faceRef(pair []any) (mesh.FaceRef, error) {
	if len(pair) != 2 {
		return mesh.FaceRef{}, fmt.Errorf("%w: want [block, side], got %d values", mesh.ErrInvalidInput, len(pair))
	}
	id, err := cast.ToIntE(pair[0])
	if err != nil {
		return mesh.FaceRef{}, fmt.Errorf("%w: block id: %v", mesh.ErrInvalidInput, err)
	}
	name, err := cast.ToStringE(pair[1])
	if err != nil {
		return mesh.FaceRef{}, fmt.Errorf("%w: side: %v", mesh.ErrInvalidInput, err)
	}
	side, err := mesh.ParseSide(name)
	if err != nil {
		return mesh.FaceRef{}, err
	}
	return mesh.FaceRef{Block: id, Side: side}, nil
}
