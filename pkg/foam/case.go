package foam

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chazu/multiblock/pkg/mesh"
	"github.com/sirupsen/logrus"
)

// CaseDirName is the case directory created inside the export directory.
const CaseDirName = "case"

//go:embed templates/*
var templates embed.FS

// systemFiles are the system dictionaries copied into every case.
var systemFiles = []string{"controlDict", "fvSchemes", "fvSolution"}

// Setup prepares an empty case directory: it clears caseDir, creates
// constant/ and system/, touches case.foam for ParaView and writes the
// system dictionaries blockMesh needs.
func Setup(caseDir string, o Options) error {
	log := o.log().WithField("path", caseDir)

	if err := clearDir(caseDir); err != nil {
		return fmt.Errorf("foam: setup: %w", err)
	}
	for _, sub := range []string{"constant", "system"} {
		if err := os.MkdirAll(filepath.Join(caseDir, sub), 0o755); err != nil {
			return fmt.Errorf("foam: setup: %w", err)
		}
	}
	if err := os.WriteFile(filepath.Join(caseDir, "case.foam"), nil, 0o644); err != nil {
		return fmt.Errorf("foam: setup: %w", err)
	}

	for _, name := range systemFiles {
		body, err := templates.ReadFile("templates/" + name)
		if err != nil {
			return fmt.Errorf("foam: setup: template %s: %w", name, err)
		}
		err = writeFile(filepath.Join(caseDir, "system", name), o, func(w io.Writer) error {
			if err := writeHeader(w, name, "system", o); err != nil {
				return err
			}
			if _, err := w.Write(body); err != nil {
				return err
			}
			_, err := io.WriteString(w, footer)
			return err
		})
		if err != nil {
			return fmt.Errorf("foam: setup: %w", err)
		}
	}
	log.Debug("case directory ready")
	return nil
}

// clearDir removes everything inside dir, leaving dir itself. A missing
// dir is not an error.
func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// writeFile creates path and hands it to fn.
func writeFile(path string, o Options, fn func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	o.log().WithField("path", path).Debug("wrote file")
	return nil
}

// WriteCase writes a complete case under exportDir: the case directory
// with its blockMeshDict, and the four reports beside it.
func WriteCase(exportDir string, m *mesh.MultiBlock, patches []mesh.Patch, o Options) error {
	caseDir := filepath.Join(exportDir, CaseDirName)
	if err := Setup(caseDir, o); err != nil {
		return err
	}

	dict := filepath.Join(caseDir, "system", "blockMeshDict")
	err := writeFile(dict, o, func(w io.Writer) error {
		return WriteBlockMeshDict(w, m, patches, o)
	})
	if err != nil {
		return err
	}

	reports := []struct {
		name  string
		write func(io.Writer, *mesh.MultiBlock) error
	}{
		{LocationsFile, WriteLocations},
		{FaceInfoFile, WriteFaceInfo},
		{SliceInfoFile, WriteSliceInfo},
		{EdgeInfoFile, WriteEdgeInfo},
	}
	for _, r := range reports {
		err := writeFile(filepath.Join(exportDir, r.name), o, func(w io.Writer) error {
			return r.write(w, m)
		})
		if err != nil {
			return fmt.Errorf("foam: report: %w", err)
		}
	}

	o.log().WithFields(logrus.Fields{
		"path":   exportDir,
		"blocks": len(m.ActiveBlocks()),
	}).Info("case written")
	return nil
}
