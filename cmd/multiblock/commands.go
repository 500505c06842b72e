package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/chazu/multiblock/pkg/foam"
	"github.com/chazu/multiblock/pkg/kernel/sdfx"
	"github.com/chazu/multiblock/pkg/mesh"
	"github.com/chazu/multiblock/pkg/tessellate"
	"github.com/kr/pretty"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newBuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Apply the edit script and write the case directory and reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.apply()
			if err != nil {
				return err
			}
			return foam.WriteCase(s.cfg.ExportDir, s.mesh, s.result.Patches, foam.Options{
				ConvertToMeters: s.cfg.ConvertToMeters,
				Log:             a.log,
			})
		},
	}
}

func newSlicesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slices",
		Short: "Print the blocks of every slice of the unedited grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, m, err := a.loadGrid()
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), foam.SliceInfo(m))
			return err
		},
	}
}

func newPreviewCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Apply the edit script and write the active blocks as an STL file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.apply()
			if err != nil {
				return err
			}
			if err := tessellate.SaveSTL(out, s.mesh, sdfx.New()); err != nil {
				return err
			}
			a.log.WithField("path", out).Info("preview written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "preview.stl", "STL output path")
	return cmd
}

// summary is what check prints.
type summary struct {
	Counts      mesh.Counts
	Active      int
	CurvedEdges int
	Tasks       map[string]int
	Patches     []string
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Apply the edit script and print a summary without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.apply()
			if err != nil {
				return err
			}
			patches := lo.Map(s.result.Patches, func(p mesh.Patch, _ int) string {
				return fmt.Sprintf("%s (%s, %d faces)", p.Name, p.Type, len(p.Faces))
			})
			sort.Strings(patches)
			sum := summary{
				Counts:      s.mesh.Counts(),
				Active:      len(s.mesh.ActiveBlocks()),
				CurvedEdges: len(s.mesh.CurvedEdges()),
				Tasks:       s.list.Kinds(),
				Patches:     patches,
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%# v\n", pretty.Formatter(sum))
			return err
		},
	}
}
