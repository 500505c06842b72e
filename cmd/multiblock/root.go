package main

import (
	"fmt"
	"os"

	"github.com/chazu/multiblock/pkg/config"
	"github.com/chazu/multiblock/pkg/edit"
	"github.com/chazu/multiblock/pkg/engine"
	"github.com/chazu/multiblock/pkg/mesh"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds the state shared by every subcommand.
type app struct {
	v   *viper.Viper
	log *logrus.Logger

	configPath string
	logLevel   string
	logJSON    bool
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper(), log: logrus.New()}

	root := &cobra.Command{
		Use:           "multiblock",
		Short:         "Build blockMesh cases from a multi-block grid and an edit script",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogging(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.configPath, "config", "c", "case.toml", "case file")
	f.StringVar(&a.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	f.BoolVar(&a.logJSON, "log-json", false, "log as JSON")
	f.String(config.KeyEditScript, "", "edit script, replaces the case file's")
	f.String(config.KeyExportDir, "", "export directory, replaces the case file's")
	f.Float64(config.KeyConvertToMeters, 0, "unit conversion factor, replaces the case file's")
	for _, k := range []string{config.KeyEditScript, config.KeyExportDir, config.KeyConvertToMeters} {
		if err := a.v.BindPFlag(k, f.Lookup(k)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		newBuildCmd(a),
		newSlicesCmd(a),
		newPreviewCmd(a),
		newCheckCmd(a),
	)
	return root
}

func (a *app) setupLogging(cmd *cobra.Command) error {
	lvl, err := logrus.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	a.log.SetLevel(lvl)
	a.log.SetOutput(cmd.ErrOrStderr())
	if a.logJSON {
		a.log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// loadGrid reads and validates the case file and builds its grid.
func (a *app) loadGrid() (*config.Case, *mesh.MultiBlock, error) {
	c, err := config.Load(a.configPath, a.v)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	m, err := mesh.New(c.MeshConfig())
	if err != nil {
		return nil, nil, err
	}
	a.log.WithFields(logrus.Fields{
		"config": a.configPath,
		"blocks": m.Counts().Total(),
	}).Debug("grid built")
	return c, m, nil
}

// tasks evaluates the case's edit script, if any, and appends the boundary
// declarations of the case file.
func (a *app) tasks(c *config.Case) (*edit.List, error) {
	l := &edit.List{}
	if c.EditScript != "" {
		src, err := os.ReadFile(c.EditScript)
		if err != nil {
			return nil, err
		}
		var evalErrs []engine.EvalError
		l, evalErrs, err = engine.NewEngine().Evaluate(string(src))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.EditScript, err)
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				a.log.WithFields(logrus.Fields{
					"script": c.EditScript,
					"line":   e.Line,
					"col":    e.Col,
				}).Error(e.Message)
			}
			return nil, fmt.Errorf("%s: %d script error(s): %s", c.EditScript, len(evalErrs), evalErrs[0].Message)
		}
	}

	bs, err := c.BoundaryTasks()
	if err != nil {
		return nil, err
	}
	for _, b := range bs {
		if err := l.Add(b); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// session is a grid with its edits applied.
type session struct {
	cfg    *config.Case
	mesh   *mesh.MultiBlock
	list   *edit.List
	result *edit.Result
}

// apply loads the case, evaluates its tasks and runs them on the grid.
func (a *app) apply() (*session, error) {
	c, m, err := a.loadGrid()
	if err != nil {
		return nil, err
	}
	l, err := a.tasks(c)
	if err != nil {
		return nil, err
	}
	res, err := edit.NewExecutor(a.log).Run(m, l)
	if err != nil {
		return nil, err
	}
	a.log.WithField("tasks", res.Applied).Info("edits applied")
	return &session{cfg: c, mesh: m, list: l, result: res}, nil
}
