package engine

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/fsys"
	"github.com/teranos/fgen/logger"
	"github.com/teranos/fgen/naming"
)

// Create makes <Root>/<dir-name> and scaffolds the module in it. An existing
// module directory is an error. Entrypoints are written fresh, after every
// other file.
func (g *Generator) Create(ctx context.Context, req Request) (*Result, error) {
	module, err := moduleName(req.Name)
	if err != nil {
		return nil, err
	}
	directory := filepath.Join(req.Root, naming.DirName(req.Name))
	return g.run(ctx, ModeCreate, module, directory, req)
}

// Add scaffolds the module into the existing directory Root. When the first
// entrypoint is enabled its file must already exist; entrypoints that exist
// are appended to.
func (g *Generator) Add(ctx context.Context, req Request) (*Result, error) {
	module, err := moduleName(req.Name)
	if err != nil {
		return nil, err
	}
	return g.run(ctx, ModeAdd, module, req.Root, req)
}

// CreateAt is Create for a drop target that may be a file: a directory is
// used as the root, a file resolves to its parent.
func (g *Generator) CreateAt(ctx context.Context, req Request) (*Result, error) {
	root, err := g.ResolveTarget(req.Root)
	if err != nil {
		return nil, err
	}
	req.Root = root
	return g.Create(ctx, req)
}

// AddAt is Add for a drop target that may be a file.
func (g *Generator) AddAt(ctx context.Context, req Request) (*Result, error) {
	root, err := g.ResolveTarget(req.Root)
	if err != nil {
		return nil, err
	}
	req.Root = root
	return g.Add(ctx, req)
}

// Plan computes what Create or Add would do without writing anything.
func (g *Generator) Plan(ctx context.Context, mode Mode, req Request) (*Result, error) {
	req.DryRun = true
	switch mode {
	case ModeCreate:
		return g.Create(ctx, req)
	case ModeAdd:
		return g.Add(ctx, req)
	}
	return nil, errors.NewInputError("unknown mode %q", mode)
}

// ResolveTarget turns an explorer drop target into a directory using Lstat:
// a directory is kept, anything else resolves to its parent.
func (g *Generator) ResolveTarget(target string) (string, error) {
	target = naming.TidyPath(target)
	info, err := g.fs.Lstat(target)
	if err != nil {
		return "", errors.Wrapf(err, "cannot resolve target %s", target)
	}
	if info.IsDir() {
		return target, nil
	}
	return filepath.Dir(target), nil
}

func (g *Generator) run(ctx context.Context, mode Mode, module, directory string, req Request) (*Result, error) {
	start := time.Now()

	res := &Result{
		RunID:     NewRunID(),
		Mode:      mode,
		Module:    module,
		Directory: directory,
		DryRun:    req.DryRun,
	}
	log := g.log.With(logger.FieldRunID, res.RunID)
	log.Debugw("Starting run",
		logger.FieldMode, string(mode),
		logger.FieldModule, module,
		"directory", directory)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	res.Levels = g.rel.Levels(log)
	if logger.ShouldOutput(logger.Verbosity, logger.OutputLevels) {
		for depth, bucket := range res.Levels {
			log.Debugw("Level", logger.FieldLevel, depth, "nodes", bucket)
		}
	}

	instances, err := g.Build(res.Levels, BuildInput{
		Directory:  directory,
		ModuleName: module,
		Enabled:    req.Enabled,
	})
	if err != nil {
		return res, err
	}

	opts := WriteOptions{DryRun: req.DryRun, Logger: log}

	switch mode {
	case ModeCreate:
		if err := g.prepareCreate(directory, req.DryRun); err != nil {
			return res, err
		}
	case ModeAdd:
		if err := g.checkAddPrecondition(instances, req.Enabled); err != nil {
			return res, err
		}
		opts.AppendEntrypoints = true
	}

	files, opened, err := g.Write(ctx, directory, res.Levels, instances, req.Enabled, opts)
	res.Files = files
	res.Opened = opened
	if err != nil {
		return res, err
	}

	log.Debugw("Run finished",
		logger.FieldCount, len(files),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return res, nil
}

func (g *Generator) prepareCreate(directory string, dryRun bool) error {
	if _, err := g.fs.Lstat(directory); err == nil {
		return errors.WithHint(
			errors.Newf("module directory %s already exists", directory),
			"use `fgen add` to scaffold into an existing directory",
		)
	}
	if dryRun {
		return nil
	}
	if err := g.fs.Mkdir(directory, fsys.DirPerm); err != nil {
		return errors.Wrapf(err, "failed to create module directory %s", directory)
	}
	return nil
}

// checkAddPrecondition requires the first declared entrypoint, when
// enabled, to exist as a regular file before anything is written.
func (g *Generator) checkAddPrecondition(instances Instances, enabled map[string]bool) error {
	if len(g.rel.Entrypoints) == 0 {
		return nil
	}
	first := g.rel.Entrypoints[0]
	if !enabled[first] {
		return nil
	}
	instance, ok := instances[first]
	if !ok {
		return nil
	}
	if !fsys.IsRegular(g.fs, instance.Path()) {
		return errors.WithHint(
			errors.NewPreconditionError(instance.Path(), first+" file not found"),
			"run `fgen create` for a new module, or disable the "+first+" file",
		)
	}
	return nil
}

func moduleName(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.NewInputError("module name is empty")
	}
	name := naming.ComponentName(raw)
	if name == "" {
		return "", errors.NewInputError("module name %q has no letters or digits", raw)
	}
	return name, nil
}
